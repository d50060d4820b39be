package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"roscout/internal/aggregate"
	"roscout/internal/api"
	"roscout/internal/config"
	"roscout/internal/contact"
	"roscout/internal/logging"
	"roscout/internal/roblox"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting_api", "service", "roscout", "http_addr", cfg.HTTPAddr)

	store := contact.Open(logger, cfg.MessagesFile)

	robloxClient := roblox.NewClient(logger, roblox.Endpoints{
		Users:      cfg.UsersAPI,
		Games:      cfg.GamesAPI,
		Thumbnails: cfg.ThumbnailsAPI,
		Inventory:  cfg.InventoryAPI,
		WWW:        cfg.WWW,
	})
	aggregator := aggregate.New(logger, robloxClient)

	srv := api.NewServer(logger, aggregator, store, cfg)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_listen_failed", "error", err)
			os.Exit(1)
		}
	}()

	logger.Info("api_started", "addr", cfg.HTTPAddr)

	// graceful shutdown
	stop := make(chan os.Signal, 2)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting_down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_shutdown_failed", "error", err)
	} else {
		logger.Info("http_server_stopped")
	}

	logger.Info("api_stopped")
}
