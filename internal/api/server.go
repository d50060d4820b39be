package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"roscout/internal/aggregate"
	"roscout/internal/config"
	"roscout/internal/contact"
)

type Server struct {
	log    *slog.Logger
	agg    *aggregate.Aggregator
	store  *contact.Store
	cfg    config.Config
	router *gin.Engine
}

func NewServer(log *slog.Logger, agg *aggregate.Aggregator, store *contact.Store, cfg config.Config) *Server {
	s := &Server{
		log:    log,
		agg:    agg,
		store:  store,
		cfg:    cfg,
		router: gin.New(),
	}

	gin.SetMode(gin.ReleaseMode)
	r := s.router
	r.Use(gin.Recovery())
	r.Use(s.corsMiddleware())
	r.Use(s.loggingMiddleware())

	r.POST("/contact", s.submitContact)
	r.GET("/messages-debug", s.listMessages)
	r.GET("/api/user/:username", s.lookupUser)

	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) ctx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), 10*time.Second)
}
