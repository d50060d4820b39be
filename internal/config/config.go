package config

import (
	"os"
	"strings"
)

type Config struct {
	HTTPAddr     string
	LogLevel     string
	MessagesFile string
	CORSOrigins  []string

	// Roblox API hosts, overridable so tests can point at local servers.
	UsersAPI      string
	GamesAPI      string
	ThumbnailsAPI string
	InventoryAPI  string
	WWW           string
}

func Load() (Config, error) {
	cfg := Config{
		HTTPAddr:      getenvDefault("HTTP_ADDR", ":3000"),
		LogLevel:      getenvDefault("LOG_LEVEL", "info"),
		MessagesFile:  getenvDefault("MESSAGES_FILE", "messages.json"),
		UsersAPI:      getenvDefault("ROBLOX_USERS_API", "https://users.roblox.com"),
		GamesAPI:      getenvDefault("ROBLOX_GAMES_API", "https://games.roblox.com"),
		ThumbnailsAPI: getenvDefault("ROBLOX_THUMBNAILS_API", "https://thumbnails.roblox.com"),
		InventoryAPI:  getenvDefault("ROBLOX_INVENTORY_API", "https://inventory.roblox.com"),
		WWW:           getenvDefault("ROBLOX_WWW", "https://www.roblox.com"),
	}

	// parse CORS origins
	corsOrigins := getenvDefault("CORS_ORIGINS", "")
	if corsOrigins != "" {
		cfg.CORSOrigins = strings.Split(corsOrigins, ",")
		for i := range cfg.CORSOrigins {
			cfg.CORSOrigins[i] = strings.TrimSpace(cfg.CORSOrigins[i])
		}
	} else {
		cfg.CORSOrigins = []string{"http://localhost:3000"} // default
	}

	return cfg, nil
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
