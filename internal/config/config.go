// internal/config/config.go
//
// Process configuration from the environment.
// A .env file in the working directory is loaded first (godotenv); real
// environment variables win over it.
//
// Environment variables:
//   PORT               listen port (default 5175)
//   LOG_LEVEL          zerolog level (default info)
//   LOG_FORMAT         "json" (default) or "console"
//   BINGO_SECRET       board token secret (default dev value, warned about)
//   DAILY_SALT         salt for the board of the day
//   CATALOG_DB         SQLite catalog path (takes precedence)
//   CATALOG_FILE       JSON catalog path
//   SPRITES_FILE       JSON sprite table path
//   PUBLIC_URL         base URL used in share links (default derived from request)
//   CLIENT_ORIGIN      allowed CORS origin for the JSON API
//   DEFAULT_GRID_SIZE  grid size when the URL has none (default 5)

package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DevSecret is used when BINGO_SECRET is unset.
const DevSecret = "dev_secret_change_me"

// Config holds every knob the server reads at startup.
type Config struct {
	Port            string
	LogLevel        string
	LogFormat       string
	Secret          string
	DailySalt       string
	CatalogDB       string
	CatalogFile     string
	SpritesFile     string
	PublicURL       string
	ClientOrigin    string
	DefaultGridSize int
}

// Load reads .env (if present) and the environment.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the environment only.
func FromEnv() Config {
	return Config{
		Port:            getEnv("PORT", "5175"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
		Secret:          getEnv("BINGO_SECRET", DevSecret),
		DailySalt:       getEnv("DAILY_SALT", "local_dev_salt"),
		CatalogDB:       os.Getenv("CATALOG_DB"),
		CatalogFile:     os.Getenv("CATALOG_FILE"),
		SpritesFile:     os.Getenv("SPRITES_FILE"),
		PublicURL:       os.Getenv("PUBLIC_URL"),
		ClientOrigin:    os.Getenv("CLIENT_ORIGIN"),
		DefaultGridSize: envInt("DEFAULT_GRID_SIZE", 5),
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(k)); err == nil {
		return n
	}
	return def
}
