// Package config holds server runtime configuration.
package config

import (
	"log/slog"
	"os"
	"strconv"
)

// Config is the server's runtime configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string

	// DataDir is where saved cities are written. Empty keeps saves
	// in memory only.
	DataDir string

	// GeminiAPIKey enables AI city layout generation when set.
	GeminiAPIKey string

	// MaxAgents caps the number of foot-traffic agents returned per
	// snapshot.
	MaxAgents int

	// LogLevel is the slog level for the whole process.
	LogLevel slog.Level
}

// Default returns the standard configuration.
func Default() Config {
	return Config{
		Addr:      ":8080",
		MaxAgents: 100,
		LogLevel:  slog.LevelInfo,
	}
}

// FromEnv loads configuration from environment variables.
// Falls back to defaults if variables are not set.
func FromEnv() Config {
	cfg := Default()

	if v := os.Getenv("SUSTAINCITY_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("SUSTAINCITY_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.GeminiAPIKey = v
	}
	if v := getEnvInt("SUSTAINCITY_MAX_AGENTS"); v > 0 {
		cfg.MaxAgents = v
	}
	if v := os.Getenv("SUSTAINCITY_LOG_LEVEL"); v != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(v)); err == nil {
			cfg.LogLevel = level
		}
	}
	return cfg
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return n
}
