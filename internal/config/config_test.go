package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 100, cfg.MaxAgents)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Empty(t, cfg.GeminiAPIKey)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("SUSTAINCITY_ADDR", ":9090")
	t.Setenv("SUSTAINCITY_DATA_DIR", "/tmp/cities")
	t.Setenv("SUSTAINCITY_MAX_AGENTS", "250")
	t.Setenv("SUSTAINCITY_LOG_LEVEL", "debug")
	t.Setenv("GEMINI_API_KEY", "k")

	cfg := FromEnv()
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "/tmp/cities", cfg.DataDir)
	assert.Equal(t, 250, cfg.MaxAgents)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "k", cfg.GeminiAPIKey)
}

func TestFromEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("SUSTAINCITY_MAX_AGENTS", "lots")
	t.Setenv("SUSTAINCITY_LOG_LEVEL", "shouting")

	cfg := FromEnv()
	assert.Equal(t, 100, cfg.MaxAgents)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}
