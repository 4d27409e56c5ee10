package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range OptionalEnvVars {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "", cfg.MongoURI)
	assert.Equal(t, "bookbridge", cfg.DBName)
	assert.Equal(t, 10*time.Second, cfg.MongoTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.True(t, cfg.SeedDefaults)
	assert.Equal(t, "*", cfg.CORSOrigin)
	assert.False(t, cfg.UseMongo())
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGODB_URI", "  mongodb://db:27017  ")
	t.Setenv("MONGODB_DB", "reviews")
	t.Setenv("MONGODB_TIMEOUT", "3s")
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("SEED_DEFAULTS", "false")
	t.Setenv("CORS_ORIGIN", "https://bookverse.example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "mongodb://db:27017", cfg.MongoURI)
	assert.True(t, cfg.UseMongo())
	assert.Equal(t, "reviews", cfg.DBName)
	assert.Equal(t, 3*time.Second, cfg.MongoTimeout)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.SeedDefaults)
	assert.Equal(t, "https://bookverse.example", cfg.CORSOrigin)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad timeout", "MONGODB_TIMEOUT", "soon"},
		{"negative timeout", "MONGODB_TIMEOUT", "-1s"},
		{"bad seed flag", "SEED_DEFAULTS", "maybe"},
		{"bad log format", "LOG_FORMAT", "xml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestSlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"loud":    slog.LevelInfo,
	}
	for in, want := range tests {
		cfg := &Config{LogLevel: in}
		assert.Equal(t, want, cfg.SlogLevel(), in)
	}
}

func TestRedactURI(t *testing.T) {
	assert.Equal(t, "mongodb://admin:xxxxx@db:27017/books", RedactURI("mongodb://admin:s3cret@db:27017/books"))
	assert.Equal(t, "mongodb://db:27017", RedactURI("mongodb://db:27017"))
}
