package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port         string
	MongoURI     string // empty selects the in-memory backend
	DBName       string
	MongoTimeout time.Duration
	LogLevel     string
	LogFormat    string // "text" or "json"
	SeedDefaults bool
	CORSOrigin   string
}

func Load() (*Config, error) {
	timeout, err := time.ParseDuration(getEnv("MONGODB_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("MONGODB_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("MONGODB_TIMEOUT must be positive, got %s", timeout)
	}
	seed, err := strconv.ParseBool(getEnv("SEED_DEFAULTS", "true"))
	if err != nil {
		return nil, fmt.Errorf("SEED_DEFAULTS: %w", err)
	}
	format := strings.ToLower(getEnv("LOG_FORMAT", "text"))
	if format != "text" && format != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", format)
	}

	return &Config{
		Port:         getEnv("PORT", "8080"),
		MongoURI:     strings.TrimSpace(os.Getenv("MONGODB_URI")),
		DBName:       getEnv("MONGODB_DB", "bookbridge"),
		MongoTimeout: timeout,
		LogLevel:     strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:    format,
		SeedDefaults: seed,
		CORSOrigin:   getEnv("CORS_ORIGIN", "*"),
	}, nil
}

// UseMongo reports whether a connection string was configured.
func (c *Config) UseMongo() bool {
	return c.MongoURI != ""
}

// SlogLevel maps LogLevel onto a slog.Level, falling back to info.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// OptionalEnvVars are logged at startup so you can confirm they are loaded when set.
var OptionalEnvVars = []string{
	"MONGODB_URI",
	"MONGODB_DB",
	"MONGODB_TIMEOUT",
	"PORT",
	"LOG_LEVEL",
	"LOG_FORMAT",
	"SEED_DEFAULTS",
	"CORS_ORIGIN",
}

// LogEnv logs which optional env vars are set. Credentials in MONGODB_URI are redacted.
func LogEnv(logger *slog.Logger) {
	for _, key := range OptionalEnvVars {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			logger.Debug("env not set (optional)", "key", key)
			continue
		}
		if key == "MONGODB_URI" {
			v = RedactURI(v)
		}
		logger.Info("env loaded", "key", key, "value", v)
	}
}

// RedactURI strips the password from a connection string for logging.
func RedactURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.User == nil {
		return uri
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
