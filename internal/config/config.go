package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the server configuration, read from the environment.
type Config struct {
	Port        string
	DatabaseURL string
	LogLevel    string
	LogFormat   string

	// Zero leaves the query bound only by the request context.
	QueryTimeout time.Duration
	// Zero keeps the pgxpool default.
	DBMaxConns   int
	AutoMigrate  bool
	ReadyTimeout time.Duration
}

func Load() Config {
	return Config{
		Port:         getEnv("PORT", "8080"),
		DatabaseURL:  getEnvRequired("DATABASE_URL"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
		QueryTimeout: getEnvDuration("QUERY_TIMEOUT", 0),
		DBMaxConns:   getEnvInt("DB_MAX_CONNS", 0),
		AutoMigrate:  getEnvBool("AUTO_MIGRATE", false),
		ReadyTimeout: getEnvDuration("READY_TIMEOUT", 3*time.Second),
	}
}

// ParseLogLevel maps debug/info/warn/error to a slog level; anything else is info.
func ParseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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

func getEnvRequired(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic("required environment variable " + key + " is not set")
	}
	return v
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer env var, using default", "key", key, "value", v, "error", err)
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid boolean env var, using default", "key", key, "value", v, "error", err)
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "error", err)
		return fallback
	}
	return d
}
