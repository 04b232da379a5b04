package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/classtrak")
	for _, k := range []string{"PORT", "LOG_LEVEL", "LOG_FORMAT", "QUERY_TIMEOUT", "DB_MAX_CONNS", "AUTO_MIGRATE", "READY_TIMEOUT"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	if cfg.DatabaseURL != "postgres://localhost/classtrak" {
		t.Errorf("DatabaseURL: got %q", cfg.DatabaseURL)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port: got %q, want %q", cfg.Port, "8080")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel: got %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat: got %q, want %q", cfg.LogFormat, "json")
	}
	if cfg.QueryTimeout != 0 {
		t.Errorf("QueryTimeout: got %v, want 0", cfg.QueryTimeout)
	}
	if cfg.DBMaxConns != 0 {
		t.Errorf("DBMaxConns: got %d, want 0", cfg.DBMaxConns)
	}
	if cfg.AutoMigrate {
		t.Error("AutoMigrate: got true, want false")
	}
	if cfg.ReadyTimeout != 3*time.Second {
		t.Errorf("ReadyTimeout: got %v, want %v", cfg.ReadyTimeout, 3*time.Second)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db/other")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("QUERY_TIMEOUT", "250ms")
	t.Setenv("DB_MAX_CONNS", "16")
	t.Setenv("AUTO_MIGRATE", "true")
	t.Setenv("READY_TIMEOUT", "1s")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Port: got %q", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat: got %q", cfg.LogFormat)
	}
	if cfg.QueryTimeout != 250*time.Millisecond {
		t.Errorf("QueryTimeout: got %v", cfg.QueryTimeout)
	}
	if cfg.DBMaxConns != 16 {
		t.Errorf("DBMaxConns: got %d", cfg.DBMaxConns)
	}
	if !cfg.AutoMigrate {
		t.Error("AutoMigrate: got false")
	}
	if cfg.ReadyTimeout != time.Second {
		t.Errorf("ReadyTimeout: got %v", cfg.ReadyTimeout)
	}
}

func TestLoad_MissingDatabaseURL_Panics(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for missing DATABASE_URL")
		}
	}()

	Load()
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestGetEnv_Fallback(t *testing.T) {
	t.Setenv("TEST_GET_ENV_KEY", "")
	if got := getEnv("TEST_GET_ENV_KEY", "default_value"); got != "default_value" {
		t.Errorf("got %q, want %q", got, "default_value")
	}
}

func TestGetEnv_Override(t *testing.T) {
	t.Setenv("TEST_GET_ENV_KEY", "override")
	if got := getEnv("TEST_GET_ENV_KEY", "default"); got != "override" {
		t.Errorf("got %q, want %q", got, "override")
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TEST_INT_KEY", "99")
	if got := getEnvInt("TEST_INT_KEY", 0); got != 99 {
		t.Errorf("got %d, want %d", got, 99)
	}

	t.Setenv("TEST_INT_KEY", "not_a_number")
	if got := getEnvInt("TEST_INT_KEY", 7); got != 7 {
		t.Errorf("got %d, want fallback %d", got, 7)
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("TEST_BOOL_KEY", "1")
	if !getEnvBool("TEST_BOOL_KEY", false) {
		t.Error("got false, want true")
	}

	t.Setenv("TEST_BOOL_KEY", "maybe")
	if !getEnvBool("TEST_BOOL_KEY", true) {
		t.Error("invalid value should return fallback true")
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_DUR_KEY", "2s")
	if got := getEnvDuration("TEST_DUR_KEY", 0); got != 2*time.Second {
		t.Errorf("got %v, want %v", got, 2*time.Second)
	}

	t.Setenv("TEST_DUR_KEY", "not_a_duration")
	if got := getEnvDuration("TEST_DUR_KEY", 10*time.Millisecond); got != 10*time.Millisecond {
		t.Errorf("got %v, want fallback %v", got, 10*time.Millisecond)
	}
}
