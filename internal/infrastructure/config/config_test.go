package config_test

import (
	"testing"
	"time"

	"github.com/verax/ledger/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.Database.URL == "" {
		t.Fatalf("expected default database URL to be set")
	}

	if cfg.HTTP.Port != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTP.Port)
	}

	if cfg.HTTP.Addr() != ":8080" {
		t.Fatalf("expected listen address :8080, got %s", cfg.HTTP.Addr())
	}

	if cfg.Database.MigrationsPath != "migrations" {
		t.Fatalf("expected default migrations path, got %s", cfg.Database.MigrationsPath)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_TIMEOUT", "45s")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.Database.URL != "postgres://example" {
		t.Fatalf("expected custom database URL, got %s", cfg.Database.URL)
	}

	if cfg.Redis.URL != "redis://example" {
		t.Fatalf("expected custom redis URL, got %s", cfg.Redis.URL)
	}

	if cfg.HTTP.Port != "9090" {
		t.Fatalf("expected HTTP port 9090, got %s", cfg.HTTP.Port)
	}

	if cfg.Database.ConnectTimeout != 45*time.Second {
		t.Fatalf("expected connect timeout 45s, got %s", cfg.Database.ConnectTimeout)
	}

	if cfg.Log.Format != "console" {
		t.Fatalf("expected console log format, got %s", cfg.Log.Format)
	}
}

func TestLoadRejectsMalformedDuration(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT", "soon")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for malformed duration")
	}
}
