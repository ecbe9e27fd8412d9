package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	t.Setenv("ENV", "development")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "5000" {
		t.Errorf("port = %q, want 5000", cfg.Port)
	}
	if cfg.DBMaxConns != 20 || cfg.DBMinConns != 5 {
		t.Errorf("pool sizes = %d/%d", cfg.DBMaxConns, cfg.DBMinConns)
	}
	if cfg.JWTTTLHours != 24 {
		t.Errorf("ttl = %d", cfg.JWTTTLHours)
	}
	if !cfg.IsDev() {
		t.Error("expected development mode")
	}
	// Dev gets an insecure placeholder secret so local servers boot.
	if cfg.JWTSecret == "" {
		t.Error("dev secret should be defaulted")
	}
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "DATABASE_URL") {
		t.Errorf("err = %v, want DATABASE_URL error", err)
	}
}

func TestValidateProduction(t *testing.T) {
	cfg := &Config{Env: "production", JWTTTLHours: 24}
	if err := cfg.Validate(); err == nil {
		t.Error("production without JWT_SECRET should fail validation")
	}

	cfg.JWTSecret = "short"
	if err := cfg.Validate(); err == nil {
		t.Error("short secret should fail validation")
	}

	cfg.JWTSecret = strings.Repeat("x", 32)
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	cfg.JWTTTLHours = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero ttl should fail validation")
	}
}
