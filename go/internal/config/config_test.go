package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trebol.yaml")
	yml := `
server:
  port: 9000
  allowed_origins: ["https://a.example"]
auth:
  jwt_secret: from-file
economy:
  market_ttl: 1h
lock:
  backend: redis
`
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("PORT", "9100")
	t.Setenv("ALLOWED_ORIGINS", "https://b.example, https://c.example")
	t.Setenv("MARKET_SIZE", "5")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Fatalf("expected env port, got %d", cfg.Server.Port)
	}
	if len(cfg.Server.AllowedOrigins) != 2 || cfg.Server.AllowedOrigins[1] != "https://c.example" {
		t.Fatalf("unexpected origins %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Auth.JWTSecret != "from-file" {
		t.Fatalf("expected file secret, got %q", cfg.Auth.JWTSecret)
	}
	if cfg.Economy.MarketTTL != time.Hour {
		t.Fatalf("expected 1h market ttl, got %s", cfg.Economy.MarketTTL)
	}
	if cfg.Economy.MarketSize != 5 {
		t.Fatalf("expected market size 5, got %d", cfg.Economy.MarketSize)
	}
	if cfg.Lock.Backend != "redis" {
		t.Fatalf("expected redis backend, got %q", cfg.Lock.Backend)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected missing secret to fail validation")
	}

	cfg.Auth.JWTSecret = "s3cret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.Lock.Backend = "zookeeper"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected unknown backend to fail validation")
	}
}
