package dbconfig

import (
	"testing"
	"time"
)

func TestDSNEscapesCredentials(t *testing.T) {
	cfg := Config{Host: "db", Port: 5433, User: "app", Password: "p@ss/word", Database: "trebol", SSLMode: "require"}
	want := "postgres://app:p%40ss%2Fword@db:5433/trebol?sslmode=require"
	if got := cfg.DSN(); got != want {
		t.Fatalf("DSN() = %q, want %q", got, want)
	}
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "pg")
	t.Setenv("DB_PORT", "not-a-port")
	t.Setenv("DB_MAX_OPEN_CONNS", "5")
	t.Setenv("DB_CONN_MAX_LIFETIME", "1m")

	cfg := NewConfigFromEnv()
	if cfg.Host != "pg" || cfg.Port != 5432 {
		t.Fatalf("unexpected host/port %s:%d", cfg.Host, cfg.Port)
	}
	if cfg.MaxOpenConns != 5 || cfg.ConnMaxLifetime != time.Minute || cfg.MaxIdleConns != 10 {
		t.Fatalf("unexpected pool settings %+v", cfg)
	}
}
