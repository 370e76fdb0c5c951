package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBundledCatalogLoads(t *testing.T) {
	players, err := loadCatalog(filepath.Join("..", "..", "assets", "players.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(players) < 20 {
		t.Fatalf("catalog must fill a full market listing, got %d players", len(players))
	}
}

func TestLoadCatalogRejectsBadEntries(t *testing.T) {
	tests := map[string]string{
		"duplicate id":     `[{"id":"d2c0bbf2-828d-5cbe-b6a2-6c4289e8edf3","name":"A","position":"GK","base_price":"1"},{"id":"d2c0bbf2-828d-5cbe-b6a2-6c4289e8edf3","name":"B","position":"GK","base_price":"1"}]`,
		"unknown position": `[{"id":"d2c0bbf2-828d-5cbe-b6a2-6c4289e8edf3","name":"A","position":"QB","base_price":"1"}]`,
		"negative price":   `[{"id":"d2c0bbf2-828d-5cbe-b6a2-6c4289e8edf3","name":"A","position":"GK","base_price":"-5"}]`,
		"missing id":       `[{"name":"A","position":"GK","base_price":"1"}]`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "players.json")
			if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, err := loadCatalog(path); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
