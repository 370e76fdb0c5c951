package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/mcdev12/trebol/go/internal/dbconfig"
)

const defaultPath = "go/internal/assets/players.json"

// Player mirrors one entry of the catalog file
type Player struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Position  string          `json:"position"`
	Team      *string         `json:"team"`
	Rating    int32           `json:"rating"`
	BasePrice decimal.Decimal `json:"base_price"`
}

func main() {
	ctx := context.Background()
	_ = godotenv.Load()

	path := defaultPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	// 1) Load the catalog
	players, err := loadCatalog(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load catalog: %v\n", err)
		os.Exit(1)
	}

	// 2) Connect to DB
	cfg := dbconfig.NewConfigFromEnv()
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect error: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	// 3) Seed players in one batch
	batch := &pgx.Batch{}
	for _, p := range players {
		batch.Queue(`
            INSERT INTO players (id, name, position, team, rating, base_price)
            VALUES ($1,$2,$3,$4,$5,$6)
            ON CONFLICT (id) DO NOTHING
        `, p.ID, p.Name, p.Position, p.Team, p.Rating, p.BasePrice.StringFixed(2))
	}

	results := pool.SendBatch(ctx, batch)
	total, inserted, skipped, errs := len(players), 0, 0, 0
	for range players {
		tag, err := results.Exec()
		if err != nil {
			errs++
			continue
		}
		if tag.RowsAffected() == 1 {
			inserted++
		} else {
			skipped++
		}
	}
	if err := results.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close batch: %v\n", err)
	}

	fmt.Printf(
		"Players seed: total=%d inserted=%d skipped=%d errors=%d\n",
		total, inserted, skipped, errs,
	)
	if errs > 0 {
		os.Exit(1)
	}
}

var positions = map[string]bool{"GK": true, "DEF": true, "MID": true, "FWD": true}

// loadCatalog reads and checks the catalog file at path
func loadCatalog(path string) ([]Player, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var players []Player
	if err := json.Unmarshal(data, &players); err != nil {
		return nil, fmt.Errorf("unmarshal players: %w", err)
	}

	seen := make(map[uuid.UUID]bool, len(players))
	for i, p := range players {
		switch {
		case p.ID == uuid.Nil:
			return nil, fmt.Errorf("player %d has no id", i)
		case seen[p.ID]:
			return nil, fmt.Errorf("duplicate player id %s", p.ID)
		case p.Name == "":
			return nil, fmt.Errorf("player %s has no name", p.ID)
		case !positions[p.Position]:
			return nil, fmt.Errorf("player %s has unknown position %q", p.ID, p.Position)
		case p.BasePrice.IsNegative():
			return nil, fmt.Errorf("player %s has a negative base price", p.ID)
		}
		seen[p.ID] = true
	}
	return players, nil
}
