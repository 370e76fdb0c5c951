package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MarketCycle is the generation stamp of a league's current listing
type MarketCycle struct {
	LeagueID    uuid.UUID `json:"league_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Cycle       int64     `json:"cycle"`
}

// Market is the listing of a league returned to clients. The timestamps are
// unset while the league has never had a listing generated.
type Market struct {
	LeagueID    uuid.UUID  `json:"league_id"`
	Players     []Player   `json:"players"`
	GeneratedAt *time.Time `json:"generatedAt,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

// Bid is a standing offer by an account for a listed player
type Bid struct {
	ID       int64           `json:"id"`
	LeagueID uuid.UUID       `json:"league_id"`
	PlayerID uuid.UUID       `json:"player_id"`
	UserID   uuid.UUID       `json:"user_id"`
	Amount   decimal.Decimal `json:"amount"`
	PlacedAt time.Time       `json:"placed_at"`
}
