package market

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultSize = 20
	DefaultTTL  = 24 * time.Hour
)

// Config controls listing size and lifetime
type Config struct {
	Size int
	TTL  time.Duration
}

func DefaultConfig() Config {
	return Config{
		Size: DefaultSize,
		TTL:  DefaultTTL,
	}
}

// PlaceBidRequest is a standing offer for a listed player
type PlaceBidRequest struct {
	LeagueID uuid.UUID
	PlayerID uuid.UUID
	Amount   decimal.Decimal
}

// BuyDirectRequest buys a player another member flagged for sale
type BuyDirectRequest struct {
	LeagueID uuid.UUID
	PlayerID uuid.UUID
}

// SkipReason explains why a winning bid was not settled
type SkipReason string

const (
	SkipInsufficientFunds SkipReason = "insufficient_funds"
	SkipNotMember         SkipReason = "not_member"
)

// Settlement is a listed player that changed hands at resolution
type Settlement struct {
	PlayerID   uuid.UUID       `json:"player_id"`
	UserID     uuid.UUID       `json:"user_id"`
	Amount     decimal.Decimal `json:"amount"`
	TransferID uuid.UUID       `json:"transfer_id"`
}

// Skip is a winning bid that could not be settled. The player is not
// offered to the next highest bidder.
type Skip struct {
	PlayerID uuid.UUID       `json:"player_id"`
	UserID   uuid.UUID       `json:"user_id"`
	Amount   decimal.Decimal `json:"amount"`
	Reason   SkipReason      `json:"reason"`
}

// ResolutionReport summarizes the settlement of one expired cycle
type ResolutionReport struct {
	LeagueID uuid.UUID    `json:"league_id"`
	Cycle    int64        `json:"cycle"`
	Settled  []Settlement `json:"settled"`
	Skipped  []Skip       `json:"skipped"`
	Unsold   int          `json:"unsold"`
}

type bidRequestBody struct {
	LeagueID string          `json:"leagueId"`
	PlayerID string          `json:"playerId"`
	Amount   decimal.Decimal `json:"amount"`
}

type buyDirectRequestBody struct {
	LeagueID string `json:"leagueId"`
	PlayerID string `json:"playerId"`
}
