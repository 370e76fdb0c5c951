package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RosterEntry records which account owns a player within a league
type RosterEntry struct {
	LeagueID    uuid.UUID        `json:"league_id"`
	PlayerID    uuid.UUID        `json:"player_id"`
	UserID      uuid.UUID        `json:"user_id"`
	ForSale     bool             `json:"for_sale"`
	AskingPrice *decimal.Decimal `json:"asking_price,omitempty"`
	AcquiredAt  time.Time        `json:"acquired_at"`

	Player *Player `json:"player,omitempty"`
}
