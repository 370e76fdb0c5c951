package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Player represents a catalog footballer that can be owned inside a league
type Player struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Position  string          `json:"position"`
	Team      *string         `json:"team,omitempty"`
	Rating    int             `json:"rating"`
	BasePrice decimal.Decimal `json:"base_price"`
	CreatedAt time.Time       `json:"created_at"`
}
