package leagues

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateLeagueRequest represents the data needed to create a new league
type CreateLeagueRequest struct {
	Name       string          `json:"name"`
	MaxMembers int             `json:"maxMembers"`
	Settings   json.RawMessage `json:"settings,omitempty"`
}

// JoinLeagueRequest carries the key shared by the league founder
type JoinLeagueRequest struct {
	JoinKey string `json:"joinKey"`
}

// Config holds the economy defaults applied to new leagues and members
type Config struct {
	StartingBalance   decimal.Decimal
	DefaultMaxMembers int
}

// NewMember is a membership about to be created
type NewMember struct {
	UserID  uuid.UUID
	Balance decimal.Decimal
}
