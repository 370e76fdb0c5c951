package events

import (
	"encoding/json"
	"time"
)

// Event payload types shared by the outbox writers and the gateway

const (
	EventTypeMarketRefreshed   = "MarketRefreshed"
	EventTypePlayerTransferred = "PlayerTransferred"
	EventTypePlayerListed      = "PlayerListed"
	EventTypePlayerUnlisted    = "PlayerUnlisted"
)

// MarketRefreshedPayload is the payload for a MarketRefreshed event
type MarketRefreshedPayload struct {
	LeagueID    string    `json:"league_id"`
	Cycle       int64     `json:"cycle"`
	GeneratedAt time.Time `json:"generated_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	PlayerIDs   []string  `json:"player_ids"`
	Settled     int       `json:"settled"`
	Skipped     int       `json:"skipped"`
}

// PlayerTransferredPayload is the payload for a PlayerTransferred event
type PlayerTransferredPayload struct {
	TransferID string    `json:"transfer_id"`
	LeagueID   string    `json:"league_id"`
	PlayerID   string    `json:"player_id"`
	SellerID   string    `json:"seller_id,omitempty"`
	BuyerID    string    `json:"buyer_id,omitempty"`
	Amount     string    `json:"amount"`
	Kind       string    `json:"kind"`
	At         time.Time `json:"at"`
}

// PlayerListedPayload is the payload for PlayerListed and PlayerUnlisted events
type PlayerListedPayload struct {
	LeagueID    string    `json:"league_id"`
	PlayerID    string    `json:"player_id"`
	OwnerID     string    `json:"owner_id"`
	AskingPrice string    `json:"asking_price,omitempty"`
	At          time.Time `json:"at"`
}

// Envelope wraps every payload published to the broker
type Envelope struct {
	EventID   string          `json:"eventId"`
	EventType string          `json:"eventType"`
	LeagueID  string          `json:"leagueId"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}
