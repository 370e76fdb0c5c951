package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferKind tags how a player changed hands
type TransferKind string

const (
	TransferKindMarketPurchase TransferKind = "MARKET_PURCHASE"
	TransferKindPeerPurchase   TransferKind = "PEER_PURCHASE"
	TransferKindQuickSale      TransferKind = "QUICK_SALE"
)

// Transfer is an immutable history entry for a change of ownership
type Transfer struct {
	ID         uuid.UUID       `json:"id"`
	LeagueID   uuid.UUID       `json:"league_id"`
	PlayerID   uuid.UUID       `json:"player_id"`
	PlayerName string          `json:"player_name,omitempty"`
	SellerID   *uuid.UUID      `json:"seller_id,omitempty"`
	BuyerID    *uuid.UUID      `json:"buyer_id,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Kind       TransferKind    `json:"kind"`
	CreatedAt  time.Time       `json:"created_at"`
}
