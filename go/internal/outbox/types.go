package outbox

import (
	"encoding/json"

	"github.com/google/uuid"
)

// OutboxEvent is a league event waiting to be relayed to the broker
type OutboxEvent struct {
	ID        uuid.UUID       `json:"id"`
	LeagueID  uuid.UUID       `json:"league_id"`
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
}
