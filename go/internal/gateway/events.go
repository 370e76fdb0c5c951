package gateway

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/trebol/go/internal/events"
)

// LeagueEvent is what clients receive on the socket
type LeagueEvent struct {
	ID        string          `json:"id"`
	LeagueID  string          `json:"league_id"`
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

var knownEventTypes = map[string]bool{
	events.EventTypeMarketRefreshed:   true,
	events.EventTypePlayerTransferred: true,
	events.EventTypePlayerListed:      true,
	events.EventTypePlayerUnlisted:    true,
}

// decodeEnvelope turns a broker message into the league it targets and the
// client facing event.
func decodeEnvelope(data []byte) (uuid.UUID, *LeagueEvent, error) {
	var envelope events.Envelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return uuid.Nil, nil, fmt.Errorf("unmarshal event envelope: %w", err)
	}
	leagueID, err := uuid.Parse(envelope.LeagueID)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("parse league ID: %w", err)
	}
	if !knownEventTypes[envelope.EventType] {
		return uuid.Nil, nil, fmt.Errorf("unknown event type: %s", envelope.EventType)
	}

	return leagueID, &LeagueEvent{
		ID:        envelope.EventID,
		LeagueID:  envelope.LeagueID,
		Type:      envelope.EventType,
		Timestamp: envelope.Timestamp,
		Data:      envelope.Payload,
	}, nil
}
