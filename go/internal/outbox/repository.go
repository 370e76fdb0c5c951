package outbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/trebol/go/internal/events"
	"github.com/mcdev12/trebol/go/internal/models"
	"github.com/mcdev12/trebol/go/internal/outbox/db"
)

var ErrEventNotPending = errors.New("outbox event not found or already sent")

// Repository reads and writes the league outbox
type Repository struct {
	queries db.Querier
}

func NewRepository(queries db.Querier) *Repository {
	return &Repository{
		queries: queries,
	}
}

// Record marshals payload and stores it as an unsent event of leagueID.
// Callers pass a querier bound to their transaction so the event commits
// with the state change it describes.
func (r *Repository) Record(ctx context.Context, leagueID uuid.UUID, eventType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}

	err = r.queries.InsertOutboxEvent(ctx, db.InsertOutboxEventParams{
		ID:        uuid.New(),
		LeagueID:  leagueID,
		EventType: eventType,
		Payload:   data,
	})
	if err != nil {
		return fmt.Errorf("failed to insert %s outbox event: %w", eventType, err)
	}
	return nil
}

// RecordTransfer stores a PlayerTransferred event for t
func (r *Repository) RecordTransfer(ctx context.Context, t *models.Transfer) error {
	payload := events.PlayerTransferredPayload{
		TransferID: t.ID.String(),
		LeagueID:   t.LeagueID.String(),
		PlayerID:   t.PlayerID.String(),
		Amount:     t.Amount.StringFixed(2),
		Kind:       string(t.Kind),
		At:         t.CreatedAt,
	}
	if t.SellerID != nil {
		payload.SellerID = t.SellerID.String()
	}
	if t.BuyerID != nil {
		payload.BuyerID = t.BuyerID.String()
	}
	return r.Record(ctx, t.LeagueID, events.EventTypePlayerTransferred, payload)
}

func (r *Repository) FetchUnsentOutbox(ctx context.Context, limit int32) ([]OutboxEvent, error) {
	rows, err := r.queries.FetchUnsentOutbox(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unsent outbox events: %w", err)
	}

	out := make([]OutboxEvent, len(rows))
	for i, row := range rows {
		out[i] = OutboxEvent{
			ID:        row.ID,
			LeagueID:  row.LeagueID,
			EventType: row.EventType,
			Payload:   row.Payload,
		}
	}
	return out, nil
}

func (r *Repository) FetchOutboxByID(ctx context.Context, id uuid.UUID) (*OutboxEvent, error) {
	row, err := r.queries.FetchOutboxByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotPending
		}
		return nil, fmt.Errorf("failed to fetch outbox event by ID: %w", err)
	}

	return &OutboxEvent{
		ID:        row.ID,
		LeagueID:  row.LeagueID,
		EventType: row.EventType,
		Payload:   row.Payload,
	}, nil
}

func (r *Repository) MarkOutboxSent(ctx context.Context, id uuid.UUID) error {
	if err := r.queries.MarkOutboxSent(ctx, id); err != nil {
		return fmt.Errorf("failed to mark outbox event as sent: %w", err)
	}
	return nil
}

// CountUnsent reports how many events are waiting to be relayed
func (r *Repository) CountUnsent(ctx context.Context) (int64, error) {
	n, err := r.queries.CountUnsentOutbox(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count unsent outbox events: %w", err)
	}
	return n, nil
}
