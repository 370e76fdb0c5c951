package outbox

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Publisher delivers an outbox event to the broker
type Publisher interface {
	Publish(ctx context.Context, event OutboxEvent) error
}

// Store is what the relay needs from the outbox table
type Store interface {
	FetchUnsentOutbox(ctx context.Context, limit int32) ([]OutboxEvent, error)
	FetchOutboxByID(ctx context.Context, id uuid.UUID) (*OutboxEvent, error)
	MarkOutboxSent(ctx context.Context, id uuid.UUID) error
}

// Relay moves pending outbox rows to the publisher and marks them sent
type Relay struct {
	store      Store
	publisher  Publisher
	maxRetries int
	retryDelay time.Duration
	batchSize  int32

	relayed     atomic.Uint64
	lastRelayAt atomic.Int64 // unix nanos
}

func NewRelay(store Store, publisher Publisher, cfg ListenerConfig) *Relay {
	return &Relay{
		store:      store,
		publisher:  publisher,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		batchSize:  cfg.BatchSize,
	}
}

// HandleNotification relays the event whose id arrived on the NOTIFY channel
func (r *Relay) HandleNotification(ctx context.Context, extra string) error {
	id, err := uuid.Parse(extra)
	if err != nil {
		return fmt.Errorf("invalid event ID in notification: %w", err)
	}

	event, err := r.store.FetchOutboxByID(ctx, id)
	if err != nil {
		// already relayed by the fallback sweep
		if errors.Is(err, ErrEventNotPending) {
			log.Debug().Str("event_id", id.String()).Msg("outbox event already sent")
			return nil
		}
		return err
	}

	return r.relay(ctx, *event)
}

// ProcessUnsent relays one batch of pending events
func (r *Relay) ProcessUnsent(ctx context.Context) (int, error) {
	unsent, err := r.store.FetchUnsentOutbox(ctx, r.batchSize)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, event := range unsent {
		if err := r.relay(ctx, event); err != nil {
			log.Error().Err(err).Str("event_id", event.ID.String()).Msg("failed to relay event")
			continue
		}
		sent++
	}
	return sent, nil
}

func (r *Relay) relay(ctx context.Context, event OutboxEvent) error {
	if err := r.publishWithRetry(ctx, event); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	if err := r.store.MarkOutboxSent(ctx, event.ID); err != nil {
		return err
	}
	r.relayed.Add(1)
	r.lastRelayAt.Store(time.Now().UnixNano())

	log.Info().
		Str("event_id", event.ID.String()).
		Str("event_type", event.EventType).
		Str("league_id", event.LeagueID.String()).
		Msg("published and marked event as sent")
	return nil
}

// publishWithRetry attempts to publish with a linear backoff
func (r *Relay) publishWithRetry(ctx context.Context, event OutboxEvent) error {
	var lastErr error

	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			delay := r.retryDelay * time.Duration(attempt)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		if err := r.publisher.Publish(ctx, event); err != nil {
			lastErr = err
			log.Error().
				Err(err).
				Int("attempt", attempt+1).
				Str("event_id", event.ID.String()).
				Msg("failed to publish, retrying")
			continue
		}

		if attempt > 0 {
			log.Info().
				Int("attempt", attempt+1).
				Str("event_id", event.ID.String()).
				Msg("publish succeeded after retry")
		}
		return nil
	}

	return fmt.Errorf("publish failed after %d attempts: %w", r.maxRetries+1, lastErr)
}

// Stats returns how many events were relayed and when the last one was
func (r *Relay) Stats() (uint64, time.Time) {
	var last time.Time
	if ns := r.lastRelayAt.Load(); ns != 0 {
		last = time.Unix(0, ns)
	}
	return r.relayed.Load(), last
}
