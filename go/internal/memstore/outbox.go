package memstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	outboxdb "github.com/mcdev12/trebol/go/internal/outbox/db"
)

// OutboxQueries implements outboxdb.Querier
type OutboxQueries struct{ s *Store }

var _ outboxdb.Querier = (*OutboxQueries)(nil)

func (q *OutboxQueries) CountUnsentOutbox(context.Context) (int64, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	var n int64
	for _, e := range q.s.st.outbox {
		if !e.SentAt.Valid {
			n++
		}
	}
	return n, nil
}

func (q *OutboxQueries) FetchOutboxByID(_ context.Context, id uuid.UUID) (outboxdb.FetchOutboxByIDRow, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	for _, e := range q.s.st.outbox {
		if e.ID == id && !e.SentAt.Valid {
			return outboxdb.FetchOutboxByIDRow{
				ID:        e.ID,
				LeagueID:  e.LeagueID,
				EventType: e.EventType,
				Payload:   e.Payload,
			}, nil
		}
	}
	return outboxdb.FetchOutboxByIDRow{}, sql.ErrNoRows
}

func (q *OutboxQueries) FetchUnsentOutbox(_ context.Context, limit int32) ([]outboxdb.FetchUnsentOutboxRow, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	var out []outboxdb.FetchUnsentOutboxRow
	for _, e := range q.s.st.outbox {
		if len(out) == int(limit) {
			break
		}
		if e.SentAt.Valid {
			continue
		}
		out = append(out, outboxdb.FetchUnsentOutboxRow{
			ID:        e.ID,
			LeagueID:  e.LeagueID,
			EventType: e.EventType,
			Payload:   e.Payload,
		})
	}
	return out, nil
}

func (q *OutboxQueries) InsertOutboxEvent(_ context.Context, arg outboxdb.InsertOutboxEventParams) error {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	q.s.st.outbox = append(q.s.st.outbox, outboxdb.LeagueOutbox{
		ID:        arg.ID,
		LeagueID:  arg.LeagueID,
		EventType: arg.EventType,
		Payload:   arg.Payload,
		CreatedAt: time.Now().UTC(),
	})
	return nil
}

func (q *OutboxQueries) MarkOutboxSent(_ context.Context, id uuid.UUID) error {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	for i, e := range q.s.st.outbox {
		if e.ID == id {
			q.s.st.outbox[i].SentAt = sql.NullTime{Time: time.Now().UTC(), Valid: true}
		}
	}
	return nil
}
