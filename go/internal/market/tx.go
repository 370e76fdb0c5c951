package market

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/mcdev12/trebol/go/internal/ledger"
	ledgerdb "github.com/mcdev12/trebol/go/internal/ledger/db"
	marketdb "github.com/mcdev12/trebol/go/internal/market/db"
	"github.com/mcdev12/trebol/go/internal/models"
	"github.com/mcdev12/trebol/go/internal/outbox"
	outboxdb "github.com/mcdev12/trebol/go/internal/outbox/db"
	"github.com/mcdev12/trebol/go/internal/sqlutil"
)

// EventRecorder writes league events alongside the state change they describe
type EventRecorder interface {
	Record(ctx context.Context, leagueID uuid.UUID, eventType string, payload any) error
	RecordTransfer(ctx context.Context, t *models.Transfer) error
}

// Stores are the repositories bound to one transaction
type Stores struct {
	Market *Repository
	Ledger *ledger.Ledger
	Events EventRecorder
}

// Transactor runs fn with stores bound to a single transaction. The
// transaction commits when fn returns nil.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(s *Stores) error) error
}

// SQLTransactor is the Postgres Transactor
type SQLTransactor struct {
	db    *sql.DB
	clock clockwork.Clock
}

func NewSQLTransactor(db *sql.DB, clock clockwork.Clock) *SQLTransactor {
	return &SQLTransactor{db: db, clock: clock}
}

func (t *SQLTransactor) WithinTx(ctx context.Context, fn func(s *Stores) error) error {
	return sqlutil.Run(ctx, t.db, t.newStores, fn)
}

func (t *SQLTransactor) newStores(tx *sql.Tx) *Stores {
	return &Stores{
		Market: NewRepository(marketdb.New(tx)),
		Ledger: ledger.New(ledgerdb.New(tx), t.clock),
		Events: outbox.NewRepository(outboxdb.New(tx)),
	}
}
