// Package ledger holds the balance and ownership primitives shared by the
// market, roster and direct purchase flows. Every primitive runs on the
// querier it was built with, so callers bind a Ledger to their transaction
// and perform authorization before calling in.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"

	"github.com/mcdev12/trebol/go/internal/apperrors"
	"github.com/mcdev12/trebol/go/internal/ledger/db"
	"github.com/mcdev12/trebol/go/internal/models"
	"github.com/mcdev12/trebol/go/internal/sqlutil"
)

// Querier defines what the ledger needs from the database layer
type Querier interface {
	CreditBalance(ctx context.Context, arg db.CreditBalanceParams) (decimal.Decimal, error)
	DebitBalance(ctx context.Context, arg db.DebitBalanceParams) (decimal.Decimal, error)
	DeleteRosterEntry(ctx context.Context, arg db.DeleteRosterEntryParams) error
	GetBalance(ctx context.Context, arg db.GetBalanceParams) (decimal.Decimal, error)
	GetRosterEntryForUpdate(ctx context.Context, arg db.GetRosterEntryForUpdateParams) (db.RosterEntry, error)
	InsertRosterEntry(ctx context.Context, arg db.InsertRosterEntryParams) (db.RosterEntry, error)
	InsertTransfer(ctx context.Context, arg db.InsertTransferParams) (db.Transfer, error)
	ListTransfers(ctx context.Context, arg db.ListTransfersParams) ([]db.ListTransfersRow, error)
	LockMembership(ctx context.Context, arg db.LockMembershipParams) (decimal.Decimal, error)
}

// Ledger mutates balances and roster ownership
type Ledger struct {
	queries Querier
	clock   clockwork.Clock
}

// New creates a Ledger bound to querier
func New(querier Querier, clock clockwork.Clock) *Ledger {
	return &Ledger{
		queries: querier,
		clock:   clock,
	}
}

// Debit decreases the balance of userID in leagueID by amount and returns
// the new balance. The funds check and the decrement are one statement.
func (l *Ledger) Debit(ctx context.Context, leagueID, userID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, apperrors.Validation("debit amount must not be negative")
	}

	balance, err := l.queries.DebitBalance(ctx, db.DebitBalanceParams{
		LeagueID: leagueID,
		UserID:   userID,
		Amount:   amount,
	})
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, fmt.Errorf("failed to debit balance: %w", err)
	}

	// No row updated: either the membership is missing or funds are short.
	if _, err := l.Balance(ctx, leagueID, userID); err != nil {
		return decimal.Zero, err
	}
	return decimal.Zero, apperrors.ErrInsufficientFunds
}

// Credit increases the balance of userID in leagueID by amount
func (l *Ledger) Credit(ctx context.Context, leagueID, userID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, apperrors.Validation("credit amount must not be negative")
	}

	balance, err := l.queries.CreditBalance(ctx, db.CreditBalanceParams{
		LeagueID: leagueID,
		UserID:   userID,
		Amount:   amount,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, apperrors.NotFound("membership")
		}
		return decimal.Zero, fmt.Errorf("failed to credit balance: %w", err)
	}
	return balance, nil
}

// Balance returns the current balance of userID in leagueID
func (l *Ledger) Balance(ctx context.Context, leagueID, userID uuid.UUID) (decimal.Decimal, error) {
	balance, err := l.queries.GetBalance(ctx, db.GetBalanceParams{
		LeagueID: leagueID,
		UserID:   userID,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, apperrors.NotFound("membership")
		}
		return decimal.Zero, fmt.Errorf("failed to get balance: %w", err)
	}
	return balance, nil
}

// LockMembership row-locks the membership of userID in leagueID until the
// surrounding transaction ends and returns its balance. A missing membership
// is reported as ErrNotMember.
func (l *Ledger) LockMembership(ctx context.Context, leagueID, userID uuid.UUID) (decimal.Decimal, error) {
	balance, err := l.queries.LockMembership(ctx, db.LockMembershipParams{
		LeagueID: leagueID,
		UserID:   userID,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, apperrors.ErrNotMember
		}
		return decimal.Zero, fmt.Errorf("failed to lock membership: %w", err)
	}
	return balance, nil
}

// Owner returns the locked roster entry for playerID in leagueID, or nil
// when nobody in the league owns the player.
func (l *Ledger) Owner(ctx context.Context, leagueID, playerID uuid.UUID) (*models.RosterEntry, error) {
	entry, err := l.queries.GetRosterEntryForUpdate(ctx, db.GetRosterEntryForUpdateParams{
		LeagueID: leagueID,
		PlayerID: playerID,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get roster entry: %w", err)
	}
	return dbRosterEntryToModel(entry), nil
}

// TransferOwnership moves playerID within leagueID to the account to. When
// from is nil the player must be unowned; otherwise from must be the current
// owner. The new entry is never flagged for sale.
func (l *Ledger) TransferOwnership(ctx context.Context, leagueID, playerID uuid.UUID, from *uuid.UUID, to uuid.UUID) (*models.RosterEntry, error) {
	current, err := l.Owner(ctx, leagueID, playerID)
	if err != nil {
		return nil, err
	}

	switch {
	case from != nil && (current == nil || current.UserID != *from):
		return nil, apperrors.ErrNotOwned
	case from == nil && current != nil:
		return nil, apperrors.Conflict("player is already owned in this league")
	}

	if current != nil {
		if err := l.queries.DeleteRosterEntry(ctx, db.DeleteRosterEntryParams{
			LeagueID: leagueID,
			PlayerID: playerID,
		}); err != nil {
			return nil, fmt.Errorf("failed to delete roster entry: %w", err)
		}
	}

	entry, err := l.queries.InsertRosterEntry(ctx, db.InsertRosterEntryParams{
		LeagueID:   leagueID,
		PlayerID:   playerID,
		UserID:     to,
		AcquiredAt: l.clock.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert roster entry: %w", err)
	}
	return dbRosterEntryToModel(entry), nil
}

// ReleaseOwnership removes the roster entry of playerID owned by from,
// returning the player to the unowned pool.
func (l *Ledger) ReleaseOwnership(ctx context.Context, leagueID, playerID, from uuid.UUID) error {
	current, err := l.Owner(ctx, leagueID, playerID)
	if err != nil {
		return err
	}
	if current == nil || current.UserID != from {
		return apperrors.ErrNotOwned
	}

	if err := l.queries.DeleteRosterEntry(ctx, db.DeleteRosterEntryParams{
		LeagueID: leagueID,
		PlayerID: playerID,
	}); err != nil {
		return fmt.Errorf("failed to delete roster entry: %w", err)
	}
	return nil
}

// AppendHistory records an immutable transfer entry
func (l *Ledger) AppendHistory(ctx context.Context, t models.Transfer) (*models.Transfer, error) {
	createdAt := t.CreatedAt
	if createdAt.IsZero() {
		createdAt = l.clock.Now().UTC()
	}

	row, err := l.queries.InsertTransfer(ctx, db.InsertTransferParams{
		LeagueID:  t.LeagueID,
		PlayerID:  t.PlayerID,
		SellerID:  sqlutil.ToNullUUID(t.SellerID),
		BuyerID:   sqlutil.ToNullUUID(t.BuyerID),
		Amount:    t.Amount,
		Kind:      db.TransferKind(t.Kind),
		CreatedAt: createdAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert transfer: %w", err)
	}

	return &models.Transfer{
		ID:         row.ID,
		LeagueID:   row.LeagueID,
		PlayerID:   row.PlayerID,
		PlayerName: t.PlayerName,
		SellerID:   sqlutil.FromNullUUID(row.SellerID),
		BuyerID:    sqlutil.FromNullUUID(row.BuyerID),
		Amount:     row.Amount,
		Kind:       models.TransferKind(row.Kind),
		CreatedAt:  row.CreatedAt,
	}, nil
}

// History lists the newest transfers of leagueID
func (l *Ledger) History(ctx context.Context, leagueID uuid.UUID, limit int32) ([]models.Transfer, error) {
	rows, err := l.queries.ListTransfers(ctx, db.ListTransfersParams{
		LeagueID: leagueID,
		Limit:    limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}

	transfers := make([]models.Transfer, len(rows))
	for i, row := range rows {
		transfers[i] = models.Transfer{
			ID:         row.ID,
			LeagueID:   row.LeagueID,
			PlayerID:   row.PlayerID,
			PlayerName: row.PlayerName,
			SellerID:   sqlutil.FromNullUUID(row.SellerID),
			BuyerID:    sqlutil.FromNullUUID(row.BuyerID),
			Amount:     row.Amount,
			Kind:       models.TransferKind(row.Kind),
			CreatedAt:  row.CreatedAt,
		}
	}
	return transfers, nil
}

func dbRosterEntryToModel(e db.RosterEntry) *models.RosterEntry {
	return &models.RosterEntry{
		LeagueID:    e.LeagueID,
		PlayerID:    e.PlayerID,
		UserID:      e.UserID,
		ForSale:     e.ForSale,
		AskingPrice: sqlutil.FromNullDecimal(e.AskingPrice),
		AcquiredAt:  e.AcquiredAt,
	}
}
