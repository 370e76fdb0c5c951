package memstore

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	ledgerdb "github.com/mcdev12/trebol/go/internal/ledger/db"
)

// LedgerQueries implements ledgerdb.Querier
type LedgerQueries struct{ s *Store }

var _ ledgerdb.Querier = (*LedgerQueries)(nil)

func (q *LedgerQueries) CreditBalance(_ context.Context, arg ledgerdb.CreditBalanceParams) (decimal.Decimal, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()

	k := key{arg.LeagueID, arg.UserID}
	m, ok := q.s.st.members[k]
	if !ok {
		return decimal.Zero, sql.ErrNoRows
	}
	m.balance = m.balance.Add(arg.Amount)
	q.s.st.members[k] = m
	return m.balance, nil
}

func (q *LedgerQueries) DebitBalance(_ context.Context, arg ledgerdb.DebitBalanceParams) (decimal.Decimal, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()

	k := key{arg.LeagueID, arg.UserID}
	m, ok := q.s.st.members[k]
	if !ok || m.balance.LessThan(arg.Amount) {
		return decimal.Zero, sql.ErrNoRows
	}
	m.balance = m.balance.Sub(arg.Amount)
	q.s.st.members[k] = m
	return m.balance, nil
}

func (q *LedgerQueries) DeleteRosterEntry(_ context.Context, arg ledgerdb.DeleteRosterEntryParams) error {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	delete(q.s.st.roster, key{arg.LeagueID, arg.PlayerID})
	return nil
}

func (q *LedgerQueries) GetBalance(_ context.Context, arg ledgerdb.GetBalanceParams) (decimal.Decimal, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	m, ok := q.s.st.members[key{arg.LeagueID, arg.UserID}]
	if !ok {
		return decimal.Zero, sql.ErrNoRows
	}
	return m.balance, nil
}

func (q *LedgerQueries) GetRosterEntryForUpdate(_ context.Context, arg ledgerdb.GetRosterEntryForUpdateParams) (ledgerdb.RosterEntry, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	e, ok := q.s.st.roster[key{arg.LeagueID, arg.PlayerID}]
	if !ok {
		return ledgerdb.RosterEntry{}, sql.ErrNoRows
	}
	return e, nil
}

func (q *LedgerQueries) InsertRosterEntry(_ context.Context, arg ledgerdb.InsertRosterEntryParams) (ledgerdb.RosterEntry, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()

	k := key{arg.LeagueID, arg.PlayerID}
	if _, ok := q.s.st.roster[k]; ok {
		return ledgerdb.RosterEntry{}, fmt.Errorf("duplicate roster entry for player %s", arg.PlayerID)
	}
	if _, ok := q.s.st.members[key{arg.LeagueID, arg.UserID}]; !ok {
		return ledgerdb.RosterEntry{}, fmt.Errorf("membership %s not found", arg.UserID)
	}
	e := ledgerdb.RosterEntry{
		LeagueID:   arg.LeagueID,
		PlayerID:   arg.PlayerID,
		UserID:     arg.UserID,
		AcquiredAt: arg.AcquiredAt,
	}
	q.s.st.roster[k] = e
	return e, nil
}

func (q *LedgerQueries) InsertTransfer(_ context.Context, arg ledgerdb.InsertTransferParams) (ledgerdb.Transfer, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()

	t := ledgerdb.Transfer{
		ID:        uuid.New(),
		LeagueID:  arg.LeagueID,
		PlayerID:  arg.PlayerID,
		SellerID:  arg.SellerID,
		BuyerID:   arg.BuyerID,
		Amount:    arg.Amount,
		Kind:      arg.Kind,
		CreatedAt: arg.CreatedAt,
	}
	q.s.st.transfers = append(q.s.st.transfers, t)
	return t, nil
}

func (q *LedgerQueries) ListTransfers(_ context.Context, arg ledgerdb.ListTransfersParams) ([]ledgerdb.ListTransfersRow, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()

	var rows []ledgerdb.ListTransfersRow
	for _, t := range q.s.st.transfers {
		if t.LeagueID != arg.LeagueID {
			continue
		}
		rows = append(rows, ledgerdb.ListTransfersRow{
			ID:         t.ID,
			LeagueID:   t.LeagueID,
			PlayerID:   t.PlayerID,
			SellerID:   t.SellerID,
			BuyerID:    t.BuyerID,
			Amount:     t.Amount,
			Kind:       t.Kind,
			CreatedAt:  t.CreatedAt,
			PlayerName: q.s.st.players[t.PlayerID].Name,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	if int(arg.Limit) < len(rows) {
		rows = rows[:arg.Limit]
	}
	return rows, nil
}

func (q *LedgerQueries) LockMembership(ctx context.Context, arg ledgerdb.LockMembershipParams) (decimal.Decimal, error) {
	return q.GetBalance(ctx, ledgerdb.GetBalanceParams(arg))
}
