package memstore

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	ledgerdb "github.com/mcdev12/trebol/go/internal/ledger/db"
	rosterdb "github.com/mcdev12/trebol/go/internal/roster/db"
)

// RosterQueries implements rosterdb.Querier
type RosterQueries struct{ s *Store }

var _ rosterdb.Querier = (*RosterQueries)(nil)

func (q *RosterQueries) ClearForSale(_ context.Context, arg rosterdb.ClearForSaleParams) error {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	k := key{arg.LeagueID, arg.PlayerID}
	if e, ok := q.s.st.roster[k]; ok {
		e.ForSale = false
		e.AskingPrice = decimal.NullDecimal{}
		q.s.st.roster[k] = e
	}
	return nil
}

func (q *RosterQueries) GetPlayerBasePrice(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	return q.s.Market().GetPlayerBasePrice(ctx, id)
}

func (q *RosterQueries) GetRosterEntryForUpdate(_ context.Context, arg rosterdb.GetRosterEntryForUpdateParams) (rosterdb.RosterEntry, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	e, ok := q.s.st.roster[key{arg.LeagueID, arg.PlayerID}]
	if !ok {
		return rosterdb.RosterEntry{}, sql.ErrNoRows
	}
	return rosterdb.RosterEntry(e), nil
}

func (q *RosterQueries) ListForSale(_ context.Context, leagueID uuid.UUID) ([]rosterdb.ListForSaleRow, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()

	var rows []rosterdb.ListForSaleRow
	for _, e := range q.s.sortedRoster(leagueID) {
		if !e.ForSale {
			continue
		}
		p := q.s.st.players[e.PlayerID]
		rows = append(rows, rosterdb.ListForSaleRow{
			LeagueID:    e.LeagueID,
			PlayerID:    e.PlayerID,
			UserID:      e.UserID,
			ForSale:     e.ForSale,
			AskingPrice: e.AskingPrice,
			AcquiredAt:  e.AcquiredAt,
			Name:        p.Name,
			Position:    p.Position,
			Team:        p.Team,
			Rating:      p.Rating,
			BasePrice:   p.BasePrice,
		})
	}
	return rows, nil
}

func (q *RosterQueries) ListRosterByMember(_ context.Context, arg rosterdb.ListRosterByMemberParams) ([]rosterdb.ListRosterByMemberRow, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()

	var rows []rosterdb.ListRosterByMemberRow
	for _, e := range q.s.sortedRoster(arg.LeagueID) {
		if e.UserID != arg.UserID {
			continue
		}
		p := q.s.st.players[e.PlayerID]
		rows = append(rows, rosterdb.ListRosterByMemberRow{
			LeagueID:    e.LeagueID,
			PlayerID:    e.PlayerID,
			UserID:      e.UserID,
			ForSale:     e.ForSale,
			AskingPrice: e.AskingPrice,
			AcquiredAt:  e.AcquiredAt,
			Name:        p.Name,
			Position:    p.Position,
			Team:        p.Team,
			Rating:      p.Rating,
			BasePrice:   p.BasePrice,
		})
	}
	return rows, nil
}

func (q *RosterQueries) SetForSale(_ context.Context, arg rosterdb.SetForSaleParams) error {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	k := key{arg.LeagueID, arg.PlayerID}
	if e, ok := q.s.st.roster[k]; ok {
		e.ForSale = true
		e.AskingPrice = arg.AskingPrice
		q.s.st.roster[k] = e
	}
	return nil
}

// sortedRoster expects s.mu to be held
func (s *Store) sortedRoster(leagueID uuid.UUID) []ledgerdb.RosterEntry {
	var out []ledgerdb.RosterEntry
	for k, e := range s.st.roster {
		if k.league == leagueID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		pi, pj := s.st.players[out[i].PlayerID], s.st.players[out[j].PlayerID]
		if pi.Rating != pj.Rating {
			return pi.Rating > pj.Rating
		}
		return pi.Name < pj.Name
	})
	return out
}
