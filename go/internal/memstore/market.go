package memstore

import (
	"bytes"
	"context"
	"database/sql"
	"math/rand/v2"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	marketdb "github.com/mcdev12/trebol/go/internal/market/db"
)

// MarketQueries implements marketdb.Querier
type MarketQueries struct{ s *Store }

var _ marketdb.Querier = (*MarketQueries)(nil)

func (q *MarketQueries) AdvanceMarketCycle(_ context.Context, arg marketdb.AdvanceMarketCycleParams) (int64, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()

	c, ok := q.s.st.cycles[arg.LeagueID]
	if !ok || !c.GeneratedAt.Equal(arg.PrevGeneratedAt) {
		return 0, nil
	}
	c.GeneratedAt = arg.GeneratedAt
	c.Cycle++
	q.s.st.cycles[arg.LeagueID] = c
	return 1, nil
}

func (q *MarketQueries) ClearMarketListing(_ context.Context, leagueID uuid.UUID) error {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()

	for player, league := range q.s.st.listings {
		if league == leagueID {
			delete(q.s.st.listings, player)
		}
	}
	// market_bids cascade from the listing
	q.s.st.bids = filterBids(q.s.st.bids, func(b marketdb.MarketBid) bool {
		return b.LeagueID != leagueID
	})
	return nil
}

func (q *MarketQueries) CreateMarketCycle(_ context.Context, arg marketdb.CreateMarketCycleParams) (int64, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()

	if _, ok := q.s.st.cycles[arg.LeagueID]; ok {
		return 0, nil
	}
	q.s.st.cycles[arg.LeagueID] = marketdb.MarketCycle{
		LeagueID:    arg.LeagueID,
		GeneratedAt: arg.GeneratedAt,
		Cycle:       1,
	}
	return 1, nil
}

func (q *MarketQueries) DeleteMarketBid(_ context.Context, arg marketdb.DeleteMarketBidParams) (int64, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()

	before := len(q.s.st.bids)
	q.s.st.bids = filterBids(q.s.st.bids, func(b marketdb.MarketBid) bool {
		return !(b.LeagueID == arg.LeagueID && b.PlayerID == arg.PlayerID && b.UserID == arg.UserID)
	})
	return int64(before - len(q.s.st.bids)), nil
}

func (q *MarketQueries) DeleteMarketBids(_ context.Context, leagueID uuid.UUID) error {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	q.s.st.bids = filterBids(q.s.st.bids, func(b marketdb.MarketBid) bool {
		return b.LeagueID != leagueID
	})
	return nil
}

func (q *MarketQueries) GetMarketCycle(_ context.Context, leagueID uuid.UUID) (marketdb.MarketCycle, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	c, ok := q.s.st.cycles[leagueID]
	if !ok {
		return marketdb.MarketCycle{}, sql.ErrNoRows
	}
	return c, nil
}

func (q *MarketQueries) GetMarketCycleForUpdate(ctx context.Context, leagueID uuid.UUID) (marketdb.MarketCycle, error) {
	return q.GetMarketCycle(ctx, leagueID)
}

func (q *MarketQueries) GetPlayerBasePrice(_ context.Context, id uuid.UUID) (decimal.Decimal, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	p, ok := q.s.st.players[id]
	if !ok {
		return decimal.Zero, sql.ErrNoRows
	}
	return p.BasePrice, nil
}

func (q *MarketQueries) InsertMarketListing(_ context.Context, arg marketdb.InsertMarketListingParams) (int64, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	if _, ok := q.s.st.listings[arg.PlayerID]; ok {
		return 0, nil
	}
	q.s.st.listings[arg.PlayerID] = arg.LeagueID
	return 1, nil
}

func (q *MarketQueries) IsPlayerListed(_ context.Context, arg marketdb.IsPlayerListedParams) (bool, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	league, ok := q.s.st.listings[arg.PlayerID]
	return ok && league == arg.LeagueID, nil
}

func (q *MarketQueries) ListBidsByUser(_ context.Context, arg marketdb.ListBidsByUserParams) ([]marketdb.MarketBid, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()

	var out []marketdb.MarketBid
	for _, b := range q.s.st.bids {
		if b.LeagueID == arg.LeagueID && b.UserID == arg.UserID {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PlacedAt.After(out[j].PlacedAt)
	})
	return out, nil
}

func (q *MarketQueries) ListMarketListing(_ context.Context, leagueID uuid.UUID) ([]marketdb.Player, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()

	var out []marketdb.Player
	for player, league := range q.s.st.listings {
		if league == leagueID {
			out = append(out, q.s.st.players[player])
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return bytes.Compare(out[i].ID[:], out[j].ID[:]) < 0
	})
	return out, nil
}

func (q *MarketQueries) ListWinningBids(_ context.Context, leagueID uuid.UUID) ([]marketdb.MarketBid, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()

	best := make(map[uuid.UUID]marketdb.MarketBid)
	for _, b := range q.s.st.bids {
		if b.LeagueID != leagueID {
			continue
		}
		cur, ok := best[b.PlayerID]
		if !ok || outranks(b, cur) {
			best[b.PlayerID] = b
		}
	}

	out := make([]marketdb.MarketBid, 0, len(best))
	for _, b := range best {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i].PlayerID[:], out[j].PlayerID[:]) < 0
	})
	return out, nil
}

func (q *MarketQueries) PickEligiblePlayers(_ context.Context, arg marketdb.PickEligiblePlayersParams) ([]marketdb.Player, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()

	var pool []marketdb.Player
	for id, p := range q.s.st.players {
		if _, owned := q.s.st.roster[key{arg.LeagueID, id}]; owned {
			continue
		}
		if _, listed := q.s.st.listings[id]; listed {
			continue
		}
		pool = append(pool, p)
	}
	rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if int(arg.Limit) < len(pool) {
		pool = pool[:arg.Limit]
	}
	return pool, nil
}

func (q *MarketQueries) UpsertMarketBid(_ context.Context, arg marketdb.UpsertMarketBidParams) (marketdb.MarketBid, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()

	for i, b := range q.s.st.bids {
		if b.LeagueID == arg.LeagueID && b.PlayerID == arg.PlayerID && b.UserID == arg.UserID {
			b.Amount = arg.Amount
			b.PlacedAt = arg.PlacedAt
			q.s.st.bids[i] = b
			return b, nil
		}
	}

	q.s.st.nextBidID++
	b := marketdb.MarketBid{
		ID:       q.s.st.nextBidID,
		LeagueID: arg.LeagueID,
		PlayerID: arg.PlayerID,
		UserID:   arg.UserID,
		Amount:   arg.Amount,
		PlacedAt: arg.PlacedAt,
	}
	q.s.st.bids = append(q.s.st.bids, b)
	return b, nil
}

// outranks orders bids by amount desc, placed_at asc, id asc
func outranks(a, b marketdb.MarketBid) bool {
	if c := a.Amount.Cmp(b.Amount); c != 0 {
		return c > 0
	}
	if !a.PlacedAt.Equal(b.PlacedAt) {
		return a.PlacedAt.Before(b.PlacedAt)
	}
	return a.ID < b.ID
}

func filterBids(bids []marketdb.MarketBid, keep func(marketdb.MarketBid) bool) []marketdb.MarketBid {
	out := bids[:0:0]
	for _, b := range bids {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}
