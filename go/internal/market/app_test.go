package market_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"

	"github.com/mcdev12/trebol/go/internal/apperrors"
	"github.com/mcdev12/trebol/go/internal/events"
	ledgerdb "github.com/mcdev12/trebol/go/internal/ledger/db"
	"github.com/mcdev12/trebol/go/internal/lock"
	"github.com/mcdev12/trebol/go/internal/market"
	"github.com/mcdev12/trebol/go/internal/memstore"
	"github.com/mcdev12/trebol/go/internal/models"
	rosterdb "github.com/mcdev12/trebol/go/internal/roster/db"
)

var t0 = time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	store  *memstore.Store
	clock  *clockwork.FakeClock
	app    *market.App
	league uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	clock := clockwork.NewFakeClockAt(t0)
	return &fixture{
		store:  store,
		clock:  clock,
		league: uuid.New(),
		app: market.NewApp(
			market.NewRepository(store.Market()),
			store.MarketTransactor(clock),
			lock.NewLocalLock(time.Second),
			clock,
			market.DefaultConfig(),
		),
	}
}

func (f *fixture) member(balance int64) uuid.UUID {
	id := uuid.New()
	f.store.AddMember(f.league, id, balance)
	return id
}

// listed puts a fresh player in the league listing stamped at the current time
func (f *fixture) listed(name string, basePrice int64) uuid.UUID {
	p := f.store.AddPlayer(name, "MID", 80, basePrice)
	f.store.List(f.league, p)
	f.store.SetCycle(f.league, f.clock.Now())
	return p
}

func (f *fixture) bid(t *testing.T, user, player uuid.UUID, amount int64) {
	t.Helper()
	_, err := f.app.PlaceBid(context.Background(), user, market.PlaceBidRequest{
		LeagueID: f.league,
		PlayerID: player,
		Amount:   decimal.NewFromInt(amount),
	})
	if err != nil {
		t.Fatalf("PlaceBid(%d): %v", amount, err)
	}
}

func (f *fixture) expire() {
	f.clock.Advance(24 * time.Hour)
}

func assertBalance(t *testing.T, f *fixture, user uuid.UUID, want int64) {
	t.Helper()
	if got := f.store.Balance(f.league, user); !got.Equal(decimal.NewFromInt(want)) {
		t.Fatalf("expected balance %d, got %s", want, got)
	}
}

func assertInvariants(t *testing.T, f *fixture, users ...uuid.UUID) {
	t.Helper()
	owned := make(map[uuid.UUID]bool)
	for _, e := range f.store.RosterEntries(f.league) {
		if owned[e.PlayerID] {
			t.Fatalf("player %s owned twice", e.PlayerID)
		}
		owned[e.PlayerID] = true
	}
	for _, p := range f.store.Listed(f.league) {
		if owned[p] {
			t.Fatalf("listed player %s is owned in the same league", p)
		}
	}
	for _, u := range users {
		if f.store.Balance(f.league, u).IsNegative() {
			t.Fatalf("negative balance for %s", u)
		}
	}
}

func transfersOfKind(store *memstore.Store, kind ledgerdb.TransferKind) []ledgerdb.Transfer {
	var out []ledgerdb.Transfer
	for _, tr := range store.Transfers() {
		if tr.Kind == kind {
			out = append(out, tr)
		}
	}
	return out
}

func TestFirstReadGeneratesListing(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 30; i++ {
		f.store.AddPlayer("player", "FWD", int32(i), 100)
	}

	m, err := f.app.GetMarket(context.Background(), f.league)
	if err != nil {
		t.Fatalf("GetMarket: %v", err)
	}
	if len(m.Players) != market.DefaultSize {
		t.Fatalf("expected %d players, got %d", market.DefaultSize, len(m.Players))
	}
	if !m.GeneratedAt.Equal(t0) {
		t.Fatalf("expected generatedAt %s, got %s", t0, m.GeneratedAt)
	}
	if !m.ExpiresAt.Equal(t0.Add(24 * time.Hour)) {
		t.Fatalf("unexpected expiresAt %s", m.ExpiresAt)
	}
	if len(f.store.Transfers()) != 0 {
		t.Fatal("first generation must not settle anything")
	}

	evs := f.store.Events()
	if len(evs) != 1 || evs[0].EventType != events.EventTypeMarketRefreshed {
		t.Fatalf("expected one MarketRefreshed event, got %+v", evs)
	}
}

func TestListingSkipsOwnedAndTakesWhatIsLeft(t *testing.T) {
	f := newFixture(t)
	owner := f.member(0)
	var ids []uuid.UUID
	for i := 0; i < 5; i++ {
		ids = append(ids, f.store.AddPlayer("p", "DEF", 70, 100))
	}
	f.store.SetOwner(f.league, ids[0], owner)
	f.store.SetOwner(f.league, ids[1], owner)

	// listed by another league
	other := uuid.New()
	f.store.List(other, ids[2])

	m, err := f.app.GetMarket(context.Background(), f.league)
	if err != nil {
		t.Fatalf("GetMarket: %v", err)
	}
	if len(m.Players) != 2 {
		t.Fatalf("expected 2 eligible players, got %d", len(m.Players))
	}
	for _, p := range m.Players {
		if p.ID == ids[0] || p.ID == ids[1] || p.ID == ids[2] {
			t.Fatalf("ineligible player %s listed", p.ID)
		}
	}
	assertInvariants(t, f, owner)
}

func TestReadsWithinWindowAreIdempotent(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 40; i++ {
		f.store.AddPlayer("p", "GK", 60, 100)
	}
	ctx := context.Background()

	first, err := f.app.GetMarket(ctx, f.league)
	if err != nil {
		t.Fatal(err)
	}
	f.clock.Advance(23*time.Hour + 59*time.Minute)
	second, err := f.app.GetMarket(ctx, f.league)
	if err != nil {
		t.Fatal(err)
	}

	if !first.GeneratedAt.Equal(*second.GeneratedAt) {
		t.Fatalf("generatedAt changed: %s vs %s", first.GeneratedAt, second.GeneratedAt)
	}
	if len(first.Players) != len(second.Players) {
		t.Fatalf("listing size changed: %d vs %d", len(first.Players), len(second.Players))
	}
	for i := range first.Players {
		if first.Players[i].ID != second.Players[i].ID {
			t.Fatalf("listing changed at %d", i)
		}
	}

	f.clock.Advance(time.Minute)
	third, err := f.app.GetMarket(ctx, f.league)
	if err != nil {
		t.Fatal(err)
	}
	if !third.GeneratedAt.Equal(t0.Add(24 * time.Hour)) {
		t.Fatalf("expected regeneration at 24h, got %s", third.GeneratedAt)
	}
}

func TestListingOrderIsStableForIdenticalPlayers(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 40; i++ {
		f.listed("Twin", 100)
	}
	ctx := context.Background()

	first, err := f.app.GetMarket(ctx, f.league)
	if err != nil {
		t.Fatal(err)
	}
	if len(first.Players) != 40 {
		t.Fatalf("expected 40 listed players, got %d", len(first.Players))
	}
	for i := 1; i < len(first.Players); i++ {
		if bytes.Compare(first.Players[i-1].ID[:], first.Players[i].ID[:]) >= 0 {
			t.Fatalf("players with equal rating and name must be ordered by id, broke at %d", i)
		}
	}

	for round := 0; round < 10; round++ {
		f.clock.Advance(time.Hour)
		again, err := f.app.GetMarket(ctx, f.league)
		if err != nil {
			t.Fatal(err)
		}
		for i := range first.Players {
			if first.Players[i].ID != again.Players[i].ID {
				t.Fatalf("round %d: listing order changed at %d", round, i)
			}
		}
	}
}

func TestHighestBidWins(t *testing.T) {
	f := newFixture(t)
	x := f.member(1000)
	y := f.member(1000)
	p := f.listed("Pedri", 100)

	f.bid(t, x, p, 500)
	f.bid(t, y, p, 700)
	f.expire()

	if _, err := f.app.GetMarket(context.Background(), f.league); err != nil {
		t.Fatalf("GetMarket: %v", err)
	}

	if owner, ok := f.store.Owner(f.league, p); !ok || owner != y {
		t.Fatalf("expected %s to own the player, got %s (owned=%v)", y, owner, ok)
	}
	assertBalance(t, f, y, 300)
	assertBalance(t, f, x, 1000)

	trs := transfersOfKind(f.store, ledgerdb.TransferKindMARKETPURCHASE)
	if len(trs) != 1 {
		t.Fatalf("expected one market purchase, got %d", len(trs))
	}
	tr := trs[0]
	if !tr.BuyerID.Valid || tr.BuyerID.UUID != y || tr.SellerID.Valid {
		t.Fatalf("unexpected parties %+v", tr)
	}
	if !tr.Amount.Equal(decimal.NewFromInt(700)) {
		t.Fatalf("expected amount 700, got %s", tr.Amount)
	}
	if len(f.store.Bids(f.league)) != 0 {
		t.Fatal("expected bids to be cleared")
	}
	assertInvariants(t, f, x, y)
}

func TestWinnerWithoutFundsIsSkipped(t *testing.T) {
	f := newFixture(t)
	x := f.member(1000)
	y := f.member(1000)
	p := f.listed("Gavi", 100)

	f.bid(t, x, p, 1000)
	f.bid(t, y, p, 800)
	f.store.SetBalance(f.league, x, 200)
	f.expire()

	if _, err := f.app.GetMarket(context.Background(), f.league); err != nil {
		t.Fatalf("GetMarket: %v", err)
	}

	if _, ok := f.store.Owner(f.league, p); ok {
		t.Fatal("player must stay unowned when the winner cannot pay")
	}
	assertBalance(t, f, x, 200)
	assertBalance(t, f, y, 1000)
	if len(f.store.Transfers()) != 0 {
		t.Fatal("expected no transfer record")
	}
	if len(f.store.Bids(f.league)) != 0 {
		t.Fatal("expected bids to be cleared")
	}
}

func TestLaterBidReplacesEarlier(t *testing.T) {
	f := newFixture(t)
	x := f.member(1000)
	y := f.member(1000)
	p := f.listed("Yamal", 100)

	f.bid(t, x, p, 500)
	f.bid(t, x, p, 400)
	f.bid(t, y, p, 450)

	bids := f.store.Bids(f.league)
	if len(bids) != 2 {
		t.Fatalf("expected one bid per account, got %d", len(bids))
	}
	for _, b := range bids {
		if b.UserID == x && !b.Amount.Equal(decimal.NewFromInt(400)) {
			t.Fatalf("expected replaced amount 400, got %s", b.Amount)
		}
	}

	f.expire()
	if _, err := f.app.GetMarket(context.Background(), f.league); err != nil {
		t.Fatal(err)
	}
	if owner, _ := f.store.Owner(f.league, p); owner != y {
		t.Fatalf("expected %s to win with 450, got %s", y, owner)
	}
}

func TestTieGoesToEarliestBid(t *testing.T) {
	f := newFixture(t)
	x := f.member(1000)
	y := f.member(1000)
	p := f.listed("Olmo", 100)

	f.bid(t, y, p, 600)
	f.clock.Advance(time.Second)
	f.bid(t, x, p, 600)

	f.expire()
	if _, err := f.app.GetMarket(context.Background(), f.league); err != nil {
		t.Fatal(err)
	}
	if owner, _ := f.store.Owner(f.league, p); owner != y {
		t.Fatalf("expected earliest bidder %s to win, got %s", y, owner)
	}
	assertBalance(t, f, x, 1000)
	assertBalance(t, f, y, 400)
}

func TestResolutionSettlesEachPlayerIndependently(t *testing.T) {
	f := newFixture(t)
	x := f.member(1000)
	p1 := f.listed("Raphinha", 100)
	p2 := f.listed("Kounde", 100)
	p3 := f.listed("Balde", 100)

	f.bid(t, x, p1, 600)
	f.bid(t, x, p2, 600)
	f.expire()

	if _, err := f.app.GetMarket(context.Background(), f.league); err != nil {
		t.Fatal(err)
	}

	won := 0
	for _, p := range []uuid.UUID{p1, p2} {
		if owner, ok := f.store.Owner(f.league, p); ok && owner == x {
			won++
		}
	}
	if won != 1 {
		t.Fatalf("expected exactly one of two 600 bids to settle with 1000, got %d", won)
	}
	if _, ok := f.store.Owner(f.league, p3); ok {
		t.Fatal("player without bids must stay unowned")
	}
	assertBalance(t, f, x, 400)
	assertInvariants(t, f, x)
}

func TestConcurrentReadsAfterExpirySettleOnce(t *testing.T) {
	f := newFixture(t)
	x := f.member(1000)
	p := f.listed("Araujo", 100)
	for i := 0; i < 30; i++ {
		f.store.AddPlayer("filler", "DEF", 50, 100)
	}
	f.bid(t, x, p, 300)
	f.expire()

	var wg sync.WaitGroup
	results := make([]*models.Market, 12)
	errs := make([]error, len(results))
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = f.app.GetMarket(context.Background(), f.league)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("reader %d: %v", i, err)
		}
		if !results[i].GeneratedAt.Equal(*results[0].GeneratedAt) {
			t.Fatalf("readers saw different cycles: %s vs %s", results[i].GeneratedAt, results[0].GeneratedAt)
		}
	}
	if n := len(f.store.Transfers()); n != 1 {
		t.Fatalf("expected a single settlement, got %d", n)
	}
	assertBalance(t, f, x, 700)

	refreshed := 0
	for _, ev := range f.store.Events() {
		if ev.EventType == events.EventTypeMarketRefreshed {
			refreshed++
		}
	}
	if refreshed != 1 {
		t.Fatalf("expected one regeneration, got %d", refreshed)
	}
	assertInvariants(t, f, x)
}

type busyLock struct{}

func (busyLock) Acquire(context.Context, string) (string, bool, error) { return "", false, nil }
func (busyLock) Release(context.Context, string, string) error        { return nil }

func TestBusyLockServesCurrentListing(t *testing.T) {
	f := newFixture(t)
	x := f.member(1000)
	p := f.listed("Fermin", 100)
	f.bid(t, x, p, 300)
	f.expire()

	app := market.NewApp(market.NewRepository(f.store.Market()), f.store.MarketTransactor(f.clock), busyLock{}, f.clock, market.DefaultConfig())
	m, err := app.GetMarket(context.Background(), f.league)
	if err != nil {
		t.Fatalf("GetMarket: %v", err)
	}
	if !m.GeneratedAt.Equal(t0) || len(m.Players) != 1 {
		t.Fatalf("expected the stale listing, got %+v", m)
	}
	if len(f.store.Transfers()) != 0 {
		t.Fatal("must not resolve without the lock")
	}
}

func TestBusyLockWithoutCycleServesEmptyListing(t *testing.T) {
	f := newFixture(t)
	app := market.NewApp(market.NewRepository(f.store.Market()), f.store.MarketTransactor(f.clock), busyLock{}, f.clock, market.DefaultConfig())

	m, err := app.GetMarket(context.Background(), f.league)
	if err != nil {
		t.Fatalf("GetMarket: %v", err)
	}
	if len(m.Players) != 0 {
		t.Fatalf("expected no players, got %d", len(m.Players))
	}
	if m.GeneratedAt != nil || m.ExpiresAt != nil {
		t.Fatalf("expected no timestamps, got %v / %v", m.GeneratedAt, m.ExpiresAt)
	}

	body, err := json.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(body, []byte("generatedAt")) || bytes.Contains(body, []byte("expiresAt")) {
		t.Fatalf("timestamps must be omitted, got %s", body)
	}
}

// committedLock reports the lock as held after the holder has stamped a new cycle
type committedLock struct {
	commit func()
}

func (l committedLock) Acquire(context.Context, string) (string, bool, error) {
	l.commit()
	return "", false, nil
}
func (committedLock) Release(context.Context, string, string) error { return nil }

func TestBusyLockServesCycleCommittedByHolder(t *testing.T) {
	f := newFixture(t)
	p := f.store.AddPlayer("Pedri", "MID", 88, 100)
	lk := committedLock{commit: func() {
		f.store.List(f.league, p)
		f.store.SetCycle(f.league, f.clock.Now())
	}}
	app := market.NewApp(market.NewRepository(f.store.Market()), f.store.MarketTransactor(f.clock), lk, f.clock, market.DefaultConfig())

	m, err := app.GetMarket(context.Background(), f.league)
	if err != nil {
		t.Fatalf("GetMarket: %v", err)
	}
	if m.GeneratedAt == nil || !m.GeneratedAt.Equal(t0) {
		t.Fatalf("expected the holder's cycle, got %v", m.GeneratedAt)
	}
	if m.ExpiresAt == nil || !m.ExpiresAt.Equal(t0.Add(24*time.Hour)) {
		t.Fatalf("unexpected expiresAt %v", m.ExpiresAt)
	}
	if len(m.Players) != 1 || m.Players[0].ID != p {
		t.Fatalf("expected the holder's listing, got %+v", m.Players)
	}
}

var errBroker = errors.New("outbox unavailable")

type failingRecorder struct{}

func (failingRecorder) Record(context.Context, uuid.UUID, string, any) error { return errBroker }
func (failingRecorder) RecordTransfer(context.Context, *models.Transfer) error {
	return errBroker
}

type failingEventsTx struct{ inner market.Transactor }

func (f failingEventsTx) WithinTx(ctx context.Context, fn func(*market.Stores) error) error {
	return f.inner.WithinTx(ctx, func(s *market.Stores) error {
		s.Events = failingRecorder{}
		return fn(s)
	})
}

func TestStorageFailureRollsBackWholeCycle(t *testing.T) {
	f := newFixture(t)
	x := f.member(1000)
	p := f.listed("Cubarsi", 100)
	f.bid(t, x, p, 300)
	f.expire()

	app := market.NewApp(
		market.NewRepository(f.store.Market()),
		failingEventsTx{inner: f.store.MarketTransactor(f.clock)},
		lock.NewLocalLock(time.Second),
		f.clock,
		market.DefaultConfig(),
	)
	_, err := app.GetMarket(context.Background(), f.league)
	if !errors.Is(err, errBroker) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if apperrors.KindOf(err) != apperrors.KindStorageUnavailable {
		t.Fatalf("expected storage_unavailable, got %s", apperrors.KindOf(err))
	}

	assertBalance(t, f, x, 1000)
	if _, ok := f.store.Owner(f.league, p); ok {
		t.Fatal("ownership must roll back")
	}
	if len(f.store.Bids(f.league)) != 1 {
		t.Fatal("bids must survive a failed cycle")
	}

	// a healthy read afterwards settles normally
	if _, err := f.app.GetMarket(context.Background(), f.league); err != nil {
		t.Fatal(err)
	}
	if owner, _ := f.store.Owner(f.league, p); owner != x {
		t.Fatal("expected settlement on retry")
	}
}

func TestPlaceBidRejections(t *testing.T) {
	f := newFixture(t)
	x := f.member(500)
	p := f.listed("Lewandowski", 200)
	unlisted := f.store.AddPlayer("Szczesny", "GK", 70, 100)
	ctx := context.Background()

	cases := []struct {
		name   string
		user   uuid.UUID
		player uuid.UUID
		amount int64
		kind   apperrors.Kind
	}{
		{"zero amount", x, p, 0, apperrors.KindValidation},
		{"below base price", x, p, 150, apperrors.KindValidation},
		{"not listed", x, unlisted, 300, apperrors.KindNotListed},
		{"not a member", uuid.New(), p, 300, apperrors.KindAuthorization},
		{"insufficient funds", x, p, 600, apperrors.KindInsufficientFunds},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.app.PlaceBid(ctx, tc.user, market.PlaceBidRequest{
				LeagueID: f.league,
				PlayerID: tc.player,
				Amount:   decimal.NewFromInt(tc.amount),
			})
			if got := apperrors.KindOf(err); got != tc.kind {
				t.Fatalf("expected %s, got %s (%v)", tc.kind, got, err)
			}
		})
	}
	if len(f.store.Bids(f.league)) != 0 {
		t.Fatal("rejected bids must not be stored")
	}
}

func TestWithdrawBid(t *testing.T) {
	f := newFixture(t)
	x := f.member(500)
	p := f.listed("Ferran", 100)
	f.bid(t, x, p, 200)
	ctx := context.Background()

	bids, err := f.app.ListBids(ctx, f.league, x)
	if err != nil || len(bids) != 1 {
		t.Fatalf("expected one bid, got %v %v", bids, err)
	}
	if err := f.app.WithdrawBid(ctx, f.league, p, x); err != nil {
		t.Fatalf("WithdrawBid: %v", err)
	}
	if err := f.app.WithdrawBid(ctx, f.league, p, x); !apperrors.Is(err, apperrors.KindNotFound) {
		t.Fatalf("expected not found on second withdraw, got %v", err)
	}
}

func forSale(t *testing.T, f *fixture, player uuid.UUID, price int64) {
	t.Helper()
	err := f.store.Roster().SetForSale(context.Background(), rosterdb.SetForSaleParams{
		LeagueID:    f.league,
		PlayerID:    player,
		AskingPrice: decimal.NewNullDecimal(decimal.NewFromInt(price)),
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestBuyDirect(t *testing.T) {
	f := newFixture(t)
	seller := f.member(100)
	buyer := f.member(1000)
	p := f.store.AddPlayer("De Jong", "MID", 85, 100)
	f.store.SetOwner(f.league, p, seller)
	forSale(t, f, p, 300)

	tr, err := f.app.BuyDirect(context.Background(), buyer, market.BuyDirectRequest{LeagueID: f.league, PlayerID: p})
	if err != nil {
		t.Fatalf("BuyDirect: %v", err)
	}
	if tr.Kind != models.TransferKindPeerPurchase || !tr.Amount.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("unexpected transfer %+v", tr)
	}

	assertBalance(t, f, buyer, 700)
	assertBalance(t, f, seller, 400)
	if owner, _ := f.store.Owner(f.league, p); owner != buyer {
		t.Fatalf("expected ownership to flip to %s, got %s", buyer, owner)
	}
	if n := len(transfersOfKind(f.store, ledgerdb.TransferKindPEERPURCHASE)); n != 1 {
		t.Fatalf("expected one peer purchase, got %d", n)
	}
	for _, e := range f.store.RosterEntries(f.league) {
		if e.PlayerID == p && e.ForSale {
			t.Fatal("for sale flag must clear on transfer")
		}
	}
}

func TestBuyDirectRejections(t *testing.T) {
	f := newFixture(t)
	seller := f.member(0)
	buyer := f.member(100)
	listedFor := f.store.AddPlayer("Christensen", "DEF", 75, 50)
	f.store.SetOwner(f.league, listedFor, seller)
	forSale(t, f, listedFor, 300)
	notForSale := f.store.AddPlayer("Inigo", "DEF", 78, 50)
	f.store.SetOwner(f.league, notForSale, seller)
	unowned := f.store.AddPlayer("Free", "FWD", 60, 50)
	ctx := context.Background()

	cases := []struct {
		name   string
		buyer  uuid.UUID
		player uuid.UUID
		kind   apperrors.Kind
	}{
		{"unowned", buyer, unowned, apperrors.KindNotOwned},
		{"not for sale", buyer, notForSale, apperrors.KindNotListed},
		{"own player", seller, listedFor, apperrors.KindValidation},
		{"insufficient funds", buyer, listedFor, apperrors.KindInsufficientFunds},
		{"not a member", uuid.New(), listedFor, apperrors.KindAuthorization},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.app.BuyDirect(ctx, tc.buyer, market.BuyDirectRequest{LeagueID: f.league, PlayerID: tc.player})
			if got := apperrors.KindOf(err); got != tc.kind {
				t.Fatalf("expected %s, got %s (%v)", tc.kind, got, err)
			}
		})
	}

	assertBalance(t, f, buyer, 100)
	assertBalance(t, f, seller, 0)
	if owner, _ := f.store.Owner(f.league, listedFor); owner != seller {
		t.Fatal("ownership must not change on rejection")
	}
	if len(f.store.Transfers()) != 0 {
		t.Fatal("rejections must not record history")
	}
}
