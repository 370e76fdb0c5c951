package roster_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"

	"github.com/mcdev12/trebol/go/internal/apperrors"
	"github.com/mcdev12/trebol/go/internal/events"
	"github.com/mcdev12/trebol/go/internal/memstore"
	"github.com/mcdev12/trebol/go/internal/models"
	"github.com/mcdev12/trebol/go/internal/roster"
)

type fixture struct {
	store  *memstore.Store
	app    *roster.App
	league uuid.UUID
	owner  uuid.UUID
	player uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	clock := clockwork.NewFakeClockAt(time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC))
	f := &fixture{
		store:  store,
		app:    roster.NewApp(roster.NewRepository(store.Roster()), store.RosterTransactor(clock), clock),
		league: uuid.New(),
		owner:  uuid.New(),
	}
	store.AddMember(f.league, f.owner, 100)
	f.player = store.AddPlayer("Lewandowski", "FWD", 88, 20000)
	store.SetOwner(f.league, f.player, f.owner)
	return f
}

func TestRosterAndForSale(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	entries, err := f.app.Roster(ctx, f.league, f.owner)
	if err != nil {
		t.Fatalf("Roster: %v", err)
	}
	if len(entries) != 1 || entries[0].Player == nil || entries[0].Player.Name != "Lewandowski" {
		t.Fatalf("unexpected roster %+v", entries)
	}

	if err := f.app.ListForSale(ctx, f.owner, f.league, f.player, decimal.NewFromInt(30000)); err != nil {
		t.Fatalf("ListForSale: %v", err)
	}
	forSale, err := f.app.ForSale(ctx, f.league)
	if err != nil {
		t.Fatal(err)
	}
	if len(forSale) != 1 || forSale[0].AskingPrice == nil || !forSale[0].AskingPrice.Equal(decimal.NewFromInt(30000)) {
		t.Fatalf("unexpected for sale list %+v", forSale)
	}

	if err := f.app.ListForSale(ctx, f.owner, f.league, f.player, decimal.NewFromInt(1)); !apperrors.Is(err, apperrors.KindAlreadyListed) {
		t.Fatalf("expected already listed, got %v", err)
	}

	if err := f.app.Unlist(ctx, f.owner, f.league, f.player); err != nil {
		t.Fatalf("Unlist: %v", err)
	}
	if err := f.app.Unlist(ctx, f.owner, f.league, f.player); !apperrors.Is(err, apperrors.KindNotListed) {
		t.Fatalf("expected not listed, got %v", err)
	}

	var types []string
	for _, ev := range f.store.Events() {
		types = append(types, ev.EventType)
	}
	if len(types) != 2 || types[0] != events.EventTypePlayerListed || types[1] != events.EventTypePlayerUnlisted {
		t.Fatalf("unexpected events %v", types)
	}
}

func TestListForSaleRejections(t *testing.T) {
	f := newFixture(t)
	other := uuid.New()
	f.store.AddMember(f.league, other, 0)
	ctx := context.Background()

	tests := []struct {
		name  string
		user  uuid.UUID
		price decimal.Decimal
		kind  apperrors.Kind
	}{
		{"zero price", f.owner, decimal.Zero, apperrors.KindValidation},
		{"fractional cents", f.owner, decimal.RequireFromString("1.001"), apperrors.KindValidation},
		{"not the owner", other, decimal.NewFromInt(10), apperrors.KindNotOwned},
		{"not a member", uuid.New(), decimal.NewFromInt(10), apperrors.KindAuthorization},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := f.app.ListForSale(ctx, tc.user, f.league, f.player, tc.price)
			if got := apperrors.KindOf(err); got != tc.kind {
				t.Fatalf("expected %s, got %s (%v)", tc.kind, got, err)
			}
		})
	}
}

func TestQuickSale(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if err := f.app.ListForSale(ctx, f.owner, f.league, f.player, decimal.NewFromInt(50000)); err != nil {
		t.Fatal(err)
	}

	tr, err := f.app.QuickSale(ctx, f.owner, f.league, f.player)
	if err != nil {
		t.Fatalf("QuickSale: %v", err)
	}
	if tr.Kind != models.TransferKindQuickSale || tr.BuyerID != nil || tr.SellerID == nil || *tr.SellerID != f.owner {
		t.Fatalf("unexpected transfer %+v", tr)
	}
	if !tr.Amount.Equal(decimal.NewFromInt(20000)) {
		t.Fatalf("expected base price, got %s", tr.Amount)
	}
	if got := f.store.Balance(f.league, f.owner); !got.Equal(decimal.NewFromInt(20100)) {
		t.Fatalf("expected balance 20100, got %s", got)
	}
	if _, ok := f.store.Owner(f.league, f.player); ok {
		t.Fatal("player must return to the unowned pool")
	}

	if _, err := f.app.QuickSale(ctx, f.owner, f.league, f.player); !apperrors.Is(err, apperrors.KindNotOwned) {
		t.Fatalf("expected not owned on second sale, got %v", err)
	}
	if n := len(f.store.Transfers()); n != 1 {
		t.Fatalf("expected one transfer, got %d", n)
	}
}
