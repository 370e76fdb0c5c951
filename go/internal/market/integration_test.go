package market_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	_ "github.com/lib/pq"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/shopspring/decimal"

	"github.com/mcdev12/trebol/go/internal/database"
	"github.com/mcdev12/trebol/go/internal/leagues"
	"github.com/mcdev12/trebol/go/internal/ledger"
	ledgerdb "github.com/mcdev12/trebol/go/internal/ledger/db"
	"github.com/mcdev12/trebol/go/internal/lock"
	"github.com/mcdev12/trebol/go/internal/market"
	marketdb "github.com/mcdev12/trebol/go/internal/market/db"
	"github.com/mcdev12/trebol/go/internal/models"
	"github.com/mcdev12/trebol/go/internal/users"
	usersdb "github.com/mcdev12/trebol/go/internal/users/db"
)

// openTestDB connects to the database named by TREBOL_TEST_DSN and applies
// the migrations. Tests using it are skipped when the variable is unset.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TREBOL_TEST_DSN")
	if dsn == "" {
		t.Skip("TREBOL_TEST_DSN not set")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestPostgresMarketCycle(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(time.Now().UTC().Truncate(time.Second))
	suffix := gonanoid.MustGenerate("abcdefghijklmnopqrstuvwxyz", 8)

	for i := 0; i < market.DefaultSize+5; i++ {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO players (name, position, rating, base_price) VALUES ($1, 'MID', 80, 20000)`,
			fmt.Sprintf("Player %s %d", suffix, i)); err != nil {
			t.Fatal(err)
		}
	}

	userRepo := users.NewRepository(usersdb.New(db))
	founder, err := userRepo.CreateUser(ctx, "founder_"+suffix, nil, "x")
	if err != nil {
		t.Fatal(err)
	}
	bidder, err := userRepo.CreateUser(ctx, "bidder_"+suffix, nil, "x")
	if err != nil {
		t.Fatal(err)
	}

	leagueRepo := leagues.NewRepository(db)
	start := decimal.NewFromInt(1_000_000)
	league, err := leagueRepo.CreateLeague(ctx, leagues.CreateLeagueRequest{Name: "it " + suffix, MaxMembers: 4},
		gonanoid.MustGenerate("ABCDEFGHJKLMNPQRSTUVWXYZ", 8), leagues.NewMember{UserID: founder.ID, Balance: start})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := leagueRepo.JoinLeague(ctx, league.JoinKey, leagues.NewMember{UserID: bidder.ID, Balance: start}); err != nil {
		t.Fatal(err)
	}

	app := market.NewApp(market.NewRepository(marketdb.New(db)), market.NewSQLTransactor(db, clock),
		lock.NewLocalLock(time.Second), clock, market.DefaultConfig())

	m, err := app.GetMarket(ctx, league.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Players) != market.DefaultSize {
		t.Fatalf("expected %d listed players, got %d", market.DefaultSize, len(m.Players))
	}
	target := m.Players[0].ID
	basePrice := m.Players[0].BasePrice

	amount := basePrice.Add(decimal.NewFromInt(5000))
	if _, err := app.PlaceBid(ctx, bidder.ID, market.PlaceBidRequest{LeagueID: league.ID, PlayerID: target, Amount: amount}); err != nil {
		t.Fatal(err)
	}
	if _, err := app.PlaceBid(ctx, founder.ID, market.PlaceBidRequest{LeagueID: league.ID, PlayerID: target, Amount: basePrice}); err != nil {
		t.Fatal(err)
	}

	clock.Advance(market.DefaultTTL + time.Second)
	next, err := app.GetMarket(ctx, league.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !next.GeneratedAt.After(*m.GeneratedAt) {
		t.Fatal("expected a new listing after expiry")
	}
	for _, p := range next.Players {
		if p.ID == target {
			t.Fatal("settled player must not be listed again")
		}
	}

	l := ledger.New(ledgerdb.New(db), clock)
	owner, err := l.Owner(ctx, league.ID, target)
	if err != nil {
		t.Fatal(err)
	}
	if owner == nil || owner.UserID != bidder.ID {
		t.Fatalf("expected bidder to own the player, got %+v", owner)
	}
	balance, err := l.Balance(ctx, league.ID, bidder.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !balance.Equal(start.Sub(amount)) {
		t.Fatalf("expected balance %s, got %s", start.Sub(amount), balance)
	}
	founderBalance, err := l.Balance(ctx, league.ID, founder.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !founderBalance.Equal(start) {
		t.Fatalf("losing bidder must keep their balance, got %s", founderBalance)
	}

	history, err := l.History(ctx, league.ID, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 || history[0].Kind != models.TransferKindMarketPurchase {
		t.Fatalf("expected one market purchase, got %+v", history)
	}

	var pending int
	if err := db.QueryRowContext(ctx,
		`SELECT count(*) FROM league_outbox WHERE league_id = $1 AND sent_at IS NULL`, league.ID).Scan(&pending); err != nil {
		t.Fatal(err)
	}
	if pending < 2 {
		t.Fatalf("expected transfer and refresh events in the outbox, got %d", pending)
	}
}
