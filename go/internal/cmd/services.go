package main

import (
	"database/sql"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"

	"github.com/mcdev12/trebol/go/internal/auth"
	"github.com/mcdev12/trebol/go/internal/config"
	"github.com/mcdev12/trebol/go/internal/leagues"
	"github.com/mcdev12/trebol/go/internal/ledger"
	ledgerdb "github.com/mcdev12/trebol/go/internal/ledger/db"
	"github.com/mcdev12/trebol/go/internal/lock"
	"github.com/mcdev12/trebol/go/internal/market"
	marketdb "github.com/mcdev12/trebol/go/internal/market/db"
	"github.com/mcdev12/trebol/go/internal/player"
	playerdb "github.com/mcdev12/trebol/go/internal/player/db"
	"github.com/mcdev12/trebol/go/internal/roster"
	rosterdb "github.com/mcdev12/trebol/go/internal/roster/db"
	"github.com/mcdev12/trebol/go/internal/transfers"
	"github.com/mcdev12/trebol/go/internal/users"
	usersdb "github.com/mcdev12/trebol/go/internal/users/db"
)

type Services struct {
	Users     *users.Service
	Leagues   *leagues.Service
	Players   *player.Service
	Roster    *roster.Service
	Market    *market.Service
	Transfers *transfers.Service
}

func setupServices(database *sql.DB, cfg *config.Config, tokens *auth.TokenManager, locks lock.Manager, clock clockwork.Clock) *Services {
	// Wire up dependency injection chain
	// Database layer → Repository layer → App layer → Service layer

	// Users
	userRepo := users.NewRepository(usersdb.New(database))
	userApp := users.NewApp(userRepo, tokens)
	userService := users.NewService(userApp)

	// Leagues
	leagueRepo := leagues.NewRepository(database)
	leagueApp := leagues.NewApp(leagueRepo, leagues.Config{
		StartingBalance:   decimal.NewFromInt(cfg.Economy.StartingBalance),
		DefaultMaxMembers: cfg.Economy.DefaultMaxMembers,
	})
	leagueService := leagues.NewService(leagueApp)

	// Players
	playerRepo := player.NewRepository(playerdb.New(database))
	playerApp := player.NewApp(playerRepo)
	playerService := player.NewService(playerApp)

	// Roster
	rosterRepo := roster.NewRepository(rosterdb.New(database))
	rosterApp := roster.NewApp(rosterRepo, roster.NewSQLTransactor(database, clock), clock)
	rosterService := roster.NewService(rosterApp)

	// Market
	marketRepo := market.NewRepository(marketdb.New(database))
	marketApp := market.NewApp(marketRepo, market.NewSQLTransactor(database, clock), locks, clock, market.Config{
		Size: cfg.Economy.MarketSize,
		TTL:  cfg.Economy.MarketTTL,
	})
	marketService := market.NewService(marketApp)

	// Transfers
	transferService := transfers.NewService(ledger.New(ledgerdb.New(database), clock))

	return &Services{
		Users:     userService,
		Leagues:   leagueService,
		Players:   playerService,
		Roster:    rosterService,
		Market:    marketService,
		Transfers: transferService,
	}
}
