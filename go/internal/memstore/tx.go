package memstore

import (
	"context"

	"github.com/jonboulle/clockwork"

	"github.com/mcdev12/trebol/go/internal/ledger"
	"github.com/mcdev12/trebol/go/internal/market"
	"github.com/mcdev12/trebol/go/internal/outbox"
	"github.com/mcdev12/trebol/go/internal/roster"
)

type marketTx struct {
	s     *Store
	clock clockwork.Clock
}

// MarketTransactor runs market transactions against s
func (s *Store) MarketTransactor(clock clockwork.Clock) market.Transactor {
	return &marketTx{s: s, clock: clock}
}

func (t *marketTx) WithinTx(_ context.Context, fn func(*market.Stores) error) error {
	return t.s.Atomic(func() error {
		return fn(&market.Stores{
			Market: market.NewRepository(t.s.Market()),
			Ledger: ledger.New(t.s.Ledger(), t.clock),
			Events: outbox.NewRepository(t.s.Outbox()),
		})
	})
}

type rosterTx struct {
	s     *Store
	clock clockwork.Clock
}

// RosterTransactor runs roster transactions against s
func (s *Store) RosterTransactor(clock clockwork.Clock) roster.Transactor {
	return &rosterTx{s: s, clock: clock}
}

func (t *rosterTx) WithinTx(_ context.Context, fn func(*roster.Stores) error) error {
	return t.s.Atomic(func() error {
		return fn(&roster.Stores{
			Roster: roster.NewRepository(t.s.Roster()),
			Ledger: ledger.New(t.s.Ledger(), t.clock),
			Events: outbox.NewRepository(t.s.Outbox()),
		})
	})
}
