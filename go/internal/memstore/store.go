// Package memstore is an in-memory implementation of the generated query
// interfaces of the economy packages. It backs unit tests of the ledger,
// market and roster layers without a Postgres instance.
package memstore

import (
	"bytes"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	ledgerdb "github.com/mcdev12/trebol/go/internal/ledger/db"
	marketdb "github.com/mcdev12/trebol/go/internal/market/db"
	outboxdb "github.com/mcdev12/trebol/go/internal/outbox/db"
)

type key struct {
	league uuid.UUID
	id     uuid.UUID
}

type member struct {
	balance decimal.Decimal
}

type state struct {
	members   map[key]member
	players   map[uuid.UUID]marketdb.Player
	roster    map[key]ledgerdb.RosterEntry
	cycles    map[uuid.UUID]marketdb.MarketCycle
	listings  map[uuid.UUID]uuid.UUID // player -> league
	bids      []marketdb.MarketBid
	transfers []ledgerdb.Transfer
	outbox    []outboxdb.LeagueOutbox
	nextBidID int64
}

func newState() state {
	return state{
		members:  make(map[key]member),
		players:  make(map[uuid.UUID]marketdb.Player),
		roster:   make(map[key]ledgerdb.RosterEntry),
		cycles:   make(map[uuid.UUID]marketdb.MarketCycle),
		listings: make(map[uuid.UUID]uuid.UUID),
	}
}

func (s state) clone() state {
	c := state{
		members:   make(map[key]member, len(s.members)),
		players:   make(map[uuid.UUID]marketdb.Player, len(s.players)),
		roster:    make(map[key]ledgerdb.RosterEntry, len(s.roster)),
		cycles:    make(map[uuid.UUID]marketdb.MarketCycle, len(s.cycles)),
		listings:  make(map[uuid.UUID]uuid.UUID, len(s.listings)),
		bids:      append([]marketdb.MarketBid(nil), s.bids...),
		transfers: append([]ledgerdb.Transfer(nil), s.transfers...),
		outbox:    append([]outboxdb.LeagueOutbox(nil), s.outbox...),
		nextBidID: s.nextBidID,
	}
	for k, v := range s.members {
		c.members[k] = v
	}
	for k, v := range s.players {
		c.players[k] = v
	}
	for k, v := range s.roster {
		c.roster[k] = v
	}
	for k, v := range s.cycles {
		c.cycles[k] = v
	}
	for k, v := range s.listings {
		c.listings[k] = v
	}
	return c
}

// Store holds the in-memory tables. Transactions are serialized by Atomic.
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex
	st   state
}

// New returns an empty Store
func New() *Store {
	return &Store{st: newState()}
}

// Atomic runs fn as a serialized transaction. Changes made by fn are
// discarded when it returns an error.
func (s *Store) Atomic(fn func() error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.st.clone()
	s.mu.Unlock()

	if err := fn(); err != nil {
		s.mu.Lock()
		s.st = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// Ledger returns the ledger query set
func (s *Store) Ledger() *LedgerQueries { return &LedgerQueries{s} }

// Market returns the market query set
func (s *Store) Market() *MarketQueries { return &MarketQueries{s} }

// Roster returns the roster query set
func (s *Store) Roster() *RosterQueries { return &RosterQueries{s} }

// Outbox returns the outbox query set
func (s *Store) Outbox() *OutboxQueries { return &OutboxQueries{s} }

// AddPlayer inserts a catalog player and returns its id
func (s *Store) AddPlayer(name, position string, rating int32, basePrice int64) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	s.st.players[id] = marketdb.Player{
		ID:        id,
		Name:      name,
		Position:  position,
		Rating:    rating,
		BasePrice: decimal.NewFromInt(basePrice),
		CreatedAt: time.Now().UTC(),
	}
	return id
}

// AddMember creates a membership with the given balance
func (s *Store) AddMember(leagueID, userID uuid.UUID, balance int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.members[key{leagueID, userID}] = member{balance: decimal.NewFromInt(balance)}
}

// SetBalance overwrites the balance of a membership
func (s *Store) SetBalance(leagueID, userID uuid.UUID, balance int64) {
	s.AddMember(leagueID, userID, balance)
}

// SetOwner gives playerID to userID inside leagueID
func (s *Store) SetOwner(leagueID, playerID, userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.roster[key{leagueID, playerID}] = ledgerdb.RosterEntry{
		LeagueID:   leagueID,
		PlayerID:   playerID,
		UserID:     userID,
		AcquiredAt: time.Now().UTC(),
	}
}

// Balance returns the balance of a membership, or -1 when it is missing
func (s *Store) Balance(leagueID, userID uuid.UUID) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.st.members[key{leagueID, userID}]
	if !ok {
		return decimal.NewFromInt(-1)
	}
	return m.balance
}

// Owner returns the owner of playerID in leagueID
func (s *Store) Owner(leagueID, playerID uuid.UUID) (uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.st.roster[key{leagueID, playerID}]
	return e.UserID, ok
}

// RosterEntries returns every roster entry of leagueID
func (s *Store) RosterEntries(leagueID uuid.UUID) []ledgerdb.RosterEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []ledgerdb.RosterEntry
	for k, e := range s.st.roster {
		if k.league == leagueID {
			out = append(out, e)
		}
	}
	return out
}

// Listed returns the ids of the players in the listing of leagueID
func (s *Store) Listed(leagueID uuid.UUID) []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []uuid.UUID
	for player, league := range s.st.listings {
		if league == leagueID {
			out = append(out, player)
		}
	}
	sortUUIDs(out)
	return out
}

// List puts playerID in the listing of leagueID
func (s *Store) List(leagueID, playerID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.listings[playerID] = leagueID
}

// SetCycle stamps the listing of leagueID with generatedAt
func (s *Store) SetCycle(leagueID uuid.UUID, generatedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.st.cycles[leagueID]
	c.LeagueID = leagueID
	c.GeneratedAt = generatedAt
	if c.Cycle == 0 {
		c.Cycle = 1
	}
	s.st.cycles[leagueID] = c
}

// Bids returns every bid of leagueID
func (s *Store) Bids(leagueID uuid.UUID) []marketdb.MarketBid {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []marketdb.MarketBid
	for _, b := range s.st.bids {
		if b.LeagueID == leagueID {
			out = append(out, b)
		}
	}
	return out
}

// Transfers returns every recorded transfer
func (s *Store) Transfers() []ledgerdb.Transfer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ledgerdb.Transfer(nil), s.st.transfers...)
}

// Events returns every outbox row
func (s *Store) Events() []outboxdb.LeagueOutbox {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]outboxdb.LeagueOutbox(nil), s.st.outbox...)
}

func sortUUIDs(ids []uuid.UUID) {
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})
}
