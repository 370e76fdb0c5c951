package market

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/mcdev12/trebol/go/internal/apperrors"
	"github.com/mcdev12/trebol/go/internal/events"
	"github.com/mcdev12/trebol/go/internal/lock"
	"github.com/mcdev12/trebol/go/internal/models"
)

// errCycleClaimed rolls back a refresh that lost the race on the cycle row
var errCycleClaimed = errors.New("market cycle already advanced")

// MarketReader is what the app reads outside of transactions
type MarketReader interface {
	GetCycle(ctx context.Context, leagueID uuid.UUID) (*models.MarketCycle, error)
	Listing(ctx context.Context, leagueID uuid.UUID) ([]models.Player, error)
	BidsByUser(ctx context.Context, leagueID, userID uuid.UUID) ([]models.Bid, error)
}

// App handles market business logic
type App struct {
	reader MarketReader
	tx     Transactor
	locks  lock.Manager
	clock  clockwork.Clock
	cfg    Config
}

// NewApp creates a new market App
func NewApp(reader MarketReader, tx Transactor, locks lock.Manager, clock clockwork.Clock, cfg Config) *App {
	if cfg.Size <= 0 {
		cfg.Size = DefaultSize
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	return &App{
		reader: reader,
		tx:     tx,
		locks:  locks,
		clock:  clock,
		cfg:    cfg,
	}
}

func refreshLockKey(leagueID uuid.UUID) string {
	return "market:refresh:" + leagueID.String()
}

// now is truncated to the precision Postgres stores so the cycle
// compare-and-swap matches what was written.
func (a *App) now() time.Time {
	return a.clock.Now().UTC().Truncate(time.Microsecond)
}

func (a *App) expired(c *models.MarketCycle, now time.Time) bool {
	return now.Sub(c.GeneratedAt) >= a.cfg.TTL
}

// GetMarket returns the current listing of leagueID. When the listing is
// missing or older than the TTL the previous cycle is resolved and a new
// listing generated first, serialized per league.
func (a *App) GetMarket(ctx context.Context, leagueID uuid.UUID) (*models.Market, error) {
	cycle, err := a.reader.GetCycle(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if cycle != nil && !a.expired(cycle, a.now()) {
		return a.market(ctx, leagueID, cycle)
	}

	key := refreshLockKey(leagueID)
	token, ok, err := a.locks.Acquire(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire market refresh lock: %w", err)
	}
	if !ok {
		log.Warn().Str("league_id", leagueID.String()).Msg("market refresh busy, serving current listing")
		// the holder may have committed a new cycle since the first read
		cycle, err = a.reader.GetCycle(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return a.market(ctx, leagueID, cycle)
	}
	defer func() {
		if err := a.locks.Release(context.WithoutCancel(ctx), key, token); err != nil {
			log.Error().Err(err).Str("league_id", leagueID.String()).Msg("failed to release market refresh lock")
		}
	}()

	cycle, err = a.refresh(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	return a.market(ctx, leagueID, cycle)
}

// refresh resolves and regenerates the listing in one transaction and
// returns the cycle that is current afterwards.
func (a *App) refresh(ctx context.Context, leagueID uuid.UUID) (*models.MarketCycle, error) {
	var current *models.MarketCycle

	err := a.tx.WithinTx(ctx, func(s *Stores) error {
		prev, err := s.Market.GetCycleForUpdate(ctx, leagueID)
		if err != nil {
			return err
		}
		now := a.now()
		if prev != nil && !a.expired(prev, now) {
			// refreshed while we waited for the lock
			current = prev
			return nil
		}

		report := &ResolutionReport{LeagueID: leagueID}
		if prev != nil {
			report, err = Resolve(ctx, s, leagueID)
			if err != nil {
				return fmt.Errorf("failed to resolve market: %w", err)
			}
			report.Cycle = prev.Cycle
		}

		current, err = a.regenerate(ctx, s, leagueID, prev, now, report)
		return err
	})
	if errors.Is(err, errCycleClaimed) {
		log.Info().Str("league_id", leagueID.String()).Msg("market refreshed concurrently")
		return a.reader.GetCycle(ctx, leagueID)
	}
	if err != nil {
		return nil, err
	}
	return current, nil
}

func (a *App) regenerate(ctx context.Context, s *Stores, leagueID uuid.UUID, prev *models.MarketCycle, now time.Time, report *ResolutionReport) (*models.MarketCycle, error) {
	if err := s.Market.ClearListing(ctx, leagueID); err != nil {
		return nil, err
	}

	candidates, err := s.Market.PickEligible(ctx, leagueID, a.cfg.Size)
	if err != nil {
		return nil, err
	}

	listed := make([]string, 0, len(candidates))
	for _, p := range candidates {
		added, err := s.Market.AddToListing(ctx, leagueID, p.ID)
		if err != nil {
			return nil, err
		}
		// another league listed it since the pick
		if !added {
			continue
		}
		listed = append(listed, p.ID.String())
	}

	claimed, err := s.Market.ClaimCycle(ctx, leagueID, prev, now)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, errCycleClaimed
	}

	next := &models.MarketCycle{LeagueID: leagueID, GeneratedAt: now, Cycle: 1}
	if prev != nil {
		next.Cycle = prev.Cycle + 1
	}

	err = s.Events.Record(ctx, leagueID, events.EventTypeMarketRefreshed, events.MarketRefreshedPayload{
		LeagueID:    leagueID.String(),
		Cycle:       next.Cycle,
		GeneratedAt: now,
		ExpiresAt:   now.Add(a.cfg.TTL),
		PlayerIDs:   listed,
		Settled:     len(report.Settled),
		Skipped:     len(report.Skipped),
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("league_id", leagueID.String()).
		Int64("cycle", next.Cycle).
		Int("listed", len(listed)).
		Int("settled", len(report.Settled)).
		Int("skipped", len(report.Skipped)).
		Int("unsold", report.Unsold).
		Msg("market regenerated")
	return next, nil
}

func (a *App) market(ctx context.Context, leagueID uuid.UUID, cycle *models.MarketCycle) (*models.Market, error) {
	m := &models.Market{LeagueID: leagueID, Players: []models.Player{}}
	if cycle == nil {
		return m, nil
	}

	players, err := a.reader.Listing(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	generatedAt := cycle.GeneratedAt
	expiresAt := generatedAt.Add(a.cfg.TTL)
	m.Players = players
	m.GeneratedAt = &generatedAt
	m.ExpiresAt = &expiresAt
	return m, nil
}

// PlaceBid stores the bid of userID on a listed player, replacing any
// earlier bid of the same account on that player. Bids of one account in
// one league are serialized by a lock on its membership row.
func (a *App) PlaceBid(ctx context.Context, userID uuid.UUID, req PlaceBidRequest) (*models.Bid, error) {
	if err := validatePlaceBid(req); err != nil {
		return nil, err
	}

	var bid *models.Bid
	err := a.tx.WithinTx(ctx, func(s *Stores) error {
		balance, err := s.Ledger.LockMembership(ctx, req.LeagueID, userID)
		if err != nil {
			return err
		}

		listed, err := s.Market.IsListed(ctx, req.LeagueID, req.PlayerID)
		if err != nil {
			return err
		}
		if !listed {
			return apperrors.ErrNotListed
		}

		basePrice, err := s.Market.BasePrice(ctx, req.PlayerID)
		if err != nil {
			return err
		}
		if req.Amount.LessThan(basePrice) {
			return apperrors.Validation("bid must be at least the base price of %s", basePrice.StringFixed(2))
		}
		if balance.LessThan(req.Amount) {
			return apperrors.ErrInsufficientFunds
		}

		bid, err = s.Market.UpsertBid(ctx, req, userID, a.clock.Now().UTC())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to place bid: %w", err)
	}

	log.Info().
		Str("league_id", req.LeagueID.String()).
		Str("player_id", req.PlayerID.String()).
		Str("user_id", userID.String()).
		Str("amount", req.Amount.String()).
		Msg("bid placed")
	return bid, nil
}

func validatePlaceBid(req PlaceBidRequest) error {
	if req.LeagueID == uuid.Nil {
		return apperrors.Validation("leagueId is required")
	}
	if req.PlayerID == uuid.Nil {
		return apperrors.Validation("playerId is required")
	}
	if !req.Amount.IsPositive() {
		return apperrors.Validation("amount must be positive")
	}
	if !req.Amount.Equal(req.Amount.Round(2)) {
		return apperrors.Validation("amount must have at most two decimals")
	}
	return nil
}

// ListBids returns the standing bids of userID in leagueID
func (a *App) ListBids(ctx context.Context, leagueID, userID uuid.UUID) ([]models.Bid, error) {
	bids, err := a.reader.BidsByUser(ctx, leagueID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bids: %w", err)
	}
	return bids, nil
}

// WithdrawBid removes the bid of userID on playerID
func (a *App) WithdrawBid(ctx context.Context, leagueID, playerID, userID uuid.UUID) error {
	err := a.tx.WithinTx(ctx, func(s *Stores) error {
		if _, err := s.Ledger.LockMembership(ctx, leagueID, userID); err != nil {
			return err
		}
		return s.Market.DeleteBid(ctx, leagueID, playerID, userID)
	})
	if err != nil {
		return fmt.Errorf("failed to withdraw bid: %w", err)
	}
	return nil
}

// BuyDirect buys a player that another member flagged for sale, at the
// seller's asking price.
func (a *App) BuyDirect(ctx context.Context, buyerID uuid.UUID, req BuyDirectRequest) (*models.Transfer, error) {
	if req.LeagueID == uuid.Nil {
		return nil, apperrors.Validation("leagueId is required")
	}
	if req.PlayerID == uuid.Nil {
		return nil, apperrors.Validation("playerId is required")
	}

	var transfer *models.Transfer
	err := a.tx.WithinTx(ctx, func(s *Stores) error {
		entry, err := s.Ledger.Owner(ctx, req.LeagueID, req.PlayerID)
		if err != nil {
			return err
		}
		if entry == nil {
			return apperrors.ErrNotOwned
		}
		sellerID := entry.UserID
		if sellerID == buyerID {
			return apperrors.Validation("cannot buy a player you already own")
		}

		// memberships are locked in id order
		first, second := buyerID, sellerID
		if bytes.Compare(first[:], second[:]) > 0 {
			first, second = second, first
		}
		for _, id := range []uuid.UUID{first, second} {
			if _, err := s.Ledger.LockMembership(ctx, req.LeagueID, id); err != nil {
				return err
			}
		}

		if !entry.ForSale {
			return apperrors.ErrNotListed
		}
		price, err := a.askingPrice(ctx, s, entry)
		if err != nil {
			return err
		}

		if _, err := s.Ledger.Debit(ctx, req.LeagueID, buyerID, price); err != nil {
			return err
		}
		if _, err := s.Ledger.Credit(ctx, req.LeagueID, sellerID, price); err != nil {
			return err
		}
		if _, err := s.Ledger.TransferOwnership(ctx, req.LeagueID, req.PlayerID, &sellerID, buyerID); err != nil {
			return err
		}

		transfer, err = s.Ledger.AppendHistory(ctx, models.Transfer{
			LeagueID: req.LeagueID,
			PlayerID: req.PlayerID,
			SellerID: &sellerID,
			BuyerID:  &buyerID,
			Amount:   price,
			Kind:     models.TransferKindPeerPurchase,
		})
		if err != nil {
			return err
		}
		return s.Events.RecordTransfer(ctx, transfer)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to buy player: %w", err)
	}

	log.Info().
		Str("league_id", req.LeagueID.String()).
		Str("player_id", req.PlayerID.String()).
		Str("buyer_id", buyerID.String()).
		Str("amount", transfer.Amount.String()).
		Msg("direct purchase completed")
	return transfer, nil
}

func (a *App) askingPrice(ctx context.Context, s *Stores, entry *models.RosterEntry) (decimal.Decimal, error) {
	if entry.AskingPrice != nil {
		return *entry.AskingPrice, nil
	}
	return s.Market.BasePrice(ctx, entry.PlayerID)
}
