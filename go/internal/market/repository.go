package market

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mcdev12/trebol/go/internal/apperrors"
	"github.com/mcdev12/trebol/go/internal/market/db"
	"github.com/mcdev12/trebol/go/internal/models"
	"github.com/mcdev12/trebol/go/internal/sqlutil"
)

// Repository implements market data access operations
type Repository struct {
	queries db.Querier
}

// NewRepository creates a new market repository
func NewRepository(querier db.Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

// GetCycle returns the cycle of leagueID, or nil before the first generation
func (r *Repository) GetCycle(ctx context.Context, leagueID uuid.UUID) (*models.MarketCycle, error) {
	c, err := r.queries.GetMarketCycle(ctx, leagueID)
	return r.cycleOrNil(c, err)
}

// GetCycleForUpdate is GetCycle holding a row lock until the transaction ends
func (r *Repository) GetCycleForUpdate(ctx context.Context, leagueID uuid.UUID) (*models.MarketCycle, error) {
	c, err := r.queries.GetMarketCycleForUpdate(ctx, leagueID)
	return r.cycleOrNil(c, err)
}

func (r *Repository) cycleOrNil(c db.MarketCycle, err error) (*models.MarketCycle, error) {
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get market cycle: %w", err)
	}
	return &models.MarketCycle{
		LeagueID:    c.LeagueID,
		GeneratedAt: c.GeneratedAt,
		Cycle:       c.Cycle,
	}, nil
}

// ClaimCycle stamps the listing of leagueID with generatedAt. prev is the
// cycle the caller observed (nil when uninitialized); it reports false when
// another writer advanced the cycle first.
func (r *Repository) ClaimCycle(ctx context.Context, leagueID uuid.UUID, prev *models.MarketCycle, generatedAt time.Time) (bool, error) {
	var (
		rows int64
		err  error
	)
	if prev == nil {
		rows, err = r.queries.CreateMarketCycle(ctx, db.CreateMarketCycleParams{
			LeagueID:    leagueID,
			GeneratedAt: generatedAt,
		})
	} else {
		rows, err = r.queries.AdvanceMarketCycle(ctx, db.AdvanceMarketCycleParams{
			GeneratedAt:     generatedAt,
			LeagueID:        leagueID,
			PrevGeneratedAt: prev.GeneratedAt,
		})
	}
	if err != nil {
		return false, fmt.Errorf("failed to advance market cycle: %w", err)
	}
	return rows == 1, nil
}

// Listing returns the players currently listed in leagueID
func (r *Repository) Listing(ctx context.Context, leagueID uuid.UUID) ([]models.Player, error) {
	rows, err := r.queries.ListMarketListing(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list market: %w", err)
	}
	return dbPlayersToModels(rows), nil
}

// ClearListing removes every listed player of leagueID
func (r *Repository) ClearListing(ctx context.Context, leagueID uuid.UUID) error {
	if err := r.queries.ClearMarketListing(ctx, leagueID); err != nil {
		return fmt.Errorf("failed to clear market listing: %w", err)
	}
	return nil
}

// PickEligible draws up to limit random players that are neither owned in
// leagueID nor listed by any league
func (r *Repository) PickEligible(ctx context.Context, leagueID uuid.UUID, limit int) ([]models.Player, error) {
	rows, err := r.queries.PickEligiblePlayers(ctx, db.PickEligiblePlayersParams{
		LeagueID: leagueID,
		Limit:    int32(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to pick eligible players: %w", err)
	}
	return dbPlayersToModels(rows), nil
}

// AddToListing lists playerID in leagueID. It reports false when another
// league listed the player first.
func (r *Repository) AddToListing(ctx context.Context, leagueID, playerID uuid.UUID) (bool, error) {
	rows, err := r.queries.InsertMarketListing(ctx, db.InsertMarketListingParams{
		LeagueID: leagueID,
		PlayerID: playerID,
	})
	if err != nil {
		return false, fmt.Errorf("failed to insert market listing: %w", err)
	}
	return rows == 1, nil
}

// IsListed reports whether playerID is in the current listing of leagueID
func (r *Repository) IsListed(ctx context.Context, leagueID, playerID uuid.UUID) (bool, error) {
	listed, err := r.queries.IsPlayerListed(ctx, db.IsPlayerListedParams{
		LeagueID: leagueID,
		PlayerID: playerID,
	})
	if err != nil {
		return false, fmt.Errorf("failed to check market listing: %w", err)
	}
	return listed, nil
}

// BasePrice returns the catalog base price of playerID
func (r *Repository) BasePrice(ctx context.Context, playerID uuid.UUID) (decimal.Decimal, error) {
	price, err := r.queries.GetPlayerBasePrice(ctx, playerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, apperrors.NotFound("player")
		}
		return decimal.Zero, fmt.Errorf("failed to get base price: %w", err)
	}
	return price, nil
}

// UpsertBid stores the bid of userID, replacing any earlier one on the same player
func (r *Repository) UpsertBid(ctx context.Context, req PlaceBidRequest, userID uuid.UUID, placedAt time.Time) (*models.Bid, error) {
	b, err := r.queries.UpsertMarketBid(ctx, db.UpsertMarketBidParams{
		LeagueID: req.LeagueID,
		PlayerID: req.PlayerID,
		UserID:   userID,
		Amount:   req.Amount,
		PlacedAt: placedAt,
	})
	if err != nil {
		// the listing row was replaced by a concurrent refresh
		if sqlutil.IsForeignKeyViolation(err) {
			return nil, apperrors.ErrNotListed
		}
		return nil, fmt.Errorf("failed to upsert bid: %w", err)
	}
	return dbBidToModel(b), nil
}

// WinningBids returns the best bid per player of leagueID, keyed by player.
// Ties on amount go to the earliest bid, then the lowest id.
func (r *Repository) WinningBids(ctx context.Context, leagueID uuid.UUID) (map[uuid.UUID]models.Bid, error) {
	rows, err := r.queries.ListWinningBids(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list winning bids: %w", err)
	}

	winners := make(map[uuid.UUID]models.Bid, len(rows))
	for _, row := range rows {
		winners[row.PlayerID] = *dbBidToModel(row)
	}
	return winners, nil
}

// BidsByUser lists the standing bids of userID in leagueID
func (r *Repository) BidsByUser(ctx context.Context, leagueID, userID uuid.UUID) ([]models.Bid, error) {
	rows, err := r.queries.ListBidsByUser(ctx, db.ListBidsByUserParams{
		LeagueID: leagueID,
		UserID:   userID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list bids: %w", err)
	}

	bids := make([]models.Bid, len(rows))
	for i, row := range rows {
		bids[i] = *dbBidToModel(row)
	}
	return bids, nil
}

// DeleteBid withdraws the bid of userID on playerID
func (r *Repository) DeleteBid(ctx context.Context, leagueID, playerID, userID uuid.UUID) error {
	rows, err := r.queries.DeleteMarketBid(ctx, db.DeleteMarketBidParams{
		LeagueID: leagueID,
		PlayerID: playerID,
		UserID:   userID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete bid: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("bid")
	}
	return nil
}

// DeleteBids removes every bid of leagueID
func (r *Repository) DeleteBids(ctx context.Context, leagueID uuid.UUID) error {
	if err := r.queries.DeleteMarketBids(ctx, leagueID); err != nil {
		return fmt.Errorf("failed to delete bids: %w", err)
	}
	return nil
}

func dbBidToModel(b db.MarketBid) *models.Bid {
	return &models.Bid{
		ID:       b.ID,
		LeagueID: b.LeagueID,
		PlayerID: b.PlayerID,
		UserID:   b.UserID,
		Amount:   b.Amount,
		PlacedAt: b.PlacedAt,
	}
}

func dbPlayersToModels(rows []db.Player) []models.Player {
	players := make([]models.Player, len(rows))
	for i, p := range rows {
		players[i] = models.Player{
			ID:        p.ID,
			Name:      p.Name,
			Position:  p.Position,
			Team:      sqlutil.FromSqlStringPtr(p.Team),
			Rating:    int(p.Rating),
			BasePrice: p.BasePrice,
			CreatedAt: p.CreatedAt,
		}
	}
	return players
}
