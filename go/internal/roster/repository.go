package roster

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mcdev12/trebol/go/internal/apperrors"
	"github.com/mcdev12/trebol/go/internal/models"
	"github.com/mcdev12/trebol/go/internal/roster/db"
	"github.com/mcdev12/trebol/go/internal/sqlutil"
)

// Repository implements roster data access operations
type Repository struct {
	queries db.Querier
}

// NewRepository creates a new roster repository
func NewRepository(querier db.Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

// ListByMember returns the players owned by userID in leagueID
func (r *Repository) ListByMember(ctx context.Context, leagueID, userID uuid.UUID) ([]models.RosterEntry, error) {
	rows, err := r.queries.ListRosterByMember(ctx, db.ListRosterByMemberParams{
		LeagueID: leagueID,
		UserID:   userID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list roster: %w", err)
	}

	entries := make([]models.RosterEntry, len(rows))
	for i, row := range rows {
		entries[i] = rosterRowToModel(db.ListForSaleRow(row))
	}
	return entries, nil
}

// ListForSale returns the entries of leagueID flagged for sale
func (r *Repository) ListForSale(ctx context.Context, leagueID uuid.UUID) ([]models.RosterEntry, error) {
	rows, err := r.queries.ListForSale(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for sale: %w", err)
	}

	entries := make([]models.RosterEntry, len(rows))
	for i, row := range rows {
		entries[i] = rosterRowToModel(row)
	}
	return entries, nil
}

// SetForSale flags the entry of playerID for sale at price
func (r *Repository) SetForSale(ctx context.Context, leagueID, playerID uuid.UUID, price decimal.Decimal) error {
	err := r.queries.SetForSale(ctx, db.SetForSaleParams{
		LeagueID:    leagueID,
		PlayerID:    playerID,
		AskingPrice: decimal.NewNullDecimal(price),
	})
	if err != nil {
		return fmt.Errorf("failed to set for sale: %w", err)
	}
	return nil
}

// ClearForSale removes the for sale flag and asking price
func (r *Repository) ClearForSale(ctx context.Context, leagueID, playerID uuid.UUID) error {
	err := r.queries.ClearForSale(ctx, db.ClearForSaleParams{
		LeagueID: leagueID,
		PlayerID: playerID,
	})
	if err != nil {
		return fmt.Errorf("failed to clear for sale: %w", err)
	}
	return nil
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

func rosterRowToModel(row db.ListForSaleRow) models.RosterEntry {
	return models.RosterEntry{
		LeagueID:    row.LeagueID,
		PlayerID:    row.PlayerID,
		UserID:      row.UserID,
		ForSale:     row.ForSale,
		AskingPrice: sqlutil.FromNullDecimal(row.AskingPrice),
		AcquiredAt:  row.AcquiredAt,
		Player: &models.Player{
			ID:        row.PlayerID,
			Name:      row.Name,
			Position:  row.Position,
			Team:      sqlutil.FromSqlStringPtr(row.Team),
			Rating:    int(row.Rating),
			BasePrice: row.BasePrice,
		},
	}
}
