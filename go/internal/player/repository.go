package player

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/trebol/go/internal/apperrors"
	"github.com/mcdev12/trebol/go/internal/models"
	"github.com/mcdev12/trebol/go/internal/player/db"
	"github.com/mcdev12/trebol/go/internal/sqlutil"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	CountPlayers(ctx context.Context, position sql.NullString) (int64, error)
	GetPlayer(ctx context.Context, id uuid.UUID) (db.Player, error)
	ListPlayers(ctx context.Context, arg db.ListPlayersParams) ([]db.Player, error)
}

// Repository implements catalog data access operations
type Repository struct {
	queries Querier
}

// NewRepository creates a new player repository
func NewRepository(querier Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

// GetPlayer retrieves a player by ID
func (r *Repository) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	p, err := r.queries.GetPlayer(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("player")
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return r.dbPlayerToModel(p), nil
}

// ListPlayers returns one page of the catalog ordered by rating
func (r *Repository) ListPlayers(ctx context.Context, req ListPlayersRequest) ([]models.Player, int64, error) {
	position := sqlutil.ToSqlString(nil)
	if req.Position != "" {
		position = sqlutil.ToSqlString(&req.Position)
	}

	rows, err := r.queries.ListPlayers(ctx, db.ListPlayersParams{
		Position: position,
		Limit:    int32(req.Limit),
		Offset:   int32(req.Offset),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list players: %w", err)
	}

	total, err := r.queries.CountPlayers(ctx, position)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count players: %w", err)
	}

	players := make([]models.Player, len(rows))
	for i, row := range rows {
		players[i] = *r.dbPlayerToModel(row)
	}
	return players, total, nil
}

// dbPlayerToModel converts a database player to domain model
func (r *Repository) dbPlayerToModel(p db.Player) *models.Player {
	return &models.Player{
		ID:        p.ID,
		Name:      p.Name,
		Position:  p.Position,
		Team:      sqlutil.FromSqlStringPtr(p.Team),
		Rating:    int(p.Rating),
		BasePrice: p.BasePrice,
		CreatedAt: p.CreatedAt,
	}
}
