package player

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mcdev12/trebol/go/internal/apperrors"
	"github.com/mcdev12/trebol/go/internal/models"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// PlayerRepository defines what the app layer needs from the repository
type PlayerRepository interface {
	GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error)
	ListPlayers(ctx context.Context, req ListPlayersRequest) ([]models.Player, int64, error)
}

// App handles catalog reads
type App struct {
	repo PlayerRepository
}

// NewApp creates a new player App
func NewApp(repo PlayerRepository) *App {
	return &App{
		repo: repo,
	}
}

// GetPlayer retrieves a player by ID
func (a *App) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	p, err := a.repo.GetPlayer(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return p, nil
}

// ListPlayers returns one page of the catalog
func (a *App) ListPlayers(ctx context.Context, req ListPlayersRequest) (*Page[models.Player], error) {
	req.Position = strings.ToUpper(strings.TrimSpace(req.Position))
	if req.Limit == 0 {
		req.Limit = defaultPageSize
	}
	if req.Limit < 0 || req.Limit > maxPageSize {
		return nil, apperrors.Validation("limit must be between 1 and %d", maxPageSize)
	}
	if req.Offset < 0 {
		return nil, apperrors.Validation("offset must not be negative")
	}

	players, total, err := a.repo.ListPlayers(ctx, req)
	if err != nil {
		return nil, err
	}
	if players == nil {
		players = []models.Player{}
	}
	return &Page[models.Player]{Items: players, Total: total, Limit: req.Limit, Offset: req.Offset}, nil
}
