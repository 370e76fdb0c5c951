package leagues

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/trebol/go/internal/apperrors"
	"github.com/mcdev12/trebol/go/internal/models"
)

const (
	joinKeyAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	joinKeyLength   = 8
	joinKeyAttempts = 5
	maxLeagueSize   = 100
	maxNameLength   = 100
)

// LeaguesRepository defines what the app layer needs from the repository
type LeaguesRepository interface {
	CreateLeague(ctx context.Context, req CreateLeagueRequest, joinKey string, founder NewMember) (*models.League, error)
	JoinLeague(ctx context.Context, joinKey string, member NewMember) (*models.League, error)
	GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error)
	ListLeaguesByUser(ctx context.Context, userID uuid.UUID) ([]models.League, error)
	DeleteLeague(ctx context.Context, id uuid.UUID) error
	GetMember(ctx context.Context, leagueID, userID uuid.UUID) (*models.Membership, error)
	ListMembers(ctx context.Context, leagueID uuid.UUID) ([]models.Membership, error)
	UpdateMemberRole(ctx context.Context, leagueID, userID uuid.UUID, role models.MemberRole) (*models.Membership, error)
}

// App handles leagues business logic
type App struct {
	repo LeaguesRepository
	cfg  Config
}

// NewApp creates a new leagues App
func NewApp(repo LeaguesRepository, cfg Config) *App {
	return &App{
		repo: repo,
		cfg:  cfg,
	}
}

// CreateLeague creates a league founded by userID, who becomes its OWNER
// with the starting balance.
func (a *App) CreateLeague(ctx context.Context, userID uuid.UUID, req CreateLeagueRequest) (*models.League, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.MaxMembers == 0 {
		req.MaxMembers = a.cfg.DefaultMaxMembers
	}
	if err := a.validateCreateLeagueRequest(req); err != nil {
		return nil, err
	}

	founder := NewMember{UserID: userID, Balance: a.cfg.StartingBalance}
	for attempt := 0; attempt < joinKeyAttempts; attempt++ {
		joinKey, err := gonanoid.Generate(joinKeyAlphabet, joinKeyLength)
		if err != nil {
			return nil, fmt.Errorf("failed to generate join key: %w", err)
		}

		league, err := a.repo.CreateLeague(ctx, req, joinKey, founder)
		if errors.Is(err, errJoinKeyTaken) {
			continue
		}
		if err != nil {
			return nil, err
		}

		log.Info().
			Str("league_id", league.ID.String()).
			Str("user_id", userID.String()).
			Int("max_members", league.MaxMembers).
			Msg("league created")
		return league, nil
	}
	return nil, fmt.Errorf("failed to create league: %w", errJoinKeyTaken)
}

// JoinLeague adds userID to the league identified by the join key
func (a *App) JoinLeague(ctx context.Context, userID uuid.UUID, req JoinLeagueRequest) (*models.League, error) {
	joinKey := strings.ToUpper(strings.TrimSpace(req.JoinKey))
	if len(joinKey) != joinKeyLength {
		return nil, apperrors.Validation("joinKey must be %d characters", joinKeyLength)
	}

	league, err := a.repo.JoinLeague(ctx, joinKey, NewMember{UserID: userID, Balance: a.cfg.StartingBalance})
	if err != nil {
		return nil, err
	}

	log.Info().Str("league_id", league.ID.String()).Str("user_id", userID.String()).Msg("league joined")
	return league, nil
}

// GetLeague retrieves a league by ID
func (a *App) GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error) {
	league, err := a.repo.GetLeague(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get league: %w", err)
	}
	return league, nil
}

// ListLeagues returns the leagues userID belongs to
func (a *App) ListLeagues(ctx context.Context, userID uuid.UUID) ([]models.League, error) {
	return a.repo.ListLeaguesByUser(ctx, userID)
}

// DeleteLeague deletes a league. Role checks happen in the route guard.
func (a *App) DeleteLeague(ctx context.Context, id uuid.UUID) error {
	if _, err := a.repo.GetLeague(ctx, id); err != nil {
		return err
	}
	if err := a.repo.DeleteLeague(ctx, id); err != nil {
		return err
	}

	log.Info().Str("league_id", id.String()).Msg("league deleted")
	return nil
}

// Standings lists members ordered by points, then balance
func (a *App) Standings(ctx context.Context, leagueID uuid.UUID) ([]models.Membership, error) {
	return a.repo.ListMembers(ctx, leagueID)
}

// GetMember returns the membership of userID in leagueID
func (a *App) GetMember(ctx context.Context, leagueID, userID uuid.UUID) (*models.Membership, error) {
	return a.repo.GetMember(ctx, leagueID, userID)
}

// PromoteMember makes a MEMBER an ADMIN
func (a *App) PromoteMember(ctx context.Context, leagueID, userID uuid.UUID) (*models.Membership, error) {
	m, err := a.repo.GetMember(ctx, leagueID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotMember) {
			return nil, apperrors.NotFound("member")
		}
		return nil, err
	}
	if m.Role != models.MemberRoleMember {
		return nil, apperrors.Conflict("only members can be promoted, %s is %s", userID, m.Role)
	}

	return a.repo.UpdateMemberRole(ctx, leagueID, userID, models.MemberRoleAdmin)
}

// validateCreateLeagueRequest validates create league request
func (a *App) validateCreateLeagueRequest(req CreateLeagueRequest) error {
	if req.Name == "" {
		return apperrors.Validation("name is required")
	}
	if len(req.Name) > maxNameLength {
		return apperrors.Validation("name must be at most %d characters", maxNameLength)
	}
	if req.MaxMembers < 2 || req.MaxMembers > maxLeagueSize {
		return apperrors.Validation("maxMembers must be between 2 and %d", maxLeagueSize)
	}
	if len(req.Settings) > 0 && !json.Valid(req.Settings) {
		return apperrors.Validation("settings must be valid JSON")
	}
	return nil
}
