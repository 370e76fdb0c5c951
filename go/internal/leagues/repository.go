package leagues

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"

	"github.com/mcdev12/trebol/go/internal/apperrors"
	"github.com/mcdev12/trebol/go/internal/leagues/db"
	"github.com/mcdev12/trebol/go/internal/models"
	"github.com/mcdev12/trebol/go/internal/sqlutil"
)

// errJoinKeyTaken reports a join key collision so the caller can draw another
var errJoinKeyTaken = errors.New("join key already in use")

// Repository implements league data access operations
type Repository struct {
	db      *sql.DB
	queries *db.Queries
}

// NewRepository creates a new leagues repository
func NewRepository(database *sql.DB) *Repository {
	return &Repository{
		db:      database,
		queries: db.New(database),
	}
}

func (r *Repository) withTx(tx *sql.Tx) *db.Queries {
	return r.queries.WithTx(tx)
}

// CreateLeague inserts the league and the founder's OWNER membership in one
// transaction.
func (r *Repository) CreateLeague(ctx context.Context, req CreateLeagueRequest, joinKey string, founder NewMember) (*models.League, error) {
	var league db.League
	err := sqlutil.Run(ctx, r.db, r.withTx, func(q *db.Queries) error {
		var err error
		league, err = q.CreateLeague(ctx, db.CreateLeagueParams{
			Name:       req.Name,
			MaxMembers: int32(req.MaxMembers),
			JoinKey:    joinKey,
			Settings:   pqtype.NullRawMessage{RawMessage: req.Settings, Valid: len(req.Settings) > 0},
			CreatedBy:  founder.UserID,
		})
		if err != nil {
			if sqlutil.IsUniqueViolation(err) {
				return errJoinKeyTaken
			}
			return fmt.Errorf("failed to create league: %w", err)
		}

		_, err = q.CreateLeagueMember(ctx, db.CreateLeagueMemberParams{
			LeagueID: league.ID,
			UserID:   founder.UserID,
			Role:     db.MemberRoleOWNER,
			Balance:  founder.Balance,
		})
		if err != nil {
			return fmt.Errorf("failed to create league owner: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.dbLeagueToModel(league), nil
}

// JoinLeague adds member to the league holding joinKey. The league row is
// locked while capacity is checked so concurrent joins cannot overfill it.
func (r *Repository) JoinLeague(ctx context.Context, joinKey string, member NewMember) (*models.League, error) {
	var league db.League
	err := sqlutil.Run(ctx, r.db, r.withTx, func(q *db.Queries) error {
		var err error
		league, err = q.GetLeagueByJoinKeyForUpdate(ctx, joinKey)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperrors.NotFound("league")
			}
			return fmt.Errorf("failed to get league by join key: %w", err)
		}

		_, err = q.GetLeagueMember(ctx, db.GetLeagueMemberParams{LeagueID: league.ID, UserID: member.UserID})
		switch {
		case err == nil:
			return apperrors.Conflict("already a member of this league")
		case !errors.Is(err, sql.ErrNoRows):
			return fmt.Errorf("failed to get league member: %w", err)
		}

		count, err := q.CountLeagueMembers(ctx, league.ID)
		if err != nil {
			return fmt.Errorf("failed to count league members: %w", err)
		}
		if count >= int64(league.MaxMembers) {
			return apperrors.ErrLeagueFull
		}

		_, err = q.CreateLeagueMember(ctx, db.CreateLeagueMemberParams{
			LeagueID: league.ID,
			UserID:   member.UserID,
			Role:     db.MemberRoleMEMBER,
			Balance:  member.Balance,
		})
		if err != nil {
			return fmt.Errorf("failed to create league member: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.dbLeagueToModel(league), nil
}

// GetLeague retrieves a league by ID
func (r *Repository) GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error) {
	league, err := r.queries.GetLeague(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("league")
		}
		return nil, fmt.Errorf("failed to get league: %w", err)
	}

	return r.dbLeagueToModel(league), nil
}

// ListLeaguesByUser retrieves the leagues userID belongs to
func (r *Repository) ListLeaguesByUser(ctx context.Context, userID uuid.UUID) ([]models.League, error) {
	leagues, err := r.queries.ListLeaguesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leagues by user: %w", err)
	}

	return r.dbLeaguesToModels(leagues), nil
}

// DeleteLeague deletes a league by ID; memberships, rosters, listings and
// history cascade.
func (r *Repository) DeleteLeague(ctx context.Context, id uuid.UUID) error {
	if err := r.queries.DeleteLeague(ctx, id); err != nil {
		return fmt.Errorf("failed to delete league: %w", err)
	}
	return nil
}

// GetMember returns the membership of userID in leagueID
func (r *Repository) GetMember(ctx context.Context, leagueID, userID uuid.UUID) (*models.Membership, error) {
	m, err := r.queries.GetLeagueMember(ctx, db.GetLeagueMemberParams{LeagueID: leagueID, UserID: userID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotMember
		}
		return nil, fmt.Errorf("failed to get league member: %w", err)
	}

	return r.dbMemberToModel(m), nil
}

// ListMembers returns the standings of leagueID
func (r *Repository) ListMembers(ctx context.Context, leagueID uuid.UUID) ([]models.Membership, error) {
	rows, err := r.queries.ListLeagueMembers(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list league members: %w", err)
	}

	members := make([]models.Membership, len(rows))
	for i, row := range rows {
		members[i] = models.Membership{
			LeagueID: row.LeagueID,
			UserID:   row.UserID,
			Username: row.Username,
			Role:     models.MemberRole(row.Role),
			Balance:  row.Balance,
			Points:   int(row.Points),
			JoinedAt: row.JoinedAt,
		}
	}
	return members, nil
}

// UpdateMemberRole sets the role of userID in leagueID
func (r *Repository) UpdateMemberRole(ctx context.Context, leagueID, userID uuid.UUID, role models.MemberRole) (*models.Membership, error) {
	m, err := r.queries.UpdateLeagueMemberRole(ctx, db.UpdateLeagueMemberRoleParams{
		LeagueID: leagueID,
		UserID:   userID,
		Role:     db.MemberRole(role),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("member")
		}
		return nil, fmt.Errorf("failed to update member role: %w", err)
	}

	return r.dbMemberToModel(m), nil
}

// dbLeagueToModel converts a database league to domain model
func (r *Repository) dbLeagueToModel(dbLeague db.League) *models.League {
	league := &models.League{
		ID:         dbLeague.ID,
		Name:       dbLeague.Name,
		MaxMembers: int(dbLeague.MaxMembers),
		JoinKey:    dbLeague.JoinKey,
		CreatedBy:  dbLeague.CreatedBy,
		CreatedAt:  dbLeague.CreatedAt,
	}
	if dbLeague.Settings.Valid {
		league.Settings = dbLeague.Settings.RawMessage
	}
	return league
}

// dbLeaguesToModels converts multiple database leagues to domain models
func (r *Repository) dbLeaguesToModels(dbLeagues []db.League) []models.League {
	leagues := make([]models.League, len(dbLeagues))
	for i, dbLeague := range dbLeagues {
		leagues[i] = *r.dbLeagueToModel(dbLeague)
	}
	return leagues
}

func (r *Repository) dbMemberToModel(m db.LeagueMember) *models.Membership {
	return &models.Membership{
		LeagueID: m.LeagueID,
		UserID:   m.UserID,
		Role:     models.MemberRole(m.Role),
		Balance:  m.Balance,
		Points:   int(m.Points),
		JoinedAt: m.JoinedAt,
	}
}
