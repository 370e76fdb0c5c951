package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcdev12/trebol/go/internal/apperrors"
	"github.com/mcdev12/trebol/go/internal/models"
)

const bcryptCost = 10

// UsersRepository defines what the app layer needs from the repository
type UsersRepository interface {
	CreateUser(ctx context.Context, username string, email *string, passwordHash string) (*models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// TokenIssuer signs session tokens
type TokenIssuer interface {
	Issue(userID uuid.UUID, username string) (string, time.Time, error)
}

// App handles users business logic
type App struct {
	repo   UsersRepository
	tokens TokenIssuer
}

// NewApp creates a new users App
func NewApp(repo UsersRepository, tokens TokenIssuer) *App {
	return &App{
		repo:   repo,
		tokens: tokens,
	}
}

// Register creates a new account with a bcrypt hashed password
func (a *App) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := a.validateRegisterRequest(req); err != nil {
		return nil, err
	}

	// Check if user with same username already exists
	if _, err := a.repo.GetUserByUsername(ctx, req.Username); err == nil {
		return nil, apperrors.Conflict("user with username %s already exists", req.Username)
	} else if !apperrors.Is(err, apperrors.KindNotFound) {
		return nil, err
	}

	if req.Email != nil {
		if _, err := a.repo.GetUserByEmail(ctx, *req.Email); err == nil {
			return nil, apperrors.Conflict("user with email %s already exists", *req.Email)
		} else if !apperrors.Is(err, apperrors.KindNotFound) {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := a.repo.CreateUser(ctx, req.Username, req.Email, string(hash))
	if err != nil {
		return nil, err
	}

	log.Info().Str("user_id", user.ID.String()).Str("username", user.Username).Msg("user registered")
	return user, nil
}

// Login checks the password of username and issues a session token. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (a *App) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	if req.Username == "" || req.Password == "" {
		return nil, apperrors.Validation("username and password are required")
	}

	user, err := a.repo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, errInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password: %w", err)
	}

	token, expiresAt, err := a.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: expiresAt}, nil
}

var errInvalidCredentials = &apperrors.Error{Kind: apperrors.KindUnauthenticated, Msg: "invalid username or password"}

// GetUser retrieves a user by ID
func (a *App) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := a.repo.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (a *App) validateRegisterRequest(req RegisterRequest) error {
	if req.Username == "" {
		return apperrors.Validation("username is required")
	}
	if len(req.Username) > 64 {
		return apperrors.Validation("username must be at most 64 characters")
	}
	if req.Password == "" {
		return apperrors.Validation("password is required")
	}
	// bcrypt ignores anything past 72 bytes
	if len(req.Password) > 72 {
		return apperrors.Validation("password must be at most 72 bytes")
	}
	if req.Email != nil && (!strings.Contains(*req.Email, "@") || !strings.Contains(*req.Email, ".")) {
		return apperrors.Validation("email format is invalid")
	}
	return nil
}
