// Package auth issues and verifies session tokens and carries the
// authenticated identity through request contexts.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/mcdev12/trebol/go/internal/apperrors"
)

// Identity is the authenticated account behind a request
type Identity struct {
	UserID   uuid.UUID
	Username string
}

// Claims are the JWT claims of a session token
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies HS256 session tokens
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	clock  clockwork.Clock
}

func NewTokenManager(secret string, ttl time.Duration, clock clockwork.Clock) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		clock:  clock,
	}
}

// Issue returns a signed token for the account and its expiry
func (m *TokenManager) Issue(userID uuid.UUID, username string) (string, time.Time, error) {
	now := m.clock.Now()
	expiresAt := now.Add(m.ttl)

	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify parses token and returns the identity it carries. Any failure is
// reported as ErrUnauthenticated.
func (m *TokenManager) Verify(token string) (Identity, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (interface{}, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.clock.Now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, &apperrors.Error{Kind: apperrors.KindUnauthenticated, Msg: "token expired", Err: err}
		}
		return Identity{}, &apperrors.Error{Kind: apperrors.KindUnauthenticated, Msg: "invalid token", Err: err}
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Identity{}, &apperrors.Error{Kind: apperrors.KindUnauthenticated, Msg: "invalid token subject", Err: err}
	}
	return Identity{UserID: userID, Username: claims.Username}, nil
}
