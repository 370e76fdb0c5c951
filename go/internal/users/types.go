package users

import (
	"time"

	"github.com/google/uuid"
)

// RegisterRequest represents the data needed to create a new account
type RegisterRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Email    *string `json:"email,omitempty"`
}

// LoginRequest represents a username and password pair
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Session is an issued bearer token
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type registerResponse struct {
	Message string    `json:"message"`
	UserID  uuid.UUID `json:"userId"`
}
