package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MemberRole represents the role an account holds inside a league
type MemberRole string

const (
	MemberRoleOwner  MemberRole = "OWNER"
	MemberRoleAdmin  MemberRole = "ADMIN"
	MemberRoleMember MemberRole = "MEMBER"
)

// League represents a private group of accounts sharing a player economy
type League struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	MaxMembers int             `json:"max_members"`
	JoinKey    string          `json:"join_key,omitempty"`
	Settings   json.RawMessage `json:"settings,omitempty"`
	CreatedBy  uuid.UUID       `json:"created_by"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Membership ties an account to a league with a role, a balance and a score
type Membership struct {
	LeagueID uuid.UUID       `json:"league_id"`
	UserID   uuid.UUID       `json:"user_id"`
	Username string          `json:"username,omitempty"`
	Role     MemberRole      `json:"role"`
	Balance  decimal.Decimal `json:"balance"`
	Points   int             `json:"points"`
	JoinedAt time.Time       `json:"joined_at"`
}

// HasRole reports whether the membership role is one of roles
func (m *Membership) HasRole(roles ...MemberRole) bool {
	for _, r := range roles {
		if m.Role == r {
			return true
		}
	}
	return false
}
