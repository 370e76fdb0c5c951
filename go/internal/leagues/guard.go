package leagues

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/mcdev12/trebol/go/internal/apperrors"
	"github.com/mcdev12/trebol/go/internal/auth"
	"github.com/mcdev12/trebol/go/internal/httpx"
	"github.com/mcdev12/trebol/go/internal/models"
)

// MemberLookup resolves a caller's membership
type MemberLookup interface {
	GetMember(ctx context.Context, leagueID, userID uuid.UUID) (*models.Membership, error)
}

type membershipKey struct{}

// MembershipFromContext returns the membership loaded by RequireRole
func MembershipFromContext(ctx context.Context) (*models.Membership, bool) {
	m, ok := ctx.Value(membershipKey{}).(*models.Membership)
	return m, ok
}

// RequireRole admits authenticated callers that belong to the {leagueID}
// path league with one of roles. With no roles any member is admitted.
func RequireRole(members MemberLookup, roles ...models.MemberRole) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := auth.UserID(r.Context())
			if err != nil {
				httpx.WriteError(w, r, err)
				return
			}
			leagueID, err := httpx.PathUUID(r, "leagueID")
			if err != nil {
				httpx.WriteError(w, r, err)
				return
			}

			m, err := members.GetMember(r.Context(), leagueID, userID)
			if err != nil {
				httpx.WriteError(w, r, err)
				return
			}
			if len(roles) > 0 && !m.HasRole(roles...) {
				httpx.WriteError(w, r, apperrors.ErrForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), membershipKey{}, m)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
