package gateway

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/trebol/go/internal/apperrors"
	"github.com/mcdev12/trebol/go/internal/auth"
	"github.com/mcdev12/trebol/go/internal/httpx"
	"github.com/mcdev12/trebol/go/internal/models"
)

// TokenVerifier validates the session token passed on the query string
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// MemberLookup confirms the caller belongs to the league they subscribe to
type MemberLookup interface {
	GetMember(ctx context.Context, leagueID, userID uuid.UUID) (*models.Membership, error)
}

// Handler serves GET /ws/league?league_id=&token=
type Handler struct {
	connections *ConnectionManager
	tokens      TokenVerifier
	members     MemberLookup
}

func NewHandler(cm *ConnectionManager, tokens TokenVerifier, members MemberLookup) *Handler {
	return &Handler{connections: cm, tokens: tokens, members: members}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /ws/league", h.ServeLeague)
	mux.HandleFunc("GET /ws/stats", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, h.connections.Stats())
	})
}

func (h *Handler) ServeLeague(w http.ResponseWriter, r *http.Request) {
	leagueID, err := httpx.ParseUUID(r.URL.Query().Get("league_id"), "league_id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	token := r.URL.Query().Get("token")
	if token == "" {
		httpx.WriteError(w, r, apperrors.ErrUnauthenticated)
		return
	}
	identity, err := h.tokens.Verify(token)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	if _, err := h.members.GetMember(r.Context(), leagueID, identity.UserID); err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			err = apperrors.ErrNotMember
		}
		httpx.WriteError(w, r, err)
		return
	}

	if err := h.connections.UpgradeConnection(w, r, identity.UserID, leagueID); err != nil {
		// the upgrader already replied
		log.Warn().Err(err).Str("league_id", leagueID.String()).Msg("websocket upgrade failed")
	}
}
