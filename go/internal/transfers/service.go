// Package transfers serves the league transfer feed.
package transfers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/mcdev12/trebol/go/internal/apperrors"
	"github.com/mcdev12/trebol/go/internal/httpx"
	"github.com/mcdev12/trebol/go/internal/models"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

// HistoryReader lists transfers newest first
type HistoryReader interface {
	History(ctx context.Context, leagueID uuid.UUID, limit int32) ([]models.Transfer, error)
}

// Service exposes the transfer history over HTTP
type Service struct {
	history HistoryReader
}

func NewService(history HistoryReader) *Service {
	return &Service{history: history}
}

// RegisterRoutes mounts the feed for members of {leagueID}
func (s *Service) RegisterRoutes(mux *http.ServeMux, authn, member httpx.Middleware) {
	mux.Handle("GET /leagues/{leagueID}/transfers", httpx.Chain(http.HandlerFunc(s.List), authn, member))
}

func (s *Service) List(w http.ResponseWriter, r *http.Request) {
	leagueID, err := httpx.PathUUID(r, "leagueID")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	limit, err := httpx.QueryInt(r, "limit", defaultLimit)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	if limit < 1 || limit > maxLimit {
		httpx.WriteError(w, r, apperrors.Validation("limit must be between 1 and %d", maxLimit))
		return
	}

	transfers, err := s.history.History(r.Context(), leagueID, int32(limit))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	if transfers == nil {
		transfers = []models.Transfer{}
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"transfers": transfers})
}
