package player

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/mcdev12/trebol/go/internal/httpx"
	"github.com/mcdev12/trebol/go/internal/models"
)

// PlayerApp defines what the service layer needs from the player application
type PlayerApp interface {
	GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error)
	ListPlayers(ctx context.Context, req ListPlayersRequest) (*Page[models.Player], error)
}

// Service exposes the player catalog over HTTP
type Service struct {
	app PlayerApp
}

// NewService creates a new player service
func NewService(app PlayerApp) *Service {
	return &Service{
		app: app,
	}
}

// RegisterRoutes mounts the catalog routes behind authn
func (s *Service) RegisterRoutes(mux *http.ServeMux, authn httpx.Middleware) {
	mux.Handle("GET /players", authn(http.HandlerFunc(s.ListPlayers)))
	mux.Handle("GET /players/{playerID}", authn(http.HandlerFunc(s.GetPlayer)))
}

func (s *Service) ListPlayers(w http.ResponseWriter, r *http.Request) {
	limit, err := httpx.QueryInt(r, "limit", 0)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	offset, err := httpx.QueryInt(r, "offset", 0)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	page, err := s.app.ListPlayers(r.Context(), ListPlayersRequest{
		Position: r.URL.Query().Get("position"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, page)
}

func (s *Service) GetPlayer(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathUUID(r, "playerID")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	p, err := s.app.GetPlayer(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}
