package leagues

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/mcdev12/trebol/go/internal/auth"
	"github.com/mcdev12/trebol/go/internal/httpx"
	"github.com/mcdev12/trebol/go/internal/models"
)

// LeaguesApp defines what the service layer needs from the leagues application
type LeaguesApp interface {
	CreateLeague(ctx context.Context, userID uuid.UUID, req CreateLeagueRequest) (*models.League, error)
	JoinLeague(ctx context.Context, userID uuid.UUID, req JoinLeagueRequest) (*models.League, error)
	GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error)
	ListLeagues(ctx context.Context, userID uuid.UUID) ([]models.League, error)
	DeleteLeague(ctx context.Context, id uuid.UUID) error
	Standings(ctx context.Context, leagueID uuid.UUID) ([]models.Membership, error)
	GetMember(ctx context.Context, leagueID, userID uuid.UUID) (*models.Membership, error)
	PromoteMember(ctx context.Context, leagueID, userID uuid.UUID) (*models.Membership, error)
}

// Service exposes leagues over HTTP
type Service struct {
	app LeaguesApp
}

// NewService creates a new leagues service
func NewService(app LeaguesApp) *Service {
	return &Service{
		app: app,
	}
}

// Member is the guard for routes open to any member of {leagueID}
func (s *Service) Member() httpx.Middleware {
	return RequireRole(s.app)
}

// RegisterRoutes mounts the league routes behind authn
func (s *Service) RegisterRoutes(mux *http.ServeMux, authn httpx.Middleware) {
	member := s.Member()
	owner := RequireRole(s.app, models.MemberRoleOwner)

	mux.Handle("POST /leagues", httpx.Chain(http.HandlerFunc(s.CreateLeague), authn))
	mux.Handle("POST /leagues/join", httpx.Chain(http.HandlerFunc(s.JoinLeague), authn))
	mux.Handle("GET /leagues", httpx.Chain(http.HandlerFunc(s.ListLeagues), authn))
	mux.Handle("GET /leagues/{leagueID}", httpx.Chain(http.HandlerFunc(s.GetLeague), authn, member))
	mux.Handle("DELETE /leagues/{leagueID}", httpx.Chain(http.HandlerFunc(s.DeleteLeague), authn, owner))
	mux.Handle("GET /leagues/{leagueID}/members", httpx.Chain(http.HandlerFunc(s.Standings), authn, member))
	mux.Handle("POST /leagues/{leagueID}/members/{userID}/promote", httpx.Chain(http.HandlerFunc(s.PromoteMember), authn, owner))
}

func (s *Service) CreateLeague(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	var req CreateLeagueRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	league, err := s.app.CreateLeague(r.Context(), userID, req)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, league)
}

func (s *Service) JoinLeague(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	var req JoinLeagueRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	league, err := s.app.JoinLeague(r.Context(), userID, req)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, league)
}

func (s *Service) ListLeagues(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	leagues, err := s.app.ListLeagues(r.Context(), userID)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	if leagues == nil {
		leagues = []models.League{}
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"leagues": leagues})
}

func (s *Service) GetLeague(w http.ResponseWriter, r *http.Request) {
	leagueID, err := httpx.PathUUID(r, "leagueID")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	league, err := s.app.GetLeague(r.Context(), leagueID)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, league)
}

func (s *Service) DeleteLeague(w http.ResponseWriter, r *http.Request) {
	leagueID, err := httpx.PathUUID(r, "leagueID")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	if err := s.app.DeleteLeague(r.Context(), leagueID); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) Standings(w http.ResponseWriter, r *http.Request) {
	leagueID, err := httpx.PathUUID(r, "leagueID")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	members, err := s.app.Standings(r.Context(), leagueID)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"members": members})
}

func (s *Service) PromoteMember(w http.ResponseWriter, r *http.Request) {
	leagueID, err := httpx.PathUUID(r, "leagueID")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	userID, err := httpx.PathUUID(r, "userID")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	m, err := s.app.PromoteMember(r.Context(), leagueID, userID)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, m)
}
