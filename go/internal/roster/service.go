package roster

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mcdev12/trebol/go/internal/auth"
	"github.com/mcdev12/trebol/go/internal/httpx"
	"github.com/mcdev12/trebol/go/internal/models"
)

// RosterApp defines what the service layer needs from the roster application
type RosterApp interface {
	Roster(ctx context.Context, leagueID, userID uuid.UUID) ([]models.RosterEntry, error)
	ForSale(ctx context.Context, leagueID uuid.UUID) ([]models.RosterEntry, error)
	ListForSale(ctx context.Context, userID, leagueID, playerID uuid.UUID, price decimal.Decimal) error
	Unlist(ctx context.Context, userID, leagueID, playerID uuid.UUID) error
	QuickSale(ctx context.Context, userID, leagueID, playerID uuid.UUID) (*models.Transfer, error)
}

type saleRequestBody struct {
	Price decimal.Decimal `json:"price"`
}

// Service exposes rosters over HTTP
type Service struct {
	app RosterApp
}

// NewService creates a new roster service
func NewService(app RosterApp) *Service {
	return &Service{
		app: app,
	}
}

// RegisterRoutes mounts the roster routes. member rejects callers outside
// the {leagueID} path league.
func (s *Service) RegisterRoutes(mux *http.ServeMux, authn, member httpx.Middleware) {
	route := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, httpx.Chain(h, authn, member))
	}
	route("GET /leagues/{leagueID}/roster", s.MyRoster)
	route("GET /leagues/{leagueID}/members/{userID}/roster", s.MemberRoster)
	route("GET /leagues/{leagueID}/for-sale", s.ForSale)
	route("POST /leagues/{leagueID}/roster/{playerID}/sale", s.ListForSale)
	route("DELETE /leagues/{leagueID}/roster/{playerID}/sale", s.Unlist)
	route("POST /leagues/{leagueID}/roster/{playerID}/quick-sale", s.QuickSale)
}

func (s *Service) MyRoster(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	s.writeRoster(w, r, userID)
}

func (s *Service) MemberRoster(w http.ResponseWriter, r *http.Request) {
	userID, err := httpx.PathUUID(r, "userID")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	s.writeRoster(w, r, userID)
}

func (s *Service) writeRoster(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	leagueID, err := httpx.PathUUID(r, "leagueID")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	entries, err := s.app.Roster(r.Context(), leagueID, userID)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"roster": entries})
}

func (s *Service) ForSale(w http.ResponseWriter, r *http.Request) {
	leagueID, err := httpx.PathUUID(r, "leagueID")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	entries, err := s.app.ForSale(r.Context(), leagueID)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"players": entries})
}

// entryPath returns the caller, league and player of a /roster/{playerID} route
func entryPath(r *http.Request) (userID, leagueID, playerID uuid.UUID, err error) {
	if userID, err = auth.UserID(r.Context()); err != nil {
		return
	}
	if leagueID, err = httpx.PathUUID(r, "leagueID"); err != nil {
		return
	}
	playerID, err = httpx.PathUUID(r, "playerID")
	return
}

func (s *Service) ListForSale(w http.ResponseWriter, r *http.Request) {
	userID, leagueID, playerID, err := entryPath(r)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	var body saleRequestBody
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	if err := s.app.ListForSale(r.Context(), userID, leagueID, playerID, body.Price); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) Unlist(w http.ResponseWriter, r *http.Request) {
	userID, leagueID, playerID, err := entryPath(r)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	if err := s.app.Unlist(r.Context(), userID, leagueID, playerID); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) QuickSale(w http.ResponseWriter, r *http.Request) {
	userID, leagueID, playerID, err := entryPath(r)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	transfer, err := s.app.QuickSale(r.Context(), userID, leagueID, playerID)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, transfer)
}
