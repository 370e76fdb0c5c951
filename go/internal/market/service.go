package market

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/mcdev12/trebol/go/internal/auth"
	"github.com/mcdev12/trebol/go/internal/httpx"
	"github.com/mcdev12/trebol/go/internal/models"
)

// MarketApp defines what the service layer needs from the market application
type MarketApp interface {
	GetMarket(ctx context.Context, leagueID uuid.UUID) (*models.Market, error)
	PlaceBid(ctx context.Context, userID uuid.UUID, req PlaceBidRequest) (*models.Bid, error)
	ListBids(ctx context.Context, leagueID, userID uuid.UUID) ([]models.Bid, error)
	WithdrawBid(ctx context.Context, leagueID, playerID, userID uuid.UUID) error
	BuyDirect(ctx context.Context, buyerID uuid.UUID, req BuyDirectRequest) (*models.Transfer, error)
}

// Service exposes the market over HTTP
type Service struct {
	app MarketApp
}

func NewService(app MarketApp) *Service {
	return &Service{app: app}
}

// RegisterRoutes mounts the market routes. authn authenticates the caller and
// member rejects callers outside the {leagueID} path league.
func (s *Service) RegisterRoutes(mux *http.ServeMux, authn, member httpx.Middleware) {
	mux.Handle("GET /market/{leagueID}", httpx.Chain(http.HandlerFunc(s.GetMarket), authn, member))
	mux.Handle("GET /market/{leagueID}/bids", httpx.Chain(http.HandlerFunc(s.ListBids), authn, member))
	mux.Handle("DELETE /market/{leagueID}/bids/{playerID}", httpx.Chain(http.HandlerFunc(s.WithdrawBid), authn, member))
	mux.Handle("POST /market/bid", httpx.Chain(http.HandlerFunc(s.PlaceBid), authn))
	mux.Handle("POST /market/buy-direct", httpx.Chain(http.HandlerFunc(s.BuyDirect), authn))
}

func (s *Service) GetMarket(w http.ResponseWriter, r *http.Request) {
	leagueID, err := httpx.PathUUID(r, "leagueID")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	m, err := s.app.GetMarket(r.Context(), leagueID)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, m)
}

func (s *Service) PlaceBid(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	var body bidRequestBody
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	leagueID, err := httpx.ParseUUID(body.LeagueID, "leagueId")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	playerID, err := httpx.ParseUUID(body.PlayerID, "playerId")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	bid, err := s.app.PlaceBid(r.Context(), userID, PlaceBidRequest{
		LeagueID: leagueID,
		PlayerID: playerID,
		Amount:   body.Amount,
	})
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, bid)
}

func (s *Service) ListBids(w http.ResponseWriter, r *http.Request) {
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

	bids, err := s.app.ListBids(r.Context(), leagueID, userID)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	if bids == nil {
		bids = []models.Bid{}
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"bids": bids})
}

func (s *Service) WithdrawBid(w http.ResponseWriter, r *http.Request) {
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
	playerID, err := httpx.PathUUID(r, "playerID")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	if err := s.app.WithdrawBid(r.Context(), leagueID, playerID, userID); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) BuyDirect(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	var body buyDirectRequestBody
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	leagueID, err := httpx.ParseUUID(body.LeagueID, "leagueId")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	playerID, err := httpx.ParseUUID(body.PlayerID, "playerId")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	transfer, err := s.app.BuyDirect(r.Context(), userID, BuyDirectRequest{
		LeagueID: leagueID,
		PlayerID: playerID,
	})
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, transfer)
}
