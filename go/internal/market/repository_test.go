package market_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/mcdev12/trebol/go/internal/apperrors"
	"github.com/mcdev12/trebol/go/internal/market"
	"github.com/mcdev12/trebol/go/internal/market/db"
	"github.com/mcdev12/trebol/go/internal/memstore"
)

// unlistedQuerier fails bid upserts the way postgres does when the listing
// row was deleted by a refresh after the listed check
type unlistedQuerier struct {
	db.Querier
	err error
}

func (q unlistedQuerier) UpsertMarketBid(context.Context, db.UpsertMarketBidParams) (db.MarketBid, error) {
	return db.MarketBid{}, q.err
}

func TestUpsertBidOnReplacedListingIsNotListed(t *testing.T) {
	store := memstore.New()
	fkErr := &pq.Error{Code: "23503", Constraint: "market_bids_league_id_player_id_fkey"}
	repo := market.NewRepository(unlistedQuerier{Querier: store.Market(), err: fkErr})

	req := market.PlaceBidRequest{LeagueID: uuid.New(), PlayerID: uuid.New(), Amount: decimal.NewFromInt(300)}
	_, err := repo.UpsertBid(context.Background(), req, uuid.New(), time.Now())
	if !apperrors.Is(err, apperrors.KindNotListed) {
		t.Fatalf("expected not_listed, got %v", err)
	}
}

func TestUpsertBidStorageFailureIsUnavailable(t *testing.T) {
	store := memstore.New()
	repo := market.NewRepository(unlistedQuerier{Querier: store.Market(), err: fmt.Errorf("driver: bad connection")})

	req := market.PlaceBidRequest{LeagueID: uuid.New(), PlayerID: uuid.New(), Amount: decimal.NewFromInt(300)}
	_, err := repo.UpsertBid(context.Background(), req, uuid.New(), time.Now())
	if err == nil || apperrors.Is(err, apperrors.KindNotListed) {
		t.Fatalf("expected a storage error, got %v", err)
	}
	if apperrors.KindOf(err) != apperrors.KindStorageUnavailable {
		t.Fatalf("expected storage_unavailable, got %s", apperrors.KindOf(err))
	}
}
