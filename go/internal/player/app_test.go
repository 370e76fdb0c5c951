package player

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mcdev12/trebol/go/internal/apperrors"
	"github.com/mcdev12/trebol/go/internal/player/db"
)

type fakeQuerier struct {
	players []db.Player
	last    db.ListPlayersParams
}

func (f *fakeQuerier) CountPlayers(_ context.Context, position sql.NullString) (int64, error) {
	var n int64
	for _, p := range f.players {
		if !position.Valid || p.Position == position.String {
			n++
		}
	}
	return n, nil
}

func (f *fakeQuerier) GetPlayer(_ context.Context, id uuid.UUID) (db.Player, error) {
	for _, p := range f.players {
		if p.ID == id {
			return p, nil
		}
	}
	return db.Player{}, sql.ErrNoRows
}

func (f *fakeQuerier) ListPlayers(_ context.Context, arg db.ListPlayersParams) ([]db.Player, error) {
	f.last = arg
	var out []db.Player
	for _, p := range f.players {
		if !arg.Position.Valid || p.Position == arg.Position.String {
			out = append(out, p)
		}
	}
	if int(arg.Offset) >= len(out) {
		return nil, nil
	}
	out = out[arg.Offset:]
	if int(arg.Limit) < len(out) {
		out = out[:arg.Limit]
	}
	return out, nil
}

func seeded() *fakeQuerier {
	q := &fakeQuerier{}
	for _, pos := range []string{"GK", "DEF", "DEF", "MID", "FWD"} {
		q.players = append(q.players, db.Player{
			ID:        uuid.New(),
			Name:      pos + " player",
			Position:  pos,
			Team:      sql.NullString{String: "FCB", Valid: true},
			Rating:    80,
			BasePrice: decimal.NewFromInt(20000),
		})
	}
	return q
}

func TestListPlayers(t *testing.T) {
	q := seeded()
	app := NewApp(NewRepository(q))

	page, err := app.ListPlayers(context.Background(), ListPlayersRequest{Position: " def "})
	if err != nil {
		t.Fatalf("ListPlayers: %v", err)
	}
	if page.Total != 2 || len(page.Items) != 2 || page.Limit != defaultPageSize {
		t.Fatalf("unexpected page %+v", page)
	}
	if q.last.Position.String != "DEF" {
		t.Fatalf("expected normalized position filter, got %q", q.last.Position.String)
	}
	if page.Items[0].Team == nil || *page.Items[0].Team != "FCB" {
		t.Fatal("expected team to be mapped")
	}

	page, err = app.ListPlayers(context.Background(), ListPlayersRequest{Limit: 2, Offset: 4})
	if err != nil || len(page.Items) != 1 || page.Total != 5 {
		t.Fatalf("unexpected last page %+v (%v)", page, err)
	}

	if _, err := app.ListPlayers(context.Background(), ListPlayersRequest{Limit: 1000}); !apperrors.Is(err, apperrors.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetPlayerRoutes(t *testing.T) {
	q := seeded()
	mux := http.NewServeMux()
	NewService(NewApp(NewRepository(q))).RegisterRoutes(mux, func(h http.Handler) http.Handler { return h })

	tests := []struct {
		path   string
		status int
	}{
		{"/players/" + q.players[0].ID.String(), http.StatusOK},
		{"/players/" + uuid.NewString(), http.StatusNotFound},
		{"/players/nope", http.StatusBadRequest},
		{"/players?limit=-1", http.StatusBadRequest},
		{"/players?position=mid", http.StatusOK},
	}
	for _, tc := range tests {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if rec.Code != tc.status {
			t.Fatalf("%s: expected %d, got %d", tc.path, tc.status, rec.Code)
		}
	}
}
