package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mcdev12/trebol/go/internal/apperrors"
)

func TestWriteErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{apperrors.Validation("amount must be positive"), http.StatusBadRequest, "validation_error"},
		{apperrors.ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated"},
		{apperrors.ErrNotMember, http.StatusForbidden, "authorization_error"},
		{apperrors.NotFound("player"), http.StatusNotFound, "not_found"},
		{fmt.Errorf("failed to place bid: %w", apperrors.ErrInsufficientFunds), http.StatusConflict, "insufficient_funds"},
		{apperrors.ErrNotListed, http.StatusConflict, "not_listed"},
		{errors.New("dial tcp: connection refused"), http.StatusServiceUnavailable, "storage_unavailable"},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tc.err)

		if rec.Code != tc.status {
			t.Errorf("%v: expected status %d, got %d", tc.err, tc.status, rec.Code)
		}
		var body errorBody
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Code != tc.code {
			t.Errorf("%v: expected code %s, got %s", tc.err, tc.code, body.Code)
		}
	}
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Amount string `json:"amount"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"amount":"10"}`))
	if err := DecodeJSON(req, &v); err != nil || v.Amount != "10" {
		t.Fatalf("unexpected decode result %v %+v", err, v)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	if err := DecodeJSON(req, &v); !apperrors.Is(err, apperrors.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
	if err := DecodeJSON(req, &v); !apperrors.Is(err, apperrors.KindValidation) {
		t.Fatalf("expected validation error for empty body, got %v", err)
	}
}

func TestPathUUID(t *testing.T) {
	mux := http.NewServeMux()
	var got error
	mux.HandleFunc("GET /leagues/{leagueID}", func(w http.ResponseWriter, r *http.Request) {
		_, got = PathUUID(r, "leagueID")
	})

	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/leagues/not-a-uuid", nil))
	if !apperrors.Is(got, apperrors.KindValidation) {
		t.Fatalf("expected validation error, got %v", got)
	}
}
