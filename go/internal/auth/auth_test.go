package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/mcdev12/trebol/go/internal/apperrors"
)

func TestIssueAndVerify(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	m := NewTokenManager("test-secret", 30*time.Minute, clock)
	userID := uuid.New()

	token, expiresAt, err := m.Issue(userID, "lamine")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if !expiresAt.Equal(clock.Now().Add(30 * time.Minute)) {
		t.Fatalf("unexpected expiry %s", expiresAt)
	}

	id, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id.UserID != userID || id.Username != "lamine" {
		t.Fatalf("unexpected identity %+v", id)
	}
}

func TestVerifyExpired(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	m := NewTokenManager("test-secret", 30*time.Minute, clock)

	token, _, err := m.Issue(uuid.New(), "pedri")
	if err != nil {
		t.Fatal(err)
	}
	clock.Advance(31 * time.Minute)

	if _, err := m.Verify(token); !apperrors.Is(err, apperrors.KindUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	clock := clockwork.NewFakeClock()
	token, _, _ := NewTokenManager("a", time.Minute, clock).Issue(uuid.New(), "gavi")

	if _, err := NewTokenManager("b", time.Minute, clock).Verify(token); !apperrors.Is(err, apperrors.KindUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestMiddleware(t *testing.T) {
	clock := clockwork.NewFakeClock()
	m := NewTokenManager("test-secret", time.Hour, clock)
	userID := uuid.New()
	token, _, _ := m.Issue(userID, "xavi")

	var got uuid.UUID
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = UserID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got != userID {
		t.Fatalf("expected %s in context, got %s", userID, got)
	}
}
