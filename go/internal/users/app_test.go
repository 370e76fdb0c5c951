package users

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/mcdev12/trebol/go/internal/apperrors"
	"github.com/mcdev12/trebol/go/internal/auth"
	"github.com/mcdev12/trebol/go/internal/models"
)

type fakeRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[uuid.UUID]*models.User)}
}

func (f *fakeRepo) CreateUser(_ context.Context, username string, email *string, hash string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := &models.User{ID: uuid.New(), Username: username, Email: email, PasswordHash: hash, CreatedAt: time.Now()}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeRepo) GetUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.NotFound("user")
}

func (f *fakeRepo) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("user")
}

func (f *fakeRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email != nil && *u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("user")
}

func newTestApp() (*App, *auth.TokenManager) {
	tokens := auth.NewTokenManager("secret", 30*time.Minute, clockwork.NewRealClock())
	return NewApp(newFakeRepo(), tokens), tokens
}

func TestRegisterAndLogin(t *testing.T) {
	app, tokens := newTestApp()
	ctx := context.Background()
	email := "ana@example.com"

	user, err := app.Register(ctx, RegisterRequest{Username: "ana", Password: "hunter2", Email: &email})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.PasswordHash == "hunter2" || user.PasswordHash == "" {
		t.Fatal("password must be stored hashed")
	}

	session, err := app.Login(ctx, LoginRequest{Username: "ana", Password: "hunter2"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	id, err := tokens.Verify(session.Token)
	if err != nil || id.UserID != user.ID || id.Username != "ana" {
		t.Fatalf("token does not carry the account: %+v (%v)", id, err)
	}
}

func TestRegisterRejections(t *testing.T) {
	app, _ := newTestApp()
	ctx := context.Background()
	email := "ana@example.com"
	if _, err := app.Register(ctx, RegisterRequest{Username: "ana", Password: "pw", Email: &email}); err != nil {
		t.Fatal(err)
	}
	bad := "not-an-email"

	tests := []struct {
		name string
		req  RegisterRequest
		kind apperrors.Kind
	}{
		{"missing username", RegisterRequest{Password: "pw"}, apperrors.KindValidation},
		{"missing password", RegisterRequest{Username: "bob"}, apperrors.KindValidation},
		{"bad email", RegisterRequest{Username: "bob", Password: "pw", Email: &bad}, apperrors.KindValidation},
		{"duplicate username", RegisterRequest{Username: "ana", Password: "pw"}, apperrors.KindConflict},
		{"duplicate email", RegisterRequest{Username: "bob", Password: "pw", Email: &email}, apperrors.KindConflict},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := app.Register(ctx, tc.req)
			if got := apperrors.KindOf(err); got != tc.kind {
				t.Fatalf("expected %s, got %s (%v)", tc.kind, got, err)
			}
		})
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app, _ := newTestApp()
	ctx := context.Background()
	if _, err := app.Register(ctx, RegisterRequest{Username: "ana", Password: "right"}); err != nil {
		t.Fatal(err)
	}

	for _, req := range []LoginRequest{
		{Username: "ana", Password: "wrong"},
		{Username: "nobody", Password: "right"},
	} {
		_, err := app.Login(ctx, req)
		if !apperrors.Is(err, apperrors.KindUnauthenticated) {
			t.Fatalf("expected unauthenticated for %+v, got %v", req, err)
		}
	}
}

func TestServiceRoutes(t *testing.T) {
	app, tokens := newTestApp()
	mux := http.NewServeMux()
	NewService(app).RegisterRoutes(mux, tokens.Middleware)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"username":"ana","password":"pw"}`)))
	if rec.Code != http.StatusCreated || !strings.Contains(rec.Body.String(), `"userId"`) {
		t.Fatalf("register: %d %s", rec.Code, rec.Body)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"ana","password":"pw"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("login: %d %s", rec.Code, rec.Body)
	}
	session, err := app.Login(context.Background(), LoginRequest{Username: "ana", Password: "pw"})
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("me: %d %s", rec.Code, rec.Body)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", rec.Code)
	}
}
