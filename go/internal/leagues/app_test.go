package leagues

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mcdev12/trebol/go/internal/apperrors"
	"github.com/mcdev12/trebol/go/internal/auth"
	"github.com/mcdev12/trebol/go/internal/models"
)

type fakeRepo struct {
	mu         sync.Mutex
	collisions int
	leagues    map[uuid.UUID]*models.League
	members    map[uuid.UUID][]*models.Membership
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		leagues: make(map[uuid.UUID]*models.League),
		members: make(map[uuid.UUID][]*models.Membership),
	}
}

func (f *fakeRepo) CreateLeague(_ context.Context, req CreateLeagueRequest, joinKey string, founder NewMember) (*models.League, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.collisions > 0 {
		f.collisions--
		return nil, errJoinKeyTaken
	}
	l := &models.League{ID: uuid.New(), Name: req.Name, MaxMembers: req.MaxMembers, JoinKey: joinKey, CreatedBy: founder.UserID}
	f.leagues[l.ID] = l
	f.members[l.ID] = []*models.Membership{{LeagueID: l.ID, UserID: founder.UserID, Role: models.MemberRoleOwner, Balance: founder.Balance}}
	return l, nil
}

func (f *fakeRepo) JoinLeague(_ context.Context, joinKey string, member NewMember) (*models.League, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.leagues {
		if l.JoinKey != joinKey {
			continue
		}
		for _, m := range f.members[l.ID] {
			if m.UserID == member.UserID {
				return nil, apperrors.Conflict("already a member of this league")
			}
		}
		if len(f.members[l.ID]) >= l.MaxMembers {
			return nil, apperrors.ErrLeagueFull
		}
		f.members[l.ID] = append(f.members[l.ID], &models.Membership{LeagueID: l.ID, UserID: member.UserID, Role: models.MemberRoleMember, Balance: member.Balance})
		return l, nil
	}
	return nil, apperrors.NotFound("league")
}

func (f *fakeRepo) GetLeague(_ context.Context, id uuid.UUID) (*models.League, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if l, ok := f.leagues[id]; ok {
		return l, nil
	}
	return nil, apperrors.NotFound("league")
}

func (f *fakeRepo) ListLeaguesByUser(_ context.Context, userID uuid.UUID) ([]models.League, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.League
	for id, ms := range f.members {
		for _, m := range ms {
			if m.UserID == userID {
				out = append(out, *f.leagues[id])
			}
		}
	}
	return out, nil
}

func (f *fakeRepo) DeleteLeague(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.leagues, id)
	delete(f.members, id)
	return nil
}

func (f *fakeRepo) GetMember(_ context.Context, leagueID, userID uuid.UUID) (*models.Membership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.members[leagueID] {
		if m.UserID == userID {
			return m, nil
		}
	}
	return nil, apperrors.ErrNotMember
}

func (f *fakeRepo) ListMembers(_ context.Context, leagueID uuid.UUID) ([]models.Membership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Membership
	for _, m := range f.members[leagueID] {
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeRepo) UpdateMemberRole(_ context.Context, leagueID, userID uuid.UUID, role models.MemberRole) (*models.Membership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.members[leagueID] {
		if m.UserID == userID {
			m.Role = role
			return m, nil
		}
	}
	return nil, apperrors.NotFound("member")
}

func testConfig() Config {
	return Config{StartingBalance: decimal.NewFromInt(1_000_000), DefaultMaxMembers: 3}
}

func TestCreateLeague(t *testing.T) {
	repo := newFakeRepo()
	repo.collisions = 2
	app := NewApp(repo, testConfig())
	founder := uuid.New()

	league, err := app.CreateLeague(context.Background(), founder, CreateLeagueRequest{Name: "  Peña  "})
	if err != nil {
		t.Fatalf("CreateLeague: %v", err)
	}
	if league.Name != "Peña" || league.MaxMembers != 3 {
		t.Fatalf("unexpected league %+v", league)
	}
	if len(league.JoinKey) != joinKeyLength || strings.Trim(league.JoinKey, joinKeyAlphabet) != "" {
		t.Fatalf("unexpected join key %q", league.JoinKey)
	}

	m, err := app.GetMember(context.Background(), league.ID, founder)
	if err != nil {
		t.Fatal(err)
	}
	if m.Role != models.MemberRoleOwner || !m.Balance.Equal(decimal.NewFromInt(1_000_000)) {
		t.Fatalf("unexpected founder membership %+v", m)
	}
}

func TestCreateLeagueValidation(t *testing.T) {
	app := NewApp(newFakeRepo(), testConfig())
	for _, req := range []CreateLeagueRequest{
		{Name: ""},
		{Name: "x", MaxMembers: 1},
		{Name: "x", MaxMembers: 500},
		{Name: "x", Settings: []byte("{")},
	} {
		if _, err := app.CreateLeague(context.Background(), uuid.New(), req); !apperrors.Is(err, apperrors.KindValidation) {
			t.Fatalf("expected validation error for %+v, got %v", req, err)
		}
	}
}

func TestJoinLeague(t *testing.T) {
	app := NewApp(newFakeRepo(), testConfig())
	ctx := context.Background()
	league, err := app.CreateLeague(ctx, uuid.New(), CreateLeagueRequest{Name: "Liga"})
	if err != nil {
		t.Fatal(err)
	}

	first := uuid.New()
	if _, err := app.JoinLeague(ctx, first, JoinLeagueRequest{JoinKey: strings.ToLower(league.JoinKey)}); err != nil {
		t.Fatalf("JoinLeague: %v", err)
	}
	if _, err := app.JoinLeague(ctx, first, JoinLeagueRequest{JoinKey: league.JoinKey}); !apperrors.Is(err, apperrors.KindConflict) {
		t.Fatalf("expected conflict joining twice, got %v", err)
	}
	if _, err := app.JoinLeague(ctx, uuid.New(), JoinLeagueRequest{JoinKey: league.JoinKey}); err != nil {
		t.Fatalf("third member: %v", err)
	}
	if _, err := app.JoinLeague(ctx, uuid.New(), JoinLeagueRequest{JoinKey: league.JoinKey}); err != apperrors.ErrLeagueFull {
		t.Fatalf("expected league full, got %v", err)
	}
	if _, err := app.JoinLeague(ctx, uuid.New(), JoinLeagueRequest{JoinKey: "short"}); !apperrors.Is(err, apperrors.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPromoteMember(t *testing.T) {
	app := NewApp(newFakeRepo(), testConfig())
	ctx := context.Background()
	owner := uuid.New()
	league, _ := app.CreateLeague(ctx, owner, CreateLeagueRequest{Name: "Liga"})
	member := uuid.New()
	if _, err := app.JoinLeague(ctx, member, JoinLeagueRequest{JoinKey: league.JoinKey}); err != nil {
		t.Fatal(err)
	}

	m, err := app.PromoteMember(ctx, league.ID, member)
	if err != nil || m.Role != models.MemberRoleAdmin {
		t.Fatalf("expected admin, got %+v (%v)", m, err)
	}
	if _, err := app.PromoteMember(ctx, league.ID, owner); !apperrors.Is(err, apperrors.KindConflict) {
		t.Fatalf("expected conflict promoting the owner, got %v", err)
	}
	if _, err := app.PromoteMember(ctx, league.ID, uuid.New()); !apperrors.Is(err, apperrors.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRoutesEnforceRoles(t *testing.T) {
	app := NewApp(newFakeRepo(), testConfig())
	ctx := context.Background()
	owner, member, outsider := uuid.New(), uuid.New(), uuid.New()
	league, _ := app.CreateLeague(ctx, owner, CreateLeagueRequest{Name: "Liga"})
	if _, err := app.JoinLeague(ctx, member, JoinLeagueRequest{JoinKey: league.JoinKey}); err != nil {
		t.Fatal(err)
	}

	mux := http.NewServeMux()
	NewService(app).RegisterRoutes(mux, fakeAuthn)

	do := func(method, path string, user uuid.UUID) int {
		req := httptest.NewRequest(method, path, nil)
		req = req.WithContext(auth.WithIdentity(req.Context(), auth.Identity{UserID: user}))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		return rec.Code
	}

	base := "/leagues/" + league.ID.String()
	if code := do(http.MethodGet, base, member); code != http.StatusOK {
		t.Fatalf("member read: %d", code)
	}
	if code := do(http.MethodGet, base+"/members", outsider); code != http.StatusForbidden {
		t.Fatalf("outsider read: %d", code)
	}
	if code := do(http.MethodDelete, base, member); code != http.StatusForbidden {
		t.Fatalf("member delete: %d", code)
	}
	if code := do(http.MethodPost, base+"/members/"+member.String()+"/promote", owner); code != http.StatusOK {
		t.Fatalf("owner promote: %d", code)
	}
	if code := do(http.MethodDelete, base, owner); code != http.StatusNoContent {
		t.Fatalf("owner delete: %d", code)
	}
}

// fakeAuthn trusts the identity already placed in the request context
func fakeAuthn(next http.Handler) http.Handler { return next }
