package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopstream/storefront/internal/application/auth"
	"github.com/shopstream/storefront/internal/domain"
	"github.com/shopstream/storefront/internal/infrastructure/security"
)

// ---- fakes ----

type fakeVerifier struct {
	claims auth.TokenClaims
	err    error
	calls  int
	gotTok string
}

func (f *fakeVerifier) VerifyAccessToken(token string) (auth.TokenClaims, error) {
	f.calls++
	f.gotTok = token
	return f.claims, f.err
}

type fakeUsers struct {
	user  domain.User
	err   error
	calls int
	gotID string
}

func (u *fakeUsers) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	u.calls++
	u.gotID = id
	return u.user, u.err
}

type writeErrRecorder struct {
	calls int
	last  error
}

func (w *writeErrRecorder) fn(_ http.ResponseWriter, _ *http.Request, err error) {
	w.calls++
	w.last = err
}

// next handler checks context injection
type nextRecorder struct {
	calls   int
	gotUser domain.User
	gotOK   bool
}

func (n *nextRecorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	n.calls++
	n.gotUser, n.gotOK = UserFromContext(r.Context())
	w.WriteHeader(http.StatusOK)
}

func withAccessCookie(req *http.Request, token string) *http.Request {
	req.AddCookie(&http.Cookie{Name: security.AccessCookieName, Value: token})
	return req
}

// helper to run middleware around a handler
func runAuthMW(t *testing.T, verifier TokenVerifier, users UserResolver, req *http.Request) (*writeErrRecorder, *nextRecorder) {
	t.Helper()

	rr := httptest.NewRecorder()
	we := &writeErrRecorder{}
	nx := &nextRecorder{}

	h := Auth(verifier, users, we.fn)(nx)
	h.ServeHTTP(rr, req)

	return we, nx
}

// ---- Auth tests ----

func TestAuth_MissingCookie_ReturnsTokenMissing(t *testing.T) {
	v := &fakeVerifier{}
	u := &fakeUsers{}
	req := httptest.NewRequest(http.MethodGet, "/x", nil)

	we, nx := runAuthMW(t, v, u, req)

	if nx.calls != 0 {
		t.Fatalf("expected next not called")
	}
	if we.calls != 1 {
		t.Fatalf("expected writeErr called once, got %d", we.calls)
	}
	if !domain.Is(we.last, "token_missing") {
		t.Fatalf("expected token_missing, got %v", we.last)
	}
	if v.calls != 0 {
		t.Fatalf("verifier should not be called when cookie missing")
	}
}

func TestAuth_VerifierReturnsError_PropagatesToWriteErr(t *testing.T) {
	v := &fakeVerifier{err: domain.ErrTokenExpired()}
	u := &fakeUsers{}
	req := withAccessCookie(httptest.NewRequest(http.MethodGet, "/x", nil), "abc")

	we, nx := runAuthMW(t, v, u, req)

	if nx.calls != 0 {
		t.Fatalf("expected next not called")
	}
	if !domain.Is(we.last, "token_expired") {
		t.Fatalf("expected token_expired, got %v", we.last)
	}
	if v.calls != 1 || v.gotTok != "abc" {
		t.Fatalf("expected verifier called with token=abc, calls=%d gotTok=%q", v.calls, v.gotTok)
	}
}

func TestAuth_ClaimsMissingUserID_ReturnsTokenInvalid(t *testing.T) {
	v := &fakeVerifier{claims: auth.TokenClaims{UserID: "   "}}
	u := &fakeUsers{}
	req := withAccessCookie(httptest.NewRequest(http.MethodGet, "/x", nil), "abc")

	we, nx := runAuthMW(t, v, u, req)

	if nx.calls != 0 {
		t.Fatalf("expected next not called")
	}
	if !domain.Is(we.last, "token_invalid") {
		t.Fatalf("expected token_invalid, got %v", we.last)
	}
	if u.calls != 0 {
		t.Fatalf("expected users not called, got %d", u.calls)
	}
}

func TestAuth_ResolverError_ReturnsThatError(t *testing.T) {
	v := &fakeVerifier{claims: auth.TokenClaims{UserID: "u-1"}}
	u := &fakeUsers{err: domain.ErrDBUnavailable(errors.New("db down"))}
	req := withAccessCookie(httptest.NewRequest(http.MethodGet, "/x", nil), "tok")

	we, nx := runAuthMW(t, v, u, req)

	if nx.calls != 0 {
		t.Fatalf("expected next not called")
	}
	if !domain.Is(we.last, "db_unavailable") {
		t.Fatalf("expected db_unavailable, got %v", we.last)
	}
	if u.calls != 1 || u.gotID != "u-1" {
		t.Fatalf("expected users called once with u-1, calls=%d gotID=%q", u.calls, u.gotID)
	}
}

func TestAuth_DeletedUser_DoesNotAuthenticate(t *testing.T) {
	v := &fakeVerifier{claims: auth.TokenClaims{UserID: "u-1"}}
	u := &fakeUsers{err: domain.ErrUserNotFound()}
	req := withAccessCookie(httptest.NewRequest(http.MethodGet, "/x", nil), "tok")

	we, nx := runAuthMW(t, v, u, req)

	if nx.calls != 0 {
		t.Fatalf("expected next not called")
	}
	if !domain.Is(we.last, "user_not_found") {
		t.Fatalf("expected user_not_found, got %v", we.last)
	}
}

func TestAuth_ValidToken_InjectsUser(t *testing.T) {
	v := &fakeVerifier{claims: auth.TokenClaims{UserID: "u-1"}}
	u := &fakeUsers{user: domain.User{ID: "u-1", Name: "Ada", Role: string(domain.RoleCustomer)}}
	req := withAccessCookie(httptest.NewRequest(http.MethodGet, "/x", nil), "tok")

	we, nx := runAuthMW(t, v, u, req)

	if we.calls != 0 {
		t.Fatalf("expected writeErr not called, got %d (%v)", we.calls, we.last)
	}
	if nx.calls != 1 {
		t.Fatalf("expected next called once, got %d", nx.calls)
	}
	if !nx.gotOK || nx.gotUser.ID != "u-1" || nx.gotUser.Name != "Ada" {
		t.Fatalf("expected ctx user u-1, got ok=%v user=%+v", nx.gotOK, nx.gotUser)
	}
}

// ---- AdminOnly tests ----

func runAdminMW(t *testing.T, ctx context.Context) (*writeErrRecorder, *nextRecorder) {
	t.Helper()

	rr := httptest.NewRecorder()
	we := &writeErrRecorder{}
	nx := &nextRecorder{}

	req := httptest.NewRequest(http.MethodGet, "/x", nil).WithContext(ctx)
	h := AdminOnly(we.fn)(nx)
	h.ServeHTTP(rr, req)

	return we, nx
}

func TestAdminOnly_NoUserOnContext_ReturnsTokenInvalid(t *testing.T) {
	we, nx := runAdminMW(t, context.Background())

	if nx.calls != 0 {
		t.Fatalf("expected next not called")
	}
	if !domain.Is(we.last, "token_invalid") {
		t.Fatalf("expected token_invalid, got %v", we.last)
	}
}

func TestAdminOnly_CustomerRole_ReturnsAdminOnly(t *testing.T) {
	ctx := WithUser(context.Background(), domain.User{ID: "u-1", Role: string(domain.RoleCustomer)})
	we, nx := runAdminMW(t, ctx)

	if nx.calls != 0 {
		t.Fatalf("expected next not called")
	}
	if !domain.Is(we.last, "admin_only") {
		t.Fatalf("expected admin_only, got %v", we.last)
	}
}

func TestAdminOnly_AdminRole_PassesThrough(t *testing.T) {
	ctx := WithUser(context.Background(), domain.User{ID: "u-1", Role: string(domain.RoleAdmin)})
	we, nx := runAdminMW(t, ctx)

	if we.calls != 0 {
		t.Fatalf("expected writeErr not called, got %v", we.last)
	}
	if nx.calls != 1 {
		t.Fatalf("expected next called once, got %d", nx.calls)
	}
}
