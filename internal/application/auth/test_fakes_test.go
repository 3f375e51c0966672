package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopstream/storefront/internal/domain"
)

/*
Fakes for ports
*/

type fakeUserRepo struct {
	mu sync.Mutex

	byID    map[string]domain.User
	byEmail map[string]domain.User

	// injected errors (if set, method returns error)
	getByIDErr    error
	getByEmailErr error
	createErr     error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    map[string]domain.User{},
		byEmail: map[string]domain.User{},
	}
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByEmailErr != nil {
		return domain.User{}, f.getByEmailErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByIDErr != nil {
		return domain.User{}, f.getByIDErr
	}
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return domain.User{}, f.createErr
	}
	if _, exists := f.byEmail[u.Email]; exists {
		return domain.User{}, domain.ErrEmailAlreadyExists()
	}
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return u, nil
}

type fakeHasher struct {
	hashFn    func(pw string) (string, error)
	compareFn func(hash, pw string) error
}

func (f *fakeHasher) Hash(pw string) (string, error) {
	if f.hashFn != nil {
		return f.hashFn(pw)
	}
	return "hashed:" + pw, nil
}

func (f *fakeHasher) Compare(hash, pw string) error {
	if f.compareFn != nil {
		return f.compareFn(hash, pw)
	}
	if hash != "hashed:"+pw {
		return errors.New("mismatch")
	}
	return nil
}

type fakeIssuer struct {
	mu sync.Mutex

	n int

	issueErr  error
	signErr   error
	verifyErr error
}

func (f *fakeIssuer) IssuePair(userID string) (TokenPair, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.issueErr != nil {
		return TokenPair{}, f.issueErr
	}
	f.n++
	return TokenPair{
		AccessToken:  fmt.Sprintf("access-%s-%d", userID, f.n),
		RefreshToken: fmt.Sprintf("refresh-%s-%d", userID, f.n),
	}, nil
}

func (f *fakeIssuer) SignAccessToken(userID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.signErr != nil {
		return "", f.signErr
	}
	f.n++
	return fmt.Sprintf("access-%s-%d", userID, f.n), nil
}

func (f *fakeIssuer) VerifyAccessToken(token string) (TokenClaims, error) {
	return f.verify(token, "access-")
}

func (f *fakeIssuer) VerifyRefreshToken(token string) (TokenClaims, error) {
	return f.verify(token, "refresh-")
}

// verify peels userID out of the fake token format "prefix<userID>-<n>".
func (f *fakeIssuer) verify(token, prefix string) (TokenClaims, error) {
	if f.verifyErr != nil {
		return TokenClaims{}, f.verifyErr
	}
	if len(token) <= len(prefix) || token[:len(prefix)] != prefix {
		return TokenClaims{}, domain.ErrTokenInvalid()
	}
	rest := token[len(prefix):]
	for i := len(rest) - 1; i >= 0; i-- {
		if rest[i] == '-' {
			return TokenClaims{UserID: rest[:i], Exp: time.Now().Add(time.Hour)}, nil
		}
	}
	return TokenClaims{}, domain.ErrTokenInvalid()
}

type fakeRegistry struct {
	mu sync.Mutex

	byUser map[string]string

	storeErr    error
	validateErr error
	revokeErr   error

	revoked []string
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{byUser: map[string]string{}}
}

func (f *fakeRegistry) Store(ctx context.Context, userID, token string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.storeErr != nil {
		return f.storeErr
	}
	f.byUser[userID] = token
	return nil
}

func (f *fakeRegistry) Validate(ctx context.Context, userID, token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.validateErr != nil {
		return false, f.validateErr
	}
	return f.byUser[userID] == token && token != "", nil
}

func (f *fakeRegistry) Revoke(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.revokeErr != nil {
		return f.revokeErr
	}
	delete(f.byUser, userID)
	f.revoked = append(f.revoked, userID)
	return nil
}

/*
Helpers
*/

func newSvcForTest(t *testing.T) (*Service, *fakeUserRepo, *fakeHasher, *fakeIssuer, *fakeRegistry) {
	t.Helper()

	users := newFakeUserRepo()
	hasher := &fakeHasher{}
	issuer := &fakeIssuer{}
	registry := newFakeRegistry()

	svc := NewService(users, hasher, issuer, registry, Config{RefreshTTL: time.Hour})
	return svc, users, hasher, issuer, registry
}

func requireDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	if !domain.Is(err, code) {
		t.Fatalf("expected domain code %q, got %v", code, err)
	}
}
