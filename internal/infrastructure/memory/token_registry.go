package memory

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	token     string
	expiresAt time.Time
}

// TokenRegistry is the in-process fallback used when Redis is unavailable in
// dev, and by handler tests. Same contract as the Redis registry: one entry
// per user, last write wins, expired entries read as misses.
type TokenRegistry struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

func NewTokenRegistry() *TokenRegistry {
	return &TokenRegistry{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (r *TokenRegistry) Store(ctx context.Context, userID, refreshToken string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[userID] = entry{token: refreshToken, expiresAt: r.now().Add(ttl)}
	return nil
}

func (r *TokenRegistry) Validate(ctx context.Context, userID, refreshToken string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[userID]
	if !ok {
		return false, nil
	}
	if r.now().After(e.expiresAt) {
		delete(r.entries, userID)
		return false, nil
	}
	return e.token == refreshToken, nil
}

func (r *TokenRegistry) Revoke(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, userID)
	return nil
}
