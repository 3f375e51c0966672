package redis

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/shopstream/storefront/internal/domain"
)

// TokenRegistry implements auth.TokenRegistry on Redis:
//
//	refresh_token:<userID> -> <token>  (TTL = refresh token validity window)
//
// One entry per user; Store overwrites, so a new login invalidates whatever
// refresh token other devices were holding. Entries expire at the same
// wall-clock boundary as the token's own exp claim, so "revoked or never
// issued" is reachable without explicit cleanup.
type TokenRegistry struct {
	rdb    *goredis.Client
	prefix string
}

func NewTokenRegistry(c *Client) *TokenRegistry {
	var rdb *goredis.Client
	if c != nil {
		rdb = c.rdb
	}
	return &TokenRegistry{
		rdb:    rdb,
		prefix: "refresh_token:",
	}
}

func (r *TokenRegistry) Store(ctx context.Context, userID, refreshToken string, ttl time.Duration) error {
	if strings.TrimSpace(userID) == "" {
		return domain.ErrMissingField("user_id")
	}
	if strings.TrimSpace(refreshToken) == "" {
		return domain.ErrMissingField("refresh_token")
	}
	if r.rdb == nil {
		return errors.New("token registry not configured")
	}
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	if err := r.rdb.Set(ctx, r.prefix+userID, refreshToken, ttl).Err(); err != nil {
		return domain.ErrCacheUnavailable(err)
	}
	return nil
}

func (r *TokenRegistry) Validate(ctx context.Context, userID, refreshToken string) (bool, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(refreshToken) == "" {
		// fail closed
		return false, nil
	}
	if r.rdb == nil {
		return false, errors.New("token registry not configured")
	}

	stored, err := r.rdb.Get(ctx, r.prefix+userID).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			// lookup miss: revoked, expired, or never issued
			return false, nil
		}
		return false, domain.ErrCacheUnavailable(err)
	}

	return subtle.ConstantTimeCompare([]byte(stored), []byte(refreshToken)) == 1, nil
}

func (r *TokenRegistry) Revoke(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		// idempotent
		return nil
	}
	if r.rdb == nil {
		return errors.New("token registry not configured")
	}
	if err := r.rdb.Del(ctx, r.prefix+userID).Err(); err != nil {
		return domain.ErrCacheUnavailable(err)
	}
	return nil
}
