package auth

import (
	"context"
	"time"

	"github.com/shopstream/storefront/internal/domain"
	"github.com/shopstream/storefront/internal/logger"
)

type Service struct {
	users    UserRepo
	hasher   PasswordHasher
	issuer   TokenIssuer
	registry TokenRegistry

	refreshTTL time.Duration
}

type Config struct {
	RefreshTTL time.Duration
}

func NewService(users UserRepo, hasher PasswordHasher, issuer TokenIssuer, registry TokenRegistry, cfg Config) *Service {
	refreshTTL := cfg.RefreshTTL
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &Service{
		users:      users,
		hasher:     hasher,
		issuer:     issuer,
		registry:   registry,
		refreshTTL: refreshTTL,
	}
}

// AuthResult is the common output of signup and login.
type AuthResult struct {
	User   domain.User
	Tokens TokenPair
}

// issueAndRegister mints a token pair and records the refresh token in the
// registry. A registry write failure is logged and swallowed: login stays
// available even when the cache is down, at the cost of the refresh flow.
func (s *Service) issueAndRegister(ctx context.Context, userID string) (TokenPair, error) {
	pair, err := s.issuer.IssuePair(userID)
	if err != nil {
		return TokenPair{}, err
	}

	if err := s.registry.Store(ctx, userID, pair.RefreshToken, s.refreshTTL); err != nil {
		logger.WithCtx(ctx).Warn().Err(err).
			Str("user_id", userID).
			Msg("refresh token registry write failed")
	}

	return pair, nil
}

// GetUserByID loads a user for the session middleware and profile endpoint.
func (s *Service) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return s.users.GetByID(ctx, id)
}
