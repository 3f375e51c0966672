package auth

import (
	"context"

	"github.com/shopstream/storefront/internal/domain"
)

// Refresh mints a new access token for the holder of a valid refresh token.
// The refresh token itself is NOT rotated: it keeps ticking down its original
// validity window, and the registry entry is left untouched.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", domain.ErrRefreshTokenMissing()
	}

	claims, err := s.issuer.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}

	// Byte-for-byte match against the registry; a miss means revoked or
	// superseded by a newer login.
	ok, err := s.registry.Validate(ctx, claims.UserID, refreshToken)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", domain.ErrRefreshTokenInvalid()
	}

	access, err := s.issuer.SignAccessToken(claims.UserID)
	if err != nil {
		return "", domain.ErrTokenSignFailed(err)
	}
	return access, nil
}
