package auth

import "context"

// Logout revokes the registry entry for the refresh token's user. Revocation
// is best-effort: a missing or unverifiable token is a silent no-op, because
// the client-visible outcome (cookies cleared) is the same either way.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	claims, err := s.issuer.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil
	}
	return s.registry.Revoke(ctx, claims.UserID)
}
