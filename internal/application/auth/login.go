package auth

import (
	"context"
	"strings"

	"github.com/shopstream/storefront/internal/domain"
)

// Login authenticates a user and issues a fresh token pair. A new login
// overwrites the registry entry, implicitly invalidating refresh tokens held
// by other devices.
// IMPORTANT: must not leak whether the email exists (avoid user enumeration).
func (s *Service) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.TrimSpace(email)

	if email == "" || password == "" {
		return AuthResult{}, domain.ErrInvalidCredentials()
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// Hide not-found behind invalid credentials
		return AuthResult{}, domain.ErrInvalidCredentials()
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return AuthResult{}, domain.ErrInvalidCredentials()
	}

	pair, err := s.issueAndRegister(ctx, u.ID)
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{User: u, Tokens: pair}, nil
}
