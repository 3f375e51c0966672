package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/shopstream/storefront/internal/domain"
)

func (s *Service) Signup(ctx context.Context, name, email, password string) (AuthResult, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" {
		return AuthResult{}, domain.ErrMissingField("name")
	}
	if email == "" {
		return AuthResult{}, domain.ErrMissingField("email")
	}
	if password == "" {
		return AuthResult{}, domain.ErrMissingField("password")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return AuthResult{}, domain.ErrHashFailed(err)
	}

	u := domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         string(domain.RoleCustomer),
	}

	created, err := s.users.Create(ctx, u)
	if err != nil {
		return AuthResult{}, err
	}

	pair, err := s.issueAndRegister(ctx, created.ID)
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{User: created, Tokens: pair}, nil
}
