package auth

import (
	"context"
	"time"

	"github.com/shopstream/storefront/internal/domain"
)

/*
UserRepo
--------
Persistence port for users.
Only describes WHAT the auth flows need, not HOW it's stored.
*/
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)
}

/*
PasswordHasher
--------------
Abstracts bcrypt.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

/*
TokenIssuer
-----------
Mints and verifies the access/refresh JWT pair. The two token kinds are
signed with distinct secrets; a refresh token never verifies as an access
token and vice versa.
*/
type TokenClaims struct {
	UserID string
	Exp    time.Time
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type TokenIssuer interface {
	IssuePair(userID string) (TokenPair, error)
	SignAccessToken(userID string) (string, error)
	VerifyAccessToken(token string) (TokenClaims, error)
	VerifyRefreshToken(token string) (TokenClaims, error)
}

/*
TokenRegistry
-------------
Key-value registry of the single currently-valid refresh token per user.
Backed by Redis; entries expire at the same wall-clock boundary as the
token's own expiry claim.
*/
type TokenRegistry interface {
	// Store upserts the entry, overwriting any prior value for the user.
	Store(ctx context.Context, userID, refreshToken string, ttl time.Duration) error
	// Validate compares for exact equality and fails closed on a lookup miss.
	Validate(ctx context.Context, userID, refreshToken string) (bool, error)
	Revoke(ctx context.Context, userID string) error
}
