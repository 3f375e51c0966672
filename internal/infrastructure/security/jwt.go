package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shopstream/storefront/internal/application/auth"
	"github.com/shopstream/storefront/internal/domain"
)

// JWTIssuer signs the access/refresh pair with two distinct HS256 secrets.
// The only application claim is the user id.
type JWTIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string

	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewJWTIssuer(accessSecret, refreshSecret, issuer string, accessTTL, refreshTTL time.Duration) *JWTIssuer {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &JWTIssuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		issuer:        issuer,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

type tokenClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

func (s *JWTIssuer) sign(userID string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(secret)
	if err != nil {
		return "", domain.ErrTokenSignFailed(err)
	}
	return signed, nil
}

func (s *JWTIssuer) verify(token string, secret []byte) (auth.TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		// prevent alg confusion
		if t.Method != jwt.SigningMethodHS256 {
			return nil, domain.ErrTokenInvalid()
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		// Expired must stay distinguishable from malformed/forged: the client
		// uses it to decide whether the refresh flow can help.
		if errors.Is(err, jwt.ErrTokenExpired) {
			return auth.TokenClaims{}, domain.ErrTokenExpired()
		}
		return auth.TokenClaims{}, domain.ErrTokenInvalid()
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return auth.TokenClaims{}, domain.ErrTokenInvalid()
	}

	exp := time.Time{}
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}

	return auth.TokenClaims{
		UserID: claims.UserID,
		Exp:    exp,
	}, nil
}

// IssuePair mints both tokens. Pure function of input and server-held
// secrets; persistence is the caller's concern.
func (s *JWTIssuer) IssuePair(userID string) (auth.TokenPair, error) {
	access, err := s.sign(userID, s.accessSecret, s.accessTTL)
	if err != nil {
		return auth.TokenPair{}, err
	}
	refresh, err := s.sign(userID, s.refreshSecret, s.refreshTTL)
	if err != nil {
		return auth.TokenPair{}, err
	}
	return auth.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *JWTIssuer) SignAccessToken(userID string) (string, error) {
	return s.sign(userID, s.accessSecret, s.accessTTL)
}

func (s *JWTIssuer) VerifyAccessToken(token string) (auth.TokenClaims, error) {
	return s.verify(token, s.accessSecret)
}

func (s *JWTIssuer) VerifyRefreshToken(token string) (auth.TokenClaims, error) {
	return s.verify(token, s.refreshSecret)
}
