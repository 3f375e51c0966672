package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shopstream/storefront/internal/application/auth"
	"github.com/shopstream/storefront/internal/domain"
	"github.com/shopstream/storefront/internal/infrastructure/security"
)

type TokenVerifier interface {
	VerifyAccessToken(token string) (auth.TokenClaims, error)
}

// UserResolver loads the token's subject from the source of truth. A token
// for a deleted user does not authenticate.
type UserResolver interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)
}

type WriteErrFunc func(http.ResponseWriter, *http.Request, error)

// Auth reads the access token cookie, verifies it, resolves the user, and
// injects the user into request context. Expired tokens answer with a
// distinct code so clients know to hit the refresh endpoint.
func Auth(verifier TokenVerifier, users UserResolver, writeErr WriteErrFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := security.ReadAccessToken(r)
			if err != nil {
				writeErr(w, r, domain.ErrTokenMissing())
				return
			}

			claims, err := verifier.VerifyAccessToken(raw)
			if err != nil {
				writeErr(w, r, err)
				return
			}

			if strings.TrimSpace(claims.UserID) == "" {
				writeErr(w, r, domain.ErrTokenInvalid())
				return
			}

			user, err := users.GetUserByID(r.Context(), claims.UserID)
			if err != nil {
				writeErr(w, r, err)
				return
			}

			ctx := WithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly gates a route on the admin role. Must sit behind Auth.
func AdminOnly(writeErr WriteErrFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				writeErr(w, r, domain.ErrTokenInvalid())
				return
			}
			if !user.IsAdmin() {
				writeErr(w, r, domain.ErrAdminOnly())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
