package middleware

import (
	"context"

	"github.com/shopstream/storefront/internal/domain"
)

type ctxKey string

const ctxUser ctxKey = "user"

// WithUser stores the resolved user on the context for handlers.
func WithUser(ctx context.Context, u domain.User) context.Context {
	return context.WithValue(ctx, ctxUser, u)
}

func UserFromContext(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(ctxUser).(domain.User)
	return u, ok && u.ID != ""
}
