package response

import (
	"net/http"

	appctx "github.com/shopstream/storefront/internal/pkg/context"
)

// RequestIDFromContext extracts request_id set by the RequestID middleware.
func RequestIDFromContext(r *http.Request) string {
	return appctx.GetRequestID(r.Context())
}
