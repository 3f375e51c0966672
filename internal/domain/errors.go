package domain

import (
	"errors"
	"fmt"
)

// ErrKind is used to map domain errors to HTTP status codes consistently.
type ErrKind string

const (
	KindValidation ErrKind = "validation" // 400
	KindAuth       ErrKind = "auth"       // 401
	KindForbidden  ErrKind = "forbidden"  // 403
	KindNotFound   ErrKind = "not_found"  // 404
	// Duplicate unique fields answer 400: the public contract treats a taken
	// email as a bad signup request, not a 409.
	KindConflict ErrKind = "conflict"
	KindUpstream ErrKind = "upstream" // 503
	KindInternal ErrKind = "internal" // 500
)

// Error is a structured domain error.
// - Kind: high-level category for HTTP mapping
// - Code: stable machine code (do not change casually)
// - Message: safe summary for clients (avoid leaking sensitive details)
// - Meta: optional details (field, reason, etc.)
// - Cause: wrapped internal error for logging/diagnostics
type Error struct {
	Kind    ErrKind
	Code    string
	Message string
	Meta    map[string]string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Kind, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind ErrKind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func Wrap(kind ErrKind, code, msg string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: msg, Cause: cause}
}

func WithMeta(err *Error, meta map[string]string) *Error {
	err.Meta = meta
	return err
}

func Is(err error, code string) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// ----------------------
// Validation errors (400)
// ----------------------

func ErrInvalidJSON(cause error) *Error {
	return Wrap(KindValidation, "invalid_json", "invalid JSON body", cause)
}

func ErrMissingField(field string) *Error {
	return WithMeta(New(KindValidation, "missing_field", "missing required field"), map[string]string{
		"field": field,
	})
}

func ErrInvalidField(field, reason string) *Error {
	return WithMeta(New(KindValidation, "invalid_field", "invalid field"), map[string]string{
		"field":  field,
		"reason": reason,
	})
}

// ----------------------
// Auth errors (401)
// ----------------------

// IMPORTANT: use this for login failures to avoid user enumeration.
func ErrInvalidCredentials() *Error {
	return New(KindAuth, "invalid_credentials", "invalid email or password")
}

func ErrTokenMissing() *Error {
	return New(KindAuth, "token_missing", "no access token provided")
}

func ErrTokenInvalid() *Error {
	return New(KindAuth, "token_invalid", "invalid token")
}

// Expired is distinct from invalid: clients use it to trigger the refresh flow.
func ErrTokenExpired() *Error {
	return New(KindAuth, "token_expired", "token is expired")
}

func ErrRefreshTokenMissing() *Error {
	return New(KindAuth, "refresh_token_missing", "no refresh token provided")
}

// Registry mismatch or revoked token. Mapped to 403 on the refresh endpoint.
func ErrRefreshTokenInvalid() *Error {
	return New(KindForbidden, "refresh_token_invalid", "invalid refresh token")
}

// ----------------------
// Forbidden (403)
// ----------------------

func ErrAdminOnly() *Error {
	return New(KindForbidden, "admin_only", "access denied, admins only")
}

// ----------------------
// Not found (404)
// ----------------------

func ErrUserNotFound() *Error {
	return New(KindNotFound, "user_not_found", "user not found")
}

func ErrProductNotFound() *Error {
	return New(KindNotFound, "product_not_found", "product not found")
}

func ErrCouponNotFound() *Error {
	return New(KindNotFound, "coupon_not_found", "coupon not found")
}

func ErrCouponExpired() *Error {
	return New(KindNotFound, "coupon_expired", "coupon expired")
}

func ErrCartItemNotFound() *Error {
	return New(KindNotFound, "cart_item_not_found", "product not found in cart")
}

func ErrOrderNotFound() *Error {
	return New(KindNotFound, "order_not_found", "order not found")
}

// ----------------------
// Conflict (duplicate unique field, 400)
// ----------------------

func ErrEmailAlreadyExists() *Error {
	return New(KindConflict, "email_already_exists", "user already exists")
}

// ----------------------
// Payment (400)
// ----------------------

func ErrPaymentNotCompleted() *Error {
	return New(KindValidation, "payment_not_completed", "payment has not completed")
}

// ----------------------
// Upstream / internal (5xx)
// ----------------------

func ErrDBUnavailable(cause error) *Error {
	return Wrap(KindUpstream, "db_unavailable", "database unavailable", cause)
}

func ErrCacheUnavailable(cause error) *Error {
	return Wrap(KindUpstream, "cache_unavailable", "cache unavailable", cause)
}

func ErrStorageUnavailable(cause error) *Error {
	return Wrap(KindUpstream, "storage_unavailable", "object storage unavailable", cause)
}

func ErrPaymentUnavailable(cause error) *Error {
	return Wrap(KindUpstream, "payment_unavailable", "payment provider unavailable", cause)
}

func ErrBrokerUnavailable(cause error) *Error {
	return Wrap(KindUpstream, "broker_unavailable", "message broker unavailable", cause)
}

func ErrHashFailed(cause error) *Error {
	return Wrap(KindInternal, "hash_failed", "password hashing failed", cause)
}

func ErrTokenSignFailed(cause error) *Error {
	return Wrap(KindInternal, "token_sign_failed", "token signing failed", cause)
}

func ErrInternal(cause error) *Error {
	return Wrap(KindInternal, "internal_error", "internal error", cause)
}
