package handlers

import (
	"net/http"
	"time"

	"github.com/shopstream/storefront/internal/application/auth"
	"github.com/shopstream/storefront/internal/domain"
	"github.com/shopstream/storefront/internal/infrastructure/security"
	"github.com/shopstream/storefront/internal/logger"
	"github.com/shopstream/storefront/internal/transport/http/dto"
	"github.com/shopstream/storefront/internal/transport/http/middleware"
	"github.com/shopstream/storefront/internal/transport/http/response"
)

type AuthHandler struct {
	svc           *auth.Service
	accessTTL     time.Duration
	refreshTTL    time.Duration
	secureCookies bool
}

func NewAuthHandler(svc *auth.Service, accessTTL, refreshTTL time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		svc:           svc,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		secureCookies: secureCookies,
	}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("user_id", res.User.ID).
		Str("email", res.User.Email).
		Msg("user_signed_up")

	security.SetAuthCookies(w, res.Tokens.AccessToken, res.Tokens.RefreshToken, h.accessTTL, h.refreshTTL, h.secureCookies)

	response.Created(w, dto.AuthData{User: dto.NewUserView(res.User)})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("user_id", res.User.ID).
		Msg("user_logged_in")

	security.SetAuthCookies(w, res.Tokens.AccessToken, res.Tokens.RefreshToken, h.accessTTL, h.refreshTTL, h.secureCookies)

	response.OK(w, dto.AuthData{User: dto.NewUserView(res.User)})
}

// Logout always clears cookies and answers 200, even when the refresh token
// is missing or junk. Repeated logouts are not an error.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	refresh, _ := security.ReadRefreshToken(r)

	if err := h.svc.Logout(r.Context(), refresh); err != nil {
		logger.WithCtx(r.Context()).Warn().Err(err).Msg("logout revoke failed")
	}

	security.ClearAuthCookies(w, h.secureCookies)
	response.OK(w, map[string]string{"message": "logged out"})
}

// Refresh mints a new access token from the refresh cookie. The refresh
// token itself is not rotated.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	refresh, err := security.ReadRefreshToken(r)
	if err != nil {
		response.WriteError(w, r, domain.ErrRefreshTokenMissing())
		return
	}

	access, err := h.svc.Refresh(r.Context(), refresh)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	security.SetAccessCookie(w, access, h.accessTTL, h.secureCookies)

	response.OK(w, dto.RefreshData{AccessToken: access})
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}
	response.OK(w, dto.AuthData{User: dto.NewUserView(user)})
}
