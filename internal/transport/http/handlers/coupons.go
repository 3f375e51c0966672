package handlers

import (
	"net/http"
	"strings"

	"github.com/shopstream/storefront/internal/application/coupon"
	"github.com/shopstream/storefront/internal/domain"
	"github.com/shopstream/storefront/internal/transport/http/dto"
	"github.com/shopstream/storefront/internal/transport/http/middleware"
	"github.com/shopstream/storefront/internal/transport/http/response"
)

type CouponsHandler struct {
	svc *coupon.Service
}

func NewCouponsHandler(svc *coupon.Service) *CouponsHandler {
	return &CouponsHandler{svc: svc}
}

// Get returns the caller's active coupon, or null when they have none.
// Having no coupon is not an error.
func (h *CouponsHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}

	c, err := h.svc.Active(r.Context(), user.ID)
	if err != nil {
		if domain.Is(err, "coupon_not_found") {
			response.OK(w, nil)
			return
		}
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewCouponView(c))
}

// Validate accepts the code either as ?code= or as a JSON body {code}.
func (h *CouponsHandler) Validate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}

	code := strings.TrimSpace(r.URL.Query().Get("code"))
	if code == "" && r.Body != nil && r.ContentLength != 0 {
		var req dto.ValidateCouponRequest
		if err := response.DecodeJSON(r, &req); err != nil {
			response.WriteError(w, r, err)
			return
		}
		code = strings.TrimSpace(req.Code)
	}

	c, err := h.svc.Validate(r.Context(), user.ID, code)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, map[string]any{
		"message":            "coupon is valid",
		"code":               c.Code,
		"discountPercentage": c.DiscountPercentage,
	})
}
