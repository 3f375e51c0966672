package handlers

import (
	"net/http"

	"github.com/shopstream/storefront/internal/application/checkout"
	"github.com/shopstream/storefront/internal/domain"
	"github.com/shopstream/storefront/internal/logger"
	"github.com/shopstream/storefront/internal/transport/http/dto"
	"github.com/shopstream/storefront/internal/transport/http/middleware"
	"github.com/shopstream/storefront/internal/transport/http/response"
)

type CheckoutHandler struct {
	svc *checkout.Service
}

func NewCheckoutHandler(svc *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{svc: svc}
}

func (h *CheckoutHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}

	var req dto.CreateCheckoutSessionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := response.DecodeJSON(r, &req); err != nil {
			response.WriteError(w, r, err)
			return
		}
	}

	res, err := h.svc.CreateSession(r.Context(), checkout.CreateSessionInput{
		User:       user,
		CouponCode: req.CouponCode,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("user_id", user.ID).
		Str("session_id", res.SessionID).
		Int64("total_cents", res.AmountTotalCents).
		Msg("checkout_session_created")

	response.OK(w, dto.CheckoutSessionData{
		SessionID:   res.SessionID,
		URL:         res.URL,
		TotalAmount: res.AmountTotalCents,
	})
}

func (h *CheckoutHandler) Success(w http.ResponseWriter, r *http.Request) {
	var req dto.CheckoutSuccessRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	order, err := h.svc.ConfirmSuccess(r.Context(), req.SessionID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("order_id", order.ID).
		Str("session_id", req.SessionID).
		Msg("order_created")

	response.OK(w, map[string]any{
		"message": "payment successful, order created",
		"order":   dto.NewOrderView(order),
	})
}
