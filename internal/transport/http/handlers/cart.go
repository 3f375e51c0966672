package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shopstream/storefront/internal/application/cart"
	"github.com/shopstream/storefront/internal/domain"
	"github.com/shopstream/storefront/internal/transport/http/dto"
	"github.com/shopstream/storefront/internal/transport/http/middleware"
	"github.com/shopstream/storefront/internal/transport/http/response"
)

type CartHandler struct {
	svc *cart.Service
}

func NewCartHandler(svc *cart.Service) *CartHandler {
	return &CartHandler{svc: svc}
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}

	items, err := h.svc.Products(r.Context(), user.ID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewCartProductViews(items))
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}

	var req dto.AddToCartRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	items, err := h.svc.Add(r.Context(), user.ID, req.ProductID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewCartItemViews(items))
}

// Remove deletes one line when productId is present, or empties the whole
// cart when it isn't.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}

	var req dto.RemoveFromCartRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := response.DecodeJSON(r, &req); err != nil {
			response.WriteError(w, r, err)
			return
		}
	}

	items, err := h.svc.Remove(r.Context(), user.ID, req.ProductID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewCartItemViews(items))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}

	productID := chi.URLParam(r, "id")

	var req dto.UpdateQuantityRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	items, err := h.svc.UpdateQuantity(r.Context(), user.ID, productID, *req.Quantity)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewCartItemViews(items))
}
