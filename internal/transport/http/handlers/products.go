package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shopstream/storefront/internal/application/catalog"
	"github.com/shopstream/storefront/internal/domain"
	"github.com/shopstream/storefront/internal/logger"
	"github.com/shopstream/storefront/internal/transport/http/dto"
	"github.com/shopstream/storefront/internal/transport/http/response"
)

type ProductsHandler struct {
	svc *catalog.Service
}

func NewProductsHandler(svc *catalog.Service) *ProductsHandler {
	return &ProductsHandler{svc: svc}
}

func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListAll(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, map[string]any{"products": dto.NewProductViews(products)})
}

func (h *ProductsHandler) Featured(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.Featured(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewProductViews(products))
}

func (h *ProductsHandler) Recommended(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.Recommended(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewProductViews(products))
}

func (h *ProductsHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if category == "" {
		response.WriteError(w, r, domain.ErrMissingField("category"))
		return
	}

	products, err := h.svc.ByCategory(r.Context(), category)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, map[string]any{"products": dto.NewProductViews(products)})
}

func (h *ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProductRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	product, err := h.svc.Create(r.Context(), catalog.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.Price,
		Category:    req.Category,
		ImageData:   req.Image,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("product_id", product.ID).
		Str("category", product.Category).
		Msg("product_created")

	response.Created(w, dto.NewProductView(product))
}

func (h *ProductsHandler) ToggleFeatured(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.svc.ToggleFeatured(r.Context(), id)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewProductView(product))
}

func (h *ProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), id); err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("product_id", id).
		Msg("product_deleted")

	response.OK(w, map[string]string{"message": "product deleted"})
}
