package dto

import (
	"strings"

	"github.com/shopstream/storefront/internal/domain"
)

type AddToCartRequest struct {
	ProductID string `json:"productId"`
}

func (r *AddToCartRequest) Validate() error {
	r.ProductID = strings.TrimSpace(r.ProductID)
	if r.ProductID == "" {
		return domain.ErrMissingField("productId")
	}
	return nil
}

// RemoveFromCartRequest clears the whole cart when ProductID is empty.
type RemoveFromCartRequest struct {
	ProductID string `json:"productId,omitempty"`
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

func (r *UpdateQuantityRequest) Validate() error {
	if r.Quantity == nil {
		return domain.ErrMissingField("quantity")
	}
	if *r.Quantity < 0 {
		return domain.ErrInvalidField("quantity", "must not be negative")
	}
	return nil
}

// CartProductView is a product with the caller's quantity attached.
type CartProductView struct {
	ProductView
	Quantity int `json:"quantity"`
}

func NewCartProductViews(items []domain.CartProduct) []CartProductView {
	out := make([]CartProductView, 0, len(items))
	for _, it := range items {
		out = append(out, CartProductView{
			ProductView: NewProductView(it.Product),
			Quantity:    it.Quantity,
		})
	}
	return out
}

func NewCartItemViews(items []domain.CartItem) []CartItemView {
	out := make([]CartItemView, 0, len(items))
	for _, ci := range items {
		out = append(out, CartItemView{ProductID: ci.ProductID, Quantity: ci.Quantity})
	}
	return out
}
