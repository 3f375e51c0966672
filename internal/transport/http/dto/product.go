package dto

import (
	"strings"
	"time"

	"github.com/shopstream/storefront/internal/domain"
)

type CreateProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	// Price is in cents.
	Price    int64  `json:"price"`
	Category string `json:"category"`
	// Image is an optional base64 data URL.
	Image string `json:"image,omitempty"`
}

func (r *CreateProductRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Category = strings.TrimSpace(r.Category)

	if r.Name == "" {
		return domain.ErrMissingField("name")
	}
	if r.Price < 0 {
		return domain.ErrInvalidField("price", "must not be negative")
	}
	if r.Category == "" {
		return domain.ErrMissingField("category")
	}
	return nil
}

type ProductView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	ImageURL    string    `json:"image"`
	Category    string    `json:"category"`
	IsFeatured  bool      `json:"isFeatured"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewProductView(p domain.Product) ProductView {
	return ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.PriceCents,
		ImageURL:    p.ImageURL,
		Category:    p.Category,
		IsFeatured:  p.IsFeatured,
		CreatedAt:   p.CreatedAt,
	}
}

func NewProductViews(ps []domain.Product) []ProductView {
	out := make([]ProductView, 0, len(ps))
	for _, p := range ps {
		out = append(out, NewProductView(p))
	}
	return out
}
