package dto

import (
	"strings"
	"time"

	"github.com/shopstream/storefront/internal/domain"
)

type CreateCheckoutSessionRequest struct {
	CouponCode string `json:"couponCode,omitempty"`
}

type CheckoutSessionData struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
	// TotalAmount is in cents.
	TotalAmount int64 `json:"totalAmount"`
}

type CheckoutSuccessRequest struct {
	SessionID string `json:"sessionId"`
}

func (r *CheckoutSuccessRequest) Validate() error {
	r.SessionID = strings.TrimSpace(r.SessionID)
	if r.SessionID == "" {
		return domain.ErrMissingField("sessionId")
	}
	return nil
}

type OrderItemView struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
}

type OrderView struct {
	ID          string          `json:"id"`
	TotalAmount int64           `json:"totalAmount"`
	Items       []OrderItemView `json:"items"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func NewOrderView(o domain.Order) OrderView {
	items := make([]OrderItemView, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemView{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.PriceCents,
		})
	}
	return OrderView{
		ID:          o.ID,
		TotalAmount: o.TotalCents,
		Items:       items,
		CreatedAt:   o.CreatedAt,
	}
}
