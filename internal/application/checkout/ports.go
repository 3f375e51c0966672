package checkout

import (
	"context"

	"github.com/shopstream/storefront/internal/domain"
)

/*
PaymentProvider
---------------
Hosted-checkout provider (Stripe in production). The provider owns the
payment UI; this service only creates sessions and reads them back.
*/
type LineItem struct {
	Name            string
	ImageURL        string
	UnitAmountCents int64
	Quantity        int
}

type SessionParams struct {
	Items []LineItem
	// DiscountPercentage > 0 applies a percent-off coupon to the session.
	DiscountPercentage int
	// Metadata survives the round trip and is read back on success.
	Metadata   map[string]string
	SuccessURL string
	CancelURL  string
}

type Session struct {
	ID               string
	URL              string
	AmountTotalCents int64
	Paid             bool
	Metadata         map[string]string
}

type PaymentProvider interface {
	CreateSession(ctx context.Context, p SessionParams) (Session, error)
	GetSession(ctx context.Context, id string) (Session, error)
}

type ProductReader interface {
	GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
}

type OrderRepo interface {
	Create(ctx context.Context, o domain.Order) (domain.Order, error)
}

type CouponService interface {
	Validate(ctx context.Context, userID, code string) (domain.Coupon, error)
	Issue(ctx context.Context, userID string) (domain.Coupon, error)
	Redeem(ctx context.Context, userID, code string) error
}

type CartClearer interface {
	Clear(ctx context.Context, userID string) error
}

/*
EventPublisher
--------------
Emits order.created to the broker after a successful checkout. Fulfilment
and email are downstream consumers; the request does not wait on them.
*/
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, body []byte) error
}
