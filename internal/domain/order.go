package domain

import "time"

type OrderItem struct {
	ProductID  string
	Quantity   int
	PriceCents int64
}

// Order is created once per paid checkout session. PaymentSessionID is
// unique so a replayed success callback cannot create a second order.
// DailySales is one day's bucket of the sales aggregation.
type DailySales struct {
	Day          time.Time
	Sales        int64
	RevenueCents int64
}

type Order struct {
	ID               string
	UserID           string
	Items            []OrderItem
	TotalCents       int64
	PaymentSessionID string
	CreatedAt        time.Time
}
