package domain

import "time"

// Product prices are integer cents. Payment providers bill in minor units,
// and coupon math stays exact.
type Product struct {
	ID          string
	Name        string
	Description string
	PriceCents  int64
	ImageURL    string
	Category    string
	IsFeatured  bool
	CreatedAt   time.Time
}

// CartProduct is a product joined with the caller's cart quantity.
type CartProduct struct {
	Product
	Quantity int
}
