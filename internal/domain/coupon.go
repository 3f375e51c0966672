package domain

import "time"

// Coupon is a per-user percentage discount. One active coupon per user;
// validation deactivates coupons whose expiry has passed.
type Coupon struct {
	ID                 string
	Code               string
	UserID             string
	DiscountPercentage int
	ExpiresAt          time.Time
	IsActive           bool
}

func (c Coupon) Expired(now time.Time) bool {
	return c.ExpiresAt.Before(now)
}
