package dto

import (
	"time"

	"github.com/shopstream/storefront/internal/domain"
)

type ValidateCouponRequest struct {
	Code string `json:"code"`
}

type CouponView struct {
	ID                 string    `json:"id"`
	Code               string    `json:"code"`
	DiscountPercentage int       `json:"discountPercentage"`
	ExpiresAt          time.Time `json:"expiresAt"`
	IsActive           bool      `json:"isActive"`
}

func NewCouponView(c domain.Coupon) CouponView {
	return CouponView{
		ID:                 c.ID,
		Code:               c.Code,
		DiscountPercentage: c.DiscountPercentage,
		ExpiresAt:          c.ExpiresAt,
		IsActive:           c.IsActive,
	}
}
