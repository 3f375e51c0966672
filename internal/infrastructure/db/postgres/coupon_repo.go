package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/shopstream/storefront/internal/domain"
)

type CouponRepo struct {
	db *sql.DB
}

func NewCouponRepo(db *sql.DB) *CouponRepo {
	return &CouponRepo{db: db}
}

const couponColumns = `id, code, user_id, discount_percentage, expires_at, is_active`

func scanCoupon(s interface{ Scan(...any) error }) (domain.Coupon, error) {
	var c domain.Coupon
	err := s.Scan(
		&c.ID,
		&c.Code,
		&c.UserID,
		&c.DiscountPercentage,
		&c.ExpiresAt,
		&c.IsActive,
	)
	return c, err
}

func (r *CouponRepo) GetActiveByUser(ctx context.Context, userID string) (domain.Coupon, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.Coupon{}, domain.ErrMissingField("user_id")
	}

	const q = `SELECT ` + couponColumns + ` FROM coupons WHERE user_id = $1 AND is_active LIMIT 1;`
	c, err := scanCoupon(r.db.QueryRowContext(ctx, q, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Coupon{}, domain.ErrCouponNotFound()
		}
		return domain.Coupon{}, domain.ErrDBUnavailable(err)
	}
	return c, nil
}

func (r *CouponRepo) GetActiveByCode(ctx context.Context, userID, code string) (domain.Coupon, error) {
	if strings.TrimSpace(code) == "" {
		return domain.Coupon{}, domain.ErrMissingField("code")
	}

	const q = `SELECT ` + couponColumns + ` FROM coupons WHERE user_id = $1 AND code = $2 AND is_active LIMIT 1;`
	c, err := scanCoupon(r.db.QueryRowContext(ctx, q, userID, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Coupon{}, domain.ErrCouponNotFound()
		}
		return domain.Coupon{}, domain.ErrDBUnavailable(err)
	}
	return c, nil
}

func (r *CouponRepo) Create(ctx context.Context, c domain.Coupon) (domain.Coupon, error) {
	const q = `
INSERT INTO coupons (id, code, user_id, discount_percentage, expires_at, is_active)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING ` + couponColumns + `;`

	created, err := scanCoupon(r.db.QueryRowContext(ctx, q,
		c.ID, c.Code, c.UserID, c.DiscountPercentage, c.ExpiresAt, c.IsActive,
	))
	if err != nil {
		return domain.Coupon{}, domain.ErrDBUnavailable(err)
	}
	return created, nil
}

func (r *CouponRepo) Deactivate(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE coupons SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrCouponNotFound()
	}
	return nil
}

// DeleteByUser clears a user's coupons before a fresh gift coupon is issued.
func (r *CouponRepo) DeleteByUser(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM coupons WHERE user_id = $1`, userID); err != nil {
		return domain.ErrDBUnavailable(err)
	}
	return nil
}
