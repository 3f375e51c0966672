package coupon

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shopstream/storefront/internal/domain"
)

type CouponRepo interface {
	GetActiveByUser(ctx context.Context, userID string) (domain.Coupon, error)
	GetActiveByCode(ctx context.Context, userID, code string) (domain.Coupon, error)
	Create(ctx context.Context, c domain.Coupon) (domain.Coupon, error)
	Deactivate(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) error
}

type Clock interface{ Now() time.Time }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type Service struct {
	repo  CouponRepo
	clock Clock
}

func New(repo CouponRepo) *Service {
	return &Service{repo: repo, clock: realClock{}}
}

// WithClock overrides time for tests.
func (s *Service) WithClock(c Clock) *Service {
	if c != nil {
		s.clock = c
	}
	return s
}

// Active returns the user's currently active coupon.
func (s *Service) Active(ctx context.Context, userID string) (domain.Coupon, error) {
	return s.repo.GetActiveByUser(ctx, userID)
}

// Validate checks a code against the caller's active coupon. An expired
// coupon is deactivated on sight, so the active flag converges with the
// expiry date without a background sweeper.
func (s *Service) Validate(ctx context.Context, userID, code string) (domain.Coupon, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.Coupon{}, domain.ErrMissingField("code")
	}

	c, err := s.repo.GetActiveByCode(ctx, userID, code)
	if err != nil {
		return domain.Coupon{}, err
	}

	if c.Expired(s.clock.Now()) {
		if err := s.repo.Deactivate(ctx, c.ID); err != nil {
			return domain.Coupon{}, err
		}
		return domain.Coupon{}, domain.ErrCouponExpired()
	}

	return c, nil
}

// Issue replaces any existing coupons for the user with a fresh 10% gift
// coupon valid 30 days. Called by checkout for carts over the gift threshold.
func (s *Service) Issue(ctx context.Context, userID string) (domain.Coupon, error) {
	if err := s.repo.DeleteByUser(ctx, userID); err != nil {
		return domain.Coupon{}, err
	}

	c := domain.Coupon{
		ID:                 uuid.NewString(),
		Code:               giftCode(),
		UserID:             userID,
		DiscountPercentage: 10,
		ExpiresAt:          s.clock.Now().Add(30 * 24 * time.Hour),
		IsActive:           true,
	}
	return s.repo.Create(ctx, c)
}

// Redeem deactivates the coupon a paid checkout consumed.
func (s *Service) Redeem(ctx context.Context, userID, code string) error {
	c, err := s.repo.GetActiveByCode(ctx, userID, code)
	if err != nil {
		return err
	}
	return s.repo.Deactivate(ctx, c.ID)
}

func giftCode() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return "GIFT" + strings.ToUpper(hex.EncodeToString(b))
}
