package checkout

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/shopstream/storefront/internal/domain"
	"github.com/shopstream/storefront/internal/logger"
)

// giftCouponThresholdCents grants a thank-you coupon on large carts.
const giftCouponThresholdCents int64 = 20000

type Service struct {
	provider   PaymentProvider
	products   ProductReader
	orders     OrderRepo
	coupons    CouponService
	cart       CartClearer
	publisher  EventPublisher
	successURL string
	cancelURL  string
}

func NewService(
	provider PaymentProvider,
	products ProductReader,
	orders OrderRepo,
	coupons CouponService,
	cart CartClearer,
	publisher EventPublisher,
	successURL, cancelURL string,
) *Service {
	return &Service{
		provider:   provider,
		products:   products,
		orders:     orders,
		coupons:    coupons,
		cart:       cart,
		publisher:  publisher,
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

// metadataItem is the order snapshot carried through provider metadata.
type metadataItem struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

type CreateSessionInput struct {
	User       domain.User
	CouponCode string
}

type CreateSessionResult struct {
	SessionID        string
	URL              string
	AmountTotalCents int64
}

// CreateSession builds a hosted checkout session from the user's cart.
// The coupon, if given, must be an active coupon owned by the user.
func (s *Service) CreateSession(ctx context.Context, in CreateSessionInput) (CreateSessionResult, error) {
	if len(in.User.CartItems) == 0 {
		return CreateSessionResult{}, domain.ErrInvalidField("products", "cart is empty")
	}

	ids := make([]string, 0, len(in.User.CartItems))
	for _, ci := range in.User.CartItems {
		ids = append(ids, ci.ProductID)
	}
	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return CreateSessionResult{}, err
	}
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var total int64
	items := make([]LineItem, 0, len(in.User.CartItems))
	snapshot := make([]metadataItem, 0, len(in.User.CartItems))
	for _, ci := range in.User.CartItems {
		p, ok := byID[ci.ProductID]
		if !ok {
			// Product removed since it was carted; skip the stale line.
			continue
		}
		total += p.PriceCents * int64(ci.Quantity)
		items = append(items, LineItem{
			Name:            p.Name,
			ImageURL:        p.ImageURL,
			UnitAmountCents: p.PriceCents,
			Quantity:        ci.Quantity,
		})
		snapshot = append(snapshot, metadataItem{ID: p.ID, Quantity: ci.Quantity, Price: p.PriceCents})
	}
	if len(items) == 0 {
		return CreateSessionResult{}, domain.ErrInvalidField("products", "cart is empty")
	}

	discount := 0
	if in.CouponCode != "" {
		coupon, err := s.coupons.Validate(ctx, in.User.ID, in.CouponCode)
		if err != nil {
			return CreateSessionResult{}, err
		}
		discount = coupon.DiscountPercentage
		total -= total * int64(discount) / 100
	}

	productsJSON, err := json.Marshal(snapshot)
	if err != nil {
		return CreateSessionResult{}, domain.ErrInternal(err)
	}

	sess, err := s.provider.CreateSession(ctx, SessionParams{
		Items:              items,
		DiscountPercentage: discount,
		Metadata: map[string]string{
			"userId":     in.User.ID,
			"couponCode": in.CouponCode,
			"products":   string(productsJSON),
		},
		SuccessURL: s.successURL,
		CancelURL:  s.cancelURL,
	})
	if err != nil {
		return CreateSessionResult{}, err
	}

	if total >= giftCouponThresholdCents {
		if _, err := s.coupons.Issue(ctx, in.User.ID); err != nil {
			logger.WithCtx(ctx).Error().Err(err).
				Str("user_id", in.User.ID).
				Msg("gift coupon issue failed")
		}
	}

	return CreateSessionResult{
		SessionID:        sess.ID,
		URL:              sess.URL,
		AmountTotalCents: sess.AmountTotalCents,
	}, nil
}

// ConfirmSuccess finalises an order after the provider reports payment.
// Replays of the same session id return the already-created order.
func (s *Service) ConfirmSuccess(ctx context.Context, sessionID string) (domain.Order, error) {
	if sessionID == "" {
		return domain.Order{}, domain.ErrMissingField("sessionId")
	}

	sess, err := s.provider.GetSession(ctx, sessionID)
	if err != nil {
		return domain.Order{}, err
	}
	if !sess.Paid {
		return domain.Order{}, domain.ErrPaymentNotCompleted()
	}

	userID := sess.Metadata["userId"]
	if code := sess.Metadata["couponCode"]; code != "" {
		if err := s.coupons.Redeem(ctx, userID, code); err != nil && !domain.Is(err, "coupon_not_found") {
			logger.WithCtx(ctx).Error().Err(err).
				Str("user_id", userID).
				Msg("coupon redeem failed")
		}
	}

	var snapshot []metadataItem
	if err := json.Unmarshal([]byte(sess.Metadata["products"]), &snapshot); err != nil {
		return domain.Order{}, domain.ErrInternal(err)
	}
	items := make([]domain.OrderItem, 0, len(snapshot))
	for _, it := range snapshot {
		items = append(items, domain.OrderItem{
			ProductID:  it.ID,
			Quantity:   it.Quantity,
			PriceCents: it.Price,
		})
	}

	order, err := s.orders.Create(ctx, domain.Order{
		ID:               uuid.NewString(),
		UserID:           userID,
		Items:            items,
		TotalCents:       sess.AmountTotalCents,
		PaymentSessionID: sessionID,
	})
	if err != nil {
		return domain.Order{}, err
	}

	if err := s.cart.Clear(ctx, userID); err != nil {
		logger.WithCtx(ctx).Error().Err(err).
			Str("user_id", userID).
			Msg("cart clear after checkout failed")
	}

	if s.publisher != nil {
		body, merr := json.Marshal(map[string]any{
			"orderId":    order.ID,
			"userId":     order.UserID,
			"totalCents": order.TotalCents,
		})
		if merr == nil {
			if err := s.publisher.PublishOrderCreated(ctx, body); err != nil {
				logger.WithCtx(ctx).Error().Err(err).
					Str("order_id", order.ID).
					Msg("order.created publish failed")
			}
		}
	}

	return order, nil
}
