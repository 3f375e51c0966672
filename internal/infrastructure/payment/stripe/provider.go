package stripe

import (
	"context"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/shopstream/storefront/internal/application/checkout"
	"github.com/shopstream/storefront/internal/domain"
)

// Provider implements checkout.PaymentProvider over Stripe hosted checkout.
type Provider struct {
	api *client.API
}

func NewProvider(secretKey string) *Provider {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &Provider{api: api}
}

func (p *Provider) CreateSession(ctx context.Context, in checkout.SessionParams) (checkout.Session, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(in.Items))
	for _, it := range in.Items {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(it.Name),
		}
		if it.ImageURL != "" {
			productData.Images = stripe.StringSlice([]string{it.ImageURL})
		}
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(string(stripe.CurrencyUSD)),
				ProductData: productData,
				UnitAmount:  stripe.Int64(it.UnitAmountCents),
			},
			Quantity: stripe.Int64(int64(it.Quantity)),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Params:             stripe.Params{Context: ctx},
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:          lineItems,
		SuccessURL:         stripe.String(in.SuccessURL),
		CancelURL:          stripe.String(in.CancelURL),
	}
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}

	if in.DiscountPercentage > 0 {
		couponID, err := p.percentCoupon(ctx, in.DiscountPercentage)
		if err != nil {
			return checkout.Session{}, err
		}
		params.Discounts = []*stripe.CheckoutSessionDiscountParams{
			{Coupon: stripe.String(couponID)},
		}
	}

	sess, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return checkout.Session{}, domain.ErrPaymentUnavailable(err)
	}
	return fromStripe(sess), nil
}

func (p *Provider) GetSession(ctx context.Context, id string) (checkout.Session, error) {
	sess, err := p.api.CheckoutSessions.Get(id, &stripe.CheckoutSessionParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return checkout.Session{}, domain.ErrPaymentUnavailable(err)
	}
	return fromStripe(sess), nil
}

// percentCoupon creates a single-use percent-off coupon on the Stripe side.
// Stripe checkout discounts reference a coupon object, not a raw percent.
func (p *Provider) percentCoupon(ctx context.Context, percent int) (string, error) {
	c, err := p.api.Coupons.New(&stripe.CouponParams{
		Params:     stripe.Params{Context: ctx},
		PercentOff: stripe.Float64(float64(percent)),
		Duration:   stripe.String(string(stripe.CouponDurationOnce)),
	})
	if err != nil {
		return "", domain.ErrPaymentUnavailable(err)
	}
	return c.ID, nil
}

func fromStripe(sess *stripe.CheckoutSession) checkout.Session {
	return checkout.Session{
		ID:               sess.ID,
		URL:              sess.URL,
		AmountTotalCents: sess.AmountTotal,
		Paid:             sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		Metadata:         sess.Metadata,
	}
}
