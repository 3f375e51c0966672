package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/shopstream/storefront/internal/domain"
)

type fakeProvider struct {
	mu sync.Mutex

	created  []SessionParams
	sessions map[string]Session

	createErr error
	getErr    error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{sessions: map[string]Session{}}
}

func (f *fakeProvider) CreateSession(ctx context.Context, p SessionParams) (Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return Session{}, f.createErr
	}
	f.created = append(f.created, p)

	var total int64
	for _, it := range p.Items {
		total += it.UnitAmountCents * int64(it.Quantity)
	}
	if p.DiscountPercentage > 0 {
		total -= total * int64(p.DiscountPercentage) / 100
	}
	s := Session{
		ID:               "sess_1",
		URL:              "https://pay.example.com/sess_1",
		AmountTotalCents: total,
		Metadata:         p.Metadata,
	}
	f.sessions[s.ID] = s
	return s, nil
}

func (f *fakeProvider) GetSession(ctx context.Context, id string) (Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return Session{}, f.getErr
	}
	s, ok := f.sessions[id]
	if !ok {
		return Session{}, domain.ErrPaymentUnavailable(errors.New("unknown session"))
	}
	return s, nil
}

func (f *fakeProvider) markPaid(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.sessions[id]
	s.Paid = true
	f.sessions[id] = s
}

type fakeProducts struct {
	byID map[string]domain.Product
}

func (f *fakeProducts) GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	var out []domain.Product
	for _, id := range ids {
		if p, ok := f.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeOrders struct {
	mu sync.Mutex

	bySession map[string]domain.Order
	received  []domain.Order
	n         int
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{bySession: map[string]domain.Order{}}
}

// Create stores the order exactly as handed over, like the real repo the
// caller must supply the id. A replay on payment_session_id returns the
// existing order instead of inserting a second one.
func (f *fakeOrders) Create(ctx context.Context, o domain.Order) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.received = append(f.received, o)
	if existing, ok := f.bySession[o.PaymentSessionID]; ok {
		return existing, nil
	}
	f.n++
	f.bySession[o.PaymentSessionID] = o
	return o, nil
}

type fakeCoupons struct {
	mu sync.Mutex

	active map[string]domain.Coupon // key userID

	issued   []string
	redeemed []string

	issueErr error
}

func newFakeCoupons() *fakeCoupons {
	return &fakeCoupons{active: map[string]domain.Coupon{}}
}

func (f *fakeCoupons) Validate(ctx context.Context, userID, code string) (domain.Coupon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.active[userID]
	if !ok || c.Code != code {
		return domain.Coupon{}, domain.ErrCouponNotFound()
	}
	return c, nil
}

func (f *fakeCoupons) Issue(ctx context.Context, userID string) (domain.Coupon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.issueErr != nil {
		return domain.Coupon{}, f.issueErr
	}
	f.issued = append(f.issued, userID)
	return domain.Coupon{Code: "GIFTAB12", UserID: userID, DiscountPercentage: 10, IsActive: true}, nil
}

func (f *fakeCoupons) Redeem(ctx context.Context, userID, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.active[userID]
	if !ok || c.Code != code {
		return domain.ErrCouponNotFound()
	}
	f.redeemed = append(f.redeemed, code)
	delete(f.active, userID)
	return nil
}

type fakeCartClearer struct {
	mu      sync.Mutex
	cleared []string
	err     error
}

func (f *fakeCartClearer) Clear(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.cleared = append(f.cleared, userID)
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	bodies [][]byte
	err    error
}

func (f *fakePublisher) PublishOrderCreated(ctx context.Context, body []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.bodies = append(f.bodies, body)
	return nil
}

type testEnv struct {
	svc      *Service
	provider *fakeProvider
	orders   *fakeOrders
	coupons  *fakeCoupons
	cart     *fakeCartClearer
	pub      *fakePublisher
}

func newEnv() *testEnv {
	provider := newFakeProvider()
	products := &fakeProducts{byID: map[string]domain.Product{
		"p1": {ID: "p1", Name: "Boots", PriceCents: 5000},
		"p2": {ID: "p2", Name: "Jacket", PriceCents: 15000},
	}}
	orders := newFakeOrders()
	coupons := newFakeCoupons()
	cart := &fakeCartClearer{}
	pub := &fakePublisher{}

	svc := NewService(provider, products, orders, coupons, cart, pub,
		"https://shop.example.com/success", "https://shop.example.com/cancel")

	return &testEnv{svc: svc, provider: provider, orders: orders, coupons: coupons, cart: cart, pub: pub}
}

func userWithCart(items ...domain.CartItem) domain.User {
	return domain.User{ID: "u1", Email: "a@b.com", CartItems: items}
}

func TestCreateSession_EmptyCart_Invalid(t *testing.T) {
	t.Parallel()

	env := newEnv()

	_, err := env.svc.CreateSession(context.Background(), CreateSessionInput{User: userWithCart()})
	if !domain.Is(err, "invalid_field") {
		t.Fatalf("expected invalid_field, got %v", err)
	}
}

func TestCreateSession_BuildsLineItemsAndMetadata(t *testing.T) {
	t.Parallel()

	env := newEnv()
	user := userWithCart(
		domain.CartItem{ProductID: "p1", Quantity: 2},
		domain.CartItem{ProductID: "p2", Quantity: 1},
	)

	res, err := env.svc.CreateSession(context.Background(), CreateSessionInput{User: user})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if res.SessionID != "sess_1" || res.URL == "" {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.AmountTotalCents != 2*5000+15000 {
		t.Fatalf("expected total 25000, got %d", res.AmountTotalCents)
	}

	params := env.provider.created[0]
	if len(params.Items) != 2 {
		t.Fatalf("expected 2 line items, got %+v", params.Items)
	}
	if params.Metadata["userId"] != "u1" {
		t.Fatalf("expected userId metadata, got %+v", params.Metadata)
	}

	var snapshot []metadataItem
	if err := json.Unmarshal([]byte(params.Metadata["products"]), &snapshot); err != nil {
		t.Fatalf("products metadata not JSON: %v", err)
	}
	if len(snapshot) != 2 || snapshot[0].ID != "p1" || snapshot[0].Price != 5000 {
		t.Fatalf("unexpected snapshot %+v", snapshot)
	}
}

func TestCreateSession_WithCoupon_AppliesDiscount(t *testing.T) {
	t.Parallel()

	env := newEnv()
	env.coupons.active["u1"] = domain.Coupon{Code: "TEN", UserID: "u1", DiscountPercentage: 10, IsActive: true}
	user := userWithCart(domain.CartItem{ProductID: "p1", Quantity: 2}) // 10000

	res, err := env.svc.CreateSession(context.Background(), CreateSessionInput{User: user, CouponCode: "TEN"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if res.AmountTotalCents != 9000 {
		t.Fatalf("expected 9000 after 10%%, got %d", res.AmountTotalCents)
	}
	if env.provider.created[0].DiscountPercentage != 10 {
		t.Fatalf("expected discount forwarded to provider")
	}
}

func TestCreateSession_BadCoupon_Fails(t *testing.T) {
	t.Parallel()

	env := newEnv()
	user := userWithCart(domain.CartItem{ProductID: "p1", Quantity: 1})

	_, err := env.svc.CreateSession(context.Background(), CreateSessionInput{User: user, CouponCode: "NOPE"})
	if !domain.Is(err, "coupon_not_found") {
		t.Fatalf("expected coupon_not_found, got %v", err)
	}
	if len(env.provider.created) != 0 {
		t.Fatalf("expected no session created")
	}
}

func TestCreateSession_LargeCart_IssuesGiftCoupon(t *testing.T) {
	t.Parallel()

	env := newEnv()
	// 2 jackets = 30000 cents, over the gift threshold.
	user := userWithCart(domain.CartItem{ProductID: "p2", Quantity: 2})

	if _, err := env.svc.CreateSession(context.Background(), CreateSessionInput{User: user}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(env.coupons.issued) != 1 || env.coupons.issued[0] != "u1" {
		t.Fatalf("expected gift coupon issued, got %+v", env.coupons.issued)
	}
}

func TestCreateSession_SmallCart_NoGiftCoupon(t *testing.T) {
	t.Parallel()

	env := newEnv()
	user := userWithCart(domain.CartItem{ProductID: "p1", Quantity: 1})

	if _, err := env.svc.CreateSession(context.Background(), CreateSessionInput{User: user}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(env.coupons.issued) != 0 {
		t.Fatalf("expected no gift coupon, got %+v", env.coupons.issued)
	}
}

func TestCreateSession_GiftIssueFailure_DoesNotFailCheckout(t *testing.T) {
	t.Parallel()

	env := newEnv()
	env.coupons.issueErr = errors.New("db down")
	user := userWithCart(domain.CartItem{ProductID: "p2", Quantity: 2})

	if _, err := env.svc.CreateSession(context.Background(), CreateSessionInput{User: user}); err != nil {
		t.Fatalf("expected checkout to survive gift failure, got %v", err)
	}
}

func TestConfirmSuccess_UnpaidSession_Rejected(t *testing.T) {
	t.Parallel()

	env := newEnv()
	user := userWithCart(domain.CartItem{ProductID: "p1", Quantity: 1})
	res, err := env.svc.CreateSession(context.Background(), CreateSessionInput{User: user})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = env.svc.ConfirmSuccess(context.Background(), res.SessionID)
	if !domain.Is(err, "payment_not_completed") {
		t.Fatalf("expected payment_not_completed, got %v", err)
	}
	if env.orders.n != 0 {
		t.Fatalf("expected no order created")
	}
}

func TestConfirmSuccess_CreatesOrderClearsCartPublishes(t *testing.T) {
	t.Parallel()

	env := newEnv()
	env.coupons.active["u1"] = domain.Coupon{Code: "TEN", UserID: "u1", DiscountPercentage: 10, IsActive: true}
	user := userWithCart(
		domain.CartItem{ProductID: "p1", Quantity: 2},
		domain.CartItem{ProductID: "p2", Quantity: 1},
	)
	res, err := env.svc.CreateSession(context.Background(), CreateSessionInput{User: user, CouponCode: "TEN"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	env.provider.markPaid(res.SessionID)

	order, err := env.svc.ConfirmSuccess(context.Background(), res.SessionID)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if order.UserID != "u1" || len(order.Items) != 2 {
		t.Fatalf("unexpected order %+v", order)
	}
	if order.PaymentSessionID != res.SessionID {
		t.Fatalf("expected session id on order")
	}
	if len(env.coupons.redeemed) != 1 || env.coupons.redeemed[0] != "TEN" {
		t.Fatalf("expected coupon redeemed, got %+v", env.coupons.redeemed)
	}
	if len(env.cart.cleared) != 1 || env.cart.cleared[0] != "u1" {
		t.Fatalf("expected cart cleared, got %+v", env.cart.cleared)
	}
	if len(env.pub.bodies) != 1 {
		t.Fatalf("expected order.created published")
	}

	var envlp map[string]any
	if err := json.Unmarshal(env.pub.bodies[0], &envlp); err != nil {
		t.Fatalf("published body not JSON: %v", err)
	}
	if envlp["orderId"] != order.ID {
		t.Fatalf("expected orderId in event, got %+v", envlp)
	}
}

func TestConfirmSuccess_AssignsOrderID(t *testing.T) {
	t.Parallel()

	env := newEnv()
	user := userWithCart(domain.CartItem{ProductID: "p1", Quantity: 1})
	res, err := env.svc.CreateSession(context.Background(), CreateSessionInput{User: user})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	env.provider.markPaid(res.SessionID)

	first, err := env.svc.ConfirmSuccess(context.Background(), res.SessionID)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if first.ID == "" {
		t.Fatalf("expected order id to be assigned")
	}
	// The id must already be on the order when it reaches the repo,
	// orders.id has no database default.
	if got := env.orders.received[0]; got.ID != first.ID {
		t.Fatalf("repo received id %q, want %q", got.ID, first.ID)
	}

	env.provider.sessions["sess_2"] = Session{
		ID:               "sess_2",
		Paid:             true,
		AmountTotalCents: 5000,
		Metadata: map[string]string{
			"userId":   "u1",
			"products": `[{"id":"p1","quantity":1,"price":5000}]`,
		},
	}
	second, err := env.svc.ConfirmSuccess(context.Background(), "sess_2")
	if err != nil {
		t.Fatalf("confirm sess_2: %v", err)
	}
	if second.ID == "" || second.ID == first.ID {
		t.Fatalf("expected a fresh id per session, got %q and %q", first.ID, second.ID)
	}
}

func TestConfirmSuccess_Replay_Idempotent(t *testing.T) {
	t.Parallel()

	env := newEnv()
	user := userWithCart(domain.CartItem{ProductID: "p1", Quantity: 1})
	res, err := env.svc.CreateSession(context.Background(), CreateSessionInput{User: user})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	env.provider.markPaid(res.SessionID)

	first, err := env.svc.ConfirmSuccess(context.Background(), res.SessionID)
	if err != nil {
		t.Fatalf("first confirm: %v", err)
	}
	second, err := env.svc.ConfirmSuccess(context.Background(), res.SessionID)
	if err != nil {
		t.Fatalf("second confirm: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected same order on replay, got %q vs %q", first.ID, second.ID)
	}
	if env.orders.n != 1 {
		t.Fatalf("expected exactly one order row, got %d", env.orders.n)
	}
}

func TestConfirmSuccess_PublisherDown_OrderStillCreated(t *testing.T) {
	t.Parallel()

	env := newEnv()
	env.pub.err = errors.New("broker down")
	user := userWithCart(domain.CartItem{ProductID: "p1", Quantity: 1})
	res, err := env.svc.CreateSession(context.Background(), CreateSessionInput{User: user})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	env.provider.markPaid(res.SessionID)

	order, err := env.svc.ConfirmSuccess(context.Background(), res.SessionID)
	if err != nil {
		t.Fatalf("expected order despite broker failure, got %v", err)
	}
	if order.ID == "" {
		t.Fatalf("expected order id")
	}
}
