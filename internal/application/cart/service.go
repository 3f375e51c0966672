package cart

import (
	"context"

	"github.com/shopstream/storefront/internal/domain"
)

type CartRepo interface {
	Items(ctx context.Context, userID string) ([]domain.CartItem, error)
	AddItem(ctx context.Context, userID, productID string) error
	RemoveItem(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
	SetQuantity(ctx context.Context, userID, productID string, quantity int) error
}

type ProductReader interface {
	GetByID(ctx context.Context, id string) (domain.Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
}

type Service struct {
	carts    CartRepo
	products ProductReader
}

func New(carts CartRepo, products ProductReader) *Service {
	return &Service{carts: carts, products: products}
}

// Products joins the user's cart lines with their product records, keeping
// cart order and attaching quantities.
func (s *Service) Products(ctx context.Context, userID string) ([]domain.CartProduct, error) {
	items, err := s.carts.Items(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []domain.CartProduct{}, nil
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	out := make([]domain.CartProduct, 0, len(items))
	for _, item := range items {
		p, ok := byID[item.ProductID]
		if !ok {
			// product was deleted since it was carted; drop the line
			continue
		}
		out = append(out, domain.CartProduct{Product: p, Quantity: item.Quantity})
	}
	return out, nil
}

// Add inserts the product into the cart or increments its quantity.
func (s *Service) Add(ctx context.Context, userID, productID string) ([]domain.CartItem, error) {
	if productID == "" {
		return nil, domain.ErrMissingField("productId")
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	if err := s.carts.AddItem(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.carts.Items(ctx, userID)
}

// Remove deletes one line, or the whole cart when productID is empty.
func (s *Service) Remove(ctx context.Context, userID, productID string) ([]domain.CartItem, error) {
	if productID == "" {
		if err := s.carts.Clear(ctx, userID); err != nil {
			return nil, err
		}
	} else if err := s.carts.RemoveItem(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.carts.Items(ctx, userID)
}

// UpdateQuantity sets a line's quantity; zero removes the line.
func (s *Service) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) ([]domain.CartItem, error) {
	if productID == "" {
		return nil, domain.ErrMissingField("productId")
	}
	if quantity < 0 {
		return nil, domain.ErrInvalidField("quantity", "must be >= 0")
	}

	if quantity == 0 {
		items, err := s.carts.Items(ctx, userID)
		if err != nil {
			return nil, err
		}
		found := false
		for _, item := range items {
			if item.ProductID == productID {
				found = true
				break
			}
		}
		if !found {
			return nil, domain.ErrCartItemNotFound()
		}
		if err := s.carts.RemoveItem(ctx, userID, productID); err != nil {
			return nil, err
		}
	} else if err := s.carts.SetQuantity(ctx, userID, productID, quantity); err != nil {
		return nil, err
	}
	return s.carts.Items(ctx, userID)
}
