package redis

import (
	"context"
	"time"

	"github.com/shopstream/storefront/internal/domain"
)

const featuredProductsKey = "featured_products"

// ProductCache implements catalog.Cache. Only the featured list is cached:
// it is the storefront landing query and changes rarely.
type ProductCache struct {
	c   *Client
	ttl time.Duration
}

func NewProductCache(c *Client, ttl time.Duration) *ProductCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ProductCache{c: c, ttl: ttl}
}

func (p *ProductCache) GetFeatured(ctx context.Context) ([]domain.Product, bool, error) {
	if p.c == nil {
		return nil, false, nil
	}
	var products []domain.Product
	found, err := p.c.GetJSON(ctx, featuredProductsKey, &products)
	if err != nil {
		return nil, false, err
	}
	return products, found, nil
}

func (p *ProductCache) SetFeatured(ctx context.Context, products []domain.Product) error {
	if p.c == nil {
		return nil
	}
	return p.c.SetJSON(ctx, featuredProductsKey, products, p.ttl)
}

func (p *ProductCache) InvalidateFeatured(ctx context.Context) error {
	if p.c == nil {
		return nil
	}
	return p.c.Delete(ctx, featuredProductsKey)
}
