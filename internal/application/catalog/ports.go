package catalog

import (
	"context"

	"github.com/shopstream/storefront/internal/domain"
)

type ProductRepo interface {
	Create(ctx context.Context, p domain.Product) (domain.Product, error)
	GetByID(ctx context.Context, id string) (domain.Product, error)
	ListAll(ctx context.Context) ([]domain.Product, error)
	ListFeatured(ctx context.Context) ([]domain.Product, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Product, error)
	ListRandom(ctx context.Context, n int) ([]domain.Product, error)
	SetFeatured(ctx context.Context, id string, featured bool) (domain.Product, error)
	Delete(ctx context.Context, id string) error
}

/*
Cache
-----
Featured-products cache. All methods are safe to call with a down cache;
the service treats cache errors as misses and logs them.
*/
type Cache interface {
	GetFeatured(ctx context.Context) ([]domain.Product, bool, error)
	SetFeatured(ctx context.Context, products []domain.Product) error
	InvalidateFeatured(ctx context.Context) error
}

/*
ImageStore
----------
Product image storage. Upload accepts a base64 data URL from the admin UI
and returns the public URL persisted on the product.
*/
type ImageStore interface {
	Upload(ctx context.Context, dataURL string) (string, error)
	Delete(ctx context.Context, imageURL string) error
}
