package catalog

import (
	"context"

	"github.com/shopstream/storefront/internal/domain"
	"github.com/shopstream/storefront/internal/logger"
)

type Service struct {
	repo   ProductRepo
	cache  Cache
	images ImageStore
}

func New(repo ProductRepo, cache Cache, images ImageStore) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		images: images,
	}
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) Recommended(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListRandom(ctx, 3)
}

func (s *Service) ByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	if category == "" {
		return nil, domain.ErrMissingField("category")
	}
	products, err := s.repo.ListByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, domain.ErrProductNotFound()
	}
	return products, nil
}

// rebuildFeaturedCache refreshes the cache from the database. Cache failures
// never fail the caller; the next read repopulates.
func (s *Service) rebuildFeaturedCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	featured, err := s.repo.ListFeatured(ctx)
	if err != nil {
		logger.WithCtx(ctx).Warn().Err(err).Msg("featured cache rebuild: db read failed")
		return
	}
	if err := s.cache.SetFeatured(ctx, featured); err != nil {
		logger.WithCtx(ctx).Warn().Err(err).Msg("featured cache rebuild: cache write failed")
	}
}
