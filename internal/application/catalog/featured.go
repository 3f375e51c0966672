package catalog

import (
	"context"

	"github.com/shopstream/storefront/internal/domain"
	"github.com/shopstream/storefront/internal/logger"
)

// Featured is cache-aside: serve the cached list when present, otherwise
// read the database and repopulate. The cache carries the landing-page
// query so the database is not hit on every storefront visit.
func (s *Service) Featured(ctx context.Context) ([]domain.Product, error) {
	if s.cache != nil {
		cached, found, err := s.cache.GetFeatured(ctx)
		if err != nil {
			logger.WithCtx(ctx).Warn().Err(err).Msg("featured cache get failed")
		} else if found {
			return cached, nil
		}
	}

	featured, err := s.repo.ListFeatured(ctx)
	if err != nil {
		return nil, err
	}
	if len(featured) == 0 {
		return nil, domain.ErrProductNotFound()
	}

	if s.cache != nil {
		if err := s.cache.SetFeatured(ctx, featured); err != nil {
			logger.WithCtx(ctx).Warn().Err(err).Msg("featured cache set failed")
		}
	}
	return featured, nil
}

// ToggleFeatured flips the flag and rebuilds the cache so the storefront
// sees the change without waiting for the TTL.
func (s *Service) ToggleFeatured(ctx context.Context, id string) (domain.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	updated, err := s.repo.SetFeatured(ctx, id, !p.IsFeatured)
	if err != nil {
		return domain.Product{}, err
	}

	s.rebuildFeaturedCache(ctx)
	return updated, nil
}
