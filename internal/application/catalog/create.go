package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/shopstream/storefront/internal/domain"
	"github.com/shopstream/storefront/internal/logger"
)

type CreateInput struct {
	Name        string
	Description string
	PriceCents  int64
	Category    string
	// ImageData is an optional base64 data URL from the admin UI.
	ImageData string
}

func (in *CreateInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)

	if in.Name == "" {
		return domain.ErrMissingField("name")
	}
	if in.PriceCents < 0 {
		return domain.ErrInvalidField("price", "must be >= 0")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Product, error) {
	if err := in.validate(); err != nil {
		return domain.Product{}, err
	}

	imageURL := ""
	if in.ImageData != "" && s.images != nil {
		url, err := s.images.Upload(ctx, in.ImageData)
		if err != nil {
			return domain.Product{}, err
		}
		imageURL = url
	}

	p := domain.Product{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		PriceCents:  in.PriceCents,
		ImageURL:    imageURL,
		Category:    in.Category,
	}

	return s.repo.Create(ctx, p)
}

// Delete removes the product and, best-effort, its stored image. A stale
// object in the bucket is preferable to a product row that cannot be deleted.
func (s *Service) Delete(ctx context.Context, id string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if p.ImageURL != "" && s.images != nil {
		if err := s.images.Delete(ctx, p.ImageURL); err != nil {
			logger.WithCtx(ctx).Warn().Err(err).
				Str("product_id", id).
				Msg("product image delete failed")
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if p.IsFeatured {
		s.rebuildFeaturedCache(ctx)
	}
	return nil
}
