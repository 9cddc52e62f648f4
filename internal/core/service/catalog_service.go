package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tailorhub/marketplace/internal/core/domain"
	"github.com/tailorhub/marketplace/internal/core/ports"
)

// CatalogService implements tailor service listings.
type CatalogService struct {
	repo ports.ServiceRepository
	log  zerolog.Logger
}

func NewCatalogService(repo ports.ServiceRepository, log zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, log: log}
}

// CreateService publishes a new service listing. Listings are read-only
// after creation.
func (s *CatalogService) CreateService(ctx context.Context, input ports.CreateServiceInput) (*domain.Service, error) {
	if input.Price <= 0 {
		return nil, domain.ErrInvalidPrice
	}
	if !domain.ValidDelivery(input.Delivery) {
		return nil, domain.ErrInvalidDelivery
	}

	svc := &domain.Service{
		Title:       input.Title,
		Skills:      input.Skills,
		Price:       input.Price,
		Delivery:    input.Delivery,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		TailorID:    input.TailorID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, svc); err != nil {
		s.log.Error().Err(err).Msg("failed to create service listing")
		return nil, err
	}

	s.log.Info().Str("service_id", svc.ID).Str("tailor_id", input.TailorID).Msg("service listed")
	return svc, nil
}

func (s *CatalogService) ListServices(ctx context.Context) ([]domain.Service, error) {
	return s.repo.List(ctx)
}
