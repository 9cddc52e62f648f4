package ports

import (
	"context"

	"github.com/tailorhub/marketplace/internal/core/domain"
)

// CreateServiceInput carries all data needed to publish a service listing.
type CreateServiceInput struct {
	Title       string
	Skills      []string
	Price       float64
	Delivery    string
	Description string
	ImageURL    string
	TailorID    string
}

// CatalogService defines use-case operations for tailor service listings.
type CatalogService interface {
	CreateService(ctx context.Context, input CreateServiceInput) (*domain.Service, error)
	ListServices(ctx context.Context) ([]domain.Service, error)
}
