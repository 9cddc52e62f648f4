package ports

import (
	"context"

	"github.com/tailorhub/marketplace/internal/core/domain"
)

// ServiceRepository defines persistence for tailor service listings.
type ServiceRepository interface {
	Create(ctx context.Context, svc *domain.Service) error
	FindByID(ctx context.Context, id string) (*domain.Service, error)
	// List returns services newest first.
	List(ctx context.Context) ([]domain.Service, error)
}
