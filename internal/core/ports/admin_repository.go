package ports

import (
	"context"

	"github.com/tailorhub/marketplace/internal/core/domain"
)

// CommissionRepository persists the singleton commission configuration.
type CommissionRepository interface {
	Get(ctx context.Context) (*domain.CommissionConfig, error)
	Set(ctx context.Context, cfg *domain.CommissionConfig) error
}

// CardRepository persists admin payment cards. At most one card is active;
// Create and Update make their card the active one, and Update fills in the
// stored CreatedAt on the passed card.
type CardRepository interface {
	Create(ctx context.Context, card *domain.PaymentCard) error
	Update(ctx context.Context, id string, card *domain.PaymentCard) error
	Delete(ctx context.Context, id string) error
	FindActive(ctx context.Context) (*domain.PaymentCard, error)
	List(ctx context.Context) ([]domain.PaymentCard, error)
}
