package ports

import (
	"context"

	"github.com/tailorhub/marketplace/internal/core/domain"
)

// OrderStats is the aggregate the repository computes over all orders.
type OrderStats struct {
	Count           int64
	TotalVolume     float64
	TotalCommission float64
}

// OrderRepository defines order persistence.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	ListByClient(ctx context.Context, clientID string) ([]domain.Order, error)
	Stats(ctx context.Context) (*OrderStats, error)
}
