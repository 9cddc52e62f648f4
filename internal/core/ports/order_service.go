package ports

import (
	"context"

	"github.com/tailorhub/marketplace/internal/core/domain"
)

// OrderService defines checkout operations.
type OrderService interface {
	// PlaceOrder purchases a service, snapshotting its price and the current
	// commission rate.
	PlaceOrder(ctx context.Context, serviceID, clientID string) (*domain.Order, error)
	ListOrders(ctx context.Context, clientID string) ([]domain.Order, error)
}
