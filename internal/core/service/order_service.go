package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/tailorhub/marketplace/internal/core/domain"
	"github.com/tailorhub/marketplace/internal/core/ports"
)

// OrderService implements checkout.
type OrderService struct {
	orders   ports.OrderRepository
	services ports.ServiceRepository
	admin    ports.AdminService
	log      zerolog.Logger
}

func NewOrderService(
	orders ports.OrderRepository,
	services ports.ServiceRepository,
	admin ports.AdminService,
	log zerolog.Logger,
) *OrderService {
	return &OrderService{orders: orders, services: services, admin: admin, log: log}
}

// PlaceOrder purchases a service. The service price and the commission
// computed from the current rate are snapshotted onto the order.
func (s *OrderService) PlaceOrder(ctx context.Context, serviceID, clientID string) (*domain.Order, error) {
	svc, err := s.services.FindByID(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}

	cfg, err := s.admin.CommissionSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}

	order := &domain.Order{
		ServiceID:  svc.ID,
		ClientID:   clientID,
		TailorID:   svc.TailorID,
		Amount:     svc.Price,
		Commission: roundCents(svc.Price * cfg.Rate / 100),
		Status:     domain.OrderPlaced,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.log.Error().Err(err).Str("service_id", serviceID).Msg("failed to place order")
		return nil, err
	}

	s.log.Info().
		Str("order_id", order.ID).
		Str("client_id", clientID).
		Float64("amount", order.Amount).
		Msg("order placed")

	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, clientID string) ([]domain.Order, error) {
	return s.orders.ListByClient(ctx, clientID)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
