package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tailorhub/marketplace/internal/core/domain"
	"github.com/tailorhub/marketplace/internal/core/ports"
)

// defaultCommissionRate applies until an admin configures one.
const defaultCommissionRate = 10

// AdminService implements user listing, commission settings and payment
// card management.
type AdminService struct {
	users      ports.UserRepository
	commission ports.CommissionRepository
	cards      ports.CardRepository
	orders     ports.OrderRepository
	log        zerolog.Logger
}

func NewAdminService(
	users ports.UserRepository,
	commission ports.CommissionRepository,
	cards ports.CardRepository,
	orders ports.OrderRepository,
	log zerolog.Logger,
) *AdminService {
	return &AdminService{
		users:      users,
		commission: commission,
		cards:      cards,
		orders:     orders,
		log:        log,
	}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// CommissionSettings returns the configured rate, falling back to the
// default when nothing has been stored yet.
func (s *AdminService) CommissionSettings(ctx context.Context) (*domain.CommissionConfig, error) {
	cfg, err := s.commission.Get(ctx)
	if err != nil {
		return &domain.CommissionConfig{Rate: defaultCommissionRate}, nil
	}
	return cfg, nil
}

func (s *AdminService) UpdateCommissionRate(ctx context.Context, rate float64, adminID string) (*domain.CommissionConfig, error) {
	if !domain.ValidRate(rate) {
		return nil, domain.ErrInvalidRate
	}

	cfg := &domain.CommissionConfig{
		Rate:      rate,
		UpdatedAt: time.Now().UTC(),
		UpdatedBy: adminID,
	}
	if err := s.commission.Set(ctx, cfg); err != nil {
		return nil, err
	}

	s.log.Info().Float64("rate", rate).Str("admin", adminID).Msg("commission rate updated")
	return cfg, nil
}

func (s *AdminService) CommissionStats(ctx context.Context) (*domain.CommissionStats, error) {
	stats, err := s.orders.Stats(ctx)
	if err != nil {
		return nil, err
	}
	cfg, err := s.CommissionSettings(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.CommissionStats{
		OrderCount:      stats.Count,
		TotalVolume:     stats.TotalVolume,
		TotalCommission: stats.TotalCommission,
		CurrentRate:     cfg.Rate,
	}, nil
}

// CreateCard stores a new payout card. The newest card becomes the active one.
func (s *AdminService) CreateCard(ctx context.Context, input ports.CardInput) (*domain.PaymentCard, error) {
	card := &domain.PaymentCard{
		CardNumber: input.CardNumber,
		CardHolder: input.CardHolder,
		Expiry:     input.Expiry,
		CVC:        input.CVC,
		ImageURL:   input.ImageURL,
		Active:     true,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.cards.Create(ctx, card); err != nil {
		return nil, err
	}
	s.log.Info().Str("card_id", card.ID).Msg("payment card created")
	return card, nil
}

func (s *AdminService) UpdateCard(ctx context.Context, id string, input ports.CardInput) (*domain.PaymentCard, error) {
	card := &domain.PaymentCard{
		ID:         id,
		CardNumber: input.CardNumber,
		CardHolder: input.CardHolder,
		Expiry:     input.Expiry,
		CVC:        input.CVC,
		ImageURL:   input.ImageURL,
		Active:     true,
	}
	if err := s.cards.Update(ctx, id, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *AdminService) DeleteCard(ctx context.Context, id string) error {
	return s.cards.Delete(ctx, id)
}

func (s *AdminService) ListCards(ctx context.Context) ([]domain.PaymentCard, error) {
	return s.cards.List(ctx)
}

// ActiveCard is the public-readable payout card, masked to its last four
// digits before it leaves the service.
func (s *AdminService) ActiveCard(ctx context.Context) (*domain.PaymentCard, error) {
	card, err := s.cards.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	masked := card.Masked()
	return &masked, nil
}
