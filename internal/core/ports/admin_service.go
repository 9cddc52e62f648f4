package ports

import (
	"context"

	"github.com/tailorhub/marketplace/internal/core/domain"
)

// CardInput carries the fields of a payment card create/update.
type CardInput struct {
	CardNumber string
	CardHolder string
	Expiry     string
	CVC        string
	ImageURL   string
}

// AdminService defines the moderation and settings operations available to
// admin sessions only.
type AdminService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)

	CommissionSettings(ctx context.Context) (*domain.CommissionConfig, error)
	UpdateCommissionRate(ctx context.Context, rate float64, adminID string) (*domain.CommissionConfig, error)
	CommissionStats(ctx context.Context) (*domain.CommissionStats, error)

	CreateCard(ctx context.Context, input CardInput) (*domain.PaymentCard, error)
	UpdateCard(ctx context.Context, id string, input CardInput) (*domain.PaymentCard, error)
	DeleteCard(ctx context.Context, id string) error
	ListCards(ctx context.Context) ([]domain.PaymentCard, error)
	// ActiveCard returns the publicly visible card, already masked.
	ActiveCard(ctx context.Context) (*domain.PaymentCard, error)
}
