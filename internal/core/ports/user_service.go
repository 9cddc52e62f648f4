package ports

import (
	"context"

	"github.com/tailorhub/marketplace/internal/core/domain"
)

// UserService exposes profile reads and updates for the authenticated user.
type UserService interface {
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*domain.User, error)
}
