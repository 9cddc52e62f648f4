package ports

import (
	"context"

	"github.com/tailorhub/marketplace/internal/core/domain"
)

// UserRepository defines user account persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	MarkVerified(ctx context.Context, email string) error
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

// ProfileUpdate carries the mutable profile fields. Nil pointers leave the
// stored value untouched.
type ProfileUpdate struct {
	Name      *string
	Bio       *string
	AvatarURL *string
}
