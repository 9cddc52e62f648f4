package ports

import (
	"context"

	"github.com/tailorhub/marketplace/internal/core/domain"
)

// AuthService defines signup, login and the email verification flow.
type AuthService interface {
	Signup(ctx context.Context, name, email, password, role string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	VerifyEmail(ctx context.Context, email, code string) (string, *domain.User, error)
	ResendCode(ctx context.Context, email string) error
}

// CodeStore abstracts the verification code store (Redis).
type CodeStore interface {
	Put(ctx context.Context, email, code string) error
	Get(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
}

// RateLimiter abstracts the resend throttle (Redis).
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// CodeSender delivers a verification code to the user, typically by email.
type CodeSender interface {
	SendVerificationCode(ctx context.Context, email, code string) error
}
