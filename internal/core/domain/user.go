package domain

import (
	"errors"
	"time"
)

const (
	RoleClient = "CLIENT"
	RoleTailor = "TAILOR"
	RoleAdmin  = "ADMIN"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrEmailNotVerified = errors.New("email not verified")
var ErrInvalidCode = errors.New("invalid verification code")
var ErrTooManyRequests = errors.New("too many requests")
var ErrForbidden = errors.New("access forbidden")

// User models an account in the marketplace: a client posting jobs, a tailor
// offering services, or an admin moderating both.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Verified     bool      `json:"verified"`
	AvatarURL    string    `json:"avatarUrl,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ValidRole reports whether role is one a user may sign up with.
// Admin accounts are provisioned out of band, never via signup.
func ValidRole(role string) bool {
	return role == RoleClient || role == RoleTailor
}
