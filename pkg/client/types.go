package client

import (
	"fmt"
	"time"
)

// User mirrors the server's user resource.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Verified  bool      `json:"verified"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Job is a tailoring request posted by a client.
type Job struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"clientId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Budget      float64   `json:"budget"`
	Images      []string  `json:"images,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Service is a catalog offering published by a tailor.
type Service struct {
	ID          string    `json:"id"`
	TailorID    string    `json:"tailorId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Delivery    string    `json:"delivery"`
	Skills      []string  `json:"skills,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Order is a placed purchase with its price and commission snapshot.
type Order struct {
	ID         string    `json:"id"`
	ServiceID  string    `json:"serviceId"`
	ClientID   string    `json:"clientId"`
	TailorID   string    `json:"tailorId"`
	Amount     float64   `json:"amount"`
	Commission float64   `json:"commission"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Post is a community feed entry.
type Post struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	Likes      int64     `json:"likes"`
	CreatedAt  time.Time `json:"createdAt"`
}

// PaymentCard is a payout card as returned by the server. The number is
// masked on public reads.
type PaymentCard struct {
	ID         string    `json:"id"`
	CardNumber string    `json:"cardNumber"`
	CardHolder string    `json:"cardHolder"`
	Expiry     string    `json:"expiry"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CommissionConfig is the platform commission rate.
type CommissionConfig struct {
	Rate      float64   `json:"rate"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CommissionStats aggregates order volume and commission earnings.
type CommissionStats struct {
	OrderCount      int64   `json:"orderCount"`
	TotalVolume     float64 `json:"totalVolume"`
	TotalCommission float64 `json:"totalCommission"`
	CurrentRate     float64 `json:"currentRate"`
}

// LikeResult is the outcome of a like toggle.
type LikeResult struct {
	Liked bool  `json:"liked"`
	Likes int64 `json:"likes"`
}

// FollowResult is the outcome of a follow toggle.
type FollowResult struct {
	Following bool `json:"following"`
}

// APIError is returned for every non-2xx response. Message carries the
// server's error envelope when one was present.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// UnverifiedError is returned by Login when the account exists but the email
// has not been verified yet. It carries the email so the caller can route
// straight to the verification step.
type UnverifiedError struct {
	Email string
}

func (e *UnverifiedError) Error() string {
	return "email not verified: " + e.Email
}
