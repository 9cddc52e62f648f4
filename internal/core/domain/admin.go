package domain

import (
	"errors"
	"strings"
	"time"
)

// Commission rate bounds, in percent.
const (
	MinCommissionRate = 0
	MaxCommissionRate = 30
)

var ErrInvalidRate = errors.New("commission rate out of range")
var ErrCardNotFound = errors.New("payment card not found")

// CommissionConfig is the singleton platform commission setting.
type CommissionConfig struct {
	Rate      float64   `json:"rate" bson:"rate"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
	UpdatedBy string    `json:"-" bson:"updated_by,omitempty"`
}

// ValidRate reports whether rate is inside the allowed commission band.
func ValidRate(rate float64) bool {
	return rate >= MinCommissionRate && rate <= MaxCommissionRate
}

// CommissionStats aggregates order volume for the admin dashboard.
type CommissionStats struct {
	OrderCount      int64   `json:"orderCount"`
	TotalVolume     float64 `json:"totalVolume"`
	TotalCommission float64 `json:"totalCommission"`
	CurrentRate     float64 `json:"currentRate"`
}

// PaymentCard is the platform payout card managed by an admin. The full
// number is stored server-side only; public reads get a masked copy.
type PaymentCard struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	CardNumber string    `json:"cardNumber" bson:"card_number"`
	CardHolder string    `json:"cardHolder" bson:"card_holder"`
	Expiry     string    `json:"expiry" bson:"expiry"`
	CVC        string    `json:"-" bson:"cvc"`
	ImageURL   string    `json:"imageUrl,omitempty" bson:"image_url,omitempty"`
	Active     bool      `json:"active" bson:"active"`
	CreatedAt  time.Time `json:"createdAt" bson:"created_at"`
}

// Masked returns a copy safe for public display: only the last four digits
// of the number survive, and the CVC is never serialized anyway.
func (c PaymentCard) Masked() PaymentCard {
	digits := strings.ReplaceAll(c.CardNumber, " ", "")
	if len(digits) > 4 {
		c.CardNumber = "**** **** **** " + digits[len(digits)-4:]
	}
	return c
}
