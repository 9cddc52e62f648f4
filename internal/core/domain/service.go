package domain

import (
	"errors"
	"time"
)

// Delivery labels a tailor can promise on a service. Fixed set; the UI
// renders them as-is.
const (
	DeliveryExpress  = "1-2 days"
	DeliveryFast     = "3-5 days"
	DeliveryStandard = "1 week"
	DeliveryRelaxed  = "2 weeks"
)

var ErrServiceNotFound = errors.New("service not found")
var ErrInvalidPrice = errors.New("price must be greater than zero")
var ErrInvalidDelivery = errors.New("unknown delivery option")

// ValidDelivery reports whether label is one of the fixed delivery options.
func ValidDelivery(label string) bool {
	switch label {
	case DeliveryExpress, DeliveryFast, DeliveryStandard, DeliveryRelaxed:
		return true
	}
	return false
}

// Service is an offering created by a tailor: a set of skills at a fixed
// price with a promised turnaround. Read-only after creation.
type Service struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Title       string    `json:"title" bson:"title"`
	Skills      []string  `json:"skills" bson:"skills"`
	Price       float64   `json:"price" bson:"price"`
	Delivery    string    `json:"delivery" bson:"delivery"`
	Description string    `json:"description" bson:"description"`
	ImageURL    string    `json:"imageUrl,omitempty" bson:"image_url,omitempty"`
	TailorID    string    `json:"tailorId" bson:"tailor_id"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
}
