package domain

import (
	"errors"
	"time"
)

// OrderStatus is the lifecycle state of a service purchase.
type OrderStatus string

const (
	OrderPlaced    OrderStatus = "PLACED"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
)

var ErrOrderNotFound = errors.New("order not found")

// Order records a client purchasing a tailor's service. Amount and
// commission are snapshotted at checkout time so later rate changes do not
// rewrite history.
type Order struct {
	ID         string      `json:"id" bson:"_id,omitempty"`
	ServiceID  string      `json:"serviceId" bson:"service_id"`
	ClientID   string      `json:"clientId" bson:"client_id"`
	TailorID   string      `json:"tailorId" bson:"tailor_id"`
	Amount     float64     `json:"amount" bson:"amount"`
	Commission float64     `json:"commission" bson:"commission"`
	Status     OrderStatus `json:"status" bson:"status"`
	CreatedAt  time.Time   `json:"createdAt" bson:"created_at"`
}
