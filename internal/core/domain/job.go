package domain

import (
	"errors"
	"time"
)

// JobStatus represents the moderation state of a posted job.
type JobStatus string

const (
	JobPending  JobStatus = "PENDING"
	JobApproved JobStatus = "APPROVED"
	JobRejected JobStatus = "REJECTED"
)

// MaxJobImages caps the reference images a client may attach to a job.
const MaxJobImages = 5

// MaxImageBytes caps a single uploaded image file.
const MaxImageBytes = 5 << 20

// validTransitions defines the allowed moderation transitions. A job is
// moderated exactly once; approved and rejected are terminal.
var validTransitions = map[JobStatus][]JobStatus{
	JobPending: {JobApproved, JobRejected},
}

var ErrJobNotFound = errors.New("job not found")
var ErrInvalidTransition = errors.New("invalid status transition")
var ErrInvalidBudget = errors.New("budget must be greater than zero")
var ErrTooManyImages = errors.New("too many images")

// CanTransitionTo reports whether a moderation transition from s to next is valid.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Job is a tailoring request posted by a client. It only becomes publicly
// visible once an admin approves it.
type Job struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Title       string    `json:"title" bson:"title"`
	Category    string    `json:"category" bson:"category"`
	Budget      float64   `json:"budget" bson:"budget"`
	Description string    `json:"description" bson:"description"`
	Images      []string  `json:"images" bson:"images"`
	ClientID    string    `json:"clientId" bson:"client_id"`
	Status      JobStatus `json:"status" bson:"status"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	ModeratedAt time.Time `json:"moderatedAt,omitempty" bson:"moderated_at,omitempty"`
	ModeratedBy string    `json:"-" bson:"moderated_by,omitempty"`
}
