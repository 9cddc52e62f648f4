package ports

import (
	"context"

	"github.com/tailorhub/marketplace/internal/core/domain"
)

// CreateJobInput carries all data needed to post a new job.
type CreateJobInput struct {
	Title       string
	Category    string
	Budget      float64
	Description string
	ImageURLs   []string
	ClientID    string
}

// JobService defines use-case operations for jobs.
type JobService interface {
	CreateJob(ctx context.Context, input CreateJobInput) (*domain.Job, error)
	// ListApproved is the public marketplace listing.
	ListApproved(ctx context.Context) ([]domain.Job, error)
	// ListAll is the admin moderation queue view. Status may be empty.
	ListAll(ctx context.Context, status domain.JobStatus) ([]domain.Job, error)
	// Moderate applies an approve/reject decision.
	Moderate(ctx context.Context, jobID string, decision domain.JobStatus, moderatorID string) (*domain.Job, error)
}
