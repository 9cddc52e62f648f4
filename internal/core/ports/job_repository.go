package ports

import (
	"context"

	"github.com/tailorhub/marketplace/internal/core/domain"
)

// JobRepository defines job persistence.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	// ListByStatus returns jobs newest first. An empty status lists all.
	ListByStatus(ctx context.Context, status domain.JobStatus) ([]domain.Job, error)
	UpdateStatus(ctx context.Context, id string, status domain.JobStatus, moderatorID string) error
}
