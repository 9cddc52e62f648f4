package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tailorhub/marketplace/internal/core/domain"
	"github.com/tailorhub/marketplace/internal/core/ports"
)

// JobService implements job posting and moderation.
type JobService struct {
	repo ports.JobRepository
	log  zerolog.Logger
}

func NewJobService(repo ports.JobRepository, log zerolog.Logger) *JobService {
	return &JobService{repo: repo, log: log}
}

// CreateJob posts a new job. Every job starts as PENDING and only becomes
// publicly listed once an admin approves it.
func (s *JobService) CreateJob(ctx context.Context, input ports.CreateJobInput) (*domain.Job, error) {
	if input.Budget <= 0 {
		return nil, domain.ErrInvalidBudget
	}
	if len(input.ImageURLs) > domain.MaxJobImages {
		return nil, domain.ErrTooManyImages
	}

	job := &domain.Job{
		Title:       input.Title,
		Category:    input.Category,
		Budget:      input.Budget,
		Description: input.Description,
		Images:      input.ImageURLs,
		ClientID:    input.ClientID,
		Status:      domain.JobPending,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, job); err != nil {
		s.log.Error().Err(err).Msg("failed to create job")
		return nil, err
	}

	s.log.Info().Str("job_id", job.ID).Str("client_id", input.ClientID).Msg("job posted")
	return job, nil
}

// ListApproved is the public marketplace view.
func (s *JobService) ListApproved(ctx context.Context) ([]domain.Job, error) {
	return s.repo.ListByStatus(ctx, domain.JobApproved)
}

// ListAll is the admin view. An empty status lists every job.
func (s *JobService) ListAll(ctx context.Context, status domain.JobStatus) ([]domain.Job, error) {
	return s.repo.ListByStatus(ctx, status)
}

// Moderate applies an approve/reject decision, validating the transition
// against the job's state machine.
func (s *JobService) Moderate(ctx context.Context, jobID string, decision domain.JobStatus, moderatorID string) (*domain.Job, error) {
	job, err := s.repo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if !job.Status.CanTransitionTo(decision) {
		return nil, fmt.Errorf("moderate job: %w (from %s to %s)", domain.ErrInvalidTransition, job.Status, decision)
	}

	if err := s.repo.UpdateStatus(ctx, jobID, decision, moderatorID); err != nil {
		return nil, fmt.Errorf("moderate job: %w", err)
	}

	job.Status = decision
	job.ModeratedAt = time.Now().UTC()
	job.ModeratedBy = moderatorID

	s.log.Info().
		Str("job_id", jobID).
		Str("decision", string(decision)).
		Str("moderator", moderatorID).
		Msg("job moderated")

	return job, nil
}
