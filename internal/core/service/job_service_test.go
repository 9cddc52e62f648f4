package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tailorhub/marketplace/internal/core/domain"
	"github.com/tailorhub/marketplace/internal/core/ports"
)

type stubJobRepo struct {
	jobs map[string]*domain.Job
	next int
}

func newStubJobRepo() *stubJobRepo {
	return &stubJobRepo{jobs: make(map[string]*domain.Job)}
}

func (r *stubJobRepo) Create(_ context.Context, job *domain.Job) error {
	r.next++
	job.ID = "job_" + strconv.Itoa(r.next)
	clone := *job
	r.jobs[job.ID] = &clone
	return nil
}

func (r *stubJobRepo) FindByID(_ context.Context, id string) (*domain.Job, error) {
	j, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	clone := *j
	return &clone, nil
}

func (r *stubJobRepo) ListByStatus(_ context.Context, status domain.JobStatus) ([]domain.Job, error) {
	var out []domain.Job
	for _, j := range r.jobs {
		if status == "" || j.Status == status {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (r *stubJobRepo) UpdateStatus(_ context.Context, id string, status domain.JobStatus, moderatorID string) error {
	j, ok := r.jobs[id]
	if !ok {
		return domain.ErrJobNotFound
	}
	j.Status = status
	j.ModeratedBy = moderatorID
	return nil
}

func validJobInput() ports.CreateJobInput {
	return ports.CreateJobInput{
		Title:       "Hem wedding dress",
		Category:    "alterations",
		Budget:      120,
		Description: "Shorten by 5cm",
		ClientID:    "user_1",
	}
}

func TestJobService_CreateJob_StartsPending(t *testing.T) {
	svc := NewJobService(newStubJobRepo(), zerolog.Nop())

	job, err := svc.CreateJob(context.Background(), validJobInput())
	if err != nil {
		t.Fatalf("CreateJob returned error: %v", err)
	}
	if job.Status != domain.JobPending {
		t.Fatalf("expected PENDING, got %s", job.Status)
	}
	if job.ID == "" {
		t.Fatalf("expected an assigned id")
	}
}

func TestJobService_CreateJob_RejectsNonPositiveBudget(t *testing.T) {
	svc := NewJobService(newStubJobRepo(), zerolog.Nop())

	for _, budget := range []float64{0, -10} {
		input := validJobInput()
		input.Budget = budget
		if _, err := svc.CreateJob(context.Background(), input); err != domain.ErrInvalidBudget {
			t.Fatalf("budget %v: expected ErrInvalidBudget, got %v", budget, err)
		}
	}
}

func TestJobService_CreateJob_CapsImages(t *testing.T) {
	svc := NewJobService(newStubJobRepo(), zerolog.Nop())

	input := validJobInput()
	for i := 0; i <= domain.MaxJobImages; i++ {
		input.ImageURLs = append(input.ImageURLs, "https://img/"+strconv.Itoa(i))
	}
	if _, err := svc.CreateJob(context.Background(), input); err != domain.ErrTooManyImages {
		t.Fatalf("expected ErrTooManyImages, got %v", err)
	}

	input.ImageURLs = input.ImageURLs[:domain.MaxJobImages]
	if _, err := svc.CreateJob(context.Background(), input); err != nil {
		t.Fatalf("exactly %d images should be accepted: %v", domain.MaxJobImages, err)
	}
}

func TestJobService_ListApproved_ExcludesPending(t *testing.T) {
	repo := newStubJobRepo()
	svc := NewJobService(repo, zerolog.Nop())

	pending, _ := svc.CreateJob(context.Background(), validJobInput())
	approved, _ := svc.CreateJob(context.Background(), validJobInput())
	if _, err := svc.Moderate(context.Background(), approved.ID, domain.JobApproved, "admin_1"); err != nil {
		t.Fatalf("moderate failed: %v", err)
	}

	listed, err := svc.ListApproved(context.Background())
	if err != nil {
		t.Fatalf("ListApproved returned error: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != approved.ID {
		t.Fatalf("expected only the approved job, got %+v", listed)
	}
	_ = pending
}

func TestJobService_Moderate_Transitions(t *testing.T) {
	repo := newStubJobRepo()
	svc := NewJobService(repo, zerolog.Nop())

	job, _ := svc.CreateJob(context.Background(), validJobInput())

	moderated, err := svc.Moderate(context.Background(), job.ID, domain.JobRejected, "admin_1")
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if moderated.Status != domain.JobRejected {
		t.Fatalf("expected REJECTED, got %s", moderated.Status)
	}

	// A decided job cannot be re-moderated.
	if _, err := svc.Moderate(context.Background(), job.ID, domain.JobApproved, "admin_1"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestJobService_Moderate_NotFound(t *testing.T) {
	svc := NewJobService(newStubJobRepo(), zerolog.Nop())

	if _, err := svc.Moderate(context.Background(), "missing", domain.JobApproved, "admin_1"); err != domain.ErrJobNotFound {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}
