package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jobdeck/careers-api/internal/core"
	"github.com/jobdeck/careers-api/internal/domain/model"
	apperrors "github.com/jobdeck/careers-api/internal/errors"
)

// JobServiceOptions groups dependencies for JobService.
type JobServiceOptions struct {
	Repo   core.JobRepository // Required: job posting storage
	Logger *slog.Logger       // Optional: structured logger
}

// JobService owns the posting lifecycle. Creation always lands in draft;
// publish and close are the only status moves and they are validated here,
// not in the repository.
type JobService struct {
	repo   core.JobRepository
	logger *slog.Logger
}

// NewJobService constructs a new JobService.
func NewJobService(opts JobServiceOptions) (*JobService, error) {
	if opts.Repo == nil {
		return nil, errors.New("JobRepository is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "job_service")
	}

	return &JobService{repo: opts.Repo, logger: logger}, nil
}

// MustNewJobService constructs a new JobService and panics on error.
func MustNewJobService(opts JobServiceOptions) *JobService {
	svc, err := NewJobService(opts)
	if err != nil {
		panic(err) //nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
	}
	return svc
}

// Create stores a new job posting in draft status.
func (s *JobService) Create(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error) {
	job, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "job created", "job_id", job.ID, "title", job.Title)
	}
	return job, nil
}

// Get retrieves a job by id.
func (s *JobService) Get(ctx context.Context, id string) (*model.Job, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves jobs with optional filters, sorting, and pagination.
func (s *JobService) List(ctx context.Context, opts model.JobsListOptions) ([]*model.Job, error) {
	return s.repo.ListWithOptions(ctx, opts)
}

// ListLive retrieves only live postings, for the public board.
func (s *JobService) ListLive(ctx context.Context, opts model.JobsListOptions) ([]*model.Job, error) {
	live := model.JobStatusLive
	opts.Status = &live
	return s.repo.ListWithOptions(ctx, opts)
}

// Update applies a partial update to the mutable posting fields.
func (s *JobService) Update(
	ctx context.Context,
	id string,
	req model.UpdateJobRequest,
) (*model.Job, error) {
	return s.repo.Update(ctx, id, req)
}

// Publish moves a draft posting to live.
func (s *JobService) Publish(ctx context.Context, id string) (*model.Job, error) {
	return s.transition(ctx, id, model.JobStatusLive)
}

// Close moves a live posting to closed.
func (s *JobService) Close(ctx context.Context, id string) (*model.Job, error) {
	return s.transition(ctx, id, model.JobStatusClosed)
}

func (s *JobService) transition(
	ctx context.Context,
	id string,
	next model.JobStatus,
) (*model.Job, error) {
	job, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !job.Status.CanTransitionTo(next) {
		return nil, apperrors.Validation(
			fmt.Sprintf("job cannot move from %s to %s", job.Status, next))
	}

	updated, err := s.repo.UpdateStatus(ctx, id, next)
	if err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "job status changed",
			"job_id", id, "from", job.Status, "to", next)
	}
	return updated, nil
}

// Delete removes a posting. Applications referencing it cascade in the
// database.
func (s *JobService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NotFoundf("job %s not found", id)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "job deleted", "job_id", id)
	}
	return nil
}
