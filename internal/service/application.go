package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"

	"github.com/google/uuid"

	"github.com/jobdeck/careers-api/internal/core"
	"github.com/jobdeck/careers-api/internal/domain/model"
	apperrors "github.com/jobdeck/careers-api/internal/errors"
	"github.com/jobdeck/careers-api/internal/ports"
)

const resumeContentType = "application/pdf"

// ApplicationServiceOptions groups dependencies for ApplicationService.
type ApplicationServiceOptions struct {
	Repo    core.ApplicationRepository // Required: application storage
	Jobs    core.JobRepository         // Required: posting lookups during submit
	Objects ports.ObjectStore          // Optional: resume uploads; nil disables them
	Logger  *slog.Logger               // Optional: structured logger
}

// ApplicationService owns the application ledger. Submission checks the
// posting before any side effect, the status workflow runs through the
// repository's transactional transition, and every status change enqueues
// an outbox notification.
type ApplicationService struct {
	repo    core.ApplicationRepository
	jobs    core.JobRepository
	objects ports.ObjectStore
	logger  *slog.Logger
}

// NewApplicationService constructs a new ApplicationService.
func NewApplicationService(opts ApplicationServiceOptions) (*ApplicationService, error) {
	if opts.Repo == nil {
		return nil, errors.New("ApplicationRepository is required")
	}
	if opts.Jobs == nil {
		return nil, errors.New("JobRepository is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "application_service")
	}

	return &ApplicationService{
		repo:    opts.Repo,
		jobs:    opts.Jobs,
		objects: opts.Objects,
		logger:  logger,
	}, nil
}

// MustNewApplicationService constructs a new ApplicationService and panics on error.
func MustNewApplicationService(opts ApplicationServiceOptions) *ApplicationService {
	svc, err := NewApplicationService(opts)
	if err != nil {
		panic(err) //nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
	}
	return svc
}

// Submit records a new application against a live posting. The posting is
// checked before any side effect: a missing job is NotFound and a job that
// is not live is a validation failure. When resume bytes are provided,
// known duplicates are rejected before the upload and the file is stored
// first; a second application to the same posting from the same email
// surfaces as Conflict from the unique constraint.
func (s *ApplicationService) Submit(
	ctx context.Context,
	req *model.SubmitApplicationRequest,
	resume []byte,
) (*model.Application, error) {
	if req == nil {
		return nil, errors.New("submit application request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	job, err := s.jobs.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, err
	}
	if job.Status != model.JobStatusLive {
		return nil, apperrors.Validation(
			fmt.Sprintf("job %s is not accepting applications", job.ID))
	}

	var resumeURL *string
	if len(resume) > 0 {
		if s.objects == nil {
			return nil, apperrors.Validation("resume uploads are not enabled")
		}
		// Best-effort duplicate check before the resume reaches the
		// object store. The unique constraint on
		// (job_id, applicant_email) stays authoritative.
		if exists, checkErr := s.repo.HasApplied(ctx, req.JobID, req.ApplicantEmail); checkErr == nil && exists {
			return nil, apperrors.Conflictf(
				"application for job %s already exists for %s", req.JobID, req.ApplicantEmail)
		}
		key := path.Join("resumes", job.ID, uuid.NewString()+".pdf")
		url, uploadErr := s.objects.Put(ctx, key, resume, resumeContentType)
		if uploadErr != nil {
			return nil, fmt.Errorf("upload resume: %w", uploadErr)
		}
		resumeURL = &url
	}

	app, err := s.repo.Create(ctx, core.CreateApplicationParams{
		Request:   req,
		ResumeURL: resumeURL,
	})
	if err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "application submitted",
			"application_id", app.ID, "job_id", app.JobID)
	}
	return app, nil
}

// Get retrieves an application by id.
func (s *ApplicationService) Get(ctx context.Context, id string) (*model.Application, error) {
	return s.repo.GetByID(ctx, id)
}

// ListMine lists the caller's applications as summaries, newest first.
func (s *ApplicationService) ListMine(
	ctx context.Context,
	email string,
) ([]*model.ApplicationSummary, error) {
	if email == "" {
		return nil, apperrors.Validation("applicant email is required")
	}
	return s.repo.ListByEmail(ctx, email)
}

// CountApplicants returns the number of distinct applicant emails for a
// posting. A missing posting is NotFound rather than a zero count.
func (s *ApplicationService) CountApplicants(ctx context.Context, jobID string) (int, error) {
	if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
		return 0, err
	}
	return s.repo.CountDistinctApplicants(ctx, jobID)
}

// Transition moves an application to a new workflow status and enqueues the
// matching outbox notification in the same transaction.
func (s *ApplicationService) Transition(
	ctx context.Context,
	id, status string,
) (*model.Application, error) {
	parsed, err := model.ParseApplicationStatus(status)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	app, err := s.repo.TransitionStatus(ctx, core.TransitionStatusParams{
		ID:     id,
		Status: parsed,
	})
	if err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "application status changed",
			"application_id", id, "status", parsed)
	}
	return app, nil
}

// Renotify enqueues another notification for the application's current
// status without changing the status.
func (s *ApplicationService) Renotify(
	ctx context.Context,
	id string,
) (*model.EmailNotification, error) {
	n, err := s.repo.EnqueueNotification(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "notification enqueued",
			"application_id", id, "notification_id", n.ID)
	}
	return n, nil
}

// Withdraw removes the caller's own application. Callers cannot withdraw
// someone else's application; that is Forbidden even when the row exists.
func (s *ApplicationService) Withdraw(ctx context.Context, id, userID string) error {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if app.UserID != userID {
		return apperrors.Forbidden("application belongs to a different account")
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NotFoundf("application %s not found", id)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "application withdrawn", "application_id", id)
	}
	return nil
}

// Remove deletes an application regardless of ownership, for elevated
// callers cleaning up the ledger.
func (s *ApplicationService) Remove(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NotFoundf("application %s not found", id)
	}
	return nil
}
