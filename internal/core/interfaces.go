package core

import (
	"context"

	domainauth "github.com/jobdeck/careers-api/internal/domain/auth"
	"github.com/jobdeck/careers-api/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// JobRepository defines the interface for job posting data operations.
type JobRepository interface {
	Create(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error)
	GetByID(ctx context.Context, id string) (*model.Job, error)
	List(ctx context.Context, limit, offset int) ([]*model.Job, error)
	ListWithOptions(ctx context.Context, opts model.JobsListOptions) ([]*model.Job, error)
	Update(ctx context.Context, id string, req model.UpdateJobRequest) (*model.Job, error)
	// UpdateStatus moves a job to the given lifecycle status. Legality of
	// the transition is the service's concern; the repo only writes.
	UpdateStatus(ctx context.Context, id string, status model.JobStatus) (*model.Job, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// CreateApplicationParams groups parameters for ApplicationRepository.Create.
type CreateApplicationParams struct {
	Request   *model.SubmitApplicationRequest
	ResumeURL *string
}

// TransitionStatusParams groups parameters for TransitionStatus.
type TransitionStatusParams struct {
	ID     string
	Status model.ApplicationStatus
}

// ApplicationRepository defines the interface for application data operations.
type ApplicationRepository interface {
	Create(ctx context.Context, params CreateApplicationParams) (*model.Application, error)
	GetByID(ctx context.Context, id string) (*model.Application, error)
	ListByEmail(ctx context.Context, email string) ([]*model.ApplicationSummary, error)
	CountDistinctApplicants(ctx context.Context, jobID string) (int, error)
	// HasApplied reports whether this email already has an application
	// for the job. Advisory only; the unique constraint on
	// (job_id, applicant_email) remains authoritative.
	HasApplied(ctx context.Context, jobID, email string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)

	// TransitionStatus writes the new status and inserts a pending outbox
	// notification for it in a single transaction. A missing application
	// is a NotFound error and nothing is written.
	TransitionStatus(ctx context.Context, params TransitionStatusParams) (*model.Application, error)

	// EnqueueNotification inserts a pending outbox notification for the
	// application's current status without changing the status.
	EnqueueNotification(ctx context.Context, applicationID string) (*model.EmailNotification, error)
}

// EmailTemplateRepository defines the interface for email template data operations.
type EmailTemplateRepository interface {
	Create(ctx context.Context, req model.CreateEmailTemplateRequest) (*model.EmailTemplate, error)
	GetByID(ctx context.Context, id string) (*model.EmailTemplate, error)
	GetByStatus(ctx context.Context, status model.ApplicationStatus) (*model.EmailTemplate, error)
	List(ctx context.Context, limit, offset int) ([]*model.EmailTemplate, error)
	Update(ctx context.Context, id string, req model.UpdateEmailTemplateRequest) (*model.EmailTemplate, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// DeliverFunc attempts delivery of one claimed notification and returns
// the provider message id on success.
type DeliverFunc func(ctx context.Context, n *model.EmailNotification) (string, error)

// NotificationRepository defines the interface for the email outbox.
type NotificationRepository interface {
	// ProcessPending claims up to limit pending rows (FOR UPDATE SKIP
	// LOCKED), invokes deliver on each, and marks each row delivered or
	// failed inside the claiming transaction. Returns the number of rows
	// processed.
	ProcessPending(ctx context.Context, limit int, deliver DeliverFunc) (int, error)
	GetByID(ctx context.Context, id string) (*model.EmailNotification, error)
	ListByApplication(ctx context.Context, applicationID string) ([]*model.EmailNotification, error)
}

// RoleRepository defines the interface for user role lookups.
type RoleRepository interface {
	// GetRole returns the role recorded for a user. A missing row is a
	// NotFound error, not RoleNone; callers decide how to treat it.
	GetRole(ctx context.Context, userID string) (domainauth.Role, error)
}

// CreateBlogPostParams groups parameters for BlogRepository.Create.
type CreateBlogPostParams struct {
	Request      *model.CreateBlogPostRequest
	ThumbnailURL *string
	ImageURLs    []string
}

// BlogRepository defines the interface for blog post data operations.
type BlogRepository interface {
	Create(ctx context.Context, params CreateBlogPostParams) (*model.BlogPost, error)
	GetByID(ctx context.Context, id string) (*model.BlogPost, error)
	List(ctx context.Context, limit, offset int) ([]*model.BlogPost, error)
	Update(ctx context.Context, id string, req model.UpdateBlogPostRequest) (*model.BlogPost, error)
	Delete(ctx context.Context, id string) (bool, error)
}
