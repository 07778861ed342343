package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jobdeck/careers-api/internal/core"
	"github.com/jobdeck/careers-api/internal/domain/model"
	apperrors "github.com/jobdeck/careers-api/internal/errors"
)

// EmailTemplateServiceOptions groups dependencies for EmailTemplateService.
type EmailTemplateServiceOptions struct {
	Repo   core.EmailTemplateRepository // Required: template storage
	Logger *slog.Logger                 // Optional: structured logger
}

// EmailTemplateService manages the status-keyed notification templates.
type EmailTemplateService struct {
	repo   core.EmailTemplateRepository
	logger *slog.Logger
}

// NewEmailTemplateService constructs a new EmailTemplateService.
func NewEmailTemplateService(opts EmailTemplateServiceOptions) (*EmailTemplateService, error) {
	if opts.Repo == nil {
		return nil, errors.New("EmailTemplateRepository is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "email_template_service")
	}

	return &EmailTemplateService{repo: opts.Repo, logger: logger}, nil
}

// MustNewEmailTemplateService constructs a new EmailTemplateService and panics on error.
func MustNewEmailTemplateService(opts EmailTemplateServiceOptions) *EmailTemplateService {
	svc, err := NewEmailTemplateService(opts)
	if err != nil {
		panic(err) //nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
	}
	return svc
}

// Create stores a new template. A second template for the same status is a
// Conflict from the unique constraint.
func (s *EmailTemplateService) Create(
	ctx context.Context,
	req model.CreateEmailTemplateRequest,
) (*model.EmailTemplate, error) {
	tpl, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "email template created",
			"template_id", tpl.ID, "status", tpl.Status)
	}
	return tpl, nil
}

// Get retrieves a template by id.
func (s *EmailTemplateService) Get(ctx context.Context, id string) (*model.EmailTemplate, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves templates ordered by status.
func (s *EmailTemplateService) List(
	ctx context.Context,
	limit, offset int,
) ([]*model.EmailTemplate, error) {
	return s.repo.List(ctx, limit, offset)
}

// Update modifies a template's subject and body. The status key is
// immutable.
func (s *EmailTemplateService) Update(
	ctx context.Context,
	id string,
	req model.UpdateEmailTemplateRequest,
) (*model.EmailTemplate, error) {
	return s.repo.Update(ctx, id, req)
}

// Delete removes a template. Notifications for its status fail until a
// replacement is created.
func (s *EmailTemplateService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NotFoundf("email template %s not found", id)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "email template deleted", "template_id", id)
	}
	return nil
}
