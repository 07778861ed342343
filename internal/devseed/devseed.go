// Package devseed populates a development database with representative
// careers data: a few postings, the status email templates, and an admin
// role for the configured dev user.
package devseed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/jobdeck/careers-api/internal/data"
	"github.com/jobdeck/careers-api/internal/data/pgxutil"
	"github.com/jobdeck/careers-api/internal/domain/model"
	apperrors "github.com/jobdeck/careers-api/internal/errors"
	"github.com/jobdeck/careers-api/internal/service"
)

// Services bundles the dependencies needed for development seeding.
type Services struct {
	DB        *sql.DB
	jobs      *service.JobService
	templates *service.EmailTemplateService
}

// NewServices constructs the services required for seeding using the provided DB.
func NewServices(db *sql.DB, logger *slog.Logger) Services {
	jobService := service.MustNewJobService(service.JobServiceOptions{
		Repo:   data.NewJobRepo(db),
		Logger: logger,
	})
	templateService := service.MustNewEmailTemplateService(service.EmailTemplateServiceOptions{
		Repo:   data.NewEmailTemplateRepo(db),
		Logger: logger,
	})

	return Services{
		DB:        db,
		jobs:      jobService,
		templates: templateService,
	}
}

// Run executes the full development seeding workflow against the provided DB.
// Seeding is idempotent: records that already exist are left alone.
func Run(ctx context.Context, svcs Services, adminUserID string, logger *slog.Logger) error {
	failures := 0
	failures += seedJobs(ctx, svcs.jobs, logger)
	failures += seedTemplates(ctx, svcs.templates, logger)
	if err := seedAdminRole(ctx, svcs.DB, adminUserID); err != nil {
		if logger != nil {
			logger.ErrorContext(ctx, "failed to seed admin role", "user_id", adminUserID, "error", err)
		}
		failures++
	}
	if failures > 0 {
		return fmt.Errorf("%d seed errors; check logs", failures)
	}
	return nil
}

func seedJobs(ctx context.Context, svc *service.JobService, logger *slog.Logger) int {
	type seedJob struct {
		req     model.CreateJobRequest
		publish bool
	}
	jobs := []seedJob{
		{
			req: model.CreateJobRequest{
				Title:          "Senior Backend Engineer",
				Department:     "Engineering",
				EmploymentType: "full_time",
				Description:    "Design and operate the services behind our hiring platform.",
				Qualifications: "5+ years of production Go or similar backend experience.",
				SalaryRange:    "$150k-$190k",
				Location:       "Remote (US)",
			},
			publish: true,
		},
		{
			req: model.CreateJobRequest{
				Title:          "Product Designer",
				Department:     "Design",
				EmploymentType: "full_time",
				Description:    "Own the candidate-facing application experience end to end.",
				Qualifications: "Portfolio demonstrating shipped product work.",
				SalaryRange:    "$120k-$150k",
				Location:       "New York, NY",
			},
			publish: true,
		},
		{
			req: model.CreateJobRequest{
				Title:          "Engineering Intern",
				Department:     "Engineering",
				EmploymentType: "internship",
				Description:    "Summer internship on the platform team.",
				Location:       "Remote",
			},
		},
	}

	failures := 0
	for _, sj := range jobs {
		existing, err := svc.List(ctx, model.JobsListOptions{Q: &sj.req.Title, Limit: 1})
		if err != nil {
			logSeedError(ctx, logger, "failed to check existing job", "title", sj.req.Title, err)
			failures++
			continue
		}
		if len(existing) > 0 {
			if logger != nil {
				logger.InfoContext(ctx, "job already exists", "title", sj.req.Title)
			}
			continue
		}

		created, err := svc.Create(ctx, &sj.req)
		if err != nil {
			logSeedError(ctx, logger, "failed to create job", "title", sj.req.Title, err)
			failures++
			continue
		}
		if sj.publish {
			if _, err = svc.Publish(ctx, created.ID); err != nil {
				logSeedError(ctx, logger, "failed to publish job", "title", sj.req.Title, err)
				failures++
				continue
			}
		}
		if logger != nil {
			logger.InfoContext(ctx, "created job", "title", sj.req.Title, "published", sj.publish)
		}
	}
	return failures
}

func seedTemplates(ctx context.Context, svc *service.EmailTemplateService, logger *slog.Logger) int {
	templates := []model.CreateEmailTemplateRequest{
		{
			Status:  string(model.ApplicationStatusApplied),
			Subject: "We received your application",
			Body:    "<p>Hi {{applicant_name}}, thanks for applying to {{job_title}}. We will be in touch.</p>",
		},
		{
			Status:  string(model.ApplicationStatusUnderReview),
			Subject: "Your application is under review",
			Body:    "<p>Hi {{applicant_name}}, your application for {{job_title}} is being reviewed.</p>",
		},
		{
			Status:  string(model.ApplicationStatusApproved),
			Subject: "Good news about your application",
			Body:    "<p>Hi {{applicant_name}}, we would like to move forward with your application for {{job_title}}.</p>",
		},
		{
			Status:  string(model.ApplicationStatusRejected),
			Subject: "An update on your application",
			Body:    "<p>Hi {{applicant_name}}, we have decided not to move forward with your application for {{job_title}}.</p>",
		},
	}

	failures := 0
	for i := range templates {
		req := templates[i]
		_, err := svc.Create(ctx, req)
		switch {
		case err == nil:
			if logger != nil {
				logger.InfoContext(ctx, "created email template", "status", req.Status)
			}
		case apperrors.IsConflict(err):
			if logger != nil {
				logger.InfoContext(ctx, "email template already exists", "status", req.Status)
			}
		default:
			logSeedError(ctx, logger, "failed to create email template", "status", req.Status, err)
			failures++
		}
	}
	return failures
}

// seedAdminRole grants the dev user an admin role. Role writes have no
// service operation; provisioning is an out-of-band concern, so the seeder
// writes the row directly.
func seedAdminRole(ctx context.Context, db *sql.DB, userID string) error {
	if userID == "" {
		return nil
	}
	err := pgxutil.WithPgxConn(ctx, db, func(conn *pgx.Conn) error {
		_, execErr := conn.Exec(ctx,
			`INSERT INTO user_roles (user_id, role) VALUES ($1, 'admin')
			 ON CONFLICT (user_id) DO UPDATE SET role = EXCLUDED.role`,
			userID)
		return execErr
	})
	if err != nil {
		return apperrors.MapDBError(err)
	}
	return nil
}

func logSeedError(ctx context.Context, logger *slog.Logger, msg, key, value string, err error) {
	if logger != nil {
		logger.ErrorContext(ctx, msg, key, value, "error", err)
	}
}
