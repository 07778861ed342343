package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jobdeck/careers-api/internal/core"
	"github.com/jobdeck/careers-api/internal/data/pgxutil"
	"github.com/jobdeck/careers-api/internal/domain/model"
	apperrors "github.com/jobdeck/careers-api/internal/errors"
)

// ApplicationRepo provides database operations for job applications and
// their outbox notifications.
type ApplicationRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewApplicationRepo creates a new ApplicationRepo with real time provider.
func NewApplicationRepo(db *sql.DB) *ApplicationRepo {
	return &ApplicationRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewApplicationRepoWithTimeProvider creates a new ApplicationRepo with a custom time provider.
func NewApplicationRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ApplicationRepo {
	return &ApplicationRepo{DB: db, timeProvider: tp}
}

const (
	applicationColumnsSQL = `id, job_id, user_id, applicant_email, applicant_name, phone,
	       resume_url, status, created_at`

	applicationGetByIDQuery = `
		SELECT ` + applicationColumnsSQL + `
		FROM applications
		WHERE id = $1`

	applicationListByEmailQuery = `
		SELECT id, applicant_name, applicant_email, status, created_at
		FROM applications
		WHERE applicant_email = $1
		ORDER BY created_at DESC`

	outboxInsertSQL = `
		INSERT INTO email_outbox (application_id, recipient, status, state, created_at)
		VALUES ($1, $2, $3, 'pending', $4)
		RETURNING id, application_id, recipient, status, state, provider_message_id, error,
		          created_at, delivered_at`
)

// Create inserts a new application in the applied status. A duplicate
// (job_id, applicant_email) pair surfaces as a Conflict error from the
// unique constraint; there is no racy pre-check.
func (r *ApplicationRepo) Create(
	ctx context.Context,
	params core.CreateApplicationParams,
) (*model.Application, error) {
	req := params.Request
	if req == nil {
		return nil, errors.New("submit application request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	createdAt := r.timeProvider.Now().UTC()
	var out model.Application
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO applications (
				job_id, user_id, applicant_email, applicant_name, phone, resume_url, status, created_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8
			) RETURNING `+applicationColumnsSQL,
			req.JobID,
			req.UserID,
			req.ApplicantEmail,
			req.ApplicantName,
			req.Phone,
			params.ResumeURL,
			model.ApplicationStatusApplied,
			createdAt,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Application])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves an application by ID.
func (r *ApplicationRepo) GetByID(ctx context.Context, id string) (*model.Application, error) {
	var app model.Application
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, applicationGetByIDQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		app, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Application])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundf("application %s not found", id)
		}
		return nil, apperrors.MapDBError(err)
	}
	return &app, nil
}

// ListByEmail retrieves summaries of an applicant's own applications,
// newest first.
func (r *ApplicationRepo) ListByEmail(
	ctx context.Context,
	email string,
) ([]*model.ApplicationSummary, error) {
	var rowsOut []model.ApplicationSummary
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, applicationListByEmailQuery, email)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.ApplicationSummary])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", apperrors.MapDBError(err))
	}

	res := make([]*model.ApplicationSummary, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// CountDistinctApplicants counts unique applicant emails for a job.
func (r *ApplicationRepo) CountDistinctApplicants(ctx context.Context, jobID string) (int, error) {
	var count int
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx,
			`SELECT COUNT(DISTINCT applicant_email) FROM applications WHERE job_id = $1`,
			jobID,
		).Scan(&count)
	})
	if err != nil {
		return 0, apperrors.MapDBError(err)
	}
	return count, nil
}

// HasApplied reports whether an application for the job already exists
// under this applicant email.
func (r *ApplicationRepo) HasApplied(ctx context.Context, jobID, email string) (bool, error) {
	var exists bool
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM applications WHERE job_id = $1 AND applicant_email = $2)`,
			jobID, email,
		).Scan(&exists)
	})
	if err != nil {
		return false, apperrors.MapDBError(err)
	}
	return exists, nil
}

// Delete removes an application by ID.
func (r *ApplicationRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, apperrors.MapDBError(err)
	}
	return rows > 0, nil
}

// TransitionStatus writes the new status and inserts a pending outbox
// notification in a single transaction. Either both rows land or neither
// does, so the recorded status and the notification intent cannot diverge.
func (r *ApplicationRepo) TransitionStatus(
	ctx context.Context,
	params core.TransitionStatusParams,
) (*model.Application, error) {
	var out model.Application
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{
		Fn: func(tx pgx.Tx) error {
			rows, err := tx.Query(ctx, `
				UPDATE applications SET status = $2
				WHERE id = $1
				RETURNING `+applicationColumnsSQL,
				params.ID, params.Status)
			if err != nil {
				return err
			}
			out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Application])
			rows.Close()
			if err != nil {
				return err
			}

			_, err = tx.Exec(ctx, `
				INSERT INTO email_outbox (application_id, recipient, status, state, created_at)
				VALUES ($1, $2, $3, 'pending', $4)`,
				out.ID, out.ApplicantEmail, out.Status, r.timeProvider.Now().UTC())
			return err
		},
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundf("application %s not found", params.ID)
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// EnqueueNotification inserts a pending outbox notification for the
// application's current status. Used for operator-triggered redelivery.
func (r *ApplicationRepo) EnqueueNotification(
	ctx context.Context,
	applicationID string,
) (*model.EmailNotification, error) {
	var out model.EmailNotification
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{
		Fn: func(tx pgx.Tx) error {
			var email string
			var status model.ApplicationStatus
			if err := tx.QueryRow(ctx,
				`SELECT applicant_email, status FROM applications WHERE id = $1`,
				applicationID,
			).Scan(&email, &status); err != nil {
				return err
			}

			rows, err := tx.Query(ctx, outboxInsertSQL,
				applicationID, email, status, r.timeProvider.Now().UTC())
			if err != nil {
				return err
			}
			defer rows.Close()
			out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.EmailNotification])
			return err
		},
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundf("application %s not found", applicationID)
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}
