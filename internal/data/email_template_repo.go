package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jobdeck/careers-api/internal/data/pgxutil"
	"github.com/jobdeck/careers-api/internal/domain/model"
	apperrors "github.com/jobdeck/careers-api/internal/errors"
)

// EmailTemplateRepo provides database operations for email templates.
type EmailTemplateRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewEmailTemplateRepo creates a new EmailTemplateRepo with real time provider.
func NewEmailTemplateRepo(db *sql.DB) *EmailTemplateRepo {
	return &EmailTemplateRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewEmailTemplateRepoWithTimeProvider creates a new EmailTemplateRepo with a custom time provider.
func NewEmailTemplateRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *EmailTemplateRepo {
	return &EmailTemplateRepo{DB: db, timeProvider: tp}
}

const (
	templateColumnsSQL = `id, status, subject, body, created_at, updated_at`

	templateGetByIDQuery = `
		SELECT ` + templateColumnsSQL + `
		FROM email_templates
		WHERE id = $1`

	templateGetByStatusQuery = `
		SELECT ` + templateColumnsSQL + `
		FROM email_templates
		WHERE status = $1`

	templateListQuery = `
		SELECT ` + templateColumnsSQL + `
		FROM email_templates
		ORDER BY status
		LIMIT $1 OFFSET $2`
)

// Create inserts a new email template. A second template for the same
// status surfaces as a Conflict from the unique constraint.
func (r *EmailTemplateRepo) Create(
	ctx context.Context,
	req model.CreateEmailTemplateRequest,
) (*model.EmailTemplate, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	status, err := model.ParseApplicationStatus(req.Status)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	createdAt := r.timeProvider.Now().UTC()
	var out model.EmailTemplate
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qErr := conn.Query(ctx, `
			INSERT INTO email_templates (status, subject, body, created_at)
			VALUES ($1, $2, $3, $4)
			RETURNING `+templateColumnsSQL,
			status, strings.TrimSpace(req.Subject), req.Body, createdAt)
		if qErr != nil {
			return qErr
		}
		defer rows.Close()
		out, qErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.EmailTemplate])
		return qErr
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a template by ID.
func (r *EmailTemplateRepo) GetByID(ctx context.Context, id string) (*model.EmailTemplate, error) {
	return r.getByQuery(ctx, templateGetByIDQuery, apperrors.Messagef("template %s not found", id), id)
}

// GetByStatus retrieves the template keyed by an application status.
func (r *EmailTemplateRepo) GetByStatus(
	ctx context.Context,
	status model.ApplicationStatus,
) (*model.EmailTemplate, error) {
	return r.getByQuery(
		ctx,
		templateGetByStatusQuery,
		apperrors.Messagef("no template configured for status %s", status),
		status,
	)
}

// List retrieves templates with pagination.
func (r *EmailTemplateRepo) List(
	ctx context.Context,
	limit, offset int,
) ([]*model.EmailTemplate, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []model.EmailTemplate
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, templateListQuery, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.EmailTemplate])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", apperrors.MapDBError(err))
	}

	res := make([]*model.EmailTemplate, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates subject and/or body of a template.
func (r *EmailTemplateRepo) Update(
	ctx context.Context,
	id string,
	req model.UpdateEmailTemplateRequest,
) (*model.EmailTemplate, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	setParts := make([]string, 0, 3)
	args := make([]any, 0, 4)
	nextIdx := func() int { return len(args) + 1 }

	if req.Subject != nil {
		setParts = append(setParts, fmt.Sprintf("subject = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Subject))
	}
	if req.Body != nil {
		setParts = append(setParts, fmt.Sprintf("body = $%d", nextIdx()))
		args = append(args, *req.Body)
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	args = append(args, id)
	query := "UPDATE email_templates SET " + strings.Join(setParts, ", ") +
		" WHERE id = $" + strconv.Itoa(len(args)) + " RETURNING " + templateColumnsSQL

	var out model.EmailTemplate
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.EmailTemplate])
		return e
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundf("template %s not found", id)
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Delete deletes a template by ID.
func (r *EmailTemplateRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM email_templates WHERE id = $1`, id)
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

// getByQuery executes a query expected to return one template.
func (r *EmailTemplateRepo) getByQuery(
	ctx context.Context,
	q string,
	notFound apperrors.MessageTemplate,
	args ...any,
) (*model.EmailTemplate, error) {
	var tpl model.EmailTemplate
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		tpl, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.EmailTemplate])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound(notFound.String())
		}
		return nil, apperrors.MapDBError(err)
	}
	return &tpl, nil
}
