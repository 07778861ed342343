package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jobdeck/careers-api/internal/data/database"
	"github.com/jobdeck/careers-api/internal/data/pgxutil"
	"github.com/jobdeck/careers-api/internal/domain/model"
	apperrors "github.com/jobdeck/careers-api/internal/errors"
)

const (
	sortDirAsc  = "ASC"
	sortDirDesc = "DESC"

	defaultListLimit = 50
)

// JobRepo provides database operations for job postings.
type JobRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewJobRepo creates a new JobRepo with real time provider.
func NewJobRepo(db *sql.DB) *JobRepo {
	return &JobRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewJobRepoWithTimeProvider creates a new JobRepo with a custom time provider (useful for tests).
func NewJobRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *JobRepo {
	return &JobRepo{DB: db, timeProvider: tp}
}

// SQL query constants for static queries (no dynamic WHERE/ORDER BY).
const (
	jobColumnsSQL = `id, title, department, employment_type, description, qualifications,
	       salary_range, location, status, created_at, updated_at`

	jobGetByIDQuery = `
		SELECT ` + jobColumnsSQL + `
		FROM jobs
		WHERE id = $1`

	jobListQuery = `
		SELECT ` + jobColumnsSQL + `
		FROM jobs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
)

// Create inserts a new job posting in draft status.
func (r *JobRepo) Create(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error) {
	if req == nil {
		return nil, errors.New("create job request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	createdAt := r.timeProvider.Now().UTC()
	var out model.Job
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO jobs (
				title, department, employment_type, description, qualifications,
				salary_range, location, status, created_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9
			) RETURNING `+jobColumnsSQL,
			strings.TrimSpace(req.Title),
			req.Department,
			req.EmploymentType,
			req.Description,
			req.Qualifications,
			req.SalaryRange,
			req.Location,
			model.JobStatusDraft,
			createdAt,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a job by ID.
func (r *JobRepo) GetByID(ctx context.Context, id string) (*model.Job, error) {
	var job model.Job
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, jobGetByIDQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		job, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundf("job %s not found", id)
		}
		return nil, apperrors.MapDBError(err)
	}
	return &job, nil
}

// List retrieves jobs with pagination, newest first.
func (r *JobRepo) List(ctx context.Context, limit, offset int) ([]*model.Job, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []model.Job
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, jobListQuery, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Job])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", apperrors.MapDBError(err))
	}

	res := make([]*model.Job, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// ListWithOptions retrieves jobs with optional filters and sorting.
func (r *JobRepo) ListWithOptions(
	ctx context.Context,
	opts model.JobsListOptions,
) ([]*model.Job, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	offset := max(opts.Offset, 0)

	query, args := database.BuildListQuery(r.buildJobQueryOptions(opts, limit, offset))

	var rowsOut []model.Job
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Job])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list jobs with options: %w", apperrors.MapDBError(err))
	}
	res := make([]*model.Job, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// buildJobQueryOptions builds query options for job listing with filters and sorting.
func (r *JobRepo) buildJobQueryOptions(
	opts model.JobsListOptions,
	limit, offset int,
) *database.ListQueryOptions {
	queryOpts := []database.ListQueryOption{
		database.WithColumns(jobColumns()...),
		database.WithLimit(limit),
		database.WithOffset(offset),
	}

	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("title", database.ILike, "%"+strings.TrimSpace(*opts.Q)+"%"),
		))
	}
	if opts.Status != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("status", database.Equal, string(*opts.Status)),
		))
	}

	sortCol, sortDir := validateJobSortOptions(opts.Sort, opts.Dir)
	queryOpts = append(queryOpts, database.WithOrderBy(sortCol, sortDir))

	return database.NewListQueryOptions("jobs", queryOpts...)
}

// validateJobSortOptions validates and returns safe sort column and direction.
func validateJobSortOptions(sort, dir string) (string, string) {
	sortCol := "created_at"
	sortDir := sortDirDesc

	if sort != "" {
		allowedSorts := map[string]string{
			"title":      "title",
			"created_at": "created_at",
		}
		if validSort, ok := allowedSorts[strings.ToLower(strings.TrimSpace(sort))]; ok {
			sortCol = validSort
		}
	}
	if dir != "" {
		allowedDirs := map[string]string{
			"asc":  sortDirAsc,
			"desc": sortDirDesc,
		}
		if validDir, ok := allowedDirs[strings.ToLower(strings.TrimSpace(dir))]; ok {
			sortDir = validDir
		}
	}
	return sortCol, sortDir
}

// jobColumns returns the standard column list for job queries.
func jobColumns() []string {
	return []string{
		"id",
		"title",
		"department",
		"employment_type",
		"description",
		"qualifications",
		"salary_range",
		"location",
		"status",
		"created_at",
		"updated_at",
	}
}

// Update updates the mutable posting fields of a job.
func (r *JobRepo) Update(
	ctx context.Context,
	id string,
	req model.UpdateJobRequest,
) (*model.Job, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	setClause, args := r.buildUpdateClause(req)
	args = append(args, id)
	query := "UPDATE jobs SET " + setClause + " WHERE id = $" + strconv.Itoa(len(args)) +
		" RETURNING " + jobColumnsSQL

	var out model.Job
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		return e
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundf("job %s not found", id)
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// buildUpdateClause builds the SQL SET clause and args for updating a job.
func (r *JobRepo) buildUpdateClause(req model.UpdateJobRequest) (string, []any) {
	setParts := make([]string, 0, 8)
	args := make([]any, 0, 8)
	nextIdx := func() int { return len(args) + 1 }

	if req.Title != nil {
		setParts = append(setParts, fmt.Sprintf("title = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Title))
	}
	if req.Department != nil {
		setParts = append(setParts, fmt.Sprintf("department = $%d", nextIdx()))
		args = append(args, *req.Department)
	}
	if req.EmploymentType != nil {
		setParts = append(setParts, fmt.Sprintf("employment_type = $%d", nextIdx()))
		args = append(args, *req.EmploymentType)
	}
	if req.Description != nil {
		setParts = append(setParts, fmt.Sprintf("description = $%d", nextIdx()))
		args = append(args, *req.Description)
	}
	if req.Qualifications != nil {
		setParts = append(setParts, fmt.Sprintf("qualifications = $%d", nextIdx()))
		args = append(args, *req.Qualifications)
	}
	if req.SalaryRange != nil {
		setParts = append(setParts, fmt.Sprintf("salary_range = $%d", nextIdx()))
		args = append(args, *req.SalaryRange)
	}
	if req.Location != nil {
		setParts = append(setParts, fmt.Sprintf("location = $%d", nextIdx()))
		args = append(args, *req.Location)
	}

	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	return strings.Join(setParts, ", "), args
}

// UpdateStatus moves a job to the given lifecycle status.
func (r *JobRepo) UpdateStatus(
	ctx context.Context,
	id string,
	status model.JobStatus,
) (*model.Job, error) {
	var out model.Job
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE jobs SET status = $2, updated_at = $3
			WHERE id = $1
			RETURNING `+jobColumnsSQL,
			id, status, r.timeProvider.Now().UTC())
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		return e
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundf("job %s not found", id)
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Delete deletes a job by ID. Applications referencing it cascade.
func (r *JobRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
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
