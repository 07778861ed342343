package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jobdeck/careers-api/internal/core"
	"github.com/jobdeck/careers-api/internal/data/pgxutil"
	"github.com/jobdeck/careers-api/internal/domain/model"
	apperrors "github.com/jobdeck/careers-api/internal/errors"
)

// BlogRepo provides database operations for blog posts.
type BlogRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewBlogRepo creates a new BlogRepo with real time provider.
func NewBlogRepo(db *sql.DB) *BlogRepo {
	return &BlogRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewBlogRepoWithTimeProvider creates a new BlogRepo with a custom time provider.
func NewBlogRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *BlogRepo {
	return &BlogRepo{DB: db, timeProvider: tp}
}

const (
	blogColumnsSQL = `id, title, content, author, category, tags, thumbnail_url, image_urls,
	       created_by, created_at, updated_at`

	blogGetByIDQuery = `
		SELECT ` + blogColumnsSQL + `
		FROM blog_posts
		WHERE id = $1`

	blogListQuery = `
		SELECT ` + blogColumnsSQL + `
		FROM blog_posts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
)

// Create inserts a new blog post.
func (r *BlogRepo) Create(
	ctx context.Context,
	params core.CreateBlogPostParams,
) (*model.BlogPost, error) {
	req := params.Request
	if req == nil {
		return nil, errors.New("create blog post request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	imageURLs := params.ImageURLs
	if imageURLs == nil {
		imageURLs = []string{}
	}

	createdAt := r.timeProvider.Now().UTC()
	var out model.BlogPost
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO blog_posts (
				title, content, author, category, tags, thumbnail_url, image_urls, created_by, created_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9
			) RETURNING `+blogColumnsSQL,
			strings.TrimSpace(req.Title),
			req.Content,
			req.Author,
			req.Category,
			tags,
			params.ThumbnailURL,
			imageURLs,
			req.CreatedBy,
			createdAt,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.BlogPost])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a blog post by ID.
func (r *BlogRepo) GetByID(ctx context.Context, id string) (*model.BlogPost, error) {
	var post model.BlogPost
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, blogGetByIDQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		post, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.BlogPost])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundf("blog post %s not found", id)
		}
		return nil, apperrors.MapDBError(err)
	}
	return &post, nil
}

// List retrieves blog posts with pagination, newest first.
func (r *BlogRepo) List(ctx context.Context, limit, offset int) ([]*model.BlogPost, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []model.BlogPost
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, blogListQuery, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.BlogPost])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list blog posts: %w", apperrors.MapDBError(err))
	}

	res := make([]*model.BlogPost, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of a blog post.
func (r *BlogRepo) Update(
	ctx context.Context,
	id string,
	req model.UpdateBlogPostRequest,
) (*model.BlogPost, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	setParts := make([]string, 0, 6)
	args := make([]any, 0, 7)
	nextIdx := func() int { return len(args) + 1 }

	if req.Title != nil {
		setParts = append(setParts, fmt.Sprintf("title = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Title))
	}
	if req.Content != nil {
		setParts = append(setParts, fmt.Sprintf("content = $%d", nextIdx()))
		args = append(args, *req.Content)
	}
	if req.Author != nil {
		setParts = append(setParts, fmt.Sprintf("author = $%d", nextIdx()))
		args = append(args, *req.Author)
	}
	if req.Category != nil {
		setParts = append(setParts, fmt.Sprintf("category = $%d", nextIdx()))
		args = append(args, *req.Category)
	}
	if req.Tags != nil {
		setParts = append(setParts, fmt.Sprintf("tags = $%d", nextIdx()))
		args = append(args, *req.Tags)
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	args = append(args, id)
	query := "UPDATE blog_posts SET " + strings.Join(setParts, ", ") +
		" WHERE id = $" + strconv.Itoa(len(args)) + " RETURNING " + blogColumnsSQL

	var out model.BlogPost
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.BlogPost])
		return e
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundf("blog post %s not found", id)
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Delete deletes a blog post by ID.
func (r *BlogRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
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
