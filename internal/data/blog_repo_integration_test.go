package data

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobdeck/careers-api/internal/core"
	"github.com/jobdeck/careers-api/internal/domain/model"
	apperrors "github.com/jobdeck/careers-api/internal/errors"
	"github.com/jobdeck/careers-api/internal/testutil"
)

func TestBlogRepo_Integration_CreateAndGet(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewBlogRepo(db)

		created, err := repo.Create(context.Background(), core.CreateBlogPostParams{
			Request:      testutil.BlogPostRequest(),
			ThumbnailURL: testutil.StringPtr("https://cdn.example.com/thumbs/1.png"),
			ImageURLs:    []string{"https://cdn.example.com/images/1.png"},
		})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "Engineering at Scale", created.Title)
		assert.Equal(t, []string{"go", "backend"}, created.Tags)
		require.NotNil(t, created.ThumbnailURL)
		assert.Equal(t, "https://cdn.example.com/thumbs/1.png", *created.ThumbnailURL)
		assert.Equal(t, []string{"https://cdn.example.com/images/1.png"}, created.ImageURLs)

		got, err := repo.GetByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "test-user-1", got.CreatedBy)

		_, err = repo.GetByID(context.Background(), "00000000-0000-0000-0000-000000000000")
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestBlogRepo_Integration_ListOrdersNewestFirst(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		fixed := testutil.TestTime()
		tp := NewFixedTimeProvider(fixed)
		repo := NewBlogRepoWithTimeProvider(db, tp)

		titles := []string{"First Post", "Second Post", "Third Post"}
		for _, title := range titles {
			req := testutil.BlogPostRequest()
			req.Title = title
			_, err := repo.Create(context.Background(), core.CreateBlogPostParams{Request: req})
			require.NoError(t, err)
			tp.AddTime(time.Minute)
		}

		posts, err := repo.List(context.Background(), 2, 0)
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, "Third Post", posts[0].Title)
		assert.Equal(t, "Second Post", posts[1].Title)

		posts, err = repo.List(context.Background(), 2, 2)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "First Post", posts[0].Title)
	})
}

func TestBlogRepo_Integration_UpdateAndDelete(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewBlogRepo(db)

		post, err := repo.Create(context.Background(), core.CreateBlogPostParams{
			Request: testutil.BlogPostRequest(),
		})
		require.NoError(t, err)

		newTags := []string{"culture"}
		updated, err := repo.Update(context.Background(), post.ID, model.UpdateBlogPostRequest{
			Title: testutil.StringPtr("Hiring Well"),
			Tags:  &newTags,
		})
		require.NoError(t, err)
		assert.Equal(t, "Hiring Well", updated.Title)
		assert.Equal(t, newTags, updated.Tags)
		assert.Equal(t, post.Content, updated.Content)

		deleted, err := repo.Delete(context.Background(), post.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		_, err = repo.GetByID(context.Background(), post.ID)
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}
