package data

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobdeck/careers-api/internal/domain/model"
	apperrors "github.com/jobdeck/careers-api/internal/errors"
	"github.com/jobdeck/careers-api/internal/testutil"
)

func TestEmailTemplateRepo_Integration_CreateAndStatusKey(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewEmailTemplateRepo(db)

		created, err := repo.Create(context.Background(),
			*testutil.TemplateRequest(model.ApplicationStatusApproved))
		require.NoError(t, err)
		assert.Equal(t, model.ApplicationStatusApproved, created.Status)
		assert.NotEmpty(t, created.ID)

		// One template per status
		_, err = repo.Create(context.Background(),
			*testutil.TemplateRequest(model.ApplicationStatusApproved))
		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err))

		byStatus, err := repo.GetByStatus(context.Background(), model.ApplicationStatusApproved)
		require.NoError(t, err)
		assert.Equal(t, created.ID, byStatus.ID)

		_, err = repo.GetByStatus(context.Background(), model.ApplicationStatusRejected)
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestEmailTemplateRepo_Integration_UpdateAndList(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewEmailTemplateRepo(db)

		statuses := []model.ApplicationStatus{
			model.ApplicationStatusApplied,
			model.ApplicationStatusUnderReview,
		}
		var firstID string
		for _, status := range statuses {
			tmpl, err := repo.Create(context.Background(), *testutil.TemplateRequest(status))
			require.NoError(t, err)
			if firstID == "" {
				firstID = tmpl.ID
			}
		}

		updated, err := repo.Update(context.Background(), firstID, model.UpdateEmailTemplateRequest{
			Subject: testutil.StringPtr("Application received"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Application received", updated.Subject)

		all, err := repo.List(context.Background(), 10, 0)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		_, err = repo.Update(context.Background(), "00000000-0000-0000-0000-000000000000",
			model.UpdateEmailTemplateRequest{Subject: testutil.StringPtr("x")})
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestEmailTemplateRepo_Integration_Delete(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewEmailTemplateRepo(db)

		tmpl, err := repo.Create(context.Background(),
			*testutil.TemplateRequest(model.ApplicationStatusRejected))
		require.NoError(t, err)

		deleted, err := repo.Delete(context.Background(), tmpl.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.Delete(context.Background(), tmpl.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}
