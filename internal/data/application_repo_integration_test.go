package data

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobdeck/careers-api/internal/core"
	"github.com/jobdeck/careers-api/internal/domain/model"
	apperrors "github.com/jobdeck/careers-api/internal/errors"
	"github.com/jobdeck/careers-api/internal/testutil"
)

// createTestJob inserts a live posting applications can reference.
func createTestJob(t *testing.T, db *sql.DB) *model.Job {
	t.Helper()
	repo := NewJobRepo(db)
	job, err := repo.Create(context.Background(), testutil.DraftJobRequest("Test Opening"))
	require.NoError(t, err)
	job, err = repo.UpdateStatus(context.Background(), job.ID, model.JobStatusLive)
	require.NoError(t, err)
	return job
}

func TestApplicationRepo_Integration_CreateAndDuplicate(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		job := createTestJob(t, db)
		repo := NewApplicationRepo(db)

		req := testutil.NewApplicationRequest().
			WithJobID(job.ID).
			WithPhone("+1-555-0100").
			Build()

		app, err := repo.Create(context.Background(), core.CreateApplicationParams{
			Request:   req,
			ResumeURL: testutil.StringPtr("https://cdn.example.com/resumes/abc.pdf"),
		})
		require.NoError(t, err)
		assert.Equal(t, model.ApplicationStatusApplied, app.Status)
		assert.Equal(t, job.ID, app.JobID)
		require.NotNil(t, app.ResumeURL)
		assert.Equal(t, "https://cdn.example.com/resumes/abc.pdf", *app.ResumeURL)

		// Same applicant email on the same posting hits the unique constraint
		_, err = repo.Create(context.Background(), core.CreateApplicationParams{Request: req})
		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err))

		// Same email on a different posting is fine
		otherJob := createTestJob(t, db)
		otherReq := testutil.NewApplicationRequest().WithJobID(otherJob.ID).Build()
		_, err = repo.Create(context.Background(), core.CreateApplicationParams{Request: otherReq})
		require.NoError(t, err)
	})
}

func TestApplicationRepo_Integration_ListByEmailAndCount(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		job := createTestJob(t, db)
		repo := NewApplicationRepo(db)

		emails := []string{"one@example.com", "two@example.com"}
		for _, email := range emails {
			_, err := repo.Create(context.Background(), core.CreateApplicationParams{
				Request: testutil.NewApplicationRequest().WithJobID(job.ID).WithEmail(email).Build(),
			})
			require.NoError(t, err)
		}

		summaries, err := repo.ListByEmail(context.Background(), "one@example.com")
		require.NoError(t, err)
		require.Len(t, summaries, 1)
		assert.Equal(t, model.ApplicationStatusApplied, summaries[0].Status)

		summaries, err = repo.ListByEmail(context.Background(), "missing@example.com")
		require.NoError(t, err)
		assert.Empty(t, summaries)

		count, err := repo.CountDistinctApplicants(context.Background(), job.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})
}

func TestApplicationRepo_Integration_TransitionStatusWritesOutbox(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		job := createTestJob(t, db)
		appRepo := NewApplicationRepo(db)
		outbox := NewNotificationRepo(db)

		app, err := appRepo.Create(context.Background(), core.CreateApplicationParams{
			Request: testutil.NewApplicationRequest().WithJobID(job.ID).Build(),
		})
		require.NoError(t, err)

		moved, err := appRepo.TransitionStatus(context.Background(), core.TransitionStatusParams{
			ID:     app.ID,
			Status: model.ApplicationStatusUnderReview,
		})
		require.NoError(t, err)
		assert.Equal(t, model.ApplicationStatusUnderReview, moved.Status)

		// The status write and the outbox insert land together
		notifications, err := outbox.ListByApplication(context.Background(), app.ID)
		require.NoError(t, err)
		require.Len(t, notifications, 1)
		assert.Equal(t, model.NotificationStatePending, notifications[0].State)
		assert.Equal(t, model.ApplicationStatusUnderReview, notifications[0].Status)
		assert.Equal(t, app.ApplicantEmail, notifications[0].Recipient)

		_, err = appRepo.TransitionStatus(context.Background(), core.TransitionStatusParams{
			ID:     "00000000-0000-0000-0000-000000000000",
			Status: model.ApplicationStatusApproved,
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestApplicationRepo_Integration_EnqueueNotification(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		job := createTestJob(t, db)
		repo := NewApplicationRepo(db)

		app, err := repo.Create(context.Background(), core.CreateApplicationParams{
			Request: testutil.NewApplicationRequest().WithJobID(job.ID).Build(),
		})
		require.NoError(t, err)

		n, err := repo.EnqueueNotification(context.Background(), app.ID)
		require.NoError(t, err)
		assert.Equal(t, app.ID, n.ApplicationID)
		assert.Equal(t, model.NotificationStatePending, n.State)
		assert.Equal(t, model.ApplicationStatusApplied, n.Status)

		_, err = repo.EnqueueNotification(context.Background(), "00000000-0000-0000-0000-000000000000")
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestApplicationRepo_Integration_Delete(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		job := createTestJob(t, db)
		repo := NewApplicationRepo(db)

		app, err := repo.Create(context.Background(), core.CreateApplicationParams{
			Request: testutil.NewApplicationRequest().WithJobID(job.ID).Build(),
		})
		require.NoError(t, err)

		deleted, err := repo.Delete(context.Background(), app.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.Delete(context.Background(), app.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestApplicationRepo_Integration_HasApplied(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		job := createTestJob(t, db)
		repo := NewApplicationRepo(db)

		req := testutil.NewApplicationRequest().WithJobID(job.ID).Build()
		_, err := repo.Create(context.Background(), core.CreateApplicationParams{Request: req})
		require.NoError(t, err)

		applied, err := repo.HasApplied(context.Background(), job.ID, req.ApplicantEmail)
		require.NoError(t, err)
		assert.True(t, applied)

		applied, err = repo.HasApplied(context.Background(), job.ID, "someone-else@example.com")
		require.NoError(t, err)
		assert.False(t, applied)

		otherJob := createTestJob(t, db)
		applied, err = repo.HasApplied(context.Background(), otherJob.ID, req.ApplicantEmail)
		require.NoError(t, err)
		assert.False(t, applied)
	})
}
