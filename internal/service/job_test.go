package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jobdeck/careers-api/internal/domain/model"
	apperrors "github.com/jobdeck/careers-api/internal/errors"
	"github.com/jobdeck/careers-api/internal/mocks"
)

const testJobID = "3f9d7a52-0000-0000-0000-000000000001"

func newTestJobService(t *testing.T, repo *mocks.MockJobRepository) *JobService {
	t.Helper()
	svc, err := NewJobService(JobServiceOptions{Repo: repo})
	require.NoError(t, err)
	return svc
}

func testJob(status model.JobStatus) *model.Job {
	return &model.Job{
		ID:          testJobID,
		Title:       "Backend Engineer",
		Department:  "Engineering",
		Description: "Build the careers backend",
		Status:      status,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestNewJobService_RequiredDependency(t *testing.T) {
	svc, err := NewJobService(JobServiceOptions{Repo: nil})

	require.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "JobRepository is required")
}

func TestJobService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockJobRepository(ctrl)
	svc := newTestJobService(t, repo)

	req := &model.CreateJobRequest{Title: "Backend Engineer", Description: "desc"}
	repo.EXPECT().Create(gomock.Any(), req).Return(testJob(model.JobStatusDraft), nil)

	job, err := svc.Create(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, model.JobStatusDraft, job.Status)
}

func TestJobService_Publish_FromDraft(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockJobRepository(ctrl)
	svc := newTestJobService(t, repo)

	repo.EXPECT().GetByID(gomock.Any(), testJobID).Return(testJob(model.JobStatusDraft), nil)
	repo.EXPECT().
		UpdateStatus(gomock.Any(), testJobID, model.JobStatusLive).
		Return(testJob(model.JobStatusLive), nil)

	job, err := svc.Publish(context.Background(), testJobID)

	require.NoError(t, err)
	assert.Equal(t, model.JobStatusLive, job.Status)
}

func TestJobService_Publish_FromClosedRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockJobRepository(ctrl)
	svc := newTestJobService(t, repo)

	repo.EXPECT().GetByID(gomock.Any(), testJobID).Return(testJob(model.JobStatusClosed), nil)

	_, err := svc.Publish(context.Background(), testJobID)

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "cannot move from closed to live")
}

func TestJobService_Close_FromLive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockJobRepository(ctrl)
	svc := newTestJobService(t, repo)

	repo.EXPECT().GetByID(gomock.Any(), testJobID).Return(testJob(model.JobStatusLive), nil)
	repo.EXPECT().
		UpdateStatus(gomock.Any(), testJobID, model.JobStatusClosed).
		Return(testJob(model.JobStatusClosed), nil)

	job, err := svc.Close(context.Background(), testJobID)

	require.NoError(t, err)
	assert.Equal(t, model.JobStatusClosed, job.Status)
}

func TestJobService_Close_FromDraftRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockJobRepository(ctrl)
	svc := newTestJobService(t, repo)

	repo.EXPECT().GetByID(gomock.Any(), testJobID).Return(testJob(model.JobStatusDraft), nil)

	_, err := svc.Close(context.Background(), testJobID)

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestJobService_Publish_MissingJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockJobRepository(ctrl)
	svc := newTestJobService(t, repo)

	repo.EXPECT().
		GetByID(gomock.Any(), testJobID).
		Return(nil, apperrors.NotFoundf("job %s not found", testJobID))

	_, err := svc.Publish(context.Background(), testJobID)

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestJobService_ListLive_ForcesStatusFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockJobRepository(ctrl)
	svc := newTestJobService(t, repo)

	repo.EXPECT().
		ListWithOptions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, opts model.JobsListOptions) ([]*model.Job, error) {
			require.NotNil(t, opts.Status)
			assert.Equal(t, model.JobStatusLive, *opts.Status)
			return []*model.Job{testJob(model.JobStatusLive)}, nil
		})

	draft := model.JobStatusDraft
	jobs, err := svc.ListLive(context.Background(), model.JobsListOptions{Status: &draft})

	require.NoError(t, err)
	assert.Len(t, jobs, 1)
}

func TestJobService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockJobRepository(ctrl)
	svc := newTestJobService(t, repo)

	repo.EXPECT().Delete(gomock.Any(), testJobID).Return(true, nil)

	require.NoError(t, svc.Delete(context.Background(), testJobID))
}

func TestJobService_Delete_Missing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockJobRepository(ctrl)
	svc := newTestJobService(t, repo)

	repo.EXPECT().Delete(gomock.Any(), testJobID).Return(false, nil)

	err := svc.Delete(context.Background(), testJobID)

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestJobService_Delete_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockJobRepository(ctrl)
	svc := newTestJobService(t, repo)

	wantErr := errors.New("connection refused")
	repo.EXPECT().Delete(gomock.Any(), testJobID).Return(false, wantErr)

	err := svc.Delete(context.Background(), testJobID)

	assert.ErrorIs(t, err, wantErr)
}
