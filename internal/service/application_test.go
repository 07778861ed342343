package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jobdeck/careers-api/internal/core"
	"github.com/jobdeck/careers-api/internal/domain/model"
	apperrors "github.com/jobdeck/careers-api/internal/errors"
	"github.com/jobdeck/careers-api/internal/mocks"
)

const testApplicationID = "7c2e4b10-0000-0000-0000-000000000002"

type applicationServiceMocks struct {
	repo    *mocks.MockApplicationRepository
	jobs    *mocks.MockJobRepository
	objects *mocks.MockObjectStore
}

func newTestApplicationService(t *testing.T, ctrl *gomock.Controller) (*ApplicationService, applicationServiceMocks) {
	t.Helper()

	m := applicationServiceMocks{
		repo:    mocks.NewMockApplicationRepository(ctrl),
		jobs:    mocks.NewMockJobRepository(ctrl),
		objects: mocks.NewMockObjectStore(ctrl),
	}
	svc, err := NewApplicationService(ApplicationServiceOptions{
		Repo:    m.repo,
		Jobs:    m.jobs,
		Objects: m.objects,
	})
	require.NoError(t, err)
	return svc, m
}

func testSubmitRequest() *model.SubmitApplicationRequest {
	return &model.SubmitApplicationRequest{
		JobID:          testJobID,
		UserID:         "user-1",
		ApplicantEmail: "jane@example.com",
		ApplicantName:  "Jane Doe",
	}
}

func testApplication() *model.Application {
	return &model.Application{
		ID:             testApplicationID,
		JobID:          testJobID,
		UserID:         "user-1",
		ApplicantEmail: "jane@example.com",
		ApplicantName:  "Jane Doe",
		Status:         model.ApplicationStatusApplied,
		CreatedAt:      time.Now().UTC(),
	}
}

func TestNewApplicationService_RequiredDependencies(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, err := NewApplicationService(ApplicationServiceOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ApplicationRepository is required")

	_, err = NewApplicationService(ApplicationServiceOptions{
		Repo: mocks.NewMockApplicationRepository(ctrl),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JobRepository is required")
}

func TestApplicationService_Submit_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestApplicationService(t, ctrl)
	req := testSubmitRequest()

	m.jobs.EXPECT().GetByID(gomock.Any(), testJobID).Return(testJob(model.JobStatusLive), nil)
	m.repo.EXPECT().
		Create(gomock.Any(), core.CreateApplicationParams{Request: req}).
		Return(testApplication(), nil)

	app, err := svc.Submit(context.Background(), req, nil)

	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusApplied, app.Status)
}

func TestApplicationService_Submit_WithResumeUpload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestApplicationService(t, ctrl)
	req := testSubmitRequest()
	resume := []byte("%PDF-1.7 fake resume")

	m.jobs.EXPECT().GetByID(gomock.Any(), testJobID).Return(testJob(model.JobStatusLive), nil)
	m.repo.EXPECT().HasApplied(gomock.Any(), testJobID, "jane@example.com").Return(false, nil)
	m.objects.EXPECT().
		Put(gomock.Any(), gomock.Any(), resume, "application/pdf").
		DoAndReturn(func(_ context.Context, key string, _ []byte, _ string) (string, error) {
			assert.True(t, strings.HasPrefix(key, "resumes/"+testJobID+"/"))
			assert.True(t, strings.HasSuffix(key, ".pdf"))
			return "https://cdn.example.com/" + key, nil
		})
	m.repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params core.CreateApplicationParams) (*model.Application, error) {
			require.NotNil(t, params.ResumeURL)
			assert.Contains(t, *params.ResumeURL, "resumes/")
			return testApplication(), nil
		})

	_, err := svc.Submit(context.Background(), req, resume)

	require.NoError(t, err)
}

func TestApplicationService_Submit_MissingJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestApplicationService(t, ctrl)

	m.jobs.EXPECT().
		GetByID(gomock.Any(), testJobID).
		Return(nil, apperrors.NotFoundf("job %s not found", testJobID))

	_, err := svc.Submit(context.Background(), testSubmitRequest(), nil)

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestApplicationService_Submit_JobNotLive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestApplicationService(t, ctrl)

	m.jobs.EXPECT().GetByID(gomock.Any(), testJobID).Return(testJob(model.JobStatusDraft), nil)

	_, err := svc.Submit(context.Background(), testSubmitRequest(), nil)

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "not accepting applications")
}

func TestApplicationService_Submit_InvalidRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestApplicationService(t, ctrl)

	req := testSubmitRequest()
	req.ApplicantEmail = "not-an-email"

	_, err := svc.Submit(context.Background(), req, nil)

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestApplicationService_Submit_DuplicateConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestApplicationService(t, ctrl)
	req := testSubmitRequest()

	m.jobs.EXPECT().GetByID(gomock.Any(), testJobID).Return(testJob(model.JobStatusLive), nil)
	m.repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(nil, apperrors.Conflict("Application already exists"))

	_, err := svc.Submit(context.Background(), req, nil)

	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestApplicationService_Submit_DuplicateSkipsResumeUpload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestApplicationService(t, ctrl)
	req := testSubmitRequest()

	m.jobs.EXPECT().GetByID(gomock.Any(), testJobID).Return(testJob(model.JobStatusLive), nil)
	m.repo.EXPECT().HasApplied(gomock.Any(), testJobID, "jane@example.com").Return(true, nil)
	// No Put and no Create expectations: a known duplicate must not
	// store a resume or touch the ledger.

	_, err := svc.Submit(context.Background(), req, []byte("%PDF-1.7"))

	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestApplicationService_Submit_DuplicateCheckErrorFallsThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestApplicationService(t, ctrl)
	req := testSubmitRequest()
	resume := []byte("%PDF-1.7")

	m.jobs.EXPECT().GetByID(gomock.Any(), testJobID).Return(testJob(model.JobStatusLive), nil)
	m.repo.EXPECT().
		HasApplied(gomock.Any(), testJobID, "jane@example.com").
		Return(false, errors.New("connection refused"))
	m.objects.EXPECT().
		Put(gomock.Any(), gomock.Any(), resume, "application/pdf").
		Return("https://cdn.example.com/resumes/r.pdf", nil)
	m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(testApplication(), nil)

	_, err := svc.Submit(context.Background(), req, resume)

	require.NoError(t, err)
}

func TestApplicationService_Submit_UploadFailureSkipsInsert(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestApplicationService(t, ctrl)
	resume := []byte("%PDF-1.7")

	m.jobs.EXPECT().GetByID(gomock.Any(), testJobID).Return(testJob(model.JobStatusLive), nil)
	m.repo.EXPECT().HasApplied(gomock.Any(), testJobID, "jane@example.com").Return(false, nil)
	m.objects.EXPECT().
		Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", apperrors.Upstream("storage", "upload 503"))
	// No repo.Create expectation: a failed upload must not insert a row.

	_, err := svc.Submit(context.Background(), testSubmitRequest(), resume)

	require.Error(t, err)
	assert.True(t, apperrors.IsUpstream(err))
}

func TestApplicationService_Transition_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestApplicationService(t, ctrl)

	approved := testApplication()
	approved.Status = model.ApplicationStatusApproved

	m.repo.EXPECT().
		TransitionStatus(gomock.Any(), core.TransitionStatusParams{
			ID:     testApplicationID,
			Status: model.ApplicationStatusApproved,
		}).
		Return(approved, nil)

	app, err := svc.Transition(context.Background(), testApplicationID, "Approved")

	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusApproved, app.Status)
}

func TestApplicationService_Transition_InvalidStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestApplicationService(t, ctrl)

	_, err := svc.Transition(context.Background(), testApplicationID, "archived")

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestApplicationService_Renotify(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestApplicationService(t, ctrl)

	m.repo.EXPECT().
		EnqueueNotification(gomock.Any(), testApplicationID).
		Return(&model.EmailNotification{
			ID:            "n-1",
			ApplicationID: testApplicationID,
			State:         model.NotificationStatePending,
		}, nil)

	n, err := svc.Renotify(context.Background(), testApplicationID)

	require.NoError(t, err)
	assert.Equal(t, model.NotificationStatePending, n.State)
}

func TestApplicationService_Withdraw_Owner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestApplicationService(t, ctrl)

	m.repo.EXPECT().GetByID(gomock.Any(), testApplicationID).Return(testApplication(), nil)
	m.repo.EXPECT().Delete(gomock.Any(), testApplicationID).Return(true, nil)

	require.NoError(t, svc.Withdraw(context.Background(), testApplicationID, "user-1"))
}

func TestApplicationService_Withdraw_WrongOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestApplicationService(t, ctrl)

	m.repo.EXPECT().GetByID(gomock.Any(), testApplicationID).Return(testApplication(), nil)
	// No Delete expectation: ownership failures must not delete.

	err := svc.Withdraw(context.Background(), testApplicationID, "someone-else")

	require.Error(t, err)
	assert.True(t, apperrors.IsForbidden(err))
}

func TestApplicationService_Withdraw_Missing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestApplicationService(t, ctrl)

	m.repo.EXPECT().
		GetByID(gomock.Any(), testApplicationID).
		Return(nil, apperrors.NotFoundf("application %s not found", testApplicationID))

	err := svc.Withdraw(context.Background(), testApplicationID, "user-1")

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestApplicationService_CountApplicants(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestApplicationService(t, ctrl)

	m.jobs.EXPECT().GetByID(gomock.Any(), testJobID).Return(testJob(model.JobStatusLive), nil)
	m.repo.EXPECT().CountDistinctApplicants(gomock.Any(), testJobID).Return(7, nil)

	count, err := svc.CountApplicants(context.Background(), testJobID)

	require.NoError(t, err)
	assert.Equal(t, 7, count)
}

func TestApplicationService_CountApplicants_MissingJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestApplicationService(t, ctrl)

	m.jobs.EXPECT().
		GetByID(gomock.Any(), testJobID).
		Return(nil, apperrors.NotFoundf("job %s not found", testJobID))

	_, err := svc.CountApplicants(context.Background(), testJobID)

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestApplicationService_ListMine(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestApplicationService(t, ctrl)

	m.repo.EXPECT().
		ListByEmail(gomock.Any(), "jane@example.com").
		Return([]*model.ApplicationSummary{{ID: testApplicationID}}, nil)

	out, err := svc.ListMine(context.Background(), "jane@example.com")

	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestApplicationService_ListMine_EmptyEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestApplicationService(t, ctrl)

	_, err := svc.ListMine(context.Background(), "")

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestApplicationService_Remove_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestApplicationService(t, ctrl)

	wantErr := errors.New("connection refused")
	m.repo.EXPECT().Delete(gomock.Any(), testApplicationID).Return(false, wantErr)

	assert.ErrorIs(t, svc.Remove(context.Background(), testApplicationID), wantErr)
}
