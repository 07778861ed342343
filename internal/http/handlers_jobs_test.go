package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jobdeck/careers-api/internal/core"
	domainauth "github.com/jobdeck/careers-api/internal/domain/auth"
	"github.com/jobdeck/careers-api/internal/domain/model"
	apperrors "github.com/jobdeck/careers-api/internal/errors"
)

const testJobID = "3f9d7a52-0000-0000-0000-000000000001"

func testJob(status model.JobStatus) *model.Job {
	return &model.Job{
		ID:          testJobID,
		Title:       "Backend Engineer",
		Department:  "Engineering",
		Description: "Build and run Go services",
		Location:    "Minneapolis, MN",
		Status:      status,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	r := httptest.NewRequest(method, path, reader)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	return rec
}

func TestJobRoutes_CreateRequiresElevated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newTestRouter(t, ctrl)

	rec := doJSON(t, router, http.MethodPost, "/api/jobs", "", map[string]string{"title": "x"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJobRoutes_CreateAsAdmin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	m.expectRole(domainauth.RoleAdmin)
	m.jobs.EXPECT().
		Create(gomock.Any(), &model.CreateJobRequest{
			Title:       "Backend Engineer",
			Description: "Build and run Go services",
		}).
		Return(testJob(model.JobStatusDraft), nil)

	rec := doJSON(t, router, http.MethodPost, "/api/jobs", "admin-token", map[string]string{
		"title":       "Backend Engineer",
		"description": "Build and run Go services",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), testJobID)
}

func TestJobRoutes_ListDefaultsToLive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	m.jobs.EXPECT().
		ListWithOptions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, opts model.JobsListOptions) ([]*model.Job, error) {
			require.NotNil(t, opts.Status)
			assert.Equal(t, model.JobStatusLive, *opts.Status)
			return []*model.Job{testJob(model.JobStatusLive)}, nil
		})

	rec := doJSON(t, router, http.MethodGet, "/api/jobs", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Backend Engineer")
}

func TestJobRoutes_ListExplicitStatusFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	m.jobs.EXPECT().
		ListWithOptions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, opts model.JobsListOptions) ([]*model.Job, error) {
			require.NotNil(t, opts.Status)
			assert.Equal(t, model.JobStatusDraft, *opts.Status)
			return []*model.Job{testJob(model.JobStatusDraft)}, nil
		})

	rec := doJSON(t, router, http.MethodGet, "/api/jobs?status=draft", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJobRoutes_ListInvalidStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newTestRouter(t, ctrl)

	rec := doJSON(t, router, http.MethodGet, "/api/jobs?status=archived", "", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_status")
}

func TestJobRoutes_GetByIDMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	m.jobs.EXPECT().
		GetByID(gomock.Any(), testJobID).
		Return(nil, apperrors.NotFoundf("job %s not found", testJobID))

	rec := doJSON(t, router, http.MethodGet, "/api/jobs/"+testJobID, "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}

func TestJobRoutes_PublishDraft(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	m.expectRole(domainauth.RoleSubadmin)
	m.jobs.EXPECT().GetByID(gomock.Any(), testJobID).Return(testJob(model.JobStatusDraft), nil)
	m.jobs.EXPECT().
		UpdateStatus(gomock.Any(), testJobID, model.JobStatusLive).
		Return(testJob(model.JobStatusLive), nil)

	rec := doJSON(t, router, http.MethodPatch, "/api/jobs/"+testJobID+"/publish", "admin-token", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"live"`)
}

func TestJobRoutes_PublishClosedRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	m.expectRole(domainauth.RoleAdmin)
	m.jobs.EXPECT().GetByID(gomock.Any(), testJobID).Return(testJob(model.JobStatusClosed), nil)
	// No UpdateStatus expectation: an illegal move must not write.

	rec := doJSON(t, router, http.MethodPatch, "/api/jobs/"+testJobID+"/publish", "admin-token", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "cannot move from closed to live")
}

func TestJobRoutes_ApplyMultipart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	m.jobs.EXPECT().GetByID(gomock.Any(), testJobID).Return(testJob(model.JobStatusLive), nil)
	m.applications.EXPECT().
		HasApplied(gomock.Any(), testJobID, "jane@example.com").
		Return(false, nil)
	m.objects.EXPECT().
		Put(gomock.Any(), gomock.Any(), []byte("%PDF-1.7 fake"), "application/pdf").
		DoAndReturn(func(_ context.Context, key string, _ []byte, _ string) (string, error) {
			assert.True(t, strings.HasPrefix(key, "resumes/"+testJobID+"/"))
			return "https://cdn.example.com/" + key, nil
		})
	m.applications.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params core.CreateApplicationParams) (*model.Application, error) {
			assert.Equal(t, testJobID, params.Request.JobID)
			assert.Equal(t, "mock-user-1", params.Request.UserID)
			assert.Equal(t, "jane@example.com", params.Request.ApplicantEmail)
			require.NotNil(t, params.ResumeURL)
			return &model.Application{
				ID:             "app-1",
				JobID:          testJobID,
				UserID:         "mock-user-1",
				ApplicantEmail: "jane@example.com",
				ApplicantName:  "Jane Doe",
				Status:         model.ApplicationStatusApplied,
			}, nil
		})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("email", "jane@example.com"))
	require.NoError(t, mw.WriteField("name", "Jane Doe"))
	part, err := mw.CreateFormFile("resume", "resume.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.7 fake"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/api/jobs/"+testJobID+"/apply", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	r.Header.Set("Authorization", "Bearer applicant-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"applied"`)
}

func TestJobRoutes_ApplyRequiresAuth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newTestRouter(t, ctrl)

	rec := doJSON(t, router, http.MethodPost, "/api/jobs/"+testJobID+"/apply", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJobRoutes_ApplicantsCount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	m.jobs.EXPECT().GetByID(gomock.Any(), testJobID).Return(testJob(model.JobStatusLive), nil)
	m.applications.EXPECT().CountDistinctApplicants(gomock.Any(), testJobID).Return(7, nil)

	rec := doJSON(t, router, http.MethodGet, "/api/jobs/"+testJobID+"/applicants/count", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"applicants":7`)
}

func TestJobRoutes_DeleteAsAdmin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	m.expectRole(domainauth.RoleAdmin)
	m.jobs.EXPECT().Delete(gomock.Any(), testJobID).Return(true, nil)

	rec := doJSON(t, router, http.MethodDelete, "/api/jobs/"+testJobID, "admin-token", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"deleted":true`)
}
