package httpx

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/jobdeck/careers-api/internal/core"
	domainauth "github.com/jobdeck/careers-api/internal/domain/auth"
	"github.com/jobdeck/careers-api/internal/domain/model"
	apperrors "github.com/jobdeck/careers-api/internal/errors"
)

const (
	testTemplateID = "9a1b3c40-0000-0000-0000-000000000003"
	testBlogID     = "b4d8e6f2-0000-0000-0000-000000000004"
)

func TestHealthzRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newTestRouter(t, ctrl)

	rec := doJSON(t, router, http.MethodGet, "/healthz", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMetricsRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newTestRouter(t, ctrl)

	rec := doJSON(t, router, http.MethodGet, "/metrics", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTemplateRoutes_CRUDGated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newTestRouter(t, ctrl)

	// Every template verb requires elevation, including reads.
	for _, req := range []struct{ method, path string }{
		{http.MethodPost, "/api/templates"},
		{http.MethodGet, "/api/templates"},
		{http.MethodGet, "/api/templates/" + testTemplateID},
		{http.MethodPut, "/api/templates/" + testTemplateID},
		{http.MethodDelete, "/api/templates/" + testTemplateID},
	} {
		rec := doJSON(t, router, req.method, req.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", req.method, req.path)
	}
}

func TestTemplateRoutes_CreateDuplicateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	m.expectRole(domainauth.RoleAdmin)
	m.templates.EXPECT().
		Create(gomock.Any(), model.CreateEmailTemplateRequest{
			Status:  "approved",
			Subject: "Your application update",
			Body:    "<p>Hello</p>",
		}).
		Return(nil, apperrors.Conflict("a template for this status already exists"))

	rec := doJSON(t, router, http.MethodPost, "/api/templates", "admin-token", map[string]string{
		"status":  "approved",
		"subject": "Your application update",
		"body":    "<p>Hello</p>",
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "conflict")
}

func TestTemplateRoutes_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	m.expectRole(domainauth.RoleAdmin)
	m.templates.EXPECT().List(gomock.Any(), 20, 0).Return([]*model.EmailTemplate{
		{
			ID:        testTemplateID,
			Status:    model.ApplicationStatusApproved,
			Subject:   "Your application update",
			Body:      "<p>Hello</p>",
			CreatedAt: time.Now().UTC(),
		},
	}, nil)

	rec := doJSON(t, router, http.MethodGet, "/api/templates", "admin-token", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), testTemplateID)
}

func TestBlogRoutes_ReadsArePublic(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	m.blogs.EXPECT().List(gomock.Any(), 20, 0).Return([]*model.BlogPost{
		{
			ID:        testBlogID,
			Title:     "Engineering at scale",
			Content:   "Lorem ipsum",
			Author:    "Jane Doe",
			ImageURLs: []string{},
		},
	}, nil)

	rec := doJSON(t, router, http.MethodGet, "/api/blogs", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Engineering at scale")
}

func TestBlogRoutes_WritesAreGated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newTestRouter(t, ctrl)

	for _, req := range []struct{ method, path string }{
		{http.MethodPost, "/api/blogs"},
		{http.MethodPut, "/api/blogs/" + testBlogID},
		{http.MethodDelete, "/api/blogs/" + testBlogID},
	} {
		rec := doJSON(t, router, req.method, req.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", req.method, req.path)
	}
}

func TestBlogRoutes_CreateJSONBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	m.expectRole(domainauth.RoleAdmin)
	m.blogs.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params core.CreateBlogPostParams) (*model.BlogPost, error) {
			assert.Equal(t, "Engineering at scale", params.Request.Title)
			assert.Equal(t, "mock-user-1", params.Request.CreatedBy)
			return &model.BlogPost{
				ID:        testBlogID,
				Title:     params.Request.Title,
				Content:   params.Request.Content,
				Author:    params.Request.Author,
				ImageURLs: []string{},
			}, nil
		})

	rec := doJSON(t, router, http.MethodPost, "/api/blogs", "admin-token", map[string]any{
		"title":   "Engineering at scale",
		"content": "Lorem ipsum",
		"author":  "Jane Doe",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), testBlogID)
}

func TestBlogRoutes_DeleteMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	m.expectRole(domainauth.RoleAdmin)
	m.blogs.EXPECT().Delete(gomock.Any(), testBlogID).Return(false, nil)

	rec := doJSON(t, router, http.MethodDelete, "/api/blogs/"+testBlogID, "admin-token", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
