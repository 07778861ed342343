package httpx

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	domainauth "github.com/jobdeck/careers-api/internal/domain/auth"
	apperrors "github.com/jobdeck/careers-api/internal/errors"
)

func TestAuthRoutes_SignUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newTestRouter(t, ctrl)

	rec := doJSON(t, router, http.MethodPost, "/signup", "", map[string]string{
		"email":    "new.user@example.com",
		"password": "hunter2hunter2",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_id":"mock-user-1"`)
}

func TestAuthRoutes_SignUpValidation(t *testing.T) {
	tests := []struct {
		name string
		body map[string]string
	}{
		{name: "missing email", body: map[string]string{"password": "hunter2hunter2"}},
		{name: "bad email", body: map[string]string{"email": "nope", "password": "hunter2hunter2"}},
		{name: "short password", body: map[string]string{"email": "a@example.com", "password": "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			router, _ := newTestRouter(t, ctrl)

			rec := doJSON(t, router, http.MethodPost, "/signup", "", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAuthRoutes_SignIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newTestRouter(t, ctrl)

	rec := doJSON(t, router, http.MethodPost, "/login", "", map[string]string{
		"email":    "mock.user@example.com",
		"password": "hunter2hunter2",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"access_token":"mock-token"`)
}

func TestAuthRoutes_SignInUpstreamFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	m.idp.SignInFunc = func(_ context.Context, _, _ string) (domainauth.Credentials, error) {
		return domainauth.Credentials{}, apperrors.Unauthenticated("invalid credentials")
	}

	rec := doJSON(t, router, http.MethodPost, "/login", "", map[string]string{
		"email":    "mock.user@example.com",
		"password": "wrong-password",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "unauthenticated")
}

func TestAuthRoutes_Status(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	m.expectRole(domainauth.RoleSubadmin)

	rec := doJSON(t, router, http.MethodGet, "/auth/status", "valid-token", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"subadmin"`)
	assert.Contains(t, rec.Body.String(), `"elevated":true`)
}

func TestAuthRoutes_StatusNoRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	m.expectNoRole()

	rec := doJSON(t, router, http.MethodGet, "/auth/status", "valid-token", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"elevated":false`)
}
