package httpx

import (
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/jobdeck/careers-api/internal/domain/auth"
	apperrors "github.com/jobdeck/careers-api/internal/errors"
	"github.com/jobdeck/careers-api/internal/mocks"
	authmocks "github.com/jobdeck/careers-api/internal/mocks/auth"
	"github.com/jobdeck/careers-api/internal/service"
)

// routerMocks exposes the repositories and fakes behind a test router so
// tests can set expectations per request.
type routerMocks struct {
	idp          *authmocks.MockIdentityProvider
	roles        *mocks.MockRoleRepository
	jobs         *mocks.MockJobRepository
	applications *mocks.MockApplicationRepository
	templates    *mocks.MockEmailTemplateRepository
	blogs        *mocks.MockBlogRepository
	objects      *mocks.MockObjectStore
}

func newTestRouter(t *testing.T, ctrl *gomock.Controller) (http.Handler, *routerMocks) {
	t.Helper()

	m := &routerMocks{
		idp:          authmocks.NewMockIdentityProvider(),
		roles:        mocks.NewMockRoleRepository(ctrl),
		jobs:         mocks.NewMockJobRepository(ctrl),
		applications: mocks.NewMockApplicationRepository(ctrl),
		templates:    mocks.NewMockEmailTemplateRepository(ctrl),
		blogs:        mocks.NewMockBlogRepository(ctrl),
		objects:      mocks.NewMockObjectStore(ctrl),
	}

	authSvc, err := service.NewAuthService(service.AuthServiceOptions{
		Provider: m.idp,
		Roles:    m.roles,
	})
	require.NoError(t, err)

	jobSvc, err := service.NewJobService(service.JobServiceOptions{Repo: m.jobs})
	require.NoError(t, err)

	appSvc, err := service.NewApplicationService(service.ApplicationServiceOptions{
		Repo:    m.applications,
		Jobs:    m.jobs,
		Objects: m.objects,
	})
	require.NoError(t, err)

	templateSvc, err := service.NewEmailTemplateService(service.EmailTemplateServiceOptions{
		Repo: m.templates,
	})
	require.NoError(t, err)

	blogSvc, err := service.NewBlogService(service.BlogServiceOptions{
		Repo:    m.blogs,
		Objects: m.objects,
	})
	require.NoError(t, err)

	router := NewRouter(RouterServices{
		Auth:         authSvc,
		Jobs:         jobSvc,
		Applications: appSvc,
		Templates:    templateSvc,
		Blogs:        blogSvc,
		Registry:     prometheus.NewRegistry(),
	})
	return router, m
}

// expectRole arranges the next role lookup for the default mock caller.
func (m *routerMocks) expectRole(role domainauth.Role) {
	m.roles.EXPECT().
		GetRole(gomock.Any(), "mock-user-1").
		Return(role, nil)
}

// expectNoRole arranges a role lookup miss for the default mock caller.
func (m *routerMocks) expectNoRole() {
	m.roles.EXPECT().
		GetRole(gomock.Any(), "mock-user-1").
		Return(domainauth.RoleNone, apperrors.NotFound("no role recorded"))
}
