package httpx

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jobdeck/careers-api/internal/observability/metrics"
	"github.com/jobdeck/careers-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth         *service.AuthService
	Jobs         *service.JobService
	Applications *service.ApplicationService
	Templates    *service.EmailTemplateService
	Blogs        *service.BlogService

	// Optional: Prometheus registry backing /metrics. Nil disables the
	// endpoint and the per-request collectors.
	Registry   *prometheus.Registry
	Collectors *metrics.Collectors

	Logger *slog.Logger // Logger for request and panic logging (optional)
}

// NewRouter creates and configures the HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	requireAuth := RequireAuth(services.Auth)
	requireElevated := RequireElevated(services.Auth)

	authHandlers := &AuthHandlers{Svc: services.Auth, Logger: services.Logger}
	jobHandlers := &JobHandlers{Svc: services.Jobs, Applications: services.Applications}
	appHandlers := &ApplicationHandlers{Svc: services.Applications, Auth: services.Auth}
	templateHandlers := &EmailTemplateHandlers{Svc: services.Templates}
	blogHandlers := &BlogHandlers{Svc: services.Blogs}

	registerAuthRoutes(mux, authHandlers, requireAuth)
	registerJobRoutes(mux, jobHandlers, requireAuth, requireElevated)
	registerApplicationRoutes(mux, appHandlers, requireAuth, requireElevated)
	registerTemplateRoutes(mux, templateHandlers, requireElevated)
	registerBlogRoutes(mux, blogHandlers, requireElevated)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	if services.Registry != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(
			services.Registry,
			promhttp.HandlerOpts{Registry: services.Registry},
		))
	}

	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var handler http.Handler = mux
	handler = Logging(logger, services.Collectors)(handler)
	handler = Recover(logger)(handler)
	return handler
}

type middleware func(http.Handler) http.Handler

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, requireAuth middleware) {
	mux.HandleFunc("POST /signup", h.SignUp)
	mux.HandleFunc("POST /login", h.SignIn)
	mux.Handle("GET /auth/status", requireAuth(http.HandlerFunc(h.Status)))
}

func registerJobRoutes(
	mux *http.ServeMux,
	h *JobHandlers,
	requireAuth, requireElevated middleware,
) {
	// Reads are the public careers board; writes and lifecycle moves are
	// staff operations.
	mux.Handle("POST /api/jobs", requireElevated(http.HandlerFunc(h.Create)))
	mux.HandleFunc("GET /api/jobs", h.List)
	mux.HandleFunc("GET /api/jobs/{id}", h.GetByID)
	mux.Handle("PUT /api/jobs/{id}", requireElevated(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /api/jobs/{id}", requireElevated(http.HandlerFunc(h.Delete)))
	mux.Handle("PATCH /api/jobs/{id}/publish", requireElevated(http.HandlerFunc(h.Publish)))
	mux.Handle("PATCH /api/jobs/{id}/close", requireElevated(http.HandlerFunc(h.Close)))

	mux.Handle("POST /api/jobs/{id}/apply", requireAuth(http.HandlerFunc(h.Apply)))
	mux.HandleFunc("GET /api/jobs/{id}/applicants/count", h.ApplicantsCount)
}

func registerApplicationRoutes(
	mux *http.ServeMux,
	h *ApplicationHandlers,
	requireAuth, requireElevated middleware,
) {
	mux.Handle("GET /api/applications/mine", requireAuth(http.HandlerFunc(h.ListMine)))
	mux.Handle("PATCH /api/applications/{id}/status", requireElevated(http.HandlerFunc(h.Transition)))
	mux.Handle("POST /api/applications/{id}/notify", requireElevated(http.HandlerFunc(h.Renotify)))
	// Delete stays on bearer auth: owners withdraw their own rows and the
	// handler widens to any row for elevated callers.
	mux.Handle("DELETE /api/applications/{id}", requireAuth(http.HandlerFunc(h.Delete)))
}

func registerTemplateRoutes(mux *http.ServeMux, h *EmailTemplateHandlers, requireElevated middleware) {
	registerCRUD(mux, crudRoutes{
		Base:       "/api/templates",
		Create:     h.Create,
		List:       h.List,
		GetByID:    h.GetByID,
		Update:     h.Update,
		Delete:     h.Delete,
		Middleware: requireElevated,
	})
}

func registerBlogRoutes(mux *http.ServeMux, h *BlogHandlers, requireElevated middleware) {
	// Reads are public; only the write verbs go through the role gate.
	mux.Handle("POST /api/blogs", requireElevated(http.HandlerFunc(h.Create)))
	mux.HandleFunc("GET /api/blogs", h.List)
	mux.HandleFunc("GET /api/blogs/{id}", h.GetByID)
	mux.Handle("PUT /api/blogs/{id}", requireElevated(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /api/blogs/{id}", requireElevated(http.HandlerFunc(h.Delete)))
}

// registerCRUD registers standard CRUD routes for a resource base path, applying mw if non-nil.
type crudRoutes struct {
	Base       string
	Create     http.HandlerFunc
	List       http.HandlerFunc
	GetByID    http.HandlerFunc
	Update     http.HandlerFunc
	Delete     http.HandlerFunc
	Middleware middleware
}

func registerCRUD(mux *http.ServeMux, cfg crudRoutes) {
	if cfg.Base == "" {
		panic("registerCRUD: Base must not be empty") //nolint:forbidigo // Fail fast during server setup.
	}
	if cfg.Create == nil ||
		cfg.List == nil ||
		cfg.GetByID == nil ||
		cfg.Update == nil ||
		cfg.Delete == nil {
		panic("registerCRUD: nil handler for base " + cfg.Base) //nolint:forbidigo // Fail fast during server setup.
	}

	wrap := func(h http.HandlerFunc) http.Handler {
		if cfg.Middleware != nil {
			return cfg.Middleware(h)
		}
		return h
	}
	mux.Handle("POST "+cfg.Base, wrap(cfg.Create))
	mux.Handle("GET "+cfg.Base, wrap(cfg.List))
	mux.Handle("GET "+cfg.Base+"/{id}", wrap(cfg.GetByID))
	mux.Handle("PUT "+cfg.Base+"/{id}", wrap(cfg.Update))
	mux.Handle("DELETE "+cfg.Base+"/{id}", wrap(cfg.Delete))
}
