package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/jobdeck/careers-api/config"
	"github.com/jobdeck/careers-api/internal/data"
	"github.com/jobdeck/careers-api/internal/observability/metrics"
	"github.com/jobdeck/careers-api/internal/observability/statsd"
	"github.com/jobdeck/careers-api/internal/ports"
	"github.com/jobdeck/careers-api/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth          *service.AuthService
	Jobs          *service.JobService
	Applications  *service.ApplicationService
	Templates     *service.EmailTemplateService
	Blogs         *service.BlogService
	Notifier      *service.NotifierService
	Observability ObservabilityContainer
}

// ObservabilityContainer groups shared observability dependencies.
type ObservabilityContainer struct {
	Registry      *prometheus.Registry
	Collectors    *metrics.Collectors
	MetricsSink   *statsd.Client
	MetricsConfig config.ObservabilityMetricsConfig
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	DB               *sql.DB
	Redis            redis.UniversalClient
	JobRepo          *data.JobRepo
	ApplicationRepo  *data.ApplicationRepo
	TemplateRepo     *data.EmailTemplateRepo
	NotificationRepo *data.NotificationRepo
	BlogRepo         *data.BlogRepo
}

// buildObservability configures the Prometheus registry and the optional
// StatsD sink.
func buildObservability(logger *slog.Logger, cfg config.ObservabilityConfig) ObservabilityContainer {
	obsLogger := logger
	if obsLogger == nil {
		obsLogger = slog.Default()
	}

	var registry *prometheus.Registry
	var instruments *metrics.Collectors
	if cfg.Metrics.PrometheusEnabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		instruments = metrics.NewCollectors(registry)
	}

	return ObservabilityContainer{
		Registry:      registry,
		Collectors:    instruments,
		MetricsSink:   BuildStatsdSink(cfg.Metrics, obsLogger),
		MetricsConfig: cfg.Metrics,
	}
}

// buildRepositories builds repositories backing service ports; no business rules here.
func buildRepositories(db *sql.DB, redisClient redis.UniversalClient) *serviceRepositories {
	return &serviceRepositories{
		DB:               db,
		Redis:            redisClient,
		JobRepo:          data.NewJobRepo(db),
		ApplicationRepo:  data.NewApplicationRepo(db),
		TemplateRepo:     data.NewEmailTemplateRepo(db),
		NotificationRepo: data.NewNotificationRepo(db),
		BlogRepo:         data.NewBlogRepo(db),
	}
}

// DomainServicesOptions groups inputs for service wiring.
type DomainServicesOptions struct {
	Repos         *serviceRepositories
	Observability ObservabilityContainer
	Config        *config.AppConfig
	EmailSender   ports.EmailSender
	ObjectStore   ports.ObjectStore
	Logger        *slog.Logger
}

// buildDomainServices wires business services using repositories and adapters.
func buildDomainServices(opts *DomainServicesOptions) ServiceContainer {
	if opts == nil {
		return ServiceContainer{}
	}
	svcLogger := opts.Logger
	if svcLogger == nil {
		svcLogger = slog.Default()
	}

	appCfg := opts.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	jobService := service.MustNewJobService(service.JobServiceOptions{
		Repo:   opts.Repos.JobRepo,
		Logger: svcLogger,
	})

	applicationService := service.MustNewApplicationService(service.ApplicationServiceOptions{
		Repo:    opts.Repos.ApplicationRepo,
		Jobs:    opts.Repos.JobRepo,
		Objects: opts.ObjectStore,
		Logger:  svcLogger,
	})

	templateService := service.MustNewEmailTemplateService(service.EmailTemplateServiceOptions{
		Repo:   opts.Repos.TemplateRepo,
		Logger: svcLogger,
	})

	blogService := service.MustNewBlogService(service.BlogServiceOptions{
		Repo:    opts.Repos.BlogRepo,
		Objects: opts.ObjectStore,
		Logger:  svcLogger,
	})

	var notifierService *service.NotifierService
	if opts.EmailSender != nil {
		notifierService = service.MustNewNotifierService(service.NotifierServiceOptions{
			Outbox:     opts.Repos.NotificationRepo,
			Templates:  opts.Repos.TemplateRepo,
			Sender:     opts.EmailSender,
			BatchSize:  appCfg.Notifier.BatchSize,
			Logger:     svcLogger,
			Collectors: opts.Observability.Collectors,
		})
	}

	authService := BuildAuthService(AuthConfig{
		Auth:        appCfg.Auth,
		DB:          opts.Repos.DB,
		RedisClient: opts.Repos.Redis,
		Logger:      svcLogger,
	})

	return ServiceContainer{
		Auth:          authService,
		Jobs:          jobService,
		Applications:  applicationService,
		Templates:     templateService,
		Blogs:         blogService,
		Notifier:      notifierService,
		Observability: opts.Observability,
	}
}

// NewServices builds the full service container from top-level dependencies.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil {
		return ServiceContainer{}, errors.New("service dependencies are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var appCfg config.AppConfig
	if deps.Config != nil {
		appCfg = *deps.Config
	}

	observability := buildObservability(logger, appCfg.Observability)

	sender, err := BuildEmailSender(appCfg.Email, appCfg.IsDev, logger)
	if err != nil {
		return ServiceContainer{}, err
	}

	store, err := BuildObjectStore(appCfg.Storage, logger)
	if err != nil {
		return ServiceContainer{}, err
	}

	repos := buildRepositories(deps.DB, deps.RedisClient)
	return buildDomainServices(&DomainServicesOptions{
		Repos:         repos,
		Observability: observability,
		Config:        &appCfg,
		EmailSender:   sender,
		ObjectStore:   store,
		Logger:        logger,
	}), nil
}

// ServiceOrchestrationConfig contains configuration for service orchestration.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

const (
	// shutdownWaitTimeout is the maximum time to wait for services to stop gracefully.
	shutdownWaitTimeout = 15 * time.Second
)

// RunServicesWithShutdown starts all enabled services and manages their
// lifecycle. It blocks until a shutdown signal is received or a service
// fails.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil {
		return errors.New("service orchestration config is required")
	}
	if cfg.Config == nil {
		return errors.New("service orchestration config missing AppConfig")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	enabled, err := cfg.Config.GetEnabledServices()
	if err != nil {
		return fmt.Errorf("determine enabled services: %w", err)
	}

	if enabled[config.ServiceModeHTTP] && cfg.Services.Auth == nil {
		return errors.New("http service enabled but auth service not built; check auth configuration")
	}

	if enabled[config.ServiceModeNotifier] && cfg.Services.Notifier == nil {
		return errors.New("notifier service enabled but not built; check email configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)

	if enabled[config.ServiceModeHTTP] {
		runHTTPService(groupCtx, group, cfg, logger)
	}

	if enabled[config.ServiceModeNotifier] {
		runNotifierService(groupCtx, group, cfg, logger)
	}

	if waitErr := group.Wait(); waitErr != nil {
		logger.Error("service error", "error", waitErr)
		return waitErr
	}

	logger.Info("all services stopped")
	return nil
}

func runHTTPService(ctx context.Context, group *errgroup.Group, cfg *ServiceOrchestrationConfig, logger *slog.Logger) {
	server := BuildHTTPServer(&HTTPServerConfig{
		Config:   cfg.Config,
		Services: cfg.Services,
		Logger:   logger,
	})

	group.Go(func() error {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", serveErr)
		}
		return nil
	})

	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWaitTimeout)
		defer cancel()
		return ShutdownHTTPServer(ShutdownConfig{
			Context: shutdownCtx,
			Server:  server,
			Logger:  logger,
		})
	})
}

func runNotifierService(ctx context.Context, group *errgroup.Group, cfg *ServiceOrchestrationConfig, logger *slog.Logger) {
	var sink statsd.Sink
	if cfg.Services.Observability.MetricsSink != nil {
		sink = cfg.Services.Observability.MetricsSink
	}

	notifierCfg := cfg.Config.Notifier
	group.Go(func() error {
		return RunNotifier(ctx, NotifierRunnerConfig{
			Dispatcher: cfg.Services.Notifier,
			Config:     notifierCfg,
			Logger:     logger,
			Sink:       sink,
			Collectors: cfg.Services.Observability.Collectors,
		})
	})
}
