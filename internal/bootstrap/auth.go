package bootstrap

import (
	"database/sql"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/jobdeck/careers-api/config"
	"github.com/jobdeck/careers-api/internal/adapters/devauth"
	"github.com/jobdeck/careers-api/internal/adapters/oidc"
	redisadapter "github.com/jobdeck/careers-api/internal/adapters/redis"
	"github.com/jobdeck/careers-api/internal/data"
	"github.com/jobdeck/careers-api/internal/ports"
	"github.com/jobdeck/careers-api/internal/service"
)

// AuthConfig contains configuration for auth service construction.
type AuthConfig struct {
	Auth        config.AuthConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildAuthService creates the auth service for the configured auth mode.
// Returns nil if auth configuration is incomplete or invalid; callers must
// treat a nil service as auth being unavailable.
func BuildAuthService(cfg AuthConfig) *service.AuthService {
	if cfg.DB == nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("auth service disabled: database not configured", "mode", cfg.Auth.Mode)
		}
		return nil
	}

	provider := buildIdentityProvider(cfg)
	if provider == nil {
		return nil
	}

	// Role lookups always hit user_roles; the Redis cache in front is
	// optional and read-through.
	var roleCache ports.RoleCache
	if cfg.RedisClient != nil {
		roleCache = redisadapter.NewRoleCacheWithTTL(cfg.RedisClient, cfg.Auth.RoleCacheTTL)
	}

	return service.MustNewAuthService(service.AuthServiceOptions{
		Provider:  provider,
		Roles:     data.NewRoleRepo(cfg.DB),
		RoleCache: roleCache,
		Logger:    cfg.Logger,
	})
}

//nolint:ireturn // provider selection is the point of this function.
func buildIdentityProvider(cfg AuthConfig) ports.IdentityProvider {
	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		return buildDevProvider(cfg)
	case config.AuthModeOIDC:
		return buildOIDCProvider(cfg)
	default:
		return nil
	}
}

//nolint:ireturn // provider selection is the point of this function.
func buildDevProvider(cfg AuthConfig) ports.IdentityProvider {
	prov, err := devauth.NewProvider(devauth.Config{
		UserID: cfg.Auth.DevAuth.UserID,
		Email:  cfg.Auth.DevAuth.Email,
		// token duration defaults inside provider
	})
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("failed to create dev auth provider, auth disabled", "error", err)
		}
		return nil
	}
	return prov
}

//nolint:ireturn // provider selection is the point of this function.
func buildOIDCProvider(cfg AuthConfig) ports.IdentityProvider {
	// Only enable when fully configured
	oc := cfg.Auth.OIDC
	if oc.DiscoveryURL == "" || oc.ClientID == "" || oc.SignupURL == "" {
		if cfg.Logger != nil {
			cfg.Logger.Warn("AuthModeOIDC selected but required config missing; auth disabled",
				"discovery_url_empty", oc.DiscoveryURL == "",
				"client_id_empty", oc.ClientID == "",
				"signup_url_empty", oc.SignupURL == "",
			)
		}
		return nil
	}

	prov, err := oidc.NewProvider(oidc.ProviderConfig{
		ClientID:     oc.ClientID,
		ClientSecret: oc.ClientSecret,
		DiscoveryURL: oc.DiscoveryURL,
		SignupURL:    oc.SignupURL,
		Scope:        oc.Scope,
	})
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("failed to create OIDC provider, auth disabled", "error", err)
		}
		return nil
	}
	return prov
}
