package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"context"

	"github.com/jobdeck/careers-api/internal/core"
	domainauth "github.com/jobdeck/careers-api/internal/domain/auth"
	apperrors "github.com/jobdeck/careers-api/internal/errors"
	"github.com/jobdeck/careers-api/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Provider  ports.IdentityProvider // Required: token verification and account operations
	Roles     core.RoleRepository    // Required: user_roles lookups
	RoleCache ports.RoleCache        // Optional: read-through cache over Roles
	Logger    *slog.Logger           // Optional: structured logger
}

// AuthService is the single role gate for the system. Every handler that
// needs an authenticated or elevated caller goes through it; there are no
// per-module role checks.
type AuthService struct {
	provider  ports.IdentityProvider
	roles     core.RoleRepository
	roleCache ports.RoleCache
	logger    *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) (*AuthService, error) {
	if opts.Provider == nil {
		return nil, errors.New("IdentityProvider is required")
	}
	if opts.Roles == nil {
		return nil, errors.New("RoleRepository is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "auth_service")
	}

	return &AuthService{
		provider:  opts.Provider,
		roles:     opts.Roles,
		roleCache: opts.RoleCache,
		logger:    logger,
	}, nil
}

// MustNewAuthService constructs a new AuthService and panics on error.
func MustNewAuthService(opts AuthServiceOptions) *AuthService {
	svc, err := NewAuthService(opts)
	if err != nil {
		panic(err) //nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
	}
	return svc
}

// VerifyToken validates a raw bearer token and returns the caller it
// identifies. All failures are Unauthenticated errors.
func (s *AuthService) VerifyToken(ctx context.Context, rawToken string) (domainauth.Caller, error) {
	caller, err := s.provider.VerifyToken(ctx, strings.TrimSpace(rawToken))
	if err != nil {
		return domainauth.Caller{}, err
	}
	return caller, nil
}

// RoleFor resolves the caller's recorded role, consulting the cache first.
// A caller with no role record resolves to RoleNone without error.
func (s *AuthService) RoleFor(ctx context.Context, caller domainauth.Caller) (domainauth.Role, error) {
	if s.roleCache != nil {
		role, hit, err := s.roleCache.Get(ctx, caller.UserID)
		if err != nil {
			// Cache trouble degrades to a DB lookup, not a request failure.
			if s.logger != nil {
				s.logger.WarnContext(ctx, "role cache get failed", "user_id", caller.UserID, "error", err)
			}
		} else if hit {
			return role, nil
		}
	}

	role, err := s.roles.GetRole(ctx, caller.UserID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			role = domainauth.RoleNone
		} else {
			return domainauth.RoleNone, fmt.Errorf("lookup role: %w", err)
		}
	}

	if s.roleCache != nil {
		if cacheErr := s.roleCache.Set(ctx, caller.UserID, role); cacheErr != nil && s.logger != nil {
			s.logger.WarnContext(ctx, "role cache set failed", "user_id", caller.UserID, "error", cacheErr)
		}
	}
	return role, nil
}

// RequireElevated resolves the caller's role and fails with Forbidden
// unless it is admin or subadmin. Callers with no role record get the
// same Forbidden as callers with a non-elevated role.
func (s *AuthService) RequireElevated(ctx context.Context, caller domainauth.Caller) (domainauth.Role, error) {
	role, err := s.RoleFor(ctx, caller)
	if err != nil {
		return domainauth.RoleNone, err
	}
	if role == domainauth.RoleNone {
		return domainauth.RoleNone, apperrors.Forbidden("no role recorded for this account")
	}
	if !role.Elevated() {
		return domainauth.RoleNone, apperrors.Forbidden("admin or subadmin role required")
	}
	return role, nil
}

// SignUp creates an account at the identity provider.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (string, error) {
	userID, err := s.provider.SignUp(ctx, ports.SignUpInput{Email: email, Password: password})
	if err != nil {
		return "", err
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "account created", "user_id", userID)
	}
	return userID, nil
}

// SignIn exchanges credentials for token material.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (domainauth.Credentials, error) {
	return s.provider.SignIn(ctx, email, password)
}
