// Package ports defines interfaces (hexagonal ports) for external
// collaborators. Implementations live in internal/adapters; orchestration
// in internal/service.
package ports

import (
	"context"

	domainauth "github.com/jobdeck/careers-api/internal/domain/auth"
)

// SignUpInput carries inputs for account creation at the identity provider.
type SignUpInput struct {
	Email    string
	Password string
}

// IdentityProvider verifies bearer tokens and proxies account operations
// to the upstream identity service.
type IdentityProvider interface {
	// VerifyToken validates a raw bearer token and returns the caller it
	// identifies. Any verification failure is an Unauthenticated error.
	VerifyToken(ctx context.Context, rawToken string) (domainauth.Caller, error)

	// SignUp creates a new account and returns its stable user id.
	SignUp(ctx context.Context, in SignUpInput) (string, error)

	// SignIn exchanges email/password credentials for token material.
	SignIn(ctx context.Context, email, password string) (domainauth.Credentials, error)
}

// RoleCache is a read-through cache in front of the role repository.
// A miss is (RoleNone, false, nil); errors are transport failures only.
type RoleCache interface {
	Get(ctx context.Context, userID string) (domainauth.Role, bool, error)
	Set(ctx context.Context, userID string, role domainauth.Role) error
	Invalidate(ctx context.Context, userID string) error
}
