// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.
package auth

import (
	"context"
	"fmt"
	"time"

	domainauth "github.com/jobdeck/careers-api/internal/domain/auth"
	"github.com/jobdeck/careers-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.IdentityProvider = (*MockIdentityProvider)(nil)
	_ ports.RoleCache        = (*MemoryRoleCache)(nil)
)

// MockIdentityProvider simulates an IdP for tests with deterministic
// token and id handling.
type MockIdentityProvider struct {
	VerifyTokenFunc func(ctx context.Context, rawToken string) (domainauth.Caller, error)
	SignUpFunc      func(ctx context.Context, in ports.SignUpInput) (string, error)
	SignInFunc      func(ctx context.Context, email, password string) (domainauth.Credentials, error)

	// Deterministic values for predictable testing
	DefaultCaller domainauth.Caller

	// Internal state tracking for deterministic behavior
	signUpCount int
}

// NewMockIdentityProvider creates a MockIdentityProvider with sensible defaults.
func NewMockIdentityProvider() *MockIdentityProvider {
	return &MockIdentityProvider{
		DefaultCaller: domainauth.Caller{
			UserID:    "mock-user-1",
			Email:     "mock.user@example.com",
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}
}

func (m *MockIdentityProvider) VerifyToken(
	ctx context.Context,
	rawToken string,
) (domainauth.Caller, error) {
	if m.VerifyTokenFunc != nil {
		return m.VerifyTokenFunc(ctx, rawToken)
	}
	if rawToken == "" {
		return domainauth.Caller{}, ErrNotFound
	}

	caller := m.DefaultCaller
	caller.ExpiresAt = time.Now().Add(time.Hour)
	return caller, nil
}

func (m *MockIdentityProvider) SignUp(ctx context.Context, in ports.SignUpInput) (string, error) {
	if m.SignUpFunc != nil {
		return m.SignUpFunc(ctx, in)
	}

	m.signUpCount++
	return fmt.Sprintf("mock-user-%d", m.signUpCount), nil
}

func (m *MockIdentityProvider) SignIn(
	ctx context.Context,
	email, password string,
) (domainauth.Credentials, error) {
	if m.SignInFunc != nil {
		return m.SignInFunc(ctx, email, password)
	}

	return domainauth.Credentials{
		AccessToken: "mock-token",
		TokenType:   "Bearer",
		ExpiresAt:   time.Now().Add(time.Hour),
	}, nil
}

// MemoryRoleCache is an in-memory role cache for unit tests.
type MemoryRoleCache struct {
	roles map[string]domainauth.Role

	GetErr error
	SetErr error
}

// NewMemoryRoleCache creates a new in-memory role cache.
func NewMemoryRoleCache() *MemoryRoleCache {
	return &MemoryRoleCache{
		roles: make(map[string]domainauth.Role),
	}
}

func (m *MemoryRoleCache) Get(_ context.Context, userID string) (domainauth.Role, bool, error) {
	if m.GetErr != nil {
		return domainauth.RoleNone, false, m.GetErr
	}
	role, ok := m.roles[userID]
	if !ok {
		return domainauth.RoleNone, false, nil
	}
	return role, true, nil
}

func (m *MemoryRoleCache) Set(_ context.Context, userID string, role domainauth.Role) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	m.roles[userID] = role
	return nil
}

func (m *MemoryRoleCache) Invalidate(_ context.Context, userID string) error {
	delete(m.roles, userID)
	return nil
}

// ErrNotFound is returned by mocks when an entity is not present.
type notFoundError struct{}

func (notFoundError) Error() string { return "not found" }

var ErrNotFound error = notFoundError{}
