package httpx

import (
	"context"

	domainauth "github.com/jobdeck/careers-api/internal/domain/auth"
)

// callerKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type callerKey struct{}

// roleKey carries the resolved role alongside the caller on elevated routes.
type roleKey struct{}

// SetCallerInContext returns a child context that carries the authenticated caller.
func SetCallerInContext(ctx context.Context, caller domainauth.Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFromContext returns the caller from context and a boolean indicating presence.
func CallerFromContext(ctx context.Context) (domainauth.Caller, bool) {
	if caller, ok := ctx.Value(callerKey{}).(domainauth.Caller); ok {
		return caller, true
	}
	return domainauth.Caller{}, false
}

// SetRoleInContext returns a child context that carries the caller's resolved role.
func SetRoleInContext(ctx context.Context, role domainauth.Role) context.Context {
	return context.WithValue(ctx, roleKey{}, role)
}

// RoleFromContext returns the resolved role from context. Requests that never
// passed through RequireElevated resolve to RoleNone.
func RoleFromContext(ctx context.Context) domainauth.Role {
	if role, ok := ctx.Value(roleKey{}).(domainauth.Role); ok {
		return role
	}
	return domainauth.RoleNone
}
