// Package auth contains domain-level types for authentication and
// authorization. It is pure and free of framework/adapter concerns.
package auth

import "time"

// Role represents an application's authorization role.
// Keep string form for easy persistence and caching.
// Valid values are defined as constants below.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleSubadmin Role = "subadmin"
	// RoleNone marks a caller with no role record. Authenticated but not
	// authorized for any elevated operation.
	RoleNone Role = ""
)

// Elevated returns true if the role may perform administrative operations.
func (r Role) Elevated() bool { return r == RoleAdmin || r == RoleSubadmin }

// ParseRole maps a stored role string to a Role. Unknown values map to
// RoleNone rather than failing; an unrecognized row never grants access.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin
	case RoleSubadmin:
		return RoleSubadmin
	default:
		return RoleNone
	}
}

// Caller represents the authenticated principal extracted from a verified
// bearer token. Adapters map provider-specific claims into this shape.
type Caller struct {
	UserID    string    // stable user identifier (sub claim)
	Email     string    // email claim
	ExpiresAt time.Time // absolute expiry from the token
}

// Credentials is the token material returned by the identity provider
// after a successful sign-in.
type Credentials struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type"`
	ExpiresAt    time.Time `json:"expires_at"`
}
