package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeOIDC verifies bearer tokens against an OIDC provider.
	AuthModeOIDC AuthMode = "oidc"
	// AuthModeMock uses mock/dev authentication (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "oidc", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oidc, mock)", v)
	}
}

// OIDCConfig contains OIDC identity provider configuration.
type OIDCConfig struct {
	ClientID     string `env:"CLIENT_ID"     envDefault:"careers-api"`
	ClientSecret string `env:"CLIENT_SECRET"`
	DiscoveryURL string `env:"DISCOVERY_URL"`
	SignupURL    string `env:"SIGNUP_URL"`
	Scope        string `env:"SCOPE"         envDefault:"openid email"`
}

// DevAuthConfig controls mock/dev authentication identity.
// Used when AUTH_MODE=mock for development and testing.
type DevAuthConfig struct {
	UserID string `env:"USER_ID" envDefault:"dev-user"`
	Email  string `env:"EMAIL"   envDefault:"dev@example.com"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which identity provider adapter to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"oidc"`

	// OIDC configuration (used when Mode=oidc).
	OIDC OIDCConfig `envPrefix:"OIDC_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// RoleCacheTTL bounds how long a cached role entry is trusted before
	// the next request falls through to the user_roles table.
	RoleCacheTTL time.Duration `env:"AUTH_ROLE_CACHE_TTL" envDefault:"5m"`
}
