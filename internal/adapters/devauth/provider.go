// Package devauth provides a simple, config-driven IdentityProvider for
// local development. Any non-empty bearer token is accepted as the
// configured identity; sign-up and sign-in succeed without an upstream.
package devauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	domainauth "github.com/jobdeck/careers-api/internal/domain/auth"
	apperrors "github.com/jobdeck/careers-api/internal/errors"
	"github.com/jobdeck/careers-api/internal/ports"
)

// Config controls the dev identity provider behavior.
type Config struct {
	UserID        string
	Email         string
	TokenDuration time.Duration // default 8h when zero
}

// Provider implements ports.IdentityProvider for local development.
type Provider struct {
	userID        string
	email         string
	tokenDuration time.Duration
}

var _ ports.IdentityProvider = (*Provider)(nil)

// NewProvider constructs a dev identity provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.UserID == "" {
		return nil, errors.New("dev auth: UserID is required")
	}
	if cfg.Email == "" {
		return nil, errors.New("dev auth: Email is required")
	}
	dur := cfg.TokenDuration
	if dur == 0 {
		dur = 8 * time.Hour
	}
	return &Provider{
		userID:        cfg.UserID,
		email:         cfg.Email,
		tokenDuration: dur,
	}, nil
}

// VerifyToken accepts any non-empty token and returns the configured caller.
func (p *Provider) VerifyToken(_ context.Context, rawToken string) (domainauth.Caller, error) {
	if rawToken == "" {
		return domainauth.Caller{}, apperrors.Unauthenticated("bearer token is required")
	}
	return domainauth.Caller{
		UserID:    p.userID,
		Email:     p.email,
		ExpiresAt: time.Now().Add(p.tokenDuration),
	}, nil
}

// SignUp pretends to create an account and returns the configured user id.
func (p *Provider) SignUp(_ context.Context, in ports.SignUpInput) (string, error) {
	if in.Email == "" || in.Password == "" {
		return "", apperrors.Validation("email and password are required")
	}
	return p.userID, nil
}

// SignIn issues a random opaque token for any credentials.
func (p *Provider) SignIn(_ context.Context, email, password string) (domainauth.Credentials, error) {
	if email == "" || password == "" {
		return domainauth.Credentials{}, apperrors.Validation("email and password are required")
	}
	token, err := randomString(32)
	if err != nil {
		return domainauth.Credentials{}, fmt.Errorf("generate token: %w", err)
	}
	return domainauth.Credentials{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   time.Now().Add(p.tokenDuration),
	}, nil
}

func randomString(n int) (string, error) {
	if n <= 0 {
		return "", nil
	}
	// Compute number of random bytes needed to produce at least n base64 URL chars
	bLen := (n*3 + 3) / 4
	b := make([]byte, bLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	s := base64.RawURLEncoding.EncodeToString(b)
	if len(s) < n {
		// pad
		extra := make([]byte, 1)
		if _, err := rand.Read(extra); err != nil {
			return "", err
		}
		s += base64.RawURLEncoding.EncodeToString(extra)
	}
	return s[:n], nil
}
