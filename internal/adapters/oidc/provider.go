// Package oidc provides the identity provider adapter for the careers
// system. Token verification uses the provider's JWKS via go-oidc; account
// creation and password sign-in are proxied to the provider's REST
// endpoints.
package oidc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	domainauth "github.com/jobdeck/careers-api/internal/domain/auth"
	apperrors "github.com/jobdeck/careers-api/internal/errors"
	"github.com/jobdeck/careers-api/internal/ports"
)

// Provider implements ports.IdentityProvider against an OIDC-capable IdP.
type Provider struct {
	config     *oauth2.Config
	signupURL  string
	httpClient *http.Client

	oidcProvider *gooidc.Provider
	verifier     *gooidc.IDTokenVerifier
}

var _ ports.IdentityProvider = (*Provider)(nil)

// ProviderConfig holds configuration for the OIDC provider.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	DiscoveryURL string
	SignupURL    string       // REST endpoint for account creation
	Scope        string       // space-separated; defaults to "openid email"
	HTTPClient   *http.Client // Optional, defaults to a 30s-timeout client
}

// NewProvider creates a new OIDC provider adapter. Discovery runs once at
// construction; a provider that cannot be reached fails startup fast.
func NewProvider(config ProviderConfig) (*Provider, error) {
	if config.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if config.DiscoveryURL == "" {
		return nil, errors.New("discovery URL is required")
	}
	if config.SignupURL == "" {
		return nil, errors.New("signup URL is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	scope := strings.TrimSpace(config.Scope)
	if scope == "" {
		scope = "openid email"
	}

	p := &Provider{
		signupURL:  config.SignupURL,
		httpClient: httpClient,
	}

	// Initialize go-oidc provider and verifier (single discovery fetch)
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
	issuer := strings.TrimSuffix(config.DiscoveryURL, "/")
	issuer = strings.TrimSuffix(issuer, "/.well-known/openid-configuration")
	issuer = strings.TrimSuffix(issuer, ".well-known/openid-configuration")
	op, err := gooidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc new provider: %w", err)
	}
	p.oidcProvider = op
	p.verifier = op.Verifier(&gooidc.Config{ClientID: config.ClientID})

	p.config = &oauth2.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		Scopes:       strings.Fields(scope),
		Endpoint:     op.Endpoint(),
	}

	return p, nil
}

// tokenClaims is the subset of claims we extract from a verified token.
type tokenClaims struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
}

// VerifyToken validates a raw bearer token against the provider's JWKS and
// returns the caller it identifies. Every verification failure maps to
// Unauthenticated; the HTTP layer never sees raw JWT library errors.
func (p *Provider) VerifyToken(ctx context.Context, rawToken string) (domainauth.Caller, error) {
	if strings.TrimSpace(rawToken) == "" {
		return domainauth.Caller{}, apperrors.Unauthenticated("bearer token is required")
	}

	token, err := p.verifier.Verify(ctx, rawToken)
	if err != nil {
		return domainauth.Caller{}, apperrors.Wrap(
			err, apperrors.ErrCodeUnauthenticated, "token verification failed")
	}

	var claims tokenClaims
	if claimsErr := token.Claims(&claims); claimsErr != nil {
		return domainauth.Caller{}, apperrors.Wrap(
			claimsErr, apperrors.ErrCodeUnauthenticated, "parse token claims")
	}
	if claims.Sub == "" {
		return domainauth.Caller{}, apperrors.Unauthenticated("token has no subject")
	}

	return domainauth.Caller{
		UserID:    claims.Sub,
		Email:     claims.Email,
		ExpiresAt: token.Expiry,
	}, nil
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupResponse struct {
	ID string `json:"id"`
}

// SignUp creates a new account at the identity provider and returns its
// stable user id.
func (p *Provider) SignUp(ctx context.Context, in ports.SignUpInput) (string, error) {
	if in.Email == "" || in.Password == "" {
		return "", apperrors.Validation("email and password are required")
	}

	body, err := json.Marshal(signupRequest{Email: in.Email, Password: in.Password})
	if err != nil {
		return "", fmt.Errorf("encode signup payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, p.signupURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create signup request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeUpstream, "identity: signup request failed")
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			_ = closeErr
		}
	}()

	if resp.StatusCode == http.StatusConflict {
		return "", apperrors.Conflict("an account with this email already exists")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return "", apperrors.Upstream("identity",
			fmt.Sprintf("signup %s: %s", resp.Status, strings.TrimSpace(string(respBody))))
	}

	var out signupResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&out); decodeErr != nil {
		return "", fmt.Errorf("decode signup response: %w", decodeErr)
	}
	return out.ID, nil
}

// SignIn exchanges email/password credentials for token material using the
// OAuth2 password grant.
func (p *Provider) SignIn(ctx context.Context, email, password string) (domainauth.Credentials, error) {
	if email == "" || password == "" {
		return domainauth.Credentials{}, apperrors.Validation("email and password are required")
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	token, err := p.config.PasswordCredentialsToken(ctx, email, password)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) &&
			retrieveErr.Response != nil &&
			retrieveErr.Response.StatusCode < 500 {
			return domainauth.Credentials{}, apperrors.Unauthenticated("invalid email or password")
		}
		return domainauth.Credentials{}, apperrors.Wrap(
			err, apperrors.ErrCodeUpstream, "identity: sign-in request failed")
	}

	expiresAt := token.Expiry
	if expiresAt.IsZero() {
		expiresAt = time.Now().Add(time.Hour)
	}

	return domainauth.Credentials{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		ExpiresAt:    expiresAt,
	}, nil
}
