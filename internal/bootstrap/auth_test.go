package bootstrap

import (
	"io"
	"log/slog"
	"testing"

	"github.com/jobdeck/careers-api/config"
)

func TestBuildAuthServiceReturnsNilWithoutDB(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name string
		auth config.AuthConfig
	}{
		{
			name: "mock auth mode",
			auth: config.AuthConfig{
				Mode: config.AuthModeMock,
				DevAuth: config.DevAuthConfig{
					UserID: "dev",
					Email:  "dev@example.com",
				},
			},
		},
		{
			name: "oidc mode",
			auth: config.AuthConfig{
				Mode: config.AuthModeOIDC,
				OIDC: config.OIDCConfig{
					ClientID:     "client-id",
					ClientSecret: "client-secret",
					DiscoveryURL: "https://issuer.example.com",
					SignupURL:    "https://issuer.example.com/api/signup",
					Scope:        "openid email",
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := AuthConfig{
				Auth:   tt.auth,
				DB:     nil,
				Logger: logger,
			}

			if svc := BuildAuthService(cfg); svc != nil {
				t.Fatalf("BuildAuthService() = %v, want nil", svc)
			}
		})
	}
}

func TestBuildOIDCProviderNilWhenConfigIncomplete(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name string
		oidc config.OIDCConfig
	}{
		{
			name: "missing discovery url",
			oidc: config.OIDCConfig{
				ClientID:  "client-id",
				SignupURL: "https://issuer.example.com/api/signup",
			},
		},
		{
			name: "missing client id",
			oidc: config.OIDCConfig{
				DiscoveryURL: "https://issuer.example.com",
				SignupURL:    "https://issuer.example.com/api/signup",
			},
		},
		{
			name: "missing signup url",
			oidc: config.OIDCConfig{
				ClientID:     "client-id",
				DiscoveryURL: "https://issuer.example.com",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prov := buildOIDCProvider(AuthConfig{
				Auth:   config.AuthConfig{Mode: config.AuthModeOIDC, OIDC: tt.oidc},
				Logger: logger,
			})
			if prov != nil {
				t.Fatalf("buildOIDCProvider() = %v, want nil", prov)
			}
		})
	}
}
