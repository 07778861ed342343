// Package blobstore stores uploaded artifacts in an S3-compatible HTTP
// object store and returns public URLs for them.
package blobstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/jobdeck/careers-api/internal/errors"
	"github.com/jobdeck/careers-api/internal/ports"
)

// Config captures the endpoint and credentials for the object store.
type Config struct {
	BaseURL       string // upload endpoint, e.g. https://store.internal/bucket
	PublicBaseURL string // public prefix for stored objects; defaults to BaseURL
	APIKey        string
	Timeout       time.Duration
	Client        *http.Client
}

// Store uploads objects with a bearer-authenticated PUT.
type Store struct {
	baseURL       string
	publicBaseURL string
	apiKey        string
	client        *http.Client
}

var _ ports.ObjectStore = (*Store)(nil)

// NewStore builds an object store client. Callers should pass a validated config.
func NewStore(cfg Config) (*Store, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, errors.New("object store base url is required")
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid object store base url %q", baseURL)
	}

	publicBaseURL := strings.TrimSpace(cfg.PublicBaseURL)
	if publicBaseURL == "" {
		publicBaseURL = baseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Store{
		baseURL:       strings.TrimRight(baseURL, "/"),
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		apiKey:        strings.TrimSpace(cfg.APIKey),
		client:        hc,
	}, nil
}

// Put uploads data under key and returns the object's public URL.
func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key == "" {
		return "", errors.New("object key is required")
	}
	if len(data) == 0 {
		return "", errors.New("object data is required")
	}

	target, err := url.JoinPath(s.baseURL, key)
	if err != nil {
		return "", fmt.Errorf("build object url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeUpstream, "storage: upload request failed")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", handleErrorResponse(resp)
	}
	if err := drainSuccess(resp); err != nil {
		return "", err
	}

	publicURL, err := url.JoinPath(s.publicBaseURL, key)
	if err != nil {
		return "", fmt.Errorf("build public url: %w", err)
	}
	return publicURL, nil
}

func drainSuccess(resp *http.Response) error {
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			return errors.Join(
				fmt.Errorf("drain upload response body: %w", err),
				fmt.Errorf("close response body: %w", closeErr),
			)
		}
		return fmt.Errorf("drain upload response body: %w", err)
	}
	if err := resp.Body.Close(); err != nil {
		return fmt.Errorf("close response body: %w", err)
	}
	return nil
}

func handleErrorResponse(resp *http.Response) error {
	respBody, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			return errors.Join(
				fmt.Errorf("read upload error response: %w", readErr),
				fmt.Errorf("close response body: %w", closeErr),
			)
		}
		return fmt.Errorf("read upload error response: %w", readErr)
	}
	if err := resp.Body.Close(); err != nil {
		return fmt.Errorf("close response body: %w", err)
	}

	return apperrors.Upstream("storage",
		fmt.Sprintf("upload %s: %s", resp.Status, strings.TrimSpace(string(respBody))))
}
