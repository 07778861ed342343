// Package resend delivers transactional email through the Resend REST API.
package resend

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

	apperrors "github.com/jobdeck/careers-api/internal/errors"
	"github.com/jobdeck/careers-api/internal/ports"
)

const defaultBaseURL = "https://api.resend.com"

// Config captures the subset of the Resend API behaviour we need.
type Config struct {
	APIKey     string
	From       string
	BaseURL    string
	Timeout    time.Duration
	RetryLimit int
	Client     *http.Client
}

// Client sends application status emails via the Resend REST API.
type Client struct {
	apiKey     string
	from       string
	baseURL    string
	retryLimit int
	client     *http.Client
}

var _ ports.EmailSender = (*Client)(nil)

// NewClient builds a Resend client. Callers should pass a validated config.
func NewClient(cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("resend api key is required")
	}
	from := strings.TrimSpace(cfg.From)
	if from == "" {
		return nil, errors.New("resend from address is required")
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	retries := cfg.RetryLimit
	if retries < 0 {
		retries = 0
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{
		apiKey:     apiKey,
		from:       from,
		baseURL:    baseURL,
		retryLimit: retries,
		client:     hc,
	}, nil
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type sendResponse struct {
	ID string `json:"id"`
}

// Send posts one email and returns the provider message id.
func (c *Client) Send(ctx context.Context, msg ports.EmailMessage) (string, error) {
	if strings.TrimSpace(msg.To) == "" {
		return "", apperrors.Validation("email recipient is required")
	}

	body, err := json.Marshal(sendRequest{
		From:    c.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return "", fmt.Errorf("encode resend payload: %w", err)
	}

	attempts := c.retryLimit + 1
	var lastErr error
	for attempt := range attempts {
		var id string
		id, lastErr = c.post(ctx, body)
		if lastErr == nil {
			return id, nil
		}
		if attempt < attempts-1 {
			// Simple linear backoff to avoid thundering retries.
			delay := time.Duration(attempt+1) * 200 * time.Millisecond
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				if !timer.Stop() {
					<-timer.C
				}
				return "", ctx.Err()
			case <-timer.C:
			}
		}
	}

	return "", lastErr
}

func (c *Client) post(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create resend request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeUpstream, "email: resend request failed")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", c.handleErrorResponse(resp)
	}

	return decodeSendResponse(resp)
}

func decodeSendResponse(resp *http.Response) (string, error) {
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			_ = closeErr
		}
	}()

	var out sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode resend response: %w", err)
	}
	return out.ID, nil
}

func (c *Client) handleErrorResponse(resp *http.Response) error {
	respBody, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			return errors.Join(
				fmt.Errorf("read resend error response: %w", readErr),
				fmt.Errorf("close response body: %w", closeErr),
			)
		}
		return fmt.Errorf("read resend error response: %w", readErr)
	}
	if err := resp.Body.Close(); err != nil {
		return fmt.Errorf("close response body: %w", err)
	}

	return apperrors.Upstream("email",
		fmt.Sprintf("resend %s: %s", resp.Status, strings.TrimSpace(string(respBody))))
}
