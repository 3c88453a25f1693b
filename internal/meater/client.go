// Package meater talks to the Meater Cloud public API and decodes its payloads.
package meater

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

	"meater/internal/credentials"
	apperrors "meater/internal/errors"
)

// DefaultBaseURL is the public cloud endpoint.
const DefaultBaseURL = "https://public-api.cloud.meater.com/v1"

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

// Client handles Meater Cloud API interactions.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new Meater Cloud client. A zero timeout means 10s.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Login exchanges an email and password for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (credentials.Token, error) {
	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return credentials.Token{}, fmt.Errorf("failed to marshal login body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/login", bytes.NewReader(body))
	if err != nil {
		return credentials.Token{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	respBody, err := c.do(req)
	if err != nil {
		return credentials.Token{}, fmt.Errorf("login failed: %w", err)
	}

	var resp loginResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return credentials.Token{}, fmt.Errorf("failed to decode login response: %w", err)
	}
	if resp.Data.Token == "" {
		return credentials.Token{}, errors.New("login response did not include a token")
	}

	return credentials.Token{Token: resp.Data.Token, UserID: resp.Data.UserID}, nil
}

// Devices fetches the raw GET /devices body. Every error wraps ErrFetchFailed.
func (c *Client) Devices(ctx context.Context, tok credentials.Token) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/devices", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", errors.Join(apperrors.ErrFetchFailed, err))
	}
	req.Header.Set("Authorization", tok.Bearer())
	req.Header.Set("Accept", "application/json")

	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", errors.Join(apperrors.ErrFetchFailed, err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", errors.Join(apperrors.ErrFetchFailed, err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &apperrors.APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp, body)}
	}
	return body, nil
}

func errorMessage(resp *http.Response, body []byte) string {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		return e.Message
	}
	if e.Status != "" {
		return e.Status
	}
	return http.StatusText(resp.StatusCode)
}
