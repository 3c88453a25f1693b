package meater

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"meater/internal/credentials"
	apperrors "meater/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("", 0)
	assert.Equal(t, DefaultBaseURL, c.BaseURL)
	assert.Equal(t, 10*time.Second, c.HTTPClient.Timeout)

	c = NewClient("http://localhost:8080/v1/", 3*time.Second)
	assert.Equal(t, "http://localhost:8080/v1", c.BaseURL)
	assert.Equal(t, 3*time.Second, c.HTTPClient.Timeout)
}

func TestClient_Login(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, "pit@example.com", body["email"])
		assert.Equal(t, "hunter2", body["password"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"OK","statusCode":200,"data":{"token":"tok-123","userId":"user-9"},"meta":{}}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, time.Second)
	tok, err := c.Login(context.Background(), "pit@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, credentials.Token{Token: "tok-123", UserID: "user-9"}, tok)
}

func TestClient_Login_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status":"Unauthorized","statusCode":401}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, time.Second)
	_, err := c.Login(context.Background(), "pit@example.com", "wrong")
	require.Error(t, err)

	var apiErr *apperrors.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Unauthorized", apiErr.Message)
	assert.True(t, apiErr.Unauthorized())
}

func TestClient_Login_NoToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"OK","statusCode":200,"data":{}}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, time.Second)
	_, err := c.Login(context.Background(), "pit@example.com", "pw")
	assert.ErrorContains(t, err, "did not include a token")
}

func TestClient_Devices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/devices", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.Write([]byte(idlePayload))
	}))
	defer server.Close()

	c := NewClient(server.URL, time.Second)
	body, err := c.Devices(context.Background(), credentials.Token{Token: "tok-123"})
	require.NoError(t, err)
	assert.JSONEq(t, idlePayload, string(body))
}

func TestClient_Devices_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"status":"Too Many Requests","statusCode":429,"message":"Rate limit exceeded"}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, time.Second)
	_, err := c.Devices(context.Background(), credentials.Token{Token: "t"})

	var apiErr *apperrors.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Rate limit exceeded", apiErr.Message)
	assert.ErrorIs(t, err, apperrors.ErrFetchFailed)
}

func TestClient_Devices_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	c := NewClient(server.URL, 50*time.Millisecond)
	_, err := c.Devices(context.Background(), credentials.Token{Token: "t"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrFetchFailed)
	assert.True(t, apperrors.IsTransient(err))
}

func TestClient_Devices_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c := NewClient(url, time.Second)
	_, err := c.Devices(context.Background(), credentials.Token{Token: "t"})
	assert.ErrorIs(t, err, apperrors.ErrFetchFailed)
}
