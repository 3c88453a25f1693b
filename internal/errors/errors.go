package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds raised along the poll-to-display pipeline.
var (
	// ErrCredentialMissing is fatal and only returned at startup.
	ErrCredentialMissing = errors.New("credential missing")

	// ErrFetchFailed covers network errors, timeouts and non-2xx responses.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrDecodeFailed covers malformed or unexpected payloads.
	ErrDecodeFailed = errors.New("decode failed")

	// ErrClassificationAmbiguous is logged when a band cannot be computed.
	ErrClassificationAmbiguous = errors.New("classification ambiguous")
)

// APIError represents a non-2xx response from the Meater Cloud API
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("meater API error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("meater API error (status %d): %s", e.StatusCode, e.Message)
}

// Unwrap makes every APIError a fetch failure.
func (e *APIError) Unwrap() error {
	return ErrFetchFailed
}

// Unauthorized reports whether the API rejected the bearer token.
func (e *APIError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsTransient reports whether err is a per-cycle failure the poller can skip over.
func IsTransient(err error) bool {
	return errors.Is(err, ErrFetchFailed) || errors.Is(err, ErrDecodeFailed)
}

// IsFatal reports whether err must abort startup.
func IsFatal(err error) bool {
	return errors.Is(err, ErrCredentialMissing)
}
