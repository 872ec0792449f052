package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the API, carrying the server's
// human-readable message when it provided one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
}

func newAPIError(status int, body []byte) *APIError {
	var env envelope
	_ = json.Unmarshal(body, &env)
	return &APIError{Status: status, Message: env.Message}
}

// IsAPIError reports whether err is an *APIError with the given status.
func IsAPIError(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// ErrorMessage extracts the server-provided message from err, falling back
// to the given default for errors without one.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
