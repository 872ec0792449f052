// Package credstore persists the session's bearer credential across process
// restarts. The token is treated as an opaque string and never inspected.
package credstore

import "errors"

// ErrNotFound is returned by Load when no credential is stored.
var ErrNotFound = errors.New("credential not found")

// Store persists at most one opaque bearer token under a fixed well-known key.
type Store interface {
	// Save persists the token, replacing any previously stored one.
	Save(token string) error
	// Load returns the stored token, or ErrNotFound when absent.
	Load() (string, error)
	// Clear removes the stored token. Clearing an empty store is a no-op.
	Clear() error
}
