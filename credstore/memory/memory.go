// Package memory provides a thread-safe in-memory credential store.
// Suitable for testing and single-process use cases.
package memory

import (
	"sync"

	"github.com/paydesk/paydesk/credstore"
)

// Store is a thread-safe in-memory implementation of credstore.Store.
type Store struct {
	mu      sync.RWMutex
	token   string
	present bool
}

var _ credstore.Store = (*Store)(nil)

// New creates a new empty in-memory Store.
func New() *Store {
	return &Store{}
}

func (s *Store) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.present = true
	return nil
}

func (s *Store) Load() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.present {
		return "", credstore.ErrNotFound
	}
	return s.token, nil
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.present = false
	return nil
}
