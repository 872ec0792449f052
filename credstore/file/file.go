// Package file provides a credential store backed by a JSON file in the
// user's home directory.
package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/paydesk/paydesk/credstore"
)

const credentialsFile = "credentials.json"

type credentialsDoc struct {
	Token string `json:"token"`
}

// Store implements credstore.Store using a JSON file.
type Store struct {
	path string
}

var _ credstore.Store = (*Store)(nil)

// New creates a Store rooted at dir, creating the directory if needed.
// The directory is restricted to the owner.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating credentials directory: %w", err)
	}
	return &Store{path: filepath.Join(dir, credentialsFile)}, nil
}

// DefaultDir returns the default credentials directory, ~/.paydesk.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving user home directory: %w", err)
	}
	return filepath.Join(home, ".paydesk"), nil
}

func (s *Store) Save(token string) error {
	data, err := json.MarshalIndent(credentialsDoc{Token: token}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling credentials: %w", err)
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *Store) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", credstore.ErrNotFound
		}
		return "", fmt.Errorf("reading credentials file: %w", err)
	}
	var doc credentialsDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("unmarshaling credentials file: %w", err)
	}
	if doc.Token == "" {
		return "", credstore.ErrNotFound
	}
	return doc.Token, nil
}

func (s *Store) Clear() error {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(s.path)
}
