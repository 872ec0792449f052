// Package config loads the console's runtime configuration from the
// environment, optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Store backend names accepted in PAYDESK_STORE.
const (
	StoreFile = "file"
	StoreBolt = "bolt"
)

// Config is the resolved console configuration.
type Config struct {
	// APIURL is the base URL of the paydesk API.
	APIURL string
	// DataDir holds the credential store. Defaults to ~/.paydesk.
	DataDir string
	// StoreBackend selects the credential store implementation.
	StoreBackend string
}

// Load resolves configuration from the environment. A .env file in the
// working directory is merged in first when present; real environment
// variables win over it.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		APIURL:       "http://localhost:5001/api",
		StoreBackend: StoreFile,
	}
	if v := os.Getenv("PAYDESK_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("PAYDESK_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("PAYDESK_STORE"); v != "" {
		cfg.StoreBackend = v
	}

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolving home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".paydesk")
	}

	switch cfg.StoreBackend {
	case StoreFile, StoreBolt:
	default:
		return Config{}, fmt.Errorf("unknown PAYDESK_STORE %q (want %q or %q)", cfg.StoreBackend, StoreFile, StoreBolt)
	}
	return cfg, nil
}
