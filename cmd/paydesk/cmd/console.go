package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"

	"github.com/paydesk/paydesk/credstore"
	boltstore "github.com/paydesk/paydesk/credstore/bolt"
	filestore "github.com/paydesk/paydesk/credstore/file"
	"github.com/paydesk/paydesk/guard"
	"github.com/paydesk/paydesk/internal/config"
	"github.com/paydesk/paydesk/session"
)

// ptermNotifier renders session notices as console output.
type ptermNotifier struct{}

func (ptermNotifier) Success(msg string) { pterm.Success.Println(msg) }
func (ptermNotifier) Error(msg string)   { pterm.Error.Println(msg) }
func (ptermNotifier) Info(msg string)    { pterm.Info.Println(msg) }

// console bundles everything a command needs to talk to the API.
type console struct {
	manager *session.Manager
	closer  io.Closer
}

func (c *console) Close() {
	if c.closer != nil {
		c.closer.Close()
	}
}

func newConsole(ctx context.Context) (*console, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	var (
		store  credstore.Store
		closer io.Closer
	)
	switch cfg.StoreBackend {
	case config.StoreBolt:
		if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		bs, err := boltstore.NewFromFile(filepath.Join(cfg.DataDir, "credentials.db"), nil)
		if err != nil {
			return nil, err
		}
		store, closer = bs, bs
	default:
		fs, err := filestore.New(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		store = fs
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if os.Getenv("PAYDESK_DEBUG") != "" {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	m, err := session.NewManager(cfg.APIURL, store,
		session.WithLogger(logger),
		session.WithNotifier(ptermNotifier{}),
		session.WithRedirectHandler(func() {
			pterm.Info.Println(`Run "paydesk login" to start a new session.`)
		}),
	)
	if err != nil {
		if closer != nil {
			closer.Close()
		}
		return nil, err
	}

	m.Hydrate(ctx)
	return &console{manager: m, closer: closer}, nil
}

var errNotLoggedIn = errors.New(`not logged in, run "paydesk login" first`)

// requireSession opens the console and insists on an authenticated session.
func requireSession(ctx context.Context) (*console, error) {
	c, err := newConsole(ctx)
	if err != nil {
		return nil, err
	}
	if guard.Decide(c.manager.State(), guard.Protected) != guard.Allow {
		c.Close()
		return nil, errNotLoggedIn
	}
	return c, nil
}
