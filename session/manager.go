package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/awnumar/memguard"

	"github.com/paydesk/paydesk/client"
	"github.com/paydesk/paydesk/credstore"
	"github.com/paydesk/paydesk/transport"
)

const (
	loginFailedMessage          = "Login failed"
	changePasswordFailedMessage = "Failed to change password"
	sessionExpiredMessage       = "Your session has expired. Please log in again."
)

// Credentials are the caller-supplied login inputs.
type Credentials struct {
	Username string
	Password string
}

// Result is the outcome of a fallible session operation. Domain failures
// (bad credentials, validation) are reported here with a user-displayable
// message; they are never returned as errors.
type Result struct {
	OK      bool
	Message string
}

// Manager owns the session state machine. It is the only mutator of the
// session state and the sole caller of the credential store.
//
// The manager doubles as the transport credential source and rejection sink,
// so the credential clear performed by a teardown and the token check of the
// next outbound request are serialized by the same mutex: no request
// dispatched after teardown begins can carry the stale token.
type Manager struct {
	mu       sync.Mutex
	state    State
	token    *memguard.Enclave
	watchers []func(State)

	store    credstore.Store
	api      *client.Client
	logger   *slog.Logger
	notifier Notifier
	redirect func()
	base     http.RoundTripper
}

var (
	_ transport.CredentialSource = (*Manager)(nil)
	_ transport.RejectionSink    = (*Manager)(nil)
)

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the structured logger. Default: JSON to stderr.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithNotifier sets the user-facing notifier. Default: notices go to the logger.
func WithNotifier(n Notifier) Option {
	return func(m *Manager) {
		m.notifier = n
	}
}

// WithRedirectHandler sets the hook fired exactly once per credential
// rejection, directing the consumer to the public entry point.
func WithRedirectHandler(fn func()) Option {
	return func(m *Manager) {
		m.redirect = fn
	}
}

// WithBaseTransport sets the round tripper beneath the authorizer.
func WithBaseTransport(rt http.RoundTripper) Option {
	return func(m *Manager) {
		m.base = rt
	}
}

// NewManager creates a Manager talking to the API at baseURL and persisting
// its credential in store. The initial state is Unresolved until Hydrate runs.
func NewManager(baseURL string, store credstore.Store, opts ...Option) (*Manager, error) {
	m := &Manager{
		state: State{Kind: Unresolved},
		store: store,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	if m.notifier == nil {
		m.notifier = slogNotifier{logger: m.logger}
	}
	if m.base == nil {
		m.base = http.DefaultTransport
	}

	authorizer := transport.New(m, m, transport.WithBase(m.base))
	api, err := client.New(baseURL, client.WithHTTPClient(&http.Client{Transport: authorizer}))
	if err != nil {
		return nil, err
	}
	m.api = api
	return m, nil
}

// Client returns the API client whose requests carry the session credential.
func (m *Manager) Client() *client.Client {
	return m.api
}

// State returns a snapshot of the current session state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Loading reports whether startup hydration is still in progress.
func (m *Manager) Loading() bool {
	return m.State().Loading()
}

// HasPermission reports whether the authenticated principal holds the named
// permission. Always false outside the Authenticated state.
func (m *Manager) HasPermission(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Kind != Authenticated {
		return false
	}
	return m.state.Principal.HasPermission(name)
}

// HasRole reports whether the authenticated principal has exactly the given
// role. Always false outside the Authenticated state.
func (m *Manager) HasRole(role Role) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Kind != Authenticated {
		return false
	}
	return m.state.Principal.Role == role
}

// Subscribe registers a callback invoked after every state transition with a
// snapshot of the new state.
func (m *Manager) Subscribe(fn func(State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.watchers = append(m.watchers, fn)
}

// Hydrate resolves the startup state from the credential store. An absent
// credential yields Anonymous directly; a present one is validated with a
// profile fetch, and any failure there is treated identically to logout so
// the session can never stay Unresolved or falsely Authenticated.
func (m *Manager) Hydrate(ctx context.Context) State {
	token, err := m.store.Load()
	if err != nil {
		if !errors.Is(err, credstore.ErrNotFound) {
			m.logger.Warn("credential store unreadable, discarding", "error", err)
			if cerr := m.store.Clear(); cerr != nil {
				m.logger.Warn("clearing credential store failed", "error", cerr)
			}
		}
		m.mu.Lock()
		m.token = nil
		m.state = State{Kind: Anonymous}
		m.mu.Unlock()
		m.notifyWatchers()
		return m.State()
	}

	m.mu.Lock()
	m.token = memguard.NewEnclave([]byte(token))
	m.mu.Unlock()

	profile, err := m.api.Auth.Profile(ctx)
	var principal *Principal
	if err == nil {
		principal, err = newPrincipal(profile)
	}
	if err != nil {
		m.logger.Warn("profile fetch failed during hydration", "error", err)
		// A 401 has already been torn down by the rejection sink; the
		// token comparison keeps this from running a second teardown.
		m.mu.Lock()
		if current, held := m.tokenLocked(); held && current == token {
			m.teardownLocked()
		}
		m.mu.Unlock()
		m.notifyWatchers()
		return m.State()
	}

	m.mu.Lock()
	if current, held := m.tokenLocked(); held && current == token {
		m.state = State{Kind: Authenticated, Principal: principal}
	}
	m.mu.Unlock()
	m.notifyWatchers()
	return m.State()
}

// Login exchanges credentials for a session. Domain failures come back as a
// Result carrying the server's message (or a generic fallback); only
// transport-level failures are returned as errors.
func (m *Manager) Login(ctx context.Context, creds Credentials) (Result, error) {
	res, err := m.api.Auth.Login(ctx, client.LoginRequest{
		Username: creds.Username,
		Password: creds.Password,
	})
	if err != nil {
		var apiErr *client.APIError
		if !errors.As(err, &apiErr) {
			return Result{}, err
		}
		msg := client.ErrorMessage(err, loginFailedMessage)
		m.notifier.Error(msg)
		return Result{Message: msg}, nil
	}

	principal, err := newPrincipal(&res.User)
	if err != nil {
		m.logger.Warn("login returned malformed profile", "error", err)
		m.notifier.Error(loginFailedMessage)
		return Result{Message: loginFailedMessage}, nil
	}
	if err := m.store.Save(res.Token); err != nil {
		return Result{}, fmt.Errorf("persisting credential: %w", err)
	}

	m.mu.Lock()
	m.token = memguard.NewEnclave([]byte(res.Token))
	m.state = State{Kind: Authenticated, Principal: principal}
	m.mu.Unlock()

	m.notifier.Success("Login successful!")
	m.notifyWatchers()
	return Result{OK: true}, nil
}

// Logout tears the session down. The server notification is best-effort:
// its failure is logged and never blocks the rest of the operation. Calling
// Logout from Anonymous is a harmless no-op beyond that network call.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.api.Auth.Logout(ctx); err != nil {
		m.logger.Warn("logout notification failed", "error", err)
	}

	m.mu.Lock()
	m.teardownLocked()
	m.mu.Unlock()

	m.notifier.Success("Logged out successfully")
	m.notifyWatchers()
}

// ChangePassword delegates to the server. Session state is unchanged on
// success and failure; the error-extraction policy matches Login.
func (m *Manager) ChangePassword(ctx context.Context, current, newPassword string) (Result, error) {
	if err := m.api.Auth.ChangePassword(ctx, current, newPassword); err != nil {
		var apiErr *client.APIError
		if !errors.As(err, &apiErr) {
			return Result{}, err
		}
		msg := client.ErrorMessage(err, changePasswordFailedMessage)
		m.notifier.Error(msg)
		return Result{Message: msg}, nil
	}
	m.notifier.Success("Password changed successfully!")
	return Result{OK: true}, nil
}

// Token implements transport.CredentialSource.
func (m *Manager) Token() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tokenLocked()
}

// CredentialRejected implements transport.RejectionSink. Rejections for a
// token other than the currently held one are ignored, so N concurrent
// in-flight rejections collapse into a single teardown and redirect.
func (m *Manager) CredentialRejected(rejected string) {
	m.mu.Lock()
	current, held := m.tokenLocked()
	if !held || current != rejected {
		m.mu.Unlock()
		return
	}
	m.teardownLocked()
	m.mu.Unlock()

	m.notifier.Error(sessionExpiredMessage)
	if m.redirect != nil {
		m.redirect()
	}
	m.notifyWatchers()
}

func (m *Manager) tokenLocked() (string, bool) {
	if m.token == nil {
		return "", false
	}
	buf, err := m.token.Open()
	if err != nil {
		m.logger.Error("opening credential enclave failed", "error", err)
		return "", false
	}
	defer buf.Destroy()
	return string(buf.Bytes()), true
}

func (m *Manager) teardownLocked() {
	if err := m.store.Clear(); err != nil {
		m.logger.Warn("clearing credential store failed", "error", err)
	}
	m.token = nil
	m.state = State{Kind: Anonymous}
}

func (m *Manager) notifyWatchers() {
	m.mu.Lock()
	state := m.state
	watchers := append([](func(State))(nil), m.watchers...)
	m.mu.Unlock()
	for _, fn := range watchers {
		fn(state)
	}
}
