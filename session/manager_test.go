package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paydesk/paydesk/client"
	"github.com/paydesk/paydesk/credstore"
	"github.com/paydesk/paydesk/credstore/memory"
	"github.com/paydesk/paydesk/hrstub"
)

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
	infos     []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func (n *recordingNotifier) Info(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.infos = append(n.infos, msg)
}

func (n *recordingNotifier) lastError() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.errors) == 0 {
		return ""
	}
	return n.errors[len(n.errors)-1]
}

type fixture struct {
	srv       *httptest.Server
	store     credstore.Store
	manager   *Manager
	notifier  *recordingNotifier
	redirects *atomic.Int32
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	srv := httptest.NewServer(hrstub.New(hrstub.WithLogger(discardLogger())).Router())
	t.Cleanup(srv.Close)

	f := &fixture{
		srv:       srv,
		store:     memory.New(),
		notifier:  &recordingNotifier{},
		redirects: &atomic.Int32{},
	}
	m, err := NewManager(srv.URL, f.store,
		WithLogger(discardLogger()),
		WithNotifier(f.notifier),
		WithRedirectHandler(func() { f.redirects.Add(1) }),
	)
	require.NoError(t, err)
	f.manager = m
	return f
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (f *fixture) login(t *testing.T, username string) {
	t.Helper()
	res, err := f.manager.Login(context.Background(), Credentials{
		Username: username,
		Password: hrstub.SeedPassword,
	})
	require.NoError(t, err)
	require.True(t, res.OK)
}

// revokeServerSide invalidates the manager's current token on the server
// without the manager's knowledge, simulating an expiry.
func (f *fixture) revokeServerSide(t *testing.T) {
	t.Helper()
	token, held := f.manager.Token()
	require.True(t, held)

	req, err := http.NewRequest(http.MethodPost, f.srv.URL+"/auth/logout", http.NoBody)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestInitialStateUnresolved(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, Unresolved, f.manager.State().Kind)
	assert.True(t, f.manager.Loading())
	assert.False(t, f.manager.HasPermission("read_user"))
	assert.False(t, f.manager.HasRole(RoleSuperAdmin))
}

func TestHydrateEmptyStore(t *testing.T) {
	f := newFixture(t)
	state := f.manager.Hydrate(context.Background())
	assert.Equal(t, Anonymous, state.Kind)
	assert.False(t, f.manager.Loading())
}

func TestHydrateValidToken(t *testing.T) {
	f := newFixture(t)
	f.login(t, "hr")

	// A second manager sharing the store picks the session up on startup.
	m2, err := NewManager(f.srv.URL, f.store, WithLogger(discardLogger()))
	require.NoError(t, err)
	state := m2.Hydrate(context.Background())

	require.Equal(t, Authenticated, state.Kind)
	assert.Equal(t, "hr", state.Principal.Username)
	assert.True(t, m2.HasRole(RoleHR))
	assert.True(t, m2.HasPermission("read_employee"))
}

func TestHydrateRejectedToken(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Save("stale-token"))

	state := f.manager.Hydrate(context.Background())
	assert.Equal(t, Anonymous, state.Kind)

	// The stale credential is gone from storage.
	_, err := f.store.Load()
	assert.ErrorIs(t, err, credstore.ErrNotFound)
	assert.Equal(t, int32(1), f.redirects.Load())
}

func TestLoginSuccess(t *testing.T) {
	f := newFixture(t)
	f.manager.Hydrate(context.Background())
	f.login(t, "finance")

	state := f.manager.State()
	require.Equal(t, Authenticated, state.Kind)
	assert.Equal(t, RoleFinance, state.Principal.Role)
	assert.True(t, f.manager.HasPermission("approve_payroll"))
	assert.False(t, f.manager.HasPermission("delete_user"))
	assert.True(t, f.manager.HasRole(RoleFinance))
	assert.False(t, f.manager.HasRole(RoleAdmin))

	token, err := f.store.Load()
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Contains(t, f.notifier.successes, "Login successful!")
}

func TestLoginBadCredentials(t *testing.T) {
	f := newFixture(t)
	f.manager.Hydrate(context.Background())

	res, err := f.manager.Login(context.Background(), Credentials{
		Username: "hr",
		Password: "wrong",
	})
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, "Invalid credentials", res.Message)
	assert.Equal(t, "Invalid credentials", f.notifier.lastError())
	assert.Equal(t, Anonymous, f.manager.State().Kind)
}

func TestLoginTransportError(t *testing.T) {
	store := memory.New()
	m, err := NewManager("http://127.0.0.1:1", store, WithLogger(discardLogger()))
	require.NoError(t, err)

	_, err = m.Login(context.Background(), Credentials{Username: "hr", Password: "x"})
	assert.Error(t, err)
}

func TestFailedReloginKeepsSession(t *testing.T) {
	f := newFixture(t)
	f.login(t, "admin")

	res, err := f.manager.Login(context.Background(), Credentials{
		Username: "admin",
		Password: "wrong",
	})
	require.NoError(t, err)
	assert.False(t, res.OK)

	// The 401 from the login endpoint must not tear the live session down.
	assert.Equal(t, Authenticated, f.manager.State().Kind)
	_, err = f.store.Load()
	assert.NoError(t, err)
	assert.Equal(t, int32(0), f.redirects.Load())
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	f.login(t, "employee")

	f.manager.Logout(context.Background())

	assert.Equal(t, Anonymous, f.manager.State().Kind)
	_, err := f.store.Load()
	assert.ErrorIs(t, err, credstore.ErrNotFound)
	assert.False(t, f.manager.HasPermission("read_payroll"))
	assert.Contains(t, f.notifier.successes, "Logged out successfully")
}

func TestLogoutSurvivesServerFailure(t *testing.T) {
	f := newFixture(t)
	f.login(t, "employee")

	// Teardown proceeds even when the server notification cannot be sent.
	f.srv.Close()
	f.manager.Logout(context.Background())

	assert.Equal(t, Anonymous, f.manager.State().Kind)
	_, err := f.store.Load()
	assert.ErrorIs(t, err, credstore.ErrNotFound)
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	f.login(t, "hr")

	res, err := f.manager.ChangePassword(context.Background(), "wrong", "next-password")
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, "Current password is incorrect", res.Message)
	assert.Equal(t, Authenticated, f.manager.State().Kind)

	res, err = f.manager.ChangePassword(context.Background(), hrstub.SeedPassword, "next-password")
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, Authenticated, f.manager.State().Kind)
	assert.Contains(t, f.notifier.successes, "Password changed successfully!")
}

func TestMidSessionRejection(t *testing.T) {
	f := newFixture(t)
	f.login(t, "superadmin")
	f.revokeServerSide(t)

	_, err := f.manager.Client().Users.List(context.Background(), client.UserListOptions{})
	assert.Error(t, err)

	assert.Equal(t, Anonymous, f.manager.State().Kind)
	_, serr := f.store.Load()
	assert.ErrorIs(t, serr, credstore.ErrNotFound)
	assert.Equal(t, int32(1), f.redirects.Load())
	assert.Equal(t, "Your session has expired. Please log in again.", f.notifier.lastError())
}

func TestConcurrentRejectionsSingleTeardown(t *testing.T) {
	f := newFixture(t)
	f.login(t, "superadmin")

	token, held := f.manager.Token()
	require.True(t, held)

	// N in-flight requests can all observe the same 401; only the first
	// report may win.
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.manager.CredentialRejected(token)
		}()
	}
	wg.Wait()

	assert.Equal(t, Anonymous, f.manager.State().Kind)
	assert.Equal(t, int32(1), f.redirects.Load())

	f.notifier.mu.Lock()
	expired := 0
	for _, msg := range f.notifier.errors {
		if msg == "Your session has expired. Please log in again." {
			expired++
		}
	}
	f.notifier.mu.Unlock()
	assert.Equal(t, 1, expired)
}

func TestRejectionOfForeignTokenIgnored(t *testing.T) {
	f := newFixture(t)
	f.login(t, "admin")

	f.manager.CredentialRejected("some-other-token")

	assert.Equal(t, Authenticated, f.manager.State().Kind)
	assert.Equal(t, int32(0), f.redirects.Load())
}

func TestSubscribe(t *testing.T) {
	f := newFixture(t)

	var mu sync.Mutex
	var kinds []Kind
	f.manager.Subscribe(func(s State) {
		mu.Lock()
		defer mu.Unlock()
		kinds = append(kinds, s.Kind)
	})

	f.manager.Hydrate(context.Background())
	f.login(t, "hr")
	f.manager.Logout(context.Background())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []Kind{Anonymous, Authenticated, Anonymous}, kinds)
}

func TestAuthenticatedRequestsCarryToken(t *testing.T) {
	f := newFixture(t)
	f.login(t, "superadmin")

	list, err := f.manager.Client().Users.List(context.Background(), client.UserListOptions{})
	require.NoError(t, err)
	assert.NotEmpty(t, list.Users)
}

func TestHydrateAfterStoreReadFailure(t *testing.T) {
	srv := httptest.NewServer(hrstub.New(hrstub.WithLogger(discardLogger())).Router())
	t.Cleanup(srv.Close)

	store := &brokenStore{}
	m, err := NewManager(srv.URL, store, WithLogger(discardLogger()))
	require.NoError(t, err)

	state := m.Hydrate(context.Background())
	assert.Equal(t, Anonymous, state.Kind)
	assert.True(t, store.cleared)
}

type brokenStore struct {
	cleared bool
}

func (s *brokenStore) Save(string) error { return nil }

func (s *brokenStore) Load() (string, error) {
	return "", errors.New("disk read failed")
}

func (s *brokenStore) Clear() error {
	s.cleared = true
	return nil
}
