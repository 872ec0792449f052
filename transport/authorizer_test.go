package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	token string
	held  bool
}

func (s staticSource) Token() (string, bool) { return s.token, s.held }

type recordingSink struct {
	mu     sync.Mutex
	tokens []string
}

func (s *recordingSink) CredentialRejected(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = append(s.tokens, token)
}

func (s *recordingSink) rejected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.tokens...)
}

func TestInjectsBearerToken(t *testing.T) {
	var gotAuth, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
	}))
	defer srv.Close()

	sink := &recordingSink{}
	client := &http.Client{Transport: New(staticSource{token: "tok-1", held: true}, sink)}

	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.NotEmpty(t, gotRequestID)
	assert.Empty(t, sink.rejected())
}

func TestNoTokenSendsUnmodified(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	sink := &recordingSink{}
	client := &http.Client{Transport: New(staticSource{}, sink)}

	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Empty(t, gotAuth)
	// No credential was attached, so there is nothing to reject.
	assert.Empty(t, sink.rejected())
}

func TestUnauthorizedReportsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	sink := &recordingSink{}
	client := &http.Client{Transport: New(staticSource{token: "tok-stale", held: true}, sink)}

	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, []string{"tok-stale"}, sink.rejected())
}

func TestNonAuthStatusesNotIntercepted(t *testing.T) {
	for _, status := range []int{http.StatusForbidden, http.StatusNotFound, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		sink := &recordingSink{}
		client := &http.Client{Transport: New(staticSource{token: "tok-1", held: true}, sink)}

		resp, err := client.Get(srv.URL)
		require.NoError(t, err)
		resp.Body.Close()
		srv.Close()

		assert.Empty(t, sink.rejected(), "status %d must not be intercepted", status)
	}
}

func TestRejectionDetectionOptOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	sink := &recordingSink{}
	client := &http.Client{Transport: New(staticSource{token: "tok-1", held: true}, sink)}

	req, err := http.NewRequestWithContext(WithoutRejectionDetection(context.Background()), http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Empty(t, sink.rejected())
}

type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func TestNetworkErrorPassesThrough(t *testing.T) {
	sink := &recordingSink{}
	a := New(staticSource{token: "tok-1", held: true}, sink, WithBase(failingTransport{}))

	req, err := http.NewRequest(http.MethodGet, "http://paydesk.invalid/", nil)
	require.NoError(t, err)
	_, err = a.RoundTrip(req)
	require.Error(t, err)
	assert.Empty(t, sink.rejected())
}

func TestDoesNotMutateOriginalRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	client := &http.Client{Transport: New(staticSource{token: "tok-1", held: true}, &recordingSink{})}

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Empty(t, req.Header.Get("Authorization"))
}
