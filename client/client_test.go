package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClientFor(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL)
	require.NoError(t, err)
	return c
}

func TestEnvelopeDecoding(t *testing.T) {
	c := newClientFor(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/abc", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"_id": "abc", "username": "hr", "role": "HR"},
		})
	})

	user, err := c.Users.Get(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", user.ID)
	assert.Equal(t, "hr", user.Username)
}

func TestEnvelopeMissingData(t *testing.T) {
	c := newClientFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message": "looks odd"}`))
	})

	_, err := c.Users.Get(context.Background(), "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing data")
}

func TestAPIErrorCarriesServerMessage(t *testing.T) {
	c := newClientFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message": "Username already taken"}`))
	})

	_, err := c.Users.Create(context.Background(), UserInput{Username: "dup"})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "Username already taken", apiErr.Message)
	assert.True(t, IsAPIError(err, http.StatusConflict))
	assert.False(t, IsAPIError(err, http.StatusNotFound))
	assert.Equal(t, "Username already taken", ErrorMessage(err, "fallback"))
}

func TestAPIErrorWithoutMessageUsesFallback(t *testing.T) {
	c := newClientFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	})

	_, err := c.Users.Get(context.Background(), "abc")
	require.Error(t, err)
	assert.Equal(t, "fallback", ErrorMessage(err, "fallback"))
	assert.Contains(t, err.Error(), "502")
}

func TestErrorMessageOnPlainError(t *testing.T) {
	assert.Equal(t, "fallback", ErrorMessage(errors.New("dial tcp: refused"), "fallback"))
}

func TestListOptionsBecomeQuery(t *testing.T) {
	c := newClientFor(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "25", q.Get("limit"))
		assert.Equal(t, "quinn", q.Get("search"))
		assert.Equal(t, "HR", q.Get("role"))
		w.Write([]byte(`{"data": {"users": [], "pagination": {"total": 0, "page": 2, "limit": 25, "pages": 0}}}`))
	})

	list, err := c.Users.List(context.Background(), UserListOptions{
		Page:   2,
		Limit:  25,
		Search: "quinn",
		Role:   "HR",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, list.Pagination.Page)
}

func TestLoginNormalizesPassword(t *testing.T) {
	var got struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	c := newClientFor(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"data": {"token": "tok", "user": {"_id": "u1", "username": "hr", "role": "HR"}}}`))
	})

	// U+00E9 composed vs U+0065 U+0301 decomposed must hash identically
	// server-side, so the client sends the NFKD form.
	res, err := c.Auth.Login(context.Background(), LoginRequest{
		Username: "hr",
		Password: "café",
	})
	require.NoError(t, err)
	assert.Equal(t, "tok", res.Token)
	assert.Equal(t, "café", got.Password)
}

func TestRawDownload(t *testing.T) {
	c := newClientFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte("id,net\np1,4600\n"))
	})

	data, err := c.Payroll.ExportCSV(context.Background(), PayrollListOptions{})
	require.NoError(t, err)
	assert.Contains(t, string(data), "p1,4600")
}

func TestContextCancellation(t *testing.T) {
	c := newClientFor(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Users.Get(ctx, "abc")
	assert.ErrorIs(t, err, context.Canceled)
}
