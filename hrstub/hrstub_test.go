package hrstub

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New().Router())
	t.Cleanup(srv.Close)
	return srv
}

// login authenticates a seeded account and returns its bearer token.
func login(t *testing.T, srv *httptest.Server, username string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"username": username, "password": SeedPassword})
	resp, err := http.Post(srv.URL+"/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.Data.Token)
	return out.Data.Token
}

func doAuthed(t *testing.T, srv *httptest.Server, token, method, path string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeData[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out.Data
}

func TestLoginInvalidCredentials(t *testing.T) {
	srv := newTestServer(t)

	body, _ := json.Marshal(map[string]string{"username": "alice", "password": "wrong"})
	resp, err := http.Post(srv.URL+"/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var out struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Invalid credentials", out.Message)
}

func TestProfileRequiresToken(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/auth/profile")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginAndProfile(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "hr")

	resp := doAuthed(t, srv, token, http.MethodGet, "/auth/profile", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	profile := decodeData[map[string]any](t, resp)
	assert.Equal(t, "hr", profile["username"])
	assert.Equal(t, "HR", profile["role"])
	assert.Contains(t, profile["permissions"], "read_employee")
}

func TestLogoutRevokesToken(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "admin")

	resp := doAuthed(t, srv, token, http.MethodPost, "/auth/logout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doAuthed(t, srv, token, http.MethodGet, "/auth/profile", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPermissionEnforcement(t *testing.T) {
	srv := newTestServer(t)

	// The Employee role holds no admin permissions.
	token := login(t, srv, "employee")
	resp := doAuthed(t, srv, token, http.MethodGet, "/users", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// HR may read employees but not approve payroll.
	hrToken := login(t, srv, "hr")
	resp = doAuthed(t, srv, hrToken, http.MethodGet, "/employees", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestChangePassword(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "finance")

	resp := doAuthed(t, srv, token, http.MethodPost, "/auth/change-password", map[string]string{
		"currentPassword": "nope",
		"newPassword":     "next-password",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doAuthed(t, srv, token, http.MethodPost, "/auth/change-password", map[string]string{
		"currentPassword": SeedPassword,
		"newPassword":     "next-password",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The presented session stays valid.
	resp = doAuthed(t, srv, token, http.MethodGet, "/auth/profile", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUserCRUDAndAuditTrail(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "superadmin")

	resp := doAuthed(t, srv, token, http.MethodPost, "/users", map[string]any{
		"username": "casey",
		"email":    "casey@paydesk.local",
		"password": "initial-password",
		"role":     "HR",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeData[map[string]any](t, resp)
	id, _ := created["_id"].(string)
	require.NotEmpty(t, id)

	resp = doAuthed(t, srv, token, http.MethodDelete, "/users/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doAuthed(t, srv, token, http.MethodGet, "/audit?action=user_created", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	logs := decodeData[map[string]any](t, resp)
	entries, _ := logs["logs"].([]any)
	require.Len(t, entries, 1)
}

func TestPayrollApproveFlow(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "finance")

	resp := doAuthed(t, srv, token, http.MethodGet, "/payroll?status=Pending", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decodeData[struct {
		Payrolls []struct {
			ID string `json:"_id"`
		} `json:"payrolls"`
	}](t, resp)
	require.NotEmpty(t, list.Payrolls)
	id := list.Payrolls[0].ID

	resp = doAuthed(t, srv, token, http.MethodPost, "/payroll/"+id+"/approve", map[string]string{"notes": "ok"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	approved := decodeData[map[string]any](t, resp)
	assert.Equal(t, "Approved", approved["status"])
	assert.Equal(t, "finance", approved["approvedBy"])

	// Approving twice fails.
	resp = doAuthed(t, srv, token, http.MethodPost, "/payroll/"+id+"/approve", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPayslipAndCSV(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "finance")

	resp := doAuthed(t, srv, token, http.MethodGet, "/payroll", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decodeData[struct {
		Payrolls []struct {
			ID string `json:"_id"`
		} `json:"payrolls"`
	}](t, resp)
	require.NotEmpty(t, list.Payrolls)

	resp = doAuthed(t, srv, token, http.MethodGet, "/payroll/"+list.Payrolls[0].ID+"/payslip", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/plain", resp.Header.Get("Content-Type"))

	resp = doAuthed(t, srv, token, http.MethodGet, "/payroll/csv", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
}

func TestPagination(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "hr")

	for i := 0; i < 15; i++ {
		resp := doAuthed(t, srv, token, http.MethodPost, "/employees", map[string]any{
			"firstName": "Emp",
			"lastName":  fmt.Sprintf("Number%02d", i),
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := doAuthed(t, srv, token, http.MethodGet, "/employees?page=2&limit=10", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decodeData[struct {
		Employees  []any          `json:"employees"`
		Pagination paginationMeta `json:"pagination"`
	}](t, resp)

	// 15 created plus 1 seeded.
	assert.Equal(t, 16, list.Pagination.Total)
	assert.Equal(t, 2, list.Pagination.Pages)
	assert.Len(t, list.Employees, 6)
}
