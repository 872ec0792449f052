package hrstub

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// handleLogin verifies credentials and issues a bearer token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[loginRequest](w, r)
	if !ok {
		return
	}
	user, found := s.data.getUserByUsername(req.Username)
	if !found || !user.Active ||
		bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	now := time.Now().UTC()
	user.LastLogin = &now

	token := uuid.NewString()
	s.sessions.Put(token, stubSession{UserID: user.ID, CreatedAt: now})
	s.data.recordAudit("login", "auth", user.Username, nil)

	writeData(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  user,
	})
}

// handleLogout revokes the presented token. Always succeeds: the client is
// tearing its session down regardless.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := bearerToken(r); token != "" {
		if sess, ok := s.sessions.Get(token); ok {
			if user, found := s.data.getUser(sess.UserID); found {
				s.data.recordAudit("logout", "auth", user.Username, nil)
			}
			s.sessions.Delete(token)
		}
	}
	writeData(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// handleProfile returns the authenticated account.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, principalFromContext(r.Context()))
}

// handleChangePassword changes the caller's own password. The presented
// session stays valid.
func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[changePasswordRequest](w, r)
	if !ok {
		return
	}
	if req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "New password is required")
		return
	}

	user := principalFromContext(r.Context())
	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.CurrentPassword)) != nil {
		writeError(w, http.StatusBadRequest, "Current password is incorrect")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.MinCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to change password")
		return
	}
	user.PasswordHash = hash
	s.data.recordAudit("password_changed", "auth", user.Username, nil)

	writeData(w, http.StatusOK, map[string]string{"message": "Password changed"})
}
