package hrstub

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

type userInput struct {
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	Active      *bool    `json:"active"`
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	q := r.URL.Query()
	search := strings.ToLower(q.Get("search"))
	role := q.Get("role")

	var filtered []*userRecord
	for _, u := range s.data.listUsers() {
		if role != "" && u.Role != role {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(u.Username), search) &&
			!strings.Contains(strings.ToLower(u.Email), search) {
			continue
		}
		filtered = append(filtered, u)
	}

	start, end, meta := paginateSlice(len(filtered), page, limit)
	writeData(w, http.StatusOK, map[string]any{
		"users":      filtered[start:end],
		"pagination": meta,
	})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, ok := s.data.getUser(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeData(w, http.StatusOK, user)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeJSON[userInput](w, r)
	if !ok {
		return
	}
	if in.Username == "" || in.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}
	if _, exists := s.data.getUserByUsername(in.Username); exists {
		writeError(w, http.StatusConflict, "Username already taken")
		return
	}
	perms, validRole := permissionsForRole(in.Role)
	if !validRole {
		writeError(w, http.StatusBadRequest, "Unknown role")
		return
	}
	if len(in.Permissions) > 0 {
		perms = in.Permissions
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.MinCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}
	user := &userRecord{
		ID:           newID(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		Permissions:  perms,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}
	s.data.addUser(user)

	actor := principalFromContext(r.Context())
	s.data.recordAudit("user_created", "users/"+user.ID, actor.Username, map[string]string{"username": user.Username})
	writeData(w, http.StatusCreated, user)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	user, ok := s.data.getUser(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	in, ok := decodeJSON[userInput](w, r)
	if !ok {
		return
	}

	if in.Email != "" {
		user.Email = in.Email
	}
	if in.Role != "" {
		perms, validRole := permissionsForRole(in.Role)
		if !validRole {
			writeError(w, http.StatusBadRequest, "Unknown role")
			return
		}
		user.Role = in.Role
		user.Permissions = perms
	}
	if len(in.Permissions) > 0 {
		user.Permissions = in.Permissions
	}
	if in.Active != nil {
		user.Active = *in.Active
	}

	actor := principalFromContext(r.Context())
	s.data.recordAudit("user_updated", "users/"+user.ID, actor.Username, nil)
	writeData(w, http.StatusOK, user)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	actor := principalFromContext(r.Context())
	if actor.ID == id {
		writeError(w, http.StatusBadRequest, "Cannot delete your own account")
		return
	}
	if !s.data.deleteUser(id) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	s.sessions.Revoke(id)
	s.data.recordAudit("user_deleted", "users/"+id, actor.Username, nil)
	writeData(w, http.StatusOK, map[string]string{"message": "User deleted"})
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	user, ok := s.data.getUser(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	body, ok := decodeJSON[struct {
		NewPassword string `json:"newPassword"`
	}](w, r)
	if !ok {
		return
	}
	if body.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "New password is required")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.MinCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset password")
		return
	}
	user.PasswordHash = hash
	s.sessions.Revoke(user.ID)

	actor := principalFromContext(r.Context())
	s.data.recordAudit("password_reset", "users/"+user.ID, actor.Username, nil)
	writeData(w, http.StatusOK, map[string]string{"message": "Password reset"})
}
