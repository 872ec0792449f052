package hrstub

import (
	"context"
	"net/http"
	"strings"
)

type contextKey int

const principalKey contextKey = iota

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return ""
	}
	return strings.TrimPrefix(h, prefix)
}

// requireAuth authenticates the bearer token and stores the account on the
// request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		sess, ok := s.sessions.Get(token)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		user, ok := s.data.getUser(sess.UserID)
		if !ok || !user.Active {
			s.sessions.Delete(token)
			writeError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		ctx := context.WithValue(r.Context(), principalKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requirePermission gates a route on one permission string.
func (s *Server) requirePermission(name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := principalFromContext(r.Context())
			if user == nil {
				writeError(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			if !user.hasPermission(name) {
				writeError(w, http.StatusForbidden, "Forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func principalFromContext(ctx context.Context) *userRecord {
	user, _ := ctx.Value(principalKey).(*userRecord)
	return user
}
