package client

import (
	"context"
	"net/http"

	"github.com/paydesk/paydesk/internal/util"
	"github.com/paydesk/paydesk/transport"
)

// AuthService talks to the /auth endpoints.
type AuthService struct {
	client *Client
}

// LoginRequest is the JSON body for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned from POST /auth/login.
type LoginResponse struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

// ChangePasswordRequest is the JSON body for POST /auth/change-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Login exchanges credentials for a bearer token and the caller's profile.
// A 401 here means the submitted credentials were wrong, not that the held
// token is stale, so rejection detection is suppressed for this request.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	req.Password = util.NormalizePassword(req.Password)
	ctx = transport.WithoutRejectionDetection(ctx)

	var out LoginResponse
	if err := s.client.do(ctx, http.MethodPost, nil, req, &out, "auth", "login"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout notifies the server that the session is over. The caller tears the
// session down unconditionally afterwards, so a stale-token 401 here must
// not race a second teardown through the rejection sink.
func (s *AuthService) Logout(ctx context.Context) error {
	ctx = transport.WithoutRejectionDetection(ctx)
	return s.client.do(ctx, http.MethodPost, nil, nil, nil, "auth", "logout")
}

// Profile fetches the authenticated caller's profile.
func (s *AuthService) Profile(ctx context.Context) (*Profile, error) {
	var out Profile
	if err := s.client.do(ctx, http.MethodGet, nil, nil, &out, "auth", "profile"); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword changes the caller's password. Session state is unaffected
// either way, so rejection detection is suppressed here as well.
func (s *AuthService) ChangePassword(ctx context.Context, current, newPassword string) error {
	req := ChangePasswordRequest{
		CurrentPassword: util.NormalizePassword(current),
		NewPassword:     util.NormalizePassword(newPassword),
	}
	ctx = transport.WithoutRejectionDetection(ctx)
	return s.client.do(ctx, http.MethodPost, nil, req, nil, "auth", "change-password")
}
