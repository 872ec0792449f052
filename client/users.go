package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// UsersService talks to the /users endpoints.
type UsersService struct {
	client *Client
}

// UserListOptions filters and paginates GET /users.
type UserListOptions struct {
	Page   int
	Limit  int
	Search string
	Role   string
}

func (o UserListOptions) values() url.Values {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	if o.Role != "" {
		q.Set("role", o.Role)
	}
	return q
}

// UserList is returned from GET /users.
type UserList struct {
	Users      []User     `json:"users"`
	Pagination Pagination `json:"pagination"`
}

// UserInput is the JSON body for creating or updating a user.
type UserInput struct {
	Username    string   `json:"username,omitempty"`
	Email       string   `json:"email,omitempty"`
	Password    string   `json:"password,omitempty"`
	Role        string   `json:"role,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

func (s *UsersService) List(ctx context.Context, opts UserListOptions) (*UserList, error) {
	var out UserList
	if err := s.client.do(ctx, http.MethodGet, opts.values(), nil, &out, "users"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *UsersService) Get(ctx context.Context, id string) (*User, error) {
	var out User
	if err := s.client.do(ctx, http.MethodGet, nil, nil, &out, "users", id); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *UsersService) Create(ctx context.Context, in UserInput) (*User, error) {
	var out User
	if err := s.client.do(ctx, http.MethodPost, nil, in, &out, "users"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *UsersService) Update(ctx context.Context, id string, in UserInput) (*User, error) {
	var out User
	if err := s.client.do(ctx, http.MethodPut, nil, in, &out, "users", id); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *UsersService) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, nil, nil, nil, "users", id)
}

// ResetPassword sets a new password on another user's account.
func (s *UsersService) ResetPassword(ctx context.Context, id, newPassword string) error {
	body := map[string]string{"newPassword": newPassword}
	return s.client.do(ctx, http.MethodPut, nil, body, nil, "users", id, "reset-password")
}
