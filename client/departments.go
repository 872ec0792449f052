package client

import (
	"context"
	"net/http"
)

// DepartmentsService talks to the /departments endpoints.
type DepartmentsService struct {
	client *Client
}

// DepartmentInput is the JSON body for creating or updating a department.
type DepartmentInput struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Manager     string `json:"manager,omitempty"`
}

func (s *DepartmentsService) List(ctx context.Context) ([]Department, error) {
	var out []Department
	if err := s.client.do(ctx, http.MethodGet, nil, nil, &out, "departments"); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *DepartmentsService) Get(ctx context.Context, id string) (*Department, error) {
	var out Department
	if err := s.client.do(ctx, http.MethodGet, nil, nil, &out, "departments", id); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *DepartmentsService) Create(ctx context.Context, in DepartmentInput) (*Department, error) {
	var out Department
	if err := s.client.do(ctx, http.MethodPost, nil, in, &out, "departments"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *DepartmentsService) Update(ctx context.Context, id string, in DepartmentInput) (*Department, error) {
	var out Department
	if err := s.client.do(ctx, http.MethodPut, nil, in, &out, "departments", id); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *DepartmentsService) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, nil, nil, nil, "departments", id)
}
