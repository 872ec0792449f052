package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// EmployeesService talks to the /employees endpoints.
type EmployeesService struct {
	client *Client
}

// EmployeeListOptions filters and paginates GET /employees.
type EmployeeListOptions struct {
	Page       int
	Limit      int
	Search     string
	Department string
	Status     string
}

func (o EmployeeListOptions) values() url.Values {
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
	if o.Department != "" {
		q.Set("department", o.Department)
	}
	if o.Status != "" {
		q.Set("status", o.Status)
	}
	return q
}

// EmployeeList is returned from GET /employees.
type EmployeeList struct {
	Employees  []Employee `json:"employees"`
	Pagination Pagination `json:"pagination"`
}

// EmployeeInput is the JSON body for creating or updating an employee.
type EmployeeInput struct {
	FirstName  string  `json:"firstName,omitempty"`
	LastName   string  `json:"lastName,omitempty"`
	Email      string  `json:"email,omitempty"`
	Department string  `json:"department,omitempty"`
	Position   string  `json:"position,omitempty"`
	Salary     float64 `json:"salary,omitempty"`
	Status     string  `json:"status,omitempty"`
}

func (s *EmployeesService) List(ctx context.Context, opts EmployeeListOptions) (*EmployeeList, error) {
	var out EmployeeList
	if err := s.client.do(ctx, http.MethodGet, opts.values(), nil, &out, "employees"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *EmployeesService) Get(ctx context.Context, id string) (*Employee, error) {
	var out Employee
	if err := s.client.do(ctx, http.MethodGet, nil, nil, &out, "employees", id); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *EmployeesService) Create(ctx context.Context, in EmployeeInput) (*Employee, error) {
	var out Employee
	if err := s.client.do(ctx, http.MethodPost, nil, in, &out, "employees"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *EmployeesService) Update(ctx context.Context, id string, in EmployeeInput) (*Employee, error) {
	var out Employee
	if err := s.client.do(ctx, http.MethodPut, nil, in, &out, "employees", id); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *EmployeesService) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, nil, nil, nil, "employees", id)
}

// MyProfile returns the employee record linked to the authenticated user.
func (s *EmployeesService) MyProfile(ctx context.Context) (*Employee, error) {
	var out Employee
	if err := s.client.do(ctx, http.MethodGet, nil, nil, &out, "employees", "my-profile"); err != nil {
		return nil, err
	}
	return &out, nil
}
