package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// PayrollService talks to the /payroll endpoints.
type PayrollService struct {
	client *Client
}

// PayrollListOptions filters and paginates GET /payroll.
type PayrollListOptions struct {
	Page   int
	Limit  int
	Status string
	Month  int
	Year   int
}

func (o PayrollListOptions) values() url.Values {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Status != "" {
		q.Set("status", o.Status)
	}
	if o.Month > 0 {
		q.Set("month", strconv.Itoa(o.Month))
	}
	if o.Year > 0 {
		q.Set("year", strconv.Itoa(o.Year))
	}
	return q
}

// PayrollList is returned from GET /payroll.
type PayrollList struct {
	Payrolls   []PayrollRecord `json:"payrolls"`
	Pagination Pagination      `json:"pagination"`
}

// PayrollInput is the JSON body for creating or updating a payroll record.
type PayrollInput struct {
	Employee   string             `json:"employee,omitempty"`
	PayPeriod  *PayPeriod         `json:"payPeriod,omitempty"`
	Earnings   map[string]float64 `json:"earnings,omitempty"`
	Deductions map[string]float64 `json:"deductions,omitempty"`
	Notes      string             `json:"notes,omitempty"`
}

func (s *PayrollService) List(ctx context.Context, opts PayrollListOptions) (*PayrollList, error) {
	var out PayrollList
	if err := s.client.do(ctx, http.MethodGet, opts.values(), nil, &out, "payroll"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PayrollService) Get(ctx context.Context, id string) (*PayrollRecord, error) {
	var out PayrollRecord
	if err := s.client.do(ctx, http.MethodGet, nil, nil, &out, "payroll", id); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PayrollService) Create(ctx context.Context, in PayrollInput) (*PayrollRecord, error) {
	var out PayrollRecord
	if err := s.client.do(ctx, http.MethodPost, nil, in, &out, "payroll"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PayrollService) Update(ctx context.Context, id string, in PayrollInput) (*PayrollRecord, error) {
	var out PayrollRecord
	if err := s.client.do(ctx, http.MethodPut, nil, in, &out, "payroll", id); err != nil {
		return nil, err
	}
	return &out, nil
}

// Approve moves a pending payroll record to Approved.
func (s *PayrollService) Approve(ctx context.Context, id, notes string) (*PayrollRecord, error) {
	body := map[string]string{}
	if notes != "" {
		body["notes"] = notes
	}
	var out PayrollRecord
	if err := s.client.do(ctx, http.MethodPost, nil, body, &out, "payroll", id, "approve"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Payslip downloads the rendered payslip for one record.
func (s *PayrollService) Payslip(ctx context.Context, id string) ([]byte, error) {
	return s.client.doRaw(ctx, http.MethodGet, nil, "payroll", id, "payslip")
}

// ExportCSV downloads payroll records matching opts as CSV.
func (s *PayrollService) ExportCSV(ctx context.Context, opts PayrollListOptions) ([]byte, error) {
	return s.client.doRaw(ctx, http.MethodGet, opts.values(), "payroll", "csv")
}

// MyPayrolls lists the authenticated employee's own payroll records.
func (s *PayrollService) MyPayrolls(ctx context.Context, opts PayrollListOptions) (*PayrollList, error) {
	var out PayrollList
	if err := s.client.do(ctx, http.MethodGet, opts.values(), nil, &out, "payroll", "my-payrolls"); err != nil {
		return nil, err
	}
	return &out, nil
}
