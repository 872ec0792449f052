package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// AuditService talks to the /audit endpoints.
type AuditService struct {
	client *Client
}

// AuditListOptions filters and paginates GET /audit.
type AuditListOptions struct {
	Page     int
	Limit    int
	Action   string
	Resource string
	Actor    string
}

func (o AuditListOptions) values() url.Values {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Action != "" {
		q.Set("action", o.Action)
	}
	if o.Resource != "" {
		q.Set("resource", o.Resource)
	}
	if o.Actor != "" {
		q.Set("actor", o.Actor)
	}
	return q
}

// AuditLogList is returned from GET /audit.
type AuditLogList struct {
	Logs       []AuditLog `json:"logs"`
	Pagination Pagination `json:"pagination"`
}

// AuditStats summarizes audit activity per action.
type AuditStats struct {
	Total    int            `json:"total"`
	ByAction map[string]int `json:"byAction"`
}

func (s *AuditService) Logs(ctx context.Context, opts AuditListOptions) (*AuditLogList, error) {
	var out AuditLogList
	if err := s.client.do(ctx, http.MethodGet, opts.values(), nil, &out, "audit"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AuditService) Stats(ctx context.Context) (*AuditStats, error) {
	var out AuditStats
	if err := s.client.do(ctx, http.MethodGet, nil, nil, &out, "audit", "stats"); err != nil {
		return nil, err
	}
	return &out, nil
}
