package hrstub

import (
	"net/http"
	"strconv"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// paginationMeta is embedded in paginated list responses.
type paginationMeta struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// parsePagination reads "page" and "limit" query parameters. Missing or
// invalid values fall back to page=1, limit=defaultPageLimit; limit is
// capped at maxPageLimit.
func parsePagination(r *http.Request) (page, limit int) {
	q := r.URL.Query()

	page = 1
	if v := q.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}

	limit = defaultPageLimit
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

// paginateSlice returns (start, end) indices for the requested page of a
// collection of total items, plus the filled meta. A page past the end
// yields start == end (empty page).
func paginateSlice(total, page, limit int) (start, end int, meta paginationMeta) {
	pages := (total + limit - 1) / limit
	if pages == 0 {
		pages = 1
	}
	start = (page - 1) * limit
	if start > total {
		start = total
	}
	end = start + limit
	if end > total {
		end = total
	}
	meta = paginationMeta{Total: total, Page: page, Limit: limit, Pages: pages}
	return start, end, meta
}
