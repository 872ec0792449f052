package hrstub

import "net/http"

func (s *Server) handleListAudit(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	q := r.URL.Query()
	action := q.Get("action")
	resource := q.Get("resource")
	actor := q.Get("actor")

	var filtered []*auditRecord
	for _, e := range s.data.listAudit() {
		if action != "" && e.Action != action {
			continue
		}
		if resource != "" && e.Resource != resource {
			continue
		}
		if actor != "" && e.Actor != actor {
			continue
		}
		filtered = append(filtered, e)
	}

	// Newest first.
	for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
		filtered[i], filtered[j] = filtered[j], filtered[i]
	}

	start, end, meta := paginateSlice(len(filtered), page, limit)
	writeData(w, http.StatusOK, map[string]any{
		"logs":       filtered[start:end],
		"pagination": meta,
	})
}

func (s *Server) handleAuditStats(w http.ResponseWriter, r *http.Request) {
	entries := s.data.listAudit()
	byAction := make(map[string]int)
	for _, e := range entries {
		byAction[e.Action]++
	}
	writeData(w, http.StatusOK, map[string]any{
		"total":    len(entries),
		"byAction": byAction,
	})
}
