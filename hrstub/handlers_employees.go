package hrstub

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type employeeInput struct {
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Email      string  `json:"email"`
	Department string  `json:"department"`
	Position   string  `json:"position"`
	Salary     float64 `json:"salary"`
	Status     string  `json:"status"`
}

func (s *Server) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	q := r.URL.Query()
	search := strings.ToLower(q.Get("search"))
	department := q.Get("department")
	status := q.Get("status")

	var filtered []*employeeRecord
	for _, e := range s.data.listEmployees() {
		if department != "" && e.Department != department {
			continue
		}
		if status != "" && e.Status != status {
			continue
		}
		if search != "" {
			name := strings.ToLower(e.FirstName + " " + e.LastName)
			if !strings.Contains(name, search) && !strings.Contains(strings.ToLower(e.Email), search) {
				continue
			}
		}
		filtered = append(filtered, e)
	}

	start, end, meta := paginateSlice(len(filtered), page, limit)
	writeData(w, http.StatusOK, map[string]any{
		"employees":  filtered[start:end],
		"pagination": meta,
	})
}

func (s *Server) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, ok := s.data.getEmployee(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Employee not found")
		return
	}
	writeData(w, http.StatusOK, emp)
}

// handleMyProfile returns the employee record linked to the caller's account.
// Available to every authenticated user, permissions notwithstanding.
func (s *Server) handleMyProfile(w http.ResponseWriter, r *http.Request) {
	user := principalFromContext(r.Context())
	emp, ok := s.data.getEmployeeByUser(user.ID)
	if !ok {
		writeError(w, http.StatusNotFound, "No employee record linked to this account")
		return
	}
	writeData(w, http.StatusOK, emp)
}

func (s *Server) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeJSON[employeeInput](w, r)
	if !ok {
		return
	}
	if in.FirstName == "" || in.LastName == "" {
		writeError(w, http.StatusBadRequest, "First and last name are required")
		return
	}
	status := in.Status
	if status == "" {
		status = "Active"
	}
	emp := &employeeRecord{
		ID:         newID(),
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Email:      in.Email,
		Department: in.Department,
		Position:   in.Position,
		Salary:     in.Salary,
		Status:     status,
	}
	s.data.addEmployee(emp)

	actor := principalFromContext(r.Context())
	s.data.recordAudit("employee_created", "employees/"+emp.ID, actor.Username, nil)
	writeData(w, http.StatusCreated, emp)
}

func (s *Server) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	emp, ok := s.data.getEmployee(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Employee not found")
		return
	}
	in, ok := decodeJSON[employeeInput](w, r)
	if !ok {
		return
	}

	if in.FirstName != "" {
		emp.FirstName = in.FirstName
	}
	if in.LastName != "" {
		emp.LastName = in.LastName
	}
	if in.Email != "" {
		emp.Email = in.Email
	}
	if in.Department != "" {
		emp.Department = in.Department
	}
	if in.Position != "" {
		emp.Position = in.Position
	}
	if in.Salary > 0 {
		emp.Salary = in.Salary
	}
	if in.Status != "" {
		emp.Status = in.Status
	}

	actor := principalFromContext(r.Context())
	s.data.recordAudit("employee_updated", "employees/"+emp.ID, actor.Username, nil)
	writeData(w, http.StatusOK, emp)
}

func (s *Server) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.data.deleteEmployee(id) {
		writeError(w, http.StatusNotFound, "Employee not found")
		return
	}
	actor := principalFromContext(r.Context())
	s.data.recordAudit("employee_deleted", "employees/"+id, actor.Username, nil)
	writeData(w, http.StatusOK, map[string]string{"message": "Employee deleted"})
}
