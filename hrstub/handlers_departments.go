package hrstub

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type departmentInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Manager     string `json:"manager"`
}

func (s *Server) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, s.data.listDepartments())
}

func (s *Server) handleGetDepartment(w http.ResponseWriter, r *http.Request) {
	dep, ok := s.data.getDepartment(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Department not found")
		return
	}
	writeData(w, http.StatusOK, dep)
}

func (s *Server) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeJSON[departmentInput](w, r)
	if !ok {
		return
	}
	if in.Name == "" {
		writeError(w, http.StatusBadRequest, "Department name is required")
		return
	}
	dep := &departmentRecord{
		ID:          newID(),
		Name:        in.Name,
		Description: in.Description,
		Manager:     in.Manager,
	}
	s.data.addDepartment(dep)

	actor := principalFromContext(r.Context())
	s.data.recordAudit("department_created", "departments/"+dep.ID, actor.Username, nil)
	writeData(w, http.StatusCreated, dep)
}

func (s *Server) handleUpdateDepartment(w http.ResponseWriter, r *http.Request) {
	dep, ok := s.data.getDepartment(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Department not found")
		return
	}
	in, ok := decodeJSON[departmentInput](w, r)
	if !ok {
		return
	}
	if in.Name != "" {
		dep.Name = in.Name
	}
	if in.Description != "" {
		dep.Description = in.Description
	}
	if in.Manager != "" {
		dep.Manager = in.Manager
	}

	actor := principalFromContext(r.Context())
	s.data.recordAudit("department_updated", "departments/"+dep.ID, actor.Username, nil)
	writeData(w, http.StatusOK, dep)
}

func (s *Server) handleDeleteDepartment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.data.deleteDepartment(id) {
		writeError(w, http.StatusNotFound, "Department not found")
		return
	}
	actor := principalFromContext(r.Context())
	s.data.recordAudit("department_deleted", "departments/"+id, actor.Username, nil)
	writeData(w, http.StatusOK, map[string]string{"message": "Department deleted"})
}
