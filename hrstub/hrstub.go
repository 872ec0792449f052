// Package hrstub is an in-memory implementation of the paydesk HR API,
// used by the test suites and runnable locally for development. It mirrors
// the remote collaborator's contract: bearer-token sessions, the
// {data}/{message} response envelope, role-derived permissions, and an
// append-only audit trail.
package hrstub

import (
	_ "embed"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-openapi/runtime/middleware"
)

//go:embed openapi.yaml
var openapiSpec []byte

// Server holds the stub's in-memory state.
type Server struct {
	sessions *sessionStore
	data     *dataStore
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the structured logger. Default: JSON to stderr.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New creates a stub server seeded with one account per role (password
// "password" for each, usernames matching the lowercased role name).
func New(opts ...Option) *Server {
	s := &Server{
		sessions: newSessionStore(),
		data:     newDataStore(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	s.seed()
	return s
}

// Router returns a chi.Router with the full API mounted at the root.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(openapiSpec)
	})
	// Relative spec URL keeps the docs working when the router is mounted
	// under a prefix.
	r.Handle("/docs*", middleware.SwaggerUI(middleware.SwaggerUIOpts{
		SpecURL: "openapi.yaml",
		Path:    "docs",
	}, nil))
	r.Handle("/redoc*", middleware.Redoc(middleware.RedocOpts{
		SpecURL: "openapi.yaml",
		Path:    "redoc",
	}, nil))

	r.Post("/auth/login", s.handleLogin)
	r.Post("/auth/logout", s.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Get("/auth/profile", s.handleProfile)
		r.Post("/auth/change-password", s.handleChangePassword)

		r.With(s.requirePermission("read_user")).Get("/users", s.handleListUsers)
		r.With(s.requirePermission("create_user")).Post("/users", s.handleCreateUser)
		r.With(s.requirePermission("read_user")).Get("/users/{id}", s.handleGetUser)
		r.With(s.requirePermission("update_user")).Put("/users/{id}", s.handleUpdateUser)
		r.With(s.requirePermission("delete_user")).Delete("/users/{id}", s.handleDeleteUser)
		r.With(s.requirePermission("update_user")).Put("/users/{id}/reset-password", s.handleResetPassword)

		r.With(s.requirePermission("read_employee")).Get("/employees", s.handleListEmployees)
		r.With(s.requirePermission("create_employee")).Post("/employees", s.handleCreateEmployee)
		r.Get("/employees/my-profile", s.handleMyProfile)
		r.With(s.requirePermission("read_employee")).Get("/employees/{id}", s.handleGetEmployee)
		r.With(s.requirePermission("update_employee")).Put("/employees/{id}", s.handleUpdateEmployee)
		r.With(s.requirePermission("delete_employee")).Delete("/employees/{id}", s.handleDeleteEmployee)

		r.With(s.requirePermission("read_payroll")).Get("/payroll", s.handleListPayroll)
		r.With(s.requirePermission("create_payroll")).Post("/payroll", s.handleCreatePayroll)
		r.With(s.requirePermission("read_payroll")).Get("/payroll/csv", s.handlePayrollCSV)
		r.Get("/payroll/my-payrolls", s.handleMyPayrolls)
		r.With(s.requirePermission("read_payroll")).Get("/payroll/{id}", s.handleGetPayroll)
		r.With(s.requirePermission("update_payroll")).Put("/payroll/{id}", s.handleUpdatePayroll)
		r.With(s.requirePermission("approve_payroll")).Post("/payroll/{id}/approve", s.handleApprovePayroll)
		r.With(s.requirePermission("read_payroll")).Get("/payroll/{id}/payslip", s.handlePayslip)

		r.With(s.requirePermission("read_department")).Get("/departments", s.handleListDepartments)
		r.With(s.requirePermission("create_department")).Post("/departments", s.handleCreateDepartment)
		r.With(s.requirePermission("read_department")).Get("/departments/{id}", s.handleGetDepartment)
		r.With(s.requirePermission("update_department")).Put("/departments/{id}", s.handleUpdateDepartment)
		r.With(s.requirePermission("delete_department")).Delete("/departments/{id}", s.handleDeleteDepartment)

		r.With(s.requirePermission("read_audit")).Get("/audit", s.handleListAudit)
		r.With(s.requirePermission("read_audit")).Get("/audit/stats", s.handleAuditStats)
	})

	return r
}
