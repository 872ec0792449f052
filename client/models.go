package client

import (
	"encoding/json"
	"time"
)

// Profile is the authenticated caller's identity as returned by the API.
type Profile struct {
	ID          string     `json:"_id"`
	Username    string     `json:"username"`
	Email       string     `json:"email,omitempty"`
	Role        string     `json:"role"`
	Permissions []string   `json:"permissions"`
	LastLogin   *time.Time `json:"lastLogin,omitempty"`
}

// Pagination is embedded in paginated list responses.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// User is an administrative account.
type User struct {
	ID          string     `json:"_id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	Permissions []string   `json:"permissions,omitempty"`
	Active      bool       `json:"active"`
	LastLogin   *time.Time `json:"lastLogin,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Employee is a personnel record.
type Employee struct {
	ID         string     `json:"_id"`
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName"`
	Email      string     `json:"email"`
	Department string     `json:"department"`
	Position   string     `json:"position"`
	Salary     float64    `json:"salary"`
	HireDate   *time.Time `json:"hireDate,omitempty"`
	Status     string     `json:"status"`
}

// PayPeriod identifies the month a payroll record covers.
type PayPeriod struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// PayrollRecord is a single payroll run entry for one employee. The employee
// field is left raw: the server returns either an ID or a populated document
// depending on the endpoint.
type PayrollRecord struct {
	ID           string             `json:"_id"`
	Employee     json.RawMessage    `json:"employee"`
	PayPeriod    PayPeriod          `json:"payPeriod"`
	Earnings     map[string]float64 `json:"earnings,omitempty"`
	Deductions   map[string]float64 `json:"deductions,omitempty"`
	NetSalary    float64            `json:"netSalary"`
	Status       string             `json:"status"`
	Notes        string             `json:"notes,omitempty"`
	ApprovedBy   string             `json:"approvedBy,omitempty"`
	ApprovalDate *time.Time         `json:"approvalDate,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
}

// Department groups employees under a manager.
type Department struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Manager     string `json:"manager,omitempty"`
}

// AuditLog is one entry of the server's append-only audit trail.
type AuditLog struct {
	ID        string          `json:"_id"`
	Action    string          `json:"action"`
	Resource  string          `json:"resource"`
	Actor     string          `json:"actor"`
	Details   json.RawMessage `json:"details,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}
