package hrstub

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type userRecord struct {
	ID           string     `json:"_id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash []byte     `json:"-"`
	Role         string     `json:"role"`
	Permissions  []string   `json:"permissions"`
	Active       bool       `json:"active"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

func (u *userRecord) hasPermission(name string) bool {
	for _, p := range u.Permissions {
		if p == name {
			return true
		}
	}
	return false
}

type employeeRecord struct {
	ID         string     `json:"_id"`
	UserID     string     `json:"userId,omitempty"`
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName"`
	Email      string     `json:"email"`
	Department string     `json:"department"`
	Position   string     `json:"position"`
	Salary     float64    `json:"salary"`
	HireDate   *time.Time `json:"hireDate,omitempty"`
	Status     string     `json:"status"`
}

type payrollRecord struct {
	ID           string             `json:"_id"`
	Employee     string             `json:"employee"`
	PayPeriod    payPeriod          `json:"payPeriod"`
	Earnings     map[string]float64 `json:"earnings,omitempty"`
	Deductions   map[string]float64 `json:"deductions,omitempty"`
	NetSalary    float64            `json:"netSalary"`
	Status       string             `json:"status"`
	Notes        string             `json:"notes,omitempty"`
	ApprovedBy   string             `json:"approvedBy,omitempty"`
	ApprovalDate *time.Time         `json:"approvalDate,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
}

type payPeriod struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

type departmentRecord struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Manager     string `json:"manager,omitempty"`
}

type auditRecord struct {
	ID        string          `json:"_id"`
	Action    string          `json:"action"`
	Resource  string          `json:"resource"`
	Actor     string          `json:"actor"`
	Details   json.RawMessage `json:"details,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// dataStore holds all stub entities. Slices preserve insertion order for
// stable pagination.
type dataStore struct {
	mu          sync.RWMutex
	users       []*userRecord
	employees   []*employeeRecord
	payrolls    []*payrollRecord
	departments []*departmentRecord
	audit       []*auditRecord
}

func newDataStore() *dataStore {
	return &dataStore{}
}

func newID() string {
	return uuid.NewString()
}

func (d *dataStore) getUser(id string) (*userRecord, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, u := range d.users {
		if u.ID == id {
			return u, true
		}
	}
	return nil, false
}

func (d *dataStore) getUserByUsername(username string) (*userRecord, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, u := range d.users {
		if strings.EqualFold(u.Username, username) {
			return u, true
		}
	}
	return nil, false
}

func (d *dataStore) addUser(u *userRecord) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users = append(d.users, u)
}

func (d *dataStore) deleteUser(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, u := range d.users {
		if u.ID == id {
			d.users = append(d.users[:i], d.users[i+1:]...)
			return true
		}
	}
	return false
}

func (d *dataStore) listUsers() []*userRecord {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]*userRecord(nil), d.users...)
}

func (d *dataStore) getEmployee(id string) (*employeeRecord, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, e := range d.employees {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

func (d *dataStore) getEmployeeByUser(userID string) (*employeeRecord, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, e := range d.employees {
		if e.UserID == userID {
			return e, true
		}
	}
	return nil, false
}

func (d *dataStore) addEmployee(e *employeeRecord) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.employees = append(d.employees, e)
}

func (d *dataStore) deleteEmployee(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, e := range d.employees {
		if e.ID == id {
			d.employees = append(d.employees[:i], d.employees[i+1:]...)
			return true
		}
	}
	return false
}

func (d *dataStore) listEmployees() []*employeeRecord {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]*employeeRecord(nil), d.employees...)
}

func (d *dataStore) getPayroll(id string) (*payrollRecord, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, p := range d.payrolls {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

func (d *dataStore) addPayroll(p *payrollRecord) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.payrolls = append(d.payrolls, p)
}

func (d *dataStore) listPayrolls() []*payrollRecord {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]*payrollRecord(nil), d.payrolls...)
}

func (d *dataStore) getDepartment(id string) (*departmentRecord, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, dep := range d.departments {
		if dep.ID == id {
			return dep, true
		}
	}
	return nil, false
}

func (d *dataStore) addDepartment(dep *departmentRecord) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.departments = append(d.departments, dep)
}

func (d *dataStore) deleteDepartment(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, dep := range d.departments {
		if dep.ID == id {
			d.departments = append(d.departments[:i], d.departments[i+1:]...)
			return true
		}
	}
	return false
}

func (d *dataStore) listDepartments() []*departmentRecord {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]*departmentRecord(nil), d.departments...)
}

// recordAudit appends one entry to the audit trail.
func (d *dataStore) recordAudit(action, resource, actor string, details any) {
	var raw json.RawMessage
	if details != nil {
		raw, _ = json.Marshal(details)
	}
	entry := &auditRecord{
		ID:        newID(),
		Action:    action,
		Resource:  resource,
		Actor:     actor,
		Details:   raw,
		CreatedAt: time.Now().UTC(),
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.audit = append(d.audit, entry)
}

func (d *dataStore) listAudit() []*auditRecord {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]*auditRecord(nil), d.audit...)
}
