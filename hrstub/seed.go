package hrstub

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// SeedPassword is the password for every seeded account.
const SeedPassword = "password"

// seed populates one account per role plus a small set of domain records.
func (s *Server) seed() {
	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.MinCost)
	if err != nil {
		panic("hrstub: seeding bcrypt hash: " + err.Error())
	}

	now := time.Now().UTC()
	for _, role := range []string{"SuperAdmin", "Admin", "HR", "Finance", "Employee"} {
		perms, _ := permissionsForRole(role)
		s.data.addUser(&userRecord{
			ID:           newID(),
			Username:     strings.ToLower(role),
			Email:        strings.ToLower(role) + "@paydesk.local",
			PasswordHash: hash,
			Role:         role,
			Permissions:  perms,
			Active:       true,
			CreatedAt:    now,
		})
	}

	engineering := &departmentRecord{
		ID:          newID(),
		Name:        "Engineering",
		Description: "Product engineering",
	}
	s.data.addDepartment(engineering)
	s.data.addDepartment(&departmentRecord{
		ID:   newID(),
		Name: "Finance",
	})

	employeeUser, _ := s.data.getUserByUsername("employee")
	hire := now.AddDate(-1, 0, 0)
	emp := &employeeRecord{
		ID:         newID(),
		UserID:     employeeUser.ID,
		FirstName:  "Avery",
		LastName:   "Quinn",
		Email:      "avery.quinn@paydesk.local",
		Department: engineering.Name,
		Position:   "Engineer",
		Salary:     72000,
		HireDate:   &hire,
		Status:     "Active",
	}
	s.data.addEmployee(emp)

	s.data.addPayroll(&payrollRecord{
		ID:        newID(),
		Employee:  emp.ID,
		PayPeriod: payPeriod{Month: int(now.Month()), Year: now.Year()},
		Earnings:  map[string]float64{"base": 6000},
		Deductions: map[string]float64{
			"tax": 1400,
		},
		NetSalary: 4600,
		Status:    "Pending",
		CreatedAt: now,
	})
}
