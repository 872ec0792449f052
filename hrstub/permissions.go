package hrstub

// Permission strings understood by the console.
const (
	PermReadUser         = "read_user"
	PermCreateUser       = "create_user"
	PermUpdateUser       = "update_user"
	PermDeleteUser       = "delete_user"
	PermReadEmployee     = "read_employee"
	PermCreateEmployee   = "create_employee"
	PermUpdateEmployee   = "update_employee"
	PermDeleteEmployee   = "delete_employee"
	PermReadPayroll      = "read_payroll"
	PermCreatePayroll    = "create_payroll"
	PermUpdatePayroll    = "update_payroll"
	PermApprovePayroll   = "approve_payroll"
	PermReadDepartment   = "read_department"
	PermCreateDepartment = "create_department"
	PermUpdateDepartment = "update_department"
	PermDeleteDepartment = "delete_department"
	PermReadAudit        = "read_audit"
)

var allPermissions = []string{
	PermReadUser, PermCreateUser, PermUpdateUser, PermDeleteUser,
	PermReadEmployee, PermCreateEmployee, PermUpdateEmployee, PermDeleteEmployee,
	PermReadPayroll, PermCreatePayroll, PermUpdatePayroll, PermApprovePayroll,
	PermReadDepartment, PermCreateDepartment, PermUpdateDepartment, PermDeleteDepartment,
	PermReadAudit,
}

// rolePermissions is the baseline permission profile each role implies.
var rolePermissions = map[string][]string{
	"SuperAdmin": allPermissions,
	"Admin": {
		PermReadUser, PermCreateUser, PermUpdateUser,
		PermReadEmployee, PermCreateEmployee, PermUpdateEmployee, PermDeleteEmployee,
		PermReadPayroll, PermCreatePayroll, PermUpdatePayroll,
		PermReadDepartment, PermCreateDepartment, PermUpdateDepartment, PermDeleteDepartment,
		PermReadAudit,
	},
	"HR": {
		PermReadEmployee, PermCreateEmployee, PermUpdateEmployee,
		PermReadDepartment, PermCreateDepartment, PermUpdateDepartment,
		PermReadPayroll,
	},
	"Finance": {
		PermReadEmployee,
		PermReadPayroll, PermCreatePayroll, PermUpdatePayroll, PermApprovePayroll,
	},
	"Employee": {},
}

// permissionsForRole returns a copy of the role's baseline permissions, or
// false for an unknown role.
func permissionsForRole(role string) ([]string, bool) {
	perms, ok := rolePermissions[role]
	if !ok {
		return nil, false
	}
	return append([]string(nil), perms...), true
}
