package session

import (
	"fmt"
	"time"

	"github.com/paydesk/paydesk/client"
)

// Role is the caller's exclusive category. The set is closed; profiles
// carrying anything else are rejected at the decode boundary.
type Role string

const (
	RoleSuperAdmin Role = "SuperAdmin"
	RoleAdmin      Role = "Admin"
	RoleHR         Role = "HR"
	RoleFinance    Role = "Finance"
	RoleEmployee   Role = "Employee"
)

// ParseRole validates a role string from a profile payload.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleSuperAdmin, RoleAdmin, RoleHR, RoleFinance, RoleEmployee:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Principal is the authenticated caller. It is replaced wholesale on every
// login or profile refresh, never mutated in place.
type Principal struct {
	ID          string
	Username    string
	Role        Role
	LastLogin   time.Time
	permissions map[string]struct{}
}

// HasPermission reports whether the principal holds the named permission.
func (p *Principal) HasPermission(name string) bool {
	_, ok := p.permissions[name]
	return ok
}

// Permissions returns the principal's permission set as a slice.
func (p *Principal) Permissions() []string {
	out := make([]string, 0, len(p.permissions))
	for name := range p.permissions {
		out = append(out, name)
	}
	return out
}

// newPrincipal validates a profile payload. Malformed payloads are rejected
// rather than propagated with undefined fields.
func newPrincipal(profile *client.Profile) (*Principal, error) {
	if profile == nil {
		return nil, fmt.Errorf("profile payload is empty")
	}
	if profile.ID == "" {
		return nil, fmt.Errorf("profile payload missing id")
	}
	role, err := ParseRole(profile.Role)
	if err != nil {
		return nil, fmt.Errorf("invalid profile payload: %w", err)
	}

	perms := make(map[string]struct{}, len(profile.Permissions))
	for _, name := range profile.Permissions {
		if name == "" {
			continue
		}
		perms[name] = struct{}{}
	}

	p := &Principal{
		ID:          profile.ID,
		Username:    profile.Username,
		Role:        role,
		permissions: perms,
	}
	if profile.LastLogin != nil {
		p.LastLogin = *profile.LastLogin
	}
	return p, nil
}
