package auth

import "strings"

// Role is the closed set of account roles. Stored values keep the legacy
// mixed-case spelling, so comparisons must go through Equals or ParseRole.
type Role string

const (
	RoleMember         Role = "Member"
	RoleAdmin          Role = "Admin"
	RoleSuperAdmin     Role = "super_admin"
	RoleStateAdmin     Role = "state_admin"
	RoleZonalAdmin     Role = "zonal_admin"
	RoleHomeCellLeader Role = "home_cell_leader"
)

var allRoles = []Role{
	RoleMember,
	RoleAdmin,
	RoleSuperAdmin,
	RoleStateAdmin,
	RoleZonalAdmin,
	RoleHomeCellLeader,
}

// ParseRole resolves a role string case-insensitively to its canonical form.
func ParseRole(s string) (Role, bool) {
	for _, r := range allRoles {
		if strings.EqualFold(s, string(r)) {
			return r, true
		}
	}

	return "", false
}

func (r Role) Equals(s string) bool {
	return strings.EqualFold(string(r), s)
}

func (r Role) String() string {
	return string(r)
}

// RoleSet is a named authorization policy, declared once per route group
// instead of ad hoc role comparisons in handlers.
type RoleSet []Role

func (rs RoleSet) Contains(s string) bool {
	for _, r := range rs {
		if r.Equals(s) {
			return true
		}
	}

	return false
}

var (
	// AnyAdmin covers every administrative role.
	AnyAdmin = RoleSet{RoleSuperAdmin, RoleAdmin, RoleStateAdmin, RoleZonalAdmin, RoleHomeCellLeader}

	// SuperAdminOnly gates account administration.
	SuperAdminOnly = RoleSet{RoleSuperAdmin}

	// AssignableAdminRoles are the roles a super admin may hand out.
	// Super admins are seeded, never created through the API.
	AssignableAdminRoles = RoleSet{RoleAdmin, RoleStateAdmin, RoleZonalAdmin}
)
