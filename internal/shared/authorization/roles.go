// Package authorization defines the fixed role enumeration for the complaint
// workflow. Roles are resolved once at the authentication boundary; code deeper
// in the call graph only ever sees these named values, never raw role IDs.
package authorization

type UserRole string

const (
	RoleSuperAdmin      UserRole = "super_admin"
	RoleDepartmentAdmin UserRole = "department_admin"
	RoleEmployee        UserRole = "employee"
)

func (r UserRole) String() string {
	return string(r)
}

// IsSuperAdmin reports whether the role bypasses permission resolution
// and department scoping entirely.
func (r UserRole) IsSuperAdmin() bool {
	return r == RoleSuperAdmin
}

func (r UserRole) IsDepartmentAdmin() bool {
	return r == RoleDepartmentAdmin
}

func (r UserRole) IsEmployee() bool {
	return r == RoleEmployee
}

func (r UserRole) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleDepartmentAdmin, RoleEmployee:
		return true
	}
	return false
}

// ParseUserRole maps a stored role string to a UserRole, falling back to the
// least-privileged role for unknown values.
func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleEmployee
}
