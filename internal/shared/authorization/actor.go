package authorization

// Actor is the identity a request acts as. Under impersonation UserID, Role,
// and DepartmentID all describe the impersonated user; OriginalAdminID is
// the super admin who started the session. Permission checks always run
// against the effective identity, so an impersonated employee is exactly as
// powerful as the real one.
type Actor struct {
	UserID          uint
	Role            UserRole
	DepartmentID    *uint
	OriginalAdminID *uint
}

func (a Actor) IsImpersonating() bool {
	return a.OriginalAdminID != nil
}

func (a Actor) IsSuperAdmin() bool {
	return a.Role.IsSuperAdmin()
}
