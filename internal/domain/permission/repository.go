package permission

import (
	"context"

	"caretrack/internal/shared/authorization"
)

type Repository interface {
	ListPermissions(ctx context.Context) ([]*Permission, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)

	GetRoleGrants(ctx context.Context, role authorization.UserRole) ([]*RoleGrant, error)
	GetUserGrants(ctx context.Context, userID uint) ([]*UserGrant, error)

	// FindRoleGrant and FindUserGrant return nil when no row exists for the
	// code. Absence is meaningful: resolution treats a missing row and an
	// explicit deny differently only in that absence falls through to the
	// next layer.
	FindRoleGrant(ctx context.Context, role authorization.UserRole, code string) (*RoleGrant, error)
	FindUserGrant(ctx context.Context, userID uint, code string) (*UserGrant, error)

	// ReplaceRoleGrants and ReplaceUserGrants swap the full grant set in one
	// transaction. Partial application is never observable.
	ReplaceRoleGrants(ctx context.Context, role authorization.UserRole, grants []*RoleGrant) error
	ReplaceUserGrants(ctx context.Context, userID uint, grants []*UserGrant) error
}
