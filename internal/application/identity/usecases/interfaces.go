package usecases

import (
	"context"

	"caretrack/internal/shared/authorization"
)

type LoginExecutor interface {
	Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error)
}

type StartImpersonationExecutor interface {
	Execute(ctx context.Context, cmd StartImpersonationCommand) (*StartImpersonationResult, error)
}

type EndImpersonationExecutor interface {
	Execute(ctx context.Context, cmd EndImpersonationCommand) (*EndImpersonationResult, error)
}

type CreateUserExecutor interface {
	Execute(ctx context.Context, cmd CreateUserCommand) (*CreateUserResult, error)
}

type UpdateUserExecutor interface {
	Execute(ctx context.Context, cmd UpdateUserCommand) (*UpdateUserResult, error)
}

type ListUsersExecutor interface {
	Execute(ctx context.Context, query ListUsersQuery) (*ListUsersResult, error)
}

// TokenIssuer signs access and impersonation tokens. Impersonation tokens
// carry both the acting user and the admin who started the session.
type TokenIssuer interface {
	Generate(userID uint, role authorization.UserRole, departmentID *uint) (string, int64, error)
	GenerateImpersonation(targetUserID uint, targetRole authorization.UserRole, targetDepartmentID *uint, originalAdminID uint) (string, int64, error)
}

type PermissionChecker interface {
	Require(ctx context.Context, actor authorization.Actor, code string) error
}

type ActivityRecorder interface {
	Record(ctx context.Context, actor authorization.Actor, action, entityType string, entityID *uint, details map[string]any) error
}
