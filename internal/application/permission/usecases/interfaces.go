package usecases

import (
	"context"

	"caretrack/internal/shared/authorization"
)

type SetRolePermissionsExecutor interface {
	Execute(ctx context.Context, cmd SetRolePermissionsCommand) (*SetRolePermissionsResult, error)
}

type SetUserPermissionsExecutor interface {
	Execute(ctx context.Context, cmd SetUserPermissionsCommand) (*SetUserPermissionsResult, error)
}

type GetGrantsExecutor interface {
	Execute(ctx context.Context, query GetGrantsQuery) (*GetGrantsResult, error)
}

// TransactionRunner runs a function inside a database transaction.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// PermissionChecker gates the management operations themselves.
type PermissionChecker interface {
	Require(ctx context.Context, actor authorization.Actor, code string) error
}

// ActivityRecorder appends to the activity log inside the caller's
// transaction.
type ActivityRecorder interface {
	Record(ctx context.Context, actor authorization.Actor, action, entityType string, entityID *uint, details map[string]any) error
}
