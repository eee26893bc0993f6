package usecases

import (
	"context"

	domain "caretrack/internal/domain/permission"
	"caretrack/internal/shared/authorization"
	"caretrack/internal/shared/constants"
	"caretrack/internal/shared/errors"
	"caretrack/internal/shared/logger"
)

type SetRolePermissionsCommand struct {
	Actor  authorization.Actor
	Role   string
	Grants map[string]bool
}

type SetRolePermissionsResult struct {
	Role   string
	Grants map[string]bool
}

// SetRolePermissionsUseCase replaces the full default set for a role. The
// delete-and-insert runs in one transaction together with the activity
// entry, so readers either see the old set or the new one.
type SetRolePermissionsUseCase struct {
	repo        domain.Repository
	permissions PermissionChecker
	recorder    ActivityRecorder
	txManager   TransactionRunner
	logger      logger.Interface
}

func NewSetRolePermissionsUseCase(
	repo domain.Repository,
	permissions PermissionChecker,
	recorder ActivityRecorder,
	txManager TransactionRunner,
	log logger.Interface,
) *SetRolePermissionsUseCase {
	return &SetRolePermissionsUseCase{
		repo:        repo,
		permissions: permissions,
		recorder:    recorder,
		txManager:   txManager,
		logger:      log,
	}
}

func (uc *SetRolePermissionsUseCase) Execute(ctx context.Context, cmd SetRolePermissionsCommand) (*SetRolePermissionsResult, error) {
	if err := uc.permissions.Require(ctx, cmd.Actor, constants.PermPermissionsManage); err != nil {
		return nil, err
	}

	role := authorization.UserRole(cmd.Role)
	if !role.IsValid() {
		return nil, errors.NewValidationError("invalid role: " + cmd.Role)
	}
	if role.IsSuperAdmin() {
		// Super admin bypasses the tables; rows for it would be dead weight.
		return nil, errors.NewValidationError("super admin permissions cannot be edited")
	}

	grants := make([]*domain.RoleGrant, 0, len(cmd.Grants))
	for code, allowed := range cmd.Grants {
		exists, err := uc.repo.ExistsByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, errors.NewValidationError("unknown permission code: " + code)
		}

		g, err := domain.NewRoleGrant(role, code, allowed)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		grants = append(grants, g)
	}

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.repo.ReplaceRoleGrants(txCtx, role, grants); err != nil {
			return err
		}

		return uc.recorder.Record(txCtx, cmd.Actor, constants.ActionPermissionsSetRole, "role", nil, map[string]any{
			"role":   cmd.Role,
			"grants": cmd.Grants,
		})
	})
	if err != nil {
		uc.logger.Errorw("failed to set role permissions", "role", cmd.Role, "error", err)
		return nil, err
	}

	uc.logger.Infow("role permissions replaced", "role", cmd.Role, "count", len(grants))

	return &SetRolePermissionsResult{Role: cmd.Role, Grants: cmd.Grants}, nil
}
