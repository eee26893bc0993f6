package usecases

import (
	"context"

	"caretrack/internal/domain/identity"
	domain "caretrack/internal/domain/permission"
	"caretrack/internal/shared/authorization"
	"caretrack/internal/shared/constants"
	"caretrack/internal/shared/errors"
	"caretrack/internal/shared/logger"
)

type SetUserPermissionsCommand struct {
	Actor  authorization.Actor
	UserID uint
	Grants map[string]bool
}

type SetUserPermissionsResult struct {
	UserID uint
	Grants map[string]bool
}

// SetUserPermissionsUseCase replaces the override set for one user.
type SetUserPermissionsUseCase struct {
	repo        domain.Repository
	users       identity.UserRepository
	permissions PermissionChecker
	recorder    ActivityRecorder
	txManager   TransactionRunner
	logger      logger.Interface
}

func NewSetUserPermissionsUseCase(
	repo domain.Repository,
	users identity.UserRepository,
	permissions PermissionChecker,
	recorder ActivityRecorder,
	txManager TransactionRunner,
	log logger.Interface,
) *SetUserPermissionsUseCase {
	return &SetUserPermissionsUseCase{
		repo:        repo,
		users:       users,
		permissions: permissions,
		recorder:    recorder,
		txManager:   txManager,
		logger:      log,
	}
}

func (uc *SetUserPermissionsUseCase) Execute(ctx context.Context, cmd SetUserPermissionsCommand) (*SetUserPermissionsResult, error) {
	if err := uc.permissions.Require(ctx, cmd.Actor, constants.PermUserPermissionsManage); err != nil {
		return nil, err
	}

	if cmd.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}

	target, err := uc.users.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	if target.Role().IsSuperAdmin() {
		return nil, errors.NewValidationError("super admin permissions cannot be edited")
	}

	grants := make([]*domain.UserGrant, 0, len(cmd.Grants))
	for code, allowed := range cmd.Grants {
		exists, err := uc.repo.ExistsByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, errors.NewValidationError("unknown permission code: " + code)
		}

		g, err := domain.NewUserGrant(cmd.UserID, code, allowed)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		grants = append(grants, g)
	}

	userID := cmd.UserID
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.repo.ReplaceUserGrants(txCtx, cmd.UserID, grants); err != nil {
			return err
		}

		return uc.recorder.Record(txCtx, cmd.Actor, constants.ActionPermissionsSetUser, "user", &userID, map[string]any{
			"grants": cmd.Grants,
		})
	})
	if err != nil {
		uc.logger.Errorw("failed to set user permissions", "user_id", cmd.UserID, "error", err)
		return nil, err
	}

	uc.logger.Infow("user permission overrides replaced", "user_id", cmd.UserID, "count", len(grants))

	return &SetUserPermissionsResult{UserID: cmd.UserID, Grants: cmd.Grants}, nil
}
