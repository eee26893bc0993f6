package usecases

import (
	"context"

	"caretrack/internal/domain/identity"
	"caretrack/internal/shared/authorization"
	"caretrack/internal/shared/constants"
	"caretrack/internal/shared/errors"
	"caretrack/internal/shared/logger"
)

type UpdateUserCommand struct {
	Actor  authorization.Actor
	UserID uint

	// Optional changes; nil leaves the field untouched.
	Role         *string
	DepartmentID *uint
	IsActive     *bool
	Password     *string
}

type UpdateUserResult struct {
	UserID   uint
	Role     authorization.UserRole
	IsActive bool
}

type UpdateUserUseCase struct {
	users       identity.UserRepository
	hasher      identity.PasswordHasher
	departments DepartmentChecker
	permissions PermissionChecker
	recorder    ActivityRecorder
	logger      logger.Interface
}

func NewUpdateUserUseCase(
	users identity.UserRepository,
	hasher identity.PasswordHasher,
	departments DepartmentChecker,
	permissions PermissionChecker,
	recorder ActivityRecorder,
	log logger.Interface,
) *UpdateUserUseCase {
	return &UpdateUserUseCase{
		users:       users,
		hasher:      hasher,
		departments: departments,
		permissions: permissions,
		recorder:    recorder,
		logger:      log,
	}
}

func (uc *UpdateUserUseCase) Execute(ctx context.Context, cmd UpdateUserCommand) (*UpdateUserResult, error) {
	if err := uc.permissions.Require(ctx, cmd.Actor, constants.PermUsersManage); err != nil {
		return nil, err
	}
	if cmd.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}

	user, err := uc.users.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	changes := map[string]any{}

	if cmd.Role != nil {
		role := authorization.UserRole(*cmd.Role)
		if !role.IsValid() {
			return nil, errors.NewValidationError("invalid role: " + *cmd.Role)
		}
		deptID := cmd.DepartmentID
		if deptID == nil {
			deptID = user.DepartmentID()
		}
		if deptID != nil {
			ok, err := uc.departments.DepartmentExists(ctx, *deptID)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, errors.NewValidationError("department does not exist")
			}
		}
		if err := user.ChangeRole(role, deptID); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		changes["role"] = role.String()
	}

	if cmd.IsActive != nil {
		if *cmd.IsActive {
			user.Activate()
		} else {
			if cmd.UserID == cmd.Actor.UserID {
				return nil, errors.NewValidationError("cannot deactivate yourself")
			}
			user.Deactivate()
		}
		changes["is_active"] = *cmd.IsActive
	}

	if cmd.Password != nil {
		if err := user.SetPassword(*cmd.Password, uc.hasher); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		changes["password"] = "changed"
	}

	if len(changes) == 0 {
		return nil, errors.NewValidationError("no changes supplied")
	}

	if err := uc.users.Update(ctx, user); err != nil {
		uc.logger.Errorw("failed to update user", "user_id", cmd.UserID, "error", err)
		return nil, err
	}

	userID := user.ID()
	if err := uc.recorder.Record(ctx, cmd.Actor, constants.ActionUserUpdate, "user", &userID, changes); err != nil {
		uc.logger.Warnw("failed to record user update", "user_id", userID, "error", err)
	}

	uc.logger.Infow("user updated", "user_id", userID)

	return &UpdateUserResult{
		UserID:   user.ID(),
		Role:     user.Role(),
		IsActive: user.IsActive(),
	}, nil
}
