package usecases

import (
	"context"
	"strings"

	"caretrack/internal/domain/identity"
	"caretrack/internal/shared/authorization"
	"caretrack/internal/shared/constants"
	"caretrack/internal/shared/errors"
	"caretrack/internal/shared/logger"
)

// DepartmentChecker verifies a department row exists and is active.
type DepartmentChecker interface {
	DepartmentExists(ctx context.Context, departmentID uint) (bool, error)
}

type CreateUserCommand struct {
	Actor        authorization.Actor
	Email        string
	Name         string
	Password     string
	Role         string
	DepartmentID *uint
}

type CreateUserResult struct {
	UserID       uint
	Email        string
	Name         string
	Role         authorization.UserRole
	DepartmentID *uint
}

type CreateUserUseCase struct {
	users       identity.UserRepository
	hasher      identity.PasswordHasher
	departments DepartmentChecker
	permissions PermissionChecker
	recorder    ActivityRecorder
	logger      logger.Interface
}

func NewCreateUserUseCase(
	users identity.UserRepository,
	hasher identity.PasswordHasher,
	departments DepartmentChecker,
	permissions PermissionChecker,
	recorder ActivityRecorder,
	log logger.Interface,
) *CreateUserUseCase {
	return &CreateUserUseCase{
		users:       users,
		hasher:      hasher,
		departments: departments,
		permissions: permissions,
		recorder:    recorder,
		logger:      log,
	}
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, cmd CreateUserCommand) (*CreateUserResult, error) {
	if err := uc.permissions.Require(ctx, cmd.Actor, constants.PermUsersManage); err != nil {
		return nil, err
	}

	role := authorization.UserRole(cmd.Role)
	if !role.IsValid() {
		return nil, errors.NewValidationError("invalid role: " + cmd.Role)
	}

	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	exists, err := uc.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.NewConflictError("email already registered")
	}

	if cmd.DepartmentID != nil {
		ok, err := uc.departments.DepartmentExists(ctx, *cmd.DepartmentID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.NewValidationError("department does not exist")
		}
	}

	user, err := identity.NewUser(email, cmd.Name, role, cmd.DepartmentID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := user.SetPassword(cmd.Password, uc.hasher); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.users.Save(ctx, user); err != nil {
		uc.logger.Errorw("failed to save user", "email", email, "error", err)
		return nil, err
	}

	userID := user.ID()
	if err := uc.recorder.Record(ctx, cmd.Actor, constants.ActionUserCreate, "user", &userID, map[string]any{
		"email": user.Email(),
		"role":  user.Role().String(),
	}); err != nil {
		uc.logger.Warnw("failed to record user creation", "user_id", userID, "error", err)
	}

	uc.logger.Infow("user created", "user_id", userID, "role", user.Role())

	return &CreateUserResult{
		UserID:       user.ID(),
		Email:        user.Email(),
		Name:         user.Name(),
		Role:         user.Role(),
		DepartmentID: user.DepartmentID(),
	}, nil
}
