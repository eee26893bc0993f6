package usecases

import (
	"context"

	"caretrack/internal/domain/identity"
	"caretrack/internal/shared/authorization"
	"caretrack/internal/shared/constants"
	"caretrack/internal/shared/errors"
	"caretrack/internal/shared/logger"
)

type StartImpersonationCommand struct {
	Actor        authorization.Actor
	TargetUserID uint
}

type StartImpersonationResult struct {
	TargetUserID   uint
	TargetName     string
	TargetRole     authorization.UserRole
	Token          string
	ExpiresIn      int64
	OriginalAdmin  uint
}

// StartImpersonationUseCase issues a short-lived token that acts as the
// target user while retaining the admin's identity for the audit trail.
// Only a real super admin may start one; chaining from an already
// impersonated session is rejected.
type StartImpersonationUseCase struct {
	users    identity.UserRepository
	tokens   TokenIssuer
	recorder ActivityRecorder
	logger   logger.Interface
}

func NewStartImpersonationUseCase(
	users identity.UserRepository,
	tokens TokenIssuer,
	recorder ActivityRecorder,
	log logger.Interface,
) *StartImpersonationUseCase {
	return &StartImpersonationUseCase{
		users:    users,
		tokens:   tokens,
		recorder: recorder,
		logger:   log,
	}
}

func (uc *StartImpersonationUseCase) Execute(ctx context.Context, cmd StartImpersonationCommand) (*StartImpersonationResult, error) {
	if !cmd.Actor.IsSuperAdmin() {
		return nil, errors.NewForbiddenError("only super admins can impersonate users")
	}
	if cmd.Actor.IsImpersonating() {
		return nil, errors.NewForbiddenError("cannot start impersonation from an impersonated session")
	}
	if cmd.TargetUserID == 0 {
		return nil, errors.NewValidationError("target user ID is required")
	}
	if cmd.TargetUserID == cmd.Actor.UserID {
		return nil, errors.NewValidationError("cannot impersonate yourself")
	}

	target, err := uc.users.GetByID(ctx, cmd.TargetUserID)
	if err != nil {
		return nil, err
	}
	if target.Role().IsSuperAdmin() {
		return nil, errors.NewForbiddenError("cannot impersonate another super admin")
	}
	if !target.IsActive() {
		return nil, errors.NewValidationError("cannot impersonate a deactivated user")
	}

	token, expiresIn, err := uc.tokens.GenerateImpersonation(target.ID(), target.Role(), target.DepartmentID(), cmd.Actor.UserID)
	if err != nil {
		uc.logger.Errorw("failed to sign impersonation token", "target_user_id", target.ID(), "error", err)
		return nil, errors.NewInternalError("failed to issue token")
	}

	targetID := target.ID()
	if err := uc.recorder.Record(ctx, cmd.Actor, constants.ActionImpersonationStart, "user", &targetID, map[string]any{
		"target_user_id": target.ID(),
		"target_role":    target.Role().String(),
	}); err != nil {
		// Impersonation without an audit entry is worse than a failed request.
		uc.logger.Errorw("failed to record impersonation start", "target_user_id", target.ID(), "error", err)
		return nil, err
	}

	uc.logger.Infow("impersonation started",
		"admin_id", cmd.Actor.UserID,
		"target_user_id", target.ID(),
		"expires_in", expiresIn,
	)

	return &StartImpersonationResult{
		TargetUserID:  target.ID(),
		TargetName:    target.Name(),
		TargetRole:    target.Role(),
		Token:         token,
		ExpiresIn:     expiresIn,
		OriginalAdmin: cmd.Actor.UserID,
	}, nil
}
