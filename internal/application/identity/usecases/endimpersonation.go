package usecases

import (
	"context"

	"caretrack/internal/domain/identity"
	"caretrack/internal/shared/authorization"
	"caretrack/internal/shared/constants"
	"caretrack/internal/shared/errors"
	"caretrack/internal/shared/logger"
)

type EndImpersonationCommand struct {
	Actor authorization.Actor
}

type EndImpersonationResult struct {
	AdminUserID uint
	Token       string
	ExpiresIn   int64
}

// EndImpersonationUseCase closes an impersonated session and hands the
// admin a fresh token under their own identity.
type EndImpersonationUseCase struct {
	users    identity.UserRepository
	tokens   TokenIssuer
	recorder ActivityRecorder
	logger   logger.Interface
}

func NewEndImpersonationUseCase(
	users identity.UserRepository,
	tokens TokenIssuer,
	recorder ActivityRecorder,
	log logger.Interface,
) *EndImpersonationUseCase {
	return &EndImpersonationUseCase{
		users:    users,
		tokens:   tokens,
		recorder: recorder,
		logger:   log,
	}
}

func (uc *EndImpersonationUseCase) Execute(ctx context.Context, cmd EndImpersonationCommand) (*EndImpersonationResult, error) {
	if !cmd.Actor.IsImpersonating() {
		return nil, errors.NewForbiddenError("session is not impersonated")
	}

	adminID := *cmd.Actor.OriginalAdminID
	admin, err := uc.users.GetByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if !admin.IsActive() || !admin.Role().IsSuperAdmin() {
		// The admin lost their standing mid-session; do not mint them a token.
		return nil, errors.NewForbiddenError("original admin is no longer a super admin")
	}

	token, expiresIn, err := uc.tokens.Generate(admin.ID(), admin.Role(), admin.DepartmentID())
	if err != nil {
		uc.logger.Errorw("failed to sign access token", "user_id", admin.ID(), "error", err)
		return nil, errors.NewInternalError("failed to issue token")
	}

	impersonatedID := cmd.Actor.UserID
	if err := uc.recorder.Record(ctx, cmd.Actor, constants.ActionImpersonationEnd, "user", &impersonatedID, map[string]any{
		"admin_user_id": adminID,
	}); err != nil {
		uc.logger.Errorw("failed to record impersonation end", "admin_id", adminID, "error", err)
		return nil, err
	}

	uc.logger.Infow("impersonation ended", "admin_id", adminID, "impersonated_user_id", impersonatedID)

	return &EndImpersonationResult{
		AdminUserID: admin.ID(),
		Token:       token,
		ExpiresIn:   expiresIn,
	}, nil
}
