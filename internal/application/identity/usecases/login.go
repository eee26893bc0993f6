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

type LoginCommand struct {
	Email     string
	Password  string
	IPAddress string
	UserAgent string
}

type LoginResult struct {
	UserID       uint
	Name         string
	Email        string
	Role         authorization.UserRole
	DepartmentID *uint
	AccessToken  string
	ExpiresIn    int64
}

type LoginUseCase struct {
	users    identity.UserRepository
	hasher   identity.PasswordHasher
	tokens   TokenIssuer
	recorder ActivityRecorder
	logger   logger.Interface
}

func NewLoginUseCase(
	users identity.UserRepository,
	hasher identity.PasswordHasher,
	tokens TokenIssuer,
	recorder ActivityRecorder,
	log logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		recorder: recorder,
		logger:   log,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if email == "" || cmd.Password == "" {
		return nil, errors.NewInvalidCredentialsError()
	}

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		// Unknown email and wrong password are indistinguishable to the caller.
		if errors.IsNotFoundError(err) {
			return nil, errors.NewInvalidCredentialsError()
		}
		uc.logger.Errorw("failed to load user for login", "error", err)
		return nil, err
	}

	if err := user.VerifyPassword(cmd.Password, uc.hasher); err != nil {
		uc.logger.Warnw("login rejected", "user_id", user.ID(), "reason", "bad password", "ip", cmd.IPAddress)
		return nil, errors.NewInvalidCredentialsError()
	}

	if !user.IsActive() {
		return nil, errors.NewAccountInactiveError()
	}

	token, expiresIn, err := uc.tokens.Generate(user.ID(), user.Role(), user.DepartmentID())
	if err != nil {
		uc.logger.Errorw("failed to sign access token", "user_id", user.ID(), "error", err)
		return nil, errors.NewInternalError("failed to issue token")
	}

	actor := authorization.Actor{UserID: user.ID(), Role: user.Role(), DepartmentID: user.DepartmentID()}
	if err := uc.recorder.Record(ctx, actor, constants.ActionLogin, "user", uintPtr(user.ID()), map[string]any{
		"ip":         cmd.IPAddress,
		"user_agent": cmd.UserAgent,
	}); err != nil {
		// Audit failure must not lock users out.
		uc.logger.Warnw("failed to record login", "user_id", user.ID(), "error", err)
	}

	uc.logger.Infow("user logged in", "user_id", user.ID(), "role", user.Role())

	return &LoginResult{
		UserID:       user.ID(),
		Name:         user.Name(),
		Email:        user.Email(),
		Role:         user.Role(),
		DepartmentID: user.DepartmentID(),
		AccessToken:  token,
		ExpiresIn:    expiresIn,
	}, nil
}

func uintPtr(v uint) *uint { return &v }
