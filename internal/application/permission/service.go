package permission

import (
	"context"

	domain "caretrack/internal/domain/permission"
	"caretrack/internal/shared/authorization"
	"caretrack/internal/shared/errors"
	"caretrack/internal/shared/logger"
)

// Resolver answers "may this actor do X". Both HTTP middleware and use cases
// go through it; nothing else in the codebase reads the grant tables.
type Resolver interface {
	Resolve(ctx context.Context, actor authorization.Actor, code string) (bool, error)
	ResolveAny(ctx context.Context, actor authorization.Actor, codes ...string) (bool, error)
	Require(ctx context.Context, actor authorization.Actor, code string) error
}

// Service resolves permissions with the two-layer model: a user override
// always beats the role default, and a missing row at both layers denies.
// Super admins bypass the tables entirely.
type Service struct {
	repo   domain.Repository
	logger logger.Interface
}

func NewService(repo domain.Repository, log logger.Interface) *Service {
	return &Service{
		repo:   repo,
		logger: log,
	}
}

func (s *Service) Resolve(ctx context.Context, actor authorization.Actor, code string) (bool, error) {
	if actor.IsSuperAdmin() {
		return true, nil
	}

	if err := domain.ValidateCode(code); err != nil {
		// Malformed codes deny rather than error so a bad caller cannot
		// turn a typo into an open door.
		s.logger.Warnw("permission check with malformed code", "code", code, "user_id", actor.UserID)
		return false, nil
	}

	userGrant, err := s.repo.FindUserGrant(ctx, actor.UserID, code)
	if err != nil {
		return false, err
	}
	if userGrant != nil {
		return userGrant.Allowed(), nil
	}

	roleGrant, err := s.repo.FindRoleGrant(ctx, actor.Role, code)
	if err != nil {
		return false, err
	}
	if roleGrant != nil {
		return roleGrant.Allowed(), nil
	}

	return false, nil
}

// ResolveAny grants when at least one of the codes resolves to allowed.
func (s *Service) ResolveAny(ctx context.Context, actor authorization.Actor, codes ...string) (bool, error) {
	for _, code := range codes {
		allowed, err := s.Resolve(ctx, actor, code)
		if err != nil {
			return false, err
		}
		if allowed {
			return true, nil
		}
	}
	return false, nil
}

// Require turns a denied resolution into a forbidden error.
func (s *Service) Require(ctx context.Context, actor authorization.Actor, code string) error {
	allowed, err := s.Resolve(ctx, actor, code)
	if err != nil {
		return err
	}
	if !allowed {
		return errors.NewForbiddenError("permission denied", code)
	}
	return nil
}
