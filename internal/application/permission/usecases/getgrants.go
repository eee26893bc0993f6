package usecases

import (
	"context"

	domain "caretrack/internal/domain/permission"
	"caretrack/internal/shared/authorization"
	"caretrack/internal/shared/constants"
	"caretrack/internal/shared/errors"
	"caretrack/internal/shared/logger"
)

type GetGrantsQuery struct {
	Actor authorization.Actor
	// Role or UserID, not both. Role queries return the defaults; user
	// queries return the overrides only.
	Role   string
	UserID uint
}

type GetGrantsResult struct {
	Catalog []PermissionDTO
	Grants  map[string]bool
}

type PermissionDTO struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type GetGrantsUseCase struct {
	repo        domain.Repository
	permissions PermissionChecker
	logger      logger.Interface
}

func NewGetGrantsUseCase(repo domain.Repository, permissions PermissionChecker, log logger.Interface) *GetGrantsUseCase {
	return &GetGrantsUseCase{
		repo:        repo,
		permissions: permissions,
		logger:      log,
	}
}

func (uc *GetGrantsUseCase) Execute(ctx context.Context, query GetGrantsQuery) (*GetGrantsResult, error) {
	code := constants.PermPermissionsManage
	if query.UserID != 0 {
		code = constants.PermUserPermissionsManage
	}
	if err := uc.permissions.Require(ctx, query.Actor, code); err != nil {
		return nil, err
	}

	catalog, err := uc.repo.ListPermissions(ctx)
	if err != nil {
		return nil, err
	}

	result := &GetGrantsResult{
		Catalog: make([]PermissionDTO, len(catalog)),
		Grants:  make(map[string]bool),
	}
	for i, p := range catalog {
		result.Catalog[i] = PermissionDTO{Code: p.Code(), Description: p.Description()}
	}

	switch {
	case query.UserID != 0:
		grants, err := uc.repo.GetUserGrants(ctx, query.UserID)
		if err != nil {
			return nil, err
		}
		for _, g := range grants {
			result.Grants[g.PermissionCode()] = g.Allowed()
		}
	case query.Role != "":
		role := authorization.UserRole(query.Role)
		if !role.IsValid() {
			return nil, errors.NewValidationError("invalid role: " + query.Role)
		}
		grants, err := uc.repo.GetRoleGrants(ctx, role)
		if err != nil {
			return nil, err
		}
		for _, g := range grants {
			result.Grants[g.PermissionCode()] = g.Allowed()
		}
	default:
		return nil, errors.NewValidationError("either role or user ID is required")
	}

	return result, nil
}
