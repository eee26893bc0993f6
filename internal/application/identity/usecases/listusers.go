package usecases

import (
	"context"

	"caretrack/internal/domain/identity"
	"caretrack/internal/shared/authorization"
	"caretrack/internal/shared/constants"
	"caretrack/internal/shared/logger"
)

type ListUsersQuery struct {
	Actor        authorization.Actor
	Role         string
	DepartmentID *uint
	IsActive     *bool
	Search       string
	Page         int
	PageSize     int
}

type UserDTO struct {
	ID           uint                   `json:"id"`
	Email        string                 `json:"email"`
	Name         string                 `json:"name"`
	Role         authorization.UserRole `json:"role"`
	DepartmentID *uint                  `json:"department_id,omitempty"`
	IsActive     bool                   `json:"is_active"`
	CreatedAt    int64                  `json:"created_at"`
}

type ListUsersResult struct {
	Users    []UserDTO
	Total    int64
	Page     int
	PageSize int
}

type ListUsersUseCase struct {
	users       identity.UserRepository
	permissions PermissionChecker
	logger      logger.Interface
}

func NewListUsersUseCase(users identity.UserRepository, permissions PermissionChecker, log logger.Interface) *ListUsersUseCase {
	return &ListUsersUseCase{
		users:       users,
		permissions: permissions,
		logger:      log,
	}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, query ListUsersQuery) (*ListUsersResult, error) {
	if err := uc.permissions.Require(ctx, query.Actor, constants.PermUsersManage); err != nil {
		return nil, err
	}

	filter := identity.UserFilter{
		DepartmentID: query.DepartmentID,
		IsActive:     query.IsActive,
		Search:       query.Search,
		Page:         query.Page,
		PageSize:     query.PageSize,
	}
	if query.Role != "" {
		role := authorization.UserRole(query.Role)
		filter.Role = &role
	}
	if filter.Page < 1 {
		filter.Page = constants.DefaultPage
	}
	if filter.PageSize < 1 {
		filter.PageSize = constants.DefaultPageSize
	}
	if filter.PageSize > constants.MaxPageSize {
		filter.PageSize = constants.MaxPageSize
	}

	users, total, err := uc.users.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list users", "error", err)
		return nil, err
	}

	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = UserDTO{
			ID:           u.ID(),
			Email:        u.Email(),
			Name:         u.Name(),
			Role:         u.Role(),
			DepartmentID: u.DepartmentID(),
			IsActive:     u.IsActive(),
			CreatedAt:    u.CreatedAt().UnixMilli(),
		}
	}

	return &ListUsersResult{
		Users:    dtos,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}
