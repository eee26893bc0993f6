package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "caretrack/internal/domain/permission"
	"caretrack/internal/shared/authorization"
	"caretrack/internal/shared/constants"
	sharederrors "caretrack/internal/shared/errors"
	"caretrack/internal/shared/logger"
)

func catalogPermission(t *testing.T, code, description string) *domain.Permission {
	t.Helper()
	p, err := domain.NewPermission(code, description)
	require.NoError(t, err)
	return p
}

func TestGetGrantsUseCase_Execute_RoleDefaults(t *testing.T) {
	repo := &mockPermissionRepository{
		ListPermissionsFunc: func(ctx context.Context) ([]*domain.Permission, error) {
			return []*domain.Permission{
				catalogPermission(t, constants.PermComplaintCreate, "Create complaints"),
				catalogPermission(t, constants.PermComplaintAssign, "Assign complaints"),
			}, nil
		},
		GetRoleGrantsFunc: func(ctx context.Context, role authorization.UserRole) ([]*domain.RoleGrant, error) {
			assert.Equal(t, authorization.RoleEmployee, role)
			g, err := domain.NewRoleGrant(role, constants.PermComplaintCreate, true)
			require.NoError(t, err)
			return []*domain.RoleGrant{g}, nil
		},
	}
	uc := NewGetGrantsUseCase(repo, &mockPermissionChecker{}, logger.NewLogger())

	result, err := uc.Execute(context.Background(), GetGrantsQuery{
		Actor: superAdminActor(),
		Role:  string(authorization.RoleEmployee),
	})

	require.NoError(t, err)
	assert.Len(t, result.Catalog, 2)
	assert.Equal(t, map[string]bool{constants.PermComplaintCreate: true}, result.Grants)
}

func TestGetGrantsUseCase_Execute_UserOverrides(t *testing.T) {
	var checkedCode string
	checker := &mockPermissionChecker{
		RequireFunc: func(ctx context.Context, actor authorization.Actor, code string) error {
			checkedCode = code
			return nil
		},
	}
	repo := &mockPermissionRepository{
		GetUserGrantsFunc: func(ctx context.Context, userID uint) ([]*domain.UserGrant, error) {
			assert.Equal(t, uint(42), userID)
			g, err := domain.NewUserGrant(userID, constants.PermComplaintAssign, false)
			require.NoError(t, err)
			return []*domain.UserGrant{g}, nil
		},
	}
	uc := NewGetGrantsUseCase(repo, checker, logger.NewLogger())

	result, err := uc.Execute(context.Background(), GetGrantsQuery{
		Actor:  superAdminActor(),
		UserID: 42,
	})

	require.NoError(t, err)
	assert.Equal(t, constants.PermUserPermissionsManage, checkedCode)
	assert.Equal(t, map[string]bool{constants.PermComplaintAssign: false}, result.Grants)
}

func TestGetGrantsUseCase_Execute_RoleQueryChecksManagePermission(t *testing.T) {
	var checkedCode string
	checker := &mockPermissionChecker{
		RequireFunc: func(ctx context.Context, actor authorization.Actor, code string) error {
			checkedCode = code
			return nil
		},
	}
	uc := NewGetGrantsUseCase(&mockPermissionRepository{}, checker, logger.NewLogger())

	_, err := uc.Execute(context.Background(), GetGrantsQuery{
		Actor: superAdminActor(),
		Role:  string(authorization.RoleDepartmentAdmin),
	})

	require.NoError(t, err)
	assert.Equal(t, constants.PermPermissionsManage, checkedCode)
}

func TestGetGrantsUseCase_Execute_InvalidRole(t *testing.T) {
	uc := NewGetGrantsUseCase(&mockPermissionRepository{}, &mockPermissionChecker{}, logger.NewLogger())

	_, err := uc.Execute(context.Background(), GetGrantsQuery{
		Actor: superAdminActor(),
		Role:  "janitor",
	})

	assert.True(t, sharederrors.IsValidationError(err))
}

func TestGetGrantsUseCase_Execute_MissingTarget(t *testing.T) {
	uc := NewGetGrantsUseCase(&mockPermissionRepository{}, &mockPermissionChecker{}, logger.NewLogger())

	_, err := uc.Execute(context.Background(), GetGrantsQuery{Actor: superAdminActor()})

	require.Error(t, err)
	assert.True(t, sharederrors.IsValidationError(err))
}

func TestGetGrantsUseCase_Execute_PermissionDenied(t *testing.T) {
	checker := &mockPermissionChecker{
		RequireFunc: func(ctx context.Context, actor authorization.Actor, code string) error {
			return sharederrors.NewForbiddenError("permission denied", code)
		},
	}
	uc := NewGetGrantsUseCase(&mockPermissionRepository{}, checker, logger.NewLogger())

	_, err := uc.Execute(context.Background(), GetGrantsQuery{
		Actor: authorization.Actor{UserID: 9, Role: authorization.RoleEmployee},
		Role:  string(authorization.RoleEmployee),
	})

	assert.True(t, sharederrors.IsForbiddenError(err))
}
