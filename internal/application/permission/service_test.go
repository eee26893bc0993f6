package permission

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "caretrack/internal/domain/permission"
	"caretrack/internal/shared/authorization"
	sharederrors "caretrack/internal/shared/errors"
	"caretrack/internal/shared/logger"
)

type mockPermissionRepo struct {
	ListPermissionsFunc   func(ctx context.Context) ([]*domain.Permission, error)
	ExistsByCodeFunc      func(ctx context.Context, code string) (bool, error)
	GetRoleGrantsFunc     func(ctx context.Context, role authorization.UserRole) ([]*domain.RoleGrant, error)
	GetUserGrantsFunc     func(ctx context.Context, userID uint) ([]*domain.UserGrant, error)
	FindRoleGrantFunc     func(ctx context.Context, role authorization.UserRole, code string) (*domain.RoleGrant, error)
	FindUserGrantFunc     func(ctx context.Context, userID uint, code string) (*domain.UserGrant, error)
	ReplaceRoleGrantsFunc func(ctx context.Context, role authorization.UserRole, grants []*domain.RoleGrant) error
	ReplaceUserGrantsFunc func(ctx context.Context, userID uint, grants []*domain.UserGrant) error
}

func (m *mockPermissionRepo) ListPermissions(ctx context.Context) ([]*domain.Permission, error) {
	if m.ListPermissionsFunc != nil {
		return m.ListPermissionsFunc(ctx)
	}
	return nil, nil
}

func (m *mockPermissionRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	if m.ExistsByCodeFunc != nil {
		return m.ExistsByCodeFunc(ctx, code)
	}
	return true, nil
}

func (m *mockPermissionRepo) GetRoleGrants(ctx context.Context, role authorization.UserRole) ([]*domain.RoleGrant, error) {
	if m.GetRoleGrantsFunc != nil {
		return m.GetRoleGrantsFunc(ctx, role)
	}
	return nil, nil
}

func (m *mockPermissionRepo) GetUserGrants(ctx context.Context, userID uint) ([]*domain.UserGrant, error) {
	if m.GetUserGrantsFunc != nil {
		return m.GetUserGrantsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockPermissionRepo) FindRoleGrant(ctx context.Context, role authorization.UserRole, code string) (*domain.RoleGrant, error) {
	if m.FindRoleGrantFunc != nil {
		return m.FindRoleGrantFunc(ctx, role, code)
	}
	return nil, nil
}

func (m *mockPermissionRepo) FindUserGrant(ctx context.Context, userID uint, code string) (*domain.UserGrant, error) {
	if m.FindUserGrantFunc != nil {
		return m.FindUserGrantFunc(ctx, userID, code)
	}
	return nil, nil
}

func (m *mockPermissionRepo) ReplaceRoleGrants(ctx context.Context, role authorization.UserRole, grants []*domain.RoleGrant) error {
	if m.ReplaceRoleGrantsFunc != nil {
		return m.ReplaceRoleGrantsFunc(ctx, role, grants)
	}
	return nil
}

func (m *mockPermissionRepo) ReplaceUserGrants(ctx context.Context, userID uint, grants []*domain.UserGrant) error {
	if m.ReplaceUserGrantsFunc != nil {
		return m.ReplaceUserGrantsFunc(ctx, userID, grants)
	}
	return nil
}

func roleGrant(t *testing.T, role authorization.UserRole, code string, allowed bool) *domain.RoleGrant {
	t.Helper()
	g, err := domain.NewRoleGrant(role, code, allowed)
	require.NoError(t, err)
	return g
}

func userGrant(t *testing.T, userID uint, code string, allowed bool) *domain.UserGrant {
	t.Helper()
	g, err := domain.NewUserGrant(userID, code, allowed)
	require.NoError(t, err)
	return g
}

func employeeActor() authorization.Actor {
	dept := uint(3)
	return authorization.Actor{UserID: 10, Role: authorization.RoleEmployee, DepartmentID: &dept}
}

func TestResolve_SuperAdminBypassesTables(t *testing.T) {
	repo := &mockPermissionRepo{
		FindUserGrantFunc: func(ctx context.Context, userID uint, code string) (*domain.UserGrant, error) {
			t.Fatal("super admin resolution must not touch the grant tables")
			return nil, nil
		},
	}
	svc := NewService(repo, logger.NewLogger())

	allowed, err := svc.Resolve(context.Background(), authorization.Actor{UserID: 1, Role: authorization.RoleSuperAdmin}, "complaint.assign")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestResolve_TwoLayerPrecedence(t *testing.T) {
	tests := []struct {
		name      string
		userGrant *bool
		roleGrant *bool
		want      bool
	}{
		{name: "no rows denies", want: false},
		{name: "role allow", roleGrant: boolPtr(true), want: true},
		{name: "role deny", roleGrant: boolPtr(false), want: false},
		{name: "user allow beats role deny", userGrant: boolPtr(true), roleGrant: boolPtr(false), want: true},
		{name: "user deny beats role allow", userGrant: boolPtr(false), roleGrant: boolPtr(true), want: false},
		{name: "user allow with no role row", userGrant: boolPtr(true), want: true},
		{name: "user deny with no role row", userGrant: boolPtr(false), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockPermissionRepo{
				FindUserGrantFunc: func(ctx context.Context, userID uint, code string) (*domain.UserGrant, error) {
					if tt.userGrant == nil {
						return nil, nil
					}
					return userGrant(t, userID, code, *tt.userGrant), nil
				},
				FindRoleGrantFunc: func(ctx context.Context, role authorization.UserRole, code string) (*domain.RoleGrant, error) {
					if tt.roleGrant == nil {
						return nil, nil
					}
					return roleGrant(t, role, code, *tt.roleGrant), nil
				},
			}
			svc := NewService(repo, logger.NewLogger())

			allowed, err := svc.Resolve(context.Background(), employeeActor(), "complaint.assign")
			require.NoError(t, err)
			assert.Equal(t, tt.want, allowed)
		})
	}
}

func TestResolve_MalformedCodeDenies(t *testing.T) {
	svc := NewService(&mockPermissionRepo{}, logger.NewLogger())

	allowed, err := svc.Resolve(context.Background(), employeeActor(), "not a code")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestResolve_RepositoryErrorFailsClosed(t *testing.T) {
	repo := &mockPermissionRepo{
		FindUserGrantFunc: func(ctx context.Context, userID uint, code string) (*domain.UserGrant, error) {
			return nil, errors.New("connection lost")
		},
	}
	svc := NewService(repo, logger.NewLogger())

	allowed, err := svc.Resolve(context.Background(), employeeActor(), "complaint.assign")
	assert.Error(t, err)
	assert.False(t, allowed)
}

func TestResolveAny(t *testing.T) {
	repo := &mockPermissionRepo{
		FindRoleGrantFunc: func(ctx context.Context, role authorization.UserRole, code string) (*domain.RoleGrant, error) {
			if code == "complaint.view_department" {
				return roleGrant(t, role, code, true), nil
			}
			return nil, nil
		},
	}
	svc := NewService(repo, logger.NewLogger())
	ctx := context.Background()

	allowed, err := svc.ResolveAny(ctx, employeeActor(), "complaint.view_all", "complaint.view_department")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.ResolveAny(ctx, employeeActor(), "complaint.view_all", "complaint.export")
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = svc.ResolveAny(ctx, employeeActor())
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestRequire(t *testing.T) {
	svc := NewService(&mockPermissionRepo{}, logger.NewLogger())

	err := svc.Require(context.Background(), employeeActor(), "complaint.assign")
	require.Error(t, err)
	assert.True(t, sharederrors.IsForbiddenError(err))

	assert.NoError(t, svc.Require(context.Background(), authorization.Actor{UserID: 1, Role: authorization.RoleSuperAdmin}, "complaint.assign"))
}

func boolPtr(b bool) *bool { return &b }
