package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"caretrack/internal/domain/identity"
	domain "caretrack/internal/domain/permission"
	"caretrack/internal/shared/authorization"
)

type mockPermissionRepository struct {
	ListPermissionsFunc   func(ctx context.Context) ([]*domain.Permission, error)
	ExistsByCodeFunc      func(ctx context.Context, code string) (bool, error)
	GetRoleGrantsFunc     func(ctx context.Context, role authorization.UserRole) ([]*domain.RoleGrant, error)
	GetUserGrantsFunc     func(ctx context.Context, userID uint) ([]*domain.UserGrant, error)
	FindRoleGrantFunc     func(ctx context.Context, role authorization.UserRole, code string) (*domain.RoleGrant, error)
	FindUserGrantFunc     func(ctx context.Context, userID uint, code string) (*domain.UserGrant, error)
	ReplaceRoleGrantsFunc func(ctx context.Context, role authorization.UserRole, grants []*domain.RoleGrant) error
	ReplaceUserGrantsFunc func(ctx context.Context, userID uint, grants []*domain.UserGrant) error
}

func (m *mockPermissionRepository) ListPermissions(ctx context.Context) ([]*domain.Permission, error) {
	if m.ListPermissionsFunc != nil {
		return m.ListPermissionsFunc(ctx)
	}
	return nil, nil
}

func (m *mockPermissionRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	if m.ExistsByCodeFunc != nil {
		return m.ExistsByCodeFunc(ctx, code)
	}
	return true, nil
}

func (m *mockPermissionRepository) GetRoleGrants(ctx context.Context, role authorization.UserRole) ([]*domain.RoleGrant, error) {
	if m.GetRoleGrantsFunc != nil {
		return m.GetRoleGrantsFunc(ctx, role)
	}
	return nil, nil
}

func (m *mockPermissionRepository) GetUserGrants(ctx context.Context, userID uint) ([]*domain.UserGrant, error) {
	if m.GetUserGrantsFunc != nil {
		return m.GetUserGrantsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockPermissionRepository) FindRoleGrant(ctx context.Context, role authorization.UserRole, code string) (*domain.RoleGrant, error) {
	if m.FindRoleGrantFunc != nil {
		return m.FindRoleGrantFunc(ctx, role, code)
	}
	return nil, nil
}

func (m *mockPermissionRepository) FindUserGrant(ctx context.Context, userID uint, code string) (*domain.UserGrant, error) {
	if m.FindUserGrantFunc != nil {
		return m.FindUserGrantFunc(ctx, userID, code)
	}
	return nil, nil
}

func (m *mockPermissionRepository) ReplaceRoleGrants(ctx context.Context, role authorization.UserRole, grants []*domain.RoleGrant) error {
	if m.ReplaceRoleGrantsFunc != nil {
		return m.ReplaceRoleGrantsFunc(ctx, role, grants)
	}
	return nil
}

func (m *mockPermissionRepository) ReplaceUserGrants(ctx context.Context, userID uint, grants []*domain.UserGrant) error {
	if m.ReplaceUserGrantsFunc != nil {
		return m.ReplaceUserGrantsFunc(ctx, userID, grants)
	}
	return nil
}

type mockUserRepository struct {
	SaveFunc          func(ctx context.Context, user *identity.User) error
	UpdateFunc        func(ctx context.Context, user *identity.User) error
	GetByIDFunc       func(ctx context.Context, userID uint) (*identity.User, error)
	GetByEmailFunc    func(ctx context.Context, email string) (*identity.User, error)
	ListFunc          func(ctx context.Context, filter identity.UserFilter) ([]*identity.User, int64, error)
	ExistsByEmailFunc func(ctx context.Context, email string) (bool, error)
}

func (m *mockUserRepository) Save(ctx context.Context, user *identity.User) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) Update(ctx context.Context, user *identity.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, userID uint) (*identity.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*identity.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepository) List(ctx context.Context, filter identity.UserFilter) ([]*identity.User, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

type mockPermissionChecker struct {
	RequireFunc func(ctx context.Context, actor authorization.Actor, code string) error
}

func (m *mockPermissionChecker) Require(ctx context.Context, actor authorization.Actor, code string) error {
	if m.RequireFunc != nil {
		return m.RequireFunc(ctx, actor, code)
	}
	return nil
}

type recordedActivity struct {
	Action     string
	EntityType string
	EntityID   *uint
	Details    map[string]any
}

type mockActivityRecorder struct {
	RecordFunc func(ctx context.Context, actor authorization.Actor, action, entityType string, entityID *uint, details map[string]any) error

	Recorded []recordedActivity
}

func (m *mockActivityRecorder) Record(ctx context.Context, actor authorization.Actor, action, entityType string, entityID *uint, details map[string]any) error {
	m.Recorded = append(m.Recorded, recordedActivity{Action: action, EntityType: entityType, EntityID: entityID, Details: details})
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, actor, action, entityType, entityID, details)
	}
	return nil
}

type mockTransactionRunner struct {
	RunInTransactionFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTransactionRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTransactionFunc != nil {
		return m.RunInTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}

func superAdminActor() authorization.Actor {
	return authorization.Actor{UserID: 1, Role: authorization.RoleSuperAdmin}
}

func reconstructedUser(t *testing.T, id uint, role authorization.UserRole, departmentID *uint) *identity.User {
	t.Helper()
	now := time.Now().UTC()
	u, err := identity.ReconstructUser(id, "user@clinic.example", "Test User", "hash", role, departmentID, true, 1, now, now)
	require.NoError(t, err)
	return u
}
