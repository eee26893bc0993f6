package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"caretrack/internal/domain/identity"
	"caretrack/internal/shared/authorization"
)

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

type mockTokenIssuer struct {
	GenerateFunc              func(userID uint, role authorization.UserRole, departmentID *uint) (string, int64, error)
	GenerateImpersonationFunc func(targetUserID uint, targetRole authorization.UserRole, targetDepartmentID *uint, originalAdminID uint) (string, int64, error)
}

func (m *mockTokenIssuer) Generate(userID uint, role authorization.UserRole, departmentID *uint) (string, int64, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(userID, role, departmentID)
	}
	return "access-token", 1800, nil
}

func (m *mockTokenIssuer) GenerateImpersonation(targetUserID uint, targetRole authorization.UserRole, targetDepartmentID *uint, originalAdminID uint) (string, int64, error) {
	if m.GenerateImpersonationFunc != nil {
		return m.GenerateImpersonationFunc(targetUserID, targetRole, targetDepartmentID, originalAdminID)
	}
	return "impersonation-token", 7200, nil
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
	Actor      authorization.Actor
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
	m.Recorded = append(m.Recorded, recordedActivity{Actor: actor, Action: action, EntityType: entityType, EntityID: entityID, Details: details})
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, actor, action, entityType, entityID, details)
	}
	return nil
}

type mockDepartmentChecker struct {
	DepartmentExistsFunc func(ctx context.Context, departmentID uint) (bool, error)
}

func (m *mockDepartmentChecker) DepartmentExists(ctx context.Context, departmentID uint) (bool, error) {
	if m.DepartmentExistsFunc != nil {
		return m.DepartmentExistsFunc(ctx, departmentID)
	}
	return true, nil
}

// fakeHasher avoids bcrypt cost in tests.
type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) {
	return "hashed:" + plain, nil
}

func (fakeHasher) Compare(hashed, plain string) error {
	if hashed != "hashed:"+plain {
		return identityCompareError{}
	}
	return nil
}

type identityCompareError struct{}

func (identityCompareError) Error() string { return "password mismatch" }

func activeUser(t *testing.T, id uint, email string, role authorization.UserRole, departmentID *uint) *identity.User {
	t.Helper()
	now := time.Now().UTC()
	u, err := identity.ReconstructUser(id, email, "Test User", "hashed:secret-pass", role, departmentID, true, 1, now, now)
	require.NoError(t, err)
	return u
}

func inactiveUser(t *testing.T, id uint, role authorization.UserRole, departmentID *uint) *identity.User {
	t.Helper()
	now := time.Now().UTC()
	u, err := identity.ReconstructUser(id, "inactive@clinic.example", "Former Employee", "hashed:secret-pass", role, departmentID, false, 1, now, now)
	require.NoError(t, err)
	return u
}

func deptPtr(v uint) *uint { return &v }
