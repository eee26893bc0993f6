package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caretrack/internal/domain/identity"
	"caretrack/internal/shared/authorization"
	"caretrack/internal/shared/constants"
	sharederrors "caretrack/internal/shared/errors"
	"caretrack/internal/shared/logger"
)

func newCreateUserUseCase(
	users *mockUserRepository,
	departments *mockDepartmentChecker,
	checker *mockPermissionChecker,
	recorder *mockActivityRecorder,
) *CreateUserUseCase {
	return NewCreateUserUseCase(users, fakeHasher{}, departments, checker, recorder, logger.NewLogger())
}

func TestCreateUserUseCase_Execute_Success(t *testing.T) {
	var saved *identity.User
	users := &mockUserRepository{
		SaveFunc: func(ctx context.Context, user *identity.User) error {
			saved = user
			return user.SetID(99)
		},
	}
	recorder := &mockActivityRecorder{}
	uc := newCreateUserUseCase(users, &mockDepartmentChecker{}, &mockPermissionChecker{}, recorder)

	result, err := uc.Execute(context.Background(), CreateUserCommand{
		Actor:        adminActor(),
		Email:        "New.Nurse@Clinic.example",
		Name:         "New Nurse",
		Password:     "secret-pass",
		Role:         string(authorization.RoleEmployee),
		DepartmentID: deptPtr(3),
	})

	require.NoError(t, err)
	assert.Equal(t, uint(99), result.UserID)
	assert.Equal(t, "new.nurse@clinic.example", result.Email)
	require.NotNil(t, saved)
	assert.Equal(t, "hashed:secret-pass", saved.PasswordHash())

	require.Len(t, recorder.Recorded, 1)
	assert.Equal(t, constants.ActionUserCreate, recorder.Recorded[0].Action)
}

func TestCreateUserUseCase_Execute_PermissionDenied(t *testing.T) {
	checker := &mockPermissionChecker{
		RequireFunc: func(ctx context.Context, actor authorization.Actor, code string) error {
			assert.Equal(t, constants.PermUsersManage, code)
			return sharederrors.NewForbiddenError("permission denied", code)
		},
	}
	uc := newCreateUserUseCase(&mockUserRepository{}, &mockDepartmentChecker{}, checker, &mockActivityRecorder{})

	_, err := uc.Execute(context.Background(), CreateUserCommand{
		Actor: authorization.Actor{UserID: 5, Role: authorization.RoleEmployee, DepartmentID: deptPtr(3)},
	})

	assert.True(t, sharederrors.IsForbiddenError(err))
}

func TestCreateUserUseCase_Execute_DuplicateEmail(t *testing.T) {
	users := &mockUserRepository{
		ExistsByEmailFunc: func(ctx context.Context, email string) (bool, error) {
			return true, nil
		},
	}
	uc := newCreateUserUseCase(users, &mockDepartmentChecker{}, &mockPermissionChecker{}, &mockActivityRecorder{})

	_, err := uc.Execute(context.Background(), CreateUserCommand{
		Actor:        adminActor(),
		Email:        "taken@clinic.example",
		Name:         "Dup",
		Password:     "secret-pass",
		Role:         string(authorization.RoleEmployee),
		DepartmentID: deptPtr(3),
	})

	assert.True(t, sharederrors.IsConflictError(err))
}

func TestCreateUserUseCase_Execute_UnknownDepartment(t *testing.T) {
	departments := &mockDepartmentChecker{
		DepartmentExistsFunc: func(ctx context.Context, departmentID uint) (bool, error) {
			return false, nil
		},
	}
	uc := newCreateUserUseCase(&mockUserRepository{}, departments, &mockPermissionChecker{}, &mockActivityRecorder{})

	_, err := uc.Execute(context.Background(), CreateUserCommand{
		Actor:        adminActor(),
		Email:        "new@clinic.example",
		Name:         "New",
		Password:     "secret-pass",
		Role:         string(authorization.RoleEmployee),
		DepartmentID: deptPtr(404),
	})

	assert.True(t, sharederrors.IsValidationError(err))
}

func TestCreateUserUseCase_Execute_EmployeeWithoutDepartment(t *testing.T) {
	uc := newCreateUserUseCase(&mockUserRepository{}, &mockDepartmentChecker{}, &mockPermissionChecker{}, &mockActivityRecorder{})

	_, err := uc.Execute(context.Background(), CreateUserCommand{
		Actor:    adminActor(),
		Email:    "new@clinic.example",
		Name:     "New",
		Password: "secret-pass",
		Role:     string(authorization.RoleEmployee),
	})

	assert.True(t, sharederrors.IsValidationError(err))
}

func TestCreateUserUseCase_Execute_InvalidRole(t *testing.T) {
	uc := newCreateUserUseCase(&mockUserRepository{}, &mockDepartmentChecker{}, &mockPermissionChecker{}, &mockActivityRecorder{})

	_, err := uc.Execute(context.Background(), CreateUserCommand{
		Actor:    adminActor(),
		Email:    "new@clinic.example",
		Name:     "New",
		Password: "secret-pass",
		Role:     "wizard",
	})

	assert.True(t, sharederrors.IsValidationError(err))
}

func TestUpdateUserUseCase_Execute_DeactivateUser(t *testing.T) {
	var updated *identity.User
	users := &mockUserRepository{
		GetByIDFunc: func(ctx context.Context, userID uint) (*identity.User, error) {
			return activeUser(t, userID, "nurse@clinic.example", authorization.RoleEmployee, deptPtr(3)), nil
		},
		UpdateFunc: func(ctx context.Context, user *identity.User) error {
			updated = user
			return nil
		},
	}
	recorder := &mockActivityRecorder{}
	uc := NewUpdateUserUseCase(users, fakeHasher{}, &mockDepartmentChecker{}, &mockPermissionChecker{}, recorder, logger.NewLogger())

	inactive := false
	result, err := uc.Execute(context.Background(), UpdateUserCommand{
		Actor:    adminActor(),
		UserID:   7,
		IsActive: &inactive,
	})

	require.NoError(t, err)
	assert.False(t, result.IsActive)
	require.NotNil(t, updated)
	assert.False(t, updated.IsActive())

	require.Len(t, recorder.Recorded, 1)
	assert.Equal(t, constants.ActionUserUpdate, recorder.Recorded[0].Action)
}

func TestUpdateUserUseCase_Execute_SelfDeactivationRejected(t *testing.T) {
	users := &mockUserRepository{
		GetByIDFunc: func(ctx context.Context, userID uint) (*identity.User, error) {
			return activeUser(t, userID, "admin@clinic.example", authorization.RoleSuperAdmin, nil), nil
		},
	}
	uc := NewUpdateUserUseCase(users, fakeHasher{}, &mockDepartmentChecker{}, &mockPermissionChecker{}, &mockActivityRecorder{}, logger.NewLogger())

	inactive := false
	_, err := uc.Execute(context.Background(), UpdateUserCommand{
		Actor:    adminActor(),
		UserID:   1,
		IsActive: &inactive,
	})

	assert.True(t, sharederrors.IsValidationError(err))
}

func TestUpdateUserUseCase_Execute_NoChanges(t *testing.T) {
	users := &mockUserRepository{
		GetByIDFunc: func(ctx context.Context, userID uint) (*identity.User, error) {
			return activeUser(t, userID, "nurse@clinic.example", authorization.RoleEmployee, deptPtr(3)), nil
		},
	}
	uc := NewUpdateUserUseCase(users, fakeHasher{}, &mockDepartmentChecker{}, &mockPermissionChecker{}, &mockActivityRecorder{}, logger.NewLogger())

	_, err := uc.Execute(context.Background(), UpdateUserCommand{Actor: adminActor(), UserID: 7})

	assert.True(t, sharederrors.IsValidationError(err))
}

func TestListUsersUseCase_Execute_ClampsPagination(t *testing.T) {
	var gotFilter identity.UserFilter
	users := &mockUserRepository{
		ListFunc: func(ctx context.Context, filter identity.UserFilter) ([]*identity.User, int64, error) {
			gotFilter = filter
			return []*identity.User{activeUser(t, 7, "nurse@clinic.example", authorization.RoleEmployee, deptPtr(3))}, 1, nil
		},
	}
	uc := NewListUsersUseCase(users, &mockPermissionChecker{}, logger.NewLogger())

	result, err := uc.Execute(context.Background(), ListUsersQuery{
		Actor:    adminActor(),
		Page:     0,
		PageSize: 9000,
	})

	require.NoError(t, err)
	assert.Equal(t, constants.DefaultPage, gotFilter.Page)
	assert.Equal(t, constants.MaxPageSize, gotFilter.PageSize)
	require.Len(t, result.Users, 1)
	assert.Equal(t, uint(7), result.Users[0].ID)
	assert.Equal(t, int64(1), result.Total)
}
