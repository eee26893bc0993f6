package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "caretrack/internal/domain/permission"
	"caretrack/internal/shared/authorization"
	"caretrack/internal/shared/constants"
	sharederrors "caretrack/internal/shared/errors"
	"caretrack/internal/shared/logger"
)

func newSetRolePermissionsUseCase(
	repo *mockPermissionRepository,
	checker *mockPermissionChecker,
	recorder *mockActivityRecorder,
	tx *mockTransactionRunner,
) *SetRolePermissionsUseCase {
	return NewSetRolePermissionsUseCase(repo, checker, recorder, tx, logger.NewLogger())
}

func TestSetRolePermissionsUseCase_Execute_Success(t *testing.T) {
	var replacedRole authorization.UserRole
	var replacedGrants []*domain.RoleGrant
	repo := &mockPermissionRepository{
		ReplaceRoleGrantsFunc: func(ctx context.Context, role authorization.UserRole, grants []*domain.RoleGrant) error {
			replacedRole = role
			replacedGrants = grants
			return nil
		},
	}
	recorder := &mockActivityRecorder{}
	uc := newSetRolePermissionsUseCase(repo, &mockPermissionChecker{}, recorder, &mockTransactionRunner{})

	result, err := uc.Execute(context.Background(), SetRolePermissionsCommand{
		Actor: superAdminActor(),
		Role:  string(authorization.RoleEmployee),
		Grants: map[string]bool{
			constants.PermComplaintCreate: true,
			constants.PermComplaintAssign: false,
		},
	})

	require.NoError(t, err)
	assert.Equal(t, string(authorization.RoleEmployee), result.Role)
	assert.Equal(t, authorization.RoleEmployee, replacedRole)
	assert.Len(t, replacedGrants, 2)

	require.Len(t, recorder.Recorded, 1)
	assert.Equal(t, constants.ActionPermissionsSetRole, recorder.Recorded[0].Action)
	assert.Equal(t, "role", recorder.Recorded[0].EntityType)
}

func TestSetRolePermissionsUseCase_Execute_PermissionDenied(t *testing.T) {
	checker := &mockPermissionChecker{
		RequireFunc: func(ctx context.Context, actor authorization.Actor, code string) error {
			assert.Equal(t, constants.PermPermissionsManage, code)
			return sharederrors.NewForbiddenError("permission denied", code)
		},
	}
	repo := &mockPermissionRepository{
		ReplaceRoleGrantsFunc: func(ctx context.Context, role authorization.UserRole, grants []*domain.RoleGrant) error {
			t.Fatal("denied actor must not reach the repository")
			return nil
		},
	}
	uc := newSetRolePermissionsUseCase(repo, checker, &mockActivityRecorder{}, &mockTransactionRunner{})

	_, err := uc.Execute(context.Background(), SetRolePermissionsCommand{
		Actor:  authorization.Actor{UserID: 5, Role: authorization.RoleDepartmentAdmin},
		Role:   string(authorization.RoleEmployee),
		Grants: map[string]bool{constants.PermComplaintCreate: true},
	})

	assert.True(t, sharederrors.IsForbiddenError(err))
}

func TestSetRolePermissionsUseCase_Execute_InvalidRole(t *testing.T) {
	uc := newSetRolePermissionsUseCase(&mockPermissionRepository{}, &mockPermissionChecker{}, &mockActivityRecorder{}, &mockTransactionRunner{})

	_, err := uc.Execute(context.Background(), SetRolePermissionsCommand{
		Actor: superAdminActor(),
		Role:  "intern",
	})

	assert.True(t, sharederrors.IsValidationError(err))
}

func TestSetRolePermissionsUseCase_Execute_SuperAdminRoleRejected(t *testing.T) {
	uc := newSetRolePermissionsUseCase(&mockPermissionRepository{}, &mockPermissionChecker{}, &mockActivityRecorder{}, &mockTransactionRunner{})

	_, err := uc.Execute(context.Background(), SetRolePermissionsCommand{
		Actor:  superAdminActor(),
		Role:   string(authorization.RoleSuperAdmin),
		Grants: map[string]bool{constants.PermComplaintCreate: true},
	})

	require.Error(t, err)
	assert.True(t, sharederrors.IsValidationError(err))
}

func TestSetRolePermissionsUseCase_Execute_UnknownCode(t *testing.T) {
	repo := &mockPermissionRepository{
		ExistsByCodeFunc: func(ctx context.Context, code string) (bool, error) {
			return false, nil
		},
	}
	uc := newSetRolePermissionsUseCase(repo, &mockPermissionChecker{}, &mockActivityRecorder{}, &mockTransactionRunner{})

	_, err := uc.Execute(context.Background(), SetRolePermissionsCommand{
		Actor:  superAdminActor(),
		Role:   string(authorization.RoleEmployee),
		Grants: map[string]bool{"complaint.teleport": true},
	})

	require.Error(t, err)
	assert.True(t, sharederrors.IsValidationError(err))
	assert.Contains(t, err.Error(), "unknown permission code")
}

func TestSetRolePermissionsUseCase_Execute_ReplaceAndRecordShareTransaction(t *testing.T) {
	var txDepth int
	tx := &mockTransactionRunner{
		RunInTransactionFunc: func(ctx context.Context, fn func(ctx context.Context) error) error {
			txDepth++
			defer func() { txDepth-- }()
			return fn(ctx)
		},
	}
	var replacedInTx, recordedInTx bool
	repo := &mockPermissionRepository{
		ReplaceRoleGrantsFunc: func(ctx context.Context, role authorization.UserRole, grants []*domain.RoleGrant) error {
			replacedInTx = txDepth > 0
			return nil
		},
	}
	recorder := &mockActivityRecorder{
		RecordFunc: func(ctx context.Context, actor authorization.Actor, action, entityType string, entityID *uint, details map[string]any) error {
			recordedInTx = txDepth > 0
			return nil
		},
	}
	uc := newSetRolePermissionsUseCase(repo, &mockPermissionChecker{}, recorder, tx)

	_, err := uc.Execute(context.Background(), SetRolePermissionsCommand{
		Actor:  superAdminActor(),
		Role:   string(authorization.RoleEmployee),
		Grants: map[string]bool{constants.PermComplaintCreate: true},
	})

	require.NoError(t, err)
	assert.True(t, replacedInTx)
	assert.True(t, recordedInTx)
}

func TestSetRolePermissionsUseCase_Execute_RecordFailureAbortsTransaction(t *testing.T) {
	recorder := &mockActivityRecorder{
		RecordFunc: func(ctx context.Context, actor authorization.Actor, action, entityType string, entityID *uint, details map[string]any) error {
			return errors.New("log table unavailable")
		},
	}
	uc := newSetRolePermissionsUseCase(&mockPermissionRepository{}, &mockPermissionChecker{}, recorder, &mockTransactionRunner{})

	_, err := uc.Execute(context.Background(), SetRolePermissionsCommand{
		Actor:  superAdminActor(),
		Role:   string(authorization.RoleEmployee),
		Grants: map[string]bool{constants.PermComplaintCreate: true},
	})

	assert.Error(t, err)
}

func TestSetRolePermissionsUseCase_Execute_EmptyGrantsClearsRole(t *testing.T) {
	var replacedGrants []*domain.RoleGrant
	called := false
	repo := &mockPermissionRepository{
		ReplaceRoleGrantsFunc: func(ctx context.Context, role authorization.UserRole, grants []*domain.RoleGrant) error {
			called = true
			replacedGrants = grants
			return nil
		},
	}
	uc := newSetRolePermissionsUseCase(repo, &mockPermissionChecker{}, &mockActivityRecorder{}, &mockTransactionRunner{})

	_, err := uc.Execute(context.Background(), SetRolePermissionsCommand{
		Actor:  superAdminActor(),
		Role:   string(authorization.RoleEmployee),
		Grants: map[string]bool{},
	})

	require.NoError(t, err)
	assert.True(t, called)
	assert.Empty(t, replacedGrants)
}
