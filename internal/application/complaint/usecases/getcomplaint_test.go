package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caretrack/internal/domain/complaint"
	vo "caretrack/internal/domain/complaint/valueobjects"
	"caretrack/internal/shared/authorization"
	"caretrack/internal/shared/constants"
	sharederrors "caretrack/internal/shared/errors"
	"caretrack/internal/shared/logger"
)

type getDeps struct {
	complaints  *mockComplaintRepository
	assignments *mockAssignmentRepository
	history     *mockHistoryRepository
	replies     *mockReplyRepository
	resolver    *mockPermissionResolver
}

func newGetDeps(t *testing.T) getDeps {
	return getDeps{
		complaints: &mockComplaintRepository{
			GetByIDFunc: func(ctx context.Context, complaintID uint) (*complaint.Complaint, error) {
				return storedComplaint(t, complaintID, 3, 7, vo.StatusInProgress), nil
			},
			GetByNumberFunc: func(ctx context.Context, number string) (*complaint.Complaint, error) {
				return storedComplaint(t, 101, 3, 7, vo.StatusInProgress), nil
			},
		},
		assignments: &mockAssignmentRepository{},
		history:     &mockHistoryRepository{},
		replies:     &mockReplyRepository{},
		resolver:    &mockPermissionResolver{},
	}
}

func (d getDeps) build() *GetComplaintUseCase {
	return NewGetComplaintUseCase(d.complaints, d.assignments, d.history, d.replies, d.resolver, logger.NewLogger())
}

func TestGetComplaintUseCase_Execute_CreatorSeesFullThread(t *testing.T) {
	deps := newGetDeps(t)
	deps.replies.GetByComplaintIDFunc = func(ctx context.Context, complaintID uint, includeInternal bool) ([]*complaint.Reply, error) {
		assert.True(t, includeInternal)
		r, err := complaint.NewReply(complaintID, 8, "Looking into it", true)
		require.NoError(t, err)
		return []*complaint.Reply{r}, nil
	}
	uc := deps.build()

	result, err := uc.Execute(context.Background(), GetComplaintQuery{
		Actor:       employeeActor(7, 3),
		ComplaintID: 101,
	})

	require.NoError(t, err)
	assert.Equal(t, uint(101), result.Complaint.ID)
	require.Len(t, result.Complaint.Replies, 1)
	assert.True(t, result.Complaint.Replies[0].IsInternal)
}

func TestGetComplaintUseCase_Execute_ByNumber(t *testing.T) {
	uc := newGetDeps(t).build()

	result, err := uc.Execute(context.Background(), GetComplaintQuery{
		Actor:  superAdminActor(),
		Number: "C-20260831-0001",
	})

	require.NoError(t, err)
	assert.Equal(t, "C-20260831-0001", result.Complaint.Number)
}

func TestGetComplaintUseCase_Execute_MissingIdentifier(t *testing.T) {
	uc := newGetDeps(t).build()

	_, err := uc.Execute(context.Background(), GetComplaintQuery{Actor: superAdminActor()})

	assert.True(t, sharederrors.IsValidationError(err))
}

func TestGetComplaintUseCase_Execute_OutOfScopeEmployee(t *testing.T) {
	uc := newGetDeps(t).build()

	_, err := uc.Execute(context.Background(), GetComplaintQuery{
		Actor:       employeeActor(99, 3),
		ComplaintID: 101,
	})

	assert.True(t, sharederrors.IsNotFoundError(err))
}

func TestGetComplaintUseCase_Execute_AssigneeHasAccess(t *testing.T) {
	deps := newGetDeps(t)
	assignee := uint(8)
	deps.assignments.GetCurrentAssigneeFunc = func(ctx context.Context, complaintID uint) (*uint, error) {
		return &assignee, nil
	}
	uc := deps.build()

	result, err := uc.Execute(context.Background(), GetComplaintQuery{
		Actor:       employeeActor(8, 3),
		ComplaintID: 101,
	})

	require.NoError(t, err)
	require.NotNil(t, result.Complaint.AssigneeID)
	assert.Equal(t, uint(8), *result.Complaint.AssigneeID)
}

func TestGetComplaintUseCase_Execute_ViewAllGrantWidensScope(t *testing.T) {
	deps := newGetDeps(t)
	deps.resolver.ResolveFunc = func(ctx context.Context, actor authorization.Actor, code string) (bool, error) {
		return code == constants.PermComplaintViewAll, nil
	}
	uc := deps.build()

	// employee from another department, but holding complaint.view_all
	_, err := uc.Execute(context.Background(), GetComplaintQuery{
		Actor:       employeeActor(50, 9),
		ComplaintID: 101,
	})

	assert.NoError(t, err)
}

func TestGetComplaintUseCase_Execute_ViewDepartmentGrant(t *testing.T) {
	deps := newGetDeps(t)
	deps.resolver.ResolveFunc = func(ctx context.Context, actor authorization.Actor, code string) (bool, error) {
		return code == constants.PermComplaintViewDepartment, nil
	}
	uc := deps.build()

	// uninvolved employee in the complaint's department with view_department
	_, err := uc.Execute(context.Background(), GetComplaintQuery{
		Actor:       employeeActor(50, 3),
		ComplaintID: 101,
	})
	assert.NoError(t, err)

	// same grant does not reach another department's complaint
	_, err = uc.Execute(context.Background(), GetComplaintQuery{
		Actor:       employeeActor(50, 9),
		ComplaintID: 101,
	})
	assert.True(t, sharederrors.IsNotFoundError(err))
}

func TestListComplaintsUseCase_Execute_ScopePassedToRepository(t *testing.T) {
	var gotScope complaint.AccessScope
	var gotFilter complaint.ComplaintFilter
	complaints := &mockComplaintRepository{
		ListFunc: func(ctx context.Context, scope complaint.AccessScope, filters complaint.ComplaintFilter) ([]*complaint.Complaint, int64, error) {
			gotScope = scope
			gotFilter = filters
			return []*complaint.Complaint{storedComplaint(t, 101, 3, 7, vo.StatusOpen)}, 1, nil
		},
	}
	uc := NewListComplaintsUseCase(complaints, &mockPermissionResolver{}, logger.NewLogger())

	result, err := uc.Execute(context.Background(), ListComplaintsQuery{
		Actor:    deptAdminActor(5, 3),
		Status:   "open",
		Page:     0,
		PageSize: 500,
	})

	require.NoError(t, err)
	require.NotNil(t, gotScope.DepartmentID)
	assert.Equal(t, uint(3), *gotScope.DepartmentID)
	assert.False(t, gotScope.Unrestricted)
	require.NotNil(t, gotFilter.Status)
	assert.Equal(t, vo.StatusOpen, *gotFilter.Status)
	assert.Equal(t, constants.DefaultPage, gotFilter.Page)
	assert.Equal(t, constants.MaxPageSize, gotFilter.PageSize)
	require.Len(t, result.Complaints, 1)
	assert.Equal(t, int64(1), result.Total)
}

func TestListComplaintsUseCase_Execute_SuperAdminUnrestricted(t *testing.T) {
	var gotScope complaint.AccessScope
	complaints := &mockComplaintRepository{
		ListFunc: func(ctx context.Context, scope complaint.AccessScope, filters complaint.ComplaintFilter) ([]*complaint.Complaint, int64, error) {
			gotScope = scope
			return nil, 0, nil
		},
	}
	uc := NewListComplaintsUseCase(complaints, &mockPermissionResolver{}, logger.NewLogger())

	_, err := uc.Execute(context.Background(), ListComplaintsQuery{Actor: superAdminActor()})

	require.NoError(t, err)
	assert.True(t, gotScope.Unrestricted)
}

func TestListComplaintsUseCase_Execute_InvalidFilter(t *testing.T) {
	uc := NewListComplaintsUseCase(&mockComplaintRepository{}, &mockPermissionResolver{}, logger.NewLogger())

	_, err := uc.Execute(context.Background(), ListComplaintsQuery{
		Actor:  superAdminActor(),
		Status: "pending",
	})

	assert.True(t, sharederrors.IsValidationError(err))
}
