package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"caretrack/internal/domain/complaint"
	vo "caretrack/internal/domain/complaint/valueobjects"
	"caretrack/internal/domain/identity"
	"caretrack/internal/domain/shared/events"
	"caretrack/internal/shared/authorization"
)

type mockComplaintRepository struct {
	SaveFunc        func(ctx context.Context, c *complaint.Complaint) error
	UpdateFunc      func(ctx context.Context, c *complaint.Complaint) error
	GetByIDFunc     func(ctx context.Context, complaintID uint) (*complaint.Complaint, error)
	GetByNumberFunc func(ctx context.Context, number string) (*complaint.Complaint, error)
	ListFunc        func(ctx context.Context, scope complaint.AccessScope, filters complaint.ComplaintFilter) ([]*complaint.Complaint, int64, error)
}

func (m *mockComplaintRepository) Save(ctx context.Context, c *complaint.Complaint) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, c)
	}
	return nil
}

func (m *mockComplaintRepository) Update(ctx context.Context, c *complaint.Complaint) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, c)
	}
	return nil
}

func (m *mockComplaintRepository) GetByID(ctx context.Context, complaintID uint) (*complaint.Complaint, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, complaintID)
	}
	return nil, nil
}

func (m *mockComplaintRepository) GetByNumber(ctx context.Context, number string) (*complaint.Complaint, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, number)
	}
	return nil, nil
}

func (m *mockComplaintRepository) List(ctx context.Context, scope complaint.AccessScope, filters complaint.ComplaintFilter) ([]*complaint.Complaint, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, scope, filters)
	}
	return nil, 0, nil
}

type mockAssignmentRepository struct {
	SaveFunc               func(ctx context.Context, assignment *complaint.Assignment) error
	GetByComplaintIDFunc   func(ctx context.Context, complaintID uint) ([]*complaint.Assignment, error)
	GetCurrentAssigneeFunc func(ctx context.Context, complaintID uint) (*uint, error)
}

func (m *mockAssignmentRepository) Save(ctx context.Context, assignment *complaint.Assignment) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, assignment)
	}
	return nil
}

func (m *mockAssignmentRepository) GetByComplaintID(ctx context.Context, complaintID uint) ([]*complaint.Assignment, error) {
	if m.GetByComplaintIDFunc != nil {
		return m.GetByComplaintIDFunc(ctx, complaintID)
	}
	return nil, nil
}

func (m *mockAssignmentRepository) GetCurrentAssignee(ctx context.Context, complaintID uint) (*uint, error) {
	if m.GetCurrentAssigneeFunc != nil {
		return m.GetCurrentAssigneeFunc(ctx, complaintID)
	}
	return nil, nil
}

type mockHistoryRepository struct {
	SaveFunc             func(ctx context.Context, entry *complaint.HistoryEntry) error
	GetByComplaintIDFunc func(ctx context.Context, complaintID uint) ([]*complaint.HistoryEntry, error)

	Saved []*complaint.HistoryEntry
}

func (m *mockHistoryRepository) Save(ctx context.Context, entry *complaint.HistoryEntry) error {
	m.Saved = append(m.Saved, entry)
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, entry)
	}
	return nil
}

func (m *mockHistoryRepository) GetByComplaintID(ctx context.Context, complaintID uint) ([]*complaint.HistoryEntry, error) {
	if m.GetByComplaintIDFunc != nil {
		return m.GetByComplaintIDFunc(ctx, complaintID)
	}
	return nil, nil
}

type mockReplyRepository struct {
	SaveFunc             func(ctx context.Context, reply *complaint.Reply) error
	GetByComplaintIDFunc func(ctx context.Context, complaintID uint, includeInternal bool) ([]*complaint.Reply, error)
}

func (m *mockReplyRepository) Save(ctx context.Context, reply *complaint.Reply) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, reply)
	}
	return nil
}

func (m *mockReplyRepository) GetByComplaintID(ctx context.Context, complaintID uint, includeInternal bool) ([]*complaint.Reply, error) {
	if m.GetByComplaintIDFunc != nil {
		return m.GetByComplaintIDFunc(ctx, complaintID, includeInternal)
	}
	return nil, nil
}

type mockUserRepository struct {
	GetByIDFunc func(ctx context.Context, userID uint) (*identity.User, error)
}

func (m *mockUserRepository) Save(ctx context.Context, user *identity.User) error   { return nil }
func (m *mockUserRepository) Update(ctx context.Context, user *identity.User) error { return nil }

func (m *mockUserRepository) GetByID(ctx context.Context, userID uint) (*identity.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*identity.User, error) {
	return nil, nil
}

func (m *mockUserRepository) List(ctx context.Context, filter identity.UserFilter) ([]*identity.User, int64, error) {
	return nil, 0, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

type mockPermissionResolver struct {
	ResolveFunc func(ctx context.Context, actor authorization.Actor, code string) (bool, error)
	RequireFunc func(ctx context.Context, actor authorization.Actor, code string) error
}

func (m *mockPermissionResolver) Resolve(ctx context.Context, actor authorization.Actor, code string) (bool, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, actor, code)
	}
	return false, nil
}

func (m *mockPermissionResolver) Require(ctx context.Context, actor authorization.Actor, code string) error {
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

type mockTransactionRunner struct {
	RunInTransactionFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTransactionRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTransactionFunc != nil {
		return m.RunInTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}

type mockReferenceChecker struct {
	DepartmentExistsFunc func(ctx context.Context, departmentID uint) (bool, error)
	PatientExistsFunc    func(ctx context.Context, patientID uint) (bool, error)
}

func (m *mockReferenceChecker) DepartmentExists(ctx context.Context, departmentID uint) (bool, error) {
	if m.DepartmentExistsFunc != nil {
		return m.DepartmentExistsFunc(ctx, departmentID)
	}
	return true, nil
}

func (m *mockReferenceChecker) PatientExists(ctx context.Context, patientID uint) (bool, error) {
	if m.PatientExistsFunc != nil {
		return m.PatientExistsFunc(ctx, patientID)
	}
	return true, nil
}

type mockNumberGenerator struct {
	GenerateFunc func(ctx context.Context) (string, error)
}

func (m *mockNumberGenerator) Generate(ctx context.Context) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx)
	}
	return "C-20260831-0001", nil
}

type mockEventPublisher struct {
	Published []events.DomainEvent
}

func (m *mockEventPublisher) Publish(event events.DomainEvent) error {
	m.Published = append(m.Published, event)
	return nil
}

func (m *mockEventPublisher) PublishAll(evts []events.DomainEvent) error {
	m.Published = append(m.Published, evts...)
	return nil
}

func superAdminActor() authorization.Actor {
	return authorization.Actor{UserID: 1, Role: authorization.RoleSuperAdmin}
}

func employeeActor(userID uint, departmentID uint) authorization.Actor {
	return authorization.Actor{UserID: userID, Role: authorization.RoleEmployee, DepartmentID: &departmentID}
}

func deptAdminActor(userID uint, departmentID uint) authorization.Actor {
	return authorization.Actor{UserID: userID, Role: authorization.RoleDepartmentAdmin, DepartmentID: &departmentID}
}

func storedComplaint(t *testing.T, id uint, departmentID, creatorID uint, status vo.ComplaintStatus) *complaint.Complaint {
	t.Helper()
	now := time.Now().UTC()
	c, err := complaint.ReconstructComplaint(
		id, "C-20260831-0001", "Long wait time", "Waited three hours at intake",
		status, vo.PriorityMedium, vo.SourcePhone,
		departmentID, nil, creatorID, 1, now, now, nil,
	)
	require.NoError(t, err)
	return c
}

func activeEmployee(t *testing.T, id uint, departmentID uint) *identity.User {
	t.Helper()
	now := time.Now().UTC()
	dept := departmentID
	u, err := identity.ReconstructUser(id, "staff@clinic.example", "Staff", "hash", authorization.RoleEmployee, &dept, true, 1, now, now)
	require.NoError(t, err)
	return u
}

func deptPtr(v uint) *uint { return &v }
