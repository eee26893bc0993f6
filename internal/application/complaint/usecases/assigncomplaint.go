package usecases

import (
	"context"
	"strconv"

	"caretrack/internal/application/complaint/dto"
	"caretrack/internal/domain/complaint"
	"caretrack/internal/domain/identity"
	"caretrack/internal/domain/shared/events"
	"caretrack/internal/shared/authorization"
	"caretrack/internal/shared/constants"
	"caretrack/internal/shared/errors"
	"caretrack/internal/shared/logger"
)

type AssignComplaintCommand struct {
	Actor       authorization.Actor
	ComplaintID uint
	AssigneeID  uint
	Note        string
}

type AssignComplaintResult struct {
	Complaint *dto.ComplaintDTO
}

// AssignComplaintUseCase hands a complaint to a user. Assignment is
// append-only: each call adds a row to the assignment log, and the current
// assignee is always the latest row. The complaint moves to in_progress
// whatever its previous status was.
type AssignComplaintUseCase struct {
	complaints  complaint.ComplaintRepository
	assignments complaint.AssignmentRepository
	history     complaint.HistoryRepository
	users       identity.UserRepository
	permissions PermissionResolver
	recorder    ActivityRecorder
	txManager   TransactionRunner
	publisher   events.EventPublisher
	logger      logger.Interface
}

func NewAssignComplaintUseCase(
	complaints complaint.ComplaintRepository,
	assignments complaint.AssignmentRepository,
	history complaint.HistoryRepository,
	users identity.UserRepository,
	permissions PermissionResolver,
	recorder ActivityRecorder,
	txManager TransactionRunner,
	publisher events.EventPublisher,
	log logger.Interface,
) *AssignComplaintUseCase {
	return &AssignComplaintUseCase{
		complaints:  complaints,
		assignments: assignments,
		history:     history,
		users:       users,
		permissions: permissions,
		recorder:    recorder,
		txManager:   txManager,
		publisher:   publisher,
		logger:      log,
	}
}

func (uc *AssignComplaintUseCase) Execute(ctx context.Context, cmd AssignComplaintCommand) (*AssignComplaintResult, error) {
	if err := uc.permissions.Require(ctx, cmd.Actor, constants.PermComplaintAssign); err != nil {
		return nil, err
	}

	c, err := uc.complaints.GetByID(ctx, cmd.ComplaintID)
	if err != nil {
		return nil, err
	}

	scope, err := resolveScope(ctx, uc.permissions, cmd.Actor)
	if err != nil {
		return nil, err
	}
	currentAssignee, err := uc.assignments.GetCurrentAssignee(ctx, cmd.ComplaintID)
	if err != nil {
		return nil, err
	}
	if !scope.Allows(c, currentAssignee) {
		return nil, errors.NewNotFoundError("complaint not found")
	}

	assignee, err := uc.users.GetByID(ctx, cmd.AssigneeID)
	if err != nil {
		return nil, err
	}
	if !assignee.IsActive() {
		return nil, errors.NewValidationError("assignee is deactivated")
	}
	// Super admins may assign across departments; everyone else stays inside
	// the complaint's department.
	if !cmd.Actor.IsSuperAdmin() {
		if assignee.DepartmentID() == nil || *assignee.DepartmentID() != c.DepartmentID() {
			return nil, errors.NewForbiddenError("assignee is not in the complaint's department")
		}
	}

	oldStatus := c.Status()
	if err := c.Assign(cmd.AssigneeID, cmd.Actor.UserID); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	assignment, err := complaint.NewAssignment(c.ID(), cmd.AssigneeID, cmd.Actor.UserID, cmd.Note)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	var oldAssignee *string
	if currentAssignee != nil {
		s := strconv.FormatUint(uint64(*currentAssignee), 10)
		oldAssignee = &s
	}
	assignmentEntry, err := complaint.NewHistoryEntry(c.ID(), cmd.Actor.UserID, complaint.FieldAssignment, oldAssignee, strconv.FormatUint(uint64(cmd.AssigneeID), 10))
	if err != nil {
		return nil, err
	}

	var statusEntry *complaint.HistoryEntry
	if oldStatus != c.Status() {
		old := oldStatus.String()
		statusEntry, err = complaint.NewHistoryEntry(c.ID(), cmd.Actor.UserID, complaint.FieldStatus, &old, c.Status().String())
		if err != nil {
			return nil, err
		}
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.complaints.Update(txCtx, c); err != nil {
			return err
		}
		if err := uc.assignments.Save(txCtx, assignment); err != nil {
			return err
		}
		if err := uc.history.Save(txCtx, assignmentEntry); err != nil {
			return err
		}
		if statusEntry != nil {
			if err := uc.history.Save(txCtx, statusEntry); err != nil {
				return err
			}
		}

		complaintID := c.ID()
		return uc.recorder.Record(txCtx, cmd.Actor, constants.ActionComplaintAssign, "complaint", &complaintID, map[string]any{
			"number":      c.Number(),
			"assignee_id": cmd.AssigneeID,
		})
	})
	if err != nil {
		uc.logger.Errorw("failed to assign complaint", "complaint_id", cmd.ComplaintID, "error", err)
		return nil, err
	}

	publishEvents(uc.publisher, uc.logger, c)

	uc.logger.Infow("complaint assigned",
		"complaint_id", c.ID(),
		"assignee_id", cmd.AssigneeID,
		"assigned_by", cmd.Actor.UserID,
	)

	assigneeID := cmd.AssigneeID
	return &AssignComplaintResult{Complaint: dto.ToComplaintDTO(c, &assigneeID)}, nil
}
