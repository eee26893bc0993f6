package usecases

import (
	"context"

	"caretrack/internal/application/complaint/dto"
	"caretrack/internal/domain/complaint"
	vo "caretrack/internal/domain/complaint/valueobjects"
	"caretrack/internal/domain/shared/events"
	"caretrack/internal/shared/authorization"
	"caretrack/internal/shared/constants"
	"caretrack/internal/shared/errors"
	"caretrack/internal/shared/logger"
)

type UpdateStatusCommand struct {
	Actor       authorization.Actor
	ComplaintID uint
	Status      string
}

type UpdateStatusResult struct {
	Complaint *dto.ComplaintDTO
}

// UpdateStatusUseCase sets an explicit status. A same-status update is not
// rejected: it still bumps the version and appends a history row, which is
// how "re-confirmed as closed" shows up in the trail.
type UpdateStatusUseCase struct {
	complaints  complaint.ComplaintRepository
	assignments complaint.AssignmentRepository
	history     complaint.HistoryRepository
	permissions PermissionResolver
	recorder    ActivityRecorder
	txManager   TransactionRunner
	publisher   events.EventPublisher
	logger      logger.Interface
}

func NewUpdateStatusUseCase(
	complaints complaint.ComplaintRepository,
	assignments complaint.AssignmentRepository,
	history complaint.HistoryRepository,
	permissions PermissionResolver,
	recorder ActivityRecorder,
	txManager TransactionRunner,
	publisher events.EventPublisher,
	log logger.Interface,
) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{
		complaints:  complaints,
		assignments: assignments,
		history:     history,
		permissions: permissions,
		recorder:    recorder,
		txManager:   txManager,
		publisher:   publisher,
		logger:      log,
	}
}

func (uc *UpdateStatusUseCase) Execute(ctx context.Context, cmd UpdateStatusCommand) (*UpdateStatusResult, error) {
	if err := uc.permissions.Require(ctx, cmd.Actor, constants.PermComplaintStatus); err != nil {
		return nil, err
	}

	newStatus, err := vo.NewComplaintStatus(cmd.Status)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
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

	oldStatus := c.Status().String()
	if err := c.ChangeStatus(newStatus, cmd.Actor.UserID); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	entry, err := complaint.NewHistoryEntry(c.ID(), cmd.Actor.UserID, complaint.FieldStatus, &oldStatus, c.Status().String())
	if err != nil {
		return nil, err
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.complaints.Update(txCtx, c); err != nil {
			return err
		}
		if err := uc.history.Save(txCtx, entry); err != nil {
			return err
		}

		complaintID := c.ID()
		return uc.recorder.Record(txCtx, cmd.Actor, constants.ActionComplaintStatus, "complaint", &complaintID, map[string]any{
			"number":     c.Number(),
			"old_status": oldStatus,
			"new_status": c.Status().String(),
		})
	})
	if err != nil {
		uc.logger.Errorw("failed to update complaint status", "complaint_id", cmd.ComplaintID, "error", err)
		return nil, err
	}

	publishEvents(uc.publisher, uc.logger, c)

	uc.logger.Infow("complaint status updated",
		"complaint_id", c.ID(),
		"old_status", oldStatus,
		"new_status", c.Status().String(),
	)

	return &UpdateStatusResult{Complaint: dto.ToComplaintDTO(c, currentAssignee)}, nil
}
