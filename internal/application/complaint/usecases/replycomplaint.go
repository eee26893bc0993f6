package usecases

import (
	"context"

	"caretrack/internal/application/complaint/dto"
	"caretrack/internal/domain/complaint"
	"caretrack/internal/domain/shared/events"
	"caretrack/internal/shared/authorization"
	"caretrack/internal/shared/constants"
	"caretrack/internal/shared/errors"
	"caretrack/internal/shared/logger"
)

type ReplyComplaintCommand struct {
	Actor       authorization.Actor
	ComplaintID uint
	Body        string
	IsInternal  bool
}

type ReplyComplaintResult struct {
	Reply  *dto.ReplyDTO
	Status string
}

type ReplyComplaintUseCase struct {
	complaints  complaint.ComplaintRepository
	assignments complaint.AssignmentRepository
	replies     complaint.ReplyRepository
	history     complaint.HistoryRepository
	permissions PermissionResolver
	recorder    ActivityRecorder
	txManager   TransactionRunner
	publisher   events.EventPublisher
	logger      logger.Interface
}

func NewReplyComplaintUseCase(
	complaints complaint.ComplaintRepository,
	assignments complaint.AssignmentRepository,
	replies complaint.ReplyRepository,
	history complaint.HistoryRepository,
	permissions PermissionResolver,
	recorder ActivityRecorder,
	txManager TransactionRunner,
	publisher events.EventPublisher,
	log logger.Interface,
) *ReplyComplaintUseCase {
	return &ReplyComplaintUseCase{
		complaints:  complaints,
		assignments: assignments,
		replies:     replies,
		history:     history,
		permissions: permissions,
		recorder:    recorder,
		txManager:   txManager,
		publisher:   publisher,
		logger:      log,
	}
}

func (uc *ReplyComplaintUseCase) Execute(ctx context.Context, cmd ReplyComplaintCommand) (*ReplyComplaintResult, error) {
	if err := uc.permissions.Require(ctx, cmd.Actor, constants.PermComplaintReply); err != nil {
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

	reply, err := complaint.NewReply(c.ID(), cmd.Actor.UserID, cmd.Body, cmd.IsInternal)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	oldStatus := c.Status()
	c.ApplyReply(cmd.Actor.UserID)

	var statusEntry *complaint.HistoryEntry
	if oldStatus != c.Status() {
		old := oldStatus.String()
		statusEntry, err = complaint.NewHistoryEntry(c.ID(), cmd.Actor.UserID, complaint.FieldStatus, &old, c.Status().String())
		if err != nil {
			return nil, err
		}
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.replies.Save(txCtx, reply); err != nil {
			return err
		}
		if err := uc.complaints.Update(txCtx, c); err != nil {
			return err
		}
		if statusEntry != nil {
			if err := uc.history.Save(txCtx, statusEntry); err != nil {
				return err
			}
		}

		complaintID := c.ID()
		return uc.recorder.Record(txCtx, cmd.Actor, constants.ActionComplaintReply, "complaint", &complaintID, map[string]any{
			"number":      c.Number(),
			"reply_id":    reply.ID(),
			"is_internal": reply.IsInternal(),
		})
	})
	if err != nil {
		uc.logger.Errorw("failed to reply to complaint", "complaint_id", cmd.ComplaintID, "error", err)
		return nil, err
	}

	publishEvents(uc.publisher, uc.logger, c)

	uc.logger.Infow("complaint reply added", "complaint_id", c.ID(), "author_id", cmd.Actor.UserID, "is_internal", cmd.IsInternal)

	replies := dto.ToReplyDTOs([]*complaint.Reply{reply})
	return &ReplyComplaintResult{
		Reply:  &replies[0],
		Status: c.Status().String(),
	}, nil
}
