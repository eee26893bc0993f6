package usecases

import (
	"context"

	"caretrack/internal/application/complaint/dto"
	"caretrack/internal/domain/complaint"
	"caretrack/internal/shared/authorization"
	"caretrack/internal/shared/errors"
	"caretrack/internal/shared/logger"
)

type GetComplaintQuery struct {
	Actor       authorization.Actor
	ComplaintID uint
	Number      string
}

type GetComplaintResult struct {
	Complaint *dto.ComplaintDTO
}

type GetComplaintUseCase struct {
	complaints  complaint.ComplaintRepository
	assignments complaint.AssignmentRepository
	history     complaint.HistoryRepository
	replies     complaint.ReplyRepository
	permissions PermissionResolver
	logger      logger.Interface
}

func NewGetComplaintUseCase(
	complaints complaint.ComplaintRepository,
	assignments complaint.AssignmentRepository,
	history complaint.HistoryRepository,
	replies complaint.ReplyRepository,
	permissions PermissionResolver,
	log logger.Interface,
) *GetComplaintUseCase {
	return &GetComplaintUseCase{
		complaints:  complaints,
		assignments: assignments,
		history:     history,
		replies:     replies,
		permissions: permissions,
		logger:      log,
	}
}

func (uc *GetComplaintUseCase) Execute(ctx context.Context, query GetComplaintQuery) (*GetComplaintResult, error) {
	var (
		c   *complaint.Complaint
		err error
	)
	switch {
	case query.ComplaintID != 0:
		c, err = uc.complaints.GetByID(ctx, query.ComplaintID)
	case query.Number != "":
		c, err = uc.complaints.GetByNumber(ctx, query.Number)
	default:
		return nil, errors.NewValidationError("complaint ID or number is required")
	}
	if err != nil {
		return nil, err
	}

	scope, err := resolveScope(ctx, uc.permissions, query.Actor)
	if err != nil {
		return nil, err
	}
	currentAssignee, err := uc.assignments.GetCurrentAssignee(ctx, c.ID())
	if err != nil {
		return nil, err
	}
	if !scope.Allows(c, currentAssignee) {
		// Out-of-scope reads 404 rather than 403 so existence is not leaked.
		return nil, errors.NewNotFoundError("complaint not found")
	}

	assignments, err := uc.assignments.GetByComplaintID(ctx, c.ID())
	if err != nil {
		return nil, err
	}
	historyEntries, err := uc.history.GetByComplaintID(ctx, c.ID())
	if err != nil {
		return nil, err
	}
	replyList, err := uc.replies.GetByComplaintID(ctx, c.ID(), true)
	if err != nil {
		return nil, err
	}

	result := dto.ToComplaintDTO(c, currentAssignee)
	result.Assignments = dto.ToAssignmentDTOs(assignments)
	result.History = dto.ToHistoryDTOs(historyEntries)
	result.Replies = dto.ToReplyDTOs(replyList)

	return &GetComplaintResult{Complaint: result}, nil
}
