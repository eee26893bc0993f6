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

type CreateComplaintCommand struct {
	Actor        authorization.Actor
	Title        string
	Description  string
	Priority     string
	Source       string
	DepartmentID uint
	PatientID    *uint
}

type CreateComplaintResult struct {
	Complaint *dto.ComplaintDTO
}

type CreateComplaintUseCase struct {
	complaints  complaint.ComplaintRepository
	history     complaint.HistoryRepository
	numbers     complaint.NumberGenerator
	references  ReferenceChecker
	permissions PermissionResolver
	recorder    ActivityRecorder
	txManager   TransactionRunner
	publisher   events.EventPublisher
	logger      logger.Interface
}

func NewCreateComplaintUseCase(
	complaints complaint.ComplaintRepository,
	history complaint.HistoryRepository,
	numbers complaint.NumberGenerator,
	references ReferenceChecker,
	permissions PermissionResolver,
	recorder ActivityRecorder,
	txManager TransactionRunner,
	publisher events.EventPublisher,
	log logger.Interface,
) *CreateComplaintUseCase {
	return &CreateComplaintUseCase{
		complaints:  complaints,
		history:     history,
		numbers:     numbers,
		references:  references,
		permissions: permissions,
		recorder:    recorder,
		txManager:   txManager,
		publisher:   publisher,
		logger:      log,
	}
}

func (uc *CreateComplaintUseCase) Execute(ctx context.Context, cmd CreateComplaintCommand) (*CreateComplaintResult, error) {
	if err := uc.permissions.Require(ctx, cmd.Actor, constants.PermComplaintCreate); err != nil {
		return nil, err
	}

	departmentID := cmd.DepartmentID
	if departmentID == 0 && cmd.Actor.DepartmentID != nil {
		departmentID = *cmd.Actor.DepartmentID
	}

	priority := vo.DefaultPriority()
	if cmd.Priority != "" {
		var err error
		priority, err = vo.NewPriority(cmd.Priority)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	source := vo.DefaultSource()
	if cmd.Source != "" {
		var err error
		source, err = vo.NewSource(cmd.Source)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	ok, err := uc.references.DepartmentExists(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NewValidationError("department does not exist")
	}

	if cmd.PatientID != nil {
		ok, err := uc.references.PatientExists(ctx, *cmd.PatientID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.NewValidationError("patient does not exist")
		}
	}

	c, err := complaint.NewComplaint(cmd.Title, cmd.Description, departmentID, cmd.PatientID, priority, source, cmd.Actor.UserID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	number, err := uc.numbers.Generate(ctx)
	if err != nil {
		uc.logger.Errorw("failed to generate complaint number", "error", err)
		return nil, errors.NewInternalError("failed to generate complaint number")
	}
	if err := c.SetNumber(number); err != nil {
		return nil, errors.NewInternalError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.complaints.Save(txCtx, c); err != nil {
			return err
		}

		// First status row has no previous value; the complaint is born open.
		entry, err := complaint.NewHistoryEntry(c.ID(), cmd.Actor.UserID, complaint.FieldStatus, nil, c.Status().String())
		if err != nil {
			return err
		}
		if err := uc.history.Save(txCtx, entry); err != nil {
			return err
		}

		complaintID := c.ID()
		return uc.recorder.Record(txCtx, cmd.Actor, constants.ActionComplaintCreate, "complaint", &complaintID, map[string]any{
			"number":        c.Number(),
			"title":         c.Title(),
			"department_id": c.DepartmentID(),
			"priority":      c.Priority().String(),
		})
	})
	if err != nil {
		uc.logger.Errorw("failed to create complaint", "number", number, "error", err)
		return nil, err
	}

	c.RecordCreated()
	publishEvents(uc.publisher, uc.logger, c)

	uc.logger.Infow("complaint created", "complaint_id", c.ID(), "number", c.Number(), "creator_id", cmd.Actor.UserID)

	return &CreateComplaintResult{Complaint: dto.ToComplaintDTO(c, nil)}, nil
}
