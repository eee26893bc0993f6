package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"caretrack/internal/domain/complaint"
	"caretrack/internal/infrastructure/persistence/mappers"
	"caretrack/internal/infrastructure/persistence/models"
	db "caretrack/internal/shared/db"
)

type AssignmentRepository struct {
	db     *gorm.DB
	mapper mappers.ComplaintMapper
}

func NewAssignmentRepository(gormDB *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{
		db:     gormDB,
		mapper: mappers.NewComplaintMapper(),
	}
}

func (r *AssignmentRepository) Save(ctx context.Context, a *complaint.Assignment) error {
	model := r.mapper.AssignmentToModel(a)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save assignment: %w", err)
	}

	if err := a.SetID(model.ID); err != nil {
		return err
	}

	return nil
}

func (r *AssignmentRepository) GetByComplaintID(ctx context.Context, complaintID uint) ([]*complaint.Assignment, error) {
	var assignmentModels []models.ComplaintAssignmentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("complaint_id = ?", complaintID).
		Order("created_at ASC, id ASC").
		Find(&assignmentModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find assignments: %w", err)
	}

	assignments := make([]*complaint.Assignment, len(assignmentModels))
	for i, model := range assignmentModels {
		assignments[i] = r.mapper.AssignmentToDomain(&model)
	}

	return assignments, nil
}

func (r *AssignmentRepository) GetCurrentAssignee(ctx context.Context, complaintID uint) (*uint, error) {
	var model models.ComplaintAssignmentModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Where("complaint_id = ?", complaintID).
		Order("id DESC").
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find current assignee: %w", err)
	}

	assignee := model.AssigneeID
	return &assignee, nil
}
