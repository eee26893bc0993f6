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

type HistoryRepository struct {
	db     *gorm.DB
	mapper mappers.ComplaintMapper
}

func NewHistoryRepository(gormDB *gorm.DB) *HistoryRepository {
	return &HistoryRepository{
		db:     gormDB,
		mapper: mappers.NewComplaintMapper(),
	}
}

func (r *HistoryRepository) Save(ctx context.Context, h *complaint.HistoryEntry) error {
	model := r.mapper.HistoryToModel(h)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save history entry: %w", err)
	}

	if err := h.SetID(model.ID); err != nil {
		return err
	}

	return nil
}

func (r *HistoryRepository) GetByComplaintID(ctx context.Context, complaintID uint) ([]*complaint.HistoryEntry, error) {
	var historyModels []models.ComplaintHistoryModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("complaint_id = ?", complaintID).
		Order("created_at ASC, id ASC").
		Find(&historyModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find history entries: %w", err)
	}

	entries := make([]*complaint.HistoryEntry, len(historyModels))
	for i, model := range historyModels {
		entries[i] = r.mapper.HistoryToDomain(&model)
	}

	return entries, nil
}
