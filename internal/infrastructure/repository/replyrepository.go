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

type ReplyRepository struct {
	db     *gorm.DB
	mapper mappers.ComplaintMapper
}

func NewReplyRepository(gormDB *gorm.DB) *ReplyRepository {
	return &ReplyRepository{
		db:     gormDB,
		mapper: mappers.NewComplaintMapper(),
	}
}

func (r *ReplyRepository) Save(ctx context.Context, reply *complaint.Reply) error {
	model := r.mapper.ReplyToModel(reply)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save reply: %w", err)
	}

	if err := reply.SetID(model.ID); err != nil {
		return err
	}

	return nil
}

func (r *ReplyRepository) GetByComplaintID(ctx context.Context, complaintID uint, includeInternal bool) ([]*complaint.Reply, error) {
	var replyModels []models.ComplaintReplyModel
	tx := db.GetTxFromContext(ctx, r.db)

	query := tx.Where("complaint_id = ?", complaintID)
	if !includeInternal {
		query = query.Where("is_internal = ?", false)
	}

	if err := query.
		Order("created_at ASC, id ASC").
		Find(&replyModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find replies: %w", err)
	}

	replies := make([]*complaint.Reply, len(replyModels))
	for i, model := range replyModels {
		replies[i] = r.mapper.ReplyToDomain(&model)
	}

	return replies, nil
}
