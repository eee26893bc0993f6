package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"caretrack/internal/domain/activity"
	"caretrack/internal/infrastructure/persistence/mappers"
	"caretrack/internal/infrastructure/persistence/models"
	db "caretrack/internal/shared/db"
)

type ActivityRepository struct {
	db     *gorm.DB
	mapper mappers.ActivityMapper
}

func NewActivityRepository(gormDB *gorm.DB) *ActivityRepository {
	return &ActivityRepository{
		db:     gormDB,
		mapper: mappers.NewActivityMapper(),
	}
}

func (r *ActivityRepository) Save(ctx context.Context, e *activity.Entry) error {
	model, err := r.mapper.ToModel(e)
	if err != nil {
		return err
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save activity entry: %w", err)
	}

	return nil
}

func (r *ActivityRepository) List(ctx context.Context, filter activity.Filter) ([]*activity.Entry, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.ActivityLogModel{})

	if filter.ActorID != nil {
		query = query.Where("actor_id = ?", *filter.ActorID)
	}
	if filter.EffectiveUserID != nil {
		query = query.Where("effective_user_id = ?", *filter.EffectiveUserID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.EntityType != "" {
		query = query.Where("entity_type = ?", filter.EntityType)
	}
	if filter.EntityID != nil {
		query = query.Where("entity_id = ?", *filter.EntityID)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", filter.From.UnixMilli())
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", filter.To.UnixMilli())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count activity entries: %w", err)
	}

	query = query.Order("created_at DESC, id DESC")
	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	var entryModels []models.ActivityLogModel
	if err := query.Find(&entryModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list activity entries: %w", err)
	}

	entries := make([]*activity.Entry, len(entryModels))
	for i, model := range entryModels {
		e, err := r.mapper.ToDomain(&model)
		if err != nil {
			return nil, 0, err
		}
		entries[i] = e
	}

	return entries, total, nil
}
