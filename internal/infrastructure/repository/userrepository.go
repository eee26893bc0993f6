package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"caretrack/internal/domain/identity"
	"caretrack/internal/infrastructure/persistence/mappers"
	"caretrack/internal/infrastructure/persistence/models"
	db "caretrack/internal/shared/db"
	sharederrors "caretrack/internal/shared/errors"
)

type UserRepository struct {
	db     *gorm.DB
	mapper mappers.UserMapper
}

func NewUserRepository(gormDB *gorm.DB) *UserRepository {
	return &UserRepository{
		db:     gormDB,
		mapper: mappers.NewUserMapper(),
	}
}

func (r *UserRepository) Save(ctx context.Context, u *identity.User) error {
	model := r.mapper.ToModel(u)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if sharederrors.IsDuplicateError(err) {
			return sharederrors.NewConflictError("email already registered")
		}
		return fmt.Errorf("failed to save user: %w", err)
	}

	return u.SetID(model.ID)
}

func (r *UserRepository) Update(ctx context.Context, u *identity.User) error {
	model := r.mapper.ToModel(u)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.UserModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return sharederrors.NewConflictError("user was modified concurrently")
	}

	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID uint) (*identity.User, error) {
	var model models.UserModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, sharederrors.NewNotFoundError("user not found")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*identity.User, error) {
	var model models.UserModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("email = ?", email).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, sharederrors.NewNotFoundError("user not found")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *UserRepository) List(ctx context.Context, filter identity.UserFilter) ([]*identity.User, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.UserModel{})

	if filter.Role != nil {
		query = query.Where("role = ?", filter.Role.String())
	}
	if filter.DepartmentID != nil {
		query = query.Where("department_id = ?", *filter.DepartmentID)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.Search != "" {
		like := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query = query.Order("created_at DESC, id DESC")
	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	var userModels []models.UserModel
	if err := query.Find(&userModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*identity.User, len(userModels))
	for i, model := range userModels {
		u, err := r.mapper.ToDomain(&model)
		if err != nil {
			return nil, 0, err
		}
		users[i] = u
	}

	return users, total, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Model(&models.UserModel{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}

	return count > 0, nil
}
