package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"caretrack/internal/domain/permission"
	"caretrack/internal/infrastructure/persistence/mappers"
	"caretrack/internal/infrastructure/persistence/models"
	"caretrack/internal/shared/authorization"
	db "caretrack/internal/shared/db"
)

type PermissionRepository struct {
	db     *gorm.DB
	mapper mappers.PermissionMapper
}

func NewPermissionRepository(gormDB *gorm.DB) *PermissionRepository {
	return &PermissionRepository{
		db:     gormDB,
		mapper: mappers.NewPermissionMapper(),
	}
}

func (r *PermissionRepository) ListPermissions(ctx context.Context) ([]*permission.Permission, error) {
	var permissionModels []models.PermissionModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Order("code ASC").Find(&permissionModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}

	permissions := make([]*permission.Permission, len(permissionModels))
	for i, model := range permissionModels {
		p, err := r.mapper.ToDomain(&model)
		if err != nil {
			return nil, err
		}
		permissions[i] = p
	}

	return permissions, nil
}

func (r *PermissionRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Model(&models.PermissionModel{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check permission existence: %w", err)
	}

	return count > 0, nil
}

func (r *PermissionRepository) GetRoleGrants(ctx context.Context, role authorization.UserRole) ([]*permission.RoleGrant, error) {
	var grantModels []models.RolePermissionModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("role = ?", role.String()).
		Order("permission_code ASC").
		Find(&grantModels).Error; err != nil {
		return nil, fmt.Errorf("failed to get role grants: %w", err)
	}

	grants := make([]*permission.RoleGrant, len(grantModels))
	for i, model := range grantModels {
		grants[i] = r.mapper.RoleGrantToDomain(&model)
	}

	return grants, nil
}

func (r *PermissionRepository) GetUserGrants(ctx context.Context, userID uint) ([]*permission.UserGrant, error) {
	var grantModels []models.UserPermissionModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("user_id = ?", userID).
		Order("permission_code ASC").
		Find(&grantModels).Error; err != nil {
		return nil, fmt.Errorf("failed to get user grants: %w", err)
	}

	grants := make([]*permission.UserGrant, len(grantModels))
	for i, model := range grantModels {
		grants[i] = r.mapper.UserGrantToDomain(&model)
	}

	return grants, nil
}

func (r *PermissionRepository) FindRoleGrant(ctx context.Context, role authorization.UserRole, code string) (*permission.RoleGrant, error) {
	var model models.RolePermissionModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Where("role = ? AND permission_code = ?", role.String(), code).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find role grant: %w", err)
	}

	return r.mapper.RoleGrantToDomain(&model), nil
}

func (r *PermissionRepository) FindUserGrant(ctx context.Context, userID uint, code string) (*permission.UserGrant, error) {
	var model models.UserPermissionModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Where("user_id = ? AND permission_code = ?", userID, code).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user grant: %w", err)
	}

	return r.mapper.UserGrantToDomain(&model), nil
}

// ReplaceRoleGrants swaps the entire grant set for a role. Callers run this
// inside a transaction so readers never observe a half-applied set.
func (r *PermissionRepository) ReplaceRoleGrants(ctx context.Context, role authorization.UserRole, grants []*permission.RoleGrant) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("role = ?", role.String()).
		Delete(&models.RolePermissionModel{}).Error; err != nil {
		return fmt.Errorf("failed to clear role grants: %w", err)
	}

	for _, g := range grants {
		model := r.mapper.RoleGrantToModel(g)
		model.ID = 0
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to insert role grant %s: %w", g.PermissionCode(), err)
		}
	}

	return nil
}

// ReplaceUserGrants swaps the entire override set for a user.
func (r *PermissionRepository) ReplaceUserGrants(ctx context.Context, userID uint, grants []*permission.UserGrant) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("user_id = ?", userID).
		Delete(&models.UserPermissionModel{}).Error; err != nil {
		return fmt.Errorf("failed to clear user grants: %w", err)
	}

	for _, g := range grants {
		model := r.mapper.UserGrantToModel(g)
		model.ID = 0
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to insert user grant %s: %w", g.PermissionCode(), err)
		}
	}

	return nil
}
