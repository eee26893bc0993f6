package models

import "caretrack/internal/shared/constants"

type PermissionModel struct {
	ID          uint   `gorm:"primaryKey"`
	Code        string `gorm:"uniqueIndex;size:100;not null"`
	Description string `gorm:"size:255"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt   int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (PermissionModel) TableName() string {
	return constants.TablePermissions
}

type RolePermissionModel struct {
	ID             uint   `gorm:"primaryKey"`
	Role           string `gorm:"size:30;not null;uniqueIndex:idx_role_permission"`
	PermissionCode string `gorm:"size:100;not null;uniqueIndex:idx_role_permission"`
	Allowed        bool   `gorm:"not null"`
	CreatedAt      int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt      int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (RolePermissionModel) TableName() string {
	return constants.TableRolePermissions
}

type UserPermissionModel struct {
	ID             uint   `gorm:"primaryKey"`
	UserID         uint   `gorm:"not null;uniqueIndex:idx_user_permission"`
	PermissionCode string `gorm:"size:100;not null;uniqueIndex:idx_user_permission"`
	Allowed        bool   `gorm:"not null"`
	CreatedAt      int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt      int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (UserPermissionModel) TableName() string {
	return constants.TableUserPermissions
}
