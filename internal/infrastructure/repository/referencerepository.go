package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"caretrack/internal/infrastructure/persistence/models"
	db "caretrack/internal/shared/db"
)

// ReferenceRepository answers existence questions about the department and
// patient reference tables. Complaints only hold IDs into them; there are no
// foreign key constraints.
type ReferenceRepository struct {
	db *gorm.DB
}

func NewReferenceRepository(gormDB *gorm.DB) *ReferenceRepository {
	return &ReferenceRepository{db: gormDB}
}

func (r *ReferenceRepository) DepartmentExists(ctx context.Context, departmentID uint) (bool, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Model(&models.DepartmentModel{}).
		Where("id = ? AND is_active = ?", departmentID, true).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check department existence: %w", err)
	}

	return count > 0, nil
}

func (r *ReferenceRepository) PatientExists(ctx context.Context, patientID uint) (bool, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Model(&models.PatientModel{}).
		Where("id = ?", patientID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check patient existence: %w", err)
	}

	return count > 0, nil
}
