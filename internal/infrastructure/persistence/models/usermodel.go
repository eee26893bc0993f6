package models

import "caretrack/internal/shared/constants"

type UserModel struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;size:255;not null"`
	Name         string `gorm:"size:100;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:30;not null;index"`
	DepartmentID *uint  `gorm:"index"`
	IsActive     bool   `gorm:"not null;default:true;index"`
	Version      int    `gorm:"not null;default:1"`
	CreatedAt    int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt    int64  `gorm:"autoUpdateTime:milli;not null"`
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return constants.TableUsers
}

type DepartmentModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;size:100;not null"`
	IsActive  bool   `gorm:"not null;default:true"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (DepartmentModel) TableName() string {
	return constants.TableDepartments
}

type PatientModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	MRN       string `gorm:"column:mrn;uniqueIndex;size:50;not null"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (PatientModel) TableName() string {
	return constants.TablePatients
}
