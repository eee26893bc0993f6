package models

import "caretrack/internal/shared/constants"

type ComplaintModel struct {
	ID           uint   `gorm:"primaryKey"`
	Number       string `gorm:"uniqueIndex;size:50;not null"`
	Title        string `gorm:"size:200;not null"`
	Description  string `gorm:"type:text;not null"`
	Status       string `gorm:"size:20;not null;index"`
	Priority     string `gorm:"size:20;not null;index"`
	Source       string `gorm:"size:20;not null"`
	DepartmentID uint   `gorm:"not null;index"`
	PatientID    *uint  `gorm:"index"`
	CreatorID    uint   `gorm:"not null;index"`
	Version      int    `gorm:"not null;default:1"`
	CreatedAt    int64  `gorm:"autoCreateTime:milli;not null;index"`
	UpdatedAt    int64  `gorm:"autoUpdateTime:milli;not null"`
	ClosedAt     *int64

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (ComplaintModel) TableName() string {
	return constants.TableComplaints
}

type ComplaintAssignmentModel struct {
	ID           uint   `gorm:"primaryKey"`
	ComplaintID  uint   `gorm:"not null;index"`
	AssigneeID   uint   `gorm:"not null;index"`
	AssignedByID uint   `gorm:"not null"`
	Note         string `gorm:"size:1000"`
	CreatedAt    int64  `gorm:"autoCreateTime:milli;not null;index"`
}

func (ComplaintAssignmentModel) TableName() string {
	return constants.TableComplaintAssignments
}

type ComplaintHistoryModel struct {
	ID          uint    `gorm:"primaryKey"`
	ComplaintID uint    `gorm:"not null;index"`
	ActorID     uint    `gorm:"not null;index"`
	Field       string  `gorm:"size:50;not null"`
	OldValue    *string `gorm:"size:255"`
	NewValue    string  `gorm:"size:255;not null"`
	CreatedAt   int64   `gorm:"autoCreateTime:milli;not null;index"`
}

func (ComplaintHistoryModel) TableName() string {
	return constants.TableComplaintHistory
}

type ComplaintReplyModel struct {
	ID          uint   `gorm:"primaryKey"`
	ComplaintID uint   `gorm:"not null;index"`
	AuthorID    uint   `gorm:"not null;index"`
	Body        string `gorm:"type:text;not null"`
	IsInternal  bool   `gorm:"not null;default:false"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli;not null;index"`
}

func (ComplaintReplyModel) TableName() string {
	return constants.TableComplaintReplies
}
