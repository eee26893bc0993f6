package models

import (
	"gorm.io/datatypes"

	"caretrack/internal/shared/constants"
)

type ActivityLogModel struct {
	ID              uint   `gorm:"primaryKey"`
	ActorID         uint   `gorm:"not null;index"`
	EffectiveUserID *uint  `gorm:"index"`
	Action          string `gorm:"size:100;not null;index"`
	EntityType      string `gorm:"size:50;index"`
	EntityID        *uint  `gorm:"index"`
	Details         datatypes.JSON
	CreatedAt       int64 `gorm:"autoCreateTime:milli;not null;index"`
}

func (ActivityLogModel) TableName() string {
	return constants.TableActivityLog
}
