package mappers

import (
	"encoding/json"
	"fmt"
	"time"

	"caretrack/internal/domain/activity"
	"caretrack/internal/infrastructure/persistence/models"
)

// ActivityMapper handles the conversion between activity log entries and
// persistence models.
type ActivityMapper interface {
	ToModel(e *activity.Entry) (*models.ActivityLogModel, error)
	ToDomain(model *models.ActivityLogModel) (*activity.Entry, error)
}

type ActivityMapperImpl struct{}

func NewActivityMapper() ActivityMapper {
	return &ActivityMapperImpl{}
}

func (m *ActivityMapperImpl) ToModel(e *activity.Entry) (*models.ActivityLogModel, error) {
	model := &models.ActivityLogModel{
		ID:              e.ID(),
		ActorID:         e.ActorID(),
		EffectiveUserID: e.EffectiveUserID(),
		Action:          e.Action(),
		EntityType:      e.EntityType(),
		EntityID:        e.EntityID(),
		CreatedAt:       e.CreatedAt().UnixMilli(),
	}

	if len(e.Details()) > 0 {
		detailsJSON, err := json.Marshal(e.Details())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal activity details: %w", err)
		}
		model.Details = detailsJSON
	}

	return model, nil
}

func (m *ActivityMapperImpl) ToDomain(model *models.ActivityLogModel) (*activity.Entry, error) {
	var details map[string]any
	if len(model.Details) > 0 {
		if err := json.Unmarshal(model.Details, &details); err != nil {
			return nil, fmt.Errorf("failed to unmarshal activity details (id=%d): %w", model.ID, err)
		}
	}

	return activity.ReconstructEntry(
		model.ID,
		model.ActorID,
		model.EffectiveUserID,
		model.Action,
		model.EntityType,
		model.EntityID,
		details,
		time.Unix(0, model.CreatedAt*int64(time.Millisecond)),
	), nil
}
