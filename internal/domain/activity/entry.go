package activity

import (
	"fmt"
	"time"

	"caretrack/internal/shared/biztime"
)

// Entry is one row of the tenant-wide activity log. actorID is who
// physically performed the call. effectiveUserID is set when the action is
// attributed to someone else: under impersonation the acting super admin is
// the actor and the impersonated user is the effective identity.
type Entry struct {
	id              uint
	actorID         uint
	effectiveUserID *uint
	action          string
	entityType      string
	entityID        *uint
	details         map[string]any
	createdAt       time.Time
}

func NewEntry(actorID uint, effectiveUserID *uint, action, entityType string, entityID *uint, details map[string]any) (*Entry, error) {
	if actorID == 0 {
		return nil, fmt.Errorf("actor ID is required")
	}
	if len(action) == 0 {
		return nil, fmt.Errorf("action is required")
	}

	return &Entry{
		actorID:         actorID,
		effectiveUserID: effectiveUserID,
		action:          action,
		entityType:      entityType,
		entityID:        entityID,
		details:         details,
		createdAt:       biztime.NowUTC(),
	}, nil
}

func ReconstructEntry(id, actorID uint, effectiveUserID *uint, action, entityType string, entityID *uint, details map[string]any, createdAt time.Time) *Entry {
	return &Entry{
		id:              id,
		actorID:         actorID,
		effectiveUserID: effectiveUserID,
		action:          action,
		entityType:      entityType,
		entityID:        entityID,
		details:         details,
		createdAt:       createdAt,
	}
}

func (e *Entry) ID() uint {
	return e.id
}

func (e *Entry) ActorID() uint {
	return e.actorID
}

func (e *Entry) EffectiveUserID() *uint {
	return e.effectiveUserID
}

func (e *Entry) Action() string {
	return e.action
}

func (e *Entry) EntityType() string {
	return e.entityType
}

func (e *Entry) EntityID() *uint {
	return e.entityID
}

func (e *Entry) Details() map[string]any {
	return e.details
}

func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}

func (e *Entry) IsImpersonated() bool {
	return e.effectiveUserID != nil
}
