package activity

import (
	"context"
	"time"
)

type Repository interface {
	Save(ctx context.Context, entry *Entry) error
	List(ctx context.Context, filter Filter) ([]*Entry, int64, error)
}

type Filter struct {
	ActorID         *uint
	EffectiveUserID *uint
	Action          string
	EntityType      string
	EntityID        *uint
	From            *time.Time
	To              *time.Time
	Page            int
	PageSize        int
}
