package activity

import (
	"context"
	"time"

	domain "caretrack/internal/domain/activity"
	"caretrack/internal/shared/authorization"
	"caretrack/internal/shared/constants"
	"caretrack/internal/shared/logger"
)

type ListActivityQuery struct {
	Actor           authorization.Actor
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

type ActivityEntryDTO struct {
	ID              uint           `json:"id"`
	ActorID         uint           `json:"actor_id"`
	EffectiveUserID *uint          `json:"effective_user_id,omitempty"`
	Action          string         `json:"action"`
	EntityType      string         `json:"entity_type,omitempty"`
	EntityID        *uint          `json:"entity_id,omitempty"`
	Details         map[string]any `json:"details,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

type ListActivityResult struct {
	Entries []ActivityEntryDTO
	Total   int64
}

type PermissionChecker interface {
	Require(ctx context.Context, actor authorization.Actor, code string) error
}

type ListActivityUseCase struct {
	repo        domain.Repository
	permissions PermissionChecker
	logger      logger.Interface
}

func NewListActivityUseCase(repo domain.Repository, permissions PermissionChecker, log logger.Interface) *ListActivityUseCase {
	return &ListActivityUseCase{
		repo:        repo,
		permissions: permissions,
		logger:      log,
	}
}

func (uc *ListActivityUseCase) Execute(ctx context.Context, query ListActivityQuery) (*ListActivityResult, error) {
	if err := uc.permissions.Require(ctx, query.Actor, constants.PermActivityLogView); err != nil {
		return nil, err
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	entries, total, err := uc.repo.List(ctx, domain.Filter{
		ActorID:         query.ActorID,
		EffectiveUserID: query.EffectiveUserID,
		Action:          query.Action,
		EntityType:      query.EntityType,
		EntityID:        query.EntityID,
		From:            query.From,
		To:              query.To,
		Page:            page,
		PageSize:        pageSize,
	})
	if err != nil {
		uc.logger.Errorw("failed to list activity", "error", err)
		return nil, err
	}

	dtos := make([]ActivityEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = ActivityEntryDTO{
			ID:              e.ID(),
			ActorID:         e.ActorID(),
			EffectiveUserID: e.EffectiveUserID(),
			Action:          e.Action(),
			EntityType:      e.EntityType(),
			EntityID:        e.EntityID(),
			Details:         e.Details(),
			CreatedAt:       e.CreatedAt(),
		}
	}

	return &ListActivityResult{Entries: dtos, Total: total}, nil
}
