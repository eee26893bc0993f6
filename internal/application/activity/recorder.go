package activity

import (
	"context"

	domain "caretrack/internal/domain/activity"
	"caretrack/internal/shared/authorization"
	"caretrack/internal/shared/logger"
)

// Recorder writes activity entries for mutations. Callers invoke it inside
// the same transaction as the mutation itself so the log and the data never
// disagree.
type Recorder interface {
	Record(ctx context.Context, actor authorization.Actor, action, entityType string, entityID *uint, details map[string]any) error
}

type recorder struct {
	repo   domain.Repository
	logger logger.Interface
}

func NewRecorder(repo domain.Repository, log logger.Interface) Recorder {
	return &recorder{
		repo:   repo,
		logger: log,
	}
}

func (r *recorder) Record(ctx context.Context, actor authorization.Actor, action, entityType string, entityID *uint, details map[string]any) error {
	// Under impersonation the super admin is the one acting and the
	// impersonated user is who the action is attributed to.
	actorID := actor.UserID
	var effectiveUserID *uint
	if actor.IsImpersonating() {
		actorID = *actor.OriginalAdminID
		target := actor.UserID
		effectiveUserID = &target
	}

	entry, err := domain.NewEntry(actorID, effectiveUserID, action, entityType, entityID, details)
	if err != nil {
		return err
	}

	if err := r.repo.Save(ctx, entry); err != nil {
		r.logger.Errorw("failed to record activity",
			"action", action,
			"actor_id", actorID,
			"error", err)
		return err
	}

	return nil
}
