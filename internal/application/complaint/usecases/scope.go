package usecases

import (
	"context"

	"caretrack/internal/domain/complaint"
	"caretrack/internal/domain/shared/events"
	"caretrack/internal/shared/authorization"
	"caretrack/internal/shared/constants"
	"caretrack/internal/shared/logger"
)

// resolveScope widens the role-derived scope with granted view permissions.
// A user holding complaint.view_all sees everything regardless of role; one
// holding complaint.view_department sees their whole department.
func resolveScope(ctx context.Context, resolver PermissionResolver, actor authorization.Actor) (complaint.AccessScope, error) {
	if actor.IsSuperAdmin() {
		return complaint.AccessScope{Unrestricted: true}, nil
	}

	viewAll, err := resolver.Resolve(ctx, actor, constants.PermComplaintViewAll)
	if err != nil {
		return complaint.AccessScope{}, err
	}
	if viewAll {
		return complaint.AccessScope{Unrestricted: true}, nil
	}

	if actor.DepartmentID != nil {
		viewDept, err := resolver.Resolve(ctx, actor, constants.PermComplaintViewDepartment)
		if err != nil {
			return complaint.AccessScope{}, err
		}
		if viewDept {
			return complaint.AccessScope{DepartmentID: actor.DepartmentID}, nil
		}
	}

	return complaint.NewAccessScope(actor.Role, actor.UserID, actor.DepartmentID), nil
}

// publishEvents drains the aggregate's pending events after a successful
// commit. Delivery is best effort; a full channel must not fail the request.
func publishEvents(publisher events.EventPublisher, log logger.Interface, c *complaint.Complaint) {
	if publisher == nil {
		return
	}
	if err := publisher.PublishAll(c.GetEvents()); err != nil {
		log.Warnw("failed to publish complaint events", "complaint_id", c.ID(), "error", err)
	}
	c.ClearEvents()
}
