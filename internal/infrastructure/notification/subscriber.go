package notification

import (
	"context"
	"fmt"

	"caretrack/internal/domain/complaint"
	"caretrack/internal/domain/identity"
	"caretrack/internal/domain/shared/events"
	"caretrack/internal/shared/logger"
)

// EmailSender is what the subscriber needs from the SMTP service.
type EmailSender interface {
	SendComplaintAssigned(to, number, title string) error
	SendComplaintReplied(to, number, title string) error
}

// ComplaintNotifier consumes complaint events off the dispatcher and emails
// the affected users. Delivery failures are logged and swallowed; the
// lifecycle engine never waits on email.
type ComplaintNotifier struct {
	sender     EmailSender
	users      identity.UserRepository
	complaints complaint.ComplaintRepository
	logger     logger.Interface
}

func NewComplaintNotifier(sender EmailSender, users identity.UserRepository, complaints complaint.ComplaintRepository) *ComplaintNotifier {
	return &ComplaintNotifier{
		sender:     sender,
		users:      users,
		complaints: complaints,
		logger:     logger.NewLogger().With("component", "notification"),
	}
}

func (n *ComplaintNotifier) CanHandle(eventType string) bool {
	return eventType == complaint.EventTypeComplaintAssigned ||
		eventType == complaint.EventTypeComplaintReplied
}

func (n *ComplaintNotifier) Handle(event events.DomainEvent) error {
	switch e := event.(type) {
	case complaint.ComplaintAssignedEvent:
		return n.notifyAssigned(e)
	case complaint.ComplaintRepliedEvent:
		return n.notifyReplied(e)
	default:
		return nil
	}
}

func (n *ComplaintNotifier) notifyAssigned(e complaint.ComplaintAssignedEvent) error {
	ctx := context.Background()

	user, err := n.users.GetByID(ctx, e.AssigneeID)
	if err != nil {
		return fmt.Errorf("failed to load assignee %d: %w", e.AssigneeID, err)
	}

	c, err := n.complaints.GetByID(ctx, e.ComplaintID)
	if err != nil {
		return fmt.Errorf("failed to load complaint %d: %w", e.ComplaintID, err)
	}

	if err := n.sender.SendComplaintAssigned(user.Email(), c.Number(), c.Title()); err != nil {
		n.logger.Warnw("failed to send assignment notification",
			"complaint", c.Number(),
			"assignee_id", e.AssigneeID,
			"error", err)
	}
	return nil
}

// notifyReplied tells the complaint creator about replies written by anyone
// else. Internal notes still trigger this; employees filing complaints are
// staff, not patients.
func (n *ComplaintNotifier) notifyReplied(e complaint.ComplaintRepliedEvent) error {
	ctx := context.Background()

	c, err := n.complaints.GetByID(ctx, e.ComplaintID)
	if err != nil {
		return fmt.Errorf("failed to load complaint %d: %w", e.ComplaintID, err)
	}

	if c.CreatorID() == e.AuthorID {
		return nil
	}

	creator, err := n.users.GetByID(ctx, c.CreatorID())
	if err != nil {
		return fmt.Errorf("failed to load creator %d: %w", c.CreatorID(), err)
	}

	if err := n.sender.SendComplaintReplied(creator.Email(), c.Number(), c.Title()); err != nil {
		n.logger.Warnw("failed to send reply notification",
			"complaint", c.Number(),
			"creator_id", c.CreatorID(),
			"error", err)
	}
	return nil
}
