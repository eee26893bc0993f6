package complaint

import (
	"fmt"
	"time"

	"caretrack/internal/domain/shared/events"
)

// Event types
const (
	EventTypeComplaintCreated       = "complaint.created"
	EventTypeComplaintAssigned      = "complaint.assigned"
	EventTypeComplaintStatusChanged = "complaint.status.changed"
	EventTypeComplaintReplied       = "complaint.replied"
)

// ComplaintCreatedEvent is emitted when a new complaint is filed.
type ComplaintCreatedEvent struct {
	events.BaseEvent
	ComplaintID  uint   `json:"complaint_id"`
	Number       string `json:"number"`
	Title        string `json:"title"`
	CreatorID    uint   `json:"creator_id"`
	DepartmentID uint   `json:"department_id"`
	Priority     string `json:"priority"`
}

func NewComplaintCreatedEvent(complaintID uint, number, title string, creatorID, departmentID uint, priority string, occurredAt time.Time) ComplaintCreatedEvent {
	return ComplaintCreatedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: fmt.Sprintf("complaint:%d", complaintID),
			EventType:   EventTypeComplaintCreated,
			OccurredAt:  occurredAt,
		},
		ComplaintID:  complaintID,
		Number:       number,
		Title:        title,
		CreatorID:    creatorID,
		DepartmentID: departmentID,
		Priority:     priority,
	}
}

// ComplaintAssignedEvent is emitted when a complaint is assigned to a handler.
type ComplaintAssignedEvent struct {
	events.BaseEvent
	ComplaintID uint   `json:"complaint_id"`
	Number      string `json:"number"`
	AssigneeID  uint   `json:"assignee_id"`
	AssignedBy  uint   `json:"assigned_by"`
	OldStatus   string `json:"old_status"`
}

func NewComplaintAssignedEvent(complaintID uint, number string, assigneeID, assignedBy uint, oldStatus string, occurredAt time.Time) ComplaintAssignedEvent {
	return ComplaintAssignedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: fmt.Sprintf("complaint:%d", complaintID),
			EventType:   EventTypeComplaintAssigned,
			OccurredAt:  occurredAt,
		},
		ComplaintID: complaintID,
		Number:      number,
		AssigneeID:  assigneeID,
		AssignedBy:  assignedBy,
		OldStatus:   oldStatus,
	}
}

// ComplaintStatusChangedEvent is emitted on every explicit status update,
// including no-op updates where the status stays the same.
type ComplaintStatusChangedEvent struct {
	events.BaseEvent
	ComplaintID uint   `json:"complaint_id"`
	Number      string `json:"number"`
	OldStatus   string `json:"old_status"`
	NewStatus   string `json:"new_status"`
	ChangedBy   uint   `json:"changed_by"`
}

func NewComplaintStatusChangedEvent(complaintID uint, number, oldStatus, newStatus string, changedBy uint, occurredAt time.Time) ComplaintStatusChangedEvent {
	return ComplaintStatusChangedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: fmt.Sprintf("complaint:%d", complaintID),
			EventType:   EventTypeComplaintStatusChanged,
			OccurredAt:  occurredAt,
		},
		ComplaintID: complaintID,
		Number:      number,
		OldStatus:   oldStatus,
		NewStatus:   newStatus,
		ChangedBy:   changedBy,
	}
}

// ComplaintRepliedEvent is emitted when a reply is appended to the thread.
type ComplaintRepliedEvent struct {
	events.BaseEvent
	ComplaintID uint   `json:"complaint_id"`
	Number      string `json:"number"`
	AuthorID    uint   `json:"author_id"`
	OldStatus   string `json:"old_status"`
	NewStatus   string `json:"new_status"`
}

func NewComplaintRepliedEvent(complaintID uint, number string, authorID uint, oldStatus, newStatus string, occurredAt time.Time) ComplaintRepliedEvent {
	return ComplaintRepliedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: fmt.Sprintf("complaint:%d", complaintID),
			EventType:   EventTypeComplaintReplied,
			OccurredAt:  occurredAt,
		},
		ComplaintID: complaintID,
		Number:      number,
		AuthorID:    authorID,
		OldStatus:   oldStatus,
		NewStatus:   newStatus,
	}
}
