package complaint

import (
	"fmt"
	"time"

	"caretrack/internal/shared/biztime"
)

// Fields a history entry can describe.
const (
	FieldStatus     = "Status"
	FieldAssignment = "Assignment"
)

// HistoryEntry is one row of the append-only audit trail on a complaint.
// A row is written for every status change and every assignment, including
// no-op status updates where old and new values are equal.
type HistoryEntry struct {
	id          uint
	complaintID uint
	actorID     uint
	field       string
	oldValue    *string
	newValue    string
	createdAt   time.Time
}

func NewHistoryEntry(complaintID, actorID uint, field string, oldValue *string, newValue string) (*HistoryEntry, error) {
	if complaintID == 0 {
		return nil, fmt.Errorf("complaint ID is required")
	}
	if actorID == 0 {
		return nil, fmt.Errorf("actor ID is required")
	}
	if field != FieldStatus && field != FieldAssignment {
		return nil, fmt.Errorf("unknown history field: %s", field)
	}
	if len(newValue) == 0 {
		return nil, fmt.Errorf("new value is required")
	}

	return &HistoryEntry{
		complaintID: complaintID,
		actorID:     actorID,
		field:       field,
		oldValue:    oldValue,
		newValue:    newValue,
		createdAt:   biztime.NowUTC(),
	}, nil
}

func ReconstructHistoryEntry(id, complaintID, actorID uint, field string, oldValue *string, newValue string, createdAt time.Time) *HistoryEntry {
	return &HistoryEntry{
		id:          id,
		complaintID: complaintID,
		actorID:     actorID,
		field:       field,
		oldValue:    oldValue,
		newValue:    newValue,
		createdAt:   createdAt,
	}
}

func (h *HistoryEntry) ID() uint {
	return h.id
}

func (h *HistoryEntry) ComplaintID() uint {
	return h.complaintID
}

func (h *HistoryEntry) ActorID() uint {
	return h.actorID
}

func (h *HistoryEntry) Field() string {
	return h.field
}

func (h *HistoryEntry) OldValue() *string {
	return h.oldValue
}

func (h *HistoryEntry) NewValue() string {
	return h.newValue
}

func (h *HistoryEntry) CreatedAt() time.Time {
	return h.createdAt
}

func (h *HistoryEntry) SetID(id uint) error {
	if h.id != 0 {
		return fmt.Errorf("history entry ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("history entry ID cannot be zero")
	}
	h.id = id
	return nil
}
