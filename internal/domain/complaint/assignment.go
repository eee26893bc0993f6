package complaint

import (
	"fmt"
	"time"

	"caretrack/internal/shared/biztime"
)

// Assignment is one row of the append-only assignment log. The current
// assignee of a complaint is the most recent row; earlier rows are never
// updated or deleted.
type Assignment struct {
	id           uint
	complaintID  uint
	assigneeID   uint
	assignedByID uint
	note         string
	createdAt    time.Time
}

func NewAssignment(complaintID, assigneeID, assignedByID uint, note string) (*Assignment, error) {
	if complaintID == 0 {
		return nil, fmt.Errorf("complaint ID is required")
	}
	if assigneeID == 0 {
		return nil, fmt.Errorf("assignee ID is required")
	}
	if assignedByID == 0 {
		return nil, fmt.Errorf("assigner ID is required")
	}
	if len(note) > 1000 {
		return nil, fmt.Errorf("note exceeds maximum length of 1000 characters")
	}

	return &Assignment{
		complaintID:  complaintID,
		assigneeID:   assigneeID,
		assignedByID: assignedByID,
		note:         note,
		createdAt:    biztime.NowUTC(),
	}, nil
}

func ReconstructAssignment(id, complaintID, assigneeID, assignedByID uint, note string, createdAt time.Time) *Assignment {
	return &Assignment{
		id:           id,
		complaintID:  complaintID,
		assigneeID:   assigneeID,
		assignedByID: assignedByID,
		note:         note,
		createdAt:    createdAt,
	}
}

func (a *Assignment) ID() uint {
	return a.id
}

func (a *Assignment) ComplaintID() uint {
	return a.complaintID
}

func (a *Assignment) AssigneeID() uint {
	return a.assigneeID
}

func (a *Assignment) AssignedByID() uint {
	return a.assignedByID
}

func (a *Assignment) Note() string {
	return a.note
}

func (a *Assignment) CreatedAt() time.Time {
	return a.createdAt
}

func (a *Assignment) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("assignment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("assignment ID cannot be zero")
	}
	a.id = id
	return nil
}
