package complaint

import (
	"fmt"
	"time"

	vo "caretrack/internal/domain/complaint/valueobjects"
	"caretrack/internal/domain/shared/events"
	"caretrack/internal/shared/biztime"
)

// Complaint is the aggregate root of the lifecycle engine. Status only moves
// through the methods below; every mutation bumps the optimistic version so
// concurrent writers surface as conflicts instead of lost updates.
type Complaint struct {
	id           uint
	number       string
	title        string
	description  string
	status       vo.ComplaintStatus
	priority     vo.Priority
	source       vo.Source
	departmentID uint
	patientID    *uint
	creatorID    uint
	version      int
	createdAt    time.Time
	updatedAt    time.Time
	closedAt     *time.Time

	pendingEvents []events.DomainEvent
}

func NewComplaint(
	title string,
	description string,
	departmentID uint,
	patientID *uint,
	priority vo.Priority,
	source vo.Source,
	creatorID uint,
) (*Complaint, error) {
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return nil, fmt.Errorf("title exceeds maximum length of 200 characters")
	}
	if len(description) == 0 {
		return nil, fmt.Errorf("description is required")
	}
	if len(description) > 5000 {
		return nil, fmt.Errorf("description exceeds maximum length of 5000 characters")
	}
	if departmentID == 0 {
		return nil, fmt.Errorf("department ID is required")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if !source.IsValid() {
		return nil, fmt.Errorf("invalid source")
	}
	if creatorID == 0 {
		return nil, fmt.Errorf("creator ID is required")
	}

	now := biztime.NowUTC()
	return &Complaint{
		title:        title,
		description:  description,
		status:       vo.StatusOpen,
		priority:     priority,
		source:       source,
		departmentID: departmentID,
		patientID:    patientID,
		creatorID:    creatorID,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructComplaint(
	id uint,
	number string,
	title string,
	description string,
	status vo.ComplaintStatus,
	priority vo.Priority,
	source vo.Source,
	departmentID uint,
	patientID *uint,
	creatorID uint,
	version int,
	createdAt, updatedAt time.Time,
	closedAt *time.Time,
) (*Complaint, error) {
	if id == 0 {
		return nil, fmt.Errorf("complaint ID cannot be zero")
	}
	if len(number) == 0 {
		return nil, fmt.Errorf("complaint number is required")
	}
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if !source.IsValid() {
		return nil, fmt.Errorf("invalid source")
	}

	return &Complaint{
		id:           id,
		number:       number,
		title:        title,
		description:  description,
		status:       status,
		priority:     priority,
		source:       source,
		departmentID: departmentID,
		patientID:    patientID,
		creatorID:    creatorID,
		version:      version,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		closedAt:     closedAt,
	}, nil
}

func (c *Complaint) ID() uint {
	return c.id
}

func (c *Complaint) Number() string {
	return c.number
}

func (c *Complaint) Title() string {
	return c.title
}

func (c *Complaint) Description() string {
	return c.description
}

func (c *Complaint) Status() vo.ComplaintStatus {
	return c.status
}

func (c *Complaint) Priority() vo.Priority {
	return c.priority
}

func (c *Complaint) Source() vo.Source {
	return c.source
}

func (c *Complaint) DepartmentID() uint {
	return c.departmentID
}

func (c *Complaint) PatientID() *uint {
	return c.patientID
}

func (c *Complaint) CreatorID() uint {
	return c.creatorID
}

func (c *Complaint) Version() int {
	return c.version
}

func (c *Complaint) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Complaint) UpdatedAt() time.Time {
	return c.updatedAt
}

func (c *Complaint) ClosedAt() *time.Time {
	return c.closedAt
}

func (c *Complaint) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("complaint ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("complaint ID cannot be zero")
	}
	c.id = id
	return nil
}

// SetNumber assigns the human-readable number once, at creation. The number
// is immutable afterwards.
func (c *Complaint) SetNumber(number string) error {
	if len(c.number) > 0 {
		return fmt.Errorf("complaint number is already set")
	}
	if len(number) == 0 {
		return fmt.Errorf("complaint number cannot be empty")
	}
	c.number = number
	return nil
}

// Assign moves the complaint to in_progress regardless of its prior status.
// The assignment row itself is appended by the repository; the aggregate
// only owns the status side effect.
func (c *Complaint) Assign(assigneeID uint, assignedBy uint) error {
	if assigneeID == 0 {
		return fmt.Errorf("assignee ID cannot be zero")
	}

	oldStatus := c.status
	c.status = vo.StatusInProgress
	c.touch()

	c.record(NewComplaintAssignedEvent(c.id, c.number, assigneeID, assignedBy, oldStatus.String(), c.updatedAt))
	return nil
}

// ApplyReply applies the status side effect of a new reply: the complaint
// moves to responded unless it is closed. Closed complaints never auto-reopen.
func (c *Complaint) ApplyReply(authorID uint) {
	oldStatus := c.status
	if !c.status.IsClosed() {
		c.status = vo.StatusResponded
	}
	c.touch()

	c.record(NewComplaintRepliedEvent(c.id, c.number, authorID, oldStatus.String(), c.status.String(), c.updatedAt))
}

// ChangeStatus sets an explicit status. closedAt is re-stamped on every
// transition into closed, so after a reopen-then-close it records the most
// recent closure. It is deliberately never cleared when the complaint later
// leaves closed.
func (c *Complaint) ChangeStatus(newStatus vo.ComplaintStatus, changedBy uint) error {
	if !newStatus.IsValid() {
		return fmt.Errorf("invalid status: %s", newStatus)
	}

	oldStatus := c.status
	c.status = newStatus
	c.touch()

	if newStatus.IsClosed() {
		now := c.updatedAt
		c.closedAt = &now
	}

	c.record(NewComplaintStatusChangedEvent(c.id, c.number, oldStatus.String(), newStatus.String(), changedBy, c.updatedAt))
	return nil
}

// CanBeViewedBy reports whether the user participates in this complaint as
// its creator. Assignee participation is a repository-level question (current
// assignee comes from the append-only assignment log) and is checked by the
// use case alongside this.
func (c *Complaint) CanBeViewedBy(userID uint) bool {
	return c.creatorID == userID
}

func (c *Complaint) touch() {
	c.updatedAt = biztime.NowUTC()
	c.version++
}

func (c *Complaint) record(event events.DomainEvent) {
	c.pendingEvents = append(c.pendingEvents, event)
}

// RecordCreated records the creation event once the ID and number are known.
func (c *Complaint) RecordCreated() {
	c.record(NewComplaintCreatedEvent(c.id, c.number, c.title, c.creatorID, c.departmentID, c.priority.String(), c.createdAt))
}

// GetEvents returns the events recorded since the aggregate was loaded.
func (c *Complaint) GetEvents() []events.DomainEvent {
	return c.pendingEvents
}

// ClearEvents drops recorded events after they have been dispatched.
func (c *Complaint) ClearEvents() {
	c.pendingEvents = nil
}
