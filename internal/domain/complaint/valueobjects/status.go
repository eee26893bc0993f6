package valueobjects

import "fmt"

type ComplaintStatus string

// Complaint statuses. Any status may be set from any other through the
// explicit status-update operation; closed is not terminal, and replies on a
// closed complaint do not reopen it.
const (
	StatusOpen       ComplaintStatus = "open"
	StatusInProgress ComplaintStatus = "in_progress"
	StatusResponded  ComplaintStatus = "responded"
	StatusClosed     ComplaintStatus = "closed"
)

var validComplaintStatuses = map[ComplaintStatus]bool{
	StatusOpen:       true,
	StatusInProgress: true,
	StatusResponded:  true,
	StatusClosed:     true,
}

func (s ComplaintStatus) String() string {
	return string(s)
}

func (s ComplaintStatus) IsValid() bool {
	return validComplaintStatuses[s]
}

func (s ComplaintStatus) IsOpen() bool {
	return s == StatusOpen
}

func (s ComplaintStatus) IsInProgress() bool {
	return s == StatusInProgress
}

func (s ComplaintStatus) IsResponded() bool {
	return s == StatusResponded
}

func (s ComplaintStatus) IsClosed() bool {
	return s == StatusClosed
}

func NewComplaintStatus(s string) (ComplaintStatus, error) {
	status := ComplaintStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid complaint status: %s", s)
	}
	return status, nil
}
