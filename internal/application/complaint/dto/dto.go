package dto

import (
	"time"

	"caretrack/internal/domain/complaint"
)

type ComplaintDTO struct {
	ID           uint       `json:"id"`
	Number       string     `json:"number"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority"`
	Source       string     `json:"source"`
	DepartmentID uint       `json:"department_id"`
	PatientID    *uint      `json:"patient_id,omitempty"`
	CreatorID    uint       `json:"creator_id"`
	AssigneeID   *uint      `json:"assignee_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	ClosedAt     *time.Time `json:"closed_at,omitempty"`

	Assignments []AssignmentDTO `json:"assignments,omitempty"`
	History     []HistoryDTO    `json:"history,omitempty"`
	Replies     []ReplyDTO      `json:"replies,omitempty"`
}

type ComplaintListItemDTO struct {
	ID           uint       `json:"id"`
	Number       string     `json:"number"`
	Title        string     `json:"title"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority"`
	Source       string     `json:"source"`
	DepartmentID uint       `json:"department_id"`
	CreatorID    uint       `json:"creator_id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	ClosedAt     *time.Time `json:"closed_at,omitempty"`
}

type AssignmentDTO struct {
	ID           uint      `json:"id"`
	AssigneeID   uint      `json:"assignee_id"`
	AssignedByID uint      `json:"assigned_by_id"`
	Note         string    `json:"note,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type HistoryDTO struct {
	ID        uint      `json:"id"`
	ActorID   uint      `json:"actor_id"`
	Field     string    `json:"field"`
	OldValue  *string   `json:"old_value,omitempty"`
	NewValue  string    `json:"new_value"`
	CreatedAt time.Time `json:"created_at"`
}

type ReplyDTO struct {
	ID         uint      `json:"id"`
	AuthorID   uint      `json:"author_id"`
	Body       string    `json:"body"`
	IsInternal bool      `json:"is_internal"`
	CreatedAt  time.Time `json:"created_at"`
}

func ToComplaintDTO(c *complaint.Complaint, currentAssignee *uint) *ComplaintDTO {
	if c == nil {
		return nil
	}
	return &ComplaintDTO{
		ID:           c.ID(),
		Number:       c.Number(),
		Title:        c.Title(),
		Description:  c.Description(),
		Status:       c.Status().String(),
		Priority:     c.Priority().String(),
		Source:       c.Source().String(),
		DepartmentID: c.DepartmentID(),
		PatientID:    c.PatientID(),
		CreatorID:    c.CreatorID(),
		AssigneeID:   currentAssignee,
		CreatedAt:    c.CreatedAt(),
		UpdatedAt:    c.UpdatedAt(),
		ClosedAt:     c.ClosedAt(),
	}
}

func ToComplaintListItemDTO(c *complaint.Complaint) ComplaintListItemDTO {
	return ComplaintListItemDTO{
		ID:           c.ID(),
		Number:       c.Number(),
		Title:        c.Title(),
		Status:       c.Status().String(),
		Priority:     c.Priority().String(),
		Source:       c.Source().String(),
		DepartmentID: c.DepartmentID(),
		CreatorID:    c.CreatorID(),
		CreatedAt:    c.CreatedAt(),
		UpdatedAt:    c.UpdatedAt(),
		ClosedAt:     c.ClosedAt(),
	}
}

func ToAssignmentDTOs(assignments []*complaint.Assignment) []AssignmentDTO {
	dtos := make([]AssignmentDTO, len(assignments))
	for i, a := range assignments {
		dtos[i] = AssignmentDTO{
			ID:           a.ID(),
			AssigneeID:   a.AssigneeID(),
			AssignedByID: a.AssignedByID(),
			Note:         a.Note(),
			CreatedAt:    a.CreatedAt(),
		}
	}
	return dtos
}

func ToHistoryDTOs(entries []*complaint.HistoryEntry) []HistoryDTO {
	dtos := make([]HistoryDTO, len(entries))
	for i, h := range entries {
		dtos[i] = HistoryDTO{
			ID:        h.ID(),
			ActorID:   h.ActorID(),
			Field:     h.Field(),
			OldValue:  h.OldValue(),
			NewValue:  h.NewValue(),
			CreatedAt: h.CreatedAt(),
		}
	}
	return dtos
}

func ToReplyDTOs(replies []*complaint.Reply) []ReplyDTO {
	dtos := make([]ReplyDTO, len(replies))
	for i, r := range replies {
		dtos[i] = ReplyDTO{
			ID:         r.ID(),
			AuthorID:   r.AuthorID(),
			Body:       r.Body(),
			IsInternal: r.IsInternal(),
			CreatedAt:  r.CreatedAt(),
		}
	}
	return dtos
}
