package mappers

import (
	"time"

	"caretrack/internal/domain/complaint"
	vo "caretrack/internal/domain/complaint/valueobjects"
	"caretrack/internal/infrastructure/persistence/models"
)

// ComplaintMapper handles the conversion between complaint domain entities
// and persistence models.
type ComplaintMapper interface {
	ToModel(c *complaint.Complaint) *models.ComplaintModel
	ToDomain(model *models.ComplaintModel) (*complaint.Complaint, error)

	AssignmentToModel(a *complaint.Assignment) *models.ComplaintAssignmentModel
	AssignmentToDomain(model *models.ComplaintAssignmentModel) *complaint.Assignment

	HistoryToModel(h *complaint.HistoryEntry) *models.ComplaintHistoryModel
	HistoryToDomain(model *models.ComplaintHistoryModel) *complaint.HistoryEntry

	ReplyToModel(r *complaint.Reply) *models.ComplaintReplyModel
	ReplyToDomain(model *models.ComplaintReplyModel) *complaint.Reply
}

type ComplaintMapperImpl struct{}

func NewComplaintMapper() ComplaintMapper {
	return &ComplaintMapperImpl{}
}

func (m *ComplaintMapperImpl) ToModel(c *complaint.Complaint) *models.ComplaintModel {
	model := &models.ComplaintModel{
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
		Version:      c.Version(),
		CreatedAt:    c.CreatedAt().UnixMilli(),
		UpdatedAt:    c.UpdatedAt().UnixMilli(),
	}

	if c.ClosedAt() != nil {
		closed := c.ClosedAt().UnixMilli()
		model.ClosedAt = &closed
	}

	return model
}

// ToDomain converts a complaint persistence model to a domain entity.
// Assignments, history, and replies are loaded separately by the repository.
func (m *ComplaintMapperImpl) ToDomain(model *models.ComplaintModel) (*complaint.Complaint, error) {
	status, err := vo.NewComplaintStatus(model.Status)
	if err != nil {
		return nil, err
	}
	priority, err := vo.NewPriority(model.Priority)
	if err != nil {
		return nil, err
	}
	source, err := vo.NewSource(model.Source)
	if err != nil {
		return nil, err
	}

	var closedAt *time.Time
	if model.ClosedAt != nil {
		t := complaintConvertMillisToTime(*model.ClosedAt)
		closedAt = &t
	}

	return complaint.ReconstructComplaint(
		model.ID,
		model.Number,
		model.Title,
		model.Description,
		status,
		priority,
		source,
		model.DepartmentID,
		model.PatientID,
		model.CreatorID,
		model.Version,
		complaintConvertMillisToTime(model.CreatedAt),
		complaintConvertMillisToTime(model.UpdatedAt),
		closedAt,
	)
}

func (m *ComplaintMapperImpl) AssignmentToModel(a *complaint.Assignment) *models.ComplaintAssignmentModel {
	return &models.ComplaintAssignmentModel{
		ID:           a.ID(),
		ComplaintID:  a.ComplaintID(),
		AssigneeID:   a.AssigneeID(),
		AssignedByID: a.AssignedByID(),
		Note:         a.Note(),
		CreatedAt:    a.CreatedAt().UnixMilli(),
	}
}

func (m *ComplaintMapperImpl) AssignmentToDomain(model *models.ComplaintAssignmentModel) *complaint.Assignment {
	return complaint.ReconstructAssignment(
		model.ID,
		model.ComplaintID,
		model.AssigneeID,
		model.AssignedByID,
		model.Note,
		complaintConvertMillisToTime(model.CreatedAt),
	)
}

func (m *ComplaintMapperImpl) HistoryToModel(h *complaint.HistoryEntry) *models.ComplaintHistoryModel {
	return &models.ComplaintHistoryModel{
		ID:          h.ID(),
		ComplaintID: h.ComplaintID(),
		ActorID:     h.ActorID(),
		Field:       h.Field(),
		OldValue:    h.OldValue(),
		NewValue:    h.NewValue(),
		CreatedAt:   h.CreatedAt().UnixMilli(),
	}
}

func (m *ComplaintMapperImpl) HistoryToDomain(model *models.ComplaintHistoryModel) *complaint.HistoryEntry {
	return complaint.ReconstructHistoryEntry(
		model.ID,
		model.ComplaintID,
		model.ActorID,
		model.Field,
		model.OldValue,
		model.NewValue,
		complaintConvertMillisToTime(model.CreatedAt),
	)
}

func (m *ComplaintMapperImpl) ReplyToModel(r *complaint.Reply) *models.ComplaintReplyModel {
	return &models.ComplaintReplyModel{
		ID:          r.ID(),
		ComplaintID: r.ComplaintID(),
		AuthorID:    r.AuthorID(),
		Body:        r.Body(),
		IsInternal:  r.IsInternal(),
		CreatedAt:   r.CreatedAt().UnixMilli(),
	}
}

func (m *ComplaintMapperImpl) ReplyToDomain(model *models.ComplaintReplyModel) *complaint.Reply {
	return complaint.ReconstructReply(
		model.ID,
		model.ComplaintID,
		model.AuthorID,
		model.Body,
		model.IsInternal,
		complaintConvertMillisToTime(model.CreatedAt),
	)
}

func complaintConvertMillisToTime(millis int64) time.Time {
	return time.Unix(0, millis*int64(time.Millisecond))
}
