package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caretrack/internal/domain/complaint"
	vo "caretrack/internal/domain/complaint/valueobjects"
	"caretrack/internal/shared/authorization"
	"caretrack/internal/shared/constants"
	sharederrors "caretrack/internal/shared/errors"
	"caretrack/internal/shared/logger"
)

type replyDeps struct {
	complaints  *mockComplaintRepository
	assignments *mockAssignmentRepository
	replies     *mockReplyRepository
	history     *mockHistoryRepository
	resolver    *mockPermissionResolver
	recorder    *mockActivityRecorder
	tx          *mockTransactionRunner
	publisher   *mockEventPublisher
}

func newReplyDeps(t *testing.T, status vo.ComplaintStatus) replyDeps {
	return replyDeps{
		complaints: &mockComplaintRepository{
			GetByIDFunc: func(ctx context.Context, complaintID uint) (*complaint.Complaint, error) {
				return storedComplaint(t, complaintID, 3, 7, status), nil
			},
		},
		assignments: &mockAssignmentRepository{},
		replies: &mockReplyRepository{
			SaveFunc: func(ctx context.Context, reply *complaint.Reply) error {
				return reply.SetID(1)
			},
		},
		history:   &mockHistoryRepository{},
		resolver:  &mockPermissionResolver{},
		recorder:  &mockActivityRecorder{},
		tx:        &mockTransactionRunner{},
		publisher: &mockEventPublisher{},
	}
}

func (d replyDeps) build() *ReplyComplaintUseCase {
	return NewReplyComplaintUseCase(d.complaints, d.assignments, d.replies, d.history, d.resolver, d.recorder, d.tx, d.publisher, logger.NewLogger())
}

func TestReplyComplaintUseCase_Execute_MovesToResponded(t *testing.T) {
	deps := newReplyDeps(t, vo.StatusInProgress)
	uc := deps.build()

	result, err := uc.Execute(context.Background(), ReplyComplaintCommand{
		Actor:       employeeActor(7, 3),
		ComplaintID: 101,
		Body:        "We reviewed the intake logs and added a second triage nurse.",
	})

	require.NoError(t, err)
	assert.Equal(t, "responded", result.Status)
	assert.Equal(t, uint(7), result.Reply.AuthorID)
	assert.False(t, result.Reply.IsInternal)

	require.Len(t, deps.history.Saved, 1)
	assert.Equal(t, complaint.FieldStatus, deps.history.Saved[0].Field())
	assert.Equal(t, "responded", deps.history.Saved[0].NewValue())

	require.Len(t, deps.recorder.Recorded, 1)
	assert.Equal(t, constants.ActionComplaintReply, deps.recorder.Recorded[0].Action)

	require.Len(t, deps.publisher.Published, 1)
	assert.Equal(t, complaint.EventTypeComplaintReplied, deps.publisher.Published[0].GetEventType())
}

func TestReplyComplaintUseCase_Execute_ClosedStaysClosed(t *testing.T) {
	deps := newReplyDeps(t, vo.StatusClosed)
	uc := deps.build()

	result, err := uc.Execute(context.Background(), ReplyComplaintCommand{
		Actor:       employeeActor(7, 3),
		ComplaintID: 101,
		Body:        "Following up after closure.",
	})

	require.NoError(t, err)
	assert.Equal(t, "closed", result.Status)
	// no status change, so no history row
	assert.Empty(t, deps.history.Saved)
}

func TestReplyComplaintUseCase_Execute_RespondedStaysResponded(t *testing.T) {
	deps := newReplyDeps(t, vo.StatusResponded)
	uc := deps.build()

	result, err := uc.Execute(context.Background(), ReplyComplaintCommand{
		Actor:       employeeActor(7, 3),
		ComplaintID: 101,
		Body:        "One more detail from the ward.",
	})

	require.NoError(t, err)
	assert.Equal(t, "responded", result.Status)
	assert.Empty(t, deps.history.Saved)
}

func TestReplyComplaintUseCase_Execute_InternalNote(t *testing.T) {
	deps := newReplyDeps(t, vo.StatusOpen)
	var saved *complaint.Reply
	deps.replies.SaveFunc = func(ctx context.Context, reply *complaint.Reply) error {
		saved = reply
		return reply.SetID(1)
	}
	uc := deps.build()

	_, err := uc.Execute(context.Background(), ReplyComplaintCommand{
		Actor:       employeeActor(7, 3),
		ComplaintID: 101,
		Body:        "Patient called twice before, see earlier case.",
		IsInternal:  true,
	})

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.True(t, saved.IsInternal())
}

func TestReplyComplaintUseCase_Execute_AssigneeCanReply(t *testing.T) {
	deps := newReplyDeps(t, vo.StatusInProgress)
	assignee := uint(8)
	deps.assignments.GetCurrentAssigneeFunc = func(ctx context.Context, complaintID uint) (*uint, error) {
		return &assignee, nil
	}
	uc := deps.build()

	// actor 8 is not the creator but is the current assignee
	_, err := uc.Execute(context.Background(), ReplyComplaintCommand{
		Actor:       employeeActor(8, 3),
		ComplaintID: 101,
		Body:        "Taking this one.",
	})

	assert.NoError(t, err)
}

func TestReplyComplaintUseCase_Execute_UninvolvedEmployeeDenied(t *testing.T) {
	deps := newReplyDeps(t, vo.StatusOpen)
	uc := deps.build()

	_, err := uc.Execute(context.Background(), ReplyComplaintCommand{
		Actor:       employeeActor(99, 3),
		ComplaintID: 101,
		Body:        "Let me weigh in.",
	})

	assert.True(t, sharederrors.IsNotFoundError(err))
}

func TestReplyComplaintUseCase_Execute_EmptyBody(t *testing.T) {
	deps := newReplyDeps(t, vo.StatusOpen)
	uc := deps.build()

	_, err := uc.Execute(context.Background(), ReplyComplaintCommand{
		Actor:       employeeActor(7, 3),
		ComplaintID: 101,
		Body:        "",
	})

	assert.True(t, sharederrors.IsValidationError(err))
}

func TestReplyComplaintUseCase_Execute_PermissionDenied(t *testing.T) {
	deps := newReplyDeps(t, vo.StatusOpen)
	deps.resolver.RequireFunc = func(ctx context.Context, actor authorization.Actor, code string) error {
		return sharederrors.NewForbiddenError("permission denied", code)
	}
	uc := deps.build()

	_, err := uc.Execute(context.Background(), ReplyComplaintCommand{
		Actor:       employeeActor(7, 3),
		ComplaintID: 101,
		Body:        "Hello",
	})

	assert.True(t, sharederrors.IsForbiddenError(err))
}
