package complaint

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignment(t *testing.T) {
	a, err := NewAssignment(1, 20, 10, "ward nurse on duty")
	require.NoError(t, err)
	assert.Equal(t, uint(1), a.ComplaintID())
	assert.Equal(t, uint(20), a.AssigneeID())
	assert.Equal(t, uint(10), a.AssignedByID())
	assert.Equal(t, "ward nurse on duty", a.Note())
	assert.False(t, a.CreatedAt().IsZero())

	_, err = NewAssignment(0, 20, 10, "")
	assert.ErrorContains(t, err, "complaint ID is required")
	_, err = NewAssignment(1, 0, 10, "")
	assert.ErrorContains(t, err, "assignee ID is required")
	_, err = NewAssignment(1, 20, 0, "")
	assert.ErrorContains(t, err, "assigner ID is required")
	_, err = NewAssignment(1, 20, 10, strings.Repeat("n", 1001))
	assert.ErrorContains(t, err, "maximum length")
}

func TestNewHistoryEntry(t *testing.T) {
	old := "open"

	h, err := NewHistoryEntry(1, 10, FieldStatus, &old, "in_progress")
	require.NoError(t, err)
	assert.Equal(t, FieldStatus, h.Field())
	require.NotNil(t, h.OldValue())
	assert.Equal(t, "open", *h.OldValue())
	assert.Equal(t, "in_progress", h.NewValue())

	// First assignment has no previous value.
	h, err = NewHistoryEntry(1, 10, FieldAssignment, nil, "20")
	require.NoError(t, err)
	assert.Nil(t, h.OldValue())

	_, err = NewHistoryEntry(1, 10, "Priority", nil, "high")
	assert.ErrorContains(t, err, "unknown history field")
	_, err = NewHistoryEntry(1, 10, FieldStatus, nil, "")
	assert.ErrorContains(t, err, "new value is required")
	_, err = NewHistoryEntry(0, 10, FieldStatus, nil, "open")
	assert.ErrorContains(t, err, "complaint ID is required")
	_, err = NewHistoryEntry(1, 0, FieldStatus, nil, "open")
	assert.ErrorContains(t, err, "actor ID is required")
}

func TestNewReply(t *testing.T) {
	r, err := NewReply(1, 20, "We have spoken with the kitchen staff.", false)
	require.NoError(t, err)
	assert.Equal(t, uint(1), r.ComplaintID())
	assert.Equal(t, uint(20), r.AuthorID())
	assert.False(t, r.IsInternal())

	r, err = NewReply(1, 20, "internal note", true)
	require.NoError(t, err)
	assert.True(t, r.IsInternal())

	_, err = NewReply(1, 20, "", false)
	assert.ErrorContains(t, err, "body is required")
	_, err = NewReply(1, 20, strings.Repeat("b", 5001), false)
	assert.ErrorContains(t, err, "maximum length")
	_, err = NewReply(0, 20, "b", false)
	assert.ErrorContains(t, err, "complaint ID is required")
	_, err = NewReply(1, 0, "b", false)
	assert.ErrorContains(t, err, "author ID is required")
}

func TestDefaultNumberGenerator(t *testing.T) {
	g := NewDefaultNumberGenerator()
	ctx := context.Background()

	first, err := g.Generate(ctx)
	require.NoError(t, err)
	second, err := g.Generate(ctx)
	require.NoError(t, err)

	assert.Regexp(t, `^C-\d{8}-\d{4}$`, first)
	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasSuffix(first, "-0001"))
	assert.True(t, strings.HasSuffix(second, "-0002"))
}
