package complaint

import (
	"fmt"
	"time"

	"caretrack/internal/shared/biztime"
)

// Reply is one message on a complaint's thread. Replies are append-only;
// internal replies are visible to staff only.
type Reply struct {
	id          uint
	complaintID uint
	authorID    uint
	body        string
	isInternal  bool
	createdAt   time.Time
}

func NewReply(complaintID, authorID uint, body string, isInternal bool) (*Reply, error) {
	if complaintID == 0 {
		return nil, fmt.Errorf("complaint ID is required")
	}
	if authorID == 0 {
		return nil, fmt.Errorf("author ID is required")
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("reply body is required")
	}
	if len(body) > 5000 {
		return nil, fmt.Errorf("reply body exceeds maximum length of 5000 characters")
	}

	return &Reply{
		complaintID: complaintID,
		authorID:    authorID,
		body:        body,
		isInternal:  isInternal,
		createdAt:   biztime.NowUTC(),
	}, nil
}

func ReconstructReply(id, complaintID, authorID uint, body string, isInternal bool, createdAt time.Time) *Reply {
	return &Reply{
		id:          id,
		complaintID: complaintID,
		authorID:    authorID,
		body:        body,
		isInternal:  isInternal,
		createdAt:   createdAt,
	}
}

func (r *Reply) ID() uint {
	return r.id
}

func (r *Reply) ComplaintID() uint {
	return r.complaintID
}

func (r *Reply) AuthorID() uint {
	return r.authorID
}

func (r *Reply) Body() string {
	return r.body
}

func (r *Reply) IsInternal() bool {
	return r.isInternal
}

func (r *Reply) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Reply) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("reply ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("reply ID cannot be zero")
	}
	r.id = id
	return nil
}
