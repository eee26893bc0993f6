package complaint

import (
	"context"

	vo "caretrack/internal/domain/complaint/valueobjects"
	"caretrack/internal/shared/authorization"
)

type ComplaintRepository interface {
	Save(ctx context.Context, complaint *Complaint) error
	// Update persists the aggregate with an optimistic version check and
	// returns a conflict error when another writer got there first.
	Update(ctx context.Context, complaint *Complaint) error
	GetByID(ctx context.Context, complaintID uint) (*Complaint, error)
	GetByNumber(ctx context.Context, number string) (*Complaint, error)
	List(ctx context.Context, scope AccessScope, filters ComplaintFilter) ([]*Complaint, int64, error)
}

type ComplaintFilter struct {
	Status       *vo.ComplaintStatus
	Priority     *vo.Priority
	Source       *vo.Source
	DepartmentID *uint
	CreatorID    *uint
	AssigneeID   *uint
	Search       string
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}

type AssignmentRepository interface {
	Save(ctx context.Context, assignment *Assignment) error
	GetByComplaintID(ctx context.Context, complaintID uint) ([]*Assignment, error)
	// GetCurrentAssignee returns the assignee of the most recent assignment,
	// or nil when the complaint has never been assigned.
	GetCurrentAssignee(ctx context.Context, complaintID uint) (*uint, error)
}

type HistoryRepository interface {
	Save(ctx context.Context, entry *HistoryEntry) error
	GetByComplaintID(ctx context.Context, complaintID uint) ([]*HistoryEntry, error)
}

type ReplyRepository interface {
	Save(ctx context.Context, reply *Reply) error
	GetByComplaintID(ctx context.Context, complaintID uint, includeInternal bool) ([]*Reply, error)
}

// AccessScope is the single place visibility rules are expressed. Every
// list and read path goes through a scope instead of sprinkling role checks:
// super admins see everything, department admins see their department, and
// employees see complaints they created or are assigned to.
type AccessScope struct {
	Unrestricted bool
	DepartmentID *uint
	UserID       *uint
}

// NewAccessScope derives the visibility scope from the acting user's role.
// An unknown role yields the narrowest scope.
func NewAccessScope(role authorization.UserRole, userID uint, departmentID *uint) AccessScope {
	switch {
	case role.IsSuperAdmin():
		return AccessScope{Unrestricted: true}
	case role.IsDepartmentAdmin() && departmentID != nil:
		return AccessScope{DepartmentID: departmentID}
	default:
		uid := userID
		return AccessScope{UserID: &uid}
	}
}

// Allows reports whether a single complaint is visible under this scope.
// currentAssignee is the assignee of the latest assignment, nil when
// unassigned.
func (s AccessScope) Allows(c *Complaint, currentAssignee *uint) bool {
	if s.Unrestricted {
		return true
	}
	if s.DepartmentID != nil {
		return c.DepartmentID() == *s.DepartmentID
	}
	if s.UserID != nil {
		if c.CreatorID() == *s.UserID {
			return true
		}
		return currentAssignee != nil && *currentAssignee == *s.UserID
	}
	return false
}
