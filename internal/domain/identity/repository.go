package identity

import (
	"context"

	"caretrack/internal/shared/authorization"
)

type UserRepository interface {
	Save(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	GetByID(ctx context.Context, userID uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, filter UserFilter) ([]*User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type UserFilter struct {
	Role         *authorization.UserRole
	DepartmentID *uint
	IsActive     *bool
	Search       string
	Page         int
	PageSize     int
}
