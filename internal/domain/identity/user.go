package identity

import (
	"fmt"
	"net/mail"
	"time"

	"caretrack/internal/shared/authorization"
	"caretrack/internal/shared/biztime"
)

// PasswordHasher abstracts the hashing scheme so the aggregate never sees
// bcrypt directly.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hashed, plain string) error
}

// User is a staff account. Department admins and employees belong to exactly
// one department; super admins belong to none and bypass permission checks
// entirely.
type User struct {
	id           uint
	email        string
	name         string
	passwordHash string
	role         authorization.UserRole
	departmentID *uint
	isActive     bool
	version      int
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(email, name string, role authorization.UserRole, departmentID *uint) (*User, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email address: %s", email)
	}
	if len(name) == 0 {
		return nil, fmt.Errorf("name is required")
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("name exceeds maximum length of 100 characters")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	if role.IsSuperAdmin() && departmentID != nil {
		return nil, fmt.Errorf("super admins do not belong to a department")
	}
	if !role.IsSuperAdmin() && departmentID == nil {
		return nil, fmt.Errorf("role %s requires a department", role)
	}

	now := biztime.NowUTC()
	return &User{
		email:        email,
		name:         name,
		role:         role,
		departmentID: departmentID,
		isActive:     true,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructUser(
	id uint,
	email, name, passwordHash string,
	role authorization.UserRole,
	departmentID *uint,
	isActive bool,
	version int,
	createdAt, updatedAt time.Time,
) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if len(email) == 0 {
		return nil, fmt.Errorf("email is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	return &User{
		id:           id,
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		role:         role,
		departmentID: departmentID,
		isActive:     isActive,
		version:      version,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (u *User) ID() uint {
	return u.id
}

func (u *User) Email() string {
	return u.email
}

func (u *User) Name() string {
	return u.name
}

func (u *User) PasswordHash() string {
	return u.passwordHash
}

func (u *User) Role() authorization.UserRole {
	return u.role
}

func (u *User) DepartmentID() *uint {
	return u.departmentID
}

func (u *User) IsActive() bool {
	return u.isActive
}

func (u *User) Version() int {
	return u.version
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

func (u *User) SetPassword(plain string, hasher PasswordHasher) error {
	if len(plain) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if len(plain) > 72 {
		return fmt.Errorf("password exceeds maximum length of 72 characters")
	}

	hash, err := hasher.Hash(plain)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	u.passwordHash = hash
	u.touch()
	return nil
}

func (u *User) VerifyPassword(plain string, hasher PasswordHasher) error {
	if len(u.passwordHash) == 0 {
		return fmt.Errorf("user has no password set")
	}
	return hasher.Compare(u.passwordHash, plain)
}

func (u *User) Activate() {
	if u.isActive {
		return
	}
	u.isActive = true
	u.touch()
}

func (u *User) Deactivate() {
	if !u.isActive {
		return
	}
	u.isActive = false
	u.touch()
}

// ChangeRole moves the user to a new role. The department constraint is the
// same as at creation time.
func (u *User) ChangeRole(role authorization.UserRole, departmentID *uint) error {
	if !role.IsValid() {
		return fmt.Errorf("invalid role: %s", role)
	}
	if role.IsSuperAdmin() && departmentID != nil {
		return fmt.Errorf("super admins do not belong to a department")
	}
	if !role.IsSuperAdmin() && departmentID == nil {
		return fmt.Errorf("role %s requires a department", role)
	}

	u.role = role
	u.departmentID = departmentID
	u.touch()
	return nil
}

func (u *User) touch() {
	u.updatedAt = biztime.NowUTC()
	u.version++
}
