package permission

import (
	"fmt"
	"strings"
	"time"

	"caretrack/internal/shared/biztime"
)

// Permission is one entry in the permission catalog. Codes follow the
// "resource.action" convention, e.g. "complaint.assign".
type Permission struct {
	id          uint
	code        string
	description string
	createdAt   time.Time
	updatedAt   time.Time
}

func NewPermission(code, description string) (*Permission, error) {
	if err := ValidateCode(code); err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	return &Permission{
		code:        code,
		description: description,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructPermission(id uint, code, description string, createdAt, updatedAt time.Time) (*Permission, error) {
	if id == 0 {
		return nil, fmt.Errorf("permission ID cannot be zero")
	}
	if err := ValidateCode(code); err != nil {
		return nil, err
	}

	return &Permission{
		id:          id,
		code:        code,
		description: description,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

// ValidateCode checks the "resource.action" shape without consulting the
// catalog. Whether a code actually exists is a repository question.
func ValidateCode(code string) error {
	if len(code) == 0 {
		return fmt.Errorf("permission code is required")
	}
	if len(code) > 100 {
		return fmt.Errorf("permission code exceeds maximum length of 100 characters")
	}
	parts := strings.Split(code, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return fmt.Errorf("permission code must have the form resource.action: %s", code)
	}
	return nil
}

func (p *Permission) ID() uint {
	return p.id
}

func (p *Permission) Code() string {
	return p.code
}

func (p *Permission) Description() string {
	return p.description
}

func (p *Permission) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Permission) UpdatedAt() time.Time {
	return p.updatedAt
}

func (p *Permission) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("permission ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("permission ID cannot be zero")
	}
	p.id = id
	return nil
}

func (p *Permission) UpdateDescription(description string) {
	p.description = description
	p.updatedAt = biztime.NowUTC()
}
