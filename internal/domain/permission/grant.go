package permission

import (
	"fmt"
	"time"

	"caretrack/internal/shared/authorization"
	"caretrack/internal/shared/biztime"
)

// RoleGrant is a role-level default: every user holding the role inherits it
// unless a user-level override says otherwise. Allowed false is an explicit
// deny, distinct from the row being absent.
type RoleGrant struct {
	id             uint
	role           authorization.UserRole
	permissionCode string
	allowed        bool
	createdAt      time.Time
	updatedAt      time.Time
}

func NewRoleGrant(role authorization.UserRole, permissionCode string, allowed bool) (*RoleGrant, error) {
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	if err := ValidateCode(permissionCode); err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	return &RoleGrant{
		role:           role,
		permissionCode: permissionCode,
		allowed:        allowed,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructRoleGrant(id uint, role authorization.UserRole, permissionCode string, allowed bool, createdAt, updatedAt time.Time) *RoleGrant {
	return &RoleGrant{
		id:             id,
		role:           role,
		permissionCode: permissionCode,
		allowed:        allowed,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (g *RoleGrant) ID() uint {
	return g.id
}

func (g *RoleGrant) Role() authorization.UserRole {
	return g.role
}

func (g *RoleGrant) PermissionCode() string {
	return g.permissionCode
}

func (g *RoleGrant) Allowed() bool {
	return g.allowed
}

func (g *RoleGrant) CreatedAt() time.Time {
	return g.createdAt
}

func (g *RoleGrant) UpdatedAt() time.Time {
	return g.updatedAt
}

// UserGrant is a per-user override. When present it always beats the role
// default, in both directions.
type UserGrant struct {
	id             uint
	userID         uint
	permissionCode string
	allowed        bool
	createdAt      time.Time
	updatedAt      time.Time
}

func NewUserGrant(userID uint, permissionCode string, allowed bool) (*UserGrant, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if err := ValidateCode(permissionCode); err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	return &UserGrant{
		userID:         userID,
		permissionCode: permissionCode,
		allowed:        allowed,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructUserGrant(id, userID uint, permissionCode string, allowed bool, createdAt, updatedAt time.Time) *UserGrant {
	return &UserGrant{
		id:             id,
		userID:         userID,
		permissionCode: permissionCode,
		allowed:        allowed,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (g *UserGrant) ID() uint {
	return g.id
}

func (g *UserGrant) UserID() uint {
	return g.userID
}

func (g *UserGrant) PermissionCode() string {
	return g.permissionCode
}

func (g *UserGrant) Allowed() bool {
	return g.allowed
}

func (g *UserGrant) CreatedAt() time.Time {
	return g.createdAt
}

func (g *UserGrant) UpdatedAt() time.Time {
	return g.updatedAt
}
