package mappers

import (
	"time"

	"caretrack/internal/domain/permission"
	"caretrack/internal/infrastructure/persistence/models"
	"caretrack/internal/shared/authorization"
)

// PermissionMapper handles the conversion between permission domain entities
// and persistence models.
type PermissionMapper interface {
	ToModel(p *permission.Permission) *models.PermissionModel
	ToDomain(model *models.PermissionModel) (*permission.Permission, error)

	RoleGrantToModel(g *permission.RoleGrant) *models.RolePermissionModel
	RoleGrantToDomain(model *models.RolePermissionModel) *permission.RoleGrant

	UserGrantToModel(g *permission.UserGrant) *models.UserPermissionModel
	UserGrantToDomain(model *models.UserPermissionModel) *permission.UserGrant
}

type PermissionMapperImpl struct{}

func NewPermissionMapper() PermissionMapper {
	return &PermissionMapperImpl{}
}

func (m *PermissionMapperImpl) ToModel(p *permission.Permission) *models.PermissionModel {
	return &models.PermissionModel{
		ID:          p.ID(),
		Code:        p.Code(),
		Description: p.Description(),
		CreatedAt:   p.CreatedAt().UnixMilli(),
		UpdatedAt:   p.UpdatedAt().UnixMilli(),
	}
}

func (m *PermissionMapperImpl) ToDomain(model *models.PermissionModel) (*permission.Permission, error) {
	return permission.ReconstructPermission(
		model.ID,
		model.Code,
		model.Description,
		permConvertMillisToTime(model.CreatedAt),
		permConvertMillisToTime(model.UpdatedAt),
	)
}

func (m *PermissionMapperImpl) RoleGrantToModel(g *permission.RoleGrant) *models.RolePermissionModel {
	return &models.RolePermissionModel{
		ID:             g.ID(),
		Role:           g.Role().String(),
		PermissionCode: g.PermissionCode(),
		Allowed:        g.Allowed(),
		CreatedAt:      g.CreatedAt().UnixMilli(),
		UpdatedAt:      g.UpdatedAt().UnixMilli(),
	}
}

func (m *PermissionMapperImpl) RoleGrantToDomain(model *models.RolePermissionModel) *permission.RoleGrant {
	return permission.ReconstructRoleGrant(
		model.ID,
		authorization.UserRole(model.Role),
		model.PermissionCode,
		model.Allowed,
		permConvertMillisToTime(model.CreatedAt),
		permConvertMillisToTime(model.UpdatedAt),
	)
}

func (m *PermissionMapperImpl) UserGrantToModel(g *permission.UserGrant) *models.UserPermissionModel {
	return &models.UserPermissionModel{
		ID:             g.ID(),
		UserID:         g.UserID(),
		PermissionCode: g.PermissionCode(),
		Allowed:        g.Allowed(),
		CreatedAt:      g.CreatedAt().UnixMilli(),
		UpdatedAt:      g.UpdatedAt().UnixMilli(),
	}
}

func (m *PermissionMapperImpl) UserGrantToDomain(model *models.UserPermissionModel) *permission.UserGrant {
	return permission.ReconstructUserGrant(
		model.ID,
		model.UserID,
		model.PermissionCode,
		model.Allowed,
		permConvertMillisToTime(model.CreatedAt),
		permConvertMillisToTime(model.UpdatedAt),
	)
}

func permConvertMillisToTime(millis int64) time.Time {
	return time.Unix(0, millis*int64(time.Millisecond))
}
