package mappers

import (
	"time"

	"caretrack/internal/domain/identity"
	"caretrack/internal/infrastructure/persistence/models"
	"caretrack/internal/shared/authorization"
)

// UserMapper handles the conversion between user domain entities and
// persistence models.
type UserMapper interface {
	ToModel(u *identity.User) *models.UserModel
	ToDomain(model *models.UserModel) (*identity.User, error)
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToModel(u *identity.User) *models.UserModel {
	return &models.UserModel{
		ID:           u.ID(),
		Email:        u.Email(),
		Name:         u.Name(),
		PasswordHash: u.PasswordHash(),
		Role:         u.Role().String(),
		DepartmentID: u.DepartmentID(),
		IsActive:     u.IsActive(),
		Version:      u.Version(),
		CreatedAt:    u.CreatedAt().UnixMilli(),
		UpdatedAt:    u.UpdatedAt().UnixMilli(),
	}
}

func (m *UserMapperImpl) ToDomain(model *models.UserModel) (*identity.User, error) {
	return identity.ReconstructUser(
		model.ID,
		model.Email,
		model.Name,
		model.PasswordHash,
		authorization.UserRole(model.Role),
		model.DepartmentID,
		model.IsActive,
		model.Version,
		userConvertMillisToTime(model.CreatedAt),
		userConvertMillisToTime(model.UpdatedAt),
	)
}

func userConvertMillisToTime(millis int64) time.Time {
	return time.Unix(0, millis*int64(time.Millisecond))
}
