package mappers

import (
	"fmt"

	"github.com/assistitk12/assistitk12/internal/domain/directory"
	vo "github.com/assistitk12/assistitk12/internal/domain/directory/valueobjects"
	"github.com/assistitk12/assistitk12/internal/infrastructure/persistence/models"
)

// UserMapper handles the conversion between domain entities and persistence models
type UserMapper interface {
	ToEntity(model *models.UserModel) (*directory.User, error)
	ToModel(entity *directory.User) *models.UserModel
	ToEntities(models []models.UserModel) ([]*directory.User, error)
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToEntity(model *models.UserModel) (*directory.User, error) {
	if model == nil {
		return nil, nil
	}

	status, err := vo.ParseUserStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("invalid stored status for user %d: %w", model.ID, err)
	}

	return directory.ReconstructUser(model.ID, directory.UserProfile{
		FirstName:  model.FirstName,
		MiddleName: model.MiddleName,
		LastName:   model.LastName,
		Email:      model.Email,
		RmNum:      model.RmNum,
		RoleID:     model.RoleID,
		SiteID:     model.SiteID,
		Status:     status,
	}, model.PasswordHash, model.MustResetPassword, model.CreatedAt, model.UpdatedAt)
}

func (m *UserMapperImpl) ToModel(entity *directory.User) *models.UserModel {
	if entity == nil {
		return nil
	}
	return &models.UserModel{
		ID:                entity.ID(),
		FirstName:         entity.FirstName(),
		MiddleName:        entity.MiddleName(),
		LastName:          entity.LastName(),
		Email:             entity.Email(),
		PasswordHash:      entity.PasswordHash(),
		Status:            entity.Status().String(),
		RmNum:             entity.RmNum(),
		RoleID:            entity.RoleID(),
		SiteID:            entity.SiteID(),
		MustResetPassword: entity.MustResetPassword(),
		CreatedAt:         entity.CreatedAt(),
		UpdatedAt:         entity.UpdatedAt(),
	}
}

func (m *UserMapperImpl) ToEntities(list []models.UserModel) ([]*directory.User, error) {
	users := make([]*directory.User, 0, len(list))
	for i := range list {
		u, err := m.ToEntity(&list[i])
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}
