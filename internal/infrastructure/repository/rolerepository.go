package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/assistitk12/assistitk12/internal/domain/directory"
	"github.com/assistitk12/assistitk12/internal/infrastructure/persistence/mappers"
	"github.com/assistitk12/assistitk12/internal/infrastructure/persistence/models"
	"github.com/assistitk12/assistitk12/internal/shared/db"
)

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// Create keeps a preset id, which the seed uses for the reserved roles.
func (r *RoleRepository) Create(ctx context.Context, role *directory.Role) error {
	model := mappers.RoleToModel(role)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create role: %w", err)
	}
	if role.ID() != 0 {
		return nil
	}
	return role.SetID(model.ID)
}

func (r *RoleRepository) Update(ctx context.Context, role *directory.Role) error {
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.RoleModel{}).
		Where("id = ?", role.ID()).
		Update("name", role.Name()).Error; err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	return nil
}

func (r *RoleRepository) Delete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.RoleModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}
	return nil
}

func (r *RoleRepository) GetByID(ctx context.Context, id uint) (*directory.Role, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *RoleRepository) GetByName(ctx context.Context, name string) (*directory.Role, error) {
	return r.first(ctx, "LOWER(name) = LOWER(?)", name)
}

func (r *RoleRepository) first(ctx context.Context, query string, args ...any) (*directory.Role, error) {
	var model models.RoleModel
	if err := db.GetTxFromContext(ctx, r.db).Where(query, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	return mappers.RoleToDomain(&model), nil
}

func (r *RoleRepository) List(ctx context.Context) ([]*directory.Role, error) {
	var list []models.RoleModel
	if err := db.GetTxFromContext(ctx, r.db).Order("id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	roles := make([]*directory.Role, len(list))
	for i := range list {
		roles[i] = mappers.RoleToDomain(&list[i])
	}
	return roles, nil
}
