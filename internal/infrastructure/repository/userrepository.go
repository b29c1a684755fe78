package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/assistitk12/assistitk12/internal/domain/directory"
	vo "github.com/assistitk12/assistitk12/internal/domain/directory/valueobjects"
	"github.com/assistitk12/assistitk12/internal/infrastructure/persistence/mappers"
	"github.com/assistitk12/assistitk12/internal/infrastructure/persistence/models"
	"github.com/assistitk12/assistitk12/internal/shared/db"
)

// UserRepository implements directory.UserRepository on gorm.
type UserRepository struct {
	db     *gorm.DB
	mapper mappers.UserMapper
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		db:     db,
		mapper: mappers.NewUserMapper(),
	}
}

func (r *UserRepository) Create(ctx context.Context, u *directory.User) error {
	model := r.mapper.ToModel(u)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return u.SetID(model.ID)
}

func (r *UserRepository) Update(ctx context.Context, u *directory.User) error {
	model := r.mapper.ToModel(u)
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.UserModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.UserModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*directory.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*directory.User, error) {
	return r.first(ctx, "email = ?", vo.NormalizeEmail(email))
}

func (r *UserRepository) first(ctx context.Context, query string, args ...any) (*directory.User, error) {
	var model models.UserModel
	err := db.GetTxFromContext(ctx, r.db).Where(query, args...).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *UserRepository) GetByIDs(ctx context.Context, ids []uint) ([]*directory.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []models.UserModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to get users by ids: %w", err)
	}
	return r.mapper.ToEntities(list)
}

func (r *UserRepository) GetByEmails(ctx context.Context, emails []string) ([]*directory.User, error) {
	if len(emails) == 0 {
		return nil, nil
	}
	normalized := make([]string, len(emails))
	for i, e := range emails {
		normalized[i] = vo.NormalizeEmail(e)
	}
	var list []models.UserModel
	if err := db.GetTxFromContext(ctx, r.db).Where("email IN ?", normalized).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to get users by emails: %w", err)
	}
	return r.mapper.ToEntities(list)
}

// List orders users by first name, then last name.
func (r *UserRepository) List(ctx context.Context, filter directory.UserFilter) ([]*directory.User, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).
		Model(&models.UserModel{}).
		Scopes(db.ContainsFold(filter.Search, "first_name", "last_name", "email"))

	if filter.SiteID != nil {
		query = query.Where("site_id = ?", *filter.SiteID)
	}
	if filter.RoleID != nil {
		query = query.Where("role_id = ?", *filter.RoleID)
	}
	if filter.RoleIDs != nil {
		query = query.Where("role_id IN ?", filter.RoleIDs)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var list []models.UserModel
	if err := query.
		Order("first_name ASC, last_name ASC, id ASC").
		Scopes(db.Paginate(filter.Page, filter.PageSize)).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	users, err := r.mapper.ToEntities(list)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepository) FirstBySiteAndRole(ctx context.Context, siteID, roleID uint) (*directory.User, error) {
	var model models.UserModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("site_id = ? AND role_id = ?", siteID, roleID).
		Order("id ASC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by site and role: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *UserRepository) CountByRole(ctx context.Context, roleID uint) (int64, error) {
	return r.count(ctx, "role_id = ?", roleID)
}

func (r *UserRepository) CountBySite(ctx context.Context, siteID uint) (int64, error) {
	return r.count(ctx, "site_id = ?", siteID)
}

func (r *UserRepository) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.UserModel{}).Where(query, args...).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}
