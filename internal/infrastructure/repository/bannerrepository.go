package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/assistitk12/assistitk12/internal/domain/banner"
	"github.com/assistitk12/assistitk12/internal/domain/organization"
	"github.com/assistitk12/assistitk12/internal/infrastructure/persistence/mappers"
	"github.com/assistitk12/assistitk12/internal/infrastructure/persistence/models"
	"github.com/assistitk12/assistitk12/internal/shared/db"
)

type BannerRepository struct {
	db *gorm.DB
}

func NewBannerRepository(db *gorm.DB) *BannerRepository {
	return &BannerRepository{db: db}
}

func (r *BannerRepository) Create(ctx context.Context, b *banner.Banner) error {
	model := mappers.BannerToModel(b)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create banner: %w", err)
	}
	return b.SetID(model.ID)
}

func (r *BannerRepository) Update(ctx context.Context, b *banner.Banner) error {
	model := mappers.BannerToModel(b)
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.BannerModel{}).
		Where("id = ?", model.ID).
		Select("name", "content", "status", "updated_at").
		Updates(model).Error; err != nil {
		return fmt.Errorf("failed to update banner: %w", err)
	}
	return nil
}

func (r *BannerRepository) Delete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.BannerModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete banner: %w", err)
	}
	return nil
}

func (r *BannerRepository) GetByID(ctx context.Context, id uint) (*banner.Banner, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *BannerRepository) GetByName(ctx context.Context, name string) (*banner.Banner, error) {
	return r.first(ctx, "name = ?", name)
}

func (r *BannerRepository) first(ctx context.Context, query string, args ...any) (*banner.Banner, error) {
	var model models.BannerModel
	if err := db.GetTxFromContext(ctx, r.db).Where(query, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get banner: %w", err)
	}
	return mappers.BannerToDomain(&model)
}

func (r *BannerRepository) List(ctx context.Context, page, pageSize int) ([]*banner.Banner, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.BannerModel{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count banners: %w", err)
	}

	var list []models.BannerModel
	if err := query.Order("created_at DESC, id DESC").Scopes(db.Paginate(page, pageSize)).Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list banners: %w", err)
	}
	banners, err := bannersToDomain(list)
	if err != nil {
		return nil, 0, err
	}
	return banners, total, nil
}

func (r *BannerRepository) ListActive(ctx context.Context) ([]*banner.Banner, error) {
	var list []models.BannerModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("status = ?", string(banner.StatusActive)).
		Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list active banners: %w", err)
	}
	return bannersToDomain(list)
}

// ListActiveForUpdate locks the whole table's rows rather than only the
// active ones, so two activations serialize even when none is active yet.
func (r *BannerRepository) ListActiveForUpdate(ctx context.Context) ([]*banner.Banner, error) {
	var list []models.BannerModel
	if err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to lock banners: %w", err)
	}
	active := list[:0]
	for _, m := range list {
		if m.Status == string(banner.StatusActive) {
			active = append(active, m)
		}
	}
	return bannersToDomain(active)
}

func bannersToDomain(list []models.BannerModel) ([]*banner.Banner, error) {
	out := make([]*banner.Banner, len(list))
	for i := range list {
		b, err := mappers.BannerToDomain(&list[i])
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

type OrganizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

func (r *OrganizationRepository) Get(ctx context.Context) (*organization.Organization, error) {
	var model models.OrganizationModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, organization.SingletonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	return mappers.OrganizationToDomain(&model), nil
}

// Save upserts the singleton row.
func (r *OrganizationRepository) Save(ctx context.Context, o *organization.Organization) error {
	if err := db.GetTxFromContext(ctx, r.db).Save(mappers.OrganizationToModel(o)).Error; err != nil {
		return fmt.Errorf("failed to save organization: %w", err)
	}
	return nil
}
