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

type SiteRepository struct {
	db *gorm.DB
}

func NewSiteRepository(db *gorm.DB) *SiteRepository {
	return &SiteRepository{db: db}
}

func (r *SiteRepository) Create(ctx context.Context, site *directory.Site) error {
	model := mappers.SiteToModel(site)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create site: %w", err)
	}
	if site.ID() != 0 {
		return nil
	}
	return site.SetID(model.ID)
}

func (r *SiteRepository) Update(ctx context.Context, site *directory.Site) error {
	model := mappers.SiteToModel(site)
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.SiteModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id").
		Updates(model).Error; err != nil {
		return fmt.Errorf("failed to update site: %w", err)
	}
	return nil
}

func (r *SiteRepository) Delete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.SiteModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete site: %w", err)
	}
	return nil
}

func (r *SiteRepository) GetByID(ctx context.Context, id uint) (*directory.Site, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *SiteRepository) GetByCDS(ctx context.Context, cds string) (*directory.Site, error) {
	return r.first(ctx, "cds = ?", cds)
}

func (r *SiteRepository) first(ctx context.Context, query string, args ...any) (*directory.Site, error) {
	var model models.SiteModel
	if err := db.GetTxFromContext(ctx, r.db).Where(query, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get site: %w", err)
	}
	return mappers.SiteToDomain(&model), nil
}

func (r *SiteRepository) GetByNames(ctx context.Context, names []string) (map[string]*directory.Site, error) {
	out := make(map[string]*directory.Site, len(names))
	if len(names) == 0 {
		return out, nil
	}
	var list []models.SiteModel
	if err := db.GetTxFromContext(ctx, r.db).Where("name IN ?", names).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to get sites by names: %w", err)
	}
	for i := range list {
		out[list[i].Name] = mappers.SiteToDomain(&list[i])
	}
	return out, nil
}

func (r *SiteRepository) List(ctx context.Context, filter directory.SiteFilter) ([]*directory.Site, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).
		Model(&models.SiteModel{}).
		Scopes(db.ContainsFold(filter.Search, "name", "cds", "code", "abbr"))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count sites: %w", err)
	}

	var list []models.SiteModel
	if err := query.Order("name ASC").Scopes(db.Paginate(filter.Page, filter.PageSize)).Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list sites: %w", err)
	}
	sites := make([]*directory.Site, len(list))
	for i := range list {
		sites[i] = mappers.SiteToDomain(&list[i])
	}
	return sites, total, nil
}
