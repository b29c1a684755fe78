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

type TitleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) *TitleRepository {
	return &TitleRepository{db: db}
}

func (r *TitleRepository) Create(ctx context.Context, t *directory.Title) error {
	model := mappers.TitleToModel(t)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create title: %w", err)
	}
	return t.SetID(model.ID)
}

func (r *TitleRepository) Update(ctx context.Context, t *directory.Title) error {
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.TitleModel{}).
		Where("id = ?", t.ID()).
		Update("name", t.Name()).Error; err != nil {
		return fmt.Errorf("failed to update title: %w", err)
	}
	return nil
}

func (r *TitleRepository) Delete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.TitleModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete title: %w", err)
	}
	return nil
}

func (r *TitleRepository) GetByID(ctx context.Context, id uint) (*directory.Title, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *TitleRepository) GetByName(ctx context.Context, name string) (*directory.Title, error) {
	return r.first(ctx, "LOWER(name) = LOWER(?)", name)
}

func (r *TitleRepository) first(ctx context.Context, query string, args ...any) (*directory.Title, error) {
	var model models.TitleModel
	if err := db.GetTxFromContext(ctx, r.db).Where(query, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get title: %w", err)
	}
	return mappers.TitleToDomain(&model), nil
}

func (r *TitleRepository) GetByIDs(ctx context.Context, ids []uint) ([]*directory.Title, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []models.TitleModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to get titles by ids: %w", err)
	}
	return titlesToDomain(list), nil
}

func (r *TitleRepository) List(ctx context.Context) ([]*directory.Title, error) {
	var list []models.TitleModel
	if err := db.GetTxFromContext(ctx, r.db).Order("name ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list titles: %w", err)
	}
	return titlesToDomain(list), nil
}

func titlesToDomain(list []models.TitleModel) []*directory.Title {
	out := make([]*directory.Title, len(list))
	for i := range list {
		out[i] = mappers.TitleToDomain(&list[i])
	}
	return out
}

type BulkUploadLogRepository struct {
	db *gorm.DB
}

func NewBulkUploadLogRepository(db *gorm.DB) *BulkUploadLogRepository {
	return &BulkUploadLogRepository{db: db}
}

func (r *BulkUploadLogRepository) Create(ctx context.Context, l *directory.BulkUploadLog) error {
	model := mappers.BulkUploadLogToModel(l)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create bulk upload log: %w", err)
	}
	l.ID = model.ID
	return nil
}

// List returns the newest uploads first.
func (r *BulkUploadLogRepository) List(ctx context.Context, page, pageSize int) ([]*directory.BulkUploadLog, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.BulkUploadLogModel{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bulk upload logs: %w", err)
	}

	var list []models.BulkUploadLogModel
	if err := query.Order("uploaded_at DESC, id DESC").Scopes(db.Paginate(page, pageSize)).Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list bulk upload logs: %w", err)
	}
	logs := make([]*directory.BulkUploadLog, len(list))
	for i := range list {
		logs[i] = mappers.BulkUploadLogToDomain(&list[i])
	}
	return logs, total, nil
}
