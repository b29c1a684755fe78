package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/assistitk12/assistitk12/internal/domain/ticket"
	"github.com/assistitk12/assistitk12/internal/infrastructure/persistence/mappers"
	"github.com/assistitk12/assistitk12/internal/infrastructure/persistence/models"
	"github.com/assistitk12/assistitk12/internal/shared/db"
)

type CommentRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db, mapper: mappers.NewTicketMapper()}
}

func (r *CommentRepository) Create(ctx context.Context, c *ticket.Comment) error {
	model := r.mapper.CommentToModel(c)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save comment: %w", err)
	}
	return c.SetID(model.ID)
}

// ListByTicket returns comments oldest first.
func (r *CommentRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Comment, error) {
	var list []models.CommentModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC, id ASC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}

	comments := make([]*ticket.Comment, len(list))
	for i := range list {
		c, err := r.mapper.CommentToDomain(&list[i])
		if err != nil {
			return nil, err
		}
		comments[i] = c
	}
	return comments, nil
}

func (r *CommentRepository) DeleteByTicket(ctx context.Context, ticketID uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Where("ticket_id = ?", ticketID).Delete(&models.CommentModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}
	return nil
}

type AttachmentRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{db: db, mapper: mappers.NewTicketMapper()}
}

func (r *AttachmentRepository) Create(ctx context.Context, a *ticket.Attachment) error {
	model := r.mapper.AttachmentToModel(a)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save attachment: %w", err)
	}
	return a.SetID(model.ID)
}

func (r *AttachmentRepository) GetByID(ctx context.Context, id uint) (*ticket.Attachment, error) {
	var model models.AttachmentModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find attachment: %w", err)
	}
	return r.mapper.AttachmentToDomain(&model)
}

func (r *AttachmentRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Attachment, error) {
	var list []models.AttachmentModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("ticket_id = ?", ticketID).
		Order("uploaded_at ASC, id ASC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to load attachments: %w", err)
	}

	out := make([]*ticket.Attachment, len(list))
	for i := range list {
		a, err := r.mapper.AttachmentToDomain(&list[i])
		if err != nil {
			return nil, err
		}
		out[i] = a
	}
	return out, nil
}

func (r *AttachmentRepository) Delete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.AttachmentModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}
	return nil
}

func (r *AttachmentRepository) DeleteByTicket(ctx context.Context, ticketID uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Where("ticket_id = ?", ticketID).Delete(&models.AttachmentModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete attachments: %w", err)
	}
	return nil
}

func (r *AttachmentRepository) Filenames(ctx context.Context) ([]string, error) {
	var names []string
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.AttachmentModel{}).Pluck("filename", &names).Error; err != nil {
		return nil, fmt.Errorf("failed to list attachment filenames: %w", err)
	}
	return names, nil
}
