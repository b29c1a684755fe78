package mappers

import (
	"fmt"

	"github.com/assistitk12/assistitk12/internal/domain/ticket"
	vo "github.com/assistitk12/assistitk12/internal/domain/ticket/valueobjects"
	"github.com/assistitk12/assistitk12/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between Ticket domain entities and persistence models.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)
	CommentToModel(c *ticket.Comment) *models.CommentModel
	CommentToDomain(model *models.CommentModel) (*ticket.Comment, error)
	AttachmentToModel(a *ticket.Attachment) *models.AttachmentModel
	AttachmentToDomain(model *models.AttachmentModel) (*ticket.Attachment, error)
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	return &models.TicketModel{
		ID:           t.ID(),
		TitleID:      t.TitleID(),
		UserID:       t.CreatorID(),
		SiteID:       t.SiteID(),
		AssignedToID: t.AssigneeID(),
		Status:       t.Status().String(),
		Escalated:    t.IsEscalated(),
		CreatedAt:    t.CreatedAt(),
		UpdatedAt:    t.UpdatedAt(),
	}
}

// ToDomain converts only the ticket row. Comments and attachments are loaded
// by their own repositories.
func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	status, err := vo.ParseTicketStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("invalid stored status for ticket %d: %w", model.ID, err)
	}
	return ticket.ReconstructTicket(
		model.ID,
		model.TitleID,
		model.UserID,
		model.SiteID,
		model.AssignedToID,
		status,
		model.Escalated,
		model.CreatedAt.UTC(),
		model.UpdatedAt.UTC(),
	)
}

func (m *TicketMapperImpl) CommentToModel(c *ticket.Comment) *models.CommentModel {
	return &models.CommentModel{
		ID:        c.ID(),
		TicketID:  c.TicketID(),
		UserID:    c.UserID(),
		Text:      c.Text(),
		CreatedAt: c.CreatedAt(),
	}
}

func (m *TicketMapperImpl) CommentToDomain(model *models.CommentModel) (*ticket.Comment, error) {
	return ticket.ReconstructComment(model.ID, model.TicketID, model.UserID, model.Text, model.CreatedAt.UTC())
}

func (m *TicketMapperImpl) AttachmentToModel(a *ticket.Attachment) *models.AttachmentModel {
	return &models.AttachmentModel{
		ID:           a.ID(),
		TicketID:     a.TicketID(),
		UserID:       a.UploaderID(),
		Filename:     a.Filename(),
		OriginalName: a.OriginalName(),
		ContentType:  a.ContentType(),
		Size:         a.Size(),
		UploadedAt:   a.UploadedAt(),
	}
}

func (m *TicketMapperImpl) AttachmentToDomain(model *models.AttachmentModel) (*ticket.Attachment, error) {
	return ticket.ReconstructAttachment(
		model.ID, model.TicketID, model.UserID,
		model.Filename, model.OriginalName, model.ContentType,
		model.Size,
		model.UploadedAt.UTC(),
	)
}
