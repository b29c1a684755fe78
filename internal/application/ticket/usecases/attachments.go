package usecases

import (
	"context"
	"fmt"
	"io"

	"github.com/assistitk12/assistitk12/internal/domain/access"
	"github.com/assistitk12/assistitk12/internal/domain/ticket"
	"github.com/assistitk12/assistitk12/internal/shared/db"
	"github.com/assistitk12/assistitk12/internal/shared/errors"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
)

type DeleteAttachmentCommand struct {
	Actor        access.Actor
	TicketID     uint
	AttachmentID uint
}

type DeleteAttachmentUseCase struct {
	ticketRepo     ticket.TicketRepository
	attachmentRepo ticket.AttachmentRepository
	files          FileStore
	txManager      db.Transactor
	logger         logger.Interface
}

func NewDeleteAttachmentUseCase(
	ticketRepo ticket.TicketRepository,
	attachmentRepo ticket.AttachmentRepository,
	files FileStore,
	txManager db.Transactor,
	logger logger.Interface,
) *DeleteAttachmentUseCase {
	return &DeleteAttachmentUseCase{
		ticketRepo:     ticketRepo,
		attachmentRepo: attachmentRepo,
		files:          files,
		txManager:      txManager,
		logger:         logger,
	}
}

func (uc *DeleteAttachmentUseCase) Execute(ctx context.Context, cmd DeleteAttachmentCommand) error {
	uc.logger.Infow("executing delete attachment use case", "ticket_id", cmd.TicketID, "attachment_id", cmd.AttachmentID)

	t, att, err := loadAttachment(ctx, uc.ticketRepo, uc.attachmentRepo, cmd.TicketID, cmd.AttachmentID)
	if err != nil {
		return err
	}
	if !cmd.Actor.CanDeleteAttachment(t, att) {
		return forbidden()
	}

	// Rows go first so a failed file removal rolls them back.
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.attachmentRepo.Delete(txCtx, att.ID()); err != nil {
			return fmt.Errorf("failed to delete attachment: %w", err)
		}
		t.Touch()
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return fmt.Errorf("failed to update ticket: %w", err)
		}
		if err := uc.files.Remove(txCtx, att.Filename()); err != nil {
			return fmt.Errorf("failed to remove attachment file: %w", err)
		}
		return nil
	})
	if err != nil {
		return asAppError(uc.logger, "delete attachment", err)
	}

	uc.logger.Infow("attachment deleted successfully", "ticket_id", t.ID(), "attachment_id", att.ID())
	return nil
}

type GetAttachmentQuery struct {
	Actor        access.Actor
	TicketID     uint
	AttachmentID uint
}

// AttachmentDownload is an open attachment; the caller closes Content.
type AttachmentDownload struct {
	Filename     string
	OriginalName string
	ContentType  string
	Size         int64
	Content      io.ReadCloser
}

type GetAttachmentUseCase struct {
	ticketRepo     ticket.TicketRepository
	attachmentRepo ticket.AttachmentRepository
	files          FileStore
	logger         logger.Interface
}

func NewGetAttachmentUseCase(
	ticketRepo ticket.TicketRepository,
	attachmentRepo ticket.AttachmentRepository,
	files FileStore,
	logger logger.Interface,
) *GetAttachmentUseCase {
	return &GetAttachmentUseCase{
		ticketRepo:     ticketRepo,
		attachmentRepo: attachmentRepo,
		files:          files,
		logger:         logger,
	}
}

func (uc *GetAttachmentUseCase) Execute(ctx context.Context, query GetAttachmentQuery) (*AttachmentDownload, error) {
	t, att, err := loadAttachment(ctx, uc.ticketRepo, uc.attachmentRepo, query.TicketID, query.AttachmentID)
	if err != nil {
		return nil, err
	}
	if !query.Actor.CanViewTicket(t) {
		return nil, forbidden()
	}

	rc, err := uc.files.Open(ctx, att.Filename())
	if err != nil {
		uc.logger.Errorw("failed to open attachment", "filename", att.Filename(), "error", err)
		return nil, errors.NewNotFoundError("attachment file not found")
	}

	contentType := att.ContentType()
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	name := att.OriginalName()
	if name == "" {
		name = att.Filename()
	}

	return &AttachmentDownload{
		Filename:     att.Filename(),
		OriginalName: name,
		ContentType:  contentType,
		Size:         att.Size(),
		Content:      rc,
	}, nil
}

func loadAttachment(
	ctx context.Context,
	ticketRepo ticket.TicketRepository,
	attachmentRepo ticket.AttachmentRepository,
	ticketID, attachmentID uint,
) (*ticket.Ticket, *ticket.Attachment, error) {
	att, err := attachmentRepo.GetByID(ctx, attachmentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get attachment: %w", err)
	}
	if att == nil || att.TicketID() != ticketID {
		return nil, nil, errors.NewNotFoundError("attachment not found")
	}

	t, err := ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	if t == nil {
		return nil, nil, errors.NewNotFoundError("ticket not found")
	}
	return t, att, nil
}
