package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/assistitk12/assistitk12/internal/domain/access"
	"github.com/assistitk12/assistitk12/internal/domain/directory"
	"github.com/assistitk12/assistitk12/internal/domain/shared/events"
	"github.com/assistitk12/assistitk12/internal/domain/ticket"
	"github.com/assistitk12/assistitk12/internal/shared/db"
	"github.com/assistitk12/assistitk12/internal/shared/errors"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
)

type CreateTicketCommand struct {
	Actor      access.Actor
	TitleID    uint
	Comment    string
	Attachment *UploadedFile
}

type CreateTicketResult struct {
	TicketID     uint
	AssigneeID   *uint
	Status       string
	CommentID    *uint
	AttachmentID *uint
	CreatedAt    time.Time
}

type CreateTicketUseCase struct {
	ticketRepo  ticket.TicketRepository
	commentRepo ticket.CommentRepository
	titleRepo   directory.TitleRepository
	userRepo    directory.UserRepository
	attachments attachmentWriter
	sanitizer   Sanitizer
	txManager   db.Transactor
	publisher   events.EventPublisher
	logger      logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	commentRepo ticket.CommentRepository,
	attachmentRepo ticket.AttachmentRepository,
	titleRepo directory.TitleRepository,
	userRepo directory.UserRepository,
	files FileStore,
	maxAttachmentBytes int64,
	sanitizer Sanitizer,
	txManager db.Transactor,
	publisher events.EventPublisher,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		titleRepo:   titleRepo,
		userRepo:    userRepo,
		attachments: attachmentWriter{files: files, attachmentRepo: attachmentRepo, maxBytes: maxAttachmentBytes},
		sanitizer:   sanitizer,
		txManager:   txManager,
		publisher:   publisher,
		logger:      logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error) {
	uc.logger.Infow("executing create ticket use case", "title_id", cmd.TitleID, "creator_id", cmd.Actor.UserID)

	if cmd.TitleID == 0 {
		return nil, errors.NewValidationError("title is required")
	}
	title, err := uc.titleRepo.GetByID(ctx, cmd.TitleID)
	if err != nil {
		uc.logger.Errorw("failed to get title", "title_id", cmd.TitleID, "error", err)
		return nil, fmt.Errorf("failed to get title: %w", err)
	}
	if title == nil {
		return nil, errors.NewValidationError("title not found")
	}

	creator, err := uc.userRepo.GetByID(ctx, cmd.Actor.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get creator", "user_id", cmd.Actor.UserID, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if creator == nil {
		return nil, errors.NewUnauthorizedError("user not found")
	}

	ext, err := uc.attachments.precheck(cmd.Attachment)
	if err != nil {
		return nil, err
	}

	comment, err := sanitizeComment(uc.sanitizer, cmd.Comment)
	if err != nil {
		return nil, err
	}

	technician, err := uc.userRepo.FirstBySiteAndRole(ctx, creator.SiteID(), directory.RoleTechnician)
	if err != nil {
		uc.logger.Errorw("failed to look up site technician", "site_id", creator.SiteID(), "error", err)
		return nil, fmt.Errorf("failed to look up site technician: %w", err)
	}
	var assigneeID *uint
	if technician != nil {
		id := technician.ID()
		assigneeID = &id
	}

	t, err := ticket.NewTicket(title.ID(), creator.ID(), creator.SiteID(), assigneeID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	result := &CreateTicketResult{}
	var saved []string

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.Create(txCtx, t); err != nil {
			return fmt.Errorf("failed to create ticket: %w", err)
		}

		if comment != "" {
			c, err := ticket.NewComment(t.ID(), creator.ID(), comment)
			if err != nil {
				return errors.NewValidationError(err.Error())
			}
			if err := uc.commentRepo.Create(txCtx, c); err != nil {
				return fmt.Errorf("failed to create comment: %w", err)
			}
			id := c.ID()
			result.CommentID = &id
		}

		if cmd.Attachment != nil {
			att, err := uc.attachments.store(txCtx, t, creator.ID(), cmd.Attachment, ext, &saved)
			if err != nil {
				return err
			}
			id := att.ID()
			result.AttachmentID = &id
		}
		return nil
	})
	if err != nil {
		uc.attachments.cleanup(ctx, uc.logger, saved)
		return nil, asAppError(uc.logger, "create ticket", err)
	}

	if err := uc.publisher.Publish(ticket.NewCreatedEvent(t)); err != nil {
		uc.logger.Warnw("failed to publish ticket events", "ticket_id", t.ID(), "error", err)
	}

	uc.logger.Infow("ticket created successfully", "ticket_id", t.ID(), "site_id", t.SiteID(), "auto_assigned", assigneeID != nil)

	result.TicketID = t.ID()
	result.AssigneeID = t.AssigneeID()
	result.Status = t.Status().String()
	result.CreatedAt = t.CreatedAt()
	return result, nil
}
