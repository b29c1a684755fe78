package usecases

import (
	"context"
	"fmt"

	"github.com/assistitk12/assistitk12/internal/domain/access"
	"github.com/assistitk12/assistitk12/internal/domain/directory"
	"github.com/assistitk12/assistitk12/internal/domain/shared/events"
	"github.com/assistitk12/assistitk12/internal/domain/ticket"
	vo "github.com/assistitk12/assistitk12/internal/domain/ticket/valueobjects"
	"github.com/assistitk12/assistitk12/internal/shared/db"
	"github.com/assistitk12/assistitk12/internal/shared/errors"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
)

// AssigneeInput sets the assignee; a nil UserID unassigns.
type AssigneeInput struct {
	UserID *uint
}

type UpdateTicketCommand struct {
	Actor      access.Actor
	TicketID   uint
	TitleID    *uint
	Status     *string
	Assignee   *AssigneeInput
	Escalated  *bool
	Comment    string
	Attachment *UploadedFile
}

type UpdateTicketResult struct {
	TicketID      uint
	Changed       bool
	ChangedFields []string
	CommentID     *uint
	AttachmentID  *uint
}

type UpdateTicketUseCase struct {
	ticketRepo  ticket.TicketRepository
	commentRepo ticket.CommentRepository
	titleRepo   directory.TitleRepository
	userRepo    directory.UserRepository
	resolver    access.Resolver
	attachments attachmentWriter
	sanitizer   Sanitizer
	txManager   db.Transactor
	publisher   events.EventPublisher
	logger      logger.Interface
}

func NewUpdateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	commentRepo ticket.CommentRepository,
	attachmentRepo ticket.AttachmentRepository,
	titleRepo directory.TitleRepository,
	userRepo directory.UserRepository,
	resolver access.Resolver,
	files FileStore,
	maxAttachmentBytes int64,
	sanitizer Sanitizer,
	txManager db.Transactor,
	publisher events.EventPublisher,
	logger logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		titleRepo:   titleRepo,
		userRepo:    userRepo,
		resolver:    resolver,
		attachments: attachmentWriter{files: files, attachmentRepo: attachmentRepo, maxBytes: maxAttachmentBytes},
		sanitizer:   sanitizer,
		txManager:   txManager,
		publisher:   publisher,
		logger:      logger,
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*UpdateTicketResult, error) {
	uc.logger.Infow("executing update ticket use case", "ticket_id", cmd.TicketID, "user_id", cmd.Actor.UserID)

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to get ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	if t == nil {
		return nil, errors.NewNotFoundError("ticket not found")
	}
	if !cmd.Actor.CanActOnTicket(t) {
		uc.logger.Warnw("ticket update denied", "ticket_id", t.ID(), "user_id", cmd.Actor.UserID)
		return nil, forbidden()
	}

	update, err := uc.buildUpdate(ctx, cmd)
	if err != nil {
		return nil, err
	}
	ext, err := uc.attachments.precheck(cmd.Attachment)
	if err != nil {
		return nil, err
	}
	comment, err := sanitizeComment(uc.sanitizer, cmd.Comment)
	if err != nil {
		return nil, err
	}

	changes, err := t.ApplyUpdate(update)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	result := &UpdateTicketResult{TicketID: t.ID()}
	var saved []string
	var newComment *ticket.Comment

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if comment != "" {
			c, err := ticket.NewComment(t.ID(), cmd.Actor.UserID, comment)
			if err != nil {
				return errors.NewValidationError(err.Error())
			}
			if err := uc.commentRepo.Create(txCtx, c); err != nil {
				return fmt.Errorf("failed to create comment: %w", err)
			}
			newComment = c
			changes.Comment = true
			id := c.ID()
			result.CommentID = &id
		}

		if cmd.Attachment != nil {
			att, err := uc.attachments.store(txCtx, t, cmd.Actor.UserID, cmd.Attachment, ext, &saved)
			if err != nil {
				return err
			}
			changes.Attachment = true
			id := att.ID()
			result.AttachmentID = &id
		}

		if !changes.Any() {
			return nil
		}
		t.Touch()
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return fmt.Errorf("failed to update ticket: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.attachments.cleanup(ctx, uc.logger, saved)
		return nil, asAppError(uc.logger, "update ticket", err)
	}

	if !changes.Any() {
		uc.logger.Infow("ticket update made no changes", "ticket_id", t.ID())
		return result, nil
	}

	result.Changed = true
	result.ChangedFields = changedFields(changes)

	domainEvents := ticket.ChangeEvents(t, changes)
	if newComment != nil {
		domainEvents = append(domainEvents, ticket.NewCommentedEvent(t, newComment))
	}
	if err := uc.publisher.PublishAll(domainEvents); err != nil {
		uc.logger.Warnw("failed to publish ticket events", "ticket_id", t.ID(), "error", err)
	}

	uc.logger.Infow("ticket updated successfully", "ticket_id", t.ID(), "changed", result.ChangedFields)
	return result, nil
}

// buildUpdate validates references before anything is applied.
func (uc *UpdateTicketUseCase) buildUpdate(ctx context.Context, cmd UpdateTicketCommand) (ticket.Update, error) {
	var u ticket.Update

	if cmd.TitleID != nil {
		title, err := uc.titleRepo.GetByID(ctx, *cmd.TitleID)
		if err != nil {
			return u, fmt.Errorf("failed to get title: %w", err)
		}
		if title == nil {
			return u, errors.NewValidationError("title not found")
		}
		u.TitleID = cmd.TitleID
	}

	if cmd.Status != nil {
		status, err := vo.ParseTicketStatus(*cmd.Status)
		if err != nil {
			return u, errors.NewValidationError(err.Error())
		}
		u.Status = &status
	}

	if cmd.Assignee != nil {
		if id := cmd.Assignee.UserID; id != nil && *id != 0 {
			user, err := uc.userRepo.GetByID(ctx, *id)
			if err != nil {
				return u, fmt.Errorf("failed to get assignee: %w", err)
			}
			if user == nil {
				return u, errors.NewValidationError("assigned user not found")
			}
			if err := uc.checkAssignable(ctx, user); err != nil {
				return u, err
			}
		}
		u.Assignee = &ticket.AssigneeUpdate{UserID: cmd.Assignee.UserID}
	}

	u.Escalated = cmd.Escalated
	return u, nil
}

// checkAssignable accepts only active users whose role may take tickets.
func (uc *UpdateTicketUseCase) checkAssignable(ctx context.Context, user *directory.User) error {
	if !user.IsActive() {
		return errors.NewValidationError("assigned user is inactive")
	}
	caps, err := uc.resolver.Capabilities(ctx, user.RoleID())
	if err != nil {
		return fmt.Errorf("failed to resolve assignee capabilities: %w", err)
	}
	if !caps.Has(access.Assignable) {
		return errors.NewValidationError("assigned user cannot be assigned tickets")
	}
	return nil
}

func changedFields(c ticket.Changes) []string {
	var fields []string
	if c.Title {
		fields = append(fields, "title")
	}
	if c.Status {
		fields = append(fields, "status")
	}
	if c.Assignee {
		fields = append(fields, "assignee")
	}
	if c.Escalated {
		fields = append(fields, "escalated")
	}
	if c.Comment {
		fields = append(fields, "comment")
	}
	if c.Attachment {
		fields = append(fields, "attachment")
	}
	return fields
}
