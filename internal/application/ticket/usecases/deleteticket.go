package usecases

import (
	"context"
	"fmt"

	"github.com/assistitk12/assistitk12/internal/domain/access"
	"github.com/assistitk12/assistitk12/internal/domain/ticket"
	"github.com/assistitk12/assistitk12/internal/shared/db"
	"github.com/assistitk12/assistitk12/internal/shared/errors"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
)

type DeleteTicketCommand struct {
	Actor    access.Actor
	TicketID uint
}

type DeleteTicketUseCase struct {
	ticketRepo     ticket.TicketRepository
	commentRepo    ticket.CommentRepository
	attachmentRepo ticket.AttachmentRepository
	files          FileStore
	txManager      db.Transactor
	logger         logger.Interface
}

func NewDeleteTicketUseCase(
	ticketRepo ticket.TicketRepository,
	commentRepo ticket.CommentRepository,
	attachmentRepo ticket.AttachmentRepository,
	files FileStore,
	txManager db.Transactor,
	logger logger.Interface,
) *DeleteTicketUseCase {
	return &DeleteTicketUseCase{
		ticketRepo:     ticketRepo,
		commentRepo:    commentRepo,
		attachmentRepo: attachmentRepo,
		files:          files,
		txManager:      txManager,
		logger:         logger,
	}
}

// Execute removes every attachment blob, then the attachment, comment and
// ticket rows. A blob that cannot be removed aborts the whole deletion.
func (uc *DeleteTicketUseCase) Execute(ctx context.Context, cmd DeleteTicketCommand) error {
	uc.logger.Infow("executing delete ticket use case", "ticket_id", cmd.TicketID, "user_id", cmd.Actor.UserID)

	if err := cmd.Actor.Require(access.DeleteTickets); err != nil {
		return err
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to get ticket", "ticket_id", cmd.TicketID, "error", err)
		return fmt.Errorf("failed to get ticket: %w", err)
	}
	if t == nil {
		return errors.NewNotFoundError("ticket not found")
	}

	var removed int
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		attachments, err := uc.attachmentRepo.ListByTicket(txCtx, t.ID())
		if err != nil {
			return fmt.Errorf("failed to list attachments: %w", err)
		}
		for _, a := range attachments {
			if err := uc.files.Remove(txCtx, a.Filename()); err != nil {
				return fmt.Errorf("failed to remove attachment file %s: %w", a.Filename(), err)
			}
			removed++
		}
		if err := uc.attachmentRepo.DeleteByTicket(txCtx, t.ID()); err != nil {
			return fmt.Errorf("failed to delete attachments: %w", err)
		}
		if err := uc.commentRepo.DeleteByTicket(txCtx, t.ID()); err != nil {
			return fmt.Errorf("failed to delete comments: %w", err)
		}
		if err := uc.ticketRepo.Delete(txCtx, t.ID()); err != nil {
			return fmt.Errorf("failed to delete ticket: %w", err)
		}
		return nil
	})
	if err != nil {
		return asAppError(uc.logger, "delete ticket", err)
	}

	uc.logger.Infow("ticket deleted successfully", "ticket_id", t.ID(), "files_removed", removed)
	return nil
}
