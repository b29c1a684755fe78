package usecases

import (
	"context"
	"strings"

	"github.com/assistitk12/assistitk12/internal/domain/access"
	"github.com/assistitk12/assistitk12/internal/shared/errors"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
)

type AddCommentCommand struct {
	Actor    access.Actor
	TicketID uint
	Text     string
}

type AddCommentResult struct {
	TicketID  uint
	CommentID uint
}

type ticketUpdater interface {
	Execute(ctx context.Context, cmd UpdateTicketCommand) (*UpdateTicketResult, error)
}

// AddCommentUseCase is an update that carries only a comment.
type AddCommentUseCase struct {
	updater ticketUpdater
	logger  logger.Interface
}

func NewAddCommentUseCase(updater ticketUpdater, logger logger.Interface) *AddCommentUseCase {
	return &AddCommentUseCase{
		updater: updater,
		logger:  logger,
	}
}

func (uc *AddCommentUseCase) Execute(ctx context.Context, cmd AddCommentCommand) (*AddCommentResult, error) {
	uc.logger.Infow("executing add comment use case", "ticket_id", cmd.TicketID, "user_id", cmd.Actor.UserID)

	if strings.TrimSpace(cmd.Text) == "" {
		return nil, errors.NewValidationError("comment cannot be empty")
	}

	res, err := uc.updater.Execute(ctx, UpdateTicketCommand{
		Actor:    cmd.Actor,
		TicketID: cmd.TicketID,
		Comment:  cmd.Text,
	})
	if err != nil {
		return nil, err
	}
	if res.CommentID == nil {
		return nil, errors.NewInternalError("comment was not recorded")
	}

	return &AddCommentResult{TicketID: res.TicketID, CommentID: *res.CommentID}, nil
}
