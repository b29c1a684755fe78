package usecases

import (
	"context"
	"fmt"

	"github.com/assistitk12/assistitk12/internal/application/ticket/dto"
	"github.com/assistitk12/assistitk12/internal/domain/access"
	"github.com/assistitk12/assistitk12/internal/domain/directory"
	"github.com/assistitk12/assistitk12/internal/domain/ticket"
	"github.com/assistitk12/assistitk12/internal/shared/errors"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
)

type GetTicketQuery struct {
	Actor    access.Actor
	TicketID uint
}

type GetTicketUseCase struct {
	ticketRepo     ticket.TicketRepository
	commentRepo    ticket.CommentRepository
	attachmentRepo ticket.AttachmentRepository
	titleRepo      directory.TitleRepository
	userRepo       directory.UserRepository
	logger         logger.Interface
}

func NewGetTicketUseCase(
	ticketRepo ticket.TicketRepository,
	commentRepo ticket.CommentRepository,
	attachmentRepo ticket.AttachmentRepository,
	titleRepo directory.TitleRepository,
	userRepo directory.UserRepository,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo:     ticketRepo,
		commentRepo:    commentRepo,
		attachmentRepo: attachmentRepo,
		titleRepo:      titleRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error) {
	t, err := uc.ticketRepo.GetByID(ctx, query.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to get ticket", "ticket_id", query.TicketID, "error", err)
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	if t == nil {
		return nil, errors.NewNotFoundError("ticket not found")
	}
	if !query.Actor.CanViewTicket(t) {
		return nil, forbidden()
	}

	comments, err := uc.commentRepo.ListByTicket(ctx, t.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	attachments, err := uc.attachmentRepo.ListByTicket(ctx, t.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}

	userIDs := ticketUserIDs(t)
	for _, c := range comments {
		userIDs = append(userIDs, c.UserID())
	}
	names, err := loadNames(ctx, uc.titleRepo, uc.userRepo, []uint{t.TitleID()}, userIDs)
	if err != nil {
		return nil, err
	}

	out := dto.ToTicketDTO(t, names)
	for _, c := range comments {
		out.Comments = append(out.Comments, dto.ToCommentDTO(c, names))
	}
	for _, a := range attachments {
		out.Attachments = append(out.Attachments, dto.ToAttachmentDTO(a))
	}
	return out, nil
}
