package usecases

import (
	"context"
	"fmt"

	"github.com/assistitk12/assistitk12/internal/application/ticket/dto"
	"github.com/assistitk12/assistitk12/internal/domain/access"
	"github.com/assistitk12/assistitk12/internal/domain/directory"
	"github.com/assistitk12/assistitk12/internal/domain/ticket"
	vo "github.com/assistitk12/assistitk12/internal/domain/ticket/valueobjects"
	"github.com/assistitk12/assistitk12/internal/shared/errors"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
	"github.com/assistitk12/assistitk12/internal/shared/utils"
)

type ListTicketsQuery struct {
	Actor      access.Actor
	SiteID     *uint
	Status     string
	AssigneeID *uint
	Page       int
	PageSize   int
}

type ListTicketsResult struct {
	Tickets  []*dto.TicketDTO
	Total    int64
	Page     int
	PageSize int
}

type ListTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	titleRepo  directory.TitleRepository
	userRepo   directory.UserRepository
	logger     logger.Interface
}

func NewListTicketsUseCase(
	ticketRepo ticket.TicketRepository,
	titleRepo directory.TitleRepository,
	userRepo directory.UserRepository,
	logger logger.Interface,
) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo: ticketRepo,
		titleRepo:  titleRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error) {
	p := utils.ValidatePagination(query.Page, query.PageSize)
	scope := query.Actor.TicketScope(query.SiteID)

	filter := ticket.Filter{
		SiteID:     scope.SiteID,
		CreatorID:  scope.CreatorID,
		AssigneeID: query.AssigneeID,
		Page:       p.Page,
		PageSize:   p.PageSize,
	}
	if query.Status != "" {
		status, err := vo.ParseTicketStatus(query.Status)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Status = &status
	}

	tickets, total, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "user_id", query.Actor.UserID, "error", err)
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	titleIDs := make([]uint, 0, len(tickets))
	for _, t := range tickets {
		titleIDs = append(titleIDs, t.TitleID())
	}
	names, err := loadNames(ctx, uc.titleRepo, uc.userRepo, titleIDs, ticketUserIDs(tickets...))
	if err != nil {
		return nil, err
	}

	return &ListTicketsResult{
		Tickets:  dto.ToTicketDTOs(tickets, names),
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}, nil
}
