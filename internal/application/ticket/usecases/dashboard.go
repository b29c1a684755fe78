package usecases

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/assistitk12/assistitk12/internal/application/ticket/dto"
	"github.com/assistitk12/assistitk12/internal/domain/access"
	"github.com/assistitk12/assistitk12/internal/domain/directory"
	"github.com/assistitk12/assistitk12/internal/domain/ticket"
	vo "github.com/assistitk12/assistitk12/internal/domain/ticket/valueobjects"
	"github.com/assistitk12/assistitk12/internal/shared/biztime"
	"github.com/assistitk12/assistitk12/internal/shared/errors"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
)

const topTitlesLimit = 5

type DashboardQuery struct {
	Actor  access.Actor
	SiteID *uint
	Year   *int
}

type GetDashboardUseCase struct {
	ticketRepo ticket.TicketRepository
	titleRepo  directory.TitleRepository
	logger     logger.Interface
}

func NewGetDashboardUseCase(
	ticketRepo ticket.TicketRepository,
	titleRepo directory.TitleRepository,
	logger logger.Interface,
) *GetDashboardUseCase {
	return &GetDashboardUseCase{
		ticketRepo: ticketRepo,
		titleRepo:  titleRepo,
		logger:     logger,
	}
}

func (uc *GetDashboardUseCase) Execute(ctx context.Context, query DashboardQuery) (*dto.DashboardDTO, error) {
	if query.Year != nil && (*query.Year < 1970 || *query.Year > 9999) {
		return nil, errors.NewValidationError("invalid year")
	}

	scope := query.Actor.TicketScope(query.SiteID)
	filter := ticket.DashboardFilter{
		SiteID:    scope.SiteID,
		CreatorID: scope.CreatorID,
		Year:      query.Year,
	}

	rows, err := uc.ticketRepo.DashboardRows(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to load dashboard rows", "user_id", query.Actor.UserID, "error", err)
		return nil, fmt.Errorf("failed to load dashboard: %w", err)
	}

	// The year picker lists every year visible to the caller, not only the selected one.
	yearFilter := filter
	yearFilter.Year = nil
	years, err := uc.ticketRepo.Years(ctx, yearFilter)
	if err != nil {
		uc.logger.Errorw("failed to load dashboard years", "user_id", query.Actor.UserID, "error", err)
		return nil, fmt.Errorf("failed to load dashboard years: %w", err)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	out := aggregateDashboard(rows, biztime.Location())
	out.SiteID = scope.SiteID
	out.Year = query.Year
	out.Years = years

	if len(out.TopTitles) > 0 {
		ids := make([]uint, 0, len(out.TopTitles))
		for _, tt := range out.TopTitles {
			ids = append(ids, tt.TitleID)
		}
		titles, err := uc.titleRepo.GetByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to load titles: %w", err)
		}
		names := make(map[uint]string, len(titles))
		for _, t := range titles {
			names[t.ID()] = t.Name()
		}
		for i := range out.TopTitles {
			out.TopTitles[i].TitleName = names[out.TopTitles[i].TitleID]
		}
	}

	return out, nil
}

// aggregateDashboard computes every rollup from the scoped rows. Month and
// weekday buckets use loc; weekend tickets are left out of the weekday buckets.
func aggregateDashboard(rows []ticket.DashboardRow, loc *time.Location) *dto.DashboardDTO {
	out := &dto.DashboardDTO{
		Years:         []int{},
		TopTitles:     []dto.TopTitleDTO{},
		Months:        dto.MonthLabels,
		MonthCounts:   make([]int, 12),
		Weekdays:      dto.WeekdayLabels,
		WeekdayCounts: make([]int, 5),
	}

	perTitle := make(map[uint]int)
	for _, r := range rows {
		switch r.Status {
		case vo.StatusPending:
			out.Counts.Pending++
		case vo.StatusProgress:
			out.Counts.InProgress++
		case vo.StatusCompleted:
			out.Counts.Completed++
		}
		perTitle[r.TitleID]++

		local := r.CreatedAt.In(loc)
		out.MonthCounts[local.Month()-1]++
		if wd := local.Weekday(); wd >= time.Monday && wd <= time.Friday {
			out.WeekdayCounts[wd-time.Monday]++
		}
	}
	out.Counts.Total = out.Counts.Pending + out.Counts.InProgress + out.Counts.Completed

	top := make([]dto.TopTitleDTO, 0, len(perTitle))
	for id, n := range perTitle {
		top = append(top, dto.TopTitleDTO{TitleID: id, TicketCount: n})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].TicketCount != top[j].TicketCount {
			return top[i].TicketCount > top[j].TicketCount
		}
		return top[i].TitleID < top[j].TitleID
	})
	if len(top) > topTitlesLimit {
		top = top[:topTitlesLimit]
	}
	for i := range top {
		top[i].Rank = i + 1
	}
	out.TopTitles = top

	return out
}
