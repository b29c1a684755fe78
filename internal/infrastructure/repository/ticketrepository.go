package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/assistitk12/assistitk12/internal/domain/ticket"
	vo "github.com/assistitk12/assistitk12/internal/domain/ticket/valueobjects"
	"github.com/assistitk12/assistitk12/internal/infrastructure/persistence/mappers"
	"github.com/assistitk12/assistitk12/internal/infrastructure/persistence/models"
	"github.com/assistitk12/assistitk12/internal/shared/biztime"
	"github.com/assistitk12/assistitk12/internal/shared/db"
)

// priorityOrder mirrors vo.PriorityTier so the database sorts the same way
// as ticket.LessByPriority.
var priorityOrder = clause.OrderBy{
	Expression: clause.Expr{
		SQL: "CASE" +
			" WHEN status = ? AND escalated = ? THEN ?" +
			" WHEN status = ? AND escalated = ? THEN ?" +
			" WHEN status = ? THEN ?" +
			" WHEN status = ? THEN ?" +
			" ELSE ? END ASC, created_at DESC, id DESC",
		Vars: []any{
			vo.StatusPending.String(), true, vo.TierPendingEscalated,
			vo.StatusProgress.String(), true, vo.TierProgressEscalated,
			vo.StatusPending.String(), vo.TierPending,
			vo.StatusProgress.String(), vo.TierProgress,
			vo.TierOther,
		},
		WithoutParentheses: true,
	},
}

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save ticket: %w", err)
	}
	return t.SetID(model.ID)
}

// Update writes every column so clearing the assignee or the escalation flag
// is persisted.
func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}
	return nil
}

func (r *TicketRepository) Delete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.TicketModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete ticket: %w", err)
	}
	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) List(ctx context.Context, filter ticket.Filter) ([]*ticket.Ticket, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketModel{}).
		Scopes(scopeTickets(filter.SiteID, filter.CreatorID))

	if filter.AssigneeID != nil {
		query = query.Where("assigned_to_id = ?", *filter.AssigneeID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	var list []models.TicketModel
	if err := query.
		Clauses(priorityOrder).
		Scopes(db.Paginate(filter.Page, filter.PageSize)).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets := make([]*ticket.Ticket, len(list))
	for i := range list {
		t, err := r.mapper.ToDomain(&list[i])
		if err != nil {
			return nil, 0, err
		}
		tickets[i] = t
	}
	return tickets, total, nil
}

func (r *TicketRepository) CountByTitle(ctx context.Context, titleID uint) (int64, error) {
	return r.count(ctx, "title_id = ?", titleID)
}

func (r *TicketRepository) CountBySite(ctx context.Context, siteID uint) (int64, error) {
	return r.count(ctx, "site_id = ?", siteID)
}

// CountByUser counts tickets the user created or is assigned to.
func (r *TicketRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	return r.count(ctx, "user_id = ? OR assigned_to_id = ?", userID, userID)
}

func (r *TicketRepository) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.TicketModel{}).Where(query, args...).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count tickets: %w", err)
	}
	return n, nil
}

type dashboardRow struct {
	TitleID   uint
	Status    string
	CreatedAt time.Time
}

func (r *TicketRepository) DashboardRows(ctx context.Context, filter ticket.DashboardFilter) ([]ticket.DashboardRow, error) {
	query := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketModel{}).
		Select("title_id, status, created_at").
		Scopes(scopeTickets(filter.SiteID, filter.CreatorID))
	if filter.Year != nil {
		start, end := biztime.YearRangeUTC(*filter.Year)
		query = query.Where("created_at >= ? AND created_at < ?", start, end)
	}

	var rows []dashboardRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load dashboard rows: %w", err)
	}

	out := make([]ticket.DashboardRow, len(rows))
	for i, row := range rows {
		out[i] = ticket.DashboardRow{
			TitleID:   row.TitleID,
			Status:    vo.TicketStatus(row.Status),
			CreatedAt: row.CreatedAt.UTC(),
		}
	}
	return out, nil
}

// Years returns the distinct business-timezone years that have tickets,
// ascending. Year buckets depend on the timezone, so they are computed here
// rather than with a dialect-specific SQL function.
func (r *TicketRepository) Years(ctx context.Context, filter ticket.DashboardFilter) ([]int, error) {
	var stamps []time.Time
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketModel{}).
		Scopes(scopeTickets(filter.SiteID, filter.CreatorID)).
		Pluck("created_at", &stamps).Error; err != nil {
		return nil, fmt.Errorf("failed to load ticket years: %w", err)
	}

	seen := make(map[int]struct{})
	for _, ts := range stamps {
		seen[biztime.ToBizTimezone(ts).Year()] = struct{}{}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years, nil
}

func scopeTickets(siteID, creatorID *uint) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if siteID != nil {
			q = q.Where("site_id = ?", *siteID)
		}
		if creatorID != nil {
			q = q.Where("user_id = ?", *creatorID)
		}
		return q
	}
}
