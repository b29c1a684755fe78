package ticket

import (
	"context"
	"time"

	vo "github.com/assistitk12/assistitk12/internal/domain/ticket/valueobjects"
)

// Filter selects tickets. SiteID and CreatorID are also used to apply the
// caller's visibility scope.
type Filter struct {
	SiteID     *uint
	CreatorID  *uint
	AssigneeID *uint
	Status     *vo.TicketStatus
	Page       int
	PageSize   int
}

// DashboardFilter scopes the rows fed to the dashboard rollups.
type DashboardFilter struct {
	SiteID    *uint
	CreatorID *uint
	Year      *int
}

// DashboardRow is the projection needed for dashboard aggregation.
type DashboardRow struct {
	TitleID   uint
	Status    vo.TicketStatus
	CreatedAt time.Time
}

type TicketRepository interface {
	Create(ctx context.Context, t *Ticket) error
	Update(ctx context.Context, t *Ticket) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Ticket, error)
	// List returns tickets ordered by priority tier then created_at DESC.
	List(ctx context.Context, filter Filter) ([]*Ticket, int64, error)
	CountByTitle(ctx context.Context, titleID uint) (int64, error)
	CountBySite(ctx context.Context, siteID uint) (int64, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	DashboardRows(ctx context.Context, filter DashboardFilter) ([]DashboardRow, error)
	Years(ctx context.Context, filter DashboardFilter) ([]int, error)
}

type CommentRepository interface {
	Create(ctx context.Context, c *Comment) error
	ListByTicket(ctx context.Context, ticketID uint) ([]*Comment, error)
	DeleteByTicket(ctx context.Context, ticketID uint) error
}

type AttachmentRepository interface {
	Create(ctx context.Context, a *Attachment) error
	GetByID(ctx context.Context, id uint) (*Attachment, error)
	ListByTicket(ctx context.Context, ticketID uint) ([]*Attachment, error)
	Delete(ctx context.Context, id uint) error
	DeleteByTicket(ctx context.Context, ticketID uint) error
	// Filenames returns every stored filename.
	Filenames(ctx context.Context) ([]string, error)
}
