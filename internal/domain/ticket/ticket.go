package ticket

import (
	"fmt"
	"sort"
	"time"

	vo "github.com/assistitk12/assistitk12/internal/domain/ticket/valueobjects"
	"github.com/assistitk12/assistitk12/internal/shared/biztime"
)

// Ticket is a support request filed against a catalog title. The site is
// copied from the creator when the ticket is opened and never changes.
type Ticket struct {
	id         uint
	titleID    uint
	creatorID  uint
	siteID     uint
	assigneeID *uint
	status     vo.TicketStatus
	escalated  bool
	createdAt  time.Time
	updatedAt  time.Time
}

// NewTicket opens a pending, non-escalated ticket.
func NewTicket(titleID, creatorID, siteID uint, assigneeID *uint) (*Ticket, error) {
	if titleID == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if creatorID == 0 {
		return nil, fmt.Errorf("creator ID is required")
	}
	if siteID == 0 {
		return nil, fmt.Errorf("site ID is required")
	}
	if assigneeID != nil && *assigneeID == 0 {
		assigneeID = nil
	}

	now := biztime.NowUTC()
	return &Ticket{
		titleID:    titleID,
		creatorID:  creatorID,
		siteID:     siteID,
		assigneeID: copyID(assigneeID),
		status:     vo.StatusPending,
		escalated:  false,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructTicket(
	id uint,
	titleID uint,
	creatorID uint,
	siteID uint,
	assigneeID *uint,
	status vo.TicketStatus,
	escalated bool,
	createdAt, updatedAt time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}

	return &Ticket{
		id:         id,
		titleID:    titleID,
		creatorID:  creatorID,
		siteID:     siteID,
		assigneeID: copyID(assigneeID),
		status:     status,
		escalated:  escalated,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}, nil
}

func (t *Ticket) ID() uint                    { return t.id }
func (t *Ticket) TitleID() uint               { return t.titleID }
func (t *Ticket) CreatorID() uint             { return t.creatorID }
func (t *Ticket) SiteID() uint                { return t.siteID }
func (t *Ticket) AssigneeID() *uint           { return copyID(t.assigneeID) }
func (t *Ticket) Status() vo.TicketStatus     { return t.status }
func (t *Ticket) IsEscalated() bool           { return t.escalated }
func (t *Ticket) CreatedAt() time.Time        { return t.createdAt }
func (t *Ticket) UpdatedAt() time.Time        { return t.updatedAt }
func (t *Ticket) PriorityTier() int           { return vo.PriorityTier(t.status, t.escalated) }
func (t *Ticket) IsCreator(userID uint) bool  { return userID != 0 && t.creatorID == userID }
func (t *Ticket) IsAssignee(userID uint) bool { return userID != 0 && t.assigneeID != nil && *t.assigneeID == userID }

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// Touch refreshes updated_at.
func (t *Ticket) Touch() {
	t.updatedAt = biztime.NowUTC()
}

// AssigneeUpdate sets or clears the assignee. A nil UserID unassigns.
type AssigneeUpdate struct {
	UserID *uint
}

// Update carries the requested field values; nil leaves a field untouched.
type Update struct {
	TitleID   *uint
	Status    *vo.TicketStatus
	Assignee  *AssigneeUpdate
	Escalated *bool
}

// Changes records which parts of a ticket an update actually changed.
type Changes struct {
	Title      bool
	Status     bool
	Assignee   bool
	Escalated  bool
	Comment    bool
	Attachment bool

	PreviousStatus     vo.TicketStatus
	PreviousAssigneeID *uint
}

func (c Changes) Any() bool {
	return c.Title || c.Status || c.Assignee || c.Escalated || c.Comment || c.Attachment
}

// ApplyUpdate compares each requested field with its current value and
// applies only the differences. updated_at moves only when a field changed.
func (t *Ticket) ApplyUpdate(u Update) (Changes, error) {
	changes := Changes{
		PreviousStatus:     t.status,
		PreviousAssigneeID: copyID(t.assigneeID),
	}

	if u.TitleID != nil && *u.TitleID == 0 {
		return changes, fmt.Errorf("title is required")
	}
	if u.Status != nil && !u.Status.IsValid() {
		return changes, fmt.Errorf("invalid status: %s", *u.Status)
	}

	if u.TitleID != nil && *u.TitleID != t.titleID {
		t.titleID = *u.TitleID
		changes.Title = true
	}
	if u.Status != nil && *u.Status != t.status {
		t.status = *u.Status
		changes.Status = true
	}
	if u.Assignee != nil {
		next := u.Assignee.UserID
		if next != nil && *next == 0 {
			next = nil
		}
		if !sameID(next, t.assigneeID) {
			t.assigneeID = copyID(next)
			changes.Assignee = true
		}
	}
	if u.Escalated != nil && *u.Escalated != t.escalated {
		t.escalated = *u.Escalated
		changes.Escalated = true
	}

	if changes.Any() {
		t.Touch()
	}
	return changes, nil
}

// LessByPriority orders by priority tier, then newest first.
func LessByPriority(a, b *Ticket) bool {
	ta, tb := a.PriorityTier(), b.PriorityTier()
	if ta != tb {
		return ta < tb
	}
	return a.createdAt.After(b.createdAt)
}

// SortByPriority sorts tickets in place using LessByPriority.
func SortByPriority(tickets []*Ticket) {
	sort.SliceStable(tickets, func(i, j int) bool {
		return LessByPriority(tickets[i], tickets[j])
	})
}

func copyID(id *uint) *uint {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func sameID(a, b *uint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
