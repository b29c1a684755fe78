package ticket

import (
	"github.com/assistitk12/assistitk12/internal/domain/shared/events"
	vo "github.com/assistitk12/assistitk12/internal/domain/ticket/valueobjects"
	"github.com/assistitk12/assistitk12/internal/shared/biztime"
)

const (
	EventTypeCreated       = "ticket.created"
	EventTypeStatusChanged = "ticket.status_changed"
	EventTypeAssigned      = "ticket.assigned"
	EventTypeEscalated     = "ticket.escalated"
	EventTypeCommented     = "ticket.commented"
)

// EventTypes lists every ticket event type.
var EventTypes = []string{
	EventTypeCreated,
	EventTypeStatusChanged,
	EventTypeAssigned,
	EventTypeEscalated,
	EventTypeCommented,
}

// Ref is the state of a ticket at the moment an event was raised.
type Ref struct {
	TicketID   uint
	TitleID    uint
	CreatorID  uint
	AssigneeID *uint
	Status     vo.TicketStatus
}

func refOf(t *Ticket) Ref {
	return Ref{
		TicketID:   t.ID(),
		TitleID:    t.TitleID(),
		CreatorID:  t.CreatorID(),
		AssigneeID: t.AssigneeID(),
		Status:     t.Status(),
	}
}

func baseFor(t *Ticket, eventType string) events.BaseEvent {
	return events.BaseEvent{
		AggregateID: t.ID(),
		EventType:   eventType,
		OccurredAt:  biztime.NowUTC(),
	}
}

// Event is implemented by every ticket event.
type Event interface {
	events.DomainEvent
	TicketRef() Ref
}

type CreatedEvent struct {
	events.BaseEvent
	Ref Ref
}

type StatusChangedEvent struct {
	events.BaseEvent
	Ref       Ref
	OldStatus vo.TicketStatus
	NewStatus vo.TicketStatus
}

type AssignedEvent struct {
	events.BaseEvent
	Ref                Ref
	PreviousAssigneeID *uint
}

type EscalatedEvent struct {
	events.BaseEvent
	Ref       Ref
	Escalated bool
}

type CommentedEvent struct {
	events.BaseEvent
	Ref      Ref
	AuthorID uint
	Text     string
}

func (e CreatedEvent) TicketRef() Ref       { return e.Ref }
func (e StatusChangedEvent) TicketRef() Ref { return e.Ref }
func (e AssignedEvent) TicketRef() Ref      { return e.Ref }
func (e EscalatedEvent) TicketRef() Ref     { return e.Ref }
func (e CommentedEvent) TicketRef() Ref     { return e.Ref }

func NewCreatedEvent(t *Ticket) CreatedEvent {
	return CreatedEvent{BaseEvent: baseFor(t, EventTypeCreated), Ref: refOf(t)}
}

func NewCommentedEvent(t *Ticket, c *Comment) CommentedEvent {
	return CommentedEvent{
		BaseEvent: baseFor(t, EventTypeCommented),
		Ref:       refOf(t),
		AuthorID:  c.UserID(),
		Text:      c.Text(),
	}
}

// ChangeEvents returns one event per changed notifiable field, in the order
// status, assigned, escalated. Unassigning raises no assigned event.
func ChangeEvents(t *Ticket, c Changes) []events.DomainEvent {
	var out []events.DomainEvent
	ref := refOf(t)

	if c.Status {
		out = append(out, StatusChangedEvent{
			BaseEvent: baseFor(t, EventTypeStatusChanged),
			Ref:       ref,
			OldStatus: c.PreviousStatus,
			NewStatus: t.Status(),
		})
	}
	if c.Assignee && ref.AssigneeID != nil {
		out = append(out, AssignedEvent{
			BaseEvent:          baseFor(t, EventTypeAssigned),
			Ref:                ref,
			PreviousAssigneeID: c.PreviousAssigneeID,
		})
	}
	if c.Escalated {
		out = append(out, EscalatedEvent{
			BaseEvent: baseFor(t, EventTypeEscalated),
			Ref:       ref,
			Escalated: t.IsEscalated(),
		})
	}
	return out
}
