package events

import (
	"context"
	"time"
)

// DomainEvent is something that happened to an aggregate.
type DomainEvent interface {
	GetAggregateID() uint
	GetEventType() string
	GetOccurredAt() time.Time
}

// BaseEvent provides the common DomainEvent fields.
type BaseEvent struct {
	AggregateID uint      `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func (e BaseEvent) GetAggregateID() uint     { return e.AggregateID }
func (e BaseEvent) GetEventType() string     { return e.EventType }
func (e BaseEvent) GetOccurredAt() time.Time { return e.OccurredAt }

// EventHandler processes events of the types it subscribed to.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
}

// EventPublisher hands events to subscribers. Publishing never blocks the
// caller; an event that cannot be queued is reported as an error.
type EventPublisher interface {
	Publish(event DomainEvent) error
	PublishAll(events []DomainEvent) error
}

type EventSubscriber interface {
	Subscribe(eventType string, handler EventHandler) error
}

type EventDispatcher interface {
	EventPublisher
	EventSubscriber
	Start() error
	Stop() error
}

// HandlerFunc adapts a function to EventHandler.
type HandlerFunc func(ctx context.Context, event DomainEvent) error

func (f HandlerFunc) Handle(ctx context.Context, event DomainEvent) error {
	return f(ctx, event)
}
