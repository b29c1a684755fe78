package notification

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/assistitk12/assistitk12/internal/domain/shared/events"
	"github.com/assistitk12/assistitk12/internal/shared/biztime"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
)

const eventTypeMail = "notification.mail"

// Mailer delivers a single message.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type mailEvent struct {
	events.BaseEvent
	msg Message
}

// Queue delivers messages on a worker pool. Enqueue never blocks; when the
// buffer is full the message is dropped.
type Queue struct {
	dispatcher *events.InMemoryEventDispatcher
	logger     logger.Interface
}

func NewQueue(mailer Mailer, opts events.DispatcherOptions, observer events.DispatchObserver, log logger.Interface) (*Queue, error) {
	d := events.NewInMemoryEventDispatcher(opts, log)
	if observer != nil {
		d.SetObserver(observer)
	}

	err := d.Subscribe(eventTypeMail, events.HandlerFunc(func(ctx context.Context, ev events.DomainEvent) error {
		me, ok := ev.(mailEvent)
		if !ok {
			return fmt.Errorf("unexpected event %T on mail queue", ev)
		}
		if err := mailer.Send(ctx, me.msg); err != nil {
			return fmt.Errorf("failed to send %q to %v: %w", me.msg.Subject, me.msg.To, err)
		}
		log.Infow("notification sent", "subject", me.msg.Subject, "recipients", len(me.msg.To))
		return nil
	}))
	if err != nil {
		return nil, err
	}

	return &Queue{dispatcher: d, logger: log}, nil
}

func (q *Queue) Start() error { return q.dispatcher.Start() }

// Stop drains queued messages and waits for the workers.
func (q *Queue) Stop() error { return q.dispatcher.Stop() }

func (q *Queue) Enqueue(msg Message) error {
	err := q.dispatcher.Publish(mailEvent{
		BaseEvent: events.BaseEvent{EventType: eventTypeMail, OccurredAt: biztime.NowUTC()},
		msg:       msg,
	})
	if stderrors.Is(err, events.ErrQueueFull) {
		q.logger.Warnw("notification dropped, queue is full", "subject", msg.Subject)
	}
	return err
}
