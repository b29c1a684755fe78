package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/assistitk12/assistitk12/internal/domain/directory"
	"github.com/assistitk12/assistitk12/internal/domain/shared/events"
	"github.com/assistitk12/assistitk12/internal/domain/ticket"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
)

const resolveTimeout = 5 * time.Second

type enqueuer interface {
	Enqueue(msg Message) error
}

// TextCleaner turns stored comment HTML into plain text.
type TextCleaner interface {
	StripTags(text string) string
}

// Notifier is the event publisher handed to ticket use cases. It resolves
// recipients and renders the message in the caller's goroutine, then hands
// delivery to the queue. It never reports an error to the caller.
type Notifier struct {
	titleRepo directory.TitleRepository
	userRepo  directory.UserRepository
	queue     enqueuer
	cleaner   TextCleaner
	logger    logger.Interface
}

func NewNotifier(
	titleRepo directory.TitleRepository,
	userRepo directory.UserRepository,
	queue enqueuer,
	cleaner TextCleaner,
	logger logger.Interface,
) *Notifier {
	return &Notifier{
		titleRepo: titleRepo,
		userRepo:  userRepo,
		queue:     queue,
		cleaner:   cleaner,
		logger:    logger,
	}
}

func (n *Notifier) Publish(ev events.DomainEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()
	n.Notify(ctx, ev)
	return nil
}

func (n *Notifier) PublishAll(evs []events.DomainEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()
	for _, ev := range evs {
		n.Notify(ctx, ev)
	}
	return nil
}

// Notify handles one event; failures are logged and swallowed.
func (n *Notifier) Notify(ctx context.Context, ev events.DomainEvent) {
	tev, ok := ev.(ticket.Event)
	if !ok {
		return
	}
	if ce, ok := tev.(ticket.CommentedEvent); ok && n.cleaner != nil {
		ce.Text = n.cleaner.StripTags(ce.Text)
		tev = ce
	}

	snap, err := n.resolve(ctx, tev)
	if err != nil {
		n.logger.Warnw("failed to resolve notification recipients",
			"event_type", ev.GetEventType(),
			"ticket_id", ev.GetAggregateID(),
			"error", err,
		)
		return
	}

	msg, ok := Compose(tev, snap)
	if !ok {
		n.logger.Debugw("no notification for event", "event_type", ev.GetEventType(), "ticket_id", ev.GetAggregateID())
		return
	}

	if err := n.queue.Enqueue(msg); err != nil {
		n.logger.Warnw("failed to enqueue notification",
			"event_type", ev.GetEventType(),
			"ticket_id", ev.GetAggregateID(),
			"error", err,
		)
	}
}

func (n *Notifier) resolve(ctx context.Context, ev ticket.Event) (Snapshot, error) {
	ref := ev.TicketRef()
	snap := Snapshot{TicketID: ref.TicketID}

	title, err := n.titleRepo.GetByID(ctx, ref.TitleID)
	if err != nil {
		return snap, fmt.Errorf("failed to get title: %w", err)
	}
	if title != nil {
		snap.TitleName = title.Name()
	}

	ids := []uint{ref.CreatorID}
	if ref.AssigneeID != nil {
		ids = append(ids, *ref.AssigneeID)
	}
	var authorID uint
	if ce, ok := ev.(ticket.CommentedEvent); ok {
		authorID = ce.AuthorID
		ids = append(ids, authorID)
	}

	users, err := n.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return snap, fmt.Errorf("failed to get users: %w", err)
	}
	byID := make(map[uint]*Recipient, len(users))
	for _, u := range users {
		byID[u.ID()] = &Recipient{
			UserID:    u.ID(),
			FirstName: u.FirstName(),
			FullName:  u.FullName(),
			Email:     u.Email(),
		}
	}

	snap.Creator = byID[ref.CreatorID]
	if ref.AssigneeID != nil {
		snap.Assignee = byID[*ref.AssigneeID]
	}
	if authorID != 0 {
		snap.Commenter = byID[authorID]
	}
	return snap, nil
}
