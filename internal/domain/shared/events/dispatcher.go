package events

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/assistitk12/assistitk12/internal/shared/goroutine"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
)

var (
	ErrDispatcherNotRunning = errors.New("event dispatcher is not running")
	ErrQueueFull            = errors.New("event queue is full")
)

// DispatcherOptions sizes the queue and worker pool.
type DispatcherOptions struct {
	BufferSize     int
	Workers        int
	HandlerTimeout time.Duration
}

// DispatchObserver is notified about queue outcomes; used for metrics.
type DispatchObserver interface {
	EventQueued(eventType string)
	EventDropped(eventType string)
	EventHandled(eventType string, err error)
}

// InMemoryEventDispatcher delivers events to subscribers on a fixed pool of
// worker goroutines fed by a bounded channel. Events still queued at Stop are
// drained before Stop returns.
type InMemoryEventDispatcher struct {
	handlers map[string][]EventHandler
	mu       sync.RWMutex
	running  bool
	eventCh  chan DomainEvent
	stopCh   chan struct{}
	wg       sync.WaitGroup
	opts     DispatcherOptions
	observer DispatchObserver
	logger   logger.Interface
}

func NewInMemoryEventDispatcher(opts DispatcherOptions, log logger.Interface) *InMemoryEventDispatcher {
	if opts.BufferSize <= 0 {
		opts.BufferSize = 100
	}
	if opts.Workers <= 0 {
		opts.Workers = 2
	}
	if opts.HandlerTimeout <= 0 {
		opts.HandlerTimeout = 30 * time.Second
	}

	return &InMemoryEventDispatcher{
		handlers: make(map[string][]EventHandler),
		eventCh:  make(chan DomainEvent, opts.BufferSize),
		stopCh:   make(chan struct{}),
		opts:     opts,
		logger:   log,
	}
}

// SetObserver installs an observer. Must be called before Start.
func (d *InMemoryEventDispatcher) SetObserver(o DispatchObserver) {
	d.observer = o
}

// Publish queues event without blocking. The read lock is held across the
// send so Stop cannot begin draining while a send is in flight.
func (d *InMemoryEventDispatcher) Publish(event DomainEvent) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if !d.running {
		return ErrDispatcherNotRunning
	}

	select {
	case d.eventCh <- event:
		if d.observer != nil {
			d.observer.EventQueued(event.GetEventType())
		}
		return nil
	default:
		if d.observer != nil {
			d.observer.EventDropped(event.GetEventType())
		}
		return fmt.Errorf("%w: %s", ErrQueueFull, event.GetEventType())
	}
}

// PublishAll queues every event, continuing past failures, and returns the
// joined errors.
func (d *InMemoryEventDispatcher) PublishAll(events []DomainEvent) error {
	var errs []error
	for _, event := range events {
		if err := d.Publish(event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (d *InMemoryEventDispatcher) Subscribe(eventType string, handler EventHandler) error {
	if eventType == "" {
		return fmt.Errorf("event type cannot be empty")
	}
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventType] = append(d.handlers[eventType], handler)
	return nil
}

func (d *InMemoryEventDispatcher) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		return fmt.Errorf("event dispatcher is already running")
	}
	d.running = true

	for i := 0; i < d.opts.Workers; i++ {
		d.wg.Add(1)
		goroutine.SafeGo(d.logger, fmt.Sprintf("event-worker-%d", i), func() {
			defer d.wg.Done()
			d.work()
		})
	}

	d.logger.Infow("event dispatcher started", "workers", d.opts.Workers, "buffer_size", d.opts.BufferSize)
	return nil
}

func (d *InMemoryEventDispatcher) Stop() error {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return ErrDispatcherNotRunning
	}
	d.running = false
	d.mu.Unlock()

	close(d.stopCh)
	d.wg.Wait()
	d.logger.Infow("event dispatcher stopped")
	return nil
}

func (d *InMemoryEventDispatcher) work() {
	for {
		select {
		case <-d.stopCh:
			for {
				select {
				case event := <-d.eventCh:
					d.handleEvent(event)
				default:
					return
				}
			}
		case event := <-d.eventCh:
			d.handleEvent(event)
		}
	}
}

func (d *InMemoryEventDispatcher) handleEvent(event DomainEvent) {
	d.mu.RLock()
	handlers := d.handlers[event.GetEventType()]
	d.mu.RUnlock()

	for _, h := range handlers {
		err := d.invoke(h, event)
		if err != nil {
			d.logger.Warnw("event handler failed",
				"event_type", event.GetEventType(),
				"aggregate_id", event.GetAggregateID(),
				"error", err,
			)
		}
		if d.observer != nil {
			d.observer.EventHandled(event.GetEventType(), err)
		}
	}
}

// invoke runs one handler with a timeout; a panic becomes an error so the
// worker survives.
func (d *InMemoryEventDispatcher) invoke(h EventHandler, event DomainEvent) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), d.opts.HandlerTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			d.logger.Errorw("event handler panicked",
				"event_type", event.GetEventType(),
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()

	return h.Handle(ctx, event)
}
