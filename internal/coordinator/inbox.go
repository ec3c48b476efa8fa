package coordinator

import (
	"context"
	"errors"
	"sync"

	"github.com/bnema/sleepwatcher/internal/application/port"
	"github.com/bnema/sleepwatcher/internal/domain/event"
)

const defaultQueueSize = 32

// Inbox is the bounded multi-producer, single-consumer event channel feeding
// the router.
type Inbox struct {
	ch   chan event.Event
	done chan struct{}
	once sync.Once
}

var _ port.EventSink = (*Inbox)(nil)

// NewInbox creates an inbox holding up to size pending events.
func NewInbox(size int) *Inbox {
	if size <= 0 {
		size = defaultQueueSize
	}
	return &Inbox{
		ch:   make(chan event.Event, size),
		done: make(chan struct{}),
	}
}

// Submit blocks until ev is queued, ctx is done, or the router stopped.
func (q *Inbox) Submit(ctx context.Context, ev event.Event) error {
	if ev == nil {
		return errors.New("submit nil event")
	}

	select {
	case <-q.done:
		return port.ErrStopped
	default:
	}

	select {
	case q.ch <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-q.done:
		return port.ErrStopped
	}
}

// Len returns the number of queued events.
func (q *Inbox) Len() int {
	return len(q.ch)
}

// Cap returns the inbox capacity.
func (q *Inbox) Cap() int {
	return cap(q.ch)
}

func (q *Inbox) stop() {
	q.once.Do(func() { close(q.done) })
}
