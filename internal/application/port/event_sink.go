package port

import (
	"context"

	"github.com/bnema/sleepwatcher/internal/domain/event"
)

// EventSink accepts events from producers. Submit blocks while the sink is
// full and returns when the event is accepted, ctx is done, or the consumer
// has stopped.
type EventSink interface {
	Submit(ctx context.Context, ev event.Event) error
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(ctx context.Context, ev event.Event) error

// Submit calls f(ctx, ev).
func (f EventSinkFunc) Submit(ctx context.Context, ev event.Event) error {
	return f(ctx, ev)
}
