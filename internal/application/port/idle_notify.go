package port

import (
	"time"

	"github.com/bnema/sleepwatcher/internal/domain/event"
)

// IdleNotifier creates native idle timers. Transitions for a timer are
// delivered as event.IdleTransition carrying the id passed to Subscribe.
type IdleNotifier interface {
	Subscribe(id event.SubscriptionID, timeout time.Duration) (IdleNotification, error)
}

// IdleNotification is the native handle of one idle timer.
type IdleNotification interface {
	Destroy() error
}

// Flusher writes out requests buffered on a protocol connection.
type Flusher interface {
	Flush() error
}
