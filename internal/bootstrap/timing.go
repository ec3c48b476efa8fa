package bootstrap

import (
	"context"
	"time"

	"github.com/bnema/sleepwatcher/internal/logging"
)

// StartupTimer records how long each startup phase took.
type StartupTimer struct {
	start  time.Time
	phases map[string]time.Duration
	order  []string
	last   time.Time
}

// NewStartupTimer creates a new timer starting from now.
func NewStartupTimer() *StartupTimer {
	now := time.Now()
	return &StartupTimer{
		start:  now,
		phases: make(map[string]time.Duration),
		last:   now,
	}
}

// Mark records the duration since the last mark (or start) for phase.
func (t *StartupTimer) Mark(phase string) {
	now := time.Now()
	t.phases[phase] = now.Sub(t.last)
	t.order = append(t.order, phase)
	t.last = now
}

// Log writes all phases at debug level.
func (t *StartupTimer) Log(ctx context.Context) {
	event := logging.FromContext(ctx).Debug().Dur("total", time.Since(t.start))
	for _, phase := range t.order {
		event = event.Dur(phase, t.phases[phase])
	}
	event.Msg("startup timing")
}
