package coordinator

import (
	"context"
	"errors"
	"time"

	"github.com/bnema/sleepwatcher/internal/application/port"
	"github.com/bnema/sleepwatcher/internal/domain/event"
	"github.com/bnema/sleepwatcher/internal/logging"
)

const defaultInhibitHold = 5 * time.Second

// scheduleFunc runs f once after d and returns a function that cancels the
// pending run. It mirrors time.AfterFunc so tests can drive time by hand.
type scheduleFunc func(d time.Duration, f func()) (stop func() bool)

func afterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// InhibitOptions tunes the hold window.
type InhibitOptions struct {
	// Hold is how long an inhibition lasts after the request that opened it.
	Hold time.Duration
	// Rearm pushes the release out by Hold on every request received while
	// active. When false, requests during an active window are no-ops.
	Rearm bool
}

// InhibitController owns the "sleep suppressed" state. It is driven by the
// router only; in-window requests never create a second native inhibition.
type InhibitController struct {
	inhibitor port.Inhibitor
	deliver   func(event.Event)
	schedule  scheduleFunc
	hold      time.Duration
	rearm     bool

	active     bool
	handle     port.InhibitHandle
	generation uint64
	stopTimer  func() bool
}

// NewInhibitController creates an idle controller. deliver is called from the
// timer goroutine with the InhibitReleased event closing a window; it must
// hand the event back to the router.
func NewInhibitController(inhibitor port.Inhibitor, deliver func(event.Event), opts InhibitOptions) *InhibitController {
	hold := opts.Hold
	if hold <= 0 {
		hold = defaultInhibitHold
	}
	return &InhibitController{
		inhibitor: inhibitor,
		deliver:   deliver,
		schedule:  afterFunc,
		hold:      hold,
		rearm:     opts.Rearm,
	}
}

// Request opens a hold window if none is active. It reports whether a native
// inhibition was acquired by this call.
func (c *InhibitController) Request(ctx context.Context) bool {
	log := logging.FromContext(ctx)

	if c.active {
		if c.rearm {
			c.arm()
			log.Trace().Uint64("generation", c.generation).Msg("inhibit window extended")
		}
		return false
	}

	c.active = true
	if c.inhibitor != nil {
		handle, err := c.inhibitor.Acquire(ctx)
		switch {
		case err == nil:
			c.handle = handle
		case errors.Is(err, port.ErrUnavailable):
			log.Debug().Err(err).Msg("inhibit backend unavailable, holding without native inhibition")
		default:
			log.Warn().Err(err).Msg("failed to acquire inhibition")
		}
	}
	c.arm()

	log.Debug().
		Bool("held", c.handle != nil).
		Dur("hold", c.hold).
		Uint64("generation", c.generation).
		Msg("inhibit window opened")
	return c.handle != nil
}

// Release closes the window opened under generation. Stale generations are
// ignored. It reports whether a window was closed.
func (c *InhibitController) Release(ctx context.Context, generation uint64) bool {
	if !c.active || generation != c.generation {
		logging.FromContext(ctx).Trace().
			Uint64("generation", generation).
			Uint64("current", c.generation).
			Msg("ignoring stale inhibit release")
		return false
	}

	c.stopTimer = nil
	c.releaseHandle(ctx)
	c.active = false
	logging.FromContext(ctx).Debug().Msg("inhibit window closed")
	return true
}

// Stop cancels the pending release and drops any held inhibition.
func (c *InhibitController) Stop(ctx context.Context) {
	if c.stopTimer != nil {
		c.stopTimer()
		c.stopTimer = nil
	}
	c.generation++
	if c.active {
		c.releaseHandle(ctx)
		c.active = false
	}
}

// Active reports whether a hold window is open.
func (c *InhibitController) Active() bool { return c.active }

// Held reports whether a native inhibition is currently held.
func (c *InhibitController) Held() bool { return c.handle != nil }

func (c *InhibitController) arm() {
	if c.stopTimer != nil {
		c.stopTimer()
	}
	c.generation++
	gen := c.generation
	c.stopTimer = c.schedule(c.hold, func() {
		c.deliver(event.InhibitReleased{Generation: gen})
	})
}

func (c *InhibitController) releaseHandle(ctx context.Context) {
	if c.handle == nil {
		return
	}
	if err := c.handle.Release(ctx); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("failed to release inhibition")
	}
	c.handle = nil
}
