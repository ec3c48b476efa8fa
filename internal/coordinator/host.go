package coordinator

import (
	"errors"
	"time"

	"github.com/bnema/sleepwatcher/internal/application/port"
	"github.com/bnema/sleepwatcher/internal/domain/event"
	"github.com/bnema/sleepwatcher/internal/logging"
)

// routerHost implements the script capabilities on top of router state. Its
// methods are only reachable from script code running on a router turn.
type routerHost struct {
	r *Router
}

var _ port.ScriptHost = (*routerHost)(nil)

func (h *routerHost) CreateIdleSubscription(timeout time.Duration, callback string) error {
	r := h.r
	id, err := r.registry.Register(callback, timeout)
	if err != nil {
		return err
	}
	r.dirty = true

	logging.FromContext(r.ctx).Debug().
		Str("subscription", id.String()).
		Str("callback", callback).
		Dur("timeout", timeout).
		Msg("idle subscription created")
	return nil
}

func (h *routerHost) RunCommand(commandLine string) error {
	r := h.r
	if r.runner == nil {
		return errors.New("command runner not configured")
	}
	return r.runner.Run(r.ctx, commandLine)
}

func (h *routerHost) RunCommandOnce(commandLine string) error {
	r := h.r
	if r.runner == nil {
		return errors.New("command runner not configured")
	}
	started, err := r.runner.RunOnce(r.ctx, commandLine)
	if err != nil {
		return err
	}
	if !started {
		logging.FromContext(r.ctx).Debug().Str("command", commandLine).Msg("already running, not started")
	}
	return nil
}

func (h *routerHost) RegisterSessionHandler(kind, callback string) error {
	signal, err := event.ParseSignalKind(kind)
	if err != nil {
		return err
	}
	if callback == "" {
		return errors.New("callback name is empty")
	}
	h.r.handlers[signal] = callback

	logging.FromContext(h.r.ctx).Debug().
		Str("signal", signal.String()).
		Str("callback", callback).
		Msg("session handler registered")
	return nil
}

func (h *routerHost) Log(message string) {
	logging.FromContext(h.r.ctx).Info().Str("source", "script").Msg(message)
}
