package coordinator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/bnema/sleepwatcher/internal/application/port"
	"github.com/bnema/sleepwatcher/internal/domain/event"
	"github.com/bnema/sleepwatcher/internal/logging"
)

// ScriptSource yields the current user script.
type ScriptSource interface {
	Name() string
	Read() ([]byte, error)
}

// ScriptFile reads the script from a path on every reload.
type ScriptFile string

func (f ScriptFile) Name() string { return string(f) }

func (f ScriptFile) Read() ([]byte, error) { return os.ReadFile(string(f)) }

// Deps are the collaborators the router drives. Only Engine and Script are
// required; a nil collaborator disables the matching feature.
type Deps struct {
	Engine     port.ScriptEngine
	Script     ScriptSource
	Notifier   port.IdleNotifier
	Flusher    port.Flusher
	Inhibitor  port.Inhibitor
	Runner     port.CommandRunner
	Opener     port.InputOpener
	Classifier port.DeviceClassifier
	Recorder   Recorder
}

// Options tunes router behavior.
type Options struct {
	InhibitHold      time.Duration
	InhibitRearm     bool
	ActivityInterval time.Duration
	// ScriptTimeout bounds each script call. Zero means unbounded.
	ScriptTimeout time.Duration
	// StrictEvents panics on an event the router cannot dispatch instead of
	// logging and dropping it.
	StrictEvents bool
}

// Router is the single consumer of the inbox and the only mutator of
// coordination state.
type Router struct {
	inbox    *Inbox
	engine   port.ScriptEngine
	script   ScriptSource
	flusher  port.Flusher
	runner   port.CommandRunner
	recorder Recorder
	opts     Options

	registry *Registry
	inhibit  *InhibitController
	devices  *DeviceSupervisor
	host     *routerHost

	// Owned by the router goroutine.
	ctx        context.Context
	pending    []event.Event
	dirty      bool
	handlers   map[event.SignalKind]string
	onBattery  bool
	lastGood   []byte
	generation uint64
	processed  uint64

	runCtx   atomic.Pointer[context.Context]
	snapshot atomic.Pointer[Snapshot]
}

// NewRouter wires a router to inbox.
func NewRouter(inbox *Inbox, deps Deps, opts Options) (*Router, error) {
	if inbox == nil {
		return nil, errors.New("router: inbox is required")
	}
	if deps.Engine == nil {
		return nil, errors.New("router: script engine is required")
	}
	if deps.Script == nil {
		return nil, errors.New("router: script source is required")
	}

	r := &Router{
		inbox:     inbox,
		engine:    deps.Engine,
		script:    deps.Script,
		flusher:   deps.Flusher,
		runner:    deps.Runner,
		recorder:  deps.Recorder,
		opts:      opts,
		registry:  NewRegistry(deps.Notifier),
		handlers:  make(map[event.SignalKind]string),
		onBattery: true,
		ctx:       context.Background(),
	}
	if r.recorder == nil {
		r.recorder = nopRecorder{}
	}
	r.host = &routerHost{r: r}
	r.inhibit = NewInhibitController(deps.Inhibitor, r.deliver, InhibitOptions{
		Hold:  opts.InhibitHold,
		Rearm: opts.InhibitRearm,
	})

	interval := opts.ActivityInterval
	if interval == 0 {
		interval = defaultActivityInterval
	}
	r.devices = NewDeviceSupervisor(deps.Opener, deps.Classifier, inbox, SupervisorOptions{
		ActivityInterval: interval,
	})

	r.publish()
	return r, nil
}

// Run consumes the inbox until ctx is done, then shuts down owned resources
// in order: inhibition, device tasks, subscriptions, a final flush and the
// script engine.
func (r *Router) Run(ctx context.Context) error {
	ctx = logging.WithComponent(ctx, "router")
	r.runCtx.Store(&ctx)
	log := logging.FromContext(ctx)
	log.Info().Int("queue_size", r.inbox.Cap()).Msg("router started")

	defer r.shutdown(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("router stopping")
			return nil
		case ev := <-r.inbox.ch:
			r.process(ctx, ev)
		}
	}
}

// Snapshot returns the state published after the last completed turn.
func (r *Router) Snapshot() Snapshot {
	if s := r.snapshot.Load(); s != nil {
		return *s
	}
	return Snapshot{}
}

// process handles one inbox event followed by everything it emitted to the
// router-local queue. Self-emitted events run before the next inbox event.
func (r *Router) process(ctx context.Context, ev event.Event) {
	r.ctx = ctx
	r.dispatch(ctx, ev)

	for len(r.pending) > 0 || r.dirty {
		if len(r.pending) == 0 {
			r.emit(event.FlushRequested{})
		}
		next := r.pending[0]
		r.pending = r.pending[1:]
		r.dispatch(ctx, next)
	}

	r.publish()
}

func (r *Router) emit(ev event.Event) {
	r.pending = append(r.pending, ev)
}

func (r *Router) dispatch(ctx context.Context, ev event.Event) {
	if ev == nil {
		r.malformed(ctx, ev)
		return
	}

	r.processed++
	r.recorder.EventProcessed(ev.Kind())
	logging.FromContext(ctx).Trace().Str("event", ev.Kind().String()).Msg("dispatch")

	switch ev := ev.(type) {
	case event.ConfigChanged:
		r.onConfigChanged(ctx)
	case event.ScriptReloadRequested:
		r.reloadScript(ctx)
	case event.BatteryStateChanged:
		r.onBatteryChanged(ctx, ev.OnBattery)
	case event.SessionSignal:
		r.onSessionSignal(ctx, ev.Signal)
	case event.IdleTransition:
		r.onIdleTransition(ctx, ev)
	case event.DeviceAdded:
		r.devices.OnAdded(ctx, ev.DeviceID)
	case event.DeviceRemoved:
		r.devices.OnRemoved(ctx, ev.DeviceID)
	case event.DeviceLost:
		r.devices.OnLost(ctx, ev.DeviceID, ev.Task)
	case event.DeviceActivity, event.InhibitRequested:
		r.requestInhibit(ctx)
	case event.InhibitReleased:
		if r.inhibit.Release(ctx, ev.Generation) {
			r.dirty = true
		}
	case event.FlushRequested:
		r.flush(ctx)
	default:
		r.malformed(ctx, ev)
	}
}

func (r *Router) malformed(ctx context.Context, ev event.Event) {
	if r.opts.StrictEvents {
		panic(fmt.Sprintf("router: cannot dispatch event %T", ev))
	}
	logging.FromContext(ctx).Error().Str("type", fmt.Sprintf("%T", ev)).Msg("dropping event the router cannot dispatch")
}

func (r *Router) onConfigChanged(ctx context.Context) {
	n := r.teardown(ctx)
	logging.FromContext(ctx).Info().Int("released", n).Msg("script changed, reloading")

	r.emit(event.FlushRequested{})
	r.emit(event.ScriptReloadRequested{})
}

// teardown destroys every subscription and forgets session handlers.
func (r *Router) teardown(ctx context.Context) int {
	n, err := r.registry.ClearAll()
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("failed to destroy some idle subscriptions")
	}
	clear(r.handlers)
	if n > 0 {
		r.dirty = true
	}
	return n
}

// reloadScript executes the current script in a fresh interpreter. When the
// new source fails, its partial registrations are discarded and the last
// source that loaded cleanly is executed again.
func (r *Router) reloadScript(ctx context.Context) {
	log := logging.FromContext(ctx).With().Str("script", r.script.Name()).Logger()

	source, err := r.script.Read()
	if err != nil {
		err = fmt.Errorf("read script: %w", err)
	} else {
		err = r.load(ctx, source)
	}
	if err == nil {
		r.lastGood = source
		r.generation++
		log.Info().
			Uint64("generation", r.generation).
			Int("subscriptions", r.registry.Len()).
			Int("session_handlers", len(r.handlers)).
			Msg("script loaded")
		return
	}

	r.recorder.ScriptError(PhaseLoad)
	log.Error().Err(err).Msg("script load failed")

	if r.lastGood == nil {
		r.teardown(ctx)
		if err := r.engine.Reset(r.host); err != nil {
			log.Error().Err(err).Msg("failed to reset script engine")
		}
		return
	}

	if err := r.load(ctx, r.lastGood); err != nil {
		r.teardown(ctx)
		log.Error().Err(err).Msg("last good script failed to load")
		return
	}
	log.Warn().Uint64("generation", r.generation).Msg("kept last good script")
}

func (r *Router) load(ctx context.Context, source []byte) error {
	r.teardown(ctx)

	if err := r.engine.Reset(r.host); err != nil {
		return fmt.Errorf("reset script engine: %w", err)
	}
	if err := r.engine.SetOnBattery(r.onBattery); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("failed to apply battery state")
	}

	callCtx, cancel := r.callContext(ctx)
	defer cancel()
	return r.engine.Exec(callCtx, r.script.Name(), source)
}

func (r *Router) onBatteryChanged(ctx context.Context, onBattery bool) {
	r.onBattery = onBattery
	if err := r.engine.SetOnBattery(onBattery); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("failed to apply battery state")
		return
	}
	logging.FromContext(ctx).Info().Bool("on_battery", onBattery).Msg("battery state changed")
}

func (r *Router) onSessionSignal(ctx context.Context, signal event.SignalKind) {
	callback, ok := r.handlers[signal]
	if !ok {
		logging.FromContext(ctx).Debug().Str("signal", signal.String()).Msg("no session handler registered")
		return
	}
	r.invoke(ctx, PhaseSession, callback)
}

func (r *Router) onIdleTransition(ctx context.Context, ev event.IdleTransition) {
	callback, ok := r.registry.Lookup(ev.Subscription)
	if !ok {
		logging.FromContext(ctx).Debug().
			Str("subscription", ev.Subscription.String()).
			Msg("transition for unknown subscription")
		return
	}
	r.invoke(ctx, PhaseCallback, callback, ev.Phase.String())
}

func (r *Router) invoke(ctx context.Context, phase, callback string, args ...string) {
	callCtx, cancel := r.callContext(ctx)
	defer cancel()

	err := r.engine.Invoke(callCtx, callback, args...)
	if err == nil {
		return
	}

	r.recorder.ScriptError(phase)
	log := logging.FromContext(ctx)
	if errors.Is(err, port.ErrCallbackNotFound) {
		log.Warn().Str("callback", callback).Msg("script callback not found")
		return
	}
	log.Error().Err(err).Str("callback", callback).Msg("script callback failed")
}

func (r *Router) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.ScriptTimeout > 0 {
		return context.WithTimeout(ctx, r.opts.ScriptTimeout)
	}
	return context.WithCancel(ctx)
}

func (r *Router) requestInhibit(ctx context.Context) {
	wasActive := r.inhibit.Active()
	held := r.inhibit.Request(ctx)
	if !wasActive {
		r.recorder.InhibitAcquired(held)
		r.dirty = true
	}
}

func (r *Router) flush(ctx context.Context) {
	r.dirty = false
	if r.flusher == nil {
		return
	}
	if err := r.flusher.Flush(); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("failed to flush compositor connection")
	}
}

// deliver hands a timer-generated event back to the inbox. It runs on the
// timer goroutine.
func (r *Router) deliver(ev event.Event) {
	ctx := context.Background()
	if p := r.runCtx.Load(); p != nil {
		ctx = *p
	}
	if err := r.inbox.Submit(ctx, ev); err != nil {
		logging.FromContext(ctx).Debug().Err(err).Str("event", ev.Kind().String()).Msg("dropping deferred event")
	}
}

func (r *Router) shutdown(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	r.ctx = ctx
	r.inbox.stop()

	r.inhibit.Stop(ctx)
	r.devices.Shutdown()
	n := r.teardown(ctx)
	r.flush(ctx)
	if err := r.engine.Close(); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("failed to close script engine")
	}
	r.publish()

	logging.FromContext(ctx).Info().Int("released", n).Msg("router stopped")
}

func (r *Router) publish() {
	handlers := make(map[string]string, len(r.handlers))
	for signal, callback := range r.handlers {
		handlers[signal.String()] = callback
	}

	s := Snapshot{
		Subscriptions:    r.registry.Len(),
		Devices:          r.devices.Devices(),
		InhibitActive:    r.inhibit.Active(),
		InhibitHeld:      r.inhibit.Held(),
		OnBattery:        r.onBattery,
		SessionHandlers:  handlers,
		ScriptGeneration: r.generation,
		EventsProcessed:  r.processed,
	}
	r.snapshot.Store(&s)
	r.recorder.Observe(s)
}

