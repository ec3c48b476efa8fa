package coordinator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/sleepwatcher/internal/application/port"
	"github.com/bnema/sleepwatcher/internal/domain/event"
)

// fakeNotifier records subscribe and destroy operations in order.
type fakeNotifier struct {
	mu   sync.Mutex
	ops  []string
	ids  []event.SubscriptionID
	live map[event.SubscriptionID]*fakeNotification
	err  error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{live: make(map[event.SubscriptionID]*fakeNotification)}
}

func (n *fakeNotifier) Subscribe(id event.SubscriptionID, timeout time.Duration) (port.IdleNotification, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return nil, n.err
	}
	h := &fakeNotification{n: n, id: id}
	n.ops = append(n.ops, "subscribe "+id.String())
	n.ids = append(n.ids, id)
	n.live[id] = h
	return h, nil
}

func (n *fakeNotifier) Ops() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.ops...)
}

func (n *fakeNotifier) IDs() []event.SubscriptionID {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]event.SubscriptionID(nil), n.ids...)
}

func (n *fakeNotifier) Live() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.live)
}

type fakeNotification struct {
	n         *fakeNotifier
	id        event.SubscriptionID
	destroyed int
}

func (h *fakeNotification) Destroy() error {
	h.n.mu.Lock()
	defer h.n.mu.Unlock()
	h.destroyed++
	h.n.ops = append(h.n.ops, "destroy "+h.id.String())
	delete(h.n.live, h.id)
	return nil
}

type invocation struct {
	callback string
	args     []string
}

// fakeEngine executes Go closures keyed by script source.
type fakeEngine struct {
	mu        sync.Mutex
	host      port.ScriptHost
	scripts   map[string]func(h port.ScriptHost) error
	callbacks map[string]func(args ...string) error
	calls     []invocation
	resets    int
	onBattery bool
	closed    bool
	lastCtx   context.Context
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		scripts:   make(map[string]func(port.ScriptHost) error),
		callbacks: make(map[string]func(...string) error),
		onBattery: true,
	}
}

func (e *fakeEngine) Reset(host port.ScriptHost) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.host = host
	e.resets++
	return nil
}

func (e *fakeEngine) Exec(ctx context.Context, name string, source []byte) error {
	e.mu.Lock()
	fn, ok := e.scripts[string(source)]
	host := e.host
	e.lastCtx = ctx
	e.mu.Unlock()
	if !ok {
		return fmt.Errorf("%s: syntax error", name)
	}
	return fn(host)
}

func (e *fakeEngine) Invoke(ctx context.Context, callback string, args ...string) error {
	e.mu.Lock()
	e.calls = append(e.calls, invocation{callback: callback, args: args})
	e.lastCtx = ctx
	fn, ok := e.callbacks[callback]
	e.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", port.ErrCallbackNotFound, callback)
	}
	return fn(args...)
}

func (e *fakeEngine) SetOnBattery(onBattery bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onBattery = onBattery
	return nil
}

func (e *fakeEngine) OnBattery() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.onBattery
}

func (e *fakeEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	return nil
}

func (e *fakeEngine) Calls() []invocation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]invocation(nil), e.calls...)
}

func (e *fakeEngine) Closed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

// fakeSource serves an in-memory script that tests can swap.
type fakeSource struct {
	mu  sync.Mutex
	src string
	err error
}

func (s *fakeSource) Name() string { return "test.lua" }

func (s *fakeSource) Read() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return []byte(s.src), nil
}

func (s *fakeSource) Set(src string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.src = src
	s.err = nil
}

type countingFlusher struct {
	mu sync.Mutex
	n  int
}

func (f *countingFlusher) Flush() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	return nil
}

func (f *countingFlusher) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.n
}

// manualClock replaces time.AfterFunc with timers fired by the test.
type manualClock struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (c *manualClock) schedule(d time.Duration, f func()) func() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{d: d, f: f}
	c.timers = append(c.timers, t)
	return func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		was := !t.stopped
		t.stopped = true
		return was
	}
}

// fire runs timer i even if it was stopped, like a timer that raced Stop.
func (c *manualClock) fire(i int) {
	c.mu.Lock()
	t := c.timers[i]
	c.mu.Unlock()
	t.f()
}

func (c *manualClock) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

type countingRecorder struct {
	mu           sync.Mutex
	events       map[event.Kind]int
	scriptErrors map[string]int
	acquired     []bool
	last         Snapshot
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{
		events:       make(map[event.Kind]int),
		scriptErrors: make(map[string]int),
	}
}

func (r *countingRecorder) EventProcessed(kind event.Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[kind]++
}

func (r *countingRecorder) ScriptError(phase string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scriptErrors[phase]++
}

func (r *countingRecorder) InhibitAcquired(held bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.acquired = append(r.acquired, held)
}

func (r *countingRecorder) Observe(s Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = s
}

func (r *countingRecorder) ScriptErrors(phase string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.scriptErrors[phase]
}

// fakeDevice yields reads pushed by the test.
type fakeDevice struct {
	reads  chan deviceRead
	mu     sync.Mutex
	closed bool
}

type deviceRead struct {
	ev  port.InputEvent
	err error
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{reads: make(chan deviceRead, 16)}
}

func (d *fakeDevice) Next(ctx context.Context) (port.InputEvent, error) {
	select {
	case <-ctx.Done():
		return port.InputEvent{}, ctx.Err()
	case r := <-d.reads:
		return r.ev, r.err
	}
}

func (d *fakeDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

func (d *fakeDevice) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

func (d *fakeDevice) key(code uint16) {
	d.reads <- deviceRead{ev: port.InputEvent{Type: port.EvKey, Code: code, Value: 1}}
}

type fakeOpener struct {
	mu      sync.Mutex
	devices map[string]*fakeDevice
	opened  map[string]int
}

func newFakeOpener() *fakeOpener {
	return &fakeOpener{devices: make(map[string]*fakeDevice), opened: make(map[string]int)}
}

func (o *fakeOpener) add(id string) *fakeDevice {
	o.mu.Lock()
	defer o.mu.Unlock()
	d := newFakeDevice()
	o.devices[id] = d
	return d
}

func (o *fakeOpener) Open(deviceID string) (port.InputDevice, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.opened[deviceID]++
	d, ok := o.devices[deviceID]
	if !ok {
		return nil, fmt.Errorf("open /dev/input/%s: no such device", deviceID)
	}
	return d, nil
}
