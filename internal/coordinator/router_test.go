package coordinator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/bnema/sleepwatcher/internal/application/port"
	"github.com/bnema/sleepwatcher/internal/application/port/mocks"
	"github.com/bnema/sleepwatcher/internal/domain/event"
)

type routerFixture struct {
	router   *Router
	inbox    *Inbox
	engine   *fakeEngine
	source   *fakeSource
	notifier *fakeNotifier
	flusher  *countingFlusher
	recorder *countingRecorder
	clock    *manualClock
}

func newRouterFixture(t *testing.T, inhibitor port.Inhibitor, opts Options) *routerFixture {
	t.Helper()

	f := &routerFixture{
		inbox:    NewInbox(16),
		engine:   newFakeEngine(),
		source:   &fakeSource{},
		notifier: newFakeNotifier(),
		flusher:  &countingFlusher{},
		recorder: newCountingRecorder(),
		clock:    &manualClock{},
	}

	r, err := NewRouter(f.inbox, Deps{
		Engine:    f.engine,
		Script:    f.source,
		Notifier:  f.notifier,
		Flusher:   f.flusher,
		Inhibitor: inhibitor,
		Recorder:  f.recorder,
	}, opts)
	require.NoError(t, err)
	r.inhibit.schedule = f.clock.schedule
	f.router = r
	return f
}

// script installs source as a Go closure run against the host.
func (f *routerFixture) script(source string, body func(h port.ScriptHost) error) {
	f.engine.scripts[source] = body
}

func (f *routerFixture) load(t *testing.T, source string) {
	t.Helper()
	f.source.Set(source)
	f.router.process(context.Background(), event.ScriptReloadRequested{})
}

func TestNewRouter_RequiresDeps(t *testing.T) {
	_, err := NewRouter(nil, Deps{}, Options{})
	require.Error(t, err)

	_, err = NewRouter(NewInbox(1), Deps{Script: &fakeSource{}}, Options{})
	require.Error(t, err)

	_, err = NewRouter(NewInbox(1), Deps{Engine: newFakeEngine()}, Options{})
	require.Error(t, err)
}

func TestRouter_BatteryStateReachesScript(t *testing.T) {
	f := newRouterFixture(t, nil, Options{})
	assert.True(t, f.router.Snapshot().OnBattery)

	f.router.process(context.Background(), event.BatteryStateChanged{OnBattery: false})

	assert.False(t, f.engine.OnBattery())
	assert.False(t, f.router.Snapshot().OnBattery)
}

func TestRouter_BatteryStateSurvivesReload(t *testing.T) {
	f := newRouterFixture(t, nil, Options{})
	f.script("noop", func(port.ScriptHost) error { return nil })

	f.router.process(context.Background(), event.BatteryStateChanged{OnBattery: false})
	f.engine.onBattery = true
	f.load(t, "noop")

	assert.False(t, f.engine.OnBattery())
}

func TestRouter_IdleTransitionInvokesCallback(t *testing.T) {
	f := newRouterFixture(t, nil, Options{})
	f.script("one", func(h port.ScriptHost) error {
		return h.CreateIdleSubscription(60*time.Second, "on_idle")
	})
	var phases []string
	f.engine.callbacks["on_idle"] = func(args ...string) error {
		phases = append(phases, args...)
		return nil
	}

	f.load(t, "one")
	ids := f.notifier.IDs()
	require.Len(t, ids, 1)

	f.router.process(context.Background(), event.IdleTransition{Subscription: ids[0], Phase: event.Idled})
	f.router.process(context.Background(), event.IdleTransition{Subscription: ids[0], Phase: event.Resumed})

	assert.Equal(t, []string{"idled", "resumed"}, phases)
}

func TestRouter_TransitionForUnknownSubscriptionDropped(t *testing.T) {
	f := newRouterFixture(t, nil, Options{})

	f.router.process(context.Background(), event.IdleTransition{Subscription: event.NewSubscriptionID(), Phase: event.Idled})

	assert.Empty(t, f.engine.Calls())
}

func TestRouter_ConfigChangedReplacesSubscriptions(t *testing.T) {
	f := newRouterFixture(t, nil, Options{})
	f.script("v1", func(h port.ScriptHost) error {
		if err := h.CreateIdleSubscription(time.Minute, "a"); err != nil {
			return err
		}
		return h.CreateIdleSubscription(2*time.Minute, "b")
	})
	f.script("v2", func(h port.ScriptHost) error {
		return h.CreateIdleSubscription(3*time.Minute, "c")
	})

	f.load(t, "v1")
	old := f.notifier.IDs()
	require.Len(t, old, 2)

	f.source.Set("v2")
	f.router.process(context.Background(), event.ConfigChanged{})

	ops := f.notifier.Ops()
	require.Len(t, ops, 5)
	assert.ElementsMatch(t, []string{"destroy " + old[0].String(), "destroy " + old[1].String()}, ops[2:4])
	assert.True(t, strings.HasPrefix(ops[4], "subscribe "), "new subscriptions are created after teardown")

	for _, id := range old {
		f.router.process(context.Background(), event.IdleTransition{Subscription: id, Phase: event.Idled})
	}
	assert.Empty(t, f.engine.Calls(), "transitions for destroyed subscriptions are dropped")

	assert.Equal(t, 1, f.notifier.Live())
	assert.Equal(t, 1, f.router.Snapshot().Subscriptions)
	assert.Equal(t, uint64(2), f.router.Snapshot().ScriptGeneration)
}

func TestRouter_ConfigChangedFlushesTeardownBeforeReload(t *testing.T) {
	f := newRouterFixture(t, nil, Options{})
	flushesAtExec := -1
	f.script("v1", func(h port.ScriptHost) error {
		return h.CreateIdleSubscription(time.Minute, "a")
	})
	f.script("v2", func(h port.ScriptHost) error {
		flushesAtExec = f.flusher.Count()
		return h.CreateIdleSubscription(time.Minute, "a")
	})

	f.load(t, "v1")
	before := f.flusher.Count()

	f.source.Set("v2")
	f.router.process(context.Background(), event.ConfigChanged{})

	assert.Equal(t, before+1, flushesAtExec, "teardown is flushed before the script runs")
	assert.Equal(t, before+2, f.flusher.Count())
}

func TestRouter_FlushCoalescedPerTurn(t *testing.T) {
	f := newRouterFixture(t, nil, Options{})
	f.script("many", func(h port.ScriptHost) error {
		for range 3 {
			if err := h.CreateIdleSubscription(time.Minute, "cb"); err != nil {
				return err
			}
		}
		return nil
	})

	f.load(t, "many")

	assert.Equal(t, 1, f.flusher.Count())
	assert.Equal(t, 3, f.notifier.Live())
}

func TestRouter_InhibitWindow(t *testing.T) {
	inhibitor := mocks.NewMockInhibitor(t)
	first := mocks.NewMockInhibitHandle(t)
	second := mocks.NewMockInhibitHandle(t)
	inhibitor.EXPECT().Acquire(mock.Anything).Return(first, nil).Once()
	inhibitor.EXPECT().Acquire(mock.Anything).Return(second, nil).Once()
	first.EXPECT().Release(mock.Anything).Return(nil).Once()

	f := newRouterFixture(t, inhibitor, Options{InhibitHold: 5 * time.Second})
	ctx := context.Background()

	f.router.process(ctx, event.DeviceActivity{DeviceID: "event3"})
	f.router.process(ctx, event.DeviceActivity{DeviceID: "event3"})
	assert.True(t, f.router.Snapshot().InhibitHeld)
	require.Equal(t, 1, f.clock.len())

	f.clock.fire(0)
	f.router.process(ctx, receive(t, f.inbox))
	assert.False(t, f.router.Snapshot().InhibitActive)

	f.router.process(ctx, event.InhibitRequested{})
	assert.True(t, f.router.Snapshot().InhibitHeld)
	assert.Equal(t, []bool{true, true}, f.recorder.acquired)
}

func TestRouter_SessionHandlers(t *testing.T) {
	f := newRouterFixture(t, nil, Options{})
	f.script("session", func(h port.ScriptHost) error {
		if err := h.RegisterSessionHandler("LockHandler", "on_lock"); err != nil {
			return err
		}
		return h.RegisterSessionHandler("PrepareSleep", "before_sleep")
	})
	f.engine.callbacks["on_lock"] = func(...string) error { return nil }
	f.engine.callbacks["before_sleep"] = func(...string) error { return nil }

	f.load(t, "session")
	ctx := context.Background()
	f.router.process(ctx, event.SessionSignal{Signal: event.Lock})
	f.router.process(ctx, event.SessionSignal{Signal: event.Unlock})
	f.router.process(ctx, event.SessionSignal{Signal: event.PrepareSleep})

	calls := f.engine.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "on_lock", calls[0].callback)
	assert.Equal(t, "before_sleep", calls[1].callback)
	assert.Equal(t, map[string]string{"Lock": "on_lock", "PrepareSleep": "before_sleep"}, f.router.Snapshot().SessionHandlers)
}

func TestRouter_SessionHandlersClearedOnConfigChange(t *testing.T) {
	f := newRouterFixture(t, nil, Options{})
	f.script("v1", func(h port.ScriptHost) error { return h.RegisterSessionHandler("Lock", "on_lock") })
	f.script("v2", func(port.ScriptHost) error { return nil })

	f.load(t, "v1")
	f.source.Set("v2")
	f.router.process(context.Background(), event.ConfigChanged{})
	f.router.process(context.Background(), event.SessionSignal{Signal: event.Lock})

	assert.Empty(t, f.engine.Calls())
}

func TestRouter_CallbackErrorsAreContained(t *testing.T) {
	f := newRouterFixture(t, nil, Options{})
	f.script("s", func(h port.ScriptHost) error {
		if err := h.CreateIdleSubscription(time.Minute, "broken"); err != nil {
			return err
		}
		return h.CreateIdleSubscription(time.Minute, "missing")
	})
	f.engine.callbacks["broken"] = func(...string) error { return errors.New("attempt to index a nil value") }

	f.load(t, "s")
	for _, id := range f.notifier.IDs() {
		f.router.process(context.Background(), event.IdleTransition{Subscription: id, Phase: event.Idled})
	}

	assert.Len(t, f.engine.Calls(), 2)
	assert.Equal(t, 2, f.recorder.ScriptErrors(PhaseCallback))
	assert.Equal(t, 2, f.router.Snapshot().Subscriptions)
}

func TestRouter_FailedReloadKeepsLastGoodScript(t *testing.T) {
	f := newRouterFixture(t, nil, Options{})
	f.script("good", func(h port.ScriptHost) error {
		return h.CreateIdleSubscription(time.Minute, "good_cb")
	})
	f.script("bad", func(h port.ScriptHost) error {
		if err := h.CreateIdleSubscription(time.Minute, "partial"); err != nil {
			return err
		}
		return errors.New("runtime error")
	})

	f.load(t, "good")
	f.source.Set("bad")
	f.router.process(context.Background(), event.ConfigChanged{})

	assert.Equal(t, 1, f.notifier.Live(), "partial registrations from the failed script are gone")
	assert.Equal(t, 1, f.router.registry.Len())
	assert.Equal(t, uint64(1), f.router.Snapshot().ScriptGeneration)
	assert.Equal(t, 1, f.recorder.ScriptErrors(PhaseLoad))

	ids := f.notifier.IDs()
	f.router.process(context.Background(), event.IdleTransition{Subscription: ids[len(ids)-1], Phase: event.Idled})
	calls := f.engine.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "good_cb", calls[0].callback)
}

func TestRouter_FailedFirstLoadLeavesEmptyState(t *testing.T) {
	f := newRouterFixture(t, nil, Options{})
	f.script("bad", func(h port.ScriptHost) error {
		if err := h.CreateIdleSubscription(time.Minute, "partial"); err != nil {
			return err
		}
		return errors.New("boom")
	})

	f.load(t, "bad")

	assert.Equal(t, 0, f.notifier.Live())
	assert.Equal(t, uint64(0), f.router.Snapshot().ScriptGeneration)
}

func TestRouter_UnreadableScriptKeepsLastGood(t *testing.T) {
	f := newRouterFixture(t, nil, Options{})
	f.script("good", func(h port.ScriptHost) error {
		return h.CreateIdleSubscription(time.Minute, "cb")
	})
	f.load(t, "good")

	f.source.mu.Lock()
	f.source.err = errors.New("permission denied")
	f.source.mu.Unlock()
	f.router.process(context.Background(), event.ConfigChanged{})

	assert.Equal(t, 1, f.notifier.Live())
}

func TestRouter_ScriptTimeoutBoundsCalls(t *testing.T) {
	f := newRouterFixture(t, nil, Options{ScriptTimeout: time.Second})
	f.script("s", func(port.ScriptHost) error { return nil })

	f.load(t, "s")

	_, ok := f.engine.lastCtx.Deadline()
	assert.True(t, ok)
}

func TestRouter_HostRunsCommands(t *testing.T) {
	runner := mocks.NewMockCommandRunner(t)
	runner.EXPECT().Run(mock.Anything, "swaylock -f").Return(nil).Once()
	runner.EXPECT().RunOnce(mock.Anything, "swayidle").Return(false, nil).Once()

	f := newRouterFixture(t, nil, Options{})
	f.router.runner = runner
	f.script("cmds", func(h port.ScriptHost) error {
		if err := h.RunCommand("swaylock -f"); err != nil {
			return err
		}
		return h.RunCommandOnce("swayidle")
	})

	f.load(t, "cmds")
	assert.Equal(t, uint64(1), f.router.Snapshot().ScriptGeneration)
}

func TestRouter_HostRejectsUnknownSignal(t *testing.T) {
	f := newRouterFixture(t, nil, Options{})
	var regErr error
	f.script("s", func(h port.ScriptHost) error {
		regErr = h.RegisterSessionHandler("Hibernate", "cb")
		return nil
	})

	f.load(t, "s")
	require.Error(t, regErr)
	assert.Empty(t, f.router.Snapshot().SessionHandlers)
}

func TestRouter_MalformedEvent(t *testing.T) {
	f := newRouterFixture(t, nil, Options{})
	assert.NotPanics(t, func() { f.router.process(context.Background(), nil) })

	strict := newRouterFixture(t, nil, Options{StrictEvents: true})
	assert.Panics(t, func() { strict.router.process(context.Background(), nil) })
}

func TestRouter_DeviceEvents(t *testing.T) {
	opener := newFakeOpener()
	opener.add("event3")

	f := newRouterFixture(t, nil, Options{})
	f.router.devices = NewDeviceSupervisor(opener, nil, f.inbox, SupervisorOptions{})
	ctx := context.Background()
	defer f.router.devices.Shutdown()

	f.router.process(ctx, event.DeviceAdded{DeviceID: "event3"})
	assert.Equal(t, []string{"event3"}, f.router.Snapshot().Devices)

	f.router.process(ctx, event.DeviceRemoved{DeviceID: "event3"})
	assert.Empty(t, f.router.Snapshot().Devices)
}

func TestRouter_RunProcessesAndShutsDown(t *testing.T) {
	defer goleak.VerifyNone(t)

	f := newRouterFixture(t, nil, Options{})
	f.script("s", func(h port.ScriptHost) error {
		return h.CreateIdleSubscription(time.Minute, "cb")
	})
	f.source.Set("s")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.router.Run(ctx) }()

	require.NoError(t, f.inbox.Submit(ctx, event.ScriptReloadRequested{}))
	require.NoError(t, f.inbox.Submit(ctx, event.BatteryStateChanged{OnBattery: false}))

	assert.Eventually(t, func() bool {
		s := f.router.Snapshot()
		return s.ScriptGeneration == 1 && !s.OnBattery
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("router did not stop")
	}

	assert.True(t, f.engine.Closed())
	assert.Equal(t, 0, f.notifier.Live())
	assert.Equal(t, 0, f.router.Snapshot().Subscriptions)
	require.ErrorIs(t, f.inbox.Submit(context.Background(), event.FlushRequested{}), port.ErrStopped)
}
