package wayland

import (
	"bufio"
	"context"
	"math"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/bnema/sleepwatcher/internal/application/port"
	"github.com/bnema/sleepwatcher/internal/domain/event"
)

type fakeGlobal struct {
	name    uint32
	iface   string
	version uint32
}

var fullGlobals = []fakeGlobal{
	{name: 1, iface: ifaceCompositor, version: 6},
	{name: 2, iface: "wl_shm", version: 1},
	{name: 3, iface: ifaceSeat, version: 9},
	{name: 4, iface: ifaceIdleNotifier, version: 2},
	{name: 5, iface: ifaceInhibitManager, version: 1},
}

// fakeCompositor answers the registry handshake and records every request.
type fakeCompositor struct {
	conn     net.Conn
	globals  []fakeGlobal
	requests chan message
	registry uint32
}

func startCompositor(t *testing.T, globals []fakeGlobal) (*fakeCompositor, net.Conn) {
	t.Helper()
	server, client := net.Pipe()
	fc := &fakeCompositor{conn: server, globals: globals, requests: make(chan message, 64)}
	go fc.serve()
	t.Cleanup(func() { _ = server.Close() })
	return fc, client
}

func (fc *fakeCompositor) send(object uint32, opcode uint16, args func(*encoder)) {
	_, _ = fc.conn.Write(encodeMessage(object, opcode, args))
}

func (fc *fakeCompositor) serve() {
	defer close(fc.requests)
	r := bufio.NewReader(fc.conn)
	for {
		msg, err := readMessage(r)
		if err != nil {
			return
		}
		if msg.object == displayID {
			d := &decoder{b: msg.body}
			switch msg.opcode {
			case displayGetRegistry:
				fc.registry = d.uint32()
			case displaySync:
				callback := d.uint32()
				for _, g := range fc.globals {
					fc.send(fc.registry, registryGlobal, func(e *encoder) {
						e.uint32(g.name)
						e.string(g.iface)
						e.uint32(g.version)
					})
				}
				fc.send(callback, callbackDone, func(e *encoder) { e.uint32(1) })
			}
			continue
		}
		fc.requests <- msg
	}
}

func (fc *fakeCompositor) next(t *testing.T) message {
	t.Helper()
	select {
	case msg, ok := <-fc.requests:
		require.True(t, ok, "connection closed")
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for request")
		return message{}
	}
}

type bind struct {
	name    uint32
	iface   string
	version uint32
	object  uint32
}

func (fc *fakeCompositor) binds(t *testing.T, n int) map[string]bind {
	t.Helper()
	out := make(map[string]bind)
	for range n {
		msg := fc.next(t)
		require.Equal(t, fc.registry, msg.object)
		require.Equal(t, registryBind, msg.opcode)
		d := &decoder{b: msg.body}
		b := bind{name: d.uint32(), iface: d.string(), version: d.uint32(), object: d.uint32()}
		require.NoError(t, d.err)
		out[b.iface] = b
	}
	return out
}

type chanSink chan event.Event

func (s chanSink) Submit(ctx context.Context, ev event.Event) error {
	select {
	case s <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestClient_HandshakeBindsGlobals(t *testing.T) {
	fc, conn := startCompositor(t, fullGlobals)

	c, err := NewClient(context.Background(), conn, chanSink(make(chan event.Event, 1)))
	require.NoError(t, err)
	defer c.Close()

	binds := fc.binds(t, 4)
	assert.NotContains(t, binds, "wl_shm")
	assert.Equal(t, uint32(4), binds[ifaceCompositor].version, "version is capped")
	assert.Equal(t, uint32(1), binds[ifaceSeat].version)
	assert.Equal(t, uint32(1), binds[ifaceIdleNotifier].version)

	seen := map[uint32]bool{}
	for _, b := range binds {
		assert.Greater(t, b.object, uint32(3), "ids 2 and 3 are the registry and the sync callback")
		assert.False(t, seen[b.object], "object ids are unique")
		seen[b.object] = true
	}
}

func TestClient_SubscribeDeliversTransitions(t *testing.T) {
	defer goleak.VerifyNone(t)

	fc, conn := startCompositor(t, fullGlobals)
	sink := chanSink(make(chan event.Event, 4))

	ctx, cancel := context.WithCancel(context.Background())
	c, err := NewClient(ctx, conn, sink)
	require.NoError(t, err)
	binds := fc.binds(t, 4)

	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	id := event.NewSubscriptionID()
	handle, err := c.Subscribe(id, 90*time.Second)
	require.NoError(t, err)
	require.NoError(t, c.Flush())

	msg := fc.next(t)
	assert.Equal(t, binds[ifaceIdleNotifier].object, msg.object)
	assert.Equal(t, idleNotifierGetNotification, msg.opcode)
	d := &decoder{b: msg.body}
	object := d.uint32()
	assert.Equal(t, uint32(90000), d.uint32())
	assert.Equal(t, binds[ifaceSeat].object, d.uint32())

	fc.send(object, idleNotificationIdled, nil)
	fc.send(object, idleNotificationResumed, nil)
	assert.Equal(t, event.IdleTransition{Subscription: id, Phase: event.Idled}, <-sink)
	assert.Equal(t, event.IdleTransition{Subscription: id, Phase: event.Resumed}, <-sink)

	require.NoError(t, handle.Destroy())
	require.NoError(t, handle.Destroy())
	require.NoError(t, c.Flush())
	msg = fc.next(t)
	assert.Equal(t, object, msg.object)
	assert.Equal(t, idleNotificationDestroy, msg.opcode)

	cancel()
	require.NoError(t, <-done)
}

func TestClient_AcquireCreatesSurfaceOnce(t *testing.T) {
	fc, conn := startCompositor(t, fullGlobals)
	ctx := context.Background()

	c, err := NewClient(ctx, conn, chanSink(make(chan event.Event, 1)))
	require.NoError(t, err)
	defer c.Close()
	binds := fc.binds(t, 4)

	first, err := c.Acquire(ctx)
	require.NoError(t, err)
	second, err := c.Acquire(ctx)
	require.NoError(t, err)
	require.NoError(t, c.Flush())

	create := fc.next(t)
	assert.Equal(t, binds[ifaceCompositor].object, create.object)
	assert.Equal(t, compositorCreateSurface, create.opcode)
	surface := (&decoder{b: create.body}).uint32()

	for range 2 {
		msg := fc.next(t)
		assert.Equal(t, binds[ifaceInhibitManager].object, msg.object)
		assert.Equal(t, inhibitManagerCreateInhibitor, msg.opcode)
		d := &decoder{b: msg.body}
		d.uint32()
		assert.Equal(t, surface, d.uint32())
	}

	require.NoError(t, first.Release(ctx))
	require.NoError(t, second.Release(ctx))
	require.NoError(t, c.Flush())
	assert.Equal(t, inhibitorDestroy, fc.next(t).opcode)
	assert.Equal(t, inhibitorDestroy, fc.next(t).opcode)
}

func TestClient_MissingGlobalsUnavailable(t *testing.T) {
	_, conn := startCompositor(t, []fakeGlobal{{name: 1, iface: ifaceCompositor, version: 4}})
	ctx := context.Background()

	c, err := NewClient(ctx, conn, chanSink(make(chan event.Event, 1)))
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Subscribe(event.NewSubscriptionID(), time.Second)
	require.ErrorIs(t, err, port.ErrUnavailable)

	_, err = c.Acquire(ctx)
	require.ErrorIs(t, err, port.ErrUnavailable)
}

func TestClient_ProtocolErrorEndsRun(t *testing.T) {
	fc, conn := startCompositor(t, fullGlobals)
	ctx := context.Background()

	c, err := NewClient(ctx, conn, chanSink(make(chan event.Event, 1)))
	require.NoError(t, err)
	fc.binds(t, 4)

	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	fc.send(displayID, displayError, func(e *encoder) {
		e.uint32(5)
		e.uint32(1)
		e.string("invalid seat")
	})

	select {
	case err := <-done:
		var perr *ProtocolError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "invalid seat", perr.Message)
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return")
	}
}

func TestTimeoutMillis(t *testing.T) {
	tests := []struct {
		timeout time.Duration
		want    uint32
	}{
		{time.Microsecond, 1},
		{999 * time.Microsecond, 1},
		{time.Millisecond, 1},
		{1500 * time.Microsecond, 2},
		{300 * time.Second, 300000},
		{2000 * time.Hour, math.MaxUint32},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, timeoutMillis(tt.timeout), tt.timeout.String())
	}
}

func TestSocketPath(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")
	t.Setenv("WAYLAND_DISPLAY", "")
	path, err := SocketPath()
	require.NoError(t, err)
	assert.Equal(t, "/run/user/1000/wayland-0", path)

	t.Setenv("WAYLAND_DISPLAY", "/tmp/wl-test")
	path, err = SocketPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/wl-test", path)

	t.Setenv("WAYLAND_DISPLAY", "wayland-1")
	t.Setenv("XDG_RUNTIME_DIR", "")
	_, err = SocketPath()
	require.Error(t, err)
}
