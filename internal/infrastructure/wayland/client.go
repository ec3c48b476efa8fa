// Package wayland is a minimal client for the compositor protocols the daemon
// needs: the registry, ext-idle-notify-v1 and idle-inhibit-unstable-v1.
//
// Requests are buffered and written out by Flush. Events are decoded on the
// goroutine running Run.
package wayland

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bnema/sleepwatcher/internal/application/port"
	"github.com/bnema/sleepwatcher/internal/domain/event"
	"github.com/bnema/sleepwatcher/internal/logging"
)

var (
	_ port.IdleNotifier = (*Client)(nil)
	_ port.Flusher      = (*Client)(nil)
	_ port.Inhibitor    = (*Client)(nil)
)

// ProtocolError is a fatal wl_display.error sent by the compositor.
type ProtocolError struct {
	Object  uint32
	Code    uint32
	Message string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("wayland: protocol error on object %d (code %d): %s", e.Object, e.Code, e.Message)
}

type eventHandler func(opcode uint16, d *decoder)

type global struct {
	name    uint32
	version uint32
}

// Client is a connection to the compositor.
type Client struct {
	conn   net.Conn
	reader *bufio.Reader
	sink   port.EventSink

	wmu  sync.Mutex
	wbuf []byte

	omu      sync.Mutex
	nextID   uint32
	handlers map[uint32]eventHandler
	bound    map[string]uint32
	globals  map[uint32]string
	surface  uint32

	ctx     context.Context
	running bool
}

// SocketPath resolves the compositor socket from XDG_RUNTIME_DIR and
// WAYLAND_DISPLAY (default wayland-0).
func SocketPath() (string, error) {
	display := os.Getenv("WAYLAND_DISPLAY")
	if display == "" {
		display = "wayland-0"
	}
	if filepath.IsAbs(display) {
		return display, nil
	}
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		return "", errors.New("wayland: XDG_RUNTIME_DIR is not set")
	}
	return filepath.Join(runtimeDir, display), nil
}

// Dial connects to the compositor socket and completes the initial registry
// roundtrip.
func Dial(ctx context.Context, sink port.EventSink) (*Client, error) {
	path, err := SocketPath()
	if err != nil {
		return nil, err
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", path)
	if err != nil {
		return nil, fmt.Errorf("wayland: connect %s: %w", path, err)
	}

	c, err := NewClient(ctx, conn, sink)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	logging.FromContext(ctx).Info().Str("socket", path).Msg("connected to compositor")
	return c, nil
}

// NewClient runs the registry handshake on an established connection. When
// it returns, every advertised global the daemon uses is bound.
func NewClient(ctx context.Context, conn net.Conn, sink port.EventSink) (*Client, error) {
	c := &Client{
		conn:     conn,
		reader:   bufio.NewReader(conn),
		sink:     sink,
		nextID:   displayID + 1,
		handlers: make(map[uint32]eventHandler),
		bound:    make(map[string]uint32),
		globals:  make(map[uint32]string),
		ctx:      ctx,
	}

	registry := c.newObject(c.handleRegistry)
	c.request(displayID, displayGetRegistry, func(e *encoder) { e.uint32(registry) })

	if err := c.roundtrip(ctx); err != nil {
		return nil, fmt.Errorf("wayland: registry roundtrip: %w", err)
	}
	if err := c.Flush(); err != nil {
		return nil, err
	}

	log := logging.FromContext(ctx)
	for _, iface := range []string{ifaceCompositor, ifaceSeat, ifaceIdleNotifier, ifaceInhibitManager} {
		if _, ok := c.boundID(iface); !ok {
			log.Warn().Str("interface", iface).Msg("compositor does not advertise global")
		}
	}
	return c, nil
}

// roundtrip sends wl_display.sync and dispatches events until its callback
// fires. It must only be used before Run starts.
func (c *Client) roundtrip(ctx context.Context) error {
	done := false
	callback := c.newObject(func(opcode uint16, _ *decoder) {
		if opcode == callbackDone {
			done = true
		}
	})
	c.request(displayID, displaySync, func(e *encoder) { e.uint32(callback) })
	if err := c.Flush(); err != nil {
		return err
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = c.conn.SetReadDeadline(deadline)
		defer func() { _ = c.conn.SetReadDeadline(time.Time{}) }()
	}

	for !done {
		msg, err := readMessage(c.reader)
		if err != nil {
			return err
		}
		if err := c.dispatch(msg); err != nil {
			return err
		}
	}
	return nil
}

// Run dispatches compositor events until ctx is done or the connection
// fails. It closes the connection on return.
func (c *Client) Run(ctx context.Context) error {
	ctx = logging.WithComponent(ctx, "wayland")
	c.omu.Lock()
	c.ctx = ctx
	c.running = true
	c.omu.Unlock()

	stop := context.AfterFunc(ctx, func() { _ = c.conn.Close() })
	defer stop()
	defer c.conn.Close()

	for {
		msg, err := readMessage(c.reader)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, io.EOF) {
				return errors.New("wayland: compositor closed the connection")
			}
			return fmt.Errorf("wayland: read: %w", err)
		}
		if err := c.dispatch(msg); err != nil {
			return err
		}
	}
}

// Flush writes out buffered requests.
func (c *Client) Flush() error {
	c.wmu.Lock()
	defer c.wmu.Unlock()

	if len(c.wbuf) == 0 {
		return nil
	}
	_, err := c.conn.Write(c.wbuf)
	c.wbuf = c.wbuf[:0]
	if err != nil {
		return fmt.Errorf("wayland: write: %w", err)
	}
	return nil
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Subscribe creates an ext_idle_notification_v1 firing after timeout without
// input on the bound seat.
func (c *Client) Subscribe(id event.SubscriptionID, timeout time.Duration) (port.IdleNotification, error) {
	notifier, ok := c.boundID(ifaceIdleNotifier)
	if !ok {
		return nil, fmt.Errorf("%s: %w", ifaceIdleNotifier, port.ErrUnavailable)
	}
	seat, ok := c.boundID(ifaceSeat)
	if !ok {
		return nil, fmt.Errorf("%s: %w", ifaceSeat, port.ErrUnavailable)
	}

	object := c.newObject(func(opcode uint16, _ *decoder) {
		var phase event.Phase
		switch opcode {
		case idleNotificationIdled:
			phase = event.Idled
		case idleNotificationResumed:
			phase = event.Resumed
		default:
			return
		}
		c.submit(event.IdleTransition{Subscription: id, Phase: phase})
	})

	c.request(notifier, idleNotifierGetNotification, func(e *encoder) {
		e.uint32(object)
		e.uint32(timeoutMillis(timeout))
		e.uint32(seat)
	})

	return &notification{c: c, object: object}, nil
}

// timeoutMillis converts a positive timeout to the wire's milliseconds,
// rounding up so a sub-millisecond timeout never becomes 0.
func timeoutMillis(timeout time.Duration) uint32 {
	if timeout >= math.MaxUint32*time.Millisecond {
		return math.MaxUint32
	}
	ms := (timeout + time.Millisecond - 1) / time.Millisecond
	if ms < 1 {
		return 1
	}
	return uint32(ms)
}

// Acquire creates a zwp_idle_inhibitor_v1 on the client's surface.
func (c *Client) Acquire(ctx context.Context) (port.InhibitHandle, error) {
	manager, ok := c.boundID(ifaceInhibitManager)
	if !ok {
		return nil, fmt.Errorf("%s: %w", ifaceInhibitManager, port.ErrUnavailable)
	}
	surface, err := c.ensureSurface()
	if err != nil {
		return nil, err
	}

	object := c.newObject(nil)
	c.request(manager, inhibitManagerCreateInhibitor, func(e *encoder) {
		e.uint32(object)
		e.uint32(surface)
	})
	logging.FromContext(ctx).Debug().Uint32("object", object).Msg("idle inhibitor created")
	return &inhibitor{c: c, object: object}, nil
}

func (c *Client) ensureSurface() (uint32, error) {
	compositor, ok := c.boundID(ifaceCompositor)
	if !ok {
		return 0, fmt.Errorf("%s: %w", ifaceCompositor, port.ErrUnavailable)
	}

	c.omu.Lock()
	surface := c.surface
	c.omu.Unlock()
	if surface != 0 {
		return surface, nil
	}

	surface = c.newObject(nil)
	c.request(compositor, compositorCreateSurface, func(e *encoder) { e.uint32(surface) })

	c.omu.Lock()
	c.surface = surface
	c.omu.Unlock()
	return surface, nil
}

type notification struct {
	c      *Client
	object uint32
	once   sync.Once
}

func (n *notification) Destroy() error {
	n.once.Do(func() {
		n.c.forget(n.object)
		n.c.request(n.object, idleNotificationDestroy, nil)
	})
	return nil
}

type inhibitor struct {
	c      *Client
	object uint32
	once   sync.Once
}

func (i *inhibitor) Release(context.Context) error {
	i.once.Do(func() {
		i.c.forget(i.object)
		i.c.request(i.object, inhibitorDestroy, nil)
	})
	return nil
}

// newObject allocates the next client object id. Ids are never reused within
// a connection.
func (c *Client) newObject(h eventHandler) uint32 {
	c.omu.Lock()
	defer c.omu.Unlock()

	id := c.nextID
	c.nextID++
	if h != nil {
		c.handlers[id] = h
	}
	return id
}

func (c *Client) forget(object uint32) {
	c.omu.Lock()
	delete(c.handlers, object)
	c.omu.Unlock()
}

func (c *Client) boundID(iface string) (uint32, bool) {
	c.omu.Lock()
	defer c.omu.Unlock()
	id, ok := c.bound[iface]
	return id, ok
}

func (c *Client) request(object uint32, opcode uint16, args func(*encoder)) {
	msg := encodeMessage(object, opcode, args)
	c.wmu.Lock()
	c.wbuf = append(c.wbuf, msg...)
	c.wmu.Unlock()
}

func (c *Client) dispatch(msg message) error {
	d := &decoder{b: msg.body}

	if msg.object == displayID {
		switch msg.opcode {
		case displayError:
			return &ProtocolError{Object: d.uint32(), Code: d.uint32(), Message: d.string()}
		case displayDeleteID:
			c.forget(d.uint32())
		}
		return d.err
	}

	c.omu.Lock()
	h, ok := c.handlers[msg.object]
	c.omu.Unlock()
	if !ok {
		return nil
	}
	h(msg.opcode, d)
	if d.err != nil {
		return fmt.Errorf("wayland: event %d on object %d: %w", msg.opcode, msg.object, d.err)
	}
	return nil
}

func (c *Client) handleRegistry(opcode uint16, d *decoder) {
	registry := displayID + 1

	switch opcode {
	case registryGlobal:
		name := d.uint32()
		iface := d.string()
		version := d.uint32()
		if d.err != nil {
			return
		}
		maxV, wanted := maxVersion[iface]
		if !wanted {
			return
		}
		if _, ok := c.boundID(iface); ok {
			return
		}

		object := c.newObject(nil)
		bindVersion := min(version, maxV)
		c.request(registry, registryBind, func(e *encoder) {
			e.uint32(name)
			e.string(iface)
			e.uint32(bindVersion)
			e.uint32(object)
		})

		c.omu.Lock()
		c.bound[iface] = object
		c.globals[name] = iface
		running := c.running
		c.omu.Unlock()

		// Globals announced after the handshake are bound immediately.
		if running {
			if err := c.Flush(); err != nil {
				logging.FromContext(c.context()).Warn().Err(err).Msg("failed to bind late global")
			}
		}

		logging.FromContext(c.context()).Debug().
			Str("interface", iface).
			Uint32("name", name).
			Uint32("version", bindVersion).
			Msg("bound global")

	case registryGlobalRemove:
		name := d.uint32()
		c.omu.Lock()
		iface, ok := c.globals[name]
		if ok {
			delete(c.globals, name)
			delete(c.bound, iface)
		}
		c.omu.Unlock()
		if ok {
			logging.FromContext(c.context()).Warn().Str("interface", iface).Msg("global removed by compositor")
		}
	}
}

func (c *Client) submit(ev event.Event) {
	ctx := c.context()
	if err := c.sink.Submit(ctx, ev); err != nil && ctx.Err() == nil {
		logging.FromContext(ctx).Debug().Err(err).Msg("dropping compositor event")
	}
}

func (c *Client) context() context.Context {
	c.omu.Lock()
	defer c.omu.Unlock()
	return c.ctx
}

