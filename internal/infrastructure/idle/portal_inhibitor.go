// Package idle provides sleep and idle inhibition backends.
package idle

import (
	"context"
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"

	"github.com/bnema/sleepwatcher/internal/application/port"
	"github.com/bnema/sleepwatcher/internal/logging"
)

const (
	portalDest      = "org.freedesktop.portal.Desktop"
	portalPath      = "/org/freedesktop/portal/desktop"
	portalInterface = "org.freedesktop.portal.Inhibit"
	requestIface    = "org.freedesktop.portal.Request"

	// Inhibit flags of org.freedesktop.portal.Inhibit
	flagLogout     = 1
	flagUserSwitch = 2
	flagSuspend    = 4
	flagIdle       = 8

	defaultReason = "input device activity"
)

// Compile-time interface check.
var _ port.Inhibitor = (*PortalInhibitor)(nil)

// PortalInhibitor implements idle inhibition using XDG Desktop Portal.
// This works on Wayland with any compositor (GNOME, KDE, sway, hyprland, etc.).
type PortalInhibitor struct {
	caller PortalCaller
	reason string
	flags  uint32
}

// NewPortalInhibitor checks that the portal is reachable on conn and returns
// an inhibitor using it.
func NewPortalInhibitor(ctx context.Context, conn *dbus.Conn) (*PortalInhibitor, error) {
	log := logging.FromContext(ctx)

	obj := conn.Object(portalDest, portalPath)
	var version uint32
	err := obj.CallWithContext(ctx, "org.freedesktop.DBus.Properties.Get", 0,
		portalInterface, "version").Store(&version)
	if err != nil {
		log.Debug().Err(err).Msg("idle inhibitor: portal not available")
		return nil, fmt.Errorf("inhibit portal: %w", port.ErrUnavailable)
	}

	log.Debug().Uint32("version", version).Msg("idle inhibitor: portal available")
	return NewPortalInhibitorWithCaller(newDBusPortal(conn), defaultReason), nil
}

// NewPortalInhibitorWithCaller builds an inhibitor on an existing caller.
func NewPortalInhibitorWithCaller(caller PortalCaller, reason string) *PortalInhibitor {
	if reason == "" {
		reason = defaultReason
	}
	return &PortalInhibitor{
		caller: caller,
		reason: reason,
		flags:  flagIdle | flagSuspend,
	}
}

// Acquire asks the portal to inhibit idle and suspend.
func (p *PortalInhibitor) Acquire(ctx context.Context) (port.InhibitHandle, error) {
	request, err := p.caller.Inhibit(ctx, p.flags, p.reason)
	if err != nil {
		return nil, fmt.Errorf("portal inhibit: %w", err)
	}

	logging.FromContext(ctx).Debug().
		Str("handle", string(request)).
		Str("reason", p.reason).
		Msg("idle inhibitor: activated")
	return &portalHandle{caller: p.caller, request: request}, nil
}

type portalHandle struct {
	caller  PortalCaller
	request dbus.ObjectPath
	once    sync.Once
}

func (h *portalHandle) Release(ctx context.Context) error {
	var err error
	h.once.Do(func() {
		err = h.caller.Close(ctx, h.request)
		logging.FromContext(ctx).Debug().Str("handle", string(h.request)).Msg("idle inhibitor: deactivated")
	})
	return err
}

// dbusPortal talks to the portal over a session bus connection. Some portals
// (particularly GNOME) complete the Inhibit request immediately with a
// Response signal, which removes the Request object; those are not closed.
type dbusPortal struct {
	conn *dbus.Conn

	mu        sync.Mutex
	completed map[dbus.ObjectPath]bool
	stops     map[dbus.ObjectPath]context.CancelFunc
}

func newDBusPortal(conn *dbus.Conn) *dbusPortal {
	return &dbusPortal{
		conn:      conn,
		completed: make(map[dbus.ObjectPath]bool),
		stops:     make(map[dbus.ObjectPath]context.CancelFunc),
	}
}

// Inhibit calls Inhibit(window: s, flags: u, options: a{sv}) -> handle: o.
func (d *dbusPortal) Inhibit(ctx context.Context, flags uint32, reason string) (dbus.ObjectPath, error) {
	obj := d.conn.Object(portalDest, portalPath)
	options := map[string]dbus.Variant{
		"reason": dbus.MakeVariant(reason),
	}

	var handlePath dbus.ObjectPath
	err := obj.CallWithContext(ctx, portalInterface+".Inhibit", 0,
		"", // window identifier (empty for non-sandboxed)
		flags,
		options,
	).Store(&handlePath)
	if err != nil {
		return "", err
	}

	watchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	d.mu.Lock()
	d.stops[handlePath] = cancel
	d.mu.Unlock()
	go d.watchForResponse(watchCtx, handlePath)

	return handlePath, nil
}

func (d *dbusPortal) Close(ctx context.Context, request dbus.ObjectPath) error {
	d.mu.Lock()
	completed := d.completed[request]
	delete(d.completed, request)
	if stop, ok := d.stops[request]; ok {
		stop()
		delete(d.stops, request)
	}
	d.mu.Unlock()

	if completed {
		return nil
	}
	return d.conn.Object(portalDest, request).CallWithContext(ctx, requestIface+".Close", 0).Err
}

// watchForResponse monitors for the Response signal on the request object.
func (d *dbusPortal) watchForResponse(ctx context.Context, handlePath dbus.ObjectPath) {
	log := logging.FromContext(ctx)

	matchRule := fmt.Sprintf(
		"type='signal',interface='%s',member='Response',path='%s'",
		requestIface, handlePath,
	)
	if err := d.conn.BusObject().Call("org.freedesktop.DBus.AddMatch", 0, matchRule).Err; err != nil {
		log.Debug().Err(err).Msg("idle inhibitor: failed to add signal match")
		return
	}

	signals := make(chan *dbus.Signal, 1)
	d.conn.Signal(signals)
	defer func() {
		d.conn.RemoveSignal(signals)
		_ = d.conn.BusObject().Call("org.freedesktop.DBus.RemoveMatch", 0, matchRule).Err
	}()

	for {
		select {
		case sig := <-signals:
			if sig == nil {
				return
			}
			if sig.Path == handlePath && sig.Name == requestIface+".Response" {
				d.mu.Lock()
				d.completed[handlePath] = true
				d.mu.Unlock()
				log.Debug().Str("handle", string(handlePath)).Msg("idle inhibitor: request completed by portal")
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
