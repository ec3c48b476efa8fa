// Package power watches the system bus for battery and session transitions
// (UPower and logind) and provides a logind sleep inhibitor.
package power

import (
	"context"
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/bnema/sleepwatcher/internal/application/port"
	"github.com/bnema/sleepwatcher/internal/domain/event"
	"github.com/bnema/sleepwatcher/internal/logging"
)

const (
	upowerDest  = "org.freedesktop.UPower"
	upowerPath  = dbus.ObjectPath("/org/freedesktop/UPower")
	upowerIface = "org.freedesktop.UPower"

	propertiesIface   = "org.freedesktop.DBus.Properties"
	propertiesChanged = propertiesIface + ".PropertiesChanged"
)

var errBusClosed = errors.New("system bus connection closed")

// UPowerWatcher reports OnBattery changes.
type UPowerWatcher struct {
	conn *dbus.Conn
	sink port.EventSink
}

// NewUPowerWatcher creates a watcher on a system bus connection.
func NewUPowerWatcher(conn *dbus.Conn, sink port.EventSink) *UPowerWatcher {
	return &UPowerWatcher{conn: conn, sink: sink}
}

// Run submits the current battery state, then every change, until ctx is
// done.
func (w *UPowerWatcher) Run(ctx context.Context) error {
	ctx = logging.WithComponent(ctx, "upower")
	log := logging.FromContext(ctx)

	match := []dbus.MatchOption{
		dbus.WithMatchObjectPath(upowerPath),
		dbus.WithMatchInterface(propertiesIface),
		dbus.WithMatchMember("PropertiesChanged"),
	}
	if err := w.conn.AddMatchSignalContext(ctx, match...); err != nil {
		return fmt.Errorf("upower: add match: %w", err)
	}
	defer func() { _ = w.conn.RemoveMatchSignal(match...) }()

	signals := make(chan *dbus.Signal, 8)
	w.conn.Signal(signals)
	defer w.conn.RemoveSignal(signals)

	if err := w.refresh(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to read initial battery state")
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case sig, ok := <-signals:
			if !ok {
				return errBusClosed
			}
			onBattery, changed, invalidated := batteryFromSignal(sig)
			switch {
			case changed:
				if err := w.submit(ctx, onBattery); err != nil {
					return nil
				}
			case invalidated:
				if err := w.refresh(ctx); err != nil {
					log.Warn().Err(err).Msg("failed to refresh battery state")
				}
			}
		}
	}
}

func (w *UPowerWatcher) refresh(ctx context.Context) error {
	onBattery, err := OnBattery(w.conn)
	if err != nil {
		return err
	}
	return w.submit(ctx, onBattery)
}

// OnBattery reads the current UPower OnBattery property.
func OnBattery(conn *dbus.Conn) (bool, error) {
	v, err := conn.Object(upowerDest, upowerPath).GetProperty(upowerIface + ".OnBattery")
	if err != nil {
		return false, fmt.Errorf("upower: read OnBattery: %w", err)
	}
	onBattery, ok := v.Value().(bool)
	if !ok {
		return false, fmt.Errorf("upower: unexpected OnBattery type %s", v.Signature())
	}
	return onBattery, nil
}

func (w *UPowerWatcher) submit(ctx context.Context, onBattery bool) error {
	logging.FromContext(ctx).Debug().Bool("on_battery", onBattery).Msg("battery state")
	return w.sink.Submit(ctx, event.BatteryStateChanged{OnBattery: onBattery})
}

// batteryFromSignal decodes a PropertiesChanged signal from UPower. It
// reports the new value when OnBattery changed, or invalidated when the
// property was invalidated without a value.
func batteryFromSignal(sig *dbus.Signal) (onBattery, changed, invalidated bool) {
	if sig == nil || sig.Path != upowerPath || sig.Name != propertiesChanged || len(sig.Body) < 2 {
		return false, false, false
	}
	iface, ok := sig.Body[0].(string)
	if !ok || iface != upowerIface {
		return false, false, false
	}

	if props, ok := sig.Body[1].(map[string]dbus.Variant); ok {
		if v, ok := props["OnBattery"]; ok {
			if b, ok := v.Value().(bool); ok {
				return b, true, false
			}
		}
	}

	if len(sig.Body) > 2 {
		if names, ok := sig.Body[2].([]string); ok {
			for _, name := range names {
				if name == "OnBattery" {
					return false, false, true
				}
			}
		}
	}
	return false, false, false
}
