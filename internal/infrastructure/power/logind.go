package power

import (
	"context"
	"fmt"
	"os"

	"github.com/godbus/dbus/v5"

	"github.com/bnema/sleepwatcher/internal/application/port"
	"github.com/bnema/sleepwatcher/internal/domain/event"
	"github.com/bnema/sleepwatcher/internal/logging"
)

const (
	logindDest         = "org.freedesktop.login1"
	logindPath         = dbus.ObjectPath("/org/freedesktop/login1")
	logindManagerIface = "org.freedesktop.login1.Manager"
	logindSessionIface = "org.freedesktop.login1.Session"
)

// LogindWatcher reports sleep transitions and lock requests for the current
// session.
type LogindWatcher struct {
	conn *dbus.Conn
	sink port.EventSink
}

// NewLogindWatcher creates a watcher on a system bus connection.
func NewLogindWatcher(conn *dbus.Conn, sink port.EventSink) *LogindWatcher {
	return &LogindWatcher{conn: conn, sink: sink}
}

// Run forwards PrepareForSleep, Lock and Unlock until ctx is done.
func (w *LogindWatcher) Run(ctx context.Context) error {
	ctx = logging.WithComponent(ctx, "logind")
	log := logging.FromContext(ctx)

	sleepMatch := []dbus.MatchOption{
		dbus.WithMatchObjectPath(logindPath),
		dbus.WithMatchInterface(logindManagerIface),
		dbus.WithMatchMember("PrepareForSleep"),
	}
	if err := w.conn.AddMatchSignalContext(ctx, sleepMatch...); err != nil {
		return fmt.Errorf("logind: add match: %w", err)
	}
	defer func() { _ = w.conn.RemoveMatchSignal(sleepMatch...) }()

	session, err := w.sessionPath(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("no logind session, lock signals unavailable")
	} else {
		sessionMatch := []dbus.MatchOption{
			dbus.WithMatchObjectPath(session),
			dbus.WithMatchInterface(logindSessionIface),
		}
		if err := w.conn.AddMatchSignalContext(ctx, sessionMatch...); err != nil {
			return fmt.Errorf("logind: add session match: %w", err)
		}
		defer func() { _ = w.conn.RemoveMatchSignal(sessionMatch...) }()
		log.Debug().Str("session", string(session)).Msg("watching session")
	}

	signals := make(chan *dbus.Signal, 8)
	w.conn.Signal(signals)
	defer w.conn.RemoveSignal(signals)

	for {
		select {
		case <-ctx.Done():
			return nil
		case sig, ok := <-signals:
			if !ok {
				return errBusClosed
			}
			kind, ok := sessionSignal(sig, session)
			if !ok {
				continue
			}
			log.Debug().Str("signal", kind.String()).Msg("session signal")
			if err := w.sink.Submit(ctx, event.SessionSignal{Signal: kind}); err != nil {
				return nil
			}
		}
	}
}

// sessionPath resolves the caller's session, trying GetSession("auto") then
// GetSessionByPID.
func (w *LogindWatcher) sessionPath(ctx context.Context) (dbus.ObjectPath, error) {
	manager := w.conn.Object(logindDest, logindPath)

	var path dbus.ObjectPath
	err := manager.CallWithContext(ctx, logindManagerIface+".GetSession", 0, "auto").Store(&path)
	if err == nil {
		return path, nil
	}

	if id := os.Getenv("XDG_SESSION_ID"); id != "" {
		if err := manager.CallWithContext(ctx, logindManagerIface+".GetSession", 0, id).Store(&path); err == nil {
			return path, nil
		}
	}

	if err := manager.CallWithContext(ctx, logindManagerIface+".GetSessionByPID", 0, uint32(os.Getpid())).Store(&path); err != nil {
		return "", fmt.Errorf("logind: resolve session: %w", err)
	}
	return path, nil
}

// sessionSignal maps a logind signal to a session signal kind. Lock and
// Unlock are only accepted from session.
func sessionSignal(sig *dbus.Signal, session dbus.ObjectPath) (event.SignalKind, bool) {
	if sig == nil {
		return 0, false
	}

	switch sig.Name {
	case logindManagerIface + ".PrepareForSleep":
		if sig.Path != logindPath || len(sig.Body) < 1 {
			return 0, false
		}
		start, ok := sig.Body[0].(bool)
		if !ok {
			return 0, false
		}
		if start {
			return event.PrepareSleep, true
		}
		return event.Wakeup, true
	case logindSessionIface + ".Lock":
		if session == "" || sig.Path != session {
			return 0, false
		}
		return event.Lock, true
	case logindSessionIface + ".Unlock":
		if session == "" || sig.Path != session {
			return 0, false
		}
		return event.Unlock, true
	}
	return 0, false
}
