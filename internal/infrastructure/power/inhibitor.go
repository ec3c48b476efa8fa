package power

import (
	"context"
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
	"golang.org/x/sys/unix"

	"github.com/bnema/sleepwatcher/internal/application/port"
	"github.com/bnema/sleepwatcher/internal/logging"
)

var _ port.Inhibitor = (*LogindInhibitor)(nil)

// LogindInhibitor takes a block inhibitor lock from logind. The lock lives as
// long as the returned file descriptor stays open.
type LogindInhibitor struct {
	conn *dbus.Conn
	what string
	who  string
	why  string
}

// NewLogindInhibitor creates an inhibitor blocking idle and sleep.
func NewLogindInhibitor(conn *dbus.Conn) *LogindInhibitor {
	return &LogindInhibitor{
		conn: conn,
		what: "idle:sleep",
		who:  "sleepwatcher",
		why:  "input device activity",
	}
}

func (l *LogindInhibitor) Acquire(ctx context.Context) (port.InhibitHandle, error) {
	var fd dbus.UnixFD
	err := l.conn.Object(logindDest, logindPath).
		CallWithContext(ctx, logindManagerIface+".Inhibit", 0, l.what, l.who, l.why, "block").
		Store(&fd)
	if err != nil {
		return nil, fmt.Errorf("logind inhibit: %w", err)
	}

	logging.FromContext(ctx).Debug().Int32("fd", int32(fd)).Str("what", l.what).Msg("logind inhibitor taken")
	return &fdHandle{fd: int(fd)}, nil
}

type fdHandle struct {
	fd   int
	once sync.Once
}

func (h *fdHandle) Release(context.Context) error {
	var err error
	h.once.Do(func() { err = unix.Close(h.fd) })
	return err
}
