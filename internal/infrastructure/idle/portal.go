package idle

import (
	"context"

	"github.com/godbus/dbus/v5"
)

//go:generate mockgen -source=portal.go -destination=mocks/mock_portal.go -package=mock_idle

// PortalCaller is the subset of org.freedesktop.portal.Inhibit the inhibitor
// uses.
type PortalCaller interface {
	// Inhibit creates an inhibition and returns its request handle.
	Inhibit(ctx context.Context, flags uint32, reason string) (dbus.ObjectPath, error)
	// Close ends the inhibition identified by request.
	Close(ctx context.Context, request dbus.ObjectPath) error
}
