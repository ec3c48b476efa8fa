package port

import "context"

// Input event types (linux/input-event-codes.h).
const (
	EvSyn uint16 = 0x00
	EvKey uint16 = 0x01
	EvRel uint16 = 0x02
	EvAbs uint16 = 0x03
)

// InputEvent is one decoded evdev record.
type InputEvent struct {
	Type  uint16
	Code  uint16
	Value int32
}

// IsKey reports whether the event is a key or button event.
func (e InputEvent) IsKey() bool { return e.Type == EvKey }

// InputDevice is an open input device.
type InputDevice interface {
	// Next blocks until an event arrives, ctx is done, or the device fails.
	// Implementations must observe ctx within a bounded read interval.
	Next(ctx context.Context) (InputEvent, error)
	Close() error
}

// InputOpener opens an input device by its identifier (the event node
// sysname, e.g. "event7").
type InputOpener interface {
	Open(deviceID string) (InputDevice, error)
}

// DeviceClassifier decides whether a device should be tracked.
type DeviceClassifier interface {
	Qualifies(deviceID string) bool
}
