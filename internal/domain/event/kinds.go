package event

import (
	"fmt"
	"strings"
)

// Phase is the direction of an idle transition.
type Phase int

const (
	Idled Phase = iota + 1
	Resumed
)

// String returns the literal passed to script callbacks.
func (p Phase) String() string {
	switch p {
	case Idled:
		return "idled"
	case Resumed:
		return "resumed"
	default:
		return "unknown"
	}
}

// SignalKind is a session or sleep transition a script can subscribe to.
type SignalKind int

const (
	Lock SignalKind = iota + 1
	Unlock
	PrepareSleep
	Wakeup
)

func (s SignalKind) String() string {
	switch s {
	case Lock:
		return "Lock"
	case Unlock:
		return "Unlock"
	case PrepareSleep:
		return "PrepareSleep"
	case Wakeup:
		return "Wakeup"
	default:
		return "Unknown"
	}
}

// ParseSignalKind accepts the signal names plus the legacy handler names
// used by older scripts (LockHandler, UnlockHandler). Matching is case
// insensitive.
func ParseSignalKind(name string) (SignalKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "lock", "lockhandler":
		return Lock, nil
	case "unlock", "unlockhandler":
		return Unlock, nil
	case "preparesleep", "prepare_sleep", "preparesleephandler":
		return PrepareSleep, nil
	case "wakeup", "wakeuphandler":
		return Wakeup, nil
	default:
		return 0, fmt.Errorf("unknown session signal %q", name)
	}
}
