package port

import (
	"context"
	"time"
)

// ScriptHost is the set of capabilities a user script can call back into.
// All methods run on the router's turn, synchronously with the script call
// that triggered them.
type ScriptHost interface {
	// CreateIdleSubscription registers a timer that invokes callback with
	// "idled" after timeout of inactivity and "resumed" when activity returns.
	CreateIdleSubscription(timeout time.Duration, callback string) error

	// RunCommand spawns commandLine without waiting for it.
	RunCommand(commandLine string) error

	// RunCommandOnce spawns commandLine unless a process with the same
	// executable name is already running.
	RunCommandOnce(commandLine string) error

	// RegisterSessionHandler binds callback to a session signal kind
	// (Lock, Unlock, PrepareSleep, Wakeup).
	RegisterSessionHandler(kind, callback string) error

	// Log writes message to the daemon log.
	Log(message string)
}

// ScriptEngine executes the user script and resolves callbacks by name.
type ScriptEngine interface {
	// Reset discards the current interpreter state and creates a fresh one
	// with host bound as the capability provider.
	Reset(host ScriptHost) error

	// Exec runs source in the current interpreter. name is used in error
	// messages.
	Exec(ctx context.Context, name string, source []byte) error

	// Invoke calls the global function callback with args. It returns an
	// error wrapping ErrCallbackNotFound when callback is not a function.
	Invoke(ctx context.Context, callback string, args ...string) error

	// SetOnBattery updates the shared setting read by scripts.
	SetOnBattery(onBattery bool) error

	// OnBattery returns the shared setting as scripts see it.
	OnBattery() bool

	Close() error
}
