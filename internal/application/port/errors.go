package port

import "errors"

var (
	// ErrCallbackNotFound is returned by a script engine when the named
	// callback is not a function in the current script.
	ErrCallbackNotFound = errors.New("script callback not found")

	// ErrNotInitialized is returned when a script engine is used before Reset.
	ErrNotInitialized = errors.New("script engine not initialized")

	// ErrUnavailable is returned by a native resource provider that cannot
	// serve the request yet (protocol global not bound, bus missing).
	ErrUnavailable = errors.New("resource unavailable")

	// ErrStopped is returned by an event sink whose consumer has stopped.
	ErrStopped = errors.New("event sink stopped")
)
