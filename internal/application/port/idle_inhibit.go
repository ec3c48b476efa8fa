package port

import "context"

// Inhibitor acquires the native resource that keeps the session from going
// idle or to sleep while held.
type Inhibitor interface {
	// Acquire creates a new inhibition. It returns ErrUnavailable when the
	// backend cannot inhibit yet; callers treat that as a degraded success.
	Acquire(ctx context.Context) (InhibitHandle, error)
}

// InhibitHandle is one live inhibition. Release must be called exactly once.
type InhibitHandle interface {
	Release(ctx context.Context) error
}
