package coordinator

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/sleepwatcher/internal/application/port"
	"github.com/bnema/sleepwatcher/internal/domain/event"
)

// Registry tracks the live idle subscriptions created by the script.
//
// The router is the only writer. The mutex is held for single lookups and
// mutations only, never across a script call.
type Registry struct {
	notifier port.IdleNotifier
	newID    func() event.SubscriptionID

	mu      sync.Mutex
	entries map[event.SubscriptionID]subscription
}

type subscription struct {
	callback string
	timeout  time.Duration
	handle   port.IdleNotification
}

// NewRegistry creates an empty registry backed by notifier.
func NewRegistry(notifier port.IdleNotifier) *Registry {
	return &Registry{
		notifier: notifier,
		newID:    event.NewSubscriptionID,
		entries:  make(map[event.SubscriptionID]subscription),
	}
}

// Register allocates a fresh identifier, creates the native timer for it and
// records callback as the name to invoke on transitions.
func (r *Registry) Register(callback string, timeout time.Duration) (event.SubscriptionID, error) {
	if callback == "" {
		return event.SubscriptionID{}, errors.New("callback name is empty")
	}
	if timeout <= 0 {
		return event.SubscriptionID{}, fmt.Errorf("timeout must be positive, got %s", timeout)
	}
	if r.notifier == nil {
		return event.SubscriptionID{}, fmt.Errorf("idle notifier: %w", port.ErrUnavailable)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.newID()
	for _, taken := r.entries[id]; taken; _, taken = r.entries[id] {
		id = r.newID()
	}

	handle, err := r.notifier.Subscribe(id, timeout)
	if err != nil {
		return event.SubscriptionID{}, fmt.Errorf("create idle notification: %w", err)
	}

	r.entries[id] = subscription{callback: callback, timeout: timeout, handle: handle}
	return id, nil
}

// Lookup returns the callback name registered for id.
func (r *Registry) Lookup(id event.SubscriptionID) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, ok := r.entries[id]
	return sub.callback, ok
}

// ClearAll destroys every native handle exactly once and empties the
// registry. Handles are destroyed before the map is cleared. It returns the
// number of subscriptions released and the joined destroy errors.
func (r *Registry) ClearAll() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for id, sub := range r.entries {
		if err := sub.handle.Destroy(); err != nil {
			errs = append(errs, fmt.Errorf("destroy subscription %s: %w", id, err))
		}
	}

	n := len(r.entries)
	clear(r.entries)
	return n, errors.Join(errs...)
}

// Len returns the number of live subscriptions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
