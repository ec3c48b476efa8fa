// Package coordinator is the event coordination engine of the daemon.
//
// Producers (the compositor dispatch loop, bus listeners, the hotplug monitor,
// the script watcher, per-device tasks and the inhibit hold timer) submit
// immutable events to an Inbox. A single Router goroutine consumes the inbox
// and is the only code that mutates the subscription registry, the inhibit
// state and the device task map, and the only code that calls into the script
// engine. No two events are ever processed concurrently.
//
// Script calls are synchronous: a callback that blocks stalls the whole loop,
// so scripts must return quickly. router.script_timeout bounds each call.
package coordinator
