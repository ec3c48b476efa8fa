// Package event defines the coordination events exchanged between the
// watchers and the router.
//
// Every event is an immutable value. Producers construct one, hand it to the
// inbox and never touch it again.
package event

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind identifies the variant of an Event.
type Kind int

const (
	KindConfigChanged Kind = iota + 1
	KindBatteryStateChanged
	KindSessionSignal
	KindIdleTransition
	KindDeviceAdded
	KindDeviceRemoved
	KindDeviceActivity
	KindInhibitRequested
	KindFlushRequested
	KindScriptReloadRequested

	// Router-internal transitions.
	KindInhibitReleased
	KindDeviceLost
)

var kindNames = map[Kind]string{
	KindConfigChanged:         "config_changed",
	KindBatteryStateChanged:   "battery_state_changed",
	KindSessionSignal:         "session_signal",
	KindIdleTransition:        "idle_transition",
	KindDeviceAdded:           "device_added",
	KindDeviceRemoved:         "device_removed",
	KindDeviceActivity:        "device_activity",
	KindInhibitRequested:      "inhibit_requested",
	KindFlushRequested:        "flush_requested",
	KindScriptReloadRequested: "script_reload_requested",
	KindInhibitReleased:       "inhibit_released",
	KindDeviceLost:            "device_lost",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Event is the sealed union of everything the router consumes.
type Event interface {
	Kind() Kind
	sealed()
}

// SubscriptionID identifies one idle-timer registration for the lifetime of
// the process.
type SubscriptionID = uuid.UUID

// NewSubscriptionID allocates a fresh random identifier.
func NewSubscriptionID() SubscriptionID {
	return uuid.New()
}

// ConfigChanged reports that the user script changed on disk.
type ConfigChanged struct{}

// BatteryStateChanged carries the new on-battery state.
type BatteryStateChanged struct {
	OnBattery bool
}

// SessionSignal carries a session or sleep transition from logind.
type SessionSignal struct {
	Signal SignalKind
}

// IdleTransition is delivered by the compositor for one subscription.
type IdleTransition struct {
	Subscription SubscriptionID
	Phase        Phase
}

// DeviceAdded reports a new qualifying input device.
type DeviceAdded struct {
	DeviceID string
}

// DeviceRemoved reports that an input device went away.
type DeviceRemoved struct {
	DeviceID string
}

// DeviceActivity reports qualifying input on a tracked device.
type DeviceActivity struct {
	DeviceID string
}

// InhibitRequested asks for sleep to be suppressed for one hold window.
type InhibitRequested struct{}

// FlushRequested asks the protocol connection to write out buffered requests.
type FlushRequested struct{}

// ScriptReloadRequested asks the router to rebuild the script engine and
// execute the user script again.
type ScriptReloadRequested struct{}

// InhibitReleased is the deferred end of a hold window. Generation ties it to
// the window that scheduled it so late fires can be discarded.
type InhibitReleased struct {
	Generation uint64
}

// DeviceLost is emitted by a device task that ended on its own (read error,
// open failure). Task is the generation of the task that ended.
type DeviceLost struct {
	DeviceID string
	Task     uint64
}

func (ConfigChanged) Kind() Kind         { return KindConfigChanged }
func (BatteryStateChanged) Kind() Kind   { return KindBatteryStateChanged }
func (SessionSignal) Kind() Kind         { return KindSessionSignal }
func (IdleTransition) Kind() Kind        { return KindIdleTransition }
func (DeviceAdded) Kind() Kind           { return KindDeviceAdded }
func (DeviceRemoved) Kind() Kind         { return KindDeviceRemoved }
func (DeviceActivity) Kind() Kind        { return KindDeviceActivity }
func (InhibitRequested) Kind() Kind      { return KindInhibitRequested }
func (FlushRequested) Kind() Kind        { return KindFlushRequested }
func (ScriptReloadRequested) Kind() Kind { return KindScriptReloadRequested }
func (InhibitReleased) Kind() Kind       { return KindInhibitReleased }
func (DeviceLost) Kind() Kind            { return KindDeviceLost }

func (ConfigChanged) sealed()         {}
func (BatteryStateChanged) sealed()   {}
func (SessionSignal) sealed()         {}
func (IdleTransition) sealed()        {}
func (DeviceAdded) sealed()           {}
func (DeviceRemoved) sealed()         {}
func (DeviceActivity) sealed()        {}
func (InhibitRequested) sealed()      {}
func (FlushRequested) sealed()        {}
func (ScriptReloadRequested) sealed() {}
func (InhibitReleased) sealed()       {}
func (DeviceLost) sealed()            {}
