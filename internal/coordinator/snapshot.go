package coordinator

import "github.com/bnema/sleepwatcher/internal/domain/event"

// Snapshot is a read-only view of router state, published after every turn.
type Snapshot struct {
	Subscriptions    int               `json:"subscriptions"`
	Devices          []string          `json:"devices"`
	InhibitActive    bool              `json:"inhibit_active"`
	InhibitHeld      bool              `json:"inhibit_held"`
	OnBattery        bool              `json:"on_battery"`
	SessionHandlers  map[string]string `json:"session_handlers"`
	ScriptGeneration uint64            `json:"script_generation"`
	EventsProcessed  uint64            `json:"events_processed"`
}

// Recorder receives router activity for metrics.
type Recorder interface {
	EventProcessed(kind event.Kind)
	ScriptError(phase string)
	InhibitAcquired(held bool)
	Observe(s Snapshot)
}

type nopRecorder struct{}

func (nopRecorder) EventProcessed(event.Kind) {}
func (nopRecorder) ScriptError(string)        {}
func (nopRecorder) InhibitAcquired(bool)      {}
func (nopRecorder) Observe(Snapshot)          {}

// Script error phases reported to the Recorder.
const (
	PhaseLoad     = "load"
	PhaseCallback = "callback"
	PhaseSession  = "session"
)
