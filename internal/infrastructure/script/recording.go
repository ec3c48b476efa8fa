package script

import (
	"errors"
	"fmt"
	"time"

	"github.com/bnema/sleepwatcher/internal/application/port"
	"github.com/bnema/sleepwatcher/internal/domain/event"
)

// Subscription is an idle timer a script asked for.
type Subscription struct {
	Timeout  time.Duration `json:"timeout"`
	Callback string        `json:"callback"`
}

// Recording is a ScriptHost that records registrations instead of acting on
// them. Commands are recorded but never spawned.
type Recording struct {
	Subscriptions []Subscription    `json:"subscriptions"`
	Handlers      map[string]string `json:"handlers"`
	Commands      []string          `json:"commands"`
	Logs          []string          `json:"logs"`
}

var _ port.ScriptHost = (*Recording)(nil)

func NewRecording() *Recording {
	return &Recording{Handlers: make(map[string]string)}
}

func (r *Recording) CreateIdleSubscription(timeout time.Duration, callback string) error {
	if callback == "" {
		return errors.New("callback name is empty")
	}
	if timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", timeout)
	}
	r.Subscriptions = append(r.Subscriptions, Subscription{Timeout: timeout, Callback: callback})
	return nil
}

func (r *Recording) RunCommand(commandLine string) error {
	r.Commands = append(r.Commands, commandLine)
	return nil
}

func (r *Recording) RunCommandOnce(commandLine string) error {
	r.Commands = append(r.Commands, commandLine+" (once)")
	return nil
}

func (r *Recording) RegisterSessionHandler(kind, callback string) error {
	signal, err := event.ParseSignalKind(kind)
	if err != nil {
		return err
	}
	if callback == "" {
		return errors.New("callback name is empty")
	}
	r.Handlers[signal.String()] = callback
	return nil
}

func (r *Recording) Log(message string) {
	r.Logs = append(r.Logs, message)
}
