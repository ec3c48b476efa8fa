// Package udev watches input device hotplug through the udev netlink monitor.
package udev

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/pilebones/go-udev/netlink"
	"golang.org/x/sys/unix"

	"github.com/bnema/sleepwatcher/internal/application/port"
	"github.com/bnema/sleepwatcher/internal/domain/event"
	"github.com/bnema/sleepwatcher/internal/logging"
)

const pollInterval = 250 // ms

// Monitor emits DeviceAdded and DeviceRemoved for input event nodes.
type Monitor struct {
	conn       *netlink.UEventConn
	sink       port.EventSink
	classifier *Classifier
	rules      netlink.Matcher
}

// NewMonitor opens a netlink socket subscribed to events processed by udevd.
func NewMonitor(sink port.EventSink, classifier *Classifier) (*Monitor, error) {
	if classifier == nil {
		classifier = NewClassifier()
	}
	rules := inputRules(classifier.property())
	if err := rules.Compile(); err != nil {
		return nil, fmt.Errorf("udev: compile rules: %w", err)
	}

	conn := &netlink.UEventConn{}
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		return nil, fmt.Errorf("udev: connect netlink: %w", err)
	}
	return &Monitor{conn: conn, sink: sink, classifier: classifier, rules: rules}, nil
}

// inputRules matches added input nodes carrying property=1, and every input
// removal since untracked removals are no-ops downstream.
func inputRules(property string) *netlink.RuleDefinitions {
	add, remove := "^add$", "^remove$"
	return &netlink.RuleDefinitions{Rules: []netlink.RuleDefinition{
		{Action: &add, Env: map[string]string{"SUBSYSTEM": "^input$", property: "^1$"}},
		{Action: &remove, Env: map[string]string{"SUBSYSTEM": "^input$"}},
	}}
}

// Run enumerates present devices, then forwards hotplug events until ctx is
// done. The socket is closed on return.
func (m *Monitor) Run(ctx context.Context) error {
	ctx = logging.WithComponent(ctx, "udev")
	log := logging.FromContext(ctx)
	defer m.conn.Close()

	if err := m.enumerate(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to enumerate input devices")
	}

	// ReadMsg blocks, so readiness is polled to observe ctx.
	fds := []unix.PollFd{{Fd: int32(m.conn.Fd), Events: unix.POLLIN}}
	for {
		if ctx.Err() != nil {
			return nil
		}

		n, err := unix.Poll(fds, pollInterval)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return fmt.Errorf("udev: poll: %w", err)
		}
		if n == 0 {
			continue
		}

		msg, err := m.conn.ReadMsg()
		if err != nil {
			if errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.ENOBUFS) {
				continue
			}
			return fmt.Errorf("udev: read: %w", err)
		}
		u, err := netlink.ParseUEvent(msg)
		if err != nil {
			log.Trace().Err(err).Msg("ignoring netlink message")
			continue
		}

		ev, ok := translate(*u, m.rules)
		if !ok {
			continue
		}
		log.Debug().Str("action", u.Action.String()).Str("device", sysName(*u)).Msg("input hotplug")
		if err := m.sink.Submit(ctx, ev); err != nil {
			return nil
		}
	}
}

func (m *Monitor) enumerate(ctx context.Context) error {
	ids, err := m.classifier.Enumerate()
	if err != nil {
		return err
	}
	for _, id := range ids {
		if !m.classifier.Qualifies(id) {
			continue
		}
		if err := m.sink.Submit(ctx, event.DeviceAdded{DeviceID: id}); err != nil {
			return err
		}
	}
	return nil
}

// translate maps a uevent accepted by rules to a device event. Only event
// nodes are kept; the parent inputN and the jsN nodes share the subsystem.
func translate(u netlink.UEvent, rules netlink.Matcher) (event.Event, bool) {
	if !rules.Evaluate(u) {
		return nil, false
	}
	id := sysName(u)
	if !validEventName(id) {
		return nil, false
	}

	switch u.Action {
	case netlink.ADD:
		return event.DeviceAdded{DeviceID: id}, true
	case netlink.REMOVE:
		return event.DeviceRemoved{DeviceID: id}, true
	}
	return nil, false
}

// sysName is the last DEVPATH element, e.g. "event7".
func sysName(u netlink.UEvent) string {
	devPath := u.KObj
	if devPath == "" {
		devPath = u.Env["DEVPATH"]
	}
	if devPath == "" {
		return ""
	}
	return path.Base(devPath)
}
