// Package evdev reads Linux input event devices.
//
// Devices are opened and inspected through go-evdev. Reads go through a file
// with read deadlines so a cancelled task notices at the next read boundary
// and closes its own handle.
package evdev

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	goevdev "github.com/holoplot/go-evdev"
	"golang.org/x/sys/unix"

	"github.com/bnema/sleepwatcher/internal/application/port"
)

// eventSize is sizeof(struct input_event).
var eventSize = binary.Size(goevdev.InputEvent{})

const defaultReadTimeout = 250 * time.Millisecond

var _ port.InputOpener = (*Opener)(nil)

// Opener opens event nodes under Dir.
type Opener struct {
	Dir         string
	ReadTimeout time.Duration
}

// NewOpener returns an opener for /dev/input.
func NewOpener(readTimeout time.Duration) *Opener {
	return &Opener{Dir: "/dev/input", ReadTimeout: readTimeout}
}

// Open checks the node for key events, then opens it for reading.
func (o *Opener) Open(deviceID string) (port.InputDevice, error) {
	if deviceID == "" || strings.ContainsRune(deviceID, '/') || !strings.HasPrefix(deviceID, "event") {
		return nil, fmt.Errorf("evdev: invalid device id %q", deviceID)
	}
	path := filepath.Join(o.Dir, deviceID)

	name, err := inspect(path)
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("evdev: %w", err)
	}
	dev := NewDevice(f, o.ReadTimeout)
	dev.name = name
	return dev, nil
}

// inspect returns the device name and fails for nodes that report no key
// events. The inspection handle is closed before returning: go-evdev switches its
// file to blocking mode, which rules out read deadlines on it.
func inspect(path string) (string, error) {
	idev, err := goevdev.OpenWithFlags(path, os.O_RDONLY)
	if err != nil {
		return "", fmt.Errorf("evdev: open %s: %w", path, err)
	}
	defer idev.Close()

	if !slices.Contains(idev.CapableTypes(), goevdev.EV_KEY) {
		return "", fmt.Errorf("evdev: %s reports no key events", path)
	}
	name, err := idev.Name()
	if err != nil {
		return "", fmt.Errorf("evdev: name of %s: %w", path, err)
	}
	return name, nil
}

// Device decodes input_event records from a file.
type Device struct {
	f       *os.File
	name    string
	timeout time.Duration
	buf     []byte
	n       int
}

// NewDevice wraps f. f must support read deadlines.
func NewDevice(f *os.File, readTimeout time.Duration) *Device {
	if readTimeout <= 0 {
		readTimeout = defaultReadTimeout
	}
	return &Device{f: f, timeout: readTimeout, buf: make([]byte, eventSize)}
}

// Name is the kernel device name, empty when the device was not inspected.
func (d *Device) Name() string {
	return d.name
}

// Next returns the next event. Every read waits at most the read timeout so
// ctx is checked at each read boundary.
func (d *Device) Next(ctx context.Context) (port.InputEvent, error) {
	for {
		if err := ctx.Err(); err != nil {
			return port.InputEvent{}, err
		}
		if err := d.f.SetReadDeadline(time.Now().Add(d.timeout)); err != nil {
			return port.InputEvent{}, fmt.Errorf("evdev: set deadline: %w", err)
		}

		n, err := d.f.Read(d.buf[d.n:])
		d.n += n
		if d.n == eventSize {
			d.n = 0
			return decode(d.buf)
		}

		switch {
		case err == nil:
		case errors.Is(err, os.ErrDeadlineExceeded):
		case errors.Is(err, io.EOF):
			return port.InputEvent{}, fmt.Errorf("evdev: device closed: %w", err)
		default:
			return port.InputEvent{}, fmt.Errorf("evdev: read: %w", err)
		}
	}
}

func (d *Device) Close() error {
	return d.f.Close()
}

func decode(b []byte) (port.InputEvent, error) {
	var ev goevdev.InputEvent
	if err := binary.Read(bytes.NewReader(b), binary.NativeEndian, &ev); err != nil {
		return port.InputEvent{}, fmt.Errorf("evdev: decode: %w", err)
	}
	return port.InputEvent{
		Type:  uint16(ev.Type),
		Code:  uint16(ev.Code),
		Value: ev.Value,
	}, nil
}
