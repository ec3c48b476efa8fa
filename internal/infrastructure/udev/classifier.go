package udev

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultProperty marks the devices tracked by default.
const DefaultProperty = "ID_INPUT_JOYSTICK"

// Classifier checks a udev property of an input event node through sysfs
// and the udev database.
type Classifier struct {
	SysRoot  string // default /sys/class/input
	DataRoot string // default /run/udev/data
	Property string // default ID_INPUT_JOYSTICK
}

// NewClassifier returns a classifier using the system paths.
func NewClassifier() *Classifier {
	return &Classifier{
		SysRoot:  "/sys/class/input",
		DataRoot: "/run/udev/data",
		Property: DefaultProperty,
	}
}

// Qualifies reports whether deviceID (e.g. "event7") carries Property=1.
func (c *Classifier) Qualifies(deviceID string) bool {
	if !validEventName(deviceID) {
		return false
	}

	dev, err := os.ReadFile(filepath.Join(c.SysRoot, deviceID, "dev"))
	if err != nil {
		return false
	}
	majorMinor := strings.TrimSpace(string(dev))

	f, err := os.Open(filepath.Join(c.DataRoot, "c"+majorMinor))
	if err != nil {
		return false
	}
	defer f.Close()

	want := "E:" + c.property() + "=1"
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if scanner.Text() == want {
			return true
		}
	}
	return false
}

func (c *Classifier) property() string {
	if c.Property == "" {
		return DefaultProperty
	}
	return c.Property
}

// Enumerate lists the input event nodes present under SysRoot.
func (c *Classifier) Enumerate() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(c.SysRoot, "event*"))
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		if id := filepath.Base(m); validEventName(id) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func validEventName(id string) bool {
	rest, ok := strings.CutPrefix(id, "event")
	if !ok || rest == "" {
		return false
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
