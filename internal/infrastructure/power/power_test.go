package power

import (
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"

	"github.com/bnema/sleepwatcher/internal/domain/event"
)

func TestBatteryFromSignal(t *testing.T) {
	changed := func(props map[string]dbus.Variant, invalidated ...string) *dbus.Signal {
		if invalidated == nil {
			invalidated = []string{}
		}
		return &dbus.Signal{
			Path: upowerPath,
			Name: propertiesChanged,
			Body: []interface{}{upowerIface, props, invalidated},
		}
	}

	tests := []struct {
		name            string
		sig             *dbus.Signal
		wantOnBattery   bool
		wantChanged     bool
		wantInvalidated bool
	}{
		{
			name:          "unplugged",
			sig:           changed(map[string]dbus.Variant{"OnBattery": dbus.MakeVariant(true)}),
			wantOnBattery: true,
			wantChanged:   true,
		},
		{
			name:        "plugged in",
			sig:         changed(map[string]dbus.Variant{"OnBattery": dbus.MakeVariant(false), "LidIsClosed": dbus.MakeVariant(false)}),
			wantChanged: true,
		},
		{
			name: "unrelated property",
			sig:  changed(map[string]dbus.Variant{"LidIsClosed": dbus.MakeVariant(true)}),
		},
		{
			name:            "invalidated",
			sig:             changed(map[string]dbus.Variant{}, "OnBattery"),
			wantInvalidated: true,
		},
		{
			name: "other interface",
			sig: &dbus.Signal{
				Path: upowerPath,
				Name: propertiesChanged,
				Body: []interface{}{"org.freedesktop.UPower.Device", map[string]dbus.Variant{"OnBattery": dbus.MakeVariant(true)}, []string{}},
			},
		},
		{
			name: "other path",
			sig: &dbus.Signal{
				Path: "/org/freedesktop/UPower/devices/battery_BAT0",
				Name: propertiesChanged,
				Body: []interface{}{upowerIface, map[string]dbus.Variant{"OnBattery": dbus.MakeVariant(true)}, []string{}},
			},
		},
		{name: "nil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			onBattery, changed, invalidated := batteryFromSignal(tt.sig)
			assert.Equal(t, tt.wantOnBattery, onBattery)
			assert.Equal(t, tt.wantChanged, changed)
			assert.Equal(t, tt.wantInvalidated, invalidated)
		})
	}
}

func TestSessionSignal(t *testing.T) {
	session := dbus.ObjectPath("/org/freedesktop/login1/session/_32")

	tests := []struct {
		name    string
		sig     *dbus.Signal
		session dbus.ObjectPath
		want    event.SignalKind
		wantOK  bool
	}{
		{
			name:    "prepare for sleep",
			sig:     &dbus.Signal{Path: logindPath, Name: logindManagerIface + ".PrepareForSleep", Body: []interface{}{true}},
			session: session,
			want:    event.PrepareSleep,
			wantOK:  true,
		},
		{
			name:    "wakeup",
			sig:     &dbus.Signal{Path: logindPath, Name: logindManagerIface + ".PrepareForSleep", Body: []interface{}{false}},
			session: session,
			want:    event.Wakeup,
			wantOK:  true,
		},
		{
			name:    "lock",
			sig:     &dbus.Signal{Path: session, Name: logindSessionIface + ".Lock"},
			session: session,
			want:    event.Lock,
			wantOK:  true,
		},
		{
			name:    "unlock",
			sig:     &dbus.Signal{Path: session, Name: logindSessionIface + ".Unlock"},
			session: session,
			want:    event.Unlock,
			wantOK:  true,
		},
		{
			name:    "lock for another session",
			sig:     &dbus.Signal{Path: "/org/freedesktop/login1/session/c1", Name: logindSessionIface + ".Lock"},
			session: session,
		},
		{
			name: "lock without resolved session",
			sig:  &dbus.Signal{Path: session, Name: logindSessionIface + ".Lock"},
		},
		{
			name:    "malformed sleep body",
			sig:     &dbus.Signal{Path: logindPath, Name: logindManagerIface + ".PrepareForSleep", Body: []interface{}{"yes"}},
			session: session,
		},
		{
			name:    "unrelated",
			sig:     &dbus.Signal{Path: logindPath, Name: logindManagerIface + ".SessionNew"},
			session: session,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := sessionSignal(tt.sig, tt.session)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
