package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "idled", Idled.String())
	assert.Equal(t, "resumed", Resumed.String())
	assert.Equal(t, "unknown", Phase(0).String())
}

func TestParseSignalKind(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    SignalKind
		wantErr bool
	}{
		{name: "lock", input: "Lock", want: Lock},
		{name: "legacy lock handler", input: "LockHandler", want: Lock},
		{name: "unlock lowercase", input: "unlock", want: Unlock},
		{name: "legacy unlock handler", input: "UnlockHandler", want: Unlock},
		{name: "prepare sleep", input: "PrepareSleep", want: PrepareSleep},
		{name: "wakeup", input: " Wakeup ", want: Wakeup},
		{name: "unknown", input: "Hibernate", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSignalKind(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got.String(), tt.want.String())
		})
	}
}

func TestEvent_Kinds(t *testing.T) {
	events := map[Kind]Event{
		KindConfigChanged:         ConfigChanged{},
		KindBatteryStateChanged:   BatteryStateChanged{OnBattery: true},
		KindSessionSignal:         SessionSignal{Signal: Lock},
		KindIdleTransition:        IdleTransition{Subscription: NewSubscriptionID(), Phase: Idled},
		KindDeviceAdded:           DeviceAdded{DeviceID: "event3"},
		KindDeviceRemoved:         DeviceRemoved{DeviceID: "event3"},
		KindDeviceActivity:        DeviceActivity{DeviceID: "event3"},
		KindInhibitRequested:      InhibitRequested{},
		KindFlushRequested:        FlushRequested{},
		KindScriptReloadRequested: ScriptReloadRequested{},
		KindInhibitReleased:       InhibitReleased{Generation: 1},
		KindDeviceLost:            DeviceLost{DeviceID: "event3", Task: 1},
	}

	for kind, ev := range events {
		assert.Equal(t, kind, ev.Kind())
		assert.NotContains(t, kind.String(), "kind(")
	}
	assert.Equal(t, "kind(99)", Kind(99).String())
}

func TestNewSubscriptionID_Unique(t *testing.T) {
	seen := make(map[SubscriptionID]struct{})
	for range 1000 {
		id := NewSubscriptionID()
		_, dup := seen[id]
		require.False(t, dup)
		seen[id] = struct{}{}
	}
}
