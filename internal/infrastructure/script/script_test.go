package script

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/sleepwatcher/internal/config"
)

func TestNewEngine_ByExtension(t *testing.T) {
	tests := []struct {
		path    string
		source  string
		wantErr bool
	}{
		{path: "idle_config.lua", source: `create_idle_subscription(60, "dim")`},
		{path: "/home/u/.config/sleepwatcher/IDLE.LUA", source: `IdleNotifier:get_notification(60, "dim")`},
		{path: "idle.js", source: `create_idle_subscription(60, "dim");`},
		{path: "idle.mjs", source: `IdleNotifier.get_notification(60, "dim");`},
		{path: "idle.py", wantErr: true},
		{path: "idle", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			engine, err := NewEngine(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer func() { _ = engine.Close() }()

			rec := NewRecording()
			require.NoError(t, engine.Reset(rec))
			require.NoError(t, engine.Exec(context.Background(), tt.path, []byte(tt.source)))
			assert.Equal(t, []Subscription{{Timeout: time.Minute, Callback: "dim"}}, rec.Subscriptions)
		})
	}
}

func TestRecording(t *testing.T) {
	rec := NewRecording()

	require.NoError(t, rec.CreateIdleSubscription(time.Second, "cb"))
	assert.Error(t, rec.CreateIdleSubscription(0, "cb"))
	assert.Error(t, rec.CreateIdleSubscription(time.Second, ""))

	require.NoError(t, rec.RegisterSessionHandler("LockHandler", "on_lock"))
	assert.Error(t, rec.RegisterSessionHandler("Hibernate", "x"))
	assert.Error(t, rec.RegisterSessionHandler("Wakeup", ""))

	require.NoError(t, rec.RunCommand("a"))
	require.NoError(t, rec.RunCommandOnce("b"))
	rec.Log("hi")

	assert.Len(t, rec.Subscriptions, 1)
	assert.Equal(t, map[string]string{"Lock": "on_lock"}, rec.Handlers)
	assert.Equal(t, []string{"a", "b (once)"}, rec.Commands)
	assert.Equal(t, []string{"hi"}, rec.Logs)
}

func TestDefaultScript_RunsInLua(t *testing.T) {
	engine, err := NewEngine("idle_config.lua")
	require.NoError(t, err)
	defer func() { _ = engine.Close() }()

	for _, onBattery := range []bool{true, false} {
		rec := NewRecording()
		require.NoError(t, engine.Reset(rec))
		require.NoError(t, engine.SetOnBattery(onBattery))
		require.NoError(t, engine.Exec(context.Background(), "idle_config.lua", config.DefaultScript()))

		assert.NotEmpty(t, rec.Subscriptions)
		assert.Equal(t, "on_lock", rec.Handlers["Lock"])
		for _, sub := range rec.Subscriptions {
			require.NoError(t, engine.Invoke(context.Background(), sub.Callback, "idled"))
			require.NoError(t, engine.Invoke(context.Background(), sub.Callback, "resumed"))
		}
	}
}
