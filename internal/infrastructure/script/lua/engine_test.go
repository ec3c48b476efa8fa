package lua

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/sleepwatcher/internal/application/port"
	"github.com/bnema/sleepwatcher/internal/application/port/mocks"
)

func newEngine(t *testing.T, host port.ScriptHost) *Engine {
	t.Helper()
	e := NewEngine()
	require.NoError(t, e.Reset(host))
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func TestEngine_ExecBeforeReset(t *testing.T) {
	e := NewEngine()
	err := e.Exec(context.Background(), "idle.lua", []byte("x = 1"))
	assert.ErrorIs(t, err, port.ErrNotInitialized)

	err = e.Invoke(context.Background(), "cb")
	assert.ErrorIs(t, err, port.ErrNotInitialized)
}

func TestEngine_FlatCapabilities(t *testing.T) {
	host := mocks.NewMockScriptHost(t)
	host.EXPECT().CreateIdleSubscription(90*time.Second, "dim").Return(nil).Once()
	host.EXPECT().RunCommand("swaylock -f").Return(nil).Once()
	host.EXPECT().RunCommandOnce("swayidle").Return(nil).Once()
	host.EXPECT().RegisterSessionHandler("Lock", "on_lock").Return(nil).Once()
	host.EXPECT().Log("hello").Return().Once()

	e := newEngine(t, host)
	src := `
create_idle_subscription(90, "dim")
run_command("swaylock -f")
run_command_once("swayidle")
register_session_handler("Lock", "on_lock")
log("hello")
`
	require.NoError(t, e.Exec(context.Background(), "idle.lua", []byte(src)))
}

func TestEngine_LegacyObjectCapabilities(t *testing.T) {
	host := mocks.NewMockScriptHost(t)
	host.EXPECT().CreateIdleSubscription(300*time.Second, "lock").Return(nil).Once()
	host.EXPECT().CreateIdleSubscription(1500*time.Millisecond, "dot").Return(nil).Once()
	host.EXPECT().RunCommand("notify-send idle").Return(nil).Once()
	host.EXPECT().RunCommandOnce("swaylock").Return(nil).Once()
	host.EXPECT().RegisterSessionHandler("LockHandler", "on_lock").Return(nil).Once()
	host.EXPECT().RegisterSessionHandler("UnlockHandler", "on_unlock").Return(nil).Once()
	host.EXPECT().RegisterSessionHandler("PrepareSleep", "on_sleep").Return(nil).Once()
	host.EXPECT().RegisterSessionHandler("Wakeup", "on_wake").Return(nil).Once()
	host.EXPECT().Log("battery: true").Return().Once()

	e := newEngine(t, host)
	src := `
IdleNotifier:get_notification(300, "lock")
IdleNotifier.get_notification(1.5, "dot")
IdleNotifier:run("notify-send idle")
IdleNotifier:run_once("swaylock")
DbusHandler:LockHandler("on_lock")
DbusHandler:UnlockHandler("on_unlock")
DbusHandler:PrepareSleep("on_sleep")
DbusHandler:Wakeup("on_wake")
Helpers:log("battery: " .. tostring(Helpers:on_battery()))
`
	require.NoError(t, e.Exec(context.Background(), "idle.lua", []byte(src)))
}

func TestEngine_InvokePassesArguments(t *testing.T) {
	host := mocks.NewMockScriptHost(t)
	host.EXPECT().Log("dim idled").Return().Once()

	e := newEngine(t, host)
	src := `
function dim(event)
  log("dim " .. event)
end
`
	require.NoError(t, e.Exec(context.Background(), "idle.lua", []byte(src)))
	require.NoError(t, e.Invoke(context.Background(), "dim", "idled"))
}

func TestEngine_InvokeMissingCallback(t *testing.T) {
	e := newEngine(t, mocks.NewMockScriptHost(t))
	require.NoError(t, e.Exec(context.Background(), "idle.lua", []byte(`not_a_function = 3`)))

	err := e.Invoke(context.Background(), "missing")
	assert.ErrorIs(t, err, port.ErrCallbackNotFound)

	err = e.Invoke(context.Background(), "not_a_function")
	assert.ErrorIs(t, err, port.ErrCallbackNotFound)
}

func TestEngine_RuntimeErrorIsReturned(t *testing.T) {
	e := newEngine(t, mocks.NewMockScriptHost(t))
	require.NoError(t, e.Exec(context.Background(), "idle.lua", []byte(`function boom() error("bad") end`)))

	err := e.Invoke(context.Background(), "boom")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
	assert.NotErrorIs(t, err, port.ErrCallbackNotFound)
}

func TestEngine_CompileError(t *testing.T) {
	e := newEngine(t, mocks.NewMockScriptHost(t))
	err := e.Exec(context.Background(), "broken.lua", []byte(`function (`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.lua")
}

func TestEngine_HostErrorRaisesScriptError(t *testing.T) {
	host := mocks.NewMockScriptHost(t)
	host.EXPECT().RegisterSessionHandler("Hibernate", "cb").Return(errors.New("unknown session signal")).Once()

	e := newEngine(t, host)
	err := e.Exec(context.Background(), "idle.lua", []byte(`register_session_handler("Hibernate", "cb")`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown session signal")
}

func TestEngine_HostErrorCanBeCaught(t *testing.T) {
	host := mocks.NewMockScriptHost(t)
	host.EXPECT().RunCommand("nope").Return(errors.New("spawn failed")).Once()
	host.EXPECT().Log("caught").Return().Once()

	e := newEngine(t, host)
	src := `
local ok = pcall(run_command, "nope")
if not ok then log("caught") end
`
	require.NoError(t, e.Exec(context.Background(), "idle.lua", []byte(src)))
}

func TestEngine_OnBattery(t *testing.T) {
	host := mocks.NewMockScriptHost(t)
	host.EXPECT().Log("false").Return().Once()

	e := newEngine(t, host)
	assert.True(t, e.OnBattery())
	require.NoError(t, e.SetOnBattery(false))
	assert.False(t, e.OnBattery())

	require.NoError(t, e.Exec(context.Background(), "idle.lua", []byte(`log(tostring(on_battery()))`)))
}

func TestEngine_Sandboxed(t *testing.T) {
	e := newEngine(t, mocks.NewMockScriptHost(t))

	for _, src := range []string{
		`os.execute("true")`,
		`io.open("/etc/passwd")`,
		`dofile("/etc/passwd")`,
		`require("os")`,
	} {
		t.Run(src, func(t *testing.T) {
			assert.Error(t, e.Exec(context.Background(), "idle.lua", []byte(src)))
		})
	}

	require.NoError(t, e.Exec(context.Background(), "idle.lua", []byte(`x = string.upper(table.concat({"a", "b"})) .. math.floor(1.5)`)))
}

func TestEngine_ResetDropsState(t *testing.T) {
	host := mocks.NewMockScriptHost(t)
	e := newEngine(t, host)
	require.NoError(t, e.Exec(context.Background(), "idle.lua", []byte(`function cb() end`)))
	require.NoError(t, e.Invoke(context.Background(), "cb"))

	require.NoError(t, e.Reset(host))
	assert.ErrorIs(t, e.Invoke(context.Background(), "cb"), port.ErrCallbackNotFound)
}

func TestEngine_ContextCancelsRunawayScript(t *testing.T) {
	e := newEngine(t, mocks.NewMockScriptHost(t))
	require.NoError(t, e.Exec(context.Background(), "idle.lua", []byte(`function spin() while true do end end`)))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := e.Invoke(ctx, "spin")
	require.Error(t, err)
	assert.NotErrorIs(t, err, port.ErrCallbackNotFound)
}
