// Package lua runs user scripts with gopher-lua.
//
// The interpreter only opens the base, table, string and math libraries.
// Host capabilities are exposed twice: as flat globals
// (create_idle_subscription, run_command, ...) and as the object tables older
// scripts use (IdleNotifier, Helpers, DbusHandler). Both dot and colon calls
// work on the object tables.
package lua

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/bnema/sleepwatcher/internal/application/port"
)

// Engine implements port.ScriptEngine. It is not safe for concurrent use;
// the router owns it.
type Engine struct {
	state     *lua.LState
	host      port.ScriptHost
	onBattery bool
}

var _ port.ScriptEngine = (*Engine)(nil)

// NewEngine returns an engine with no interpreter. Call Reset before Exec.
func NewEngine() *Engine {
	return &Engine{onBattery: true}
}

func (e *Engine) Reset(host port.ScriptHost) error {
	if host == nil {
		return errors.New("lua: nil script host")
	}
	if e.state != nil {
		e.state.Close()
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	if err := openSandbox(L); err != nil {
		L.Close()
		return fmt.Errorf("lua: open libraries: %w", err)
	}

	e.state = L
	e.host = host
	e.bindGlobals()
	return nil
}

func openSandbox(L *lua.LState) error {
	libs := []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	}
	for _, lib := range libs {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.open),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			return err
		}
	}

	// The base library can still reach the filesystem.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
	return nil
}

func (e *Engine) Exec(ctx context.Context, name string, source []byte) error {
	L := e.state
	if L == nil {
		return port.ErrNotInitialized
	}

	fn, err := L.Load(bytes.NewReader(source), name)
	if err != nil {
		return fmt.Errorf("lua: compile %s: %w", name, err)
	}

	L.SetContext(ctx)
	defer L.RemoveContext()

	if err := L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}); err != nil {
		return fmt.Errorf("lua: exec %s: %w", name, err)
	}
	return nil
}

func (e *Engine) Invoke(ctx context.Context, callback string, args ...string) error {
	L := e.state
	if L == nil {
		return port.ErrNotInitialized
	}

	fn, ok := L.GetGlobal(callback).(*lua.LFunction)
	if !ok {
		return fmt.Errorf("%w: %q", port.ErrCallbackNotFound, callback)
	}

	values := make([]lua.LValue, len(args))
	for i, arg := range args {
		values[i] = lua.LString(arg)
	}

	L.SetContext(ctx)
	defer L.RemoveContext()

	if err := L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, values...); err != nil {
		return fmt.Errorf("lua: %s: %w", callback, err)
	}
	return nil
}

func (e *Engine) SetOnBattery(onBattery bool) error {
	e.onBattery = onBattery
	return nil
}

func (e *Engine) OnBattery() bool {
	return e.onBattery
}

func (e *Engine) Close() error {
	if e.state != nil {
		e.state.Close()
		e.state = nil
	}
	e.host = nil
	return nil
}

func (e *Engine) bindGlobals() {
	L := e.state

	flat := map[string]lua.LGFunction{
		"create_idle_subscription": e.createIdleSubscription(0),
		"run_command":              e.runCommand(0),
		"run_command_once":         e.runCommandOnce(0),
		"register_session_handler": e.registerSessionHandler,
		"on_battery":               e.luaOnBattery(0),
		"log":                      e.log(0),
	}
	for name, fn := range flat {
		L.SetGlobal(name, L.NewFunction(fn))
	}

	notifier := L.NewTable()
	L.SetGlobal("IdleNotifier", notifier)
	e.setMethods(notifier, map[string]func(int) lua.LGFunction{
		"get_notification": e.createIdleSubscription,
		"run":              e.runCommand,
		"run_once":         e.runCommandOnce,
	})

	helpers := L.NewTable()
	L.SetGlobal("Helpers", helpers)
	e.setMethods(helpers, map[string]func(int) lua.LGFunction{
		"on_battery": e.luaOnBattery,
		"log":        e.log,
	})

	handlers := L.NewTable()
	L.SetGlobal("DbusHandler", handlers)
	methods := make(map[string]func(int) lua.LGFunction)
	for _, kind := range []string{"LockHandler", "UnlockHandler", "PrepareSleep", "Wakeup"} {
		methods[kind] = e.sessionMethod(kind)
	}
	e.setMethods(handlers, methods)
}

// setMethods installs each method on tbl. A method receives the offset of
// its first real argument: 1 for a colon call, 0 for a dot call.
func (e *Engine) setMethods(tbl *lua.LTable, methods map[string]func(int) lua.LGFunction) {
	L := e.state
	for name, build := range methods {
		dot := build(0)
		colon := build(1)
		L.SetField(tbl, name, L.NewFunction(func(L *lua.LState) int {
			if L.GetTop() > 0 && L.Get(1) == tbl {
				return colon(L)
			}
			return dot(L)
		}))
	}
}

func (e *Engine) createIdleSubscription(offset int) lua.LGFunction {
	return func(L *lua.LState) int {
		seconds := L.CheckNumber(offset + 1)
		callback := L.CheckString(offset + 2)
		timeout := time.Duration(float64(seconds) * float64(time.Second))
		if err := e.host.CreateIdleSubscription(timeout, callback); err != nil {
			L.RaiseError("create idle subscription: %s", err.Error())
		}
		return 0
	}
}

func (e *Engine) runCommand(offset int) lua.LGFunction {
	return func(L *lua.LState) int {
		cmd := L.CheckString(offset + 1)
		if err := e.host.RunCommand(cmd); err != nil {
			L.RaiseError("run %q: %s", cmd, err.Error())
		}
		return 0
	}
}

func (e *Engine) runCommandOnce(offset int) lua.LGFunction {
	return func(L *lua.LState) int {
		cmd := L.CheckString(offset + 1)
		if err := e.host.RunCommandOnce(cmd); err != nil {
			L.RaiseError("run once %q: %s", cmd, err.Error())
		}
		return 0
	}
}

func (e *Engine) registerSessionHandler(L *lua.LState) int {
	kind := L.CheckString(1)
	callback := L.CheckString(2)
	if err := e.host.RegisterSessionHandler(kind, callback); err != nil {
		L.RaiseError("register session handler: %s", err.Error())
	}
	return 0
}

func (e *Engine) sessionMethod(kind string) func(int) lua.LGFunction {
	return func(offset int) lua.LGFunction {
		return func(L *lua.LState) int {
			callback := L.CheckString(offset + 1)
			if err := e.host.RegisterSessionHandler(kind, callback); err != nil {
				L.RaiseError("%s: %s", kind, err.Error())
			}
			return 0
		}
	}
}

func (e *Engine) luaOnBattery(int) lua.LGFunction {
	return func(L *lua.LState) int {
		L.Push(lua.LBool(e.onBattery))
		return 1
	}
}

func (e *Engine) log(offset int) lua.LGFunction {
	return func(L *lua.LState) int {
		e.host.Log(L.CheckString(offset + 1))
		return 0
	}
}
