// Package js runs user scripts written in JavaScript with sobek.
//
// The runtime exposes the same capabilities as the Lua engine. Object style
// calls use a dot: IdleNotifier.get_notification(300, "lock").
package js

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/grafana/sobek"

	"github.com/bnema/sleepwatcher/internal/application/port"
)

// Engine implements port.ScriptEngine on a sobek runtime.
type Engine struct {
	vm        *sobek.Runtime
	host      port.ScriptHost
	onBattery bool
}

var _ port.ScriptEngine = (*Engine)(nil)

func NewEngine() *Engine {
	return &Engine{onBattery: true}
}

func (e *Engine) Reset(host port.ScriptHost) error {
	if host == nil {
		return errors.New("js: nil script host")
	}

	vm := sobek.New()
	e.vm = vm
	e.host = host
	if err := e.bindGlobals(); err != nil {
		e.vm = nil
		return fmt.Errorf("js: bind globals: %w", err)
	}
	return nil
}

func (e *Engine) Exec(ctx context.Context, name string, source []byte) error {
	if e.vm == nil {
		return port.ErrNotInitialized
	}

	stop := e.interruptOn(ctx)
	defer stop()

	if _, err := e.vm.RunScript(name, string(source)); err != nil {
		return fmt.Errorf("js: exec %s: %w", name, err)
	}
	return nil
}

func (e *Engine) Invoke(ctx context.Context, callback string, args ...string) error {
	if e.vm == nil {
		return port.ErrNotInitialized
	}

	fn, ok := sobek.AssertFunction(e.vm.Get(callback))
	if !ok {
		return fmt.Errorf("%w: %q", port.ErrCallbackNotFound, callback)
	}

	values := make([]sobek.Value, len(args))
	for i, arg := range args {
		values[i] = e.vm.ToValue(arg)
	}

	stop := e.interruptOn(ctx)
	defer stop()

	if _, err := fn(sobek.Undefined(), values...); err != nil {
		return fmt.Errorf("js: %s: %w", callback, err)
	}
	return nil
}

// interruptOn interrupts the runtime when ctx ends. The returned func must
// run once the call is over; it waits for an interrupt already in flight so
// the clear is never overtaken.
func (e *Engine) interruptOn(ctx context.Context) func() {
	vm := e.vm
	fired := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		defer close(fired)
		vm.Interrupt(ctx.Err())
	})
	return func() {
		if !stop() {
			<-fired
		}
		vm.ClearInterrupt()
	}
}

func (e *Engine) SetOnBattery(onBattery bool) error {
	e.onBattery = onBattery
	return nil
}

func (e *Engine) OnBattery() bool {
	return e.onBattery
}

func (e *Engine) Close() error {
	e.vm = nil
	e.host = nil
	return nil
}

func (e *Engine) bindGlobals() error {
	vm := e.vm

	subscribe := func(call sobek.FunctionCall) sobek.Value {
		timeout := e.seconds(call.Argument(0))
		e.check(e.host.CreateIdleSubscription(timeout, e.name(call.Argument(1))))
		return sobek.Undefined()
	}
	run := func(call sobek.FunctionCall) sobek.Value {
		e.check(e.host.RunCommand(e.name(call.Argument(0))))
		return sobek.Undefined()
	}
	runOnce := func(call sobek.FunctionCall) sobek.Value {
		e.check(e.host.RunCommandOnce(e.name(call.Argument(0))))
		return sobek.Undefined()
	}
	onBattery := func(sobek.FunctionCall) sobek.Value {
		return vm.ToValue(e.onBattery)
	}
	log := func(call sobek.FunctionCall) sobek.Value {
		e.host.Log(call.Argument(0).String())
		return sobek.Undefined()
	}

	globals := map[string]any{
		"create_idle_subscription": subscribe,
		"run_command":              run,
		"run_command_once":         runOnce,
		"on_battery":               onBattery,
		"log":                      log,
		"register_session_handler": func(call sobek.FunctionCall) sobek.Value {
			e.check(e.host.RegisterSessionHandler(e.name(call.Argument(0)), e.name(call.Argument(1))))
			return sobek.Undefined()
		},
	}
	for name, fn := range globals {
		if err := vm.Set(name, fn); err != nil {
			return err
		}
	}

	objects := map[string]map[string]any{
		"IdleNotifier": {
			"get_notification": subscribe,
			"run":              run,
			"run_once":         runOnce,
		},
		"Helpers": {
			"on_battery": onBattery,
			"log":        log,
		},
		"DbusHandler": {},
	}
	for _, kind := range []string{"LockHandler", "UnlockHandler", "PrepareSleep", "Wakeup"} {
		objects["DbusHandler"][kind] = func(call sobek.FunctionCall) sobek.Value {
			e.check(e.host.RegisterSessionHandler(kind, e.name(call.Argument(0))))
			return sobek.Undefined()
		}
	}
	for name, methods := range objects {
		obj := vm.NewObject()
		for method, fn := range methods {
			if err := obj.Set(method, fn); err != nil {
				return err
			}
		}
		if err := vm.Set(name, obj); err != nil {
			return err
		}
	}
	return nil
}

// seconds converts a numeric argument to a duration, throwing a TypeError
// for anything that is not a finite number.
func (e *Engine) seconds(v sobek.Value) time.Duration {
	if sobek.IsUndefined(v) || sobek.IsNull(v) {
		panic(e.vm.NewTypeError("timeout must be a number of seconds"))
	}
	f := v.ToFloat()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		panic(e.vm.NewTypeError("timeout must be a number of seconds"))
	}
	return time.Duration(f * float64(time.Second))
}

func (e *Engine) name(v sobek.Value) string {
	if sobek.IsUndefined(v) || sobek.IsNull(v) {
		panic(e.vm.NewTypeError("missing string argument"))
	}
	return v.String()
}

// check throws err as a script exception.
func (e *Engine) check(err error) {
	if err != nil {
		panic(e.vm.NewGoError(err))
	}
}
