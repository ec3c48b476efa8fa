// Package process spawns commands requested by scripts.
package process

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/bnema/sleepwatcher/internal/application/port"
	"github.com/bnema/sleepwatcher/internal/logging"
)

// commLen is the kernel's TASK_COMM_LEN minus the terminator.
const commLen = 15

var _ port.CommandRunner = (*Runner)(nil)

// Runner starts commands in their own process group and reaps them in the
// background.
type Runner struct {
	env    []string
	lister Lister

	mu       sync.Mutex
	children map[int]string
	wg       sync.WaitGroup
}

// NewRunner creates a runner that checks the process table through lister.
// A nil lister uses the /proc table.
func NewRunner(lister Lister) *Runner {
	if lister == nil {
		lister = ProcTable{}
	}
	return &Runner{
		env:      SessionEnv(os.Environ()),
		lister:   lister,
		children: make(map[int]string),
	}
}

// Run splits commandLine on whitespace and starts it without waiting.
func (r *Runner) Run(ctx context.Context, commandLine string) error {
	args := strings.Fields(commandLine)
	if len(args) == 0 {
		return errors.New("empty command")
	}
	return r.start(ctx, args)
}

// RunOnce starts commandLine unless a process with the same executable name
// is alive, either a child of this runner or any process on the system.
func (r *Runner) RunOnce(ctx context.Context, commandLine string) (bool, error) {
	args := strings.Fields(commandLine)
	if len(args) == 0 {
		return false, errors.New("empty command")
	}
	name := filepath.Base(args[0])

	if r.childRunning(name) {
		return false, nil
	}

	names, err := r.lister.Names(ctx)
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("failed to list processes, starting anyway")
	}
	for _, comm := range names {
		if matchesComm(comm, name) {
			return false, nil
		}
	}

	if err := r.start(ctx, args); err != nil {
		return false, err
	}
	return true, nil
}

// Wait blocks until every started child has been reaped.
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) start(ctx context.Context, args []string) error {
	log := logging.FromContext(ctx)

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Env = r.env
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", args[0], err)
	}

	pid := cmd.Process.Pid
	name := filepath.Base(args[0])
	r.mu.Lock()
	r.children[pid] = name
	r.mu.Unlock()

	log.Info().Int("pid", pid).Strs("args", args).Msg("command started")

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		err := cmd.Wait()

		r.mu.Lock()
		delete(r.children, pid)
		r.mu.Unlock()

		if err != nil {
			log.Warn().Err(err).Int("pid", pid).Str("command", name).Msg("command exited with error")
			return
		}
		log.Debug().Int("pid", pid).Str("command", name).Msg("command exited")
	}()
	return nil
}

func (r *Runner) childRunning(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, child := range r.children {
		if child == name {
			return true
		}
	}
	return false
}

// matchesComm compares a process name with an executable name. Listers may
// report the full basename or the kernel comm, which is cut at 15 characters.
func matchesComm(comm, name string) bool {
	if comm == name {
		return true
	}
	return len(comm) == commLen && strings.HasPrefix(name, comm)
}

// SessionEnv returns environ with the session addressing variables filled in
// from XDG_RUNTIME_DIR when they are missing.
func SessionEnv(environ []string) []string {
	env := append([]string(nil), environ...)
	has := func(key string) bool {
		for _, kv := range env {
			if strings.HasPrefix(kv, key+"=") {
				return true
			}
		}
		return false
	}

	runtimeDir := ""
	for _, kv := range env {
		if v, ok := strings.CutPrefix(kv, "XDG_RUNTIME_DIR="); ok {
			runtimeDir = v
		}
	}

	if !has("WAYLAND_DISPLAY") {
		env = append(env, "WAYLAND_DISPLAY=wayland-0")
	}
	if !has("DBUS_SESSION_BUS_ADDRESS") && runtimeDir != "" {
		env = append(env, "DBUS_SESSION_BUS_ADDRESS=unix:path="+filepath.Join(runtimeDir, "bus"))
	}
	return env
}
