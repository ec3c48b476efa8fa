package port

import "context"

// CommandRunner spawns user commands on behalf of scripts.
type CommandRunner interface {
	// Run starts commandLine and returns once the process is spawned.
	Run(ctx context.Context, commandLine string) error

	// RunOnce starts commandLine unless a process with the same executable
	// name is running. It reports whether a process was started.
	RunOnce(ctx context.Context, commandLine string) (bool, error)
}
