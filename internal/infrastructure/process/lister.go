package process

import (
	"context"

	"github.com/shirou/gopsutil/v4/process"
)

//go:generate mockgen -source=lister.go -destination=mocks/mock_lister.go -package=mock_process

// Lister reports the command names of running processes.
type Lister interface {
	Names(ctx context.Context) ([]string, error)
}

// ProcTable lists processes from /proc through gopsutil.
type ProcTable struct{}

func (ProcTable) Names(ctx context.Context) ([]string, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			// process exited while listing
			continue
		}
		names = append(names, name)
	}
	return names, nil
}
