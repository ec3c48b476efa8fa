package idle

import (
	"context"
	"errors"

	"github.com/bnema/sleepwatcher/internal/application/port"
	"github.com/bnema/sleepwatcher/internal/logging"
)

var _ port.Inhibitor = Chain(nil)

// Chain tries each inhibitor in order and returns the first handle acquired.
// When every backend reports ErrUnavailable the chain does too.
type Chain []port.Inhibitor

func (c Chain) Acquire(ctx context.Context) (port.InhibitHandle, error) {
	if len(c) == 0 {
		return nil, port.ErrUnavailable
	}

	var errs []error
	unavailable := true
	for _, inhibitor := range c {
		handle, err := inhibitor.Acquire(ctx)
		if err == nil {
			return handle, nil
		}
		logging.FromContext(ctx).Debug().Err(err).Msg("inhibit backend failed, trying next")
		if !errors.Is(err, port.ErrUnavailable) {
			unavailable = false
		}
		errs = append(errs, err)
	}

	if unavailable {
		return nil, errors.Join(append(errs, port.ErrUnavailable)...)
	}
	return nil, errors.Join(errs...)
}
