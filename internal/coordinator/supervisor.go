package coordinator

import (
	"context"
	"slices"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/bnema/sleepwatcher/internal/application/port"
	"github.com/bnema/sleepwatcher/internal/domain/event"
	"github.com/bnema/sleepwatcher/internal/logging"
)

const defaultActivityInterval = time.Second

// DeviceSupervisor runs one watch task per qualifying input device.
//
// Tasks only emit events; membership changes (added, removed, lost) are
// applied by the router through OnAdded, OnRemoved and OnLost.
type DeviceSupervisor struct {
	opener     port.InputOpener
	classifier port.DeviceClassifier
	sink       port.EventSink
	interval   time.Duration

	mu       sync.Mutex
	tasks    map[string]*deviceTask
	nextTask uint64
	wg       sync.WaitGroup
}

type deviceTask struct {
	id     uint64
	cancel context.CancelFunc
}

// SupervisorOptions tunes device tasks.
type SupervisorOptions struct {
	// ActivityInterval is the minimum spacing between DeviceActivity events
	// emitted by one device. Zero or negative disables coalescing.
	ActivityInterval time.Duration
}

// NewDeviceSupervisor creates a supervisor. A nil classifier accepts every
// device.
func NewDeviceSupervisor(opener port.InputOpener, classifier port.DeviceClassifier, sink port.EventSink, opts SupervisorOptions) *DeviceSupervisor {
	return &DeviceSupervisor{
		opener:     opener,
		classifier: classifier,
		sink:       sink,
		interval:   opts.ActivityInterval,
		tasks:      make(map[string]*deviceTask),
	}
}

// OnAdded starts a watch task for deviceID. Non-qualifying devices and
// devices already tracked are ignored. It reports whether a task started.
func (s *DeviceSupervisor) OnAdded(ctx context.Context, deviceID string) bool {
	log := logging.FromContext(ctx).With().Str("device", deviceID).Logger()

	if s.opener == nil {
		log.Debug().Msg("no input opener configured, ignoring device")
		return false
	}
	if s.classifier != nil && !s.classifier.Qualifies(deviceID) {
		log.Debug().Msg("device does not qualify, ignoring")
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[deviceID]; ok {
		log.Info().Msg("device already tracked, ignoring duplicate add")
		return false
	}

	s.nextTask++
	taskCtx, cancel := context.WithCancel(logging.WithDevice(ctx, deviceID))
	task := &deviceTask{id: s.nextTask, cancel: cancel}
	s.tasks[deviceID] = task

	s.wg.Add(1)
	go s.watch(taskCtx, deviceID, task.id)

	log.Info().Uint64("task", task.id).Msg("watching input device")
	return true
}

// OnRemoved cancels the task for deviceID. Unknown devices are a no-op.
func (s *DeviceSupervisor) OnRemoved(ctx context.Context, deviceID string) bool {
	s.mu.Lock()
	task, ok := s.tasks[deviceID]
	if ok {
		delete(s.tasks, deviceID)
	}
	s.mu.Unlock()

	if !ok {
		logging.FromContext(ctx).Debug().Str("device", deviceID).Msg("removal for untracked device")
		return false
	}

	task.cancel()
	logging.FromContext(ctx).Info().Str("device", deviceID).Msg("stopped watching input device")
	return true
}

// OnLost drops the entry for a task that ended on its own. A report from an
// older task generation (the device was removed and re-added since) is
// ignored.
func (s *DeviceSupervisor) OnLost(ctx context.Context, deviceID string, taskID uint64) bool {
	s.mu.Lock()
	task, ok := s.tasks[deviceID]
	if ok && task.id == taskID {
		delete(s.tasks, deviceID)
	} else {
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		logging.FromContext(ctx).Debug().
			Str("device", deviceID).
			Uint64("task", taskID).
			Msg("ignoring loss report from stale task")
		return false
	}

	task.cancel()
	logging.FromContext(ctx).Info().Str("device", deviceID).Msg("input device lost")
	return true
}

// Shutdown cancels every task and waits for them to exit.
func (s *DeviceSupervisor) Shutdown() {
	s.mu.Lock()
	for id, task := range s.tasks {
		task.cancel()
		delete(s.tasks, id)
	}
	s.mu.Unlock()

	s.wg.Wait()
}

// Len returns the number of tracked devices.
func (s *DeviceSupervisor) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Devices returns the tracked device identifiers in sorted order.
func (s *DeviceSupervisor) Devices() []string {
	s.mu.Lock()
	ids := make([]string, 0, len(s.tasks))
	for id := range s.tasks {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	slices.Sort(ids)
	return ids
}

func (s *DeviceSupervisor) watch(ctx context.Context, deviceID string, taskID uint64) {
	defer s.wg.Done()
	log := logging.FromContext(ctx)

	dev, err := s.opener.Open(deviceID)
	if err != nil {
		log.Warn().Err(err).Msg("failed to open input device")
		s.lost(ctx, deviceID, taskID)
		return
	}
	defer func() {
		if err := dev.Close(); err != nil {
			log.Debug().Err(err).Msg("failed to close input device")
		}
	}()

	limit := rate.Inf
	if s.interval > 0 {
		limit = rate.Every(s.interval)
	}
	limiter := rate.NewLimiter(limit, 1)

	for {
		ev, err := dev.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Info().Err(err).Msg("input device read failed")
			s.lost(ctx, deviceID, taskID)
			return
		}

		if !ev.IsKey() || !limiter.Allow() {
			continue
		}

		log.Trace().Uint16("code", ev.Code).Int32("value", ev.Value).Msg("key event")
		if err := s.sink.Submit(ctx, event.DeviceActivity{DeviceID: deviceID}); err != nil {
			if ctx.Err() == nil {
				log.Debug().Err(err).Msg("dropping device activity")
			}
			return
		}
	}
}

func (s *DeviceSupervisor) lost(ctx context.Context, deviceID string, taskID uint64) {
	if ctx.Err() != nil {
		return
	}
	if err := s.sink.Submit(ctx, event.DeviceLost{DeviceID: deviceID, Task: taskID}); err != nil {
		logging.FromContext(ctx).Debug().Err(err).Msg("failed to report device loss")
	}
}
