// Package bootstrap wires the daemon together and supervises it.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/godbus/dbus/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/sleepwatcher/internal/application/port"
	"github.com/bnema/sleepwatcher/internal/config"
	"github.com/bnema/sleepwatcher/internal/coordinator"
	"github.com/bnema/sleepwatcher/internal/domain/event"
	"github.com/bnema/sleepwatcher/internal/infrastructure/evdev"
	"github.com/bnema/sleepwatcher/internal/infrastructure/idle"
	"github.com/bnema/sleepwatcher/internal/infrastructure/metrics"
	"github.com/bnema/sleepwatcher/internal/infrastructure/power"
	"github.com/bnema/sleepwatcher/internal/infrastructure/process"
	"github.com/bnema/sleepwatcher/internal/infrastructure/script"
	"github.com/bnema/sleepwatcher/internal/infrastructure/udev"
	"github.com/bnema/sleepwatcher/internal/infrastructure/wayland"
	"github.com/bnema/sleepwatcher/internal/logging"
)

// Daemon owns the runtime lifecycle: it connects the producers, the router
// and the optional status server, and runs them until ctx is cancelled or a
// transport fails.
type Daemon struct {
	cfg          *config.Config
	reloadSignal os.Signal
}

func NewDaemon(cfg *config.Config) *Daemon {
	return &Daemon{cfg: cfg, reloadSignal: syscall.SIGHUP}
}

// Run blocks until ctx is cancelled (nil) or a producer fails (its error).
func (d *Daemon) Run(ctx context.Context) error {
	cfg := d.cfg
	timer := NewStartupTimer()
	ctx = logging.WithComponent(ctx, "daemon")
	log := logging.FromContext(ctx)

	if written, err := config.EnsureScript(cfg.Script); err != nil {
		log.Warn().Err(err).Str("script", cfg.Script).Msg("script not available")
	} else if written {
		log.Info().Str("script", cfg.Script).Msg("created default script")
	}

	engine, err := script.NewEngine(cfg.Script)
	if err != nil {
		return err
	}

	inbox := coordinator.NewInbox(cfg.Router.QueueSize)

	client, err := wayland.Dial(ctx, inbox)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()
	timer.Mark("wayland")

	systemBus := d.connect(ctx, "system", cfg.Session.UPower || cfg.Session.Logind || cfg.Inhibit.Backend == config.InhibitBackendLogind, dbus.ConnectSystemBus)
	if systemBus != nil {
		defer func() { _ = systemBus.Close() }()
	}
	sessionBus := d.connect(ctx, "session", usesPortal(cfg.Inhibit.Backend), dbus.ConnectSessionBus)
	if sessionBus != nil {
		defer func() { _ = sessionBus.Close() }()
	}
	timer.Mark("dbus")

	deps := coordinator.Deps{
		Engine:    engine,
		Script:    coordinator.ScriptFile(cfg.Script),
		Notifier:  client,
		Flusher:   client,
		Inhibitor: d.inhibitor(ctx, client, systemBus, sessionBus),
		Runner:    process.NewRunner(process.ProcTable{}),
	}

	var monitor *udev.Monitor
	if cfg.Devices.Enabled {
		classifier := udev.NewClassifier()
		deps.Opener = evdev.NewOpener(cfg.Devices.ReadTimeout)
		deps.Classifier = classifier
		if monitor, err = udev.NewMonitor(inbox, classifier); err != nil {
			log.Warn().Err(err).Msg("hotplug monitor unavailable, device tracking disabled")
			monitor = nil
		}
	}

	var registry *prometheus.Registry
	if cfg.Metrics.Listen != "" {
		registry = prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		deps.Recorder = metrics.New(registry)
	}

	router, err := coordinator.NewRouter(inbox, deps, coordinator.Options{
		InhibitHold:      cfg.Inhibit.Hold,
		InhibitRearm:     cfg.Inhibit.Rearm,
		ActivityInterval: cfg.Devices.ActivityInterval,
		ScriptTimeout:    cfg.Router.ScriptTimeout,
		StrictEvents:     cfg.Router.StrictEvents,
	})
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	// The compositor connection outlives the router so its final flush
	// still reaches the socket.
	clientCtx, stopClient := context.WithCancel(context.WithoutCancel(gctx))
	defer stopClient()
	g.Go(func() error {
		defer stopClient()
		return router.Run(gctx)
	})
	g.Go(func() error { return client.Run(clientCtx) })

	// The registry roundtrip finished in Dial, so the first load can go.
	// The battery state is read first so the script sees it at load time.
	initial := []event.Event{event.ScriptReloadRequested{}}
	if systemBus != nil && cfg.Session.UPower {
		if onBattery, err := power.OnBattery(systemBus); err != nil {
			log.Warn().Err(err).Msg("battery state unknown at startup")
		} else {
			initial = append([]event.Event{event.BatteryStateChanged{OnBattery: onBattery}}, initial...)
		}
	}
	for _, ev := range initial {
		if err := inbox.Submit(gctx, ev); err != nil {
			return errors.Join(fmt.Errorf("submit %s: %w", ev.Kind(), err), g.Wait())
		}
	}

	if systemBus != nil && cfg.Session.UPower {
		g.Go(func() error { return power.NewUPowerWatcher(systemBus, inbox).Run(gctx) })
	}
	if systemBus != nil && cfg.Session.Logind {
		g.Go(func() error { return power.NewLogindWatcher(systemBus, inbox).Run(gctx) })
	}
	if monitor != nil {
		g.Go(func() error { return monitor.Run(gctx) })
	}
	if cfg.Watch.Enabled {
		watcher := config.NewScriptWatcher(cfg.Script, cfg.Watch.Debounce, inbox)
		g.Go(func() error {
			if err := watcher.Run(gctx); err != nil {
				logging.FromContext(gctx).Warn().Err(err).Msg("script watcher stopped, reload with SIGHUP")
			}
			return nil
		})
	}
	if d.reloadSignal != nil {
		g.Go(func() error { return d.forwardReloadSignal(gctx, inbox) })
	}
	if registry != nil {
		server := metrics.NewServer(cfg.Metrics.Listen, registry, router)
		g.Go(func() error { return server.Run(gctx) })
	}

	timer.Mark("producers")
	timer.Log(ctx)

	return g.Wait()
}

// connect opens a bus when wanted. A missing bus degrades the features that
// need it. The connection is closed by the caller, after the router released
// anything it holds on it.
func (d *Daemon) connect(ctx context.Context, name string, wanted bool, dial func(...dbus.ConnOption) (*dbus.Conn, error)) *dbus.Conn {
	if !wanted {
		return nil
	}
	conn, err := dial(dbus.WithContext(context.WithoutCancel(ctx)))
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("bus", name).Msg("bus unavailable")
		return nil
	}
	return conn
}

func usesPortal(backend config.InhibitBackend) bool {
	return backend == config.InhibitBackendAuto || backend == config.InhibitBackendPortal
}

// inhibitor builds the configured backend. It returns nil for "none" or when
// nothing could be set up; hold windows still open without it.
func (d *Daemon) inhibitor(ctx context.Context, client *wayland.Client, systemBus, sessionBus *dbus.Conn) port.Inhibitor {
	log := logging.FromContext(ctx)

	portal := func() port.Inhibitor {
		if sessionBus == nil {
			return nil
		}
		p, err := idle.NewPortalInhibitor(ctx, sessionBus)
		if err != nil {
			log.Debug().Err(err).Msg("portal inhibitor unavailable")
			return nil
		}
		return p
	}

	switch d.cfg.Inhibit.Backend {
	case config.InhibitBackendNone:
		return nil
	case config.InhibitBackendWayland:
		return client
	case config.InhibitBackendPortal:
		if p := portal(); p != nil {
			return p
		}
		return nil
	case config.InhibitBackendLogind:
		if systemBus == nil {
			return nil
		}
		return power.NewLogindInhibitor(systemBus)
	default:
		chain := idle.Chain{client}
		if p := portal(); p != nil {
			chain = append(chain, p)
		}
		return chain
	}
}

func (d *Daemon) forwardReloadSignal(ctx context.Context, sink port.EventSink) error {
	hupChan := make(chan os.Signal, 1)
	signal.Notify(hupChan, d.reloadSignal)
	defer signal.Stop(hupChan)

	log := logging.FromContext(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-hupChan:
			log.Info().Str("signal", d.reloadSignal.String()).Msg("received reload signal, reloading script")
			if err := sink.Submit(ctx, event.ConfigChanged{}); err != nil {
				return nil
			}
		}
	}
}
