package config

import (
	"time"
)

// Default configuration constants
const (
	// Inhibit defaults
	defaultInhibitHold = 5 * time.Second

	// Device defaults
	defaultActivityInterval = time.Second
	defaultReadTimeout      = 250 * time.Millisecond

	// Router defaults
	defaultQueueSize = 32

	// Watch defaults
	defaultDebounce = 500 * time.Millisecond

	// Logging defaults
	defaultLogLevel  = "info"
	defaultLogFormat = "console"
)

// DefaultConfig returns the default configuration values for sleepwatcher.
// Script is left empty and resolved to the XDG script file on Load.
func DefaultConfig() *Config {
	return &Config{
		Inhibit: InhibitConfig{
			Hold:    defaultInhibitHold,
			Rearm:   false,
			Backend: InhibitBackendAuto,
		},
		Devices: DevicesConfig{
			Enabled:          true,
			ActivityInterval: defaultActivityInterval,
			ReadTimeout:      defaultReadTimeout,
		},
		Session: SessionConfig{
			UPower: true,
			Logind: true,
		},
		Router: RouterConfig{
			QueueSize:     defaultQueueSize,
			StrictEvents:  false,
			ScriptTimeout: 0,
		},
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: defaultDebounce,
		},
		Logging: LoggingConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}

// setDefaults pushes every default into viper so env overrides and partial
// files merge on top of them.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("script", defaults.Script)

	m.viper.SetDefault("inhibit.hold", defaults.Inhibit.Hold)
	m.viper.SetDefault("inhibit.rearm", defaults.Inhibit.Rearm)
	m.viper.SetDefault("inhibit.backend", string(defaults.Inhibit.Backend))

	m.viper.SetDefault("devices.enabled", defaults.Devices.Enabled)
	m.viper.SetDefault("devices.activity_interval", defaults.Devices.ActivityInterval)
	m.viper.SetDefault("devices.read_timeout", defaults.Devices.ReadTimeout)

	m.viper.SetDefault("session.upower", defaults.Session.UPower)
	m.viper.SetDefault("session.logind", defaults.Session.Logind)

	m.viper.SetDefault("router.queue_size", defaults.Router.QueueSize)
	m.viper.SetDefault("router.strict_events", defaults.Router.StrictEvents)
	m.viper.SetDefault("router.script_timeout", defaults.Router.ScriptTimeout)

	m.viper.SetDefault("watch.enabled", defaults.Watch.Enabled)
	m.viper.SetDefault("watch.debounce", defaults.Watch.Debounce)

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)

	m.viper.SetDefault("metrics.listen", defaults.Metrics.Listen)
}
