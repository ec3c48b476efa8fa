// Package config provides daemon configuration backed by Viper, XDG path
// helpers and the user script watcher.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// File permission constants
const (
	dirPerm  = 0755
	filePerm = 0644
)

// Config represents the complete configuration for sleepwatcher.
type Config struct {
	// Script is the user script; .lua selects the Lua engine, .js the
	// JavaScript engine.
	Script  string        `mapstructure:"script" yaml:"script"`
	Inhibit InhibitConfig `mapstructure:"inhibit" yaml:"inhibit"`
	Devices DevicesConfig `mapstructure:"devices" yaml:"devices"`
	Session SessionConfig `mapstructure:"session" yaml:"session"`
	Router  RouterConfig  `mapstructure:"router" yaml:"router"`
	Watch   WatchConfig   `mapstructure:"watch" yaml:"watch"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// InhibitBackend selects how sleep is suppressed during a hold window.
type InhibitBackend string

const (
	InhibitBackendAuto    InhibitBackend = "auto"
	InhibitBackendWayland InhibitBackend = "wayland"
	InhibitBackendPortal  InhibitBackend = "portal"
	InhibitBackendLogind  InhibitBackend = "logind"
	InhibitBackendNone    InhibitBackend = "none"
)

// InhibitConfig controls the sleep hold window opened by device activity.
// Rearm extends an active window on every new request.
type InhibitConfig struct {
	Hold    time.Duration  `mapstructure:"hold" yaml:"hold"`
	Rearm   bool           `mapstructure:"rearm" yaml:"rearm"`
	Backend InhibitBackend `mapstructure:"backend" yaml:"backend"`
}

// DevicesConfig controls game controller tracking.
type DevicesConfig struct {
	Enabled          bool          `mapstructure:"enabled" yaml:"enabled"`
	ActivityInterval time.Duration `mapstructure:"activity_interval" yaml:"activity_interval"`
	ReadTimeout      time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
}

// SessionConfig toggles the system bus watchers.
type SessionConfig struct {
	UPower bool `mapstructure:"upower" yaml:"upower"`
	Logind bool `mapstructure:"logind" yaml:"logind"`
}

// RouterConfig tunes the event router.
type RouterConfig struct {
	QueueSize     int           `mapstructure:"queue_size" yaml:"queue_size"`
	StrictEvents  bool          `mapstructure:"strict_events" yaml:"strict_events"`
	ScriptTimeout time.Duration `mapstructure:"script_timeout" yaml:"script_timeout"`
}

// WatchConfig controls reloading the script when it changes on disk.
type WatchConfig struct {
	Enabled  bool          `mapstructure:"enabled" yaml:"enabled"`
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// MetricsConfig holds the status server configuration. An empty Listen
// disables the server.
type MetricsConfig struct {
	Listen string `mapstructure:"listen" yaml:"listen"`
}

// Manager handles configuration loading.
type Manager struct {
	config *Config
	viper  *viper.Viper
	file   string
	mu     sync.RWMutex
}

// NewManager creates a configuration manager. When file is empty the config
// file is looked up in the XDG config directory; a missing file is not an
// error.
func NewManager(file string) (*Manager, error) {
	v := viper.New()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")

		configDir, err := GetConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine config directory: %w", err)
		}
		v.AddConfigPath(configDir)
	}

	v.SetEnvPrefix("SLEEPWATCHER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", "SLEEPWATCHER_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind SLEEPWATCHER_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "SLEEPWATCHER_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind SLEEPWATCHER_LOG_FORMAT: %w", err)
	}

	return &Manager{viper: v, file: file}, nil
}

// Load reads defaults, the config file and the environment, then validates
// the result.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return fmt.Errorf("failed to parse config file at %s: %w", m.viper.ConfigFileUsed(), err)
	}
	if err := ensureScriptPath(config); err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	// An explicit file that does not exist surfaces as a path error.
	if m.file != "" && errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("config file %s does not exist", m.file)
	}
	return fmt.Errorf("failed to read config file at %s: %w", m.viper.ConfigFileUsed(), err)
}

// Set overrides key before the next Load. Command line flags use it.
func (m *Manager) Set(key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.viper.Set(key, value)
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	return &configCopy
}

// ConfigFileUsed returns the config file that was read, if any.
func (m *Manager) ConfigFileUsed() string {
	return m.viper.ConfigFileUsed()
}

func ensureScriptPath(config *Config) error {
	if config.Script != "" {
		config.Script = expandHome(config.Script)
		return nil
	}
	script, err := GetScriptFile()
	if err != nil {
		return fmt.Errorf("failed to get script path: %w", err)
	}
	config.Script = script
	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func normalizeConfig(config *Config) {
	switch InhibitBackend(strings.ToLower(strings.TrimSpace(string(config.Inhibit.Backend)))) {
	case "", InhibitBackendAuto:
		config.Inhibit.Backend = InhibitBackendAuto
	case InhibitBackendWayland:
		config.Inhibit.Backend = InhibitBackendWayland
	case InhibitBackendPortal:
		config.Inhibit.Backend = InhibitBackendPortal
	case InhibitBackendLogind:
		config.Inhibit.Backend = InhibitBackendLogind
	case InhibitBackendNone:
		config.Inhibit.Backend = InhibitBackendNone
	}

	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
	config.Metrics.Listen = strings.TrimSpace(config.Metrics.Listen)
}
