package config

import (
	"fmt"
	"net"
	"path/filepath"
	"strings"
	"time"
)

// validateConfig checks every value and reports all problems at once.
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateScript(config)...)
	validationErrors = append(validationErrors, validateInhibit(config)...)
	validationErrors = append(validationErrors, validateDevices(config)...)
	validationErrors = append(validationErrors, validateRouter(config)...)
	validationErrors = append(validationErrors, validateWatch(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validateMetrics(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

func validateScript(config *Config) []string {
	if config.Script == "" {
		return []string{"script must not be empty"}
	}
	switch ext := strings.ToLower(filepath.Ext(config.Script)); ext {
	case ".lua", ".js", ".mjs":
		return nil
	default:
		return []string{fmt.Sprintf("script must end in .lua or .js, got %q", config.Script)}
	}
}

func validateInhibit(config *Config) []string {
	var validationErrors []string
	if config.Inhibit.Hold <= 0 {
		validationErrors = append(validationErrors, "inhibit.hold must be positive")
	}
	switch config.Inhibit.Backend {
	case InhibitBackendAuto, InhibitBackendWayland, InhibitBackendPortal, InhibitBackendLogind, InhibitBackendNone:
	default:
		validationErrors = append(validationErrors, fmt.Sprintf(
			"inhibit.backend must be one of auto, wayland, portal, logind, none (got %q)", config.Inhibit.Backend))
	}
	return validationErrors
}

func validateDevices(config *Config) []string {
	var validationErrors []string
	if config.Devices.ActivityInterval < 0 {
		validationErrors = append(validationErrors, "devices.activity_interval must be non-negative")
	}
	if config.Devices.ReadTimeout <= 0 {
		validationErrors = append(validationErrors, "devices.read_timeout must be positive")
	}
	return validationErrors
}

func validateRouter(config *Config) []string {
	var validationErrors []string
	if config.Router.QueueSize < 1 {
		validationErrors = append(validationErrors, "router.queue_size must be at least 1")
	}
	if config.Router.ScriptTimeout < 0 {
		validationErrors = append(validationErrors, "router.script_timeout must be non-negative")
	}
	return validationErrors
}

func validateWatch(config *Config) []string {
	if config.Watch.Debounce < 0 || config.Watch.Debounce > time.Minute {
		return []string{"watch.debounce must be between 0 and 1m"}
	}
	return nil
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.level must be one of trace, debug, info, warn, error (got %q)", config.Logging.Level))
	}
	switch config.Logging.Format {
	case "console", "json":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.format must be console or json (got %q)", config.Logging.Format))
	}
	return validationErrors
}

func validateMetrics(config *Config) []string {
	if config.Metrics.Listen == "" {
		return nil
	}
	if _, _, err := net.SplitHostPort(config.Metrics.Listen); err != nil {
		return []string{fmt.Sprintf("metrics.listen must be host:port: %v", err)}
	}
	return nil
}
