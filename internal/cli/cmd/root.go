// Package cmd provides Cobra CLI commands for sleepwatcher.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bnema/sleepwatcher/internal/config"
	"github.com/bnema/sleepwatcher/internal/domain/build"
	"github.com/bnema/sleepwatcher/internal/logging"
)

var (
	buildInfo  build.Info
	configFile string
	scriptFile string

	rootCmd = &cobra.Command{
		Use:   "sleepwatcher",
		Short: "Scriptable idle and power daemon for Wayland",
		Long: `sleepwatcher runs a user script that reacts to idle timeouts, battery
state, session lock and sleep transitions. Game controller input keeps the
session awake.

Idle timers come from the compositor (ext-idle-notify-v1). The script is
reloaded whenever it changes on disk or on SIGHUP.

Running sleepwatcher without a subcommand starts the daemon.`,
		SilenceUsage: true,
		RunE:         runDaemon,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default $XDG_CONFIG_HOME/sleepwatcher/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&scriptFile, "script", "s", "", "user script, .lua or .js (default $XDG_CONFIG_HOME/sleepwatcher/idle_config.lua)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

// loadConfig reads the configuration with command line overrides applied.
func loadConfig() (*config.Config, error) {
	m, err := config.NewManager(configFile)
	if err != nil {
		return nil, err
	}
	if scriptFile != "" {
		m.Set("script", scriptFile)
	}
	if err := m.Load(); err != nil {
		return nil, err
	}
	return m.Get(), nil
}

// loggerContext attaches a logger built from cfg to ctx.
func loggerContext(ctx context.Context, cfg *config.Config) context.Context {
	logger := logging.New(logging.Config{
		Level:      logging.ParseLevel(cfg.Logging.Level, zerolog.InfoLevel),
		Format:     cfg.Logging.Format,
		TimeFormat: logging.DefaultConfig().TimeFormat,
	})
	return logging.WithContext(ctx, logger)
}
