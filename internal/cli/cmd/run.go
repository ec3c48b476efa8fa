package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bnema/sleepwatcher/internal/bootstrap"
	"github.com/bnema/sleepwatcher/internal/logging"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the daemon (default command)",
	Args:  cobra.NoArgs,
	RunE:  runDaemon,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runDaemon(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = loggerContext(ctx, cfg)

	logging.FromContext(ctx).Info().
		Str("version", buildInfo.Version).
		Str("script", cfg.Script).
		Str("inhibit_backend", string(cfg.Inhibit.Backend)).
		Msg("starting sleepwatcher")

	return bootstrap.NewDaemon(cfg).Run(ctx)
}
