package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/sleepwatcher/internal/domain/build"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), buildInfo.String())
		fmt.Fprintln(cmd.OutOrStdout(), build.RepoURL())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
