package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/bnema/sleepwatcher/internal/infrastructure/script"
)

var (
	checkOnBattery bool
	checkJSON      bool
)

var checkCmd = &cobra.Command{
	Use:   "check [script]",
	Short: "Run a script against a recording host",
	Long: `Execute the script without touching the compositor or spawning
commands, then print the idle subscriptions and session handlers it
registers. Exits non-zero when the script fails.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkOnBattery, "on-battery", true, "value returned by on_battery()")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "print the result as JSON")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := scriptFile
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path = cfg.Script
	}

	rec, err := checkScript(cmd.Context(), path, checkOnBattery)
	if err != nil {
		return err
	}
	if checkJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}
	printRecording(cmd.OutOrStdout(), path, rec)
	return nil
}

func checkScript(ctx context.Context, path string, onBattery bool) (*script.Recording, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}

	engine, err := script.NewEngine(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = engine.Close() }()

	rec := script.NewRecording()
	if err := engine.Reset(rec); err != nil {
		return nil, err
	}
	if err := engine.SetOnBattery(onBattery); err != nil {
		return nil, err
	}
	if err := engine.Exec(ctx, path, source); err != nil {
		return nil, err
	}
	return rec, nil
}

func printRecording(w io.Writer, path string, rec *script.Recording) {
	fmt.Fprintf(w, "%s: ok\n", path)

	fmt.Fprintf(w, "\nidle subscriptions (%d):\n", len(rec.Subscriptions))
	for _, sub := range rec.Subscriptions {
		fmt.Fprintf(w, "  %8s  %s\n", sub.Timeout, sub.Callback)
	}

	kinds := make([]string, 0, len(rec.Handlers))
	for kind := range rec.Handlers {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	fmt.Fprintf(w, "\nsession handlers (%d):\n", len(kinds))
	for _, kind := range kinds {
		fmt.Fprintf(w, "  %-12s  %s\n", kind, rec.Handlers[kind])
	}

	if len(rec.Commands) > 0 {
		fmt.Fprintf(w, "\ncommands run at load (%d):\n", len(rec.Commands))
		for _, c := range rec.Commands {
			fmt.Fprintf(w, "  %s\n", c)
		}
	}
}
