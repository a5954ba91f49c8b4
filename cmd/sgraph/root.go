package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sgraph",
		Short: "sgraph - speech graph feature extraction for call transcripts",
		Long: `sgraph extracts structural speech-graph features from ASR call
transcripts.

It builds word-adjacency graphs per recognition hypothesis, computes a
connectivity metric battery on them, and averages the results across
hypotheses at a chosen aggregation level (segment, call, day, week, or
subject).`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		}
	}

	// Add subcommands
	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newInitCommand())
	cmd.AddCommand(newInspectCommand())
	cmd.AddCommand(newReportCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
