package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phonolab/sgraph/internal/features"
	"github.com/phonolab/sgraph/internal/models"
	"github.com/phonolab/sgraph/internal/nlp"
	"github.com/phonolab/sgraph/internal/orchestration"
	"github.com/phonolab/sgraph/internal/reporting"
	"github.com/phonolab/sgraph/internal/textnorm"
	"github.com/phonolab/sgraph/internal/upload"
)

var (
	runLevel           string
	runOutput          string
	runVerbose         bool
	runParallel        bool
	runWorkers         int
	runRemoveStopwords bool
	runReportPath      string
	runHTML            bool
	uploadAccount      string
	uploadContainer    string
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <spec.yaml>",
		Short: "Run a feature extraction described by a spec file",
		Long: `Run a feature extraction from a spec file.

The spec names the transcript directory, the call metadata table, the
aggregation level, and the feature sets to compute. CLI flags override the
spec's config section.`,
		Args: cobra.ExactArgs(1),
		RunE: runCommandE,
	}

	cmd.Flags().StringVar(&runLevel, "level", "", "Aggregation level: segment, call, day, week, subject (overrides spec)")
	cmd.Flags().StringVarP(&runOutput, "output", "o", "", "Output CSV file (overrides spec)")
	cmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Verbose output with per-group progress")
	cmd.Flags().BoolVar(&runParallel, "parallel", false, "Run groups concurrently")
	cmd.Flags().IntVar(&runWorkers, "workers", 0, "Number of concurrent workers (default: 4, requires --parallel)")
	cmd.Flags().BoolVar(&runRemoveStopwords, "remove-stopwords", false, "Strip stopwords before building graphs")
	cmd.Flags().StringVar(&runReportPath, "report", "", "Write a markdown run summary to this path")
	cmd.Flags().BoolVar(&runHTML, "html", false, "Also write the summary as HTML (requires --report)")
	cmd.Flags().StringVar(&uploadAccount, "upload-account", "", "Azure storage service URL to upload results to")
	cmd.Flags().StringVar(&uploadContainer, "upload-container", "", "Blob container for uploaded results")

	return cmd
}

func runCommandE(cmd *cobra.Command, args []string) error {
	spec, err := models.LoadRunSpec(args[0])
	if err != nil {
		return fmt.Errorf("failed to load spec: %w", err)
	}

	// CLI flags override spec config
	if runLevel != "" {
		spec.Config.Level = runLevel
	}
	if runOutput != "" {
		spec.OutputPath = runOutput
	}
	if runParallel {
		spec.Config.Concurrent = true
	}
	if runWorkers > 0 {
		spec.Config.Workers = runWorkers
	}
	if runRemoveStopwords {
		spec.Config.RemoveStopwords = true
	}
	if spec.OutputPath == "" {
		return fmt.Errorf("no output path: set output in the spec or pass --output")
	}

	oracles, err := nlp.DefaultOracles()
	if err != nil {
		return err
	}
	deps := features.Deps{
		Oracles:   oracles,
		Stopwords: textnorm.DefaultStopwords(),
	}

	runner := orchestration.NewRunner(spec, deps)
	runner.OnProgress(newProgressReporter(cmd.OutOrStdout(), runVerbose))

	outcome, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}

	if err := reporting.WriteCSVFile(spec.OutputPath, outcome); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d group(s) to %s\n", len(outcome.Rows), spec.OutputPath)

	artifacts := []string{spec.OutputPath}
	if runReportPath != "" {
		written, err := writeSummaries(outcome, runReportPath, runHTML)
		if err != nil {
			return err
		}
		artifacts = append(artifacts, written...)
	}

	if uploadAccount != "" || uploadContainer != "" {
		uploader, err := upload.NewBlobUploader(uploadAccount, uploadContainer)
		if err != nil {
			return err
		}
		for _, path := range artifacts {
			if err := uploader.UploadFile(cmd.Context(), path, outcome.RunID); err != nil {
				return err
			}
		}
	}

	if len(outcome.Skipped) > 0 {
		for _, skip := range outcome.Skipped {
			fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s: %s\n", skip.Key.ID(), skip.Reason)
		}
		return &SkippedGroupsError{Count: len(outcome.Skipped)}
	}
	return nil
}

// writeSummaries writes the markdown summary, plus an HTML rendering next
// to it when asked, and returns the written paths.
func writeSummaries(outcome *orchestration.Outcome, path string, html bool) ([]string, error) {
	markdown := reporting.RenderMarkdown(outcome)
	if err := os.WriteFile(path, []byte(markdown), 0o644); err != nil {
		return nil, fmt.Errorf("writing summary: %w", err)
	}
	written := []string{path}

	if html {
		rendered, err := reporting.MarkdownToHTML(markdown)
		if err != nil {
			return nil, err
		}
		htmlPath := strings.TrimSuffix(path, ".md") + ".html"
		if err := os.WriteFile(htmlPath, []byte(rendered), 0o644); err != nil {
			return nil, fmt.Errorf("writing summary html: %w", err)
		}
		written = append(written, htmlPath)
	}
	return written, nil
}
