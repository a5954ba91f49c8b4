package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phonolab/sgraph/internal/reporting"
)

var reportHTMLOutput string

func newReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <features.csv>",
		Short: "Summarize an existing feature table",
		Long: `Read a feature table written by a previous run and print a markdown
summary: its shape and the columns with undefined values.`,
		Args: cobra.ExactArgs(1),
		RunE: reportCommandE,
	}

	cmd.Flags().StringVar(&reportHTMLOutput, "html", "", "Also write the summary as HTML to this path")

	return cmd
}

func reportCommandE(cmd *cobra.Command, args []string) error {
	summary, err := reporting.SummarizeCSV(args[0])
	if err != nil {
		return err
	}

	markdown := summary.Markdown()
	fmt.Fprint(cmd.OutOrStdout(), markdown)
	if !strings.HasSuffix(markdown, "\n") {
		fmt.Fprintln(cmd.OutOrStdout())
	}

	if reportHTMLOutput != "" {
		html, err := reporting.MarkdownToHTML(markdown)
		if err != nil {
			return err
		}
		if err := os.WriteFile(reportHTMLOutput, []byte(html), 0o644); err != nil {
			return fmt.Errorf("writing html: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nWrote %s\n", reportHTMLOutput)
	}
	return nil
}
