package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/phonolab/sgraph/internal/nlp"
	"github.com/phonolab/sgraph/internal/textnorm"
	"github.com/phonolab/sgraph/internal/transcripts"
	"github.com/phonolab/sgraph/internal/wordgraph"
)

var (
	inspectHypothesis      int
	inspectRemoveStopwords bool
)

func newInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <call-dir>",
		Short: "Print the graph metric table for one call",
		Long: `Inspect a single call directory: build the word graphs for one
hypothesis and print the metric battery for every graph variant.`,
		Args: cobra.ExactArgs(1),
		RunE: inspectCommandE,
	}

	cmd.Flags().IntVar(&inspectHypothesis, "hypothesis", 0, "Hypothesis index to inspect")
	cmd.Flags().BoolVar(&inspectRemoveStopwords, "remove-stopwords", false, "Strip stopwords before building graphs")

	return cmd
}

func inspectCommandE(cmd *cobra.Command, args []string) error {
	dir := args[0]
	callID := filepath.Base(dir)

	segments, err := transcripts.ReadCall(dir, callID)
	if err != nil {
		return err
	}

	raw := make([][]string, 0, len(segments))
	for _, seg := range segments {
		if inspectHypothesis >= seg.HypothesisCount() {
			return fmt.Errorf("segment %s has only %d hypotheses", seg.SegmentID, seg.HypothesisCount())
		}
		raw = append(raw, seg.Hypotheses[inspectHypothesis])
	}
	cleaned := textnorm.Normalize(raw, inspectRemoveStopwords, textnorm.DefaultStopwords())

	oracles, err := nlp.DefaultOracles()
	if err != nil {
		return err
	}
	builder := wordgraph.NewBuilder(oracles)

	variants := wordgraph.Variants()
	columns := make([]map[string]float64, len(variants))
	for i, variant := range variants {
		graph, err := builder.Build(cleaned, variant)
		if err != nil {
			return err
		}
		columns[i] = wordgraph.Compute(graph)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Call %s: %d segment(s), hypothesis %d\n\n",
		callID, len(segments), inspectHypothesis)
	printMetricTable(cmd, variants, columns)
	return nil
}

func printMetricTable(cmd *cobra.Command, variants []wordgraph.Variant, columns []map[string]float64) {
	w := cmd.OutOrStdout()

	const metricWidth = 12
	colWidth := 10
	// On narrow terminals, tighten the value columns.
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw < metricWidth+len(variants)*(colWidth+2) {
			colWidth = 8
		}
	}

	header := padRight("metric", metricWidth)
	for _, variant := range variants {
		header += "  " + padRight(string(variant), colWidth)
	}
	fmt.Fprintln(w, header)

	for _, metric := range wordgraph.MetricNames() {
		line := padRight(metric, metricWidth)
		for i := range variants {
			line += "  " + padRight(formatMetric(columns[i][metric]), colWidth)
		}
		fmt.Fprintln(w, line)
	}
}

func formatMetric(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.4f", v)
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
