package reporting

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/phonolab/sgraph/internal/orchestration"
)

// RenderMarkdown builds the run summary as a markdown document.
func RenderMarkdown(outcome *orchestration.Outcome) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Extraction run %s\n\n", outcome.SpecName)
	fmt.Fprintf(&b, "- Run id: `%s`\n", outcome.RunID)
	fmt.Fprintf(&b, "- Level: %s\n", outcome.Level)
	fmt.Fprintf(&b, "- Started: %s\n", outcome.Started.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "- Duration: %s\n", outcome.Duration.Round(1e6))
	fmt.Fprintf(&b, "- Groups: %d written, %d skipped\n", len(outcome.Rows), len(outcome.Skipped))
	fmt.Fprintf(&b, "- Features per group: %d\n", len(outcome.FeatureNames))

	if len(outcome.Skipped) > 0 {
		b.WriteString("\n## Skipped groups\n\n")
		b.WriteString("| Group | Reason |\n|---|---|\n")
		for _, skip := range outcome.Skipped {
			fmt.Fprintf(&b, "| %s | %s |\n", skip.Key.ID(), skip.Reason)
		}
	}

	return b.String()
}

// RenderHTML converts the markdown summary to a standalone HTML fragment.
func RenderHTML(outcome *orchestration.Outcome) (string, error) {
	return MarkdownToHTML(RenderMarkdown(outcome))
}

// MarkdownToHTML converts any of this package's markdown reports to HTML.
func MarkdownToHTML(markdown string) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("reporting: rendering markdown: %w", err)
	}
	return buf.String(), nil
}
