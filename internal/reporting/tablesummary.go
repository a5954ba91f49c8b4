package reporting

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TableSummary describes a feature table already on disk.
type TableSummary struct {
	Path    string
	Rows    int
	Columns []string
	NaNs    map[string]int
}

// SummarizeCSV reads a feature table back and tallies its shape and the
// undefined values per column.
func SummarizeCSV(path string) (*TableSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reporting: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reporting: parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("reporting: %s has no header row", path)
	}

	summary := &TableSummary{
		Path:    path,
		Rows:    len(records) - 1,
		Columns: records[0],
		NaNs:    map[string]int{},
	}
	for _, record := range records[1:] {
		for i, value := range record {
			if i < len(summary.Columns) && value == "NaN" {
				summary.NaNs[summary.Columns[i]]++
			}
		}
	}
	return summary, nil
}

// Markdown renders the table summary as a markdown document.
func (s *TableSummary) Markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Feature table %s\n\n", filepath.Base(s.Path))
	fmt.Fprintf(&b, "- Rows: %d\n", s.Rows)
	fmt.Fprintf(&b, "- Columns: %d\n", len(s.Columns))

	var undefined []string
	for _, col := range s.Columns {
		if s.NaNs[col] > 0 {
			undefined = append(undefined, col)
		}
	}
	if len(undefined) > 0 {
		b.WriteString("\n## Columns with undefined values\n\n")
		b.WriteString("| Column | NaN rows |\n|---|---|\n")
		for _, col := range undefined {
			fmt.Fprintf(&b, "| %s | %d |\n", col, s.NaNs[col])
		}
	}
	return b.String()
}
