// Package reporting renders run outcomes as CSV tables and human-readable
// summaries.
package reporting

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/phonolab/sgraph/internal/orchestration"
)

// WriteCSVFile writes the feature table to path.
func WriteCSVFile(path string, outcome *orchestration.Outcome) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("reporting: create %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	if err := WriteCSV(f, outcome); err != nil {
		return err
	}
	return f.Close()
}

// WriteCSV writes one row per group: the group-key columns first, then the
// features in schema order. NaN serializes as the literal NaN so that
// downstream tooling reads it back as missing rather than zero.
func WriteCSV(w io.Writer, outcome *orchestration.Outcome) error {
	writer := csv.NewWriter(w)

	keyFields := outcome.Level.KeyFields()
	header := append(append([]string{}, keyFields...), outcome.FeatureNames...)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("reporting: writing header: %w", err)
	}

	for _, row := range outcome.Rows {
		if len(row.Features) != len(outcome.FeatureNames) {
			return fmt.Errorf("reporting: group %s has %d features, schema has %d",
				row.Key.ID(), len(row.Features), len(outcome.FeatureNames))
		}

		record := append([]string{}, row.Key.Values...)
		for _, name := range outcome.FeatureNames {
			value, ok := row.Features[name]
			if !ok {
				return fmt.Errorf("reporting: group %s is missing feature %q", row.Key.ID(), name)
			}
			record = append(record, formatValue(value))
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("reporting: writing group %s: %w", row.Key.ID(), err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
