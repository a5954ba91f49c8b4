package reporting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "features.csv")
	require.NoError(t, os.WriteFile(path, []byte(
		"call_id,HS,noise\n"+
			"call_1,179.25,NaN\n"+
			"call_2,NaN,0.125\n"+
			"call_3,42,NaN\n"), 0o644))

	summary, err := SummarizeCSV(path)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Rows)
	assert.Equal(t, []string{"call_id", "HS", "noise"}, summary.Columns)
	assert.Equal(t, 1, summary.NaNs["HS"])
	assert.Equal(t, 2, summary.NaNs["noise"])

	md := summary.Markdown()
	assert.Contains(t, md, "- Rows: 3")
	assert.Contains(t, md, "| noise | 2 |")
	assert.NotContains(t, md, "| call_id |")
}

func TestSummarizeCSVErrors(t *testing.T) {
	_, err := SummarizeCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = SummarizeCSV(empty)
	assert.ErrorContains(t, err, "no header row")
}
