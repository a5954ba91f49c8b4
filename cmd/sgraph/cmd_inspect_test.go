package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "call_7")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hyp_a.txt"),
		[]byte("seg_0_50 the quick brown fox\nseg_50_90 jumps over the dog\n"), 0o644))

	out, err := runCLI(t, "inspect", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "Call call_7: 2 segment(s), hypothesis 0")
	assert.Contains(t, out, "metric")
	assert.Contains(t, out, "naive")
	assert.Contains(t, out, "num_nodes")
	assert.Contains(t, out, "asp")
}

func TestInspectCommandBadHypothesis(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "call_7")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hyp_a.txt"),
		[]byte("seg_0_50 hello\n"), 0o644))

	_, err := runCLI(t, "inspect", dir, "--hypothesis", "3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only 1 hypotheses")
}

func TestInspectCommandMissingDir(t *testing.T) {
	_, err := runCLI(t, "inspect", filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestFormatMetric(t *testing.T) {
	assert.Equal(t, "3", formatMetric(3.0))
	assert.Equal(t, "0.5000", formatMetric(0.5))
	assert.Equal(t, "NaN", formatMetric(math.NaN()))
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab  ", padRight("ab", 4))
	assert.Equal(t, "abcdef", padRight("abcdef", 4))
}
