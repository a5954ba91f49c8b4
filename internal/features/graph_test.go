package features

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phonolab/sgraph/internal/models"
	"github.com/phonolab/sgraph/internal/wordgraph"
)

func TestGraphExtractorFeatureNames(t *testing.T) {
	ex := NewGraphExtractor("graph", GraphArgs{}, testDeps(nil))

	fv, err := ex.Extract(hypothesisOf([]string{"one", "two", "one"}))
	require.NoError(t, err)

	// 12 metrics x 3 variants, doubled by the _norm pass.
	assert.Len(t, fv, 12*3*2)
	for _, metric := range wordgraph.MetricNames() {
		for _, variant := range wordgraph.Variants() {
			name := metric + "_" + string(variant)
			_, ok := fv[name]
			assert.True(t, ok, "missing %s", name)
			_, ok = fv[name+"_norm"]
			assert.True(t, ok, "missing %s_norm", name)
		}
	}
}

func TestGraphExtractorNormalization(t *testing.T) {
	ex := NewGraphExtractor("graph", GraphArgs{}, testDeps(nil))

	fv, err := ex.Extract(hypothesisOf([]string{"one", "two", "three"}))
	require.NoError(t, err)

	assert.Equal(t, 3.0, fv["num_nodes_naive"])
	assert.InDelta(t, 1.0, fv["num_nodes_naive_norm"], 1e-12)
	assert.InDelta(t, fv["num_edges_naive"]/3.0, fv["num_edges_naive_norm"], 1e-12)
}

func TestGraphExtractorEmptyTranscript(t *testing.T) {
	ex := NewGraphExtractor("graph", GraphArgs{}, testDeps(nil))

	fv, err := ex.Extract(models.Hypothesis{})
	require.NoError(t, err)

	assert.Equal(t, 0.0, fv["num_nodes_naive"])
	assert.True(t, math.IsNaN(fv["ave_degree_naive"]))
	assert.True(t, math.IsNaN(fv["num_nodes_naive_norm"]), "norms are NaN at zero tokens")
	assert.True(t, math.IsNaN(fv["lcc_pos_norm"]))
}

func TestGraphExtractorMarkersNeverReachGraphs(t *testing.T) {
	ex := NewGraphExtractor("graph", GraphArgs{}, testDeps(nil))

	fv, err := ex.Extract(hypothesisOf([]string{"[noise]", "word", "<unk>"}))
	require.NoError(t, err)

	assert.Equal(t, 1.0, fv["num_nodes_naive"])
	assert.Equal(t, 0.0, fv["num_edges_naive"])
	// Normalization divides by the cleaned count, not the raw count.
	assert.InDelta(t, 1.0, fv["num_nodes_naive_norm"], 1e-12)
}

func TestGraphExtractorStopwordRemoval(t *testing.T) {
	deps := testDeps(nil)

	with := NewGraphExtractor("graph", GraphArgs{RemoveStopwords: true}, deps)
	without := NewGraphExtractor("graph", GraphArgs{}, deps)

	hyp := hypothesisOf([]string{"the", "dog", "a", "cat"})

	fvWith, err := with.Extract(hyp)
	require.NoError(t, err)
	fvWithout, err := without.Extract(hyp)
	require.NoError(t, err)

	assert.Equal(t, 2.0, fvWith["num_nodes_naive"])
	assert.Equal(t, 4.0, fvWithout["num_nodes_naive"])
}
