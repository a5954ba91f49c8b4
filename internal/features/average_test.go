package features

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phonolab/sgraph/internal/models"
)

func bundleWith(n int) models.HypothesisBundle {
	key := models.GroupKey{Fields: []string{"call_id"}, Values: []string{"call7"}}
	hyps := make([]models.Hypothesis, n)
	for i := range hyps {
		hyps[i] = hypothesisOf([]string{"hello", "world"})
	}
	return models.HypothesisBundle{Key: key, Hypotheses: hyps}
}

func TestAverageSingleHypothesisIsIdentity(t *testing.T) {
	want := models.FeatureVector{"x": 1.25, "y": math.NaN()}
	stub := &stubExtractor{vectors: []models.FeatureVector{want}}

	got, err := Average(bundleWith(1), stub)
	require.NoError(t, err)
	assert.Equal(t, 1.25, got["x"])
	assert.True(t, math.IsNaN(got["y"]))
	assert.Len(t, got, 2)
}

func TestAverageTakesPerFeatureMean(t *testing.T) {
	stub := &stubExtractor{vectors: []models.FeatureVector{
		{"x": 1, "y": 10},
		{"x": 3, "y": 20},
		{"x": 5, "y": 60},
	}}

	got, err := Average(bundleWith(3), stub)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, got["x"], 1e-12)
	assert.InDelta(t, 30.0, got["y"], 1e-12)
}

func TestAverageNaNPropagates(t *testing.T) {
	stub := &stubExtractor{vectors: []models.FeatureVector{
		{"x": 1},
		{"x": math.NaN()},
	}}

	got, err := Average(bundleWith(2), stub)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got["x"]), "NaN must not be skipped")
}

func TestAverageZeroHypothesesIsIntegrityError(t *testing.T) {
	_, err := Average(bundleWith(0), &stubExtractor{})
	require.Error(t, err)

	var integrityErr *models.IntegrityError
	require.ErrorAs(t, err, &integrityErr)
	assert.Equal(t, "call7", integrityErr.Key.ID())
}

func TestAverageMismatchedKeySets(t *testing.T) {
	stub := &stubExtractor{vectors: []models.FeatureVector{
		{"x": 1},
		{"x": 2, "extra": 3},
	}}

	_, err := Average(bundleWith(2), stub)
	assert.Error(t, err)
}

func TestAverageExtractorErrorWrapped(t *testing.T) {
	cause := errors.New("tagger exploded")
	_, err := Average(bundleWith(1), &stubExtractor{err: cause})
	assert.ErrorIs(t, err, cause)
}
