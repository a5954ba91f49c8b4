package features

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phonolab/sgraph/internal/models"
)

func TestMovingAverageTTR(t *testing.T) {
	tests := []struct {
		name     string
		words    []string
		window   int
		expected float64
	}{
		{
			name:     "all distinct",
			words:    []string{"a", "b", "c", "d"},
			window:   2,
			expected: 1.0,
		},
		{
			name:     "all repeated",
			words:    []string{"a", "a", "a", "a"},
			window:   2,
			expected: 0.5,
		},
		{
			name:     "mixed windows",
			words:    []string{"a", "b", "a"},
			window:   2,
			expected: 1.0, // windows [a b] and [b a] both hold two types
		},
		{
			name:     "window clamps to transcript length",
			words:    []string{"a", "b", "a"},
			window:   10,
			expected: 2.0 / 3.0,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.InDelta(t, test.expected, movingAverageTTR(test.words, test.window), 1e-12)
		})
	}
}

func TestMovingAverageTTREmpty(t *testing.T) {
	assert.True(t, math.IsNaN(movingAverageTTR(nil, 10)))
}

func TestHonoresStatistic(t *testing.T) {
	// N=3 tokens, V=2 types, V1=1 singleton.
	words := []string{"a", "b", "a"}
	expected := 100 * math.Log(3/(1-1/(2+1e-5)))
	assert.InDelta(t, expected, honoresStatistic(words), 1e-9)

	// The epsilon keeps all-singleton transcripts finite.
	assert.False(t, math.IsInf(honoresStatistic([]string{"a", "b", "c"}), 0))
	assert.True(t, math.IsNaN(honoresStatistic(nil)))
}

func TestLexicalDiversityExtractor(t *testing.T) {
	ex := NewLexicalDiversityExtractor("lexdiv", LexicalDiversityArgs{Windows: []int{2, 3}})
	assert.Equal(t, "lexdiv", ex.Name())

	fv, err := ex.Extract(hypothesisOf(
		[]string{"a", "b"},
		[]string{"c", "d"},
	))
	require.NoError(t, err)

	// Segments concatenate before windowing.
	assert.InDelta(t, 1.0, fv["MATTR_2"], 1e-12)
	assert.InDelta(t, 1.0, fv["MATTR_3"], 1e-12)
	assert.Contains(t, fv, "HS")
	assert.NotContains(t, fv, "MATTR_10")
}

func TestLexicalDiversityIgnoresNonVerbalMarkers(t *testing.T) {
	ex := NewLexicalDiversityExtractor("lexdiv", LexicalDiversityArgs{Windows: []int{2}})

	// Markers are not vocabulary: with them stripped this transcript is
	// empty and every statistic is undefined.
	fv, err := ex.Extract(hypothesisOf([]string{"[noise]", "[noise]", "<unk>"}))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(fv["MATTR_2"]))
	assert.True(t, math.IsNaN(fv["HS"]))

	// Mixed input counts only the spoken words.
	fv, err = ex.Extract(hypothesisOf([]string{"hello", "[laughter]", "hello"}))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, fv["MATTR_2"], 1e-12, "windows slide over [hello hello] only")
}

func TestLexicalDiversityDefaultWindows(t *testing.T) {
	ex := NewLexicalDiversityExtractor("lexdiv", LexicalDiversityArgs{})

	fv, err := ex.Extract(models.Hypothesis{})
	require.NoError(t, err)

	for _, name := range []string{"MATTR_10", "MATTR_25", "MATTR_50", "HS"} {
		require.Contains(t, fv, name)
		assert.True(t, math.IsNaN(fv[name]), "%s should be NaN on empty input", name)
	}
}
