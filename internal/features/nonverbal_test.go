package features

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phonolab/sgraph/internal/models"
)

func TestNonVerbalExtractor(t *testing.T) {
	ex := NewNonVerbalExtractor("nv")
	assert.Equal(t, "nv", ex.Name())

	fv, err := ex.Extract(hypothesisOf(
		[]string{"[laughter]", "hi"},
		[]string{"[noise]", "[noise]"},
	))
	require.NoError(t, err)

	assert.InDelta(t, 0.25, fv["laughter"], 1e-12)
	assert.InDelta(t, 0.5, fv["noise"], 1e-12)
	assert.Equal(t, 0.0, fv["unk"])
}

func TestNonVerbalExtractorEmpty(t *testing.T) {
	ex := NewNonVerbalExtractor("nv")

	fv, err := ex.Extract(models.Hypothesis{})
	require.NoError(t, err)

	for _, name := range []string{"laughter", "noise", "unk"} {
		assert.True(t, math.IsNaN(fv[name]), "%s should be NaN with no tokens", name)
	}
}
