package features

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phonolab/sgraph/internal/models"
	"github.com/phonolab/sgraph/internal/nlp"
)

func TestPOSExtractorProportions(t *testing.T) {
	deps := testDeps(map[string]string{
		"big":     "JJ",
		"dogs":    "NNS",
		"run":     "VB",
		"quickly": "RB",
	})
	ex := NewPOSExtractor("pos", deps.Oracles)

	fv, err := ex.Extract(hypothesisOf([]string{"Big", "dogs", "run", "quickly"}))
	require.NoError(t, err)

	assert.InDelta(t, 0.25, fv["ADJ"], 1e-12)
	assert.InDelta(t, 0.25, fv["NOUN"], 1e-12)
	assert.InDelta(t, 0.25, fv["VERB"], 1e-12)
	assert.InDelta(t, 0.25, fv["ADV"], 1e-12)
	assert.Equal(t, 0.0, fv["DET"])

	assert.InDelta(t, 1.0, fv["adj_ratio"], 1e-12)
	assert.InDelta(t, 1.0, fv["v_ratio"], 1e-12)
	assert.InDelta(t, 0.5, fv["n_ratio"], 1e-12)
	assert.Equal(t, 0.0, fv["pn_ratio"])
	assert.True(t, math.IsNaN(fv["sc_ratio"]), "no conjunctions means an undefined ratio")
}

func TestPOSExtractorPronounsCountAsNouns(t *testing.T) {
	deps := testDeps(map[string]string{
		"i":  "PRP",
		"my": "PRP$",
	})
	ex := NewPOSExtractor("pos", deps.Oracles)

	fv, err := ex.Extract(hypothesisOf([]string{"I", "my"}))
	require.NoError(t, err)

	assert.InDelta(t, 1.0, fv["NOUN"], 1e-12)
	assert.InDelta(t, 0.5, fv["PNOUN"], 1e-12)
	assert.InDelta(t, 0.5, fv["PSNOUN"], 1e-12)
	assert.InDelta(t, 0.5, fv["pn_ratio"], 1e-12)
}

func TestPOSExtractorIgnoresNonVerbalMarkers(t *testing.T) {
	deps := testDeps(map[string]string{"hello": "UH"})
	ex := NewPOSExtractor("pos", deps.Oracles)

	fv, err := ex.Extract(hypothesisOf([]string{"[noise]", "hello", "<unk>", "[laughter]"}))
	require.NoError(t, err)

	// Only the spoken word reaches the tagger or the denominator.
	assert.InDelta(t, 1.0, fv["INT"], 1e-12)
	assert.Equal(t, 0.0, fv["NOUN"])
}

func TestPOSExtractorMarkerOnlySegment(t *testing.T) {
	ex := NewPOSExtractor("pos", testDeps(nil).Oracles)

	fv, err := ex.Extract(hypothesisOf([]string{"[noise]", "[noise]"}))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(fv["NOUN"]), "a marker-only segment has no words")
}

// contractionTagger splits tokens on apostrophes the way real taggers split
// contractions, producing more tags than input words.
type contractionTagger struct{}

func (contractionTagger) Tag(tokens []string) ([]nlp.TaggedToken, error) {
	var tagged []nlp.TaggedToken
	for _, tok := range tokens {
		for _, part := range strings.SplitAfter(tok, "'") {
			tagged = append(tagged, nlp.TaggedToken{Text: part, Tag: "VB"})
		}
	}
	return tagged, nil
}

func TestPOSExtractorProportionsUseInputWordCount(t *testing.T) {
	deps := testDeps(nil)
	deps.Oracles.Tagger = contractionTagger{}
	ex := NewPOSExtractor("pos", deps.Oracles)

	// Two spoken words yield three tags; the denominator stays two.
	fv, err := ex.Extract(hypothesisOf([]string{"don't", "stop"}))
	require.NoError(t, err)
	assert.InDelta(t, 1.5, fv["VERB"], 1e-12)
}

func TestPOSExtractorEmpty(t *testing.T) {
	ex := NewPOSExtractor("pos", testDeps(nil).Oracles)

	fv, err := ex.Extract(models.Hypothesis{})
	require.NoError(t, err)

	for _, class := range posClasses {
		assert.True(t, math.IsNaN(fv[class]), "%s should be NaN with no words", class)
	}
	assert.True(t, math.IsNaN(fv["adj_ratio"]))
}

func TestPOSExtractorTagFailureSkipsSegment(t *testing.T) {
	deps := testDeps(nil)
	deps.Oracles.Tagger = tableTagger{err: &nlp.TagError{Cause: errors.New("tagger broke")}}
	ex := NewPOSExtractor("pos", deps.Oracles)

	fv, err := ex.Extract(hypothesisOf([]string{"hello", "there"}))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(fv["NOUN"]), "skipped segments contribute no words")
}

func TestPOSExtractorOtherTagErrorAborts(t *testing.T) {
	deps := testDeps(nil)
	sentinel := errors.New("out of memory")
	deps.Oracles.Tagger = tableTagger{err: sentinel}
	ex := NewPOSExtractor("pos", deps.Oracles)

	_, err := ex.Extract(hypothesisOf([]string{"hello"}))
	assert.ErrorIs(t, err, sentinel)
}

func TestCountTagDispatch(t *testing.T) {
	tests := []struct {
		tag     string
		classes []string
	}{
		{"JJ", []string{"ADJ"}},
		{"JJR", []string{"ADJ"}},
		{"VBD", []string{"VERB"}},
		{"NNP", []string{"NOUN"}},
		{"RBS", []string{"ADV"}},
		{"DT", []string{"DET"}},
		{"UH", []string{"INT"}},
		{"IN", []string{"PREP"}},
		{"TO", []string{"PREP"}},
		{"CC", []string{"CC"}},
		{"PRP", []string{"NOUN", "PNOUN"}},
		{"PRP$", []string{"NOUN", "PSNOUN"}},
		{"WDT", []string{"DET"}},
		{"WRB", []string{"ADV"}},
		{"WP", []string{"NOUN", "PNOUN"}},
		{"WP$", []string{"PSNOUN"}},
		{"SYM", nil},
	}

	for _, test := range tests {
		t.Run(test.tag, func(t *testing.T) {
			counts := map[string]float64{}
			countTag(test.tag, counts)

			total := 0.0
			for _, class := range test.classes {
				assert.Equal(t, 1.0, counts[class], "class %s", class)
				total += counts[class]
			}
			sum := 0.0
			for _, c := range counts {
				sum += c
			}
			assert.Equal(t, total, sum, "no extra classes counted")
		})
	}
}
