package features

import (
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/phonolab/sgraph/internal/models"
)

type verbosityExtractor struct {
	name string
}

// NewVerbosityExtractor returns the verbosity and complexity feature set:
// per-segment word-count statistics, word-length measures, and
// syllable-count statistics.
func NewVerbosityExtractor(name string) Extractor {
	return &verbosityExtractor{name: name}
}

func (v *verbosityExtractor) Name() string { return v.name }

func (v *verbosityExtractor) Extract(hyp models.Hypothesis) (models.FeatureVector, error) {
	var (
		segmentCounts []float64
		wordLengths   []float64
		syllables     []float64
		longWords     float64
	)
	for _, tt := range hyp {
		segmentCounts = append(segmentCounts, float64(len(tt.Tokens)))
		for _, word := range tt.Tokens {
			wordLengths = append(wordLengths, float64(len(word)))
			syllables = append(syllables, float64(syllableCount(word)))
			if len(word) > 6 {
				longWords++
			}
		}
	}

	fv := models.FeatureVector{}
	addSummaryStats(fv, "wc", segmentCounts)

	totalWords := 0.0
	if len(segmentCounts) > 0 {
		totalWords = floats.Sum(segmentCounts)
		fv["total_count"] = totalWords
	} else {
		fv["total_count"] = math.NaN()
	}
	if totalWords > 0 {
		fv["lw_count"] = longWords / totalWords
	} else {
		fv["lw_count"] = math.NaN()
	}
	if len(wordLengths) > 0 {
		fv["word_len"] = stat.Mean(wordLengths, nil)
	} else {
		fv["word_len"] = math.NaN()
	}

	addSummaryStats(fv, "syll", syllables)
	return fv, nil
}

// addSummaryStats writes <prefix>_mean/median/stdev/min/max, NaN across the
// board for empty input.
func addSummaryStats(fv models.FeatureVector, prefix string, values []float64) {
	if len(values) == 0 {
		for _, suffix := range []string{"_mean", "_median", "_stdev", "_min", "_max"} {
			fv[prefix+suffix] = math.NaN()
		}
		return
	}
	fv[prefix+"_mean"] = stat.Mean(values, nil)
	fv[prefix+"_median"] = median(values)
	fv[prefix+"_stdev"] = stat.PopStdDev(values, nil)
	fv[prefix+"_min"] = floats.Min(values)
	fv[prefix+"_max"] = floats.Max(values)
}

// median matches the convention of averaging the two middle values for
// even-length input; gonum's empirical quantile picks a sample instead.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// syllableCount approximates English syllables by counting vowel groups,
// discounting a trailing silent e, with a floor of one.
func syllableCount(word string) int {
	count := 0
	prevVowel := false
	lower := strings.ToLower(word)
	for _, r := range lower {
		isVowel := strings.ContainsRune("aeiouy", r)
		if isVowel && !prevVowel {
			count++
		}
		prevVowel = isVowel
	}
	if count > 1 && strings.HasSuffix(lower, "e") && !strings.HasSuffix(lower, "le") {
		count--
	}
	if count == 0 {
		count = 1
	}
	return count
}
