package features

import (
	"errors"
	"log/slog"
	"math"
	"strings"

	"github.com/phonolab/sgraph/internal/models"
	"github.com/phonolab/sgraph/internal/nlp"
	"github.com/phonolab/sgraph/internal/textnorm"
)

// posClasses are the coarse part-of-speech count features, in output order.
var posClasses = []string{
	"ADJ", "VERB", "NOUN", "ADV", "DET", "INT", "PREP", "CC", "PNOUN", "PSNOUN",
}

type posExtractor struct {
	name    string
	oracles nlp.Oracles
}

// NewPOSExtractor returns the part-of-speech feature set: class proportions
// of the spoken word count plus the derived usage ratios. Non-verbal
// markers are removed before tagging. Tagging is more accurate on cased
// text, so fully lowercase segments get the true-casing pre-pass first.
func NewPOSExtractor(name string, oracles nlp.Oracles) Extractor {
	return &posExtractor{name: name, oracles: oracles}
}

func (p *posExtractor) Name() string { return p.name }

func (p *posExtractor) Extract(hyp models.Hypothesis) (models.FeatureVector, error) {
	counts := map[string]float64{}
	for _, class := range posClasses {
		counts[class] = 0
	}

	numWords := 0
	for i, tt := range hyp {
		tokens := make([]string, 0, len(tt.Tokens))
		for _, tok := range tt.Tokens {
			if tok == "" || textnorm.IsNonVerbal(tok) {
				continue
			}
			tokens = append(tokens, tok)
		}
		if len(tokens) == 0 {
			continue
		}

		text := strings.Join(tokens, " ")
		if nlp.IsLowercase(text) {
			text = p.oracles.TrueCaser.TrueCase(text)
		}

		tagged, err := p.oracles.Tagger.Tag(strings.Split(text, " "))
		if err != nil {
			var tagErr *nlp.TagError
			if errors.As(err, &tagErr) {
				slog.Warn("excluding segment from pos features: tagger failed",
					"segment_index", i, "error", err)
				continue
			}
			return nil, err
		}

		// Proportions are of the spoken word count, not of however many
		// tokens the tagger splits the text into.
		numWords += len(tokens)
		for _, tok := range tagged {
			countTag(tok.Tag, counts)
		}
	}

	fv := models.FeatureVector{}
	addPOSRatios(counts, fv)
	for _, class := range posClasses {
		if numWords > 0 {
			fv[class] = counts[class] / float64(numWords)
		} else {
			fv[class] = math.NaN()
		}
	}
	return fv, nil
}

// countTag dispatches one Penn tag into the coarse class counts. Pronouns
// count as nouns as well as their own class; wh-words split by their
// subtype.
func countTag(tag string, counts map[string]float64) {
	switch {
	case strings.HasPrefix(tag, "J"):
		counts["ADJ"]++
	case strings.HasPrefix(tag, "V"):
		counts["VERB"]++
	case strings.HasPrefix(tag, "N"):
		counts["NOUN"]++
	case strings.HasPrefix(tag, "R"):
		counts["ADV"]++
	case strings.HasPrefix(tag, "D"):
		counts["DET"]++
	case strings.HasPrefix(tag, "U"):
		counts["INT"]++
	case strings.HasPrefix(tag, "I"), strings.HasPrefix(tag, "T"):
		counts["PREP"]++
	case tag == "CC":
		counts["CC"]++
	case tag == "PRP":
		counts["NOUN"]++
		counts["PNOUN"]++
	case tag == "PRP$":
		counts["PSNOUN"]++
		counts["NOUN"]++
	case strings.HasPrefix(tag, "W"):
		switch {
		case len(tag) > 1 && tag[1] == 'D':
			counts["DET"]++
		case len(tag) > 1 && tag[1] == 'R':
			counts["ADV"]++
		case strings.HasSuffix(tag, "P"):
			counts["PNOUN"]++
			counts["NOUN"]++
		default:
			counts["PSNOUN"]++
		}
	}
}

// addPOSRatios derives the usage ratios from raw class counts, NaN when a
// denominator is zero.
func addPOSRatios(counts map[string]float64, fv models.FeatureVector) {
	ratio := func(num, den float64) float64 {
		if den == 0 {
			return math.NaN()
		}
		return num / den
	}
	fv["adj_ratio"] = ratio(counts["ADJ"], counts["VERB"])
	fv["v_ratio"] = ratio(counts["NOUN"], counts["VERB"])
	fv["n_ratio"] = ratio(counts["NOUN"], counts["VERB"]+counts["NOUN"])
	fv["pn_ratio"] = ratio(counts["PNOUN"], counts["NOUN"])
	fv["sc_ratio"] = ratio(counts["PREP"], counts["CC"])
}
