package features

import (
	"math"

	"github.com/phonolab/sgraph/internal/models"
)

type nonVerbalExtractor struct {
	name string
}

// NewNonVerbalExtractor returns the non-verbal expression feature set: the
// ratio of each ASR non-speech placeholder to the total token count. It
// runs on un-normalized tokens; the markers are exactly what it measures.
func NewNonVerbalExtractor(name string) Extractor {
	return &nonVerbalExtractor{name: name}
}

func (n *nonVerbalExtractor) Name() string { return n.name }

func (n *nonVerbalExtractor) Extract(hyp models.Hypothesis) (models.FeatureVector, error) {
	var laughter, noise, unk, total float64
	for _, tt := range hyp {
		for _, tok := range tt.Tokens {
			total++
			switch tok {
			case "[laughter]":
				laughter++
			case "[noise]":
				noise++
			case "<unk>":
				unk++
			}
		}
	}

	fv := models.FeatureVector{}
	if total == 0 {
		fv["laughter"] = math.NaN()
		fv["noise"] = math.NaN()
		fv["unk"] = math.NaN()
		return fv, nil
	}
	fv["laughter"] = laughter / total
	fv["noise"] = noise / total
	fv["unk"] = unk / total
	return fv, nil
}
