package features

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/phonolab/sgraph/internal/models"
)

// Average runs the extractor once per hypothesis of the bundle and reduces
// the resulting vectors to one by per-feature arithmetic mean. NaN values
// propagate through the mean; a hypothesis with an undefined feature makes
// the averaged feature undefined too. All vectors must expose the same key
// set. A bundle with zero hypotheses is a data-integrity error.
func Average(bundle models.HypothesisBundle, extractor Extractor) (models.FeatureVector, error) {
	if len(bundle.Hypotheses) == 0 {
		return nil, &models.IntegrityError{Key: bundle.Key, Detail: "bundle has zero hypotheses"}
	}

	vectors := make([]models.FeatureVector, 0, len(bundle.Hypotheses))
	for i, hyp := range bundle.Hypotheses {
		fv, err := extractor.Extract(hyp)
		if err != nil {
			return nil, fmt.Errorf("hypothesis %d: %w", i, err)
		}
		if len(vectors) > 0 {
			if err := models.RequireSameNames(vectors[0], fv); err != nil {
				return nil, fmt.Errorf("hypothesis %d: %w", i, err)
			}
		}
		vectors = append(vectors, fv)
	}

	averaged := make(models.FeatureVector, len(vectors[0]))
	values := make([]float64, len(vectors))
	for name := range vectors[0] {
		for i, fv := range vectors {
			values[i] = fv[name]
		}
		averaged[name] = stat.Mean(values, nil)
	}
	return averaged, nil
}
