package features

import (
	"math"

	"github.com/phonolab/sgraph/internal/models"
	"github.com/phonolab/sgraph/internal/textnorm"
	"github.com/phonolab/sgraph/internal/wordgraph"
)

// GraphArgs holds the graph feature set's parameters.
type GraphArgs struct {
	// RemoveStopwords additionally strips stopwords before building the
	// graphs; segments left empty are dropped with the usual rule.
	RemoveStopwords bool `mapstructure:"remove_stopwords"`
}

type graphExtractor struct {
	name            string
	removeStopwords bool
	stopwords       map[string]struct{}
	builder         *wordgraph.Builder
}

// NewGraphExtractor returns the speech-graph feature set: the full metric
// battery for each of the naive, lemma, and pos graph variants, plus a
// token-count-normalized copy of every metric.
func NewGraphExtractor(name string, args GraphArgs, deps Deps) Extractor {
	return &graphExtractor{
		name:            name,
		removeStopwords: args.RemoveStopwords,
		stopwords:       deps.Stopwords,
		builder:         wordgraph.NewBuilder(deps.Oracles),
	}
}

func (g *graphExtractor) Name() string { return g.name }

func (g *graphExtractor) Extract(hyp models.Hypothesis) (models.FeatureVector, error) {
	segments := textnorm.Normalize(hyp.TokenSegments(), g.removeStopwords, g.stopwords)

	fv := models.FeatureVector{}
	for _, variant := range wordgraph.Variants() {
		graph, err := g.builder.Build(segments, variant)
		if err != nil {
			return nil, err
		}
		for metric, value := range wordgraph.Compute(graph) {
			fv[metric+"_"+string(variant)] = value
		}
	}

	wordCount := 0
	for _, segment := range segments {
		wordCount += len(segment)
	}
	addNormalized(fv, wordCount)
	return fv, nil
}

// addNormalized adds a _norm copy of every feature divided by the cleaned
// transcript's token count, NaN when the transcript is empty.
func addNormalized(fv models.FeatureVector, wordCount int) {
	for _, name := range fv.Names() {
		if wordCount > 0 {
			fv[name+"_norm"] = fv[name] / float64(wordCount)
		} else {
			fv[name+"_norm"] = math.NaN()
		}
	}
}
