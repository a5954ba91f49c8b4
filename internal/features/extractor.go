// Package features turns transcript hypotheses into feature vectors and
// reduces per-hypothesis vectors to one vector per group.
package features

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"github.com/phonolab/sgraph/internal/models"
	"github.com/phonolab/sgraph/internal/nlp"
)

// Type identifies a feature-set extractor.
type Type string

const (
	TypeGraph            Type = "graph"
	TypeLexicalDiversity Type = "lexical_diversity"
	TypePOS              Type = "pos"
	TypeNonVerbal        Type = "non_verbal"
	TypeVerbosity        Type = "verbosity"
)

// Extractor computes one feature set for a single transcript hypothesis.
// Implementations are pure with respect to the hypothesis: no shared
// mutable state survives between calls, so extractors are safe to run from
// multiple workers.
type Extractor interface {
	Name() string
	Extract(hyp models.Hypothesis) (models.FeatureVector, error)
}

// Deps carries the shared services extractors may need.
type Deps struct {
	Oracles   nlp.Oracles
	Stopwords map[string]struct{}
}

// New builds one extractor from its spec entry, decoding the parameter map
// into the extractor's own argument struct.
func New(cfg models.ExtractorConfig, deps Deps) (Extractor, error) {
	name := cfg.Identifier
	if name == "" {
		name = cfg.Type
	}

	switch Type(cfg.Type) {
	case TypeGraph:
		var args GraphArgs
		if err := mapstructure.Decode(cfg.Parameters, &args); err != nil {
			return nil, fmt.Errorf("graph feature set %q: %w", name, err)
		}
		return NewGraphExtractor(name, args, deps), nil

	case TypeLexicalDiversity:
		var args LexicalDiversityArgs
		if err := mapstructure.Decode(cfg.Parameters, &args); err != nil {
			return nil, fmt.Errorf("lexical_diversity feature set %q: %w", name, err)
		}
		return NewLexicalDiversityExtractor(name, args), nil

	case TypePOS:
		return NewPOSExtractor(name, deps.Oracles), nil

	case TypeNonVerbal:
		return NewNonVerbalExtractor(name), nil

	case TypeVerbosity:
		return NewVerbosityExtractor(name), nil

	default:
		return nil, fmt.Errorf("unknown feature set type %q", cfg.Type)
	}
}

// NewComposite builds every configured extractor and composes them into a
// single extractor whose output is the union of their feature sets.
func NewComposite(cfgs []models.ExtractorConfig, deps Deps) (Extractor, error) {
	extractors := make([]Extractor, 0, len(cfgs))
	for _, cfg := range cfgs {
		ex, err := New(cfg, deps)
		if err != nil {
			return nil, err
		}
		extractors = append(extractors, ex)
	}
	return &composite{extractors: extractors}, nil
}

type composite struct {
	extractors []Extractor
}

func (c *composite) Name() string { return "composite" }

func (c *composite) Extract(hyp models.Hypothesis) (models.FeatureVector, error) {
	merged := models.FeatureVector{}
	for _, ex := range c.extractors {
		fv, err := ex.Extract(hyp)
		if err != nil {
			return nil, fmt.Errorf("feature set %q: %w", ex.Name(), err)
		}
		for name, value := range fv {
			if _, dup := merged[name]; dup {
				return nil, fmt.Errorf("feature set %q: duplicate feature name %q", ex.Name(), name)
			}
			merged[name] = value
		}
	}
	return merged, nil
}
