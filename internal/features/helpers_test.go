package features

import (
	"errors"
	"strings"

	"github.com/phonolab/sgraph/internal/models"
	"github.com/phonolab/sgraph/internal/nlp"
)

// hypothesisOf builds a single-hypothesis token layout from bare segments.
func hypothesisOf(segments ...[]string) models.Hypothesis {
	hyp := make(models.Hypothesis, 0, len(segments))
	for i, tokens := range segments {
		hyp = append(hyp, models.TimedTokens{Start: i * 10, End: i*10 + 5, Tokens: tokens})
	}
	return hyp
}

type tableTagger struct {
	tags map[string]string
	err  error
}

func (f tableTagger) Tag(tokens []string) ([]nlp.TaggedToken, error) {
	if f.err != nil {
		return nil, f.err
	}
	tagged := make([]nlp.TaggedToken, 0, len(tokens))
	for _, tok := range tokens {
		tag := "NN"
		if t, ok := f.tags[strings.ToLower(tok)]; ok {
			tag = t
		}
		tagged = append(tagged, nlp.TaggedToken{Text: tok, Tag: tag})
	}
	return tagged, nil
}

type passthroughLemmatizer struct{}

func (passthroughLemmatizer) Lemma(token, posTag string) string {
	return strings.ToLower(token)
}

type identityCaser struct{}

func (identityCaser) TrueCase(text string) string { return text }

func testDeps(tags map[string]string) Deps {
	return Deps{
		Oracles: nlp.Oracles{
			Tagger:     tableTagger{tags: tags},
			Lemmatizer: passthroughLemmatizer{},
			TrueCaser:  identityCaser{},
		},
		Stopwords: map[string]struct{}{"the": {}, "a": {}},
	}
}

// stubExtractor returns canned vectors in sequence, for averager tests.
type stubExtractor struct {
	vectors []models.FeatureVector
	calls   int
	err     error
}

func (s *stubExtractor) Name() string { return "stub" }

func (s *stubExtractor) Extract(models.Hypothesis) (models.FeatureVector, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.calls >= len(s.vectors) {
		return nil, errors.New("stub exhausted")
	}
	fv := s.vectors[s.calls]
	s.calls++
	return fv, nil
}
