// Package nlp defines the external language oracles the pipeline depends
// on. Each oracle is an explicitly constructed, immutable service passed to
// the components that need it, so tests can substitute fakes.
package nlp

import "fmt"

// TaggedToken is one token paired with its Penn Treebank part-of-speech tag.
type TaggedToken struct {
	Text string
	Tag  string
}

// Tagger assigns Penn Treebank tags to a tokenized segment. The returned
// sequence reflects the tagger's own tokenization of the segment text and is
// not guaranteed to be 1:1 with the input tokens.
type Tagger interface {
	Tag(tokens []string) ([]TaggedToken, error)
}

// Lemmatizer maps a token to its lemma, using the Penn tag to disambiguate
// the word class.
type Lemmatizer interface {
	Lemma(token, posTag string) string
}

// TrueCaser restores capitalization to text. It is used only as a pre-pass
// before tagging segments that are fully lowercase.
type TrueCaser interface {
	TrueCase(text string) string
}

// Oracles bundles the three language services.
type Oracles struct {
	Tagger     Tagger
	Lemmatizer Lemmatizer
	TrueCaser  TrueCaser
}

// DefaultOracles builds the production services: the prose tagger, the
// golem English lemmatizer, and the heuristic true-caser.
func DefaultOracles() (Oracles, error) {
	lemmatizer, err := NewGolemLemmatizer()
	if err != nil {
		return Oracles{}, fmt.Errorf("building lemmatizer: %w", err)
	}
	return Oracles{
		Tagger:     NewProseTagger(),
		Lemmatizer: lemmatizer,
		TrueCaser:  NewHeuristicTrueCaser(),
	}, nil
}

// TagError wraps a tagger failure for one segment. The caller excludes the
// segment from the hypothesis being processed and continues.
type TagError struct {
	Cause error
}

func (e *TagError) Error() string {
	return fmt.Sprintf("tagging segment: %v", e.Cause)
}

func (e *TagError) Unwrap() error { return e.Cause }
