package nlp

import (
	"fmt"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

// WordClass is a coarse WordNet-style word class derived from a Penn tag.
type WordClass string

const (
	ClassAdjective WordClass = "adj"
	ClassVerb      WordClass = "verb"
	ClassNoun      WordClass = "noun"
	ClassAdverb    WordClass = "adv"
)

// ClassOf maps a Penn Treebank tag to its word class. Unrecognized tags map
// to noun, matching the WordNet lemmatizer convention the original metrics
// were validated against.
func ClassOf(pennTag string) WordClass {
	switch {
	case strings.HasPrefix(pennTag, "J"):
		return ClassAdjective
	case strings.HasPrefix(pennTag, "V"):
		return ClassVerb
	case strings.HasPrefix(pennTag, "R"):
		return ClassAdverb
	default:
		return ClassNoun
	}
}

// GolemLemmatizer looks lemmas up in the golem English dictionary, falling
// back to class-specific suffix stripping for words the dictionary misses.
// Safe for concurrent use once constructed.
type GolemLemmatizer struct {
	lem *golem.Lemmatizer
}

// NewGolemLemmatizer loads the English lemma dictionary.
func NewGolemLemmatizer() (*GolemLemmatizer, error) {
	lem, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("loading lemma dictionary: %w", err)
	}
	return &GolemLemmatizer{lem: lem}, nil
}

// Lemma returns the lemma of token. Lookup is case-insensitive and the
// result is lowercase, so lemma-graph node identity is never fragmented by
// casing.
func (g *GolemLemmatizer) Lemma(token, posTag string) string {
	lower := strings.ToLower(token)
	if g.lem.InDict(lower) {
		return strings.ToLower(g.lem.Lemma(lower))
	}
	return fallbackLemma(lower, ClassOf(posTag))
}

// fallbackLemma strips the most common inflectional suffix for the word
// class. It is deliberately conservative: a wrong strip fragments node
// identity worse than no strip.
func fallbackLemma(word string, class WordClass) string {
	switch class {
	case ClassVerb:
		for _, suffix := range []string{"ing", "ed", "es", "s"} {
			if trimmed, ok := stripSuffix(word, suffix, 3); ok {
				return trimmed
			}
		}
	case ClassNoun:
		for _, suffix := range []string{"es", "s"} {
			if trimmed, ok := stripSuffix(word, suffix, 3); ok {
				return trimmed
			}
		}
	}
	return word
}

// stripSuffix removes suffix from word if the remainder keeps at least
// minStem characters.
func stripSuffix(word, suffix string, minStem int) (string, bool) {
	if !strings.HasSuffix(word, suffix) {
		return word, false
	}
	stem := strings.TrimSuffix(word, suffix)
	if len(stem) < minStem {
		return word, false
	}
	return stem, true
}
