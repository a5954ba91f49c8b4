package nlp

import (
	"strings"

	"github.com/jdkato/prose/v2"
)

// ProseTagger tags segments with the prose NLP library. It is stateless and
// safe for concurrent use.
type ProseTagger struct{}

// NewProseTagger returns a Penn Treebank tagger backed by prose.
func NewProseTagger() ProseTagger {
	return ProseTagger{}
}

// Tag joins the tokens into the segment's text, runs prose tokenization and
// tagging over it, and returns the tagged sequence. Sentence segmentation
// and entity extraction are disabled; only tagging is needed.
func (ProseTagger) Tag(tokens []string) ([]TaggedToken, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	doc, err := prose.NewDocument(
		strings.Join(tokens, " "),
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, &TagError{Cause: err}
	}

	proseTokens := doc.Tokens()
	tagged := make([]TaggedToken, 0, len(proseTokens))
	for _, tok := range proseTokens {
		tagged = append(tagged, TaggedToken{Text: tok.Text, Tag: tok.Tag})
	}
	return tagged, nil
}
