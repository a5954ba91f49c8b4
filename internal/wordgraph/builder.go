package wordgraph

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/phonolab/sgraph/internal/nlp"
)

// Builder constructs word graphs from cleaned segments. The three variants
// are independent graphs over the same underlying segment set; a build never
// mutates its input.
type Builder struct {
	oracles nlp.Oracles
}

// NewBuilder returns a builder using the given language oracles. The naive
// variant needs none of them; lemma and pos need the tagger, and lemma
// additionally needs the lemmatizer.
func NewBuilder(oracles nlp.Oracles) *Builder {
	return &Builder{oracles: oracles}
}

// Build constructs the graph for one variant. A tagger failure on a segment
// excludes that segment from the graph (logged, not fatal); any other
// failure aborts the build.
func (b *Builder) Build(segments [][]string, variant Variant) (*Graph, error) {
	switch variant {
	case VariantNaive:
		return b.buildNaive(segments), nil
	case VariantLemma:
		return b.buildTagged(segments, true)
	case VariantPOS:
		return b.buildTagged(segments, false)
	default:
		return nil, errors.New("unknown graph variant " + string(variant))
	}
}

func (b *Builder) buildNaive(segments [][]string) *Graph {
	g := New()
	for _, segment := range segments {
		lowered := make([]string, len(segment))
		for i, token := range segment {
			lowered[i] = strings.ToLower(token)
		}
		addSegment(g, lowered)
	}
	return g
}

// buildTagged builds the lemma graph (asLemma) or the pos graph. Fully
// lowercase segments are true-cased before tagging; Penn taggers lean on
// capitalization.
func (b *Builder) buildTagged(segments [][]string, asLemma bool) (*Graph, error) {
	g := New()
	for i, segment := range segments {
		if len(segment) == 0 {
			continue
		}

		text := strings.Join(segment, " ")
		if nlp.IsLowercase(text) {
			text = b.oracles.TrueCaser.TrueCase(text)
		}

		tagged, err := b.oracles.Tagger.Tag(strings.Split(text, " "))
		if err != nil {
			var tagErr *nlp.TagError
			if errors.As(err, &tagErr) {
				slog.Warn("excluding segment from graph: tagger failed",
					"segment_index", i, "error", err)
				continue
			}
			return nil, err
		}

		nodes := make([]string, len(tagged))
		for j, tok := range tagged {
			if asLemma {
				nodes[j] = b.oracles.Lemmatizer.Lemma(tok.Text, tok.Tag)
			} else {
				nodes[j] = tok.Tag
			}
		}
		addSegment(g, nodes)
	}
	return g, nil
}

// addSegment applies the shared edge rule: directed edges between adjacent
// tokens of one segment, an isolated node for a length-1 segment, nothing
// for an empty one.
func addSegment(g *Graph, tokens []string) {
	for i := 0; i+1 < len(tokens); i++ {
		g.AddEdge(tokens[i], tokens[i+1])
	}
	if len(tokens) == 1 {
		g.AddNode(tokens[0])
	}
}
