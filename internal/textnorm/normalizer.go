// Package textnorm cleans raw ASR token sequences before feature
// extraction: non-verbal markers and empty tokens are removed, stopword
// removal is optional, and segments that end up empty are dropped entirely.
package textnorm

import (
	_ "embed"
	"strings"
)

//go:embed stopwords.txt
var stopwordData string

// nonVerbalMarkers is the closed set of placeholders the ASR models emit for
// non-speech events. Matching is exact.
var nonVerbalMarkers = map[string]struct{}{
	"[noise]":    {},
	"[laughter]": {},
	"<unk>":      {},
}

// IsNonVerbal reports whether a token is a non-speech placeholder.
func IsNonVerbal(token string) bool {
	_, ok := nonVerbalMarkers[token]
	return ok
}

// DefaultStopwords returns the embedded stopword set. The returned map is
// freshly built on every call so callers may extend it.
func DefaultStopwords() map[string]struct{} {
	set := make(map[string]struct{})
	for _, line := range strings.Split(stopwordData, "\n") {
		word := strings.TrimSpace(line)
		if word != "" {
			set[word] = struct{}{}
		}
	}
	return set
}

// Normalize filters every segment: empty tokens and non-verbal markers are
// always removed, and tokens in stopwords are removed when removeStopwords
// is set. Segments left empty contribute nothing to the result. The input is
// never mutated.
func Normalize(segments [][]string, removeStopwords bool, stopwords map[string]struct{}) [][]string {
	cleaned := make([][]string, 0, len(segments))
	for _, segment := range segments {
		kept := make([]string, 0, len(segment))
		for _, token := range segment {
			if token == "" || IsNonVerbal(token) {
				continue
			}
			if removeStopwords {
				if _, stop := stopwords[token]; stop {
					continue
				}
			}
			kept = append(kept, token)
		}
		if len(kept) > 0 {
			cleaned = append(cleaned, kept)
		}
	}
	return cleaned
}
