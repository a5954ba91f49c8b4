package nlp

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// IsLowercase reports whether the text contains no uppercase letters. Fully
// lowercase segments get a true-casing pre-pass before tagging because Penn
// taggers lean on capitalization cues.
func IsLowercase(text string) bool {
	return text == strings.ToLower(text)
}

// HeuristicTrueCaser capitalizes the sentence-initial token and the pronoun
// "I" (with its contractions). ASR output carries no other reliable casing
// signal, so anything beyond this would be guessing.
type HeuristicTrueCaser struct {
	caser cases.Caser
}

// NewHeuristicTrueCaser returns a true-caser for English text.
func NewHeuristicTrueCaser() *HeuristicTrueCaser {
	return &HeuristicTrueCaser{caser: cases.Title(language.English)}
}

var pronounForms = map[string]string{
	"i":    "I",
	"i'm":  "I'm",
	"i'll": "I'll",
	"i've": "I've",
	"i'd":  "I'd",
}

// TrueCase restores heuristic capitalization to a space-joined segment.
func (tc *HeuristicTrueCaser) TrueCase(text string) string {
	words := strings.Split(text, " ")
	for i, word := range words {
		if cased, ok := pronounForms[word]; ok {
			words[i] = cased
		} else if i == 0 && word != "" {
			words[i] = tc.caser.String(word)
		}
	}
	return strings.Join(words, " ")
}
