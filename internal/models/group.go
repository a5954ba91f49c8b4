package models

import (
	"fmt"
	"strings"
)

// Level selects the granularity that segments are grouped at before feature
// extraction.
type Level string

const (
	LevelSegment Level = "segment"
	LevelCall    Level = "call"
	LevelDay     Level = "day"
	LevelWeek    Level = "week"
	LevelSubject Level = "subject"
)

// ParseLevel converts a string flag or spec value to a Level.
func ParseLevel(s string) (Level, error) {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case LevelSegment:
		return LevelSegment, nil
	case LevelCall:
		return LevelCall, nil
	case LevelDay:
		return LevelDay, nil
	case LevelWeek:
		return LevelWeek, nil
	case LevelSubject:
		return LevelSubject, nil
	default:
		return "", fmt.Errorf("invalid level %q: must be segment, call, day, week, or subject", s)
	}
}

// KeyFields returns the id columns that identify one group at this level.
func (l Level) KeyFields() []string {
	switch l {
	case LevelSubject:
		return []string{"subject_id"}
	case LevelWeek:
		return []string{"subject_id", "week"}
	case LevelDay:
		return []string{"subject_id", "week", "day"}
	case LevelCall:
		return []string{"call_id"}
	default:
		// Segment ids are only unique within one call, so the call id is
		// part of the segment's identity.
		return []string{"call_id", "segment_id"}
	}
}

// GroupKey identifies one aggregation unit. Fields and Values are parallel
// and ordered; they become the leading columns of the output table.
type GroupKey struct {
	Fields []string
	Values []string
}

// ID returns a stable single-string identifier for the group, used in logs
// and skip reports.
func (k GroupKey) ID() string {
	return strings.Join(k.Values, "_")
}

func (k GroupKey) String() string {
	pairs := make([]string, len(k.Fields))
	for i, f := range k.Fields {
		pairs[i] = f + "=" + k.Values[i]
	}
	return strings.Join(pairs, " ")
}

// TimedTokens is the token sequence of one segment under one hypothesis,
// with the segment's span retained. Most extractors ignore the span.
type TimedTokens struct {
	Start  int
	End    int
	Tokens []string
}

// Hypothesis is one full transcript rendering: the hypothesis-k tokens of
// every segment in a group, in chronological order.
type Hypothesis []TimedTokens

// TokenSegments strips timing and returns the raw token lists.
func (h Hypothesis) TokenSegments() [][]string {
	segs := make([][]string, len(h))
	for i, tt := range h {
		segs[i] = tt.Tokens
	}
	return segs
}

// TokenCount returns the total number of tokens across all segments.
func (h Hypothesis) TokenCount() int {
	n := 0
	for _, tt := range h {
		n += len(tt.Tokens)
	}
	return n
}

// HypothesisBundle is the set of parallel transcript renderings for one
// group, one per ASR hypothesis index.
type HypothesisBundle struct {
	Key        GroupKey
	Hypotheses []Hypothesis
}
