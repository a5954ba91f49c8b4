package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is one utterance span from a single call, carrying every ASR
// hypothesis produced for that span. Segments are built once when a
// transcript file is parsed and never mutated afterwards.
type Segment struct {
	SubjectID string `json:"subject_id"`
	CallID    string `json:"call_id"`
	SegmentID string `json:"segment_id"`

	// Start and End are integer timestamps in whatever unit the dataset
	// uses; only their ordering matters to the pipeline.
	Start int `json:"segment_start"`
	End   int `json:"segment_end"`

	// Metadata fields joined in from the grouping table.
	Week string `json:"week,omitempty"`
	Day  string `json:"day,omitempty"`
	Date string `json:"date,omitempty"`
	Time string `json:"time,omitempty"`

	// Hypotheses holds one token sequence per ASR hypothesis index.
	Hypotheses [][]string `json:"segment_hypotheses"`
}

// HypothesisCount returns the number of ASR hypotheses recorded for this
// segment.
func (s *Segment) HypothesisCount() int {
	return len(s.Hypotheses)
}

// ParseSegmentSpan extracts the (start, end) pair from a segment id of the
// form "<...>_<start>_<end>". Everything before the final two underscore
// fields is opaque.
func ParseSegmentSpan(segmentID string) (start, end int, err error) {
	parts := strings.Split(segmentID, "_")
	if len(parts) < 3 {
		return 0, 0, fmt.Errorf("segment id %q: want at least 3 underscore-separated fields, got %d", segmentID, len(parts))
	}
	start, err = strconv.Atoi(parts[len(parts)-2])
	if err != nil {
		return 0, 0, fmt.Errorf("segment id %q: start is not an integer: %w", segmentID, err)
	}
	end, err = strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return 0, 0, fmt.Errorf("segment id %q: end is not an integer: %w", segmentID, err)
	}
	return start, end, nil
}
