// Package aggregate turns flat segment lists into per-group hypothesis
// bundles at a chosen aggregation level.
package aggregate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/phonolab/sgraph/internal/metadata"
	"github.com/phonolab/sgraph/internal/models"
)

// Join attaches scheduling metadata to each segment by call id. Every call
// must be present in the table: a segment that cannot be placed on the
// study calendar cannot be grouped or sorted.
func Join(segments []models.Segment, table metadata.Table) ([]models.Segment, error) {
	joined := make([]models.Segment, len(segments))
	missing := map[string]bool{}
	for i, seg := range segments {
		entry, ok := table.Lookup(seg.CallID)
		if !ok {
			missing[seg.CallID] = true
			continue
		}
		seg.SubjectID = entry.SubjectID
		seg.Week = entry.Week
		seg.Day = entry.Day
		seg.Date = entry.Date
		seg.Time = entry.Time
		joined[i] = seg
	}

	if len(missing) > 0 {
		ids := make([]string, 0, len(missing))
		for id := range missing {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		return nil, fmt.Errorf("aggregate: no metadata for calls: %s", strings.Join(ids, ", "))
	}
	return joined, nil
}

// Group sorts segments chronologically, partitions them by the level's key
// fields, and assembles one hypothesis bundle per group. A group whose
// segments disagree on hypothesis count is returned as skipped rather than
// averaged over a ragged set; groups keep first-appearance order.
func Group(segments []models.Segment, level models.Level) ([]models.HypothesisBundle, []models.SkippedGroup) {
	ordered := make([]models.Segment, len(segments))
	copy(ordered, segments)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.Time != b.Time {
			return a.Time < b.Time
		}
		return a.Start < b.Start
	})

	var keys []models.GroupKey
	grouped := map[string][]models.Segment{}
	for _, seg := range ordered {
		key := keyFor(seg, level)
		id := key.ID()
		if _, ok := grouped[id]; !ok {
			keys = append(keys, key)
		}
		grouped[id] = append(grouped[id], seg)
	}

	var bundles []models.HypothesisBundle
	var skipped []models.SkippedGroup
	for _, key := range keys {
		members := grouped[key.ID()]

		bundle, err := assemble(key, members)
		if err != nil {
			skipped = append(skipped, models.SkippedGroup{Key: key, Reason: err.Error()})
			continue
		}
		bundles = append(bundles, bundle)
	}
	return bundles, skipped
}

// assemble concatenates each hypothesis index across the group's segments
// in their sorted order, keeping per-segment timing.
func assemble(key models.GroupKey, members []models.Segment) (models.HypothesisBundle, error) {
	count := members[0].HypothesisCount()
	for _, seg := range members {
		if seg.HypothesisCount() != count {
			return models.HypothesisBundle{}, &models.IntegrityError{
				Key: key,
				Detail: fmt.Sprintf("segment %s has %d hypotheses, group expects %d",
					seg.SegmentID, seg.HypothesisCount(), count),
			}
		}
	}

	hypotheses := make([]models.Hypothesis, count)
	for k := 0; k < count; k++ {
		hyp := make(models.Hypothesis, 0, len(members))
		for _, seg := range members {
			hyp = append(hyp, models.TimedTokens{
				Start:  seg.Start,
				End:    seg.End,
				Tokens: seg.Hypotheses[k],
			})
		}
		hypotheses[k] = hyp
	}
	return models.HypothesisBundle{Key: key, Hypotheses: hypotheses}, nil
}

func keyFor(seg models.Segment, level models.Level) models.GroupKey {
	fields := level.KeyFields()
	values := make([]string, len(fields))
	for i, field := range fields {
		switch field {
		case "subject_id":
			values[i] = seg.SubjectID
		case "week":
			values[i] = seg.Week
		case "day":
			values[i] = seg.Day
		case "call_id":
			values[i] = seg.CallID
		default:
			values[i] = seg.SegmentID
		}
	}
	return models.GroupKey{Fields: fields, Values: values}
}
