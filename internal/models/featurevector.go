package models

import (
	"fmt"
	"sort"
)

// FeatureVector maps feature names to values. NaN is a legal value and means
// "undefined for this input"; it is never silently dropped.
type FeatureVector map[string]float64

// Names returns the feature names in sorted order.
func (fv FeatureVector) Names() []string {
	names := make([]string, 0, len(fv))
	for name := range fv {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RequireSameNames verifies that two vectors expose exactly the same key
// set. The averager treats any difference as a programming error in the
// extractor, not as data to be patched over.
func RequireSameNames(a, b FeatureVector) error {
	if len(a) != len(b) {
		return fmt.Errorf("feature vectors have %d and %d entries", len(a), len(b))
	}
	for name := range a {
		if _, ok := b[name]; !ok {
			return fmt.Errorf("feature %q missing from second vector", name)
		}
	}
	return nil
}

// FeatureRow is one output row: the group identity plus its averaged
// features.
type FeatureRow struct {
	Key      GroupKey
	Features FeatureVector
}

// SkippedGroup records a group that produced no output row and why.
type SkippedGroup struct {
	Key    GroupKey
	Reason string
}

// IntegrityError is a per-group data error: the group is skipped, the run
// continues.
type IntegrityError struct {
	Key    GroupKey
	Detail string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("group %s: %s", e.Key.ID(), e.Detail)
}
