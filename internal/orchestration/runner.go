// Package orchestration drives a full extraction run: load, group,
// extract, average, collect.
package orchestration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/phonolab/sgraph/internal/aggregate"
	"github.com/phonolab/sgraph/internal/features"
	"github.com/phonolab/sgraph/internal/metadata"
	"github.com/phonolab/sgraph/internal/models"
	"github.com/phonolab/sgraph/internal/transcripts"
)

// Runner executes one extraction run described by a spec.
type Runner struct {
	spec *models.RunSpec
	deps features.Deps

	// Progress tracking
	progressMu sync.Mutex
	listeners  []ProgressListener
}

// ProgressListener receives progress updates
type ProgressListener func(event ProgressEvent)

// EventType represents the type of progress event
type EventType string

const (
	EventRunStart      EventType = "run_start"
	EventRunComplete   EventType = "run_complete"
	EventGroupStart    EventType = "group_start"
	EventGroupComplete EventType = "group_complete"
	EventGroupSkipped  EventType = "group_skipped"
)

// ProgressEvent represents a progress update
type ProgressEvent struct {
	EventType   EventType
	GroupID     string
	GroupNum    int
	TotalGroups int
	Features    int
	Reason      string
	DurationMs  int64
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithListener registers a progress listener at construction time.
func WithListener(listener ProgressListener) RunnerOption {
	return func(r *Runner) {
		r.listeners = append(r.listeners, listener)
	}
}

// NewRunner creates a runner for one spec. The deps carry the tagging and
// lemmatization services shared by every worker.
func NewRunner(spec *models.RunSpec, deps features.Deps, opts ...RunnerOption) *Runner {
	r := &Runner{
		spec:      spec,
		deps:      deps,
		listeners: []ProgressListener{},
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// OnProgress registers a progress listener
func (r *Runner) OnProgress(listener ProgressListener) {
	r.progressMu.Lock()
	defer r.progressMu.Unlock()
	r.listeners = append(r.listeners, listener)
}

func (r *Runner) notifyProgress(event ProgressEvent) {
	r.progressMu.Lock()
	listeners := make([]ProgressListener, len(r.listeners))
	copy(listeners, r.listeners)
	r.progressMu.Unlock()

	for _, listener := range listeners {
		listener(event)
	}
}

// Outcome is the collected result of one run.
type Outcome struct {
	RunID    string
	SpecName string
	Level    models.Level
	Started  time.Time
	Duration time.Duration

	Rows    []models.FeatureRow
	Skipped []models.SkippedGroup

	// FeatureNames is the schema of every row, in output column order.
	FeatureNames []string
}

// Run executes the full pipeline. Groups with data-integrity problems are
// skipped and reported; any other failure aborts the run.
func (r *Runner) Run(ctx context.Context) (*Outcome, error) {
	started := time.Now()
	runID := uuid.NewString()
	slog.Info("starting run", "run_id", runID, "spec", r.spec.Name, "level", r.spec.Config.Level)

	level, err := models.ParseLevel(r.spec.Config.Level)
	if err != nil {
		return nil, err
	}

	table, err := metadata.Load(r.spec.MetadataPath)
	if err != nil {
		return nil, err
	}

	segments, skipped, err := transcripts.ReadDir(ctx, r.spec.TranscriptDir)
	if err != nil {
		return nil, err
	}

	joined, err := aggregate.Join(segments, table)
	if err != nil {
		return nil, err
	}

	bundles, groupSkips := aggregate.Group(joined, level)
	skipped = append(skipped, groupSkips...)
	for _, skip := range skipped {
		r.notifyProgress(ProgressEvent{
			EventType: EventGroupSkipped,
			GroupID:   skip.Key.ID(),
			Reason:    skip.Reason,
		})
	}

	extractor, err := features.NewComposite(r.configuredExtractors(), r.deps)
	if err != nil {
		return nil, err
	}

	r.notifyProgress(ProgressEvent{
		EventType:   EventRunStart,
		TotalGroups: len(bundles),
	})

	var rows []models.FeatureRow
	if r.spec.Config.Concurrent {
		rows, skipped, err = r.runConcurrent(ctx, bundles, extractor, skipped)
	} else {
		rows, skipped, err = r.runSequential(ctx, bundles, extractor, skipped)
	}
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{
		RunID:    runID,
		SpecName: r.spec.Name,
		Level:    level,
		Started:  started,
		Duration: time.Since(started),
		Rows:     rows,
		Skipped:  skipped,
	}
	if len(rows) > 0 {
		outcome.FeatureNames = rows[0].Features.Names()
	}

	r.notifyProgress(ProgressEvent{
		EventType:   EventRunComplete,
		TotalGroups: len(bundles),
		DurationMs:  outcome.Duration.Milliseconds(),
	})
	slog.Info("run complete", "run_id", runID,
		"rows", len(rows), "skipped", len(skipped), "duration", outcome.Duration)
	return outcome, nil
}

// configuredExtractors applies the run-level stopword setting as the
// default for graph feature sets that don't set their own.
func (r *Runner) configuredExtractors() []models.ExtractorConfig {
	cfgs := make([]models.ExtractorConfig, len(r.spec.Extractors))
	copy(cfgs, r.spec.Extractors)
	if !r.spec.Config.RemoveStopwords {
		return cfgs
	}
	for i, cfg := range cfgs {
		if features.Type(cfg.Type) != features.TypeGraph {
			continue
		}
		params := map[string]any{}
		for k, v := range cfg.Parameters {
			params[k] = v
		}
		if _, set := params["remove_stopwords"]; !set {
			params["remove_stopwords"] = true
		}
		cfgs[i].Parameters = params
	}
	return cfgs
}

func (r *Runner) runSequential(ctx context.Context, bundles []models.HypothesisBundle, extractor features.Extractor, skipped []models.SkippedGroup) ([]models.FeatureRow, []models.SkippedGroup, error) {
	var rows []models.FeatureRow
	for i, bundle := range bundles {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		row, skip, err := r.runGroup(bundle, extractor, i+1, len(bundles))
		if err != nil {
			return nil, nil, err
		}
		if skip != nil {
			skipped = append(skipped, *skip)
			continue
		}
		rows = append(rows, *row)
	}
	return rows, skipped, nil
}

func (r *Runner) runConcurrent(ctx context.Context, bundles []models.HypothesisBundle, extractor features.Extractor, skipped []models.SkippedGroup) ([]models.FeatureRow, []models.SkippedGroup, error) {
	workers := r.spec.Config.Workers
	if workers <= 0 {
		workers = 4
	}

	type result struct {
		index int
		row   *models.FeatureRow
		skip  *models.SkippedGroup
		err   error
	}

	resultChan := make(chan result, len(bundles))
	semaphore := make(chan struct{}, workers)

	var wg sync.WaitGroup

	for i, bundle := range bundles {
		wg.Add(1)
		go func(idx int, bundle models.HypothesisBundle) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if err := ctx.Err(); err != nil {
				resultChan <- result{index: idx, err: err}
				return
			}

			row, skip, err := r.runGroup(bundle, extractor, idx+1, len(bundles))
			resultChan <- result{index: idx, row: row, skip: skip, err: err}
		}(i, bundle)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	ordered := make([]result, len(bundles))
	for res := range resultChan {
		ordered[res.index] = res
	}

	var rows []models.FeatureRow
	for _, res := range ordered {
		if res.err != nil {
			return nil, nil, res.err
		}
		if res.skip != nil {
			skipped = append(skipped, *res.skip)
			continue
		}
		rows = append(rows, *res.row)
	}
	return rows, skipped, nil
}

// runGroup averages one group's hypotheses through the extractor set. An
// integrity error becomes a skip; anything else aborts the run.
func (r *Runner) runGroup(bundle models.HypothesisBundle, extractor features.Extractor, groupNum, totalGroups int) (*models.FeatureRow, *models.SkippedGroup, error) {
	r.notifyProgress(ProgressEvent{
		EventType:   EventGroupStart,
		GroupID:     bundle.Key.ID(),
		GroupNum:    groupNum,
		TotalGroups: totalGroups,
	})

	groupStart := time.Now()
	fv, err := features.Average(bundle, extractor)
	if err != nil {
		var integrity *models.IntegrityError
		if errors.As(err, &integrity) {
			slog.Warn("skipping group", "group", bundle.Key.ID(), "error", err)
			r.notifyProgress(ProgressEvent{
				EventType:   EventGroupSkipped,
				GroupID:     bundle.Key.ID(),
				GroupNum:    groupNum,
				TotalGroups: totalGroups,
				Reason:      integrity.Detail,
			})
			return nil, &models.SkippedGroup{Key: bundle.Key, Reason: integrity.Detail}, nil
		}
		return nil, nil, fmt.Errorf("group %s: %w", bundle.Key.ID(), err)
	}

	r.notifyProgress(ProgressEvent{
		EventType:   EventGroupComplete,
		GroupID:     bundle.Key.ID(),
		GroupNum:    groupNum,
		TotalGroups: totalGroups,
		Features:    len(fv),
		DurationMs:  time.Since(groupStart).Milliseconds(),
	})
	return &models.FeatureRow{Key: bundle.Key, Features: fv}, nil, nil
}
