// Package transcripts reads ASR transcript directories: one subdirectory
// per call, one file per recognition hypothesis, one line per segment.
package transcripts

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/sync/errgroup"

	"github.com/phonolab/sgraph/internal/models"
)

// ReadDir loads every call directory under root. Call directories are read
// concurrently; within a call, hypothesis files are read in sorted name
// order so hypothesis indexes are stable across runs. A call whose data
// cannot be parsed is returned as skipped, not as an error; the other calls
// still load.
func ReadDir(ctx context.Context, root string) ([]models.Segment, []models.SkippedGroup, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, nil, fmt.Errorf("transcripts: reading %s: %w", root, err)
	}

	var callIDs []string
	for _, entry := range entries {
		if entry.IsDir() {
			callIDs = append(callIDs, entry.Name())
		}
	}
	sort.Strings(callIDs)

	if len(callIDs) == 0 {
		return nil, nil, fmt.Errorf("transcripts: %s contains no call directories", root)
	}

	type callResult struct {
		segments []models.Segment
		skip     *models.SkippedGroup
	}

	results := make([]callResult, len(callIDs))
	group, ctx := errgroup.WithContext(ctx)
	for i, callID := range callIDs {
		i, callID := i, callID
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			segments, err := ReadCall(filepath.Join(root, callID), callID)
			if err != nil {
				var integrity *models.IntegrityError
				if errors.As(err, &integrity) {
					slog.Warn("skipping unparsable call", "call", callID, "error", err)
					results[i] = callResult{skip: &models.SkippedGroup{Key: integrity.Key, Reason: integrity.Detail}}
					return nil
				}
				return err
			}
			results[i] = callResult{segments: segments}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, nil, err
	}

	var segments []models.Segment
	var skipped []models.SkippedGroup
	for _, res := range results {
		segments = append(segments, res.segments...)
		if res.skip != nil {
			skipped = append(skipped, *res.skip)
		}
	}
	slog.Info("loaded transcripts",
		"calls", len(callIDs)-len(skipped), "skipped", len(skipped), "segments", len(segments))
	return segments, skipped, nil
}

// ReadCall loads a single call directory. Each file is one hypothesis;
// every hypothesis of a call should list the same segments, but missing
// lines are tolerated here and surface later as a hypothesis count
// mismatch. A segment id that cannot be parsed into a span is a
// data-integrity error for the whole call, returned as *models.IntegrityError.
func ReadCall(dir string, callID string) ([]models.Segment, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("transcripts: reading call %s: %w", callID, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	if len(files) == 0 {
		return nil, fmt.Errorf("transcripts: call %s has no hypothesis files", callID)
	}

	var order []string
	bySegment := map[string]*models.Segment{}

	for _, name := range files {
		lines, err := readLines(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("transcripts: call %s: %w", callID, err)
		}

		seen := map[string]bool{}
		for lineNo, line := range lines {
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			segmentID := fields[0]
			if seen[segmentID] {
				return nil, fmt.Errorf("transcripts: call %s: %s repeats segment %s at line %d",
					callID, name, segmentID, lineNo+1)
			}
			seen[segmentID] = true

			seg, ok := bySegment[segmentID]
			if !ok {
				start, end, err := models.ParseSegmentSpan(segmentID)
				if err != nil {
					return nil, &models.IntegrityError{
						Key:    models.GroupKey{Fields: []string{"call_id"}, Values: []string{callID}},
						Detail: fmt.Sprintf("%s line %d: %v", name, lineNo+1, err),
					}
				}
				seg = &models.Segment{
					CallID:    callID,
					SegmentID: segmentID,
					Start:     start,
					End:       end,
				}
				bySegment[segmentID] = seg
				order = append(order, segmentID)
			}
			seg.Hypotheses = append(seg.Hypotheses, fields[1:])
		}
	}

	segments := make([]models.Segment, 0, len(order))
	for _, id := range order {
		segments = append(segments, *bySegment[id])
	}
	return segments, nil
}

// readLines reads a hypothesis file, transparently decompressing .gz.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	var reader io.Reader = f
	if strings.EqualFold(filepath.Ext(path), ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("decompressing %s: %w", filepath.Base(path), err)
		}
		defer gz.Close() //nolint:errcheck
		reader = gz
	}

	var lines []string
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	return lines, nil
}
