package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/phonolab/sgraph/internal/orchestration"
)

// newProgressReporter returns a listener that prints run progress. In
// verbose mode every group gets a line; otherwise only skips and the run
// bookends are printed.
func newProgressReporter(w io.Writer, verbose bool) orchestration.ProgressListener {
	var mu sync.Mutex

	return func(event orchestration.ProgressEvent) {
		mu.Lock()
		defer mu.Unlock()

		switch event.EventType {
		case orchestration.EventRunStart:
			fmt.Fprintf(w, "Extracting features for %d group(s)\n", event.TotalGroups)
		case orchestration.EventGroupComplete:
			if verbose {
				fmt.Fprintf(w, "  [%d/%d] %s: %d features (%dms)\n",
					event.GroupNum, event.TotalGroups, event.GroupID, event.Features, event.DurationMs)
			}
		case orchestration.EventGroupSkipped:
			fmt.Fprintf(w, "  [skip] %s: %s\n", event.GroupID, event.Reason)
		case orchestration.EventRunComplete:
			fmt.Fprintf(w, "Done in %dms\n", event.DurationMs)
		}
	}
}
