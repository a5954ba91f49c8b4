package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess = 0 // Every group produced a feature row
	ExitSkipped = 1 // Run completed but some groups were skipped
	ExitError   = 2 // Configuration or runtime error
)

// SkippedGroupsError indicates that the run completed, but one or more
// groups had data-integrity problems and produced no output row.
type SkippedGroupsError struct {
	Count int
}

func (e *SkippedGroupsError) Error() string {
	return fmt.Sprintf("%d group(s) were skipped", e.Count)
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		// Check error type to determine exit code
		var skippedErr *SkippedGroupsError
		if errors.As(err, &skippedErr) {
			os.Exit(ExitSkipped)
		}

		// All other errors are configuration/runtime errors
		os.Exit(ExitError)
	}
}
