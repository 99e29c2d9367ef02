package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess    = 0 // All accounts graded at or above the threshold
	ExitBelowGrade = 1 // One or more accounts graded below --fail-below
	ExitError      = 2 // Configuration, input or runtime error
)

// GradeBelowError indicates that grading succeeded but at least one account
// scored below the requested letter grade.
type GradeBelowError struct {
	Message string
}

func (e *GradeBelowError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var belowErr *GradeBelowError
		if errors.As(err, &belowErr) {
			os.Exit(ExitBelowGrade)
		}
		os.Exit(ExitError)
	}
}
