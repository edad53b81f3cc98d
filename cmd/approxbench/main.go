package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Exit codes for different failure modes
const (
	ExitSuccess    = 0 // Every evaluation passed
	ExitGateFailed = 1 // A variant exceeded --max-abs-error
	ExitError      = 2 // Configuration or runtime error
)

// GateError indicates that the evaluation ran, but one or more variants
// exceeded the maximum absolute error threshold.
type GateError struct {
	Threshold float64
	Variants  []string
}

func (e *GateError) Error() string {
	return fmt.Sprintf("max abs error above %g: %s", e.Threshold, strings.Join(e.Variants, ", "))
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var gateErr *GateError
	if errors.As(err, &gateErr) {
		return ExitGateFailed
	}
	return ExitError
}
