package report

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// ErrNoMetrics: the header row yielded zero usable metric columns.
	// Fatal, nothing downstream can run.
	ErrNoMetrics = errors.New("no metric columns found in header row")

	// ErrEmptyResult: no numeric records survived extraction. Fatal, and
	// distinct from ErrNoMetrics so the user can tell "no usable data"
	// from "no metric columns".
	ErrEmptyResult = errors.New("no numeric records extracted from data region")

	// ErrInvalidLayout: the configured structural positions are impossible.
	ErrInvalidLayout = errors.New("invalid grid layout")
)

// NewLayoutError wraps a layout violation with its reason.
func NewLayoutError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidLayout, reason)
}

// IsFatal reports whether err aborts the whole pipeline run. Per-cell and
// per-row skip conditions never become errors at all, so everything that
// does surface here is fatal by construction.
func IsFatal(err error) bool {
	return errors.Is(err, ErrNoMetrics) ||
		errors.Is(err, ErrEmptyResult) ||
		errors.Is(err, ErrInvalidLayout)
}
