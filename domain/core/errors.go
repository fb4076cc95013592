package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Data errors
	ErrEmptyDataset     = errors.New("dataset is empty")
	ErrSchemaMismatch   = errors.New("record does not match dataset schema")
	ErrEmptyClass       = errors.New("class has no records")
	ErrInsufficientData = errors.New("insufficient data for analysis")

	// Configuration errors
	ErrInvalidFraction = errors.New("fraction must be in (0,1)")
	ErrInvalidFolds    = errors.New("fold count must be at least 2")
	ErrEmptyGrid       = errors.New("hyperparameter grid is empty")
	ErrUnknownFamily   = errors.New("unknown model family")

	// Evaluation errors
	ErrUndefinedRate = errors.New("rate undefined: zero denominator")
	ErrDegenerateFold = errors.New("degenerate fold: single class present")
)

// NewDataError reports a data error with the offending location identified.
func NewDataError(row int, column string, cause error) error {
	return fmt.Errorf("row %d column %q: %w", row, column, cause)
}

// NewClassError reports an empty or degenerate class by name.
func NewClassError(class string, cause error) error {
	return fmt.Errorf("class %q: %w", class, cause)
}

// IsConfigurationError reports whether err is a fail-fast configuration error.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidFraction) ||
		errors.Is(err, ErrInvalidFolds) ||
		errors.Is(err, ErrEmptyGrid) ||
		errors.Is(err, ErrUnknownFamily)
}
