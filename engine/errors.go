package engine

import "github.com/pkg/errors"

// ============================================================================
// ERRORS: Lookup failures surfaced by the grid and the assembler
// ============================================================================
// There is no validation layer. A figure fails at the first lookup that
// cannot be satisfied; callers match the cause with errors.Cause.
// ============================================================================

var (
	// ErrColumnNotFound is returned when a requested column is absent from the dataset.
	ErrColumnNotFound = errors.New("column not found")

	// ErrMissingCell is returned when a (time, category, column) combination
	// had no matching rows and therefore no grid entry.
	ErrMissingCell = errors.New("grid cell not found")

	// ErrEmptyDataset is returned when there is no row to build a base frame from.
	ErrEmptyDataset = errors.New("dataset has no rows")

	// ErrNonNumeric is returned when a range or size reference is computed
	// over a column that does not hold numbers.
	ErrNonNumeric = errors.New("column is not numeric")

	// ErrNoPositiveValues is returned when a log axis range is derived from
	// a column with no value above zero.
	ErrNoPositiveValues = errors.New("column has no positive values")
)
