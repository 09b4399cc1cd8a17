package visualization

import "errors"

var (
	// ErrNoFeatures is returned when a projection is requested without feature columns.
	ErrNoFeatures = errors.New("visualization: no features selected for t-SNE")

	// ErrColumnNotFound is returned when a named column is not in the table.
	ErrColumnNotFound = errors.New("visualization: column not found")

	// ErrNotNumeric is returned when a label column is used where numbers are needed.
	ErrNotNumeric = errors.New("visualization: column is not numeric")

	ErrDuplicateColumn = errors.New("visualization: duplicate column")
	ErrRowMismatch     = errors.New("visualization: row count mismatch")
	ErrEmptyTable      = errors.New("visualization: table has no rows")
	ErrNoDimensions    = errors.New("visualization: no dimensions given")

	// ErrTooFewSamples is returned when an embedding needs more rows than it got.
	ErrTooFewSamples = errors.New("visualization: too few samples")
)
