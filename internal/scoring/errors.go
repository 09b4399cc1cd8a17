package scoring

import "errors"

var (
	// ErrShapeMismatch is returned when inputs disagree on row or column counts.
	ErrShapeMismatch = errors.New("scoring: shape mismatch")

	// ErrEmptyInput is returned when a required matrix or model is missing.
	ErrEmptyInput = errors.New("scoring: empty input")

	// ErrInvalidParameter is returned for out-of-range scalar parameters.
	ErrInvalidParameter = errors.New("scoring: invalid parameter")

	// ErrInvalidDirection is returned for an unknown optimisation direction.
	ErrInvalidDirection = errors.New("scoring: invalid optimisation direction")
)
