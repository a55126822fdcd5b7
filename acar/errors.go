package acar

import "errors"

// Error kinds shared by the processing packages.
var (
	// ErrInvalidParameter reports a non-positive, non-finite or out-of-range scalar.
	ErrInvalidParameter = errors.New("acar: invalid parameter")

	// ErrInvalidInput reports a malformed spectrum or a cut that selects too few samples.
	ErrInvalidInput = errors.New("acar: invalid input")

	// ErrNumericDegenerate reports a zero or non-finite normalization integral.
	ErrNumericDegenerate = errors.New("acar: numerically degenerate")
)
