package interp

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Errors returned by Linear.
var (
	ErrLengthMismatch = errors.New("interp: x and y differ in length")
	ErrOutOfRange     = errors.New("interp: point outside sampled domain")
)

// Lerp returns a + t*(b-a).
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Linear evaluates the piecewise-linear interpolant of (x, y) at v. x must be
// strictly increasing. Points that coincide with a sample return that sample
// exactly.
func Linear(x, y []float64, v float64) (float64, error) {
	if len(x) != len(y) {
		return 0, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(x), len(y))
	}
	if len(x) == 0 || math.IsNaN(v) || v < x[0] || v > x[len(x)-1] {
		return 0, fmt.Errorf("%w: %g", ErrOutOfRange, v)
	}

	i := sort.SearchFloat64s(x, v)
	if x[i] == v {
		return y[i], nil
	}
	t := (v - x[i-1]) / (x[i] - x[i-1])
	return Lerp(y[i-1], y[i], t), nil
}
