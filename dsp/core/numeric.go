// Package core holds the numeric predicates shared by the dsp and acar packages.
package core

import "math"

const defaultEpsilon = 1e-12

// NearlyEqual reports whether a and b are equal within eps.
// eps is used as an absolute tolerance near zero and as a relative
// tolerance otherwise. A non-positive eps selects 1e-12.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// IsFinite reports whether x is neither NaN nor an infinity.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// FirstNonFinite returns the index of the first NaN or Inf in x, or -1.
func FirstNonFinite(x []float64) int {
	for i, v := range x {
		if !IsFinite(v) {
			return i
		}
	}

	return -1
}

// Positive reports whether x is finite and strictly greater than zero.
func Positive(x float64) bool {
	return IsFinite(x) && x > 0
}
