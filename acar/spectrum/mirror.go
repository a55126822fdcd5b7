package spectrum

import (
	"fmt"

	"github.com/cwbudde/algo-acar/acar"
)

// Mirror reflects a half spectrum about zero momentum.
//
// The result has 2n-1 samples: (-m[n-1], r[n-1]) ... (-m[1], r[1]) followed by
// the input. The sample nearest zero is not duplicated. All momenta of half
// must be >= 0.
func Mirror(half *Spectrum) (*Spectrum, error) {
	if half == nil || half.Len() < 2 {
		return nil, fmt.Errorf("%w: mirror needs a spectrum with at least 2 samples", acar.ErrInvalidInput)
	}
	if half.momentum[0] < 0 {
		return nil, fmt.Errorf("%w: mirror needs non-negative momenta, first is %g", acar.ErrInvalidInput, half.momentum[0])
	}

	n := half.Len()
	momentum := make([]float64, 2*n-1)
	rate := make([]float64, 2*n-1)

	for i := n - 1; i >= 1; i-- {
		j := n - 1 - i
		momentum[j] = -half.momentum[i]
		rate[j] = half.rate[i]
	}
	copy(momentum[n-1:], half.momentum)
	copy(rate[n-1:], half.rate)

	// A positive first momentum leaves a wider step at the junction; the axis
	// is still strictly increasing.
	return &Spectrum{momentum: momentum, rate: rate}, nil
}
