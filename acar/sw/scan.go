package sw

import (
	"fmt"
	"sort"

	"github.com/cwbudde/algo-acar/acar"
	"github.com/cwbudde/algo-acar/acar/spectrum"
	"github.com/cwbudde/algo-acar/dsp/core"
)

// Scan returns S for each core cut in cuts using sampled boundaries. It runs
// one cumulative integration instead of one per cut.
func Scan(s *spectrum.Spectrum, cuts []float64) ([]float64, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil spectrum", acar.ErrInvalidInput)
	}

	x := s.Momentum()
	y := s.Rate()

	cum := make([]float64, len(x))
	for i := 1; i < len(x); i++ {
		cum[i] = cum[i-1] + 0.5*(x[i]-x[i-1])*(y[i]+y[i-1])
	}

	total, err := totalArea(x, y)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(cuts))
	for i, c := range cuts {
		if !core.IsFinite(c) {
			return nil, fmt.Errorf("%w: cut %d is not finite: %v", acar.ErrInvalidParameter, i, c)
		}
		end := sort.Search(len(x), func(j int) bool { return x[j] > c })
		if end < 2 {
			return nil, fmt.Errorf("%w: S cut %g holds %d samples, need at least 2", acar.ErrInvalidInput, c, end)
		}
		out[i] = cum[end-1] / total
	}
	return out, nil
}
