// Package spectrum defines the sampled momentum distribution passed between
// the ACAR processing stages and the mirror operation that completes a
// calculated half spectrum.
package spectrum

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-acar/acar"
	"github.com/cwbudde/algo-acar/dsp/core"
)

// DefaultSpacingTolerance is the relative deviation allowed between any step
// of the momentum axis and the first step.
const DefaultSpacingTolerance = 1e-6

// Sample is one (momentum, annihilation rate) pair.
type Sample struct {
	Momentum float64
	Rate     float64
}

// Spectrum is an immutable sequence of samples on a strictly increasing,
// uniformly spaced momentum axis.
type Spectrum struct {
	momentum []float64
	rate     []float64
}

// Option configures spectrum validation.
type Option func(*options)

type options struct {
	spacingTol float64
}

// WithSpacingTolerance sets the relative tolerance of the uniform spacing
// check. Non-positive values are ignored.
func WithSpacingTolerance(rel float64) Option {
	return func(o *options) {
		if rel > 0 {
			o.spacingTol = rel
		}
	}
}

// New validates momentum and rate and returns a Spectrum holding copies of
// both slices.
func New(momentum, rate []float64, opts ...Option) (*Spectrum, error) {
	o := options{spacingTol: DefaultSpacingTolerance}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if len(momentum) != len(rate) {
		return nil, fmt.Errorf("%w: %d momentum values but %d rates", acar.ErrInvalidInput, len(momentum), len(rate))
	}
	if err := checkAxis(momentum); err != nil {
		return nil, err
	}
	if i := core.FirstNonFinite(rate); i >= 0 {
		return nil, fmt.Errorf("%w: rate[%d] = %v is not finite", acar.ErrInvalidInput, i, rate[i])
	}

	step := momentum[1] - momentum[0]
	for i := 2; i < len(momentum); i++ {
		d := momentum[i] - momentum[i-1]
		if math.Abs(d-step) > o.spacingTol*step {
			return nil, fmt.Errorf("%w: step %d is %g, first step is %g", acar.ErrInvalidInput, i-1, d, step)
		}
	}

	return build(momentum, rate), nil
}

// FromSamples is New for a slice of samples.
func FromSamples(samples []Sample, opts ...Option) (*Spectrum, error) {
	momentum := make([]float64, len(samples))
	rate := make([]float64, len(samples))
	for i, s := range samples {
		momentum[i] = s.Momentum
		rate[i] = s.Rate
	}
	return New(momentum, rate, opts...)
}

// checkAxis verifies length, finiteness and strict monotonicity.
func checkAxis(momentum []float64) error {
	if len(momentum) < 2 {
		return fmt.Errorf("%w: need at least 2 samples, got %d", acar.ErrInvalidInput, len(momentum))
	}
	if i := core.FirstNonFinite(momentum); i >= 0 {
		return fmt.Errorf("%w: momentum[%d] = %v is not finite", acar.ErrInvalidInput, i, momentum[i])
	}
	for i := 1; i < len(momentum); i++ {
		if momentum[i] <= momentum[i-1] {
			return fmt.Errorf("%w: momentum not strictly increasing at index %d (%g after %g)",
				acar.ErrInvalidInput, i, momentum[i], momentum[i-1])
		}
	}
	return nil
}

func build(momentum, rate []float64) *Spectrum {
	s := &Spectrum{
		momentum: make([]float64, len(momentum)),
		rate:     make([]float64, len(rate)),
	}
	copy(s.momentum, momentum)
	copy(s.rate, rate)
	return s
}

// Len returns the number of samples.
func (s *Spectrum) Len() int { return len(s.momentum) }

// Spacing returns the first step of the momentum axis.
func (s *Spectrum) Spacing() float64 { return s.momentum[1] - s.momentum[0] }

// Min returns the smallest momentum.
func (s *Spectrum) Min() float64 { return s.momentum[0] }

// Max returns the largest momentum.
func (s *Spectrum) Max() float64 { return s.momentum[len(s.momentum)-1] }

// Momentum returns a copy of the momentum axis.
func (s *Spectrum) Momentum() []float64 {
	out := make([]float64, len(s.momentum))
	copy(out, s.momentum)
	return out
}

// Rate returns a copy of the annihilation rates.
func (s *Spectrum) Rate() []float64 {
	out := make([]float64, len(s.rate))
	copy(out, s.rate)
	return out
}

// At returns sample i.
func (s *Spectrum) At(i int) Sample {
	return Sample{Momentum: s.momentum[i], Rate: s.rate[i]}
}

// Samples returns all samples in order.
func (s *Spectrum) Samples() []Sample {
	out := make([]Sample, len(s.momentum))
	for i := range out {
		out[i] = s.At(i)
	}
	return out
}

// PeakRate returns the largest rate.
func (s *Spectrum) PeakRate() float64 { return floats.Max(s.rate) }

// ScaleMomentum returns a spectrum whose momentum axis is multiplied by f.
func (s *Spectrum) ScaleMomentum(f float64) (*Spectrum, error) {
	if !core.Positive(f) {
		return nil, fmt.Errorf("%w: momentum scale must be finite and > 0: %v", acar.ErrInvalidParameter, f)
	}
	out := build(s.momentum, s.rate)
	floats.Scale(f, out.momentum)
	return out, nil
}

// WithRate returns a spectrum on the same axis carrying rate.
func (s *Spectrum) WithRate(rate []float64) (*Spectrum, error) {
	if len(rate) != len(s.momentum) {
		return nil, fmt.Errorf("%w: %d rates for %d samples", acar.ErrInvalidInput, len(rate), len(s.momentum))
	}
	if i := core.FirstNonFinite(rate); i >= 0 {
		return nil, fmt.Errorf("%w: rate[%d] = %v is not finite", acar.ErrInvalidInput, i, rate[i])
	}
	return build(s.momentum, rate), nil
}
