// Package kernel builds the instrumental-resolution kernel used to broaden
// calculated ACAR spectra.
package kernel

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-acar/acar"
	"github.com/cwbudde/algo-acar/dsp/core"
)

// SigmaPerFWHM maps the resolution FWHM (1e-3 m0c) to the Gaussian standard
// deviation in the momentum unit of the spectra. It is a fixed calibration of
// this unit system, not the textbook 1/(2*sqrt(2 ln 2)).
const SigmaPerFWHM = 0.05818

// MaxLength bounds the number of kernel samples.
const MaxLength = 1 << 24

// Kernel is a sampled resolution function. Weights are not normalized.
type Kernel struct {
	offsets []float64
	weights []float64
	origin  int
	fwhm    float64
}

// Gaussian samples exp(-x²/(2σ²)), σ = SigmaPerFWHM*fwhm, at
// x = -rng, -rng+spacing, ... over the half-open interval [-rng, rng).
// The sample count is ceil(2*rng/spacing).
func Gaussian(fwhm, rng, spacing float64) (*Kernel, error) {
	if err := validate(fwhm, rng, spacing); err != nil {
		return nil, err
	}

	n := int(math.Ceil((rng - (-rng)) / spacing))
	if n < 1 || n > MaxLength {
		return nil, fmt.Errorf("%w: kernel would have %d samples (range %g, spacing %g)", acar.ErrInvalidParameter, n, rng, spacing)
	}

	sigma := SigmaPerFWHM * fwhm
	twoSigmaSq := 2 * sigma * sigma

	k := &Kernel{
		offsets: make([]float64, n),
		weights: make([]float64, n),
		fwhm:    fwhm,
	}
	for i := range k.offsets {
		x := -rng + float64(i)*spacing
		k.offsets[i] = x
		k.weights[i] = math.Exp(-(x * x) / twoSigmaSq)
	}
	k.origin = nearestZero(k.offsets)

	return k, nil
}

// Impulse returns a kernel of n samples at the given spacing with a single
// unit weight at index origin. Convolving with it leaves a spectrum unchanged.
func Impulse(n, origin int, spacing float64) (*Kernel, error) {
	if n < 1 || n > MaxLength {
		return nil, fmt.Errorf("%w: impulse length %d", acar.ErrInvalidParameter, n)
	}
	if origin < 0 || origin >= n {
		return nil, fmt.Errorf("%w: impulse origin %d not in [0,%d)", acar.ErrInvalidParameter, origin, n)
	}
	if !core.Positive(spacing) {
		return nil, fmt.Errorf("%w: spacing must be finite and > 0: %v", acar.ErrInvalidParameter, spacing)
	}

	k := &Kernel{
		offsets: make([]float64, n),
		weights: make([]float64, n),
		origin:  origin,
	}
	for i := range k.offsets {
		k.offsets[i] = float64(i-origin) * spacing
	}
	k.weights[origin] = 1
	return k, nil
}

func validate(fwhm, rng, spacing float64) error {
	if !core.Positive(fwhm) {
		return fmt.Errorf("%w: fwhm must be finite and > 0: %v", acar.ErrInvalidParameter, fwhm)
	}
	if !core.Positive(rng) {
		return fmt.Errorf("%w: gaussian range must be finite and > 0: %v", acar.ErrInvalidParameter, rng)
	}
	if !core.Positive(spacing) {
		return fmt.Errorf("%w: spacing must be finite and > 0: %v", acar.ErrInvalidParameter, spacing)
	}
	return nil
}

func nearestZero(offsets []float64) int {
	best := 0
	for i, x := range offsets {
		if math.Abs(x) < math.Abs(offsets[best]) {
			best = i
		}
	}
	return best
}

// Len returns the number of samples.
func (k *Kernel) Len() int { return len(k.weights) }

// Origin returns the index of the sample closest to zero offset.
func (k *Kernel) Origin() int { return k.origin }

// FWHM returns the resolution the kernel was built for, or 0 for an impulse.
func (k *Kernel) FWHM() float64 { return k.fwhm }

// Sigma returns the Gaussian standard deviation.
func (k *Kernel) Sigma() float64 { return SigmaPerFWHM * k.fwhm }

// Sum returns the sum of the weights.
func (k *Kernel) Sum() float64 { return floats.Sum(k.weights) }

// Offsets returns a copy of the sample offsets.
func (k *Kernel) Offsets() []float64 {
	out := make([]float64, len(k.offsets))
	copy(out, k.offsets)
	return out
}

// Weights returns a copy of the weights.
func (k *Kernel) Weights() []float64 {
	out := make([]float64, len(k.weights))
	copy(out, k.weights)
	return out
}
