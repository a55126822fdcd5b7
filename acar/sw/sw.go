// Package sw computes the S and W lineshape parameters of a normalized
// momentum density.
//
// S is the fraction of the area with momentum <= SCut, W the fraction with
// WLow <= momentum <= WHigh. By default a sample belongs to a window when its
// momentum passes an exact comparison, so the parameters move in steps of the
// grid spacing. [BoundaryInterpolated] integrates the linear interpolant up
// to the exact cut positions instead; it yields different numbers and is
// opt-in.
package sw

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/integrate"

	"github.com/cwbudde/algo-acar/acar"
	"github.com/cwbudde/algo-acar/acar/spectrum"
	"github.com/cwbudde/algo-acar/dsp/core"
	"github.com/cwbudde/algo-acar/dsp/interp"
)

// Window holds the momentum cuts. Units follow the spectrum's momentum axis.
type Window struct {
	SCut  float64
	WLow  float64
	WHigh float64
}

// Validate reports non-finite cuts or an inverted W window.
func (w Window) Validate() error {
	cuts := []struct {
		name  string
		value float64
	}{{"S cut", w.SCut}, {"W low", w.WLow}, {"W high", w.WHigh}}
	for _, c := range cuts {
		if !core.IsFinite(c.value) {
			return fmt.Errorf("%w: %s is not finite: %v", acar.ErrInvalidParameter, c.name, c.value)
		}
	}
	if w.WLow > w.WHigh {
		return fmt.Errorf("%w: W window is inverted: low %g > high %g", acar.ErrInvalidInput, w.WLow, w.WHigh)
	}
	return nil
}

// Result is an (S, W) pair.
type Result struct {
	S float64
	W float64
}

// Boundary selects how window edges are treated.
type Boundary int

const (
	// BoundarySampled includes whole samples by exact comparison.
	BoundarySampled Boundary = iota

	// BoundaryInterpolated integrates the piecewise-linear spectrum up to the
	// exact cut positions.
	BoundaryInterpolated
)

// String returns the configuration name of b.
func (b Boundary) String() string {
	switch b {
	case BoundarySampled:
		return "sampled"
	case BoundaryInterpolated:
		return "interpolated"
	default:
		return fmt.Sprintf("Boundary(%d)", int(b))
	}
}

// ParseBoundary converts a configuration name to a Boundary.
func ParseBoundary(name string) (Boundary, error) {
	switch name {
	case "", "sampled":
		return BoundarySampled, nil
	case "interpolated":
		return BoundaryInterpolated, nil
	default:
		return 0, fmt.Errorf("%w: unknown boundary %q", acar.ErrInvalidParameter, name)
	}
}

// Option configures Compute.
type Option func(*options)

type options struct {
	boundary Boundary
}

// WithBoundary selects the window edge treatment.
func WithBoundary(b Boundary) Option {
	return func(o *options) { o.boundary = b }
}

func applyOptions(opts []Option) (options, error) {
	o := options{boundary: BoundarySampled}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	switch o.boundary {
	case BoundarySampled, BoundaryInterpolated:
		return o, nil
	default:
		return o, fmt.Errorf("%w: unknown boundary mode %d", acar.ErrInvalidParameter, int(o.boundary))
	}
}

// Compute returns S = N_s/N_total and W = N_w/N_total where each N is a
// trapezoidal integral of s over the respective momentum range.
func Compute(s *spectrum.Spectrum, w Window, opts ...Option) (Result, error) {
	o, err := applyOptions(opts)
	if err != nil {
		return Result{}, err
	}
	if s == nil {
		return Result{}, fmt.Errorf("%w: nil spectrum", acar.ErrInvalidInput)
	}
	if err := w.Validate(); err != nil {
		return Result{}, err
	}

	x := s.Momentum()
	y := s.Rate()

	var ns, nw float64
	switch o.boundary {
	case BoundaryInterpolated:
		if ns, err = areaBetween(x, y, x[0], w.SCut, "S"); err != nil {
			return Result{}, err
		}
		if nw, err = areaBetween(x, y, w.WLow, w.WHigh, "W"); err != nil {
			return Result{}, err
		}
	default:
		if ns, err = sampledArea(x, y, x[0], w.SCut, "S"); err != nil {
			return Result{}, err
		}
		if nw, err = sampledArea(x, y, w.WLow, w.WHigh, "W"); err != nil {
			return Result{}, err
		}
	}

	total, err := totalArea(x, y)
	if err != nil {
		return Result{}, err
	}

	return Result{S: ns / total, W: nw / total}, nil
}

func totalArea(x, y []float64) (float64, error) {
	total := integrate.Trapezoidal(x, y)
	if total == 0 || !core.IsFinite(total) {
		return 0, fmt.Errorf("%w: total area is %v", acar.ErrNumericDegenerate, total)
	}
	return total, nil
}

// sampledArea integrates the samples with lo <= x <= hi.
func sampledArea(x, y []float64, lo, hi float64, name string) (float64, error) {
	first := sort.Search(len(x), func(i int) bool { return x[i] >= lo })
	end := sort.Search(len(x), func(i int) bool { return x[i] > hi })
	if end-first < 2 {
		return 0, fmt.Errorf("%w: %s window [%g, %g] holds %d samples, need at least 2",
			acar.ErrInvalidInput, name, lo, hi, max(end-first, 0))
	}
	return integrate.Trapezoidal(x[first:end], y[first:end]), nil
}

// areaBetween integrates the linear interpolant of (x, y) over [lo, hi]
// clipped to the sampled domain.
func areaBetween(x, y []float64, lo, hi float64, name string) (float64, error) {
	lo = max(lo, x[0])
	hi = min(hi, x[len(x)-1])
	if hi <= lo {
		return 0, fmt.Errorf("%w: %s window [%g, %g] does not overlap the sampled domain",
			acar.ErrInvalidInput, name, lo, hi)
	}

	first := sort.Search(len(x), func(i int) bool { return x[i] > lo })
	end := sort.Search(len(x), func(i int) bool { return x[i] >= hi })

	yLo, err := interp.Linear(x, y, lo)
	if err != nil {
		return 0, err
	}
	yHi, err := interp.Linear(x, y, hi)
	if err != nil {
		return 0, err
	}

	px := make([]float64, 0, end-first+2)
	py := make([]float64, 0, end-first+2)
	px = append(px, lo)
	py = append(py, yLo)
	px = append(px, x[first:end]...)
	py = append(py, y[first:end]...)
	px = append(px, hi)
	py = append(py, yHi)

	return integrate.Trapezoidal(px, py), nil
}
