// Package convolution broadens a calculated ACAR half spectrum with the
// instrumental resolution and normalizes it to a probability density.
//
// The half spectrum is mirrored about zero momentum, convolved with a
// Gaussian kernel, cut back to the non-negative half and divided by its
// trapezoidal area:
//
//	density, err := convolution.ConvolveAndNormalize(half, fwhm, rng, spacing)
//
// Use an [Engine] to reuse options across several spectra or resolutions.
package convolution

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/integrate"

	"github.com/cwbudde/algo-acar/acar"
	"github.com/cwbudde/algo-acar/acar/kernel"
	"github.com/cwbudde/algo-acar/acar/spectrum"
	"github.com/cwbudde/algo-acar/dsp/conv"
	"github.com/cwbudde/algo-acar/dsp/core"
)

// Alignment selects which kernel sample lines up with the output sample.
type Alignment int

const (
	// AlignZeroOffset anchors the kernel at its zero-offset sample, so a unit
	// impulse at offset 0 is an identity.
	AlignZeroOffset Alignment = iota

	// AlignNumPy anchors the kernel at index (len-1)/2 like numpy's
	// mode="same". For even kernel lengths the output is shifted by one
	// sample towards higher momentum.
	AlignNumPy
)

// String returns the alignment name used in configuration files.
func (a Alignment) String() string {
	switch a {
	case AlignZeroOffset:
		return "zero-offset"
	case AlignNumPy:
		return "numpy"
	default:
		return fmt.Sprintf("Alignment(%d)", int(a))
	}
}

// ParseAlignment converts a configuration name into an Alignment.
func ParseAlignment(name string) (Alignment, error) {
	switch name {
	case "", "zero-offset":
		return AlignZeroOffset, nil
	case "numpy":
		return AlignNumPy, nil
	default:
		return 0, fmt.Errorf("%w: unknown alignment %q", acar.ErrInvalidParameter, name)
	}
}

// Params are the resolution parameters of one convolution.
type Params struct {
	// FWHM of the resolution Gaussian in 1e-3 m0c.
	FWHM float64
	// GaussianRange is the half width of the kernel support.
	GaussianRange float64
	// Spacing is the momentum step of the spectrum and of the kernel.
	Spacing float64
}

// Engine holds convolution options. It is immutable and safe for concurrent use.
type Engine struct {
	momentumScale float64
	method        conv.Method
	alignment     Alignment
	strictRange   bool
	spacingTol    float64
	logger        *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithMomentumScale multiplies the returned momentum axis by f. The density is
// normalized over the scaled axis. The default is 1.
func WithMomentumScale(f float64) Option {
	return func(e *Engine) { e.momentumScale = f }
}

// WithMethod selects the convolution algorithm.
func WithMethod(m conv.Method) Option {
	return func(e *Engine) { e.method = m }
}

// WithAlignment selects the kernel anchor.
func WithAlignment(a Alignment) Option {
	return func(e *Engine) { e.alignment = a }
}

// WithStrictRange turns the short-spectrum warning into an ErrInvalidInput.
func WithStrictRange() Option {
	return func(e *Engine) { e.strictRange = true }
}

// WithSpacingTolerance sets the relative tolerance used to compare the
// requested spacing with the spectrum's own step.
func WithSpacingTolerance(rel float64) Option {
	return func(e *Engine) {
		if rel > 0 {
			e.spacingTol = rel
		}
	}
}

// WithLogger sets the logger for diagnostics. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New returns an Engine configured by opts.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		momentumScale: 1,
		method:        conv.MethodDirect,
		alignment:     AlignZeroOffset,
		spacingTol:    spectrum.DefaultSpacingTolerance,
		logger:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}

	if !core.Positive(e.momentumScale) {
		return nil, fmt.Errorf("%w: momentum scale must be finite and > 0: %v", acar.ErrInvalidParameter, e.momentumScale)
	}
	switch e.method {
	case conv.MethodDirect, conv.MethodFFT:
	default:
		return nil, fmt.Errorf("%w: unknown convolution method %d", acar.ErrInvalidParameter, int(e.method))
	}
	switch e.alignment {
	case AlignZeroOffset, AlignNumPy:
	default:
		return nil, fmt.Errorf("%w: unknown alignment %d", acar.ErrInvalidParameter, int(e.alignment))
	}
	return e, nil
}

// ConvolveAndNormalize mirrors half, convolves it with a Gaussian of the given
// FWHM sampled over [-gaussianRange, gaussianRange) at spacing, and returns the
// normalized density on half's momentum axis.
func ConvolveAndNormalize(half *spectrum.Spectrum, fwhm, gaussianRange, spacing float64, opts ...Option) (*spectrum.Spectrum, error) {
	e, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return e.Process(half, Params{FWHM: fwhm, GaussianRange: gaussianRange, Spacing: spacing})
}

// Process builds the Gaussian kernel for p and runs ProcessKernel.
func (e *Engine) Process(half *spectrum.Spectrum, p Params) (*spectrum.Spectrum, error) {
	if half == nil || half.Len() < 2 {
		return nil, fmt.Errorf("%w: need a half spectrum with at least 2 samples", acar.ErrInvalidInput)
	}

	k, err := kernel.Gaussian(p.FWHM, p.GaussianRange, p.Spacing)
	if err != nil {
		return nil, err
	}

	if got := half.Spacing(); math.Abs(got-p.Spacing) > e.spacingTol*p.Spacing {
		return nil, fmt.Errorf("%w: spacing %g does not match the spectrum step %g", acar.ErrInvalidInput, p.Spacing, got)
	}

	if span := 2 * p.GaussianRange / p.Spacing; float64(half.Len()) <= span {
		if e.strictRange {
			return nil, fmt.Errorf("%w: %d samples do not exceed 2*range/spacing = %g; reduce the gaussian range",
				acar.ErrInvalidInput, half.Len(), span)
		}
		e.logger.Warn("half spectrum shorter than kernel span; edge samples lose accuracy",
			slog.Int("samples", half.Len()),
			slog.Float64("kernel_span", span),
			slog.Float64("gaussian_range", p.GaussianRange),
		)
	}

	return e.ProcessKernel(half, k)
}

// ProcessKernel mirrors half, convolves it with k, keeps the non-negative
// half and normalizes it to unit trapezoidal area.
func (e *Engine) ProcessKernel(half *spectrum.Spectrum, k *kernel.Kernel) (*spectrum.Spectrum, error) {
	if k == nil {
		return nil, fmt.Errorf("%w: nil kernel", acar.ErrInvalidParameter)
	}

	full, err := spectrum.Mirror(half)
	if err != nil {
		return nil, err
	}
	if k.Len() > full.Len() {
		return nil, fmt.Errorf("%w: kernel of %d samples cannot be centred in the mirrored spectrum of %d samples",
			acar.ErrInvalidInput, k.Len(), full.Len())
	}

	origin := k.Origin()
	if e.alignment == AlignNumPy {
		origin = (k.Len() - 1) / 2
	}

	convolved, err := conv.Centered(full.Rate(), k.Weights(), origin, e.method)
	if err != nil {
		return nil, fmt.Errorf("convolution: %w", err)
	}

	n := half.Len()
	right := convolved[n-1:]

	axis := half
	if e.momentumScale != 1 {
		if axis, err = half.ScaleMomentum(e.momentumScale); err != nil {
			return nil, err
		}
	}

	area := integrate.Trapezoidal(axis.Momentum(), right)
	if area == 0 || !core.IsFinite(area) {
		return nil, fmt.Errorf("%w: convolved area is %v", acar.ErrNumericDegenerate, area)
	}

	density := make([]float64, n)
	vecmath.ScaleBlock(density, right, 1/area)

	e.logger.Debug("convolved spectrum",
		slog.Int("samples", n),
		slog.Int("kernel_samples", k.Len()),
		slog.Float64("fwhm", k.FWHM()),
		slog.Float64("area", area),
		slog.String("method", e.method.String()),
	)

	return axis.WithRate(density)
}
