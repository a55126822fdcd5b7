package convolution

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"gonum.org/v1/gonum/integrate"

	"github.com/cwbudde/algo-acar/acar"
	"github.com/cwbudde/algo-acar/acar/kernel"
	"github.com/cwbudde/algo-acar/acar/spectrum"
	"github.com/cwbudde/algo-acar/dsp/conv"
	"github.com/cwbudde/algo-acar/internal/testutil"
)

func mustSpectrum(t *testing.T, momentum, rate []float64) *spectrum.Spectrum {
	t.Helper()
	s, err := spectrum.New(momentum, rate)
	if err != nil {
		t.Fatalf("spectrum.New: %v", err)
	}
	return s
}

func TestFlatScenario(t *testing.T) {
	half := mustSpectrum(t, []float64{0, 1, 2, 3, 4}, testutil.DC(1, 5))

	got, err := ConvolveAndNormalize(half, 1.0, 4, 1)
	if err != nil {
		t.Fatalf("ConvolveAndNormalize: %v", err)
	}

	if got.Len() != half.Len() {
		t.Fatalf("Len() = %d, want %d", got.Len(), half.Len())
	}
	testutil.RequireSliceNearlyEqual(t, got.Momentum(), half.Momentum(), 0)
	// The kernel is far narrower than the grid, so the flat input survives.
	testutil.RequireSliceNearlyEqual(t, got.Rate(), testutil.DC(0.25, 5), 1e-12)
	testutil.RequireRelativeNearlyEqual(t, "area", integrate.Trapezoidal(got.Momentum(), got.Rate()), 1, 1e-9)
}

func TestFlatInteriorStaysFlat(t *testing.T) {
	const n = 41
	half := mustSpectrum(t, testutil.Grid(0, 1, n), testutil.DC(2, n))

	got, err := ConvolveAndNormalize(half, 20, 4, 1)
	if err != nil {
		t.Fatalf("ConvolveAndNormalize: %v", err)
	}

	rate := got.Rate()
	// Samples further than the kernel reach from the outer edge see every tap.
	for i := 1; i < n-4; i++ {
		testutil.RequireRelativeNearlyEqual(t, "interior", rate[i], rate[0], 1e-12)
	}
	if rate[n-1] >= rate[0] {
		t.Fatalf("outer edge %v should drop below interior %v", rate[n-1], rate[0])
	}
}

func TestNormalization(t *testing.T) {
	momentum := testutil.Grid(0, 0.01, 551)
	half := mustSpectrum(t, momentum, testutil.CoreAndWings(momentum))

	for _, tc := range []struct {
		name  string
		opts  []Option
		scale float64
	}{
		{name: "native units", scale: 1},
		{name: "milli m0c", opts: []Option{WithMomentumScale(acar.AtomicUnitToMilliMC)}, scale: acar.AtomicUnitToMilliMC},
		{name: "fft", opts: []Option{WithMethod(conv.MethodFFT)}, scale: 1},
		{name: "numpy alignment", opts: []Option{WithAlignment(AlignNumPy)}, scale: 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ConvolveAndNormalize(half, 0.9*acar.KeVToMilliMC, 5.5, 0.01, tc.opts...)
			if err != nil {
				t.Fatalf("ConvolveAndNormalize: %v", err)
			}

			testutil.RequireFinite(t, got.Rate())
			testutil.RequireRelativeNearlyEqual(t, "area", integrate.Trapezoidal(got.Momentum(), got.Rate()), 1, 1e-9)
			testutil.RequireRelativeNearlyEqual(t, "max momentum", got.Max(), 5.5*tc.scale, 1e-12)
		})
	}
}

func TestImpulseKernelIsIdentity(t *testing.T) {
	momentum := testutil.Grid(0, 0.1, 30)
	rate := testutil.CoreAndWings(momentum)
	half := mustSpectrum(t, momentum, rate)

	k, err := kernel.Impulse(9, 4, 0.1)
	if err != nil {
		t.Fatalf("kernel.Impulse: %v", err)
	}
	e, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got, err := e.ProcessKernel(half, k)
	if err != nil {
		t.Fatalf("ProcessKernel: %v", err)
	}

	area := integrate.Trapezoidal(momentum, rate)
	want := make([]float64, len(rate))
	for i, v := range rate {
		want[i] = v / area
	}
	testutil.RequireSliceNearlyEqual(t, got.Rate(), want, 1e-14)
}

func TestDirectAndFFTAgree(t *testing.T) {
	momentum := testutil.Grid(0, 0.01, 400)
	half := mustSpectrum(t, momentum, testutil.CoreAndWings(momentum))

	direct, err := ConvolveAndNormalize(half, 4.3, 3.99, 0.01)
	if err != nil {
		t.Fatalf("direct: %v", err)
	}
	fft, err := ConvolveAndNormalize(half, 4.3, 3.99, 0.01, WithMethod(conv.MethodFFT))
	if err != nil {
		t.Fatalf("fft: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, fft.Rate(), direct.Rate(), 1e-9)
}

func TestNumPyAlignmentShift(t *testing.T) {
	half := mustSpectrum(t, []float64{0, 1, 2, 3, 4}, []float64{1, 2, 3, 4, 5})

	zero, err := ConvolveAndNormalize(half, 0.01, 2, 1)
	if err != nil {
		t.Fatalf("zero-offset: %v", err)
	}
	np, err := ConvolveAndNormalize(half, 0.01, 2, 1, WithAlignment(AlignNumPy))
	if err != nil {
		t.Fatalf("numpy: %v", err)
	}

	// Mirrored rates are [5 4 3 2 1 2 3 4 5]; numpy keeps [2 1 2 3 4].
	z := zero.Rate()
	p := np.Rate()
	wantZero := []float64{1, 2, 3, 4, 5}
	wantNumPy := []float64{2, 1, 2, 3, 4}
	for i := range z {
		testutil.RequireRelativeNearlyEqual(t, "zero-offset ratio", z[i]/z[0], wantZero[i], 1e-12)
		testutil.RequireRelativeNearlyEqual(t, "numpy ratio", p[i]/p[1], wantNumPy[i], 1e-12)
	}
}

func TestShortSpectrumWarning(t *testing.T) {
	half := mustSpectrum(t, []float64{0, 1, 2, 3, 4}, testutil.DC(1, 5))

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	if _, err := ConvolveAndNormalize(half, 1, 4, 1, WithLogger(logger)); err != nil {
		t.Fatalf("ConvolveAndNormalize: %v", err)
	}
	if !strings.Contains(buf.String(), "level=WARN") {
		t.Fatalf("expected a warning, log was %q", buf.String())
	}

	_, err := ConvolveAndNormalize(half, 1, 4, 1, WithStrictRange())
	if !errors.Is(err, acar.ErrInvalidInput) {
		t.Fatalf("strict range error = %v, want ErrInvalidInput", err)
	}
}

func TestErrors(t *testing.T) {
	flat := mustSpectrum(t, []float64{0, 1, 2}, testutil.DC(1, 3))
	zero := mustSpectrum(t, []float64{0, 1, 2, 3}, testutil.DC(0, 4))

	tests := []struct {
		name    string
		half    *spectrum.Spectrum
		params  Params
		opts    []Option
		wantErr error
	}{
		{name: "nil spectrum", half: nil, params: Params{1, 1, 1}, wantErr: acar.ErrInvalidInput},
		{name: "kernel longer than mirror", half: flat, params: Params{1, 10, 1}, wantErr: acar.ErrInvalidInput},
		{name: "spacing mismatch", half: flat, params: Params{1, 1, 0.5}, wantErr: acar.ErrInvalidInput},
		{name: "bad fwhm", half: flat, params: Params{0, 1, 1}, wantErr: acar.ErrInvalidParameter},
		{name: "bad range", half: flat, params: Params{1, -1, 1}, wantErr: acar.ErrInvalidParameter},
		{name: "zero area", half: zero, params: Params{1, 1, 1}, wantErr: acar.ErrNumericDegenerate},
		{name: "bad scale", half: flat, params: Params{1, 1, 1}, opts: []Option{WithMomentumScale(0)}, wantErr: acar.ErrInvalidParameter},
		{name: "bad method", half: flat, params: Params{1, 1, 1}, opts: []Option{WithMethod(conv.Method(9))}, wantErr: acar.ErrInvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ConvolveAndNormalize(tt.half, tt.params.FWHM, tt.params.GaussianRange, tt.params.Spacing, tt.opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseAlignment(t *testing.T) {
	for _, a := range []Alignment{AlignZeroOffset, AlignNumPy} {
		got, err := ParseAlignment(a.String())
		if err != nil || got != a {
			t.Fatalf("ParseAlignment(%q) = %v, %v", a.String(), got, err)
		}
	}
	if _, err := ParseAlignment("centre"); !errors.Is(err, acar.ErrInvalidParameter) {
		t.Fatalf("ParseAlignment error = %v, want ErrInvalidParameter", err)
	}
}
