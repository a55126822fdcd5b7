package conv

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by convolution functions.
var (
	ErrEmptyInput     = errors.New("conv: empty input")
	ErrEmptyKernel    = errors.New("conv: empty kernel")
	ErrLengthMismatch = errors.New("conv: buffer length mismatch")
	ErrInvalidOrigin  = errors.New("conv: kernel origin out of range")
	ErrUnknownMethod  = errors.New("conv: unknown method")
)

// Method selects the convolution algorithm.
type Method int

const (
	// MethodDirect accumulates the kernel taps in the time domain.
	MethodDirect Method = iota

	// MethodFFT multiplies zero-padded spectra in the frequency domain.
	MethodFFT
)

// String returns the method name used in configuration files.
func (m Method) String() string {
	switch m {
	case MethodDirect:
		return "direct"
	case MethodFFT:
		return "fft"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod converts a configuration name into a Method.
func ParseMethod(name string) (Method, error) {
	switch name {
	case "", "direct":
		return MethodDirect, nil
	case "fft":
		return MethodFFT, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
	}
}

// Full returns the full linear convolution of signal and kernel,
// of length len(signal)+len(kernel)-1.
func Full(signal, kernel []float64, method Method) ([]float64, error) {
	if len(signal) == 0 {
		return nil, ErrEmptyInput
	}
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}

	switch method {
	case MethodDirect:
		out := make([]float64, len(signal)+len(kernel)-1)
		DirectTo(out, signal, kernel)
		return out, nil
	case MethodFFT:
		return fftConvolve(signal, kernel)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMethod, int(method))
	}
}

// DirectTo performs direct convolution, writing to a pre-allocated destination.
// dst must have length len(a) + len(b) - 1.
func DirectTo(dst, a, b []float64) {
	for i := range dst {
		dst[i] = 0
	}

	m := len(b)
	scaled := make([]float64, m)

	// Output sample k collects a[i]*b[k-i] in increasing i.
	for i, ai := range a {
		if ai == 0 {
			continue
		}
		vecmath.ScaleBlock(scaled, b, ai)
		vecmath.AddBlockInPlace(dst[i:i+m], scaled)
	}
}

// Centered convolves signal with kernel and returns len(signal) samples where
// output index i lines up with signal index i through kernel[origin].
// Values outside the signal are treated as zero.
func Centered(signal, kernel []float64, origin int, method Method) ([]float64, error) {
	if len(kernel) > 0 && (origin < 0 || origin >= len(kernel)) {
		return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrInvalidOrigin, origin, len(kernel))
	}

	full, err := Full(signal, kernel, method)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(signal))
	copy(out, full[origin:origin+len(signal)])
	return out, nil
}

// Same reproduces numpy.convolve(signal, kernel, mode="same") for kernels no
// longer than the signal: the kernel is anchored at index (len(kernel)-1)/2.
func Same(signal, kernel []float64, method Method) ([]float64, error) {
	if len(kernel) > len(signal) {
		return nil, fmt.Errorf("%w: kernel length %d exceeds signal length %d",
			ErrLengthMismatch, len(kernel), len(signal))
	}
	return Centered(signal, kernel, (len(kernel)-1)/2, method)
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
