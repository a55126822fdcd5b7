package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-acar/dsp/buffer"
)

var scratch = buffer.NewPool()

// fftConvolve computes the full linear convolution through one zero-padded
// transform of each operand.
func fftConvolve(signal, kernel []float64) ([]float64, error) {
	outLen := len(signal) + len(kernel) - 1
	fftSize := nextPowerOf2(outLen)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	sigBuf := scratch.Get(fftSize)
	defer scratch.Put(sigBuf)
	kerBuf := scratch.Get(fftSize)
	defer scratch.Put(kerBuf)

	sig, ker := sigBuf.Data(), kerBuf.Data()
	for i, v := range signal {
		sig[i] = complex(v, 0)
	}
	for i, v := range kernel {
		ker[i] = complex(v, 0)
	}

	if err := plan.Forward(sig, sig); err != nil {
		return nil, fmt.Errorf("conv: forward FFT failed: %w", err)
	}
	if err := plan.Forward(ker, ker); err != nil {
		return nil, fmt.Errorf("conv: kernel FFT failed: %w", err)
	}

	for i := range sig {
		sig[i] *= ker[i]
	}

	if err := plan.Inverse(sig, sig); err != nil {
		return nil, fmt.Errorf("conv: inverse FFT failed: %w", err)
	}

	out := make([]float64, outLen)
	for i := range out {
		out[i] = real(sig[i])
	}
	return out, nil
}
