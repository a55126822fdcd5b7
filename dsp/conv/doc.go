// Package conv provides one-dimensional linear convolution for sampled
// spectra.
//
// Two strategies are available and selected with [Method]:
//
//   - MethodDirect: O(N*M) time-domain accumulation. Taps are accumulated in
//     index order, so results are reproducible bit for bit across runs.
//   - MethodFFT: single-shot FFT convolution, faster for long kernels. Results
//     agree with the direct method to rounding error.
//
// # Usage
//
//	full, err := conv.Full(signal, kernel, conv.MethodDirect)
//	same, err := conv.Centered(signal, kernel, origin, conv.MethodDirect)
//	np, err := conv.Same(signal, kernel, conv.MethodDirect) // numpy mode='same'
//
// [Centered] returns as many samples as the signal and aligns output index i
// with input index i through the kernel sample at index origin. Samples outside
// the signal are treated as zero.
package conv
