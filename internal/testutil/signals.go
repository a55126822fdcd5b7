package testutil

import (
	"math"
	"math/rand"
)

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Grid returns n momentum values start, start+step, ... computed by
// multiplication so that they carry no accumulated rounding drift.
func Grid(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// GaussianProfile evaluates amplitude*exp(-x²/(2 width²)) on x. It stands in
// for the smooth core of a calculated momentum distribution.
func GaussianProfile(x []float64, amplitude, width float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = amplitude * math.Exp(-v*v/(2*width*width))
	}
	return out
}

// CoreAndWings mimics an annihilation spectrum: a narrow valence-electron
// Gaussian on top of a broad core-electron tail.
func CoreAndWings(x []float64) []float64 {
	narrow := GaussianProfile(x, 1, 0.6)
	broad := GaussianProfile(x, 0.05, 2.5)
	for i := range narrow {
		narrow[i] += broad[i]
	}
	return narrow
}
