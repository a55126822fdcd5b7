package core

import (
	"math"
	"testing"
)

func TestNearlyEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		eps  float64
		want bool
	}{
		{name: "identical", a: 1, b: 1, eps: 1e-12, want: true},
		{name: "relative", a: 1000, b: 1000.0000001, eps: 1e-9, want: true},
		{name: "different", a: 1.0, b: 1.1, eps: 1e-3, want: false},
		{name: "near zero absolute", a: 0, b: 1e-13, eps: 0, want: true},
		{name: "default epsilon", a: 1, b: 1 + 1e-6, eps: -1, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NearlyEqual(tt.a, tt.b, tt.eps); got != tt.want {
				t.Fatalf("NearlyEqual(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.eps, got, tt.want)
			}
		})
	}
}

func TestFirstNonFinite(t *testing.T) {
	if got := FirstNonFinite([]float64{1, 2, 3}); got != -1 {
		t.Fatalf("FirstNonFinite = %d, want -1", got)
	}
	if got := FirstNonFinite([]float64{1, math.NaN(), math.Inf(1)}); got != 1 {
		t.Fatalf("FirstNonFinite = %d, want 1", got)
	}
	if got := FirstNonFinite([]float64{0, math.Inf(-1)}); got != 1 {
		t.Fatalf("FirstNonFinite = %d, want 1", got)
	}
}

func TestPositive(t *testing.T) {
	for _, v := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if Positive(v) {
			t.Fatalf("Positive(%v) = true, want false", v)
		}
	}
	if !Positive(1e-300) {
		t.Fatal("Positive(1e-300) = false, want true")
	}
}
