package conv_test

import (
	"fmt"

	"github.com/cwbudde/algo-acar/dsp/conv"
)

func ExampleCentered() {
	signal := []float64{0, 0, 1, 0, 0}
	kernel := []float64{0.5, 1, 0.5}

	out, err := conv.Centered(signal, kernel, 1, conv.MethodDirect)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(out)

	// Output:
	// [0 0.5 1 0.5 0]
}
