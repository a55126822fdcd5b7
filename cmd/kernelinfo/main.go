// Command kernelinfo prints the sampled resolution Gaussians used by convsw.
//
// Usage:
//
//	kernelinfo [flags] fwhm...
//
// Examples:
//
//	kernelinfo 3.5 9.4
//	kernelinfo -kev 0.9 2.4
//	kernelinfo -spacing 0.05 -range 2.5 -kev 0.9
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/cwbudde/algo-acar/acar"
	"github.com/cwbudde/algo-acar/acar/kernel"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("kernelinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	spacing := fs.Float64("spacing", 0.01, "momentum step of the kernel")
	rng := fs.Float64("range", acar.DefaultMomentumCutoff, "half width of the kernel support")
	kev := fs.Bool("kev", false, fmt.Sprintf("FWHM values are in keV and are scaled by %g", acar.KeVToMilliMC))
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: kernelinfo [flags] fwhm...\n\n")
		fmt.Fprintf(stderr, "Prints length, sigma, origin and area of sampled resolution Gaussians.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("no FWHM given")
	}

	fwhms := make([]float64, 0, fs.NArg())
	for _, a := range fs.Args() {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("invalid FWHM %q: %w", a, err)
		}
		if *kev {
			v *= acar.KeVToMilliMC
		}
		fwhms = append(fwhms, v)
	}

	kernels := make([]*kernel.Kernel, len(fwhms))
	for i, f := range fwhms {
		k, err := kernel.Gaussian(f, *rng, *spacing)
		if err != nil {
			return err
		}
		kernels[i] = k
	}

	return printTable(stdout, kernels, *spacing)
}

func printTable(w io.Writer, kernels []*kernel.Kernel, spacing float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "FWHM\tSigma\tLength\tOrigin\tFirst Offset\tPeak\tSum\tArea\n")
	fmt.Fprintf(tw, "----\t-----\t------\t------\t------------\t----\t---\t----\n")

	for _, k := range kernels {
		weights := k.Weights()
		fmt.Fprintf(tw, "%.4f\t%.6f\t%d\t%d\t%.6f\t%.6f\t%.6f\t%.6f\n",
			k.FWHM(),
			k.Sigma(),
			k.Len(),
			k.Origin(),
			k.Offsets()[0],
			weights[k.Origin()],
			k.Sum(),
			k.Sum()*spacing,
		)
	}
	return tw.Flush()
}
