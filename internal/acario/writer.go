package acario

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/cwbudde/algo-acar/acar/spectrum"
	"github.com/cwbudde/algo-acar/acar/sw"
)

const (
	columnWidth = 30
	dateLayout  = "02-01-2006"

	defaultMomentumUnit = "a.u."
	rateLabel           = "Annihilation rate (a.u.^{-1})"
)

// Errors returned by the writers.
var (
	ErrNoColumns      = errors.New("acario: table has no columns")
	ErrColumnMismatch = errors.New("acario: columns have different lengths")
)

// Column is one convolved spectrum and the FWHM label it was produced with.
type Column struct {
	FWHM    float64
	Density *spectrum.Spectrum
}

// Table is the content of an output file: densities sharing one momentum axis.
type Table struct {
	InputName    string
	Date         time.Time
	MomentumUnit string
	Columns      []Column
}

func (t Table) validate() error {
	if len(t.Columns) == 0 {
		return ErrNoColumns
	}
	n := t.Columns[0].Density.Len()
	for i, c := range t.Columns[1:] {
		if c.Density.Len() != n {
			return fmt.Errorf("%w: column %d has %d rows, column 1 has %d", ErrColumnMismatch, i+2, c.Density.Len(), n)
		}
	}
	return nil
}

func (t Table) momentumLabel() string {
	unit := t.MomentumUnit
	if unit == "" {
		unit = defaultMomentumUnit
	}
	return fmt.Sprintf("Momentum (%s)", unit)
}

// WriteTable writes the header block and one row per momentum sample with
// every value left-aligned in a 30 character column.
func WriteTable(w io.Writer, t Table) error {
	if err := t.validate(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Input file: %s \nDate: %s\n", t.InputName, t.Date.Format(dateLayout))

	fmt.Fprintf(bw, "%-*s", columnWidth, "")
	for i, c := range t.Columns {
		fmt.Fprintf(bw, "%-*s", columnWidth, fmt.Sprintf("FWHM%d=%0.3f", i+1, c.FWHM))
	}
	bw.WriteString("\n")

	fmt.Fprintf(bw, "%-*s", columnWidth, t.momentumLabel())
	for range t.Columns {
		fmt.Fprintf(bw, "%-*s", columnWidth, rateLabel)
	}
	bw.WriteString("\n")

	momentum := t.Columns[0].Density.Momentum()
	rates := make([][]float64, len(t.Columns))
	for i, c := range t.Columns {
		rates[i] = c.Density.Rate()
	}
	for row, q := range momentum {
		fmt.Fprintf(bw, "%-*.9E", columnWidth, q)
		for _, r := range rates {
			fmt.Fprintf(bw, "%-*.9E", columnWidth, r[row])
		}
		bw.WriteString("\n")
	}

	return bw.Flush()
}

// WriteSW appends the S/W block: the window inputs followed by one S and one
// W row, each value under the column of its resolution.
func WriteSW(w io.Writer, win sw.Window, results []sw.Result) error {
	if len(results) == 0 {
		return ErrNoColumns
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "\nSW parameters with inputs S=%f, Wmin=%f, Wmax=%f\n", win.SCut, win.WLow, win.WHigh)

	fmt.Fprintf(bw, "%-*s", columnWidth, "")
	for i, r := range results {
		fmt.Fprintf(bw, "%-*s", columnWidth, fmt.Sprintf("S%d=%0.9E", i+1, r.S))
	}
	bw.WriteString("\n")

	fmt.Fprintf(bw, "%-*s", columnWidth, "")
	for i, r := range results {
		fmt.Fprintf(bw, "%-*s", columnWidth, fmt.Sprintf("W%d=%0.9E", i+1, r.W))
	}
	bw.WriteString("\n")

	return bw.Flush()
}

// SCurve is S as a function of the core cut, one curve per resolution.
type SCurve struct {
	Cuts  []float64
	FWHMs []float64
	S     [][]float64
}

// WriteSCurve writes one row per cut with the S value of every resolution,
// in the column layout of WriteTable.
func WriteSCurve(w io.Writer, c SCurve) error {
	if len(c.S) == 0 {
		return ErrNoColumns
	}
	if len(c.FWHMs) != len(c.S) {
		return fmt.Errorf("%w: %d labels for %d curves", ErrColumnMismatch, len(c.FWHMs), len(c.S))
	}
	for i, s := range c.S {
		if len(s) != len(c.Cuts) {
			return fmt.Errorf("%w: curve %d has %d values for %d cuts", ErrColumnMismatch, i+1, len(s), len(c.Cuts))
		}
	}

	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%-*s", columnWidth, "")
	for i, f := range c.FWHMs {
		fmt.Fprintf(bw, "%-*s", columnWidth, fmt.Sprintf("FWHM%d=%0.3f", i+1, f))
	}
	bw.WriteString("\n")

	fmt.Fprintf(bw, "%-*s", columnWidth, "S cut")
	for range c.S {
		fmt.Fprintf(bw, "%-*s", columnWidth, "S")
	}
	bw.WriteString("\n")

	for row, cut := range c.Cuts {
		fmt.Fprintf(bw, "%-*.9E", columnWidth, cut)
		for _, s := range c.S {
			fmt.Fprintf(bw, "%-*.9E", columnWidth, s[row])
		}
		bw.WriteString("\n")
	}

	return bw.Flush()
}
