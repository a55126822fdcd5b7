package acario

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-acar/acar"
	"github.com/cwbudde/algo-acar/acar/spectrum"
)

// ErrNoData is returned when no sample survives the header skip and cutoff.
var ErrNoData = errors.New("acario: no data rows")

// ReadOptions controls ReadSpectrum.
type ReadOptions struct {
	// HeaderLines are skipped before parsing.
	HeaderLines int
	// Cutoff drops rows with momentum above it; 0 keeps every row.
	Cutoff float64
	// MaxRows keeps at most this many rows after the cutoff; 0 keeps all.
	MaxRows int
	// SpacingTolerance is the relative tolerance of the uniform axis check.
	SpacingTolerance float64
	// RateColumn is the zero-based field holding the rate; 0 selects field 1.
	RateColumn int
}

// DefaultReadOptions matches the layout of simulation output files.
func DefaultReadOptions() ReadOptions {
	return ReadOptions{
		HeaderLines:      2,
		Cutoff:           acar.DefaultMomentumCutoff,
		SpacingTolerance: spectrum.DefaultSpacingTolerance,
	}
}

// ReadSpectrum parses whitespace-separated columns and returns the first one
// as momentum and the RateColumn one as rate. Other columns are ignored.
// A text line that follows a blank line after the data has started ends the
// table, so the S/W block appended by WriteSW is skipped.
func ReadSpectrum(r io.Reader, opts ReadOptions) (*spectrum.Spectrum, error) {
	col := opts.RateColumn
	if col <= 0 {
		col = 1
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var momentum, rate []float64
	line, rows := 0, 0
	afterBlank := false
	for scanner.Scan() {
		line++
		if line <= opts.HeaderLines {
			continue
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			afterBlank = true
			continue
		}

		q, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			if rows > 0 && afterBlank {
				break
			}
			return nil, fmt.Errorf("acario: line %d: momentum: %w", line, err)
		}
		if len(fields) <= col {
			return nil, fmt.Errorf("acario: line %d: want at least %d columns, got %d", line, col+1, len(fields))
		}
		rows++
		afterBlank = false
		v, err := strconv.ParseFloat(fields[col], 64)
		if err != nil {
			return nil, fmt.Errorf("acario: line %d: rate: %w", line, err)
		}

		if opts.Cutoff > 0 && q > opts.Cutoff {
			continue
		}
		if opts.MaxRows > 0 && len(momentum) == opts.MaxRows {
			break
		}
		momentum = append(momentum, q)
		rate = append(rate, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("acario: read: %w", err)
	}
	if len(momentum) == 0 {
		return nil, ErrNoData
	}

	s, err := spectrum.New(momentum, rate, spectrum.WithSpacingTolerance(opts.SpacingTolerance))
	if err != nil {
		return nil, fmt.Errorf("acario: %w", err)
	}
	return s, nil
}

// ReadFile opens path and calls ReadSpectrum.
func ReadFile(path string, opts ReadOptions) (*spectrum.Spectrum, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("acario: %w", err)
	}
	defer f.Close()

	s, err := ReadSpectrum(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
