// Command convsw convolves a calculated 1D-ACAR half spectrum with the
// experimental resolution and optionally computes the S and W parameters.
//
// Usage:
//
//	convsw [flags] infile outfile
//	convsw infile outfile [flags]
//
// Flags may appear before, between or after the file names.
//
// Examples:
//
//	convsw al-acar1d_100.dat al_conv.dat -fwhm1 0.9
//	convsw al.dat al_conv.dat -fwhm1 0.9 -fwhm2 2.4 -S 0.41 -Wmin 1.37 -Wmax 3.699
//	convsw -config acar.yaml -xlsx al.xlsx -png al.png al.dat al_conv.dat -fwhm1 0.9
//	convsw -scurve al_s.dat al.dat al_conv.dat -fwhm1 0.9
//
// The kernel is centred on its zero-offset sample. Older numpy-based outputs
// are shifted by one sample whenever the kernel length is even; set
// "alignment: numpy" in the configuration file (or ACAR_CONVOLUTION_ALIGNMENT=numpy)
// to reproduce them.
//
// S and W values are always written as %0.9E, also for a single resolution.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/cwbudde/algo-acar/acar"
	"github.com/cwbudde/algo-acar/acar/sw"
	"github.com/cwbudde/algo-acar/internal/acario"
	"github.com/cwbudde/algo-acar/internal/config"
	"github.com/cwbudde/algo-acar/internal/logging"
	"github.com/cwbudde/algo-acar/internal/pipeline"
	"github.com/cwbudde/algo-acar/internal/plot"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			slog.Error("convsw failed", slog.Any("error", err))
		}
		os.Exit(1)
	}
}

type options struct {
	configPath string
	fwhm1      float64
	fwhm2      float64
	sCut       float64
	wLow       float64
	wHigh      float64
	rng        float64
	unitScale  float64
	method     string
	xlsxPath   string
	htmlPath   string
	pngPath    string
	scurvePath string
	logY       bool
	infile     string
	outfile    string
}

func parseArgs(args []string, stderr io.Writer) (*options, error) {
	var o options
	fs := flag.NewFlagSet("convsw", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", "", "YAML configuration file")
	fs.Float64Var(&o.fwhm1, "fwhm1", math.NaN(), "first resolution FWHM in keV (required)")
	fs.Float64Var(&o.fwhm2, "fwhm2", math.NaN(), "second resolution FWHM in keV")
	fs.Float64Var(&o.sCut, "S", math.NaN(), "S parameter momentum cut")
	fs.Float64Var(&o.wLow, "Wmin", math.NaN(), "lower W window bound")
	fs.Float64Var(&o.wHigh, "Wmax", math.NaN(), "upper W window bound")
	fs.Float64Var(&o.rng, "range", 0, "Gaussian half width; 0 uses the configured value or the last momentum")
	fs.Float64Var(&o.unitScale, "unit-scale", 0, "multiply the output momentum axis by this factor (0 keeps the configured value)")
	fs.StringVar(&o.method, "method", "", "convolution method: direct or fft")
	fs.StringVar(&o.xlsxPath, "xlsx", "", "also write the table as an Excel workbook")
	fs.StringVar(&o.htmlPath, "html", "", "also write an interactive HTML chart")
	fs.StringVar(&o.pngPath, "png", "", "also write a PNG chart")
	fs.BoolVar(&o.logY, "log", false, "logarithmic rate axis in charts")
	fs.StringVar(&o.scurvePath, "scurve", "", "also write S as a function of the core cut over the momentum grid")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: convsw [flags] infile outfile\n\n")
		fmt.Fprintf(stderr, "Convolves a calculated 1D-ACAR half spectrum with Gaussian resolution functions.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nThe kernel is centred on zero offset. To match numpy-based outputs, which shift\n")
		fmt.Fprintf(stderr, "even-length kernels by one sample, set ACAR_CONVOLUTION_ALIGNMENT=numpy.\n")
		fmt.Fprintf(stderr, "S and W are written as %%0.9E for every resolution.\n")
	}

	// Flags and positional arguments may be interleaved.
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			break
		}
		positional = append(positional, args[0])
		args = args[1:]
	}

	if len(positional) != 2 {
		fs.Usage()
		return nil, fmt.Errorf("want infile and outfile, got %d arguments", len(positional))
	}
	o.infile, o.outfile = positional[0], positional[1]

	if sameFile(o.infile, o.outfile) {
		return nil, fmt.Errorf("input and output file are the same: %s", o.infile)
	}
	if math.IsNaN(o.fwhm1) {
		return nil, errors.New("-fwhm1 is required")
	}
	set := 0
	for _, v := range []float64{o.sCut, o.wLow, o.wHigh} {
		if !math.IsNaN(v) {
			set++
		}
	}
	if set != 0 && set != 3 {
		return nil, errors.New("-S, -Wmin and -Wmax must be given together")
	}
	return &o, nil
}

func sameFile(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	ia, errA := os.Stat(a)
	ib, errB := os.Stat(b)
	return errA == nil && errB == nil && os.SameFile(ia, ib)
}

func (o *options) fwhms() []float64 {
	out := []float64{o.fwhm1}
	if !math.IsNaN(o.fwhm2) {
		out = append(out, o.fwhm2)
	}
	return out
}

func (o *options) window() *sw.Window {
	if math.IsNaN(o.sCut) {
		return nil
	}
	return &sw.Window{SCut: o.sCut, WLow: o.wLow, WHigh: o.wHigh}
}

func (o *options) apply(cfg *config.Config) error {
	if o.unitScale != 0 {
		cfg.Convolution.MomentumScale = o.unitScale
	}
	if o.method != "" {
		cfg.Convolution.Method = o.method
	}
	return cfg.Validate()
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	o, err := parseArgs(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if err := o.apply(cfg); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging, stderr)
	if err != nil {
		return err
	}
	logger = logging.WithComponent(logger, "convsw")

	half, err := acario.ReadFile(o.infile, acario.ReadOptions{
		HeaderLines:      cfg.Input.HeaderLines,
		Cutoff:           cfg.Input.MomentumCutoff,
		MaxRows:          cfg.Input.MaxRows,
		SpacingTolerance: cfg.Input.SpacingTolerance,
	})
	if err != nil {
		return err
	}
	logger.Info("read spectrum",
		slog.String("file", o.infile),
		slog.Int("samples", half.Len()),
		slog.Float64("spacing", half.Spacing()),
	)

	runner, err := pipeline.New(*cfg, logger)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := runner.Run(ctx, pipeline.Request{
		Half:          half,
		FWHMs:         o.fwhms(),
		GaussianRange: o.rng,
		Window:        o.window(),
	})
	if err != nil {
		return err
	}
	logger.Info("convolution done", slog.Int("resolutions", len(res.Columns)), slog.Duration("elapsed", time.Since(start)))

	table := acario.Table{
		InputName: filepath.Base(o.infile),
		Date:      time.Now(),
		Columns:   res.Columns,
	}
	switch scale := cfg.Convolution.MomentumScale; scale {
	case 1:
	case acar.AtomicUnitToMilliMC:
		table.MomentumUnit = "mrad"
	default:
		table.MomentumUnit = fmt.Sprintf("a.u. x %g", scale)
	}

	var buf bytes.Buffer
	if err := acario.WriteTable(&buf, table); err != nil {
		return err
	}
	if win := o.window(); win != nil {
		if err := acario.WriteSW(&buf, *win, res.SW); err != nil {
			return err
		}
		for i, p := range res.SW {
			logger.Info("sw parameters", slog.Int("index", i+1), slog.Float64("S", p.S), slog.Float64("W", p.W))
		}
	}
	if err := os.WriteFile(o.outfile, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", o.outfile, err)
	}
	logger.Info("wrote table", slog.String("file", o.outfile))

	return writeExtras(o, table, res, logger)
}

func writeExtras(o *options, table acario.Table, res *pipeline.Result, logger *slog.Logger) error {
	if o.scurvePath != "" {
		if err := writeSCurve(o.scurvePath, res.Columns); err != nil {
			return err
		}
		logger.Info("wrote S curve", slog.String("file", o.scurvePath))
	}

	if o.xlsxPath != "" {
		var win sw.Window
		if w := o.window(); w != nil {
			win = *w
		}
		f, err := os.Create(o.xlsxPath)
		if err != nil {
			return err
		}
		if err := acario.WriteXLSX(f, table, win, res.SW); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		logger.Info("wrote workbook", slog.String("file", o.xlsxPath))
	}

	if o.htmlPath == "" && o.pngPath == "" {
		return nil
	}

	chart := plot.Chart{
		Title:  table.InputName,
		XLabel: "Momentum",
		YLabel: "Annihilation rate",
		LogY:   o.logY,
	}
	for i, c := range res.Columns {
		chart.Add(fmt.Sprintf("FWHM%d=%0.3f", i+1, c.FWHM), c.Density)
	}

	if o.htmlPath != "" {
		f, err := os.Create(o.htmlPath)
		if err != nil {
			return err
		}
		if err := plot.RenderHTML(f, chart); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		logger.Info("wrote chart", slog.String("file", o.htmlPath))
	}
	if o.pngPath != "" {
		if err := plot.SavePNG(o.pngPath, chart); err != nil {
			return err
		}
		logger.Info("wrote chart", slog.String("file", o.pngPath))
	}
	return nil
}

// writeSCurve evaluates S at every grid point from the second sample on,
// the first cut that encloses two samples.
func writeSCurve(path string, columns []acario.Column) error {
	cuts := columns[0].Density.Momentum()[1:]
	curve := acario.SCurve{Cuts: cuts}
	for _, c := range columns {
		s, err := sw.Scan(c.Density, cuts)
		if err != nil {
			return fmt.Errorf("S curve for FWHM %g: %w", c.FWHM, err)
		}
		curve.FWHMs = append(curve.FWHMs, c.FWHM)
		curve.S = append(curve.S, s)
	}

	var buf bytes.Buffer
	if err := acario.WriteSCurve(&buf, curve); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
