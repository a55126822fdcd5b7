// Command acarplot draws one or more 1D-ACAR files into a single chart, for
// example the projections of one material along several directions.
//
// Usage:
//
//	acarplot [flags] file...
//
// The output format follows the extension of -o: .html renders an
// interactive echarts page, anything else a static image.
//
// Examples:
//
//	acarplot -o al.html al-acar1d_100.dat al-acar1d_110.dat al-acar1d_111.dat
//	acarplot -o al.png -log al-acar1d_100.dat
//	acarplot -header 4 -column 2 -o conv.png al_conv.dat
//	acarplot -cutoff 5.5 -o raw.png al-acar1d_100.dat
//
// Rows are not cut by momentum unless -cutoff is given, so tables written
// with a scaled momentum axis plot in full.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-acar/acar/spectrum"
	"github.com/cwbudde/algo-acar/internal/acario"
	"github.com/cwbudde/algo-acar/internal/config"
	"github.com/cwbudde/algo-acar/internal/logging"
	"github.com/cwbudde/algo-acar/internal/plot"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			slog.Error("acarplot failed", slog.Any("error", err))
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("acarplot", flag.ContinueOnError)
	fs.SetOutput(stderr)
	out := fs.String("o", "acar.html", "output file (.html, .png, .svg or .pdf)")
	logY := fs.Bool("log", false, "logarithmic rate axis")
	title := fs.String("title", "", "chart title")
	header := fs.Int("header", -1, "header lines to skip (-1 uses the configuration)")
	column := fs.Int("column", 1, "rate column to plot, counted after the momentum column")
	cutoff := fs.Float64("cutoff", 0, "drop rows with momentum above this value; 0 keeps every row")
	configPath := fs.String("config", "", "YAML configuration file")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: acarplot [flags] file...\n\n")
		fmt.Fprintf(stderr, "Plots 1D-ACAR files into one chart.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	files := fs.Args()
	if len(files) == 0 {
		fs.Usage()
		return errors.New("no input files")
	}
	if *column < 1 {
		return fmt.Errorf("-column must be >= 1, got %d", *column)
	}
	if *cutoff < 0 {
		return fmt.Errorf("-cutoff must be >= 0, got %g", *cutoff)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Logging, stderr)
	if err != nil {
		return err
	}
	logger = logging.WithComponent(logger, "acarplot")

	opts := readOptions(cfg.Input, *header, *column, *cutoff)
	spectra, err := readAll(ctx, files, opts, logger)
	if err != nil {
		return err
	}

	chart := plot.Chart{
		Title:  *title,
		XLabel: "Momentum",
		YLabel: "Annihilation rate",
		LogY:   *logY,
	}
	for i, path := range files {
		chart.Add(seriesName(path), spectra[i])
	}

	if err := save(*out, chart); err != nil {
		return err
	}
	logger.Info("wrote chart", slog.String("file", *out), slog.Int("series", len(files)))
	return nil
}

// readOptions keeps the configured spacing tolerance and row limit but not the
// configured momentum cutoff, which is in the unit of raw simulation input
// while plotted tables may carry a scaled axis.
func readOptions(in config.InputConfig, header, column int, cutoff float64) acario.ReadOptions {
	opts := acario.ReadOptions{
		HeaderLines:      in.HeaderLines,
		Cutoff:           cutoff,
		MaxRows:          in.MaxRows,
		SpacingTolerance: in.SpacingTolerance,
		RateColumn:       column,
	}
	if header >= 0 {
		opts.HeaderLines = header
	}
	return opts
}

func readAll(ctx context.Context, files []string, opts acario.ReadOptions, logger *slog.Logger) ([]*spectrum.Spectrum, error) {
	spectra := make([]*spectrum.Spectrum, len(files))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := acario.ReadFile(path, opts)
			if err != nil {
				return err
			}
			spectra[i] = s
			logger.Debug("read spectrum", slog.String("file", path), slog.Int("samples", s.Len()))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return spectra, nil
}

func seriesName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func save(path string, chart plot.Chart) error {
	if !strings.EqualFold(filepath.Ext(path), ".html") {
		return plot.SavePNG(path, chart)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := plot.RenderHTML(f, chart); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
