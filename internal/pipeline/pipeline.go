// Package pipeline runs the convolution of one calculated half spectrum at
// several experimental resolutions and, optionally, the S/W extraction of
// each result.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-acar/acar/convolution"
	"github.com/cwbudde/algo-acar/acar/spectrum"
	"github.com/cwbudde/algo-acar/acar/sw"
	"github.com/cwbudde/algo-acar/dsp/conv"
	"github.com/cwbudde/algo-acar/internal/acario"
	"github.com/cwbudde/algo-acar/internal/config"
)

// ErrNoResolution is returned when a request names no FWHM.
var ErrNoResolution = errors.New("pipeline: at least one FWHM is required")

// Request is one run.
type Request struct {
	Half *spectrum.Spectrum
	// FWHMs in the command-line unit; each is multiplied by the configured
	// FWHM scale before convolution.
	FWHMs []float64
	// GaussianRange overrides the configured kernel half width when > 0.
	GaussianRange float64
	// Window enables S/W extraction when not nil.
	Window *sw.Window
}

// Result holds one column per FWHM, in request order, and the matching S/W
// pairs when a window was requested.
type Result struct {
	Columns []acario.Column
	SW      []sw.Result
}

// Runner is configured once and may serve several requests.
type Runner struct {
	engine        *convolution.Engine
	fwhmScale     float64
	gaussianRange float64
	boundary      sw.Boundary
	logger        *slog.Logger
}

// New builds a Runner from cfg.
func New(cfg config.Config, logger *slog.Logger) (*Runner, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	method, err := conv.ParseMethod(cfg.Convolution.Method)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	alignment, err := convolution.ParseAlignment(cfg.Convolution.Alignment)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	boundary, err := sw.ParseBoundary(cfg.SW.Boundary)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	opts := []convolution.Option{
		convolution.WithMethod(method),
		convolution.WithAlignment(alignment),
		convolution.WithMomentumScale(cfg.Convolution.MomentumScale),
		convolution.WithSpacingTolerance(cfg.Input.SpacingTolerance),
		convolution.WithLogger(logger),
	}
	if cfg.Convolution.StrictRange {
		opts = append(opts, convolution.WithStrictRange())
	}
	engine, err := convolution.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	return &Runner{
		engine:        engine,
		fwhmScale:     cfg.Convolution.FWHMScale,
		gaussianRange: cfg.Convolution.GaussianRange,
		boundary:      boundary,
		logger:        logger,
	}, nil
}

// Run convolves req.Half once per FWHM. Resolutions are processed
// concurrently; the first failure cancels the others.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	if req.Half == nil {
		return nil, errors.New("pipeline: no input spectrum")
	}
	if len(req.FWHMs) == 0 {
		return nil, ErrNoResolution
	}
	if req.Window != nil {
		if err := req.Window.Validate(); err != nil {
			return nil, fmt.Errorf("pipeline: %w", err)
		}
	}

	rng := r.rangeFor(req)
	spacing := req.Half.Spacing()

	res := &Result{Columns: make([]acario.Column, len(req.FWHMs))}
	if req.Window != nil {
		res.SW = make([]sw.Result, len(req.FWHMs))
	}

	g, ctx := errgroup.WithContext(ctx)
	for i, fwhm := range req.FWHMs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			start := time.Now()
			density, err := r.engine.Process(req.Half, convolution.Params{
				FWHM:          fwhm * r.fwhmScale,
				GaussianRange: rng,
				Spacing:       spacing,
			})
			if err != nil {
				return fmt.Errorf("FWHM %g: %w", fwhm, err)
			}
			res.Columns[i] = acario.Column{FWHM: fwhm, Density: density}

			if req.Window != nil {
				p, err := sw.Compute(density, *req.Window, sw.WithBoundary(r.boundary))
				if err != nil {
					return fmt.Errorf("FWHM %g: %w", fwhm, err)
				}
				res.SW[i] = p
			}

			r.logger.Debug("resolution done",
				slog.Int("index", i+1),
				slog.Float64("fwhm", fwhm),
				slog.Duration("elapsed", time.Since(start)),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	return res, nil
}

func (r *Runner) rangeFor(req Request) float64 {
	switch {
	case req.GaussianRange > 0:
		return req.GaussianRange
	case r.gaussianRange > 0:
		return r.gaussianRange
	default:
		return req.Half.Max()
	}
}
