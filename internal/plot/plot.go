// Package plot renders momentum densities as interactive HTML charts
// (go-echarts) and static PNG images (gonum/plot).
package plot

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/cwbudde/algo-acar/acar/spectrum"
)

// ErrNoSeries is returned when a chart has nothing to draw.
var ErrNoSeries = errors.New("plot: chart has no series")

// Image size of PNG output.
const (
	pngWidth  = 8 * vg.Inch
	pngHeight = 5 * vg.Inch
)

// Series is one named density curve.
type Series struct {
	Name    string
	Density *spectrum.Spectrum
}

// Chart describes a figure with one or more curves on a shared axis pair.
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	LogY   bool
	Series []Series
}

// Add appends a series.
func (c *Chart) Add(name string, s *spectrum.Spectrum) {
	c.Series = append(c.Series, Series{Name: name, Density: s})
}

func (c Chart) validate() error {
	if len(c.Series) == 0 {
		return ErrNoSeries
	}
	for i, s := range c.Series {
		if s.Density == nil {
			return fmt.Errorf("plot: series %d (%q) has no data", i, s.Name)
		}
	}
	return nil
}

// RenderHTML writes c as a self-contained echarts page.
func RenderHTML(w io.Writer, c Chart) error {
	if err := c.validate(); err != nil {
		return err
	}

	yType := "value"
	if c.LogY {
		yType = "log"
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:     "100%",
			Height:    "600px",
			PageTitle: c.Title,
		}),
		charts.WithTitleOpts(opts.Title{Title: c.Title}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:         opts.Bool(true),
			SelectedMode: "multiple",
			Type:         "scroll",
			Top:          "30px",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: c.XLabel,
			Type: "value",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  c.YLabel,
			Type:  yType,
			Show:  opts.Bool(true),
			Scale: opts.Bool(true),
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
	)

	for _, s := range c.Series {
		line.AddSeries(s.Name, lineData(s.Density, c.LogY),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))
	}

	if err := line.Render(w); err != nil {
		return fmt.Errorf("plot: render html: %w", err)
	}
	return nil
}

func lineData(s *spectrum.Spectrum, logY bool) []opts.LineData {
	data := make([]opts.LineData, 0, s.Len())
	for _, p := range s.Samples() {
		if logY && p.Rate <= 0 {
			continue
		}
		data = append(data, opts.LineData{Value: []float64{p.Momentum, p.Rate}})
	}
	return data
}

// WritePNG draws c with gonum/plot and writes the PNG encoding to w.
func WritePNG(w io.Writer, c Chart) error {
	p, err := build(c)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(pngWidth, pngHeight, "png")
	if err != nil {
		return fmt.Errorf("plot: png: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("plot: png: %w", err)
	}
	return nil
}

// SavePNG draws c and saves it to path. The format follows the extension.
func SavePNG(path string, c Chart) error {
	p, err := build(c)
	if err != nil {
		return err
	}
	if err := p.Save(pngWidth, pngHeight, path); err != nil {
		return fmt.Errorf("plot: save %s: %w", path, err)
	}
	return nil
}

func build(c Chart) (*gplot.Plot, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}

	p := gplot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel
	p.Add(plotter.NewGrid())
	if c.LogY {
		p.Y.Scale = gplot.LogScale{}
		p.Y.Tick.Marker = gplot.LogTicks{Prec: -1}
	}

	for i, s := range c.Series {
		xys := points(s.Density, c.LogY)
		if len(xys) == 0 {
			return nil, fmt.Errorf("plot: series %q has no positive samples for a log axis", s.Name)
		}
		l, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("plot: series %q: %w", s.Name, err)
		}
		l.LineStyle.Width = vg.Points(1.5)
		l.LineStyle.Color = plotutil.Color(i)
		p.Add(l)
		p.Legend.Add(s.Name, l)
	}
	p.Legend.Top = true

	return p, nil
}

func points(s *spectrum.Spectrum, logY bool) plotter.XYs {
	xys := make(plotter.XYs, 0, s.Len())
	for _, smp := range s.Samples() {
		if logY && smp.Rate <= 0 {
			continue
		}
		xys = append(xys, plotter.XY{X: smp.Momentum, Y: smp.Rate})
	}
	return xys
}
