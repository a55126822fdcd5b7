package plot

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-acar/acar/spectrum"
)

func testChart(t *testing.T) Chart {
	t.Helper()
	s, err := spectrum.New([]float64{0, 0.5, 1, 1.5}, []float64{1, 0.5, 0.1, 0})
	require.NoError(t, err)

	c := Chart{Title: "al 100", XLabel: "Momentum (a.u.)", YLabel: "Rate"}
	c.Add("FWHM1=0.900", s)
	return c
}

func TestRenderHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, testChart(t)))

	html := buf.String()
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "FWHM1=0.900")
	assert.Contains(t, html, "al 100")
}

func TestRenderHTMLLogAxis(t *testing.T) {
	c := testChart(t)
	c.LogY = true

	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, c))
	assert.Contains(t, buf.String(), `"log"`)
}

func TestWritePNG(t *testing.T) {
	for _, logY := range []bool{false, true} {
		c := testChart(t)
		c.LogY = logY

		var buf bytes.Buffer
		require.NoError(t, WritePNG(&buf, c))

		img, err := png.Decode(&buf)
		require.NoError(t, err)
		assert.Positive(t, img.Bounds().Dx())
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.png")
	require.NoError(t, SavePNG(path, testChart(t)))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestEmptyChart(t *testing.T) {
	require.ErrorIs(t, RenderHTML(&bytes.Buffer{}, Chart{}), ErrNoSeries)
	require.ErrorIs(t, WritePNG(&bytes.Buffer{}, Chart{}), ErrNoSeries)
}

func TestLogAxisWithoutPositiveSamples(t *testing.T) {
	s, err := spectrum.New([]float64{0, 1}, []float64{0, -1})
	require.NoError(t, err)

	c := Chart{LogY: true}
	c.Add("zero", s)
	require.Error(t, WritePNG(&bytes.Buffer{}, c))
}
