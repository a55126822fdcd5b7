package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "acar.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("ACAR_CONVOLUTION_METHOD", "fft")
	t.Setenv("ACAR_CONVOLUTION_MOMENTUM_SCALE", "7.298202236578298")
	t.Setenv("ACAR_LOGGING_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "fft", cfg.Convolution.Method)
	assert.InDelta(t, 7.298202236578298, cfg.Convolution.MomentumScale, 1e-15)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 2, cfg.Input.HeaderLines)
}

func TestLoadFileOverridesEnvironment(t *testing.T) {
	t.Setenv("ACAR_CONVOLUTION_METHOD", "fft")
	path := writeFile(t, `
convolution:
  method: direct
  gaussian_range: 4.5
input:
  max_rows: 1200
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "direct", cfg.Convolution.Method)
	assert.InDelta(t, 4.5, cfg.Convolution.GaussianRange, 0)
	assert.Equal(t, 1200, cfg.Input.MaxRows)
	// Untouched keys keep their defaults.
	assert.InDelta(t, 3.91, cfg.Convolution.FWHMScale, 0)
	assert.Equal(t, "sampled", cfg.SW.Boundary)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown method", content: "convolution:\n  method: overlap\n"},
		{name: "zero fwhm scale", content: "convolution:\n  fwhm_scale: 0\n"},
		{name: "negative cutoff", content: "input:\n  momentum_cutoff: -1\n"},
		{name: "unknown key", content: "convolution:\n  methd: fft\n"},
		{name: "bad log format", content: "logging:\n  format: xml\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.content))
			require.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadBadEnvironment(t *testing.T) {
	t.Setenv("ACAR_INPUT_HEADER_LINES", "two")
	_, err := Load("")
	require.Error(t, err)
}
