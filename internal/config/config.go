// Package config loads the settings of the ACAR command-line tools.
//
// Values come from, in increasing precedence: struct defaults, ACAR_*
// environment variables, and an optional YAML file. Command-line flags are
// applied on top by the callers.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix is the prefix of all environment variables, e.g.
// ACAR_CONVOLUTION_METHOD or ACAR_LOGGING_LEVEL.
const EnvPrefix = "ACAR"

// Config is the complete tool configuration.
type Config struct {
	Convolution ConvolutionConfig `yaml:"convolution" envconfig:"CONVOLUTION"`
	SW          SWConfig          `yaml:"sw" envconfig:"SW"`
	Input       InputConfig       `yaml:"input" envconfig:"INPUT"`
	Logging     LoggingConfig     `yaml:"logging" envconfig:"LOGGING"`
}

// ConvolutionConfig controls resolution broadening.
type ConvolutionConfig struct {
	// FWHMScale converts the FWHM given on the command line (keV) to 1e-3 m0c.
	FWHMScale float64 `yaml:"fwhm_scale" envconfig:"FWHM_SCALE" default:"3.91" validate:"gt=0"`
	// MomentumScale multiplies the output momentum axis; 1 keeps the input unit.
	MomentumScale float64 `yaml:"momentum_scale" envconfig:"MOMENTUM_SCALE" default:"1" validate:"gt=0"`
	// GaussianRange is the kernel half width; 0 uses the largest input momentum.
	GaussianRange float64 `yaml:"gaussian_range" envconfig:"GAUSSIAN_RANGE" default:"0" validate:"gte=0"`
	Method        string  `yaml:"method" envconfig:"METHOD" default:"direct" validate:"oneof=direct fft"`
	Alignment     string  `yaml:"alignment" envconfig:"ALIGNMENT" default:"zero-offset" validate:"oneof=zero-offset numpy"`
	StrictRange   bool    `yaml:"strict_range" envconfig:"STRICT_RANGE" default:"false"`
}

// SWConfig controls S/W extraction.
type SWConfig struct {
	Boundary string `yaml:"boundary" envconfig:"BOUNDARY" default:"sampled" validate:"oneof=sampled interpolated"`
}

// InputConfig controls how acar1d files are read.
type InputConfig struct {
	HeaderLines      int     `yaml:"header_lines" envconfig:"HEADER_LINES" default:"2" validate:"gte=0"`
	MomentumCutoff   float64 `yaml:"momentum_cutoff" envconfig:"MOMENTUM_CUTOFF" default:"5.5" validate:"gte=0"`
	MaxRows          int     `yaml:"max_rows" envconfig:"MAX_ROWS" default:"0" validate:"gte=0"`
	SpacingTolerance float64 `yaml:"spacing_tolerance" envconfig:"SPACING_TOLERANCE" default:"1e-6" validate:"gt=0,lt=1"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"text" validate:"oneof=text json"`
}

// Load reads defaults and environment variables, then overlays the YAML file
// at path when path is not empty, and validates the result.
func Load(path string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration with every default applied and no
// environment or file overrides.
func Default() Config {
	return Config{
		Convolution: ConvolutionConfig{
			FWHMScale:     3.91,
			MomentumScale: 1,
			Method:        "direct",
			Alignment:     "zero-offset",
		},
		SW: SWConfig{Boundary: "sampled"},
		Input: InputConfig{
			HeaderLines:      2,
			MomentumCutoff:   5.5,
			SpacingTolerance: 1e-6,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// loadFromFile overlays the YAML document at path onto cfg. Keys missing
// from the file keep their current values.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.UnmarshalStrict(data, cfg)
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return fmt.Errorf("%s: failed %q constraint (value %v)", f.Namespace(), f.ActualTag(), f.Value())
		}
		return err
	}
	return nil
}
