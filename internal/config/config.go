// Package config holds the enhancer's tunables, with defaults embedded as YAML.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Membership holds the four intensity thresholds partitioning the domain into
// dark, gray and bright zones. Dark..GrayLow and GrayHigh..Bright are the
// linear transition regions; equal endpoints make the transition a hard step.
type Membership struct {
	Dark     float64 `yaml:"dark"`
	GrayLow  float64 `yaml:"grayLow"`
	GrayHigh float64 `yaml:"grayHigh"`
	Bright   float64 `yaml:"bright"`
}

// Weights are the per-zone gain factors blended by membership degree.
type Weights struct {
	Dark   float64 `yaml:"dark"`
	Gray   float64 `yaml:"gray"`
	Bright float64 `yaml:"bright"`
}

type Config struct {
	Enhancement struct {
		Membership Membership `yaml:"membership"`
		Weights    Weights    `yaml:"weights"`
	} `yaml:"enhancement"`

	Output struct {
		// Directory is resolved against the working directory when relative
		Directory      string `yaml:"directory"`
		EnhancedPrefix string `yaml:"enhancedPrefix"`
		HistogramFile  string `yaml:"histogramFile"`
	} `yaml:"output"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// DefaultConfig returns the embedded defaults.
func DefaultConfig() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("embedded defaults.yaml is invalid: %v", err))
	}
	return cfg
}

// LoadConfig returns the embedded defaults with the LOG_LEVEL environment
// variable, when set, applied on top. Nothing else is read from outside the
// binary.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := c.Enhancement.Membership.Validate(); err != nil {
		return fmt.Errorf("enhancement.membership: %w", err)
	}

	w := c.Enhancement.Weights
	if w.Dark < 0 || w.Gray < 0 || w.Bright < 0 {
		return fmt.Errorf("enhancement.weights must be non-negative, got %+v", w)
	}

	if c.Output.Directory == "" {
		return fmt.Errorf("output.directory must not be empty")
	}
	if c.Output.HistogramFile == "" || filepath.Base(c.Output.HistogramFile) != c.Output.HistogramFile {
		return fmt.Errorf("output.histogramFile must be a bare file name, got %q", c.Output.HistogramFile)
	}
	return nil
}

// Validate requires 0 <= Dark <= GrayLow <= GrayHigh <= Bright <= 255.
func (m Membership) Validate() error {
	points := []float64{m.Dark, m.GrayLow, m.GrayHigh, m.Bright}
	for _, p := range points {
		if p < 0 || p > 255 {
			return fmt.Errorf("threshold %v outside [0,255]", p)
		}
	}
	for i := 1; i < len(points); i++ {
		if points[i] < points[i-1] {
			return fmt.Errorf("thresholds out of order: %v", points)
		}
	}
	return nil
}
