package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/ttreco/bjets"
	"github.com/katalvlaran/ttreco/grid"
	"github.com/katalvlaran/ttreco/reco"
	"github.com/katalvlaran/ttreco/selection"
)

// ErrInvalid indicates a configuration value out of range.
var ErrInvalid = errors.New("config: invalid")

// Config is the full run configuration.
type Config struct {
	Seed       int64   `yaml:"seed" json:"seed"`
	Workers    int     `yaml:"workers" json:"workers"`
	BatchSize  int     `yaml:"batch_size" json:"batch_size"`
	SmearDraws int     `yaml:"smear_draws" json:"smear_draws"`
	Resolution float64 `yaml:"resolution" json:"resolution"`
	Threshold  float64 `yaml:"threshold" json:"threshold"`
	Sigma      float64 `yaml:"sigma" json:"sigma"`
	Tolerance  float64 `yaml:"tolerance" json:"tolerance"`

	Grid grid.Config `yaml:"grid" json:"grid"`

	Input       string `yaml:"input" json:"input"`
	Output      string `yaml:"output" json:"output"`
	YODA        string `yaml:"yoda" json:"yoda"`
	MetricsAddr string `yaml:"metrics_addr" json:"metrics_addr"`
	LogLevel    string `yaml:"log_level" json:"log_level"`
}

// Default returns the standard configuration.
func Default() Config {
	return Config{
		Seed:       reco.DefaultSeed,
		Workers:    runtime.GOMAXPROCS(0),
		BatchSize:  1000,
		SmearDraws: bjets.DefaultDraws,
		Resolution: bjets.DefaultResolution,
		Threshold:  selection.DefaultThreshold,
		Sigma:      selection.DefaultSigma,
		Tolerance:  selection.DefaultTolerance,
		Grid:       grid.DefaultConfig(),
		Output:     "ttreco.db",
		LogLevel:   "info",
	}
}

// Load reads path over Default and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes YAML over Default and validates the result.
// Empty input yields Default.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	switch {
	case c.Workers < 1:
		return fmt.Errorf("%w: workers %d", ErrInvalid, c.Workers)
	case c.BatchSize < 1:
		return fmt.Errorf("%w: batch_size %d", ErrInvalid, c.BatchSize)
	case c.SmearDraws < 1:
		return fmt.Errorf("%w: smear_draws %d", ErrInvalid, c.SmearDraws)
	case !(c.Resolution >= 0):
		return fmt.Errorf("%w: resolution %g", ErrInvalid, c.Resolution)
	case !(c.Threshold >= 0 && c.Threshold <= 1):
		return fmt.Errorf("%w: threshold %g", ErrInvalid, c.Threshold)
	case !(c.Sigma > 0):
		return fmt.Errorf("%w: sigma %g", ErrInvalid, c.Sigma)
	case !(c.Tolerance >= 0):
		return fmt.Errorf("%w: tolerance %g", ErrInvalid, c.Tolerance)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	if err := c.Grid.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return nil
}

// Level parses LogLevel ("debug", "info", "warn", "error").
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(c.LogLevel))
	return l, err
}

// RecoOptions translates c into reconstructor options. c must be valid.
func (c Config) RecoOptions(logger *slog.Logger) []reco.Option {
	opts := []reco.Option{
		reco.WithGrid(c.Grid),
		reco.WithSmearDraws(c.SmearDraws),
		reco.WithResolution(c.Resolution),
		reco.WithThreshold(c.Threshold),
		reco.WithSigma(c.Sigma, c.Sigma),
		reco.WithTolerance(c.Tolerance),
	}
	if logger != nil {
		opts = append(opts, reco.WithLogger(logger))
	}

	return opts
}

// JSON returns the snapshot stored alongside a run.
func (c Config) JSON() ([]byte, error) {
	return json.Marshal(c)
}
