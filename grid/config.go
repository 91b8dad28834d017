package grid

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/ttreco/event"
)

// ErrBadGrid indicates an unusable grid configuration.
var ErrBadGrid = errors.New("grid: invalid configuration")

// Config describes the scanned hypothesis space.
type Config struct {
	EtaMin    float64 `yaml:"eta_min"`
	EtaMax    float64 `yaml:"eta_max"`
	EtaPoints int     `yaml:"eta_points"`

	MassMin    float64 `yaml:"mass_min"`
	MassMax    float64 `yaml:"mass_max"`
	MassPoints int     `yaml:"mass_points"`

	MassW float64 `yaml:"mass_w"`

	// Workers bounds the goroutines used inside one event; <= 1 is sequential.
	Workers int `yaml:"workers"`
}

// Defaults.
const (
	DefaultEtaMin     = -5.0
	DefaultEtaMax     = 5.0
	DefaultEtaPoints  = 51
	DefaultMassMin    = 171.0
	DefaultMassMax    = 174.0
	DefaultMassPoints = 7
)

// DefaultConfig returns the standard 51×51×7 grid.
func DefaultConfig() Config {
	return Config{
		EtaMin:     DefaultEtaMin,
		EtaMax:     DefaultEtaMax,
		EtaPoints:  DefaultEtaPoints,
		MassMin:    DefaultMassMin,
		MassMax:    DefaultMassMax,
		MassPoints: DefaultMassPoints,
		MassW:      event.MassW,
		Workers:    1,
	}
}

// Validate checks point counts, range ordering and the W mass.
// A single-point axis requires min == max.
func (c Config) Validate() error {
	switch {
	case c.EtaPoints < 1 || c.MassPoints < 1:
		return fmt.Errorf("points eta=%d mass=%d: %w", c.EtaPoints, c.MassPoints, ErrBadGrid)
	case c.EtaMin > c.EtaMax:
		return fmt.Errorf("eta range [%g, %g]: %w", c.EtaMin, c.EtaMax, ErrBadGrid)
	case c.MassMin > c.MassMax || c.MassMin <= 0:
		return fmt.Errorf("mass range [%g, %g]: %w", c.MassMin, c.MassMax, ErrBadGrid)
	case c.EtaPoints == 1 && c.EtaMin != c.EtaMax:
		return fmt.Errorf("single eta point on [%g, %g]: %w", c.EtaMin, c.EtaMax, ErrBadGrid)
	case c.MassPoints == 1 && c.MassMin != c.MassMax:
		return fmt.Errorf("single mass point on [%g, %g]: %w", c.MassMin, c.MassMax, ErrBadGrid)
	case c.MassW <= 0:
		return fmt.Errorf("mass_w %g: %w", c.MassW, ErrBadGrid)
	}

	return nil
}
