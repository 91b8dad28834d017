package reco

import (
	"io"
	"log/slog"
	"math"

	"github.com/katalvlaran/ttreco/bjets"
	"github.com/katalvlaran/ttreco/grid"
	"github.com/katalvlaran/ttreco/selection"
)

// Option customizes a Reconstructor.
type Option func(*config)

type config struct {
	grid    grid.Config
	jets    []bjets.Option
	filters []selection.Option
	logger  *slog.Logger
}

func newConfig(opts ...Option) config {
	cfg := config{
		grid:   grid.DefaultConfig(),
		logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)})),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithGrid replaces the hypothesis grid. It is validated by New.
func WithGrid(g grid.Config) Option {
	return func(c *config) { c.grid = g }
}

// WithSmearDraws sets the number of jet resolution draws. Panics if n < 1.
func WithSmearDraws(n int) Option {
	o := bjets.WithDraws(n)
	return func(c *config) { c.jets = append(c.jets, o) }
}

// WithResolution sets the relative jet pt resolution. Panics if r < 0.
func WithResolution(r float64) Option {
	o := bjets.WithResolution(r)
	return func(c *config) { c.jets = append(c.jets, o) }
}

// WithThreshold sets the minimum accepted weight. Panics outside [0, 1].
func WithThreshold(t float64) Option {
	o := selection.WithThreshold(t)
	return func(c *config) { c.filters = append(c.filters, o) }
}

// WithSigma sets the MET resolution per axis. Panics if either is <= 0.
func WithSigma(sx, sy float64) Option {
	o := selection.WithSigma(sx, sy)
	return func(c *config) { c.filters = append(c.filters, o) }
}

// WithTolerance sets the imaginary-part tolerance. Panics if tol < 0.
func WithTolerance(tol float64) Option {
	o := selection.WithTolerance(tol)
	return func(c *config) { c.filters = append(c.filters, o) }
}

// WithLogger sets the debug logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("reco: WithLogger(nil)")
	}
	return func(c *config) { c.logger = l }
}
