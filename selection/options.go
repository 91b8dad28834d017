package selection

import "math"

// Option customizes Select.
type Option func(*config)

type config struct {
	threshold float64
	sigmaX    float64
	sigmaY    float64
	tolerance float64
}

func newConfig(opts ...Option) config {
	cfg := config{
		threshold: DefaultThreshold,
		sigmaX:    DefaultSigma,
		sigmaY:    DefaultSigma,
		tolerance: DefaultTolerance,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithThreshold sets the minimum accepted weight. Panics outside [0, 1].
func WithThreshold(t float64) Option {
	if t < 0 || t > 1 || math.IsNaN(t) {
		panic("selection: WithThreshold outside [0,1]")
	}
	return func(c *config) { c.threshold = t }
}

// WithSigma sets the MET resolution for both axes. Panics if s <= 0.
func WithSigma(sx, sy float64) Option {
	if !(sx > 0) || !(sy > 0) {
		panic("selection: WithSigma(s<=0)")
	}
	return func(c *config) { c.sigmaX, c.sigmaY = sx, sy }
}

// WithTolerance sets the imaginary-part tolerance. Panics if tol < 0.
func WithTolerance(tol float64) Option {
	if !(tol >= 0) {
		panic("selection: WithTolerance(tol<0)")
	}
	return func(c *config) { c.tolerance = tol }
}
