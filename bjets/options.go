package bjets

import "math/rand"

// Defaults for the resolution model.
const (
	DefaultDraws      = 5
	DefaultResolution = 0.14
)

// Option customizes Enumerate.
type Option func(*config)

type config struct {
	draws      int
	resolution float64
	rng        *rand.Rand
}

func newConfig(opts ...Option) config {
	cfg := config{draws: DefaultDraws, resolution: DefaultResolution}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithDraws sets the number of smeared realisations per jet.
// Panics if n < 1.
func WithDraws(n int) Option {
	if n < 1 {
		panic("bjets: WithDraws(n<1)")
	}
	return func(c *config) { c.draws = n }
}

// WithResolution sets the relative pt resolution (standard deviation / pt).
// Panics if r < 0; r == 0 disables smearing but still consumes draws.
func WithResolution(r float64) Option {
	if r < 0 {
		panic("bjets: WithResolution(r<0)")
	}
	return func(c *config) { c.resolution = r }
}

// WithRand provides the RNG for the resolution draws. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("bjets: WithRand(nil)")
	}
	return func(c *config) { c.rng = r }
}
