// Package bjets enumerates the candidate b-jet assignments of an event.
//
// Which jet belongs to which decay branch is unknown, so every ordered pair
// of distinct jets (i, j), i ≠ j, is a candidate: jet i on the top branch,
// jet j on the antitop branch. N jets give N·(N−1) assignments.
//
// Jet-energy resolution is emulated by drawing several Gaussian
// realisations of every jet's transverse momentum,
//
//	pt' ~ N(pt, (resolution·pt)²)     default: 5 draws, resolution 0.14
//
// and crossing every draw with every assignment. Rows are ordered draw
// outer, assignment inner.
//
// Determinism: the RNG is explicit (WithRand); identical RNG state gives
// identical output. A *rand.Rand is not goroutine-safe; use one per worker.
package bjets
