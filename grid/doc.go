// Package grid evaluates the neutrino solver over the full hypothesis
// space of one event.
//
// A hypothesis fixes the b-jet assignment row r (see bjets), the neutrino
// pseudorapidity of each branch (η_t, η_t̄) and the parent mass m_t.
// With A assignment rows, P η points and M mass points the H = M·P²·A
// hypotheses are indexed
//
//	h = m·(P²·A) + e·A + r,   e = iη_t·P + iη_t̄
//
// Both branches are solved for every h, and the two roots per branch give
// four candidates per hypothesis, ordered by root combination
// k = 2·root_t + root_t̄ (outer) and h (inner): candidate i = k·H + h.
//
// Default grid: 51 η points on [−5, 5] per branch, 7 mass points on
// [171, 174] GeV, m_W = 80.4 GeV.
//
// Concurrency:
//
//	Evaluate splits [0, H) into contiguous chunks solved by Config.Workers
//	goroutines (errgroup). Each goroutine writes a disjoint slice range, so
//	the output is identical for every worker count. Cancellation is
//	observed between batches of the inner loop.
package grid
