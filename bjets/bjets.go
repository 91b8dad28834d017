// SPDX-License-Identifier: MIT
// Package: bjets
//
// bjets.go - pair enumeration and resolution smearing.
//
// Purpose:
//   - Expand n b-jets into draws × n·(n−1) ordered (top, antitop) rows.
//   - Smear all jet pts once per draw, then gather both branches from one table.
//
// Determinism & Performance:
//   - Row order is draw-major, pairs in Permutations order inside a draw.
//   - The only randomness is the caller's *rand.Rand; equal streams give equal rows.
//   - O(draws·n²) rows, one FourMomenta table of draws·n rows.

package bjets

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/ttreco/event"
	"github.com/katalvlaran/ttreco/kinematics"
	"github.com/katalvlaran/ttreco/matrix"
)

var (
	// ErrTooFewJets: fewer than two b-jet candidates.
	ErrTooFewJets = errors.New("bjets: fewer than two b-jets")

	// ErrNeedRand: Enumerate was called without WithRand.
	ErrNeedRand = errors.New("bjets: rng is required")
)

// Assignments is the expanded (draw × ordered pair) jet table of one event.
// Row r = draw*len(Pairs) + p carries jet Pairs[p][0] smeared with draw
// `draw` on the top branch and jet Pairs[p][1] on the antitop branch.
type Assignments struct {
	Top         *matrix.Dense // N×4 top-branch jet four-momenta
	AntiTop     *matrix.Dense // N×4 antitop-branch jet four-momenta
	TopMass     []float64     // jet masses, top branch
	AntiTopMass []float64     // jet masses, antitop branch
	Pairs       [][2]int      // ordered jet index pairs
	Draws       int           // smear draws
}

// Len returns the number of assignment rows.
func (a *Assignments) Len() int { return len(a.TopMass) }

// Decode splits a row index into (draw, pair) indices.
func (a *Assignments) Decode(row int) (draw, pair int) {
	return row / len(a.Pairs), row % len(a.Pairs)
}

// Permutations lists every ordered pair of distinct indices in [0, n),
// lexicographically: (0,1), (0,2), …, (1,0), (1,2), …
// Returns nil for n < 2.
// Complexity: O(n²).
func Permutations(n int) [][2]int {
	if n < 2 {
		return nil
	}
	out := make([][2]int, 0, n*(n-1))
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				out = append(out, [2]int{i, j})
			}
		}
	}

	return out
}

// Smear draws `draws` Gaussian realisations of every pt with standard
// deviation resolution·pt. out[d][k] is draw d of jet k; draws are consumed
// draw-major, jet-minor.
// Complexity: O(draws·len(pt)).
func Smear(pt []float64, draws int, resolution float64, rng *rand.Rand) [][]float64 {
	out := make([][]float64, draws)
	for d := range out {
		row := make([]float64, len(pt))
		for k, v := range pt {
			row[k] = v + rng.NormFloat64()*v*resolution
		}
		out[d] = row
	}

	return out
}

// Enumerate expands jets into the full assignment table.
//
// Errors:
//   - ErrTooFewJets for fewer than two jets (no RNG draws are consumed).
//   - ErrNeedRand when no RNG was configured.
//
// Complexity: O(draws·n²).
func Enumerate(jets []event.Jet, opts ...Option) (*Assignments, error) {
	n := len(jets)
	if n < 2 {
		return nil, ErrTooFewJets
	}
	cfg := newConfig(opts...)
	if cfg.rng == nil {
		return nil, ErrNeedRand
	}

	pt := make([]float64, n)
	for k, j := range jets {
		pt[k] = j.Pt
	}
	smeared := Smear(pt, cfg.draws, cfg.resolution, cfg.rng)
	pairs := Permutations(n)

	// every smeared jet once: row d*n+k is jet k in draw d
	all := cfg.draws * n
	cols := [4][]float64{make([]float64, 0, all), make([]float64, 0, all), make([]float64, 0, all), make([]float64, 0, all)}
	for d := range smeared {
		for k, j := range jets {
			cols[0] = append(cols[0], smeared[d][k])
			cols[1] = append(cols[1], j.Phi)
			cols[2] = append(cols[2], j.Eta)
			cols[3] = append(cols[3], j.Mass)
		}
	}
	p4, err := kinematics.FourMomenta(cols[0], cols[1], cols[2], cols[3])
	if err != nil {
		return nil, fmt.Errorf("Enumerate: %w", err)
	}

	rows := cfg.draws * len(pairs)
	topIdx, antiIdx := make([]int, 0, rows), make([]int, 0, rows)
	topMass, antiMass := make([]float64, 0, rows), make([]float64, 0, rows)
	for d := 0; d < cfg.draws; d++ {
		for _, p := range pairs {
			topIdx = append(topIdx, d*n+p[0])
			antiIdx = append(antiIdx, d*n+p[1])
			topMass = append(topMass, jets[p[0]].Mass)
			antiMass = append(antiMass, jets[p[1]].Mass)
		}
	}
	top, err := matrix.Gather(p4, topIdx)
	if err != nil {
		return nil, fmt.Errorf("Enumerate: top branch: %w", err)
	}
	anti, err := matrix.Gather(p4, antiIdx)
	if err != nil {
		return nil, fmt.Errorf("Enumerate: antitop branch: %w", err)
	}

	return &Assignments{
		Top:         top,
		AntiTop:     anti,
		TopMass:     topMass,
		AntiTopMass: antiMass,
		Pairs:       pairs,
		Draws:       cfg.draws,
	}, nil
}
