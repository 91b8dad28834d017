// SPDX-License-Identifier: MIT
// Package: grid
//
// grid.go - batched neutrino solving over the hypothesis grid.
//
// Purpose:
//   - Decode flat hypothesis indices into (m_t, η_t, η_t̄, jet row) without
//     materializing tiled axis arrays.
//   - Solve both branches per hypothesis and expose the 4·H candidates.
//
// Determinism & Performance:
//   - Every hypothesis writes only its own slot; output is identical for any Workers.
//   - Chunks run under errgroup; ctx is checked every batchSize hypotheses.
//   - O(H) time and memory, H = masses · etas² · rows.

package grid

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/ttreco/bjets"
	"github.com/katalvlaran/ttreco/kinematics"
	"github.com/katalvlaran/ttreco/leptons"
	"github.com/katalvlaran/ttreco/nusolve"
)

// batchSize is the number of hypotheses staged per SolveBatch call.
const batchSize = 4096

// RootCombinations is the number of (root_t, root_t̄) choices per hypothesis.
const RootCombinations = 4

// ErrNoAssignments indicates a nil or empty assignment table.
var ErrNoAssignments = errors.New("grid: no jet assignments")

// Engine holds the precomputed η and mass axes. It is immutable after New
// and safe for concurrent use.
type Engine struct {
	cfg    Config
	etas   []float64
	masses []float64
}

// New validates cfg and builds the axes.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Engine{
		cfg:    cfg,
		etas:   span(cfg.EtaPoints, cfg.EtaMin, cfg.EtaMax),
		masses: span(cfg.MassPoints, cfg.MassMin, cfg.MassMax),
	}, nil
}

// span returns n equally spaced points on [lo, hi], endpoints included.
func span(n int, lo, hi float64) []float64 {
	if n == 1 {
		return []float64{lo}
	}

	return floats.Span(make([]float64, n), lo, hi)
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// Etas returns a copy of the pseudorapidity axis.
func (e *Engine) Etas() []float64 { return append([]float64(nil), e.etas...) }

// Masses returns a copy of the parent-mass axis.
func (e *Engine) Masses() []float64 { return append([]float64(nil), e.masses...) }

// Size returns the number of hypotheses for rows assignment rows.
func (e *Engine) Size(rows int) int {
	p := len(e.etas)
	return len(e.masses) * p * p * rows
}

// Hypothesis is a decoded candidate.
type Hypothesis struct {
	Index       int // underlying hypothesis h
	Row         int // assignment row
	EtaTop      float64
	EtaAntiTop  float64
	MassTop     float64
	RootTop     int
	RootAntiTop int
}

// decode splits h into (mass index, η_t index, η_t̄ index, row).
func (e *Engine) decode(h, rows int) (m, it, itb, r int) {
	p := len(e.etas)
	r = h % rows
	rest := h / rows
	eIdx := rest % (p * p)
	m = rest / (p * p)

	return m, eIdx / p, eIdx % p, r
}

// Candidates holds both branch solutions of every hypothesis of one event.
type Candidates struct {
	engine  *Engine
	rows    int
	top     []nusolve.Solution
	antiTop []nusolve.Solution
}

// Len returns the number of candidates, 4·H.
func (c *Candidates) Len() int { return RootCombinations * len(c.top) }

// Hypotheses returns H.
func (c *Candidates) Hypotheses() int { return len(c.top) }

// split maps candidate i to (root combination, hypothesis).
func (c *Candidates) split(i int) (k, h int) {
	n := len(c.top)
	return i / n, i % n
}

// NuTop returns the top-branch neutrino (px, py) of candidate i.
func (c *Candidates) NuTop(i int) (px, py complex128) {
	k, h := c.split(i)
	s := &c.top[h]
	return s.Px[k/2], s.Py[k/2]
}

// NuAntiTop returns the antitop-branch neutrino (px, py) of candidate i.
func (c *Candidates) NuAntiTop(i int) (px, py complex128) {
	k, h := c.split(i)
	s := &c.antiTop[h]
	return s.Px[k%2], s.Py[k%2]
}

// TotalPx returns the summed neutrino px of candidate i.
func (c *Candidates) TotalPx(i int) complex128 {
	t, _ := c.NuTop(i)
	a, _ := c.NuAntiTop(i)
	return t + a
}

// TotalPy returns the summed neutrino py of candidate i.
func (c *Candidates) TotalPy(i int) complex128 {
	_, t := c.NuTop(i)
	_, a := c.NuAntiTop(i)
	return t + a
}

// Hypothesis decodes candidate i.
func (c *Candidates) Hypothesis(i int) Hypothesis {
	k, h := c.split(i)
	m, it, itb, r := c.engine.decode(h, c.rows)

	return Hypothesis{
		Index:       h,
		Row:         r,
		EtaTop:      c.engine.etas[it],
		EtaAntiTop:  c.engine.etas[itb],
		MassTop:     c.engine.masses[m],
		RootTop:     k / 2,
		RootAntiTop: k % 2,
	}
}

// branch is the per-branch, per-event constant input.
type branch struct {
	lepton [4]float64
	jets   [][4]float64
	jetM   []float64
}

// Evaluate solves both branches for every hypothesis of one event.
//
// Errors:
//   - ErrNoAssignments for a nil/empty table.
//   - ctx.Err() when cancelled mid-evaluation.
//
// Complexity: O(H) time, O(H) space.
func (e *Engine) Evaluate(ctx context.Context, pair leptons.Pair, a *bjets.Assignments) (*Candidates, error) {
	if a == nil || a.Len() == 0 {
		return nil, ErrNoAssignments
	}
	rows := a.Len()
	top, err := newBranch(pair.Top, a, true)
	if err != nil {
		return nil, err
	}
	anti, err := newBranch(pair.AntiTop, a, false)
	if err != nil {
		return nil, err
	}

	n := e.Size(rows)
	c := &Candidates{
		engine:  e,
		rows:    rows,
		top:     make([]nusolve.Solution, n),
		antiTop: make([]nusolve.Solution, n),
	}

	workers := e.cfg.Workers
	if workers < 1 {
		workers = 1
	}
	chunk := (n + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	for lo := 0; lo < n; lo += chunk {
		lo, hi := lo, min(lo+chunk, n)
		g.Go(func() error {
			return e.solveRange(gctx, top, anti, c, lo, hi)
		})
	}
	if err = g.Wait(); err != nil {
		return nil, fmt.Errorf("grid: evaluate: %w", err)
	}

	return c, nil
}

func newBranch(l leptons.Leg, a *bjets.Assignments, isTop bool) (*branch, error) {
	src, masses := a.AntiTop, a.AntiTopMass
	if isTop {
		src, masses = a.Top, a.TopMass
	}
	b := &branch{lepton: kinematics.Array(l.P4), jets: make([][4]float64, a.Len()), jetM: masses}
	for r := range b.jets {
		row, err := src.RowView(r)
		if err != nil {
			return nil, err
		}
		copy(b.jets[r][:], row)
	}

	return b, nil
}

// solveRange fills c.top[lo:hi] and c.antiTop[lo:hi] in batches.
func (e *Engine) solveRange(ctx context.Context, top, anti *branch, c *Candidates, lo, hi int) error {
	inT := make([]nusolve.Input, 0, batchSize)
	inA := make([]nusolve.Input, 0, batchSize)
	mw := e.cfg.MassW
	for start := lo; start < hi; start += batchSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := min(start+batchSize, hi)
		inT, inA = inT[:0], inA[:0]
		for h := start; h < end; h++ {
			m, it, itb, r := e.decode(h, c.rows)
			mt := e.masses[m]
			inT = append(inT, nusolve.Input{
				Eta: e.etas[it], Lepton: top.lepton, Jet: top.jets[r],
				MassTop: mt, MassB: top.jetM[r], MassW: mw,
			})
			inA = append(inA, nusolve.Input{
				Eta: e.etas[itb], Lepton: anti.lepton, Jet: anti.jets[r],
				MassTop: mt, MassB: anti.jetM[r], MassW: mw,
			})
		}
		nusolve.SolveBatch(inT, c.top[start:end])
		nusolve.SolveBatch(inA, c.antiTop[start:end])
	}

	return nil
}
