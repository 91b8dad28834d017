package selection

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Defaults.
const (
	DefaultThreshold = 0.4
	DefaultSigma     = 10.0
	DefaultTolerance = 1e-9
)

var (
	// ErrNoRealSolution: no candidate has a real summed neutrino momentum.
	ErrNoRealSolution = errors.New("selection: no real solution")

	// ErrBelowThreshold: the best weight is below the acceptance threshold.
	ErrBelowThreshold = errors.New("selection: best weight below threshold")
)

// Candidates is the view Select needs of a candidate set.
type Candidates interface {
	Len() int
	TotalPx(i int) complex128
	TotalPy(i int) complex128
}

// Choice is the selected candidate.
type Choice struct {
	Index     int     // candidate index in the full set
	Weight    float64 // its weight
	Survivors int     // number of real candidates
}

// IsReal reports whether z has |Im z| ≤ tol and a finite real part.
func IsReal(z complex128, tol float64) bool {
	re, im := real(z), imag(z)
	if math.IsNaN(re) || math.IsNaN(im) || math.IsInf(re, 0) {
		return false
	}

	return math.Abs(im) <= tol
}

// Weight returns the MET-consistency weight of a neutrino-sum hypothesis.
// Values lie in (0, 1]; an exact match gives 1.
func Weight(metX, metY, px, py, sigmaX, sigmaY float64) float64 {
	dx, dy := metX-px, metY-py

	return math.Exp(-dx*dx/(2*sigmaX*sigmaX)) * math.Exp(-dy*dy/(2*sigmaY*sigmaY))
}

// Select filters c by reality, weights survivors against (metX, metY) and
// returns the first maximum.
//
// Errors:
//   - ErrNoRealSolution when nothing survives.
//   - ErrBelowThreshold when the best weight < threshold; the returned
//     Choice still carries the best candidate.
func Select(c Candidates, metX, metY float64, opts ...Option) (Choice, error) {
	cfg := newConfig(opts...)

	n := c.Len()
	idx := make([]int, 0, n)
	w := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		px, py := c.TotalPx(i), c.TotalPy(i)
		if !IsReal(px, cfg.tolerance) || !IsReal(py, cfg.tolerance) {
			continue
		}
		idx = append(idx, i)
		w = append(w, Weight(metX, metY, real(px), real(py), cfg.sigmaX, cfg.sigmaY))
	}
	if len(idx) == 0 {
		return Choice{}, ErrNoRealSolution
	}

	best := floats.MaxIdx(w)
	ch := Choice{Index: idx[best], Weight: w[best], Survivors: len(idx)}
	if ch.Weight < cfg.threshold {
		return ch, fmt.Errorf("weight %.4f < %.4f: %w", ch.Weight, cfg.threshold, ErrBelowThreshold)
	}

	return ch, nil
}
