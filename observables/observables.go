package observables

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/ttreco/kinematics"
	"github.com/katalvlaran/ttreco/matrix"
	"github.com/katalvlaran/ttreco/reco"
)

// ErrDegenerate: the helicity basis is undefined (top at rest in the tt̄
// frame, or moving along the beam).
var ErrDegenerate = errors.New("observables: degenerate helicity basis")

// Columns names the Compute output columns.
var Columns = [...]string{
	"ck1", "ck2", "cr1", "cr2", "cn1", "cn2",
	"ckk", "crr", "cnn",
	"crk_sum", "crk_diff", "cnr_sum", "cnr_diff", "cnk_sum", "cnk_diff",
}

// CosineColumns is the width of the cosine-only output.
const CosineColumns = 6

const (
	px = kinematics.PX
	py = kinematics.PY
	pz = kinematics.PZ
	e  = kinematics.E
)

// BoostToFrame boosts p into the rest frame of frame.
// A frame at rest leaves p unchanged.
func BoostToFrame(p, frame [4]float64) [4]float64 {
	b := [3]float64{-frame[px] / frame[e], -frame[py] / frame[e], -frame[pz] / frame[e]}
	b2 := b[0]*b[0] + b[1]*b[1] + b[2]*b[2]
	if b2 == 0 {
		return p
	}
	gamma := 1 / math.Sqrt(1-b2)
	bp := p[px]*b[0] + p[py]*b[1] + p[pz]*b[2]
	gamma2 := math.Max((gamma-1)/b2, 0)

	var out [4]float64
	for i := 0; i < 3; i++ {
		out[i] = p[i] + gamma2*bp*b[i] + gamma*b[i]*p[e]
	}
	out[e] = gamma * (p[e] + bp)

	return out
}

// BoostToCOM boosts p1 and p2 into their common rest frame and returns the
// boosted pair along with the frame momentum p1+p2.
func BoostToCOM(p1, p2 [4]float64) (b1, b2, com [4]float64) {
	for i := range com {
		com[i] = p1[i] + p2[i]
	}

	return BoostToFrame(p1, com), BoostToFrame(p2, com), com
}

// restTolerance is the |p|/E below which a top counts as at rest.
const restTolerance = 1e-9

// HelicityBasis returns (k̂, r̂, n̂) for the top momentum in the tt̄ frame.
// For a top along the beam, r̂ and n̂ come out NaN.
//
// Errors: ErrDegenerate when |p| ≤ restTolerance·E.
func HelicityBasis(top [4]float64) (k, r, n [3]float64, err error) {
	norm := math.Sqrt(top[px]*top[px] + top[py]*top[py] + top[pz]*top[pz])
	if !(norm > restTolerance*math.Abs(top[e])) {
		return k, r, n, ErrDegenerate
	}
	k = [3]float64{top[px] / norm, top[py] / norm, top[pz] / norm}

	cos := k[2] // k̂·ẑ
	sin := math.Sin(math.Acos(cos))
	sign := 1.0
	switch {
	case cos < 0:
		sign = -1
	case cos == 0:
		sign = 0
	}
	// ẑ × k̂ = (−k_y, k_x, 0)
	n = [3]float64{sign * -k[1] / sin, sign * k[0] / sin, 0}
	r = [3]float64{sign * -k[0] * cos / sin, sign * -k[1] * cos / sin, sign * (1 - k[2]*cos) / sin}

	return k, r, n, nil
}

// Cosines expresses the spatial part of p in the (k̂, r̂, n̂) basis and
// returns the normalised coordinates.
//
// Errors: matrix.ErrSingular (wrapped) when the basis is not invertible.
func Cosines(p [4]float64, k, r, n [3]float64) (ck, cr, cn float64, err error) {
	basis, err := matrix.FromColumns(k[:], r[:], n[:])
	if err != nil {
		return 0, 0, 0, err
	}
	inv, err := matrix.Inverse(basis)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("observables: basis change: %w", err)
	}
	c, err := matrix.MatVec(inv, p[:3])
	if err != nil {
		return 0, 0, 0, err
	}
	norm := math.Sqrt(c[0]*c[0] + c[1]*c[1] + c[2]*c[2])

	return c[0] / norm, c[1] / norm, c[2] / norm, nil
}

// Compute returns the observable row of one event.
//
// Errors: ErrDegenerate or a wrapped matrix.ErrSingular.
func Compute(lTop, lAntiTop, top, antiTop [4]float64, onlyCosines bool) ([]float64, error) {
	topCOM, _, _ := BoostToCOM(top, antiTop)
	k, r, n, err := HelicityBasis(topCOM)
	if err != nil {
		return nil, err
	}
	if n[0] == 0 && n[1] == 0 {
		// cos θ == 0 zeroes r̂ and n̂
		return nil, ErrDegenerate
	}

	ck1, cr1, cn1, err := Cosines(BoostToFrame(lTop, top), k, r, n)
	if err != nil {
		return nil, err
	}
	ck2, cr2, cn2, err := Cosines(BoostToFrame(lAntiTop, antiTop), k, r, n)
	if err != nil {
		return nil, err
	}

	row := []float64{ck1, ck2, cr1, cr2, cn1, cn2}
	if onlyCosines {
		return row, nil
	}

	return append(row,
		ck1*ck2,
		cr1*cr2,
		cn1*cn2,
		cr1*ck2+ck1*cr2,
		cr1*ck2-ck1*cr2,
		cn1*cr2+cr1*cn2,
		cn1*cr2-cr1*cn2,
		cn1*ck2+ck1*cn2,
		cn1*ck2-ck1*cn2,
	), nil
}

// Batch computes one row per result. Rows whose basis is degenerate are
// filled with NaN so that row i always matches results[i].
//
// Errors: matrix.ErrInvalidDimensions (wrapped) for an empty input.
func Batch(results []*reco.Result, onlyCosines bool) (*matrix.Dense, error) {
	width := len(Columns)
	if onlyCosines {
		width = CosineColumns
	}
	out, err := matrix.NewDense(len(results), width)
	if err != nil {
		return nil, fmt.Errorf("observables: batch: %w", err)
	}

	nan := make([]float64, width)
	for i := range nan {
		nan[i] = math.NaN()
	}
	for i, res := range results {
		row, err := Compute(
			kinematics.Array(res.LeptonTop), kinematics.Array(res.LeptonAntiTop),
			kinematics.Array(res.Top), kinematics.Array(res.AntiTop),
			onlyCosines,
		)
		if err != nil {
			row = nan
		}
		if err = out.SetRow(i, row); err != nil {
			return nil, err
		}
	}

	return out, nil
}
