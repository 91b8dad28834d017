// SPDX-License-Identifier: MIT
// Package: nusolve
//
// nusolve.go - closed-form neutrino transverse momentum.
//
// Purpose:
//   - Coefficients of the linear/quadratic system from the W and top mass constraints.
//   - Quadratic in complex arithmetic so no discriminant branch is needed.
//
// Determinism & Performance:
//   - Pure functions, no allocation; SolveBatch is a flat loop over in/out.

package nusolve

import (
	"math"
	"math/cmplx"

	"github.com/katalvlaran/ttreco/kinematics"
)

// Input is one branch of one hypothesis.
type Input struct {
	Eta     float64    // hypothesised neutrino pseudorapidity
	Lepton  [4]float64 // (px, py, pz, E)
	Jet     [4]float64 // (px, py, pz, E)
	MassTop float64    // hypothesised parent mass
	MassB   float64    // jet mass
	MassW   float64    // intermediate boson mass
}

// Solution holds the two neutrino (px, py) roots; Px[k] pairs with Py[k].
type Solution struct {
	Px [2]complex128
	Py [2]complex128
}

// Quadratic returns the two roots of a·x² + b·x + c = 0,
// (−b + √Δ)/2a and (−b − √Δ)/2a, with Δ = b² − 4ac taken in complex form.
func Quadratic(a, b, c complex128) [2]complex128 {
	det := cmplx.Sqrt(b*b - 4*a*c)

	return [2]complex128{(-b + det) / (2 * a), (-b - det) / (2 * a)}
}

// Coefficients returns the linear relation (A, B) and the quadratic
// coefficients (C, D, F) for in.
func Coefficients(in Input) (a, b, c, d, f float64) {
	l, j := in.Lepton, in.Jet
	ch, sh := math.Cosh(in.Eta), math.Sinh(in.Eta)
	el := l[kinematics.E]*ch - l[kinematics.PZ]*sh
	eb := j[kinematics.E]*ch - j[kinematics.PZ]*sh

	den := j[kinematics.PX]*el - l[kinematics.PX]*eb
	a = (l[kinematics.PY]*eb - j[kinematics.PY]*el) / den

	mw2 := in.MassW * in.MassW
	alpha := in.MassTop*in.MassTop - mw2 - in.MassB*in.MassB - 2*kinematics.Dot(l, j)
	b = (el*alpha - eb*mw2) / (-2 * den)

	par1 := (l[kinematics.PX]*a + l[kinematics.PY]) / el
	c = a*a + 1 - par1*par1

	par2 := (mw2/2 + l[kinematics.PX]*b) / el
	d = 2 * (a*b - par2*par1)
	f = b*b - par2*par2

	return a, b, c, d, f
}

// Solve computes both neutrino transverse-momentum roots for in.
func Solve(in Input) Solution {
	a, b, c, d, f := Coefficients(in)
	py := Quadratic(complex(c, 0), complex(d, 0), complex(f, 0))
	ca, cb := complex(a, 0), complex(b, 0)

	return Solution{
		Px: [2]complex128{ca*py[0] + cb, ca*py[1] + cb},
		Py: py,
	}
}

// SolveBatch evaluates Solve over in, writing out[i] for in[i].
// len(out) must be at least len(in).
func SolveBatch(in []Input, out []Solution) {
	for i := range in {
		out[i] = Solve(in[i])
	}
}
