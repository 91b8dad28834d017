package kinematics

import (
	"errors"
	"fmt"
	"math"

	"go-hep.org/x/hep/fmom"

	"github.com/katalvlaran/ttreco/matrix"
)

// Column indices of an N×4 momentum batch.
const (
	PX = iota
	PY
	PZ
	E
)

var (
	// ErrLengthMismatch indicates batch columns of different lengths.
	ErrLengthMismatch = errors.New("kinematics: column length mismatch")

	// ErrEmpty indicates an empty batch.
	ErrEmpty = errors.New("kinematics: empty batch")
)

// FourMomentum builds (px, py, pz, E) from transverse momentum, azimuth,
// pseudorapidity and mass. pt is used in absolute value.
// Complexity: O(1).
func FourMomentum(pt, phi, eta, m float64) fmom.PxPyPzE {
	v := components(pt, phi, eta, m)

	return FromArray(v)
}

// components is the scalar kernel shared by FourMomentum and FourMomenta.
func components(pt, phi, eta, m float64) [4]float64 {
	pt = math.Abs(pt)
	px := pt * math.Cos(phi)
	py := pt * math.Sin(phi)
	pz := pt * math.Sinh(eta)
	e := math.Sqrt(px*px + py*py + pz*pz + m*m)

	return [4]float64{px, py, pz, e}
}

// FourMomenta is the batched form of FourMomentum: row i of the returned
// N×4 matrix is built from (pt[i], phi[i], eta[i], mass[i]).
//
// Errors:
//   - ErrEmpty when N == 0.
//   - ErrLengthMismatch when the columns differ in length.
//
// Complexity: O(N).
func FourMomenta(pt, phi, eta, mass []float64) (*matrix.Dense, error) {
	n := len(pt)
	if n == 0 {
		return nil, ErrEmpty
	}
	if len(phi) != n || len(eta) != n || len(mass) != n {
		return nil, fmt.Errorf("FourMomenta(%d,%d,%d,%d): %w",
			len(pt), len(phi), len(eta), len(mass), ErrLengthMismatch)
	}
	out, err := matrix.NewDense(n, 4)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		v := components(pt[i], phi[i], eta[i], mass[i])
		if err = out.SetRow(i, v[:]); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// NeutrinoFourMomentum builds a massless four-momentum from its transverse
// components and pseudorapidity: pt = √(px²+py²), pz = pt·sinh η, E = √(pt²+pz²).
func NeutrinoFourMomentum(px, py, eta float64) fmom.PxPyPzE {
	pt := math.Sqrt(px*px + py*py)
	pz := pt * math.Sinh(eta)

	return fmom.NewPxPyPzE(px, py, pz, math.Sqrt(pt*pt+pz*pz))
}

// Array returns p as a (px, py, pz, E) array.
func Array(p fmom.PxPyPzE) [4]float64 {
	return [4]float64{p.Px(), p.Py(), p.Pz(), p.E()}
}

// FromArray is the inverse of Array.
func FromArray(v [4]float64) fmom.PxPyPzE {
	return fmom.NewPxPyPzE(v[PX], v[PY], v[PZ], v[E])
}

// Dot is the Minkowski product E₁E₂ − p⃗₁·p⃗₂.
func Dot(a, b [4]float64) float64 {
	return a[E]*b[E] - (a[PX]*b[PX] + a[PY]*b[PY] + a[PZ]*b[PZ])
}

// Sum returns the vector sum of ps (the zero vector for no arguments).
func Sum(ps ...fmom.PxPyPzE) fmom.PxPyPzE {
	acc := fmom.NewPxPyPzE(0, 0, 0, 0)
	for i := range ps {
		s := fmom.Add(&acc, &ps[i])
		acc = fmom.NewPxPyPzE(s.Px(), s.Py(), s.Pz(), s.E())
	}

	return acc
}

// Mass returns the invariant mass of p; negative for space-like vectors.
func Mass(p fmom.PxPyPzE) float64 {
	return p.M()
}
