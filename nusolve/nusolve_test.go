package nusolve_test

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/ttreco/kinematics"
	"github.com/katalvlaran/ttreco/nusolve"
)

func add(vs ...[4]float64) [4]float64 {
	var s [4]float64
	for _, v := range vs {
		for i := range s {
			s[i] += v[i]
		}
	}
	return s
}

func mass(v [4]float64) float64 { return math.Sqrt(kinematics.Dot(v, v)) }

func TestQuadratic_RealRoots(t *testing.T) {
	r := nusolve.Quadratic(1, -3, 2)
	assert.Equal(t, complex(2, 0), r[0])
	assert.Equal(t, complex(1, 0), r[1])
	assert.Equal(t, 0.0, imag(r[0]))
	assert.Equal(t, 0.0, imag(r[1]))
}

func TestQuadratic_ComplexConjugates(t *testing.T) {
	r := nusolve.Quadratic(1, 0, 1)
	assert.InDelta(t, 1, math.Abs(imag(r[0])), 1e-15)
	assert.Equal(t, cmplx.Conj(r[0]), r[1])
}

func TestQuadratic_DegenerateLeadingCoefficient(t *testing.T) {
	r := nusolve.Quadratic(0, 1, 1)
	assert.True(t, cmplx.IsNaN(r[1]) || cmplx.IsInf(r[1]) || cmplx.IsNaN(r[0]) || cmplx.IsInf(r[0]))
}

// TestSolve_RecoversInjectedNeutrino builds an exact t → b ℓ ν decay and
// checks that the true neutrino is one of the two roots.
func TestSolve_RecoversInjectedNeutrino(t *testing.T) {
	cases := []struct {
		name       string
		lep, jet   [4]float64
		nuPx, nuPy float64
		nuEta      float64
	}{
		{
			name: "central",
			lep:  kinematics.Array(kinematics.FourMomentum(40, 0.3, 0.2, 0)),
			jet:  kinematics.Array(kinematics.FourMomentum(60, 2.1, -0.4, 4.7)),
			nuPx: 25, nuPy: -18, nuEta: 0.6,
		},
		{
			name: "forward",
			lep:  kinematics.Array(kinematics.FourMomentum(55, -1.2, 1.4, 0)),
			jet:  kinematics.Array(kinematics.FourMomentum(80, 1.0, 0.9, 6)),
			nuPx: -12, nuPy: 31, nuEta: -1.1,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			nu := kinematics.Array(kinematics.NeutrinoFourMomentum(tc.nuPx, tc.nuPy, tc.nuEta))
			in := nusolve.Input{
				Eta:     tc.nuEta,
				Lepton:  tc.lep,
				Jet:     tc.jet,
				MassTop: mass(add(tc.lep, tc.jet, nu)),
				MassB:   mass(tc.jet),
				MassW:   mass(add(tc.lep, nu)),
			}
			sol := nusolve.Solve(in)

			best := math.Inf(1)
			for k := 0; k < 2; k++ {
				d := math.Hypot(cmplx.Abs(sol.Px[k]-complex(tc.nuPx, 0)), cmplx.Abs(sol.Py[k]-complex(tc.nuPy, 0)))
				best = math.Min(best, d)
			}
			assert.Less(t, best, 1e-6)
		})
	}
}

// TestSolve_RootsSatisfyQuadratic checks C·py²+D·py+F = 0 for real roots and
// px = A·py + B for every root, across an η scan.
func TestSolve_RootsSatisfyQuadratic(t *testing.T) {
	lep := kinematics.Array(kinematics.FourMomentum(40, 0, 0, 0.000511))
	jet := kinematics.Array(kinematics.FourMomentum(60, 2.5, 0.3, 5))
	var nReal, nCplx int
	for eta := -5.0; eta <= 5.0; eta += 0.2 {
		in := nusolve.Input{Eta: eta, Lepton: lep, Jet: jet, MassTop: 172.5, MassB: 5, MassW: 80.4}
		a, b, c, d, f := nusolve.Coefficients(in)
		sol := nusolve.Solve(in)
		disc := d*d - 4*c*f
		for k := 0; k < 2; k++ {
			px, py := sol.Px[k], sol.Py[k]
			assert.InDelta(t, 0, cmplx.Abs(px-(complex(a, 0)*py+complex(b, 0))), 1e-6*(1+cmplx.Abs(px)))
			if disc >= 0 {
				assert.Equal(t, 0.0, imag(py), "η=%v", eta)
				assert.Equal(t, 0.0, imag(px), "η=%v", eta)
				y := real(py)
				assert.InDelta(t, 0, c*y*y+d*y+f, 1e-6*(math.Abs(c*y*y)+math.Abs(d*y)+math.Abs(f)))
			} else {
				assert.NotEqual(t, 0.0, imag(py), "η=%v", eta)
			}
		}
		if disc >= 0 {
			nReal++
		} else {
			nCplx++
		}
	}
	t.Logf("η scan: %d real, %d complex", nReal, nCplx)
}

func TestSolve_ZeroDenominatorIsNaN(t *testing.T) {
	// identical lepton and jet directions and energies make den vanish
	v := [4]float64{10, 0, 0, 10}
	sol := nusolve.Solve(nusolve.Input{Eta: 0, Lepton: v, Jet: v, MassTop: 172.5, MassB: 0, MassW: 80.4})
	for k := 0; k < 2; k++ {
		assert.True(t, cmplx.IsNaN(sol.Px[k]) || cmplx.IsInf(sol.Px[k]) || math.IsNaN(imag(sol.Px[k])))
	}
}

func TestSolveBatch_MatchesScalar(t *testing.T) {
	lep := kinematics.Array(kinematics.FourMomentum(40, 0.3, 0.2, 0))
	jet := kinematics.Array(kinematics.FourMomentum(60, 2.1, -0.4, 4.7))
	in := make([]nusolve.Input, 11)
	for i := range in {
		in[i] = nusolve.Input{Eta: -5 + float64(i), Lepton: lep, Jet: jet, MassTop: 172, MassB: 4.7, MassW: 80.4}
	}
	out := make([]nusolve.Solution, len(in))
	nusolve.SolveBatch(in, out)
	for i := range in {
		assert.Equal(t, nusolve.Solve(in[i]), out[i])
	}
}
