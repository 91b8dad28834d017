package observables_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ttreco/kinematics"
	"github.com/katalvlaran/ttreco/matrix"
	"github.com/katalvlaran/ttreco/observables"
	"github.com/katalvlaran/ttreco/reco"
)

const eps = 1e-9

func dot3(a, b [3]float64) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

func mass(p [4]float64) float64 { return math.Sqrt(kinematics.Dot(p, p)) }

func TestBoostToFrame(t *testing.T) {
	top := kinematics.Array(kinematics.FourMomentum(80, 0.4, 1.1, 172.5))

	rest := observables.BoostToFrame(top, top)
	assert.InDelta(t, 0, rest[kinematics.PX], 1e-9)
	assert.InDelta(t, 0, rest[kinematics.PY], 1e-9)
	assert.InDelta(t, 0, rest[kinematics.PZ], 1e-9)
	assert.InDelta(t, 172.5, rest[kinematics.E], 1e-9)

	// invariant mass is preserved
	l := kinematics.Array(kinematics.FourMomentum(30, -2, 0.3, 0.105))
	assert.InDelta(t, mass(l), mass(observables.BoostToFrame(l, top)), 1e-9)

	// a frame at rest is the identity
	atRest := [4]float64{0, 0, 0, 10}
	assert.Equal(t, l, observables.BoostToFrame(l, atRest))
}

func TestBoostToCOM(t *testing.T) {
	p1 := kinematics.Array(kinematics.FourMomentum(80, 0.4, 1.1, 172.5))
	p2 := kinematics.Array(kinematics.FourMomentum(60, 2.9, -0.7, 172.5))
	b1, b2, com := observables.BoostToCOM(p1, p2)

	for i := 0; i < 3; i++ {
		assert.InDelta(t, 0, b1[i]+b2[i], 1e-9)
		assert.InDelta(t, p1[i]+p2[i], com[i], 1e-12)
	}
	assert.InDelta(t, mass(com), b1[kinematics.E]+b2[kinematics.E], 1e-9)
}

func TestHelicityBasis(t *testing.T) {
	for _, top := range [][4]float64{
		{30, -40, 50, 200},
		{30, -40, -50, 200},
		{-5, 1, 0.5, 180},
	} {
		k, r, n, err := observables.HelicityBasis(top)
		require.NoError(t, err)

		assert.InDelta(t, 1, dot3(k, k), eps)
		assert.InDelta(t, 1, dot3(r, r), eps)
		assert.InDelta(t, 1, dot3(n, n), eps)
		assert.InDelta(t, 0, dot3(k, r), eps)
		assert.InDelta(t, 0, dot3(k, n), eps)
		assert.InDelta(t, 0, dot3(r, n), eps)

		// n̂ ∥ ±(ẑ × k̂) with the sign of cos θ
		zxk := [3]float64{-k[1], k[0], 0}
		if k[2] > 0 {
			assert.Greater(t, dot3(n, zxk), 0.0)
		} else {
			assert.Less(t, dot3(n, zxk), 0.0)
		}
	}

	_, _, _, err := observables.HelicityBasis([4]float64{0, 0, 0, 172.5})
	assert.ErrorIs(t, err, observables.ErrDegenerate)
}

func TestCosines(t *testing.T) {
	k, r, n, err := observables.HelicityBasis([4]float64{30, -40, 50, 200})
	require.NoError(t, err)

	along := func(v [3]float64) [4]float64 { return [4]float64{3 * v[0], 3 * v[1], 3 * v[2], 3} }

	ck, cr, cn, err := observables.Cosines(along(k), k, r, n)
	require.NoError(t, err)
	assert.InDelta(t, 1, ck, eps)
	assert.InDelta(t, 0, cr, eps)
	assert.InDelta(t, 0, cn, eps)

	ck, cr, cn, err = observables.Cosines(along(n), k, r, n)
	require.NoError(t, err)
	assert.InDelta(t, 0, ck, eps)
	assert.InDelta(t, 0, cr, eps)
	assert.InDelta(t, 1, cn, eps)

	ck, cr, cn, err = observables.Cosines([4]float64{1, 2, 3, 4}, k, r, n)
	require.NoError(t, err)
	assert.InDelta(t, 1, ck*ck+cr*cr+cn*cn, eps)

	_, _, _, err = observables.Cosines([4]float64{1, 2, 3, 4}, k, [3]float64{}, n)
	assert.ErrorIs(t, err, matrix.ErrSingular)
}

func momenta() (lt, la, top, anti [4]float64) {
	top = kinematics.Array(kinematics.FourMomentum(80, 0.4, 1.1, 172.5))
	anti = kinematics.Array(kinematics.FourMomentum(60, 2.9, -0.7, 172.5))
	lt = kinematics.Array(kinematics.FourMomentum(45, 0.9, 1.4, 0))
	la = kinematics.Array(kinematics.FourMomentum(25, -2.5, -0.2, 0))
	return lt, la, top, anti
}

func TestCompute(t *testing.T) {
	lt, la, top, anti := momenta()

	row, err := observables.Compute(lt, la, top, anti, false)
	require.NoError(t, err)
	require.Len(t, row, len(observables.Columns))

	ck1, ck2, cr1, cr2, cn1, cn2 := row[0], row[1], row[2], row[3], row[4], row[5]
	for _, c := range row[:6] {
		assert.LessOrEqual(t, math.Abs(c), 1+eps)
	}
	assert.InDelta(t, 1, ck1*ck1+cr1*cr1+cn1*cn1, eps)
	assert.InDelta(t, 1, ck2*ck2+cr2*cr2+cn2*cn2, eps)
	assert.InDelta(t, ck1*ck2, row[6], eps)
	assert.InDelta(t, cr1*cr2, row[7], eps)
	assert.InDelta(t, cn1*cn2, row[8], eps)
	assert.InDelta(t, cr1*ck2+ck1*cr2, row[9], eps)
	assert.InDelta(t, cr1*ck2-ck1*cr2, row[10], eps)
	assert.InDelta(t, cn1*cr2+cr1*cn2, row[11], eps)
	assert.InDelta(t, cn1*cr2-cr1*cn2, row[12], eps)
	assert.InDelta(t, cn1*ck2+ck1*cn2, row[13], eps)
	assert.InDelta(t, cn1*ck2-ck1*cn2, row[14], eps)

	short, err := observables.Compute(lt, la, top, anti, true)
	require.NoError(t, err)
	assert.Equal(t, row[:observables.CosineColumns], short)
}

func TestCompute_Degenerate(t *testing.T) {
	lt, la, top, _ := momenta()
	_, err := observables.Compute(lt, la, top, top, false)
	assert.ErrorIs(t, err, observables.ErrDegenerate)
}

func TestBatch(t *testing.T) {
	lt, la, top, anti := momenta()
	good := &reco.Result{
		Top: kinematics.FromArray(top), AntiTop: kinematics.FromArray(anti),
		LeptonTop: kinematics.FromArray(lt), LeptonAntiTop: kinematics.FromArray(la),
	}
	bad := &reco.Result{
		Top: kinematics.FromArray(top), AntiTop: kinematics.FromArray(top),
		LeptonTop: kinematics.FromArray(lt), LeptonAntiTop: kinematics.FromArray(la),
	}

	m, err := observables.Batch([]*reco.Result{good, bad}, true)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, observables.CosineColumns, m.Cols())

	want, err := observables.Compute(lt, la, top, anti, true)
	require.NoError(t, err)
	row0, err := m.RowView(0)
	require.NoError(t, err)
	assert.Equal(t, want, row0)
	row1, err := m.RowView(1)
	require.NoError(t, err)
	for _, v := range row1 {
		assert.True(t, math.IsNaN(v))
	}

	_, err = observables.Batch(nil, false)
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}
