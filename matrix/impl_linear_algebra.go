// SPDX-License-Identifier: MIT
// Package matrix: linear algebra kernels (MatVec, Inverse).
//
// Determinism & Policy:
//   - Fixed i→j loop orders.
//   - Inverse uses Gauss–Jordan elimination with partial pivoting; the pivot
//     search scans rows top-down and keeps the first largest |a[k,col]|, so
//     ties resolve identically on every run.

package matrix

import "math"

// zeroPivot is the exact value treated as a vanished pivot.
const zeroPivot = 0.0

// MatVec computes y = m * x for a column vector x.
//
// Contract: m non-nil; len(x) == m.Cols().
// Complexity: Time O(r*c), Space O(r) for y.
func MatVec(m *Dense, x []float64) ([]float64, error) {
	if m == nil {
		return nil, matrixErrorf(opMatVec, ErrNilMatrix)
	}
	if len(x) != m.c {
		return nil, matrixErrorf(opMatVec, ErrDimensionMismatch)
	}
	y := make([]float64, m.r)
	var i, j, base int
	var acc float64
	for i = 0; i < m.r; i++ {
		acc = 0
		base = i * m.c
		for j = 0; j < m.c; j++ {
			acc += m.data[base+j] * x[j]
		}
		y[i] = acc
	}

	return y, nil
}

// Inverse returns A^{-1} for a square A.
//
// Implementation:
//   - Stage 1: validate (non-nil, square); build the augmented buffer [A | I].
//   - Stage 2: for each column choose the largest-magnitude pivot at or below
//     the diagonal, swap it up, normalise the pivot row and eliminate the
//     column from every other row.
//   - Stage 3: copy the right half into a fresh Dense.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrSingular (pivot exactly zero).
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func Inverse(m *Dense) (*Dense, error) {
	if m == nil {
		return nil, matrixErrorf(opInverse, ErrNilMatrix)
	}
	if m.r != m.c {
		return nil, matrixErrorf(opInverse, ErrNonSquare)
	}
	n := m.r
	w := 2 * n
	aug := make([]float64, n*w)
	var i, j, k int
	for i = 0; i < n; i++ {
		copy(aug[i*w:i*w+n], m.data[i*n:(i+1)*n])
		aug[i*w+n+i] = 1
	}

	for col := 0; col < n; col++ {
		// pivot search
		p := col
		best := math.Abs(aug[col*w+col])
		for k = col + 1; k < n; k++ {
			if v := math.Abs(aug[k*w+col]); v > best {
				best, p = v, k
			}
		}
		if best == zeroPivot || math.IsNaN(best) {
			return nil, matrixErrorf(opInverse, ErrSingular)
		}
		if p != col {
			for j = 0; j < w; j++ {
				aug[col*w+j], aug[p*w+j] = aug[p*w+j], aug[col*w+j]
			}
		}

		inv := 1 / aug[col*w+col]
		for j = 0; j < w; j++ {
			aug[col*w+j] *= inv
		}
		for i = 0; i < n; i++ {
			if i == col {
				continue
			}
			f := aug[i*w+col]
			if f == 0 {
				continue
			}
			for j = 0; j < w; j++ {
				aug[i*w+j] -= f * aug[col*w+j]
			}
		}
	}

	out, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	for i = 0; i < n; i++ {
		copy(out.data[i*n:(i+1)*n], aug[i*w+n:(i+1)*w])
	}

	return out, nil
}
