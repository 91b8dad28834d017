// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Row selection (Gather) and column stacking (FromColumns): the
//     primitives that assemble batched momentum tables and basis matrices.
//
// Determinism & Performance:
//   - Fixed loop orders; single output allocation; flat-slice copies.

package matrix

// Gather builds a new matrix whose row k is row idx[k] of m.
// Indices may repeat; order is preserved.
//
// Errors:
//   - ErrNilMatrix, ErrInvalidDimensions (empty idx), ErrOutOfRange.
//
// Complexity: O(len(idx)*c).
func Gather(m *Dense, idx []int) (*Dense, error) {
	if m == nil {
		return nil, matrixErrorf(opGather, ErrNilMatrix)
	}
	out, err := NewDense(len(idx), m.c)
	if err != nil {
		return nil, matrixErrorf(opGather, err)
	}
	for k, i := range idx {
		if i < 0 || i >= m.r {
			return nil, matrixErrorf(opGather, denseErrorf(ctxRow, i, 0, ErrOutOfRange))
		}
		copy(out.data[k*m.c:(k+1)*m.c], m.data[i*m.c:(i+1)*m.c])
	}

	return out, nil
}

// FromColumns stacks equal-length column vectors into an N×len(cols) matrix.
//
// Errors:
//   - ErrInvalidDimensions (no columns or empty columns).
//   - ErrDimensionMismatch (ragged columns).
//
// Complexity: O(N*k).
func FromColumns(cols ...[]float64) (*Dense, error) {
	if len(cols) == 0 {
		return nil, matrixErrorf(opFromColumns, ErrInvalidDimensions)
	}
	n := len(cols[0])
	for _, col := range cols[1:] {
		if len(col) != n {
			return nil, matrixErrorf(opFromColumns, ErrDimensionMismatch)
		}
	}
	out, err := NewDense(n, len(cols))
	if err != nil {
		return nil, matrixErrorf(opFromColumns, err)
	}
	k := len(cols)
	for j, col := range cols {
		for i, v := range col {
			out.data[i*k+j] = v
		}
	}

	return out, nil
}
