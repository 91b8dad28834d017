// SPDX-License-Identifier: MIT

// Package matrix offers the small dense-array toolkit used by the
// reconstruction pipeline.
//
// The matrix package provides:
//
//   - Dense: a row-major float64 buffer with safe row accessors (RowView/SetRow
//     return errors instead of panicking). Batches of four-momenta are stored as
//     N×4 Dense values with columns (px, py, pz, E).
//   - Row selection and column stacking (Gather, FromColumns) used to
//     assemble jet-assignment tables and basis matrices.
//   - MatVec and Inverse for the 3×3 basis changes of the spin observables.
//
// Determinism:
//
//	Every kernel uses fixed loop orders; identical inputs give bit-identical
//	outputs on every platform.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; RowView: O(1);
//     Gather: O(len(idx)*c); MatVec: O(r*c); Inverse: O(n^3).
package matrix
