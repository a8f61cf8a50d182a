// Package frame provides a dense, labeled matrix: a rows×cols block of
// float64 values addressed either by integer position or by row/column
// label. It is the tabular currency of bibnet — indicator matrices,
// relation matrices and statistics tables are all frame.Matrix values.
//
// What
//
//   - Matrix: unique string labels on both axes over a gonum mat.Dense.
//   - Positional access (At/Set) follows gonum semantics; label-based
//     access (Get/Put) returns sentinel errors instead of panicking.
//   - Structural helpers: RowSums, ColSums, Sum, Transpose, Mul, Clone,
//     Select, Apply, Stack (long-format cells).
//
// Determinism
//
//	Label order is preserved exactly as given at construction; every
//	iteration helper walks rows and columns in that order.
//
// Errors
//
//   - ErrBadShape          - label slices empty or inconsistent with data.
//   - ErrDuplicateLabel    - repeated label on an axis.
//   - ErrUnknownLabel      - Get/Put/Select referenced a missing label.
//   - ErrDimensionMismatch - Mul operands are not conformable.
//
// Complexity: accessors are O(1); whole-matrix helpers are O(rows·cols).
package frame
