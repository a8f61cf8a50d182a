// Package frame: sentinel error set.
// All exported operations return these sentinels (optionally wrapped with
// context via fmt.Errorf("...: %w", err)); tests match them with errors.Is.

package frame

import "errors"

var (
	// ErrBadShape indicates empty axes or data inconsistent with the labels.
	ErrBadShape = errors.New("frame: invalid shape")

	// ErrDuplicateLabel indicates a repeated label on one axis.
	ErrDuplicateLabel = errors.New("frame: duplicate label")

	// ErrUnknownLabel indicates a label lookup that matched nothing.
	ErrUnknownLabel = errors.New("frame: unknown label")

	// ErrDimensionMismatch indicates non-conformable operands (e.g. Mul
	// where a.Cols() != b.Rows()).
	ErrDimensionMismatch = errors.New("frame: dimension mismatch")

	// ErrNilMatrix indicates a nil *Matrix receiver or argument.
	ErrNilMatrix = errors.New("frame: nil matrix")
)
