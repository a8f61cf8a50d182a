package frame

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a dense rows×cols matrix with unique string labels on both axes.
// The zero value is not usable; construct with New, FromDense or Zeros.
type Matrix struct {
	rows []string
	cols []string

	rowIndex map[string]int
	colIndex map[string]int

	data *mat.Dense
}

// Cell is one long-format entry of a Matrix (see Stack).
type Cell struct {
	Row   string
	Col   string
	Value float64
}

// indexLabels builds a label→position map, rejecting duplicates.
func indexLabels(labels []string) (map[string]int, error) {
	idx := make(map[string]int, len(labels))
	for i, l := range labels {
		if _, dup := idx[l]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateLabel, l)
		}
		idx[l] = i
	}

	return idx, nil
}

// New returns a zero-filled matrix with the given row and column labels.
// Labels are copied; the caller may reuse its slices.
// Either axis may be empty, producing a degenerate matrix with zero extent
// on that axis (the empty-vocabulary edge case upstream builders rely on).
func New(rows, cols []string) (*Matrix, error) {
	rowIdx, err := indexLabels(rows)
	if err != nil {
		return nil, err
	}
	colIdx, err := indexLabels(cols)
	if err != nil {
		return nil, err
	}

	var data *mat.Dense
	if len(rows) > 0 && len(cols) > 0 {
		data = mat.NewDense(len(rows), len(cols), nil)
	}

	m := &Matrix{
		rows:     append([]string(nil), rows...),
		cols:     append([]string(nil), cols...),
		rowIndex: rowIdx,
		colIndex: colIdx,
		data:     data,
	}

	return m, nil
}

// FromDense wraps an existing gonum Dense with labels. The Dense is used
// directly (not copied); its shape must match the label counts.
func FromDense(rows, cols []string, data *mat.Dense) (*Matrix, error) {
	if data == nil {
		return nil, ErrNilMatrix
	}
	r, c := data.Dims()
	if r != len(rows) || c != len(cols) {
		return nil, fmt.Errorf("%w: data %dx%d vs labels %dx%d", ErrBadShape, r, c, len(rows), len(cols))
	}
	m, err := New(rows, cols)
	if err != nil {
		return nil, err
	}
	m.data = data

	return m, nil
}

// Rows returns the number of rows. Complexity: O(1).
func (m *Matrix) Rows() int { return len(m.rows) }

// Cols returns the number of columns. Complexity: O(1).
func (m *Matrix) Cols() int { return len(m.cols) }

// RowLabels returns a copy of the row labels in construction order.
func (m *Matrix) RowLabels() []string { return append([]string(nil), m.rows...) }

// ColLabels returns a copy of the column labels in construction order.
func (m *Matrix) ColLabels() []string { return append([]string(nil), m.cols...) }

// HasRow reports whether label names a row.
func (m *Matrix) HasRow(label string) bool { _, ok := m.rowIndex[label]; return ok }

// HasCol reports whether label names a column.
func (m *Matrix) HasCol(label string) bool { _, ok := m.colIndex[label]; return ok }

// RowIndex returns the position of a row label, or -1 when absent.
func (m *Matrix) RowIndex(label string) int {
	if i, ok := m.rowIndex[label]; ok {
		return i
	}

	return -1
}

// ColIndex returns the position of a column label, or -1 when absent.
func (m *Matrix) ColIndex(label string) int {
	if j, ok := m.colIndex[label]; ok {
		return j
	}

	return -1
}

// At returns the value at (i, j). Follows gonum semantics: panics when the
// indices are out of range. Complexity: O(1).
func (m *Matrix) At(i, j int) float64 { return m.data.At(i, j) }

// Set assigns v at (i, j). Panics when out of range. Complexity: O(1).
func (m *Matrix) Set(i, j int, v float64) { m.data.Set(i, j, v) }

// Get returns the value addressed by labels.
// Returns ErrUnknownLabel when either label is absent.
func (m *Matrix) Get(row, col string) (float64, error) {
	i, ok := m.rowIndex[row]
	if !ok {
		return 0, fmt.Errorf("%w: row %q", ErrUnknownLabel, row)
	}
	j, ok := m.colIndex[col]
	if !ok {
		return 0, fmt.Errorf("%w: col %q", ErrUnknownLabel, col)
	}

	return m.data.At(i, j), nil
}

// Put assigns the value addressed by labels.
// Returns ErrUnknownLabel when either label is absent.
func (m *Matrix) Put(row, col string, v float64) error {
	i, ok := m.rowIndex[row]
	if !ok {
		return fmt.Errorf("%w: row %q", ErrUnknownLabel, row)
	}
	j, ok := m.colIndex[col]
	if !ok {
		return fmt.Errorf("%w: col %q", ErrUnknownLabel, col)
	}
	m.data.Set(i, j, v)

	return nil
}

// Dense exposes the underlying gonum storage for numeric routines.
// Mutations through the returned value are visible in the Matrix.
func (m *Matrix) Dense() *mat.Dense { return m.data }

// Row returns a copy of row i as a slice.
func (m *Matrix) Row(i int) []float64 {
	out := make([]float64, len(m.cols))
	mat.Row(out, i, m.data)

	return out
}

// Col returns a copy of column j as a slice.
func (m *Matrix) Col(j int) []float64 {
	out := make([]float64, len(m.rows))
	mat.Col(out, j, m.data)

	return out
}

// RowSums returns per-row totals in row order. Complexity: O(r·c).
func (m *Matrix) RowSums() []float64 {
	sums := make([]float64, len(m.rows))
	for i := range m.rows {
		for j := range m.cols {
			sums[i] += m.data.At(i, j)
		}
	}

	return sums
}

// ColSums returns per-column totals in column order. Complexity: O(r·c).
func (m *Matrix) ColSums() []float64 {
	sums := make([]float64, len(m.cols))
	for i := range m.rows {
		for j := range m.cols {
			sums[j] += m.data.At(i, j)
		}
	}

	return sums
}

// Sum returns the grand total of all cells.
func (m *Matrix) Sum() float64 {
	var total float64
	for i := range m.rows {
		for j := range m.cols {
			total += m.data.At(i, j)
		}
	}

	return total
}

// Clone returns a deep copy, independent of the receiver.
func (m *Matrix) Clone() *Matrix {
	out, _ := New(m.rows, m.cols) // labels already validated
	if m.data != nil {
		out.data.Copy(m.data)
	}

	return out
}

// Transpose returns a new matrix with axes swapped.
func (m *Matrix) Transpose() *Matrix {
	out, _ := New(m.cols, m.rows)
	for i := range m.rows {
		for j := range m.cols {
			out.data.Set(j, i, m.data.At(i, j))
		}
	}

	return out
}

// Mul returns the matrix product m·other with m's row labels and other's
// column labels. Returns ErrDimensionMismatch when not conformable.
func (m *Matrix) Mul(other *Matrix) (*Matrix, error) {
	if other == nil {
		return nil, ErrNilMatrix
	}
	if len(m.cols) != len(other.rows) {
		return nil, fmt.Errorf("%w: %dx%d · %dx%d", ErrDimensionMismatch,
			len(m.rows), len(m.cols), len(other.rows), len(other.cols))
	}
	out, err := New(m.rows, other.cols)
	if err != nil {
		return nil, err
	}
	out.data.Mul(m.data, other.data)

	return out, nil
}

// Apply rewrites every cell with fn(i, j, v) in place and returns m.
func (m *Matrix) Apply(fn func(i, j int, v float64) float64) *Matrix {
	for i := range m.rows {
		for j := range m.cols {
			m.data.Set(i, j, fn(i, j, m.data.At(i, j)))
		}
	}

	return m
}

// Scale multiplies every cell by f in place and returns m.
func (m *Matrix) Scale(f float64) *Matrix {
	return m.Apply(func(_, _ int, v float64) float64 { return v * f })
}

// Select returns the sub-matrix addressed by the given row and column
// labels, in the given order. A nil slice keeps the full axis.
// Returns ErrUnknownLabel when any label is absent.
func (m *Matrix) Select(rowLabels, colLabels []string) (*Matrix, error) {
	if rowLabels == nil {
		rowLabels = m.rows
	}
	if colLabels == nil {
		colLabels = m.cols
	}
	for _, r := range rowLabels {
		if !m.HasRow(r) {
			return nil, fmt.Errorf("%w: row %q", ErrUnknownLabel, r)
		}
	}
	for _, c := range colLabels {
		if !m.HasCol(c) {
			return nil, fmt.Errorf("%w: col %q", ErrUnknownLabel, c)
		}
	}
	out, err := New(rowLabels, colLabels)
	if err != nil {
		return nil, err
	}
	for i, r := range rowLabels {
		for j, c := range colLabels {
			out.data.Set(i, j, m.data.At(m.rowIndex[r], m.colIndex[c]))
		}
	}

	return out, nil
}

// Stack flattens the matrix into long-format cells, row-major.
func (m *Matrix) Stack() []Cell {
	out := make([]Cell, 0, len(m.rows)*len(m.cols))
	for i, r := range m.rows {
		for j, c := range m.cols {
			out = append(out, Cell{Row: r, Col: c, Value: m.data.At(i, j)})
		}
	}

	return out
}
