package relstats

import (
	"github.com/scimetry/bibnet/frame"
)

// CleanZeroMargins drops all-zero rows and columns until every margin
// is positive, so downstream independence models never divide by zero.
// The input is not modified.
func CleanZeroMargins(m *frame.Matrix) (*frame.Matrix, error) {
	if m == nil {
		return nil, ErrNilMatrix
	}

	cur := m
	for {
		rowSums := cur.RowSums()
		colSums := cur.ColSums()

		var keepRows, keepCols []string
		for i, l := range cur.RowLabels() {
			if rowSums[i] != 0 {
				keepRows = append(keepRows, l)
			}
		}
		for j, l := range cur.ColLabels() {
			if colSums[j] != 0 {
				keepCols = append(keepCols, l)
			}
		}
		if len(keepRows) == cur.Rows() && len(keepCols) == cur.Cols() {
			return cur, nil
		}

		next, err := cur.Select(keepRows, keepCols)
		if err != nil {
			return nil, err
		}
		cur = next
	}
}
