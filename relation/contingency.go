package relation

import (
	"math"

	"github.com/scimetry/bibnet/frame"
)

// ChiSquareResult carries the independence-model decomposition of a
// contingency matrix.
type ChiSquareResult struct {
	// Expected is the independence expectation r_i·c_j/total per cell.
	Expected *frame.Matrix

	// Residuals is the standardized residual (observed−expected)/√expected.
	Residuals *frame.Matrix

	// Stat is the aggregate chi-square statistic (sum of squared
	// standardized residuals).
	Stat float64

	// DF is (rows−1)·(cols−1).
	DF int
}

// ChiSquare computes independence expectations, standardized residuals and
// the aggregate statistic for a contingency matrix. Margins are expected to
// be non-zero (clean with relstats.CleanZeroMargins first); an all-zero
// matrix returns ErrDegenerate.
func ChiSquare(m *frame.Matrix) (*ChiSquareResult, error) {
	if m == nil {
		return nil, ErrNilInput
	}
	total := m.Sum()
	if total == 0 {
		return nil, ErrDegenerate
	}
	rowTotals := m.RowSums()
	colTotals := m.ColSums()

	expected := m.Clone()
	expected.Apply(func(i, j int, _ float64) float64 {
		return rowTotals[i] * colTotals[j] / total
	})

	var stat float64
	residuals := m.Clone()
	residuals.Apply(func(i, j int, v float64) float64 {
		e := expected.At(i, j)
		if e == 0 { // zero margin: contributes nothing
			return 0
		}
		r := (v - e) / math.Sqrt(e)
		stat += r * r

		return r
	})

	return &ChiSquareResult{
		Expected:  expected,
		Residuals: residuals,
		Stat:      stat,
		DF:        (m.Rows() - 1) * (m.Cols() - 1),
	}, nil
}

// LogRatioResult carries the observed-vs-expected log ratios of a
// contingency matrix.
type LogRatioResult struct {
	// LogRatio is log((observed+ε)/(expected+ε)) per cell.
	LogRatio *frame.Matrix

	// Expected is the independence expectation per cell.
	Expected *frame.Matrix
}

// LogRatio computes smoothed log(observed/expected) against the
// independence model. Non-positive eps falls back to
// DefaultLogRatioEpsilon.
func LogRatio(m *frame.Matrix, eps float64) (*LogRatioResult, error) {
	if m == nil {
		return nil, ErrNilInput
	}
	if eps <= 0 {
		eps = DefaultLogRatioEpsilon
	}
	total := m.Sum()
	if total == 0 {
		return nil, ErrDegenerate
	}
	rowTotals := m.RowSums()
	colTotals := m.ColSums()

	expected := m.Clone()
	expected.Apply(func(i, j int, _ float64) float64 {
		return rowTotals[i] * colTotals[j] / total
	})

	ratios := m.Clone()
	ratios.Apply(func(i, j int, v float64) float64 {
		return math.Log((v + eps) / (expected.At(i, j) + eps))
	})

	return &LogRatioResult{LogRatio: ratios, Expected: expected}, nil
}
