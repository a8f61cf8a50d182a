package relstats

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/scimetry/bibnet/frame"
	"github.com/scimetry/bibnet/relation"
)

// CAResult carries a correspondence analysis of a contingency matrix.
type CAResult struct {
	// RowCoords and ColCoords hold principal coordinates, one column
	// per kept dimension.
	RowCoords *frame.Matrix
	ColCoords *frame.Matrix

	// Inertia is the share of total inertia explained per kept
	// dimension.
	Inertia []float64

	// TotalInertia is chi-square/total, summed over all dimensions.
	TotalInertia float64
}

// Correspondence runs correspondence analysis through the SVD of the
// standardized residual matrix. Clean zero margins first; they make the
// residuals undefined.
func Correspondence(m *frame.Matrix, opts ...Option) (*CAResult, error) {
	cfg := defaultAnalysisConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if m == nil {
		return nil, ErrNilMatrix
	}
	nr, nc := m.Rows(), m.Cols()
	if nr < 2 || nc < 2 {
		return nil, ErrDegenerate
	}
	total := m.Sum()
	if total == 0 {
		return nil, ErrDegenerate
	}

	// Standardized residuals S = Dᵣ^{−1/2}(P − r·cᵀ)D꜀^{−1/2}.
	rowMass := make([]float64, nr)
	colMass := make([]float64, nc)
	for i, s := range m.RowSums() {
		rowMass[i] = s / total
	}
	for j, s := range m.ColSums() {
		colMass[j] = s / total
	}
	resid := mat.NewDense(nr, nc, nil)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			if rowMass[i] == 0 || colMass[j] == 0 {
				continue
			}
			p := m.At(i, j) / total
			e := rowMass[i] * colMass[j]
			resid.Set(i, j, (p-e)/math.Sqrt(e))
		}
	}

	var svd mat.SVD
	if !svd.Factorize(resid, mat.SVDThin) {
		return nil, fmt.Errorf("%w: svd failed", ErrDegenerate)
	}
	values := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	dims := cfg.caDims
	if dims > len(values) {
		dims = len(values)
	}

	var totalInertia float64
	for _, s := range values {
		totalInertia += s * s
	}
	inertia := make([]float64, dims)
	for d := 0; d < dims; d++ {
		if totalInertia > 0 {
			inertia[d] = values[d] * values[d] / totalInertia
		}
	}

	dimLabels := make([]string, dims)
	for d := range dimLabels {
		dimLabels[d] = fmt.Sprintf("dim%d", d+1)
	}

	rowCoords, err := frame.New(m.RowLabels(), dimLabels)
	if err != nil {
		return nil, err
	}
	colCoords, err := frame.New(m.ColLabels(), dimLabels)
	if err != nil {
		return nil, err
	}
	for i := 0; i < nr; i++ {
		for d := 0; d < dims; d++ {
			var coord float64
			if rowMass[i] > 0 {
				coord = u.At(i, d) * values[d] / math.Sqrt(rowMass[i])
			}
			rowCoords.Set(i, d, coord)
		}
	}
	for j := 0; j < nc; j++ {
		for d := 0; d < dims; d++ {
			var coord float64
			if colMass[j] > 0 {
				coord = v.At(j, d) * values[d] / math.Sqrt(colMass[j])
			}
			colCoords.Set(j, d, coord)
		}
	}

	return &CAResult{
		RowCoords:    rowCoords,
		ColCoords:    colCoords,
		Inertia:      inertia,
		TotalInertia: totalInertia,
	}, nil
}

// SVDResult summarizes the spectrum of a matrix.
type SVDResult struct {
	// Values are the singular values of the relative-frequency matrix,
	// descending.
	Values []float64

	// Explained is the share of squared spectrum per value.
	Explained []float64

	// Rank counts values above the numerical tolerance.
	Rank int

	// RowProjection is U·Σ, rows embedded in the singular basis, one
	// column per dimension (dim1, dim2, ...).
	RowProjection *frame.Matrix
}

// SVDStats decomposes the relative-frequency matrix P = X/total and
// reports the singular spectrum, explained shares and the row
// projection U·Σ.
func SVDStats(m *frame.Matrix) (*SVDResult, error) {
	if m == nil {
		return nil, ErrNilMatrix
	}
	if m.Rows() == 0 || m.Cols() == 0 {
		return nil, ErrDegenerate
	}
	total := m.Sum()
	if total == 0 {
		return nil, ErrDegenerate
	}

	freq := m.Clone()
	freq.Apply(func(i, j int, v float64) float64 { return v / total })

	var svd mat.SVD
	if !svd.Factorize(freq.Dense(), mat.SVDThin) {
		return nil, fmt.Errorf("%w: svd failed", ErrDegenerate)
	}
	values := svd.Values(nil)
	var u mat.Dense
	svd.UTo(&u)

	sumSq := floats.Dot(values, values)
	res := &SVDResult{Values: values, Explained: make([]float64, len(values))}
	tol := 1e-12
	if len(values) > 0 {
		tol = float64(maxInt(m.Rows(), m.Cols())) * values[0] * 1e-15
	}
	for i, s := range values {
		if sumSq > 0 {
			res.Explained[i] = s * s / sumSq
		}
		if s > tol {
			res.Rank++
		}
	}

	dimLabels := make([]string, len(values))
	for d := range dimLabels {
		dimLabels[d] = fmt.Sprintf("dim%d", d+1)
	}
	proj, err := frame.New(m.RowLabels(), dimLabels)
	if err != nil {
		return nil, err
	}
	for i := 0; i < m.Rows(); i++ {
		for d := range values {
			proj.Set(i, d, u.At(i, d)*values[d])
		}
	}
	res.RowProjection = proj

	return res, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}

// RankedCell is one cell of a residual or log-ratio ranking.
type RankedCell struct {
	Row   string
	Col   string
	Value float64
}

// SortedResiduals ranks the standardized chi-square residuals by
// absolute size, largest first; ties break by row then column label.
func SortedResiduals(m *frame.Matrix) ([]RankedCell, error) {
	chi, err := relation.ChiSquare(m)
	if err != nil {
		return nil, fmt.Errorf("relstats: %w", err)
	}

	return rankCells(chi.Residuals), nil
}

// SortedLogRatios ranks the smoothed log(observed/expected) cells by
// absolute size, largest first.
func SortedLogRatios(m *frame.Matrix, eps float64) ([]RankedCell, error) {
	lr, err := relation.LogRatio(m, eps)
	if err != nil {
		return nil, fmt.Errorf("relstats: %w", err)
	}

	return rankCells(lr.LogRatio), nil
}

func rankCells(m *frame.Matrix) []RankedCell {
	cells := m.Stack()
	out := make([]RankedCell, len(cells))
	for i, c := range cells {
		out[i] = RankedCell{Row: c.Row, Col: c.Col, Value: c.Value}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ai, aj := math.Abs(out[i].Value), math.Abs(out[j].Value)
		if ai != aj {
			return ai > aj
		}
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}

		return out[i].Col < out[j].Col
	})

	return out
}
