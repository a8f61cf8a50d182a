package relstats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/scimetry/bibnet/frame"
)

// BiclusterResult is a simultaneous row/column clustering.
type BiclusterResult struct {
	// K is the co-cluster count.
	K int

	// RowAssignments and ColAssignments map labels to co-cluster ids.
	RowAssignments map[string]int
	ColAssignments map[string]int
}

// Bicluster runs Dhillon's spectral co-clustering: the matrix is
// degree-normalized, decomposed by SVD, and rows and columns are
// embedded together from the ⌈log₂k⌉ singular vector pairs after the
// first, then k-means splits the joint embedding.
func Bicluster(m *frame.Matrix, opts ...Option) (*BiclusterResult, error) {
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

	k := cfg.k
	if k == 0 {
		k = cfg.minK
	}
	if k < 2 || k > nr || k > nc {
		return nil, fmt.Errorf("%w: k=%d for %dx%d", ErrBadK, k, nr, nc)
	}

	// Aₙ = Dᵣ^{−1/2} · A · D꜀^{−1/2}; zero margins contribute nothing.
	rowSums := m.RowSums()
	colSums := m.ColSums()
	rInv := make([]float64, nr)
	cInv := make([]float64, nc)
	for i, s := range rowSums {
		if s > 0 {
			rInv[i] = 1 / math.Sqrt(s)
		}
	}
	for j, s := range colSums {
		if s > 0 {
			cInv[j] = 1 / math.Sqrt(s)
		}
	}
	normalized := mat.NewDense(nr, nc, nil)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			normalized.Set(i, j, m.At(i, j)*rInv[i]*cInv[j])
		}
	}

	var svd mat.SVD
	if !svd.Factorize(normalized, mat.SVDThin) {
		return nil, fmt.Errorf("%w: svd failed", ErrDegenerate)
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	// Number of discriminating vector pairs, skipping the trivial first.
	dims := int(math.Ceil(math.Log2(float64(k))))
	_, uc := u.Dims()
	if dims > uc-1 {
		dims = uc - 1
	}
	if dims < 1 {
		return nil, fmt.Errorf("%w: not enough singular vectors for k=%d", ErrBadK, k)
	}

	points := make([][]float64, nr+nc)
	for i := 0; i < nr; i++ {
		row := make([]float64, dims)
		for d := 0; d < dims; d++ {
			row[d] = rInv[i] * u.At(i, d+1)
		}
		points[i] = row
	}
	for j := 0; j < nc; j++ {
		row := make([]float64, dims)
		for d := 0; d < dims; d++ {
			row[d] = cInv[j] * v.At(j, d+1)
		}
		points[nr+j] = row
	}

	assign := lloyd(points, k, cfg.seed, cfg.iter)

	res := &BiclusterResult{
		K:              k,
		RowAssignments: make(map[string]int, nr),
		ColAssignments: make(map[string]int, nc),
	}
	for i, l := range m.RowLabels() {
		res.RowAssignments[l] = assign[i]
	}
	for j, l := range m.ColLabels() {
		res.ColAssignments[l] = assign[nr+j]
	}

	return res, nil
}
