package relstats

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/scimetry/bibnet/frame"
	"github.com/scimetry/bibnet/netgraph"
)

// Side distinguishes the two bipartite node sets.
type Side string

// Bipartite sides.
const (
	SideRow Side = "row"
	SideCol Side = "col"
)

// BipartiteNode carries the per-node metrics of a bipartite network.
type BipartiteNode struct {
	Label string
	Side  Side

	// Degree counts incident non-zero cells; Strength sums them.
	Degree   int
	Strength float64

	// Betweenness, Closeness and PageRank come from the full two-mode
	// graph.
	Betweenness float64
	Closeness   float64
	PageRank    float64

	// Eigenvector is the eigenvector centrality; NaN when the power
	// iteration does not converge (disconnected or degenerate input).
	Eigenvector float64

	// Triangles counts closed triangles through the node in the
	// two-mode graph. Zero while the node sets stay disjoint; non-zero
	// flags labels shared between rows and columns.
	Triangles int

	// Clustering is the Latapy pairwise bipartite clustering
	// coefficient.
	Clustering float64
}

// BipartiteResult is the full bipartite analysis of a rows×cols matrix.
type BipartiteResult struct {
	// RowProjection is B·Bᵀ with a zeroed diagonal; ColProjection is
	// Bᵀ·B likewise.
	RowProjection *frame.Matrix
	ColProjection *frame.Matrix

	Nodes []BipartiteNode

	// Stats summarizes the two-mode graph; RowStats and ColStats the
	// one-mode projections.
	Stats    netgraph.Stats
	RowStats netgraph.Stats
	ColStats netgraph.Stats

	// Density is the share of non-zero cells.
	Density float64

	AvgRowDegree float64
	AvgColDegree float64
}

// Defaults for the eigenvector power iteration.
const (
	eigenIterations = 200
	eigenTolerance  = 1e-9
)

// Bipartite treats the matrix as a two-mode network (rows and columns
// are the node sets, non-zero cells the edges) and computes projections,
// per-node centralities and global statistics for the two-mode graph
// and both projections. Row and column labels are expected to be
// disjoint; a shared label would merge into one node.
func Bipartite(m *frame.Matrix) (*BipartiteResult, error) {
	if m == nil {
		return nil, ErrNilMatrix
	}
	nr, nc := m.Rows(), m.Cols()
	if nr == 0 || nc == 0 {
		return nil, ErrDegenerate
	}

	rowProj, err := projection(m, false)
	if err != nil {
		return nil, err
	}
	colProj, err := projection(m, true)
	if err != nil {
		return nil, err
	}

	res := &BipartiteResult{RowProjection: rowProj, ColProjection: colProj}

	// Two-mode graph with rows first, columns after.
	g := netgraph.New(false)
	for _, l := range m.RowLabels() {
		g.AddNode(l)
	}
	for _, l := range m.ColLabels() {
		g.AddNode(l)
	}
	var edges int
	rowDeg := make([]int, nr)
	colDeg := make([]int, nc)
	rowStr := make([]float64, nr)
	colStr := make([]float64, nc)
	rowLabels := m.RowLabels()
	colLabels := m.ColLabels()
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			if v := m.At(i, j); v != 0 {
				g.AddEdge(rowLabels[i], colLabels[j], v)
				edges++
				rowDeg[i]++
				colDeg[j]++
				rowStr[i] += v
				colStr[j] += v
			}
		}
	}
	res.Density = float64(edges) / float64(nr*nc)
	for _, d := range rowDeg {
		res.AvgRowDegree += float64(d)
	}
	res.AvgRowDegree /= float64(nr)
	for _, d := range colDeg {
		res.AvgColDegree += float64(d)
	}
	res.AvgColDegree /= float64(nc)

	res.Stats = g.BasicStats()
	if rg, err := netgraph.FromRelation(rowProj); err == nil {
		res.RowStats = rg.BasicStats()
	}
	if cg, err := netgraph.FromRelation(colProj); err == nil {
		res.ColStats = cg.BasicStats()
	}

	table, err := g.NodeTable()
	if err != nil {
		return nil, err
	}
	byLabel := make(map[string]netgraph.NodeRow, len(table))
	for _, row := range table {
		byLabel[row.Label] = row
	}

	eigRow, eigCol := bipartiteEigenvector(m)

	for i, l := range rowLabels {
		row := byLabel[l]
		res.Nodes = append(res.Nodes, BipartiteNode{
			Label:       l,
			Side:        SideRow,
			Degree:      rowDeg[i],
			Strength:    rowStr[i],
			Betweenness: row.Betweenness,
			Closeness:   row.Closeness,
			PageRank:    row.PageRank,
			Eigenvector: eigRow[i],
			Triangles:   row.Triangles,
			Clustering:  latapyClustering(m, i, false),
		})
	}
	for j, l := range colLabels {
		col := byLabel[l]
		res.Nodes = append(res.Nodes, BipartiteNode{
			Label:       l,
			Side:        SideCol,
			Degree:      colDeg[j],
			Strength:    colStr[j],
			Betweenness: col.Betweenness,
			Closeness:   col.Closeness,
			PageRank:    col.PageRank,
			Eigenvector: eigCol[j],
			Triangles:   col.Triangles,
			Clustering:  latapyClustering(m, j, true),
		})
	}

	return res, nil
}

// projection computes the one-mode projection with a zeroed diagonal.
func projection(m *frame.Matrix, cols bool) (*frame.Matrix, error) {
	side := m
	if cols {
		side = m.Transpose()
	}
	proj, err := side.Mul(side.Transpose())
	if err != nil {
		return nil, err
	}
	proj.Apply(func(i, j int, v float64) float64 {
		if i == j {
			return 0
		}

		return v
	})

	return proj, nil
}

// bipartiteEigenvector runs a power iteration over the full bipartite
// adjacency. Both sides come back as NaN when the iteration fails to
// converge, matching the partial-result policy of the suite.
func bipartiteEigenvector(m *frame.Matrix) (rows, cols []float64) {
	nr, nc := m.Rows(), m.Cols()
	x := make([]float64, nr+nc)
	for i := range x {
		x[i] = 1 / math.Sqrt(float64(nr+nc))
	}

	converged := false
	for iter := 0; iter < eigenIterations; iter++ {
		next := make([]float64, nr+nc)
		for i := 0; i < nr; i++ {
			for j := 0; j < nc; j++ {
				if v := m.At(i, j); v != 0 {
					next[i] += v * x[nr+j]
					next[nr+j] += v * x[i]
				}
			}
		}
		norm := floats.Norm(next, 2)
		if norm == 0 {
			break
		}
		var diff float64
		for i := range next {
			next[i] /= norm
			diff += math.Abs(next[i] - x[i])
		}
		x = next
		if diff < eigenTolerance {
			converged = true
			break
		}
	}

	rows = make([]float64, nr)
	cols = make([]float64, nc)
	if !converged {
		for i := range rows {
			rows[i] = math.NaN()
		}
		for j := range cols {
			cols[j] = math.NaN()
		}

		return rows, cols
	}
	copy(rows, x[:nr])
	copy(cols, x[nr:])

	return rows, cols
}

// latapyClustering is the pairwise bipartite clustering coefficient:
// the mean Jaccard overlap between the node's neighborhood and the
// neighborhoods of its second-order neighbors.
func latapyClustering(m *frame.Matrix, idx int, colSide bool) float64 {
	neighbors := func(i int, cs bool) map[int]bool {
		set := make(map[int]bool)
		if cs {
			for r := 0; r < m.Rows(); r++ {
				if m.At(r, i) != 0 {
					set[r] = true
				}
			}
		} else {
			for c := 0; c < m.Cols(); c++ {
				if m.At(i, c) != 0 {
					set[c] = true
				}
			}
		}

		return set
	}

	own := neighbors(idx, colSide)
	if len(own) == 0 {
		return 0
	}

	// Second-order neighbors: same side, sharing at least one neighbor.
	second := make(map[int]bool)
	for n := range own {
		for s := range neighbors(n, !colSide) {
			if s != idx {
				second[s] = true
			}
		}
	}
	if len(second) == 0 {
		return 0
	}

	var sum float64
	for s := range second {
		other := neighbors(s, colSide)
		var inter, union int
		for n := range own {
			if other[n] {
				inter++
			}
		}
		union = len(own) + len(other) - inter
		if union > 0 {
			sum += float64(inter) / float64(union)
		}
	}

	return sum / float64(len(second))
}
