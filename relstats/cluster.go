package relstats

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/scimetry/bibnet/frame"
)

// ClusterResult is one row-clustering outcome.
type ClusterResult struct {
	// Method is "kmeans", "hierarchical" or "spectral".
	Method string

	// K is the cluster count actually used.
	K int

	// Assignments maps row labels to cluster ids 0..K−1.
	Assignments map[string]int

	// Silhouette is the mean silhouette width of the chosen partition.
	Silhouette float64
}

// KMeans clusters the matrix rows with seeded Lloyd iterations. With
// WithK(0) (the default) the cluster count is chosen by the best mean
// silhouette over the WithKRange interval.
func KMeans(m *frame.Matrix, opts ...Option) (*ClusterResult, error) {
	cfg := defaultAnalysisConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	points, labels, err := rowPoints(m)
	if err != nil {
		return nil, err
	}
	if cfg.standardize {
		points = zscore(points)
	}

	run := func(k int) ([]int, float64) {
		assign := lloyd(points, k, cfg.seed, cfg.iter)

		return assign, meanSilhouette(points, assign, k)
	}

	assign, k, sil, err := selectK(cfg, len(points), run)
	if err != nil {
		return nil, err
	}

	return &ClusterResult{
		Method:      "kmeans",
		K:           k,
		Assignments: labeled(labels, assign),
		Silhouette:  sil,
	}, nil
}

// Hierarchical clusters the matrix rows by agglomerative merging with
// the configured linkage (Ward by default), cutting the dendrogram at
// the configured or silhouette-selected cluster count.
func Hierarchical(m *frame.Matrix, opts ...Option) (*ClusterResult, error) {
	cfg := defaultAnalysisConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	points, labels, err := rowPoints(m)
	if err != nil {
		return nil, err
	}
	if cfg.standardize {
		points = zscore(points)
	}

	merges := agglomerate(points, cfg.linkage)
	run := func(k int) ([]int, float64) {
		assign := cutDendrogram(len(points), merges, k)

		return assign, meanSilhouette(points, assign, k)
	}

	assign, k, sil, err := selectK(cfg, len(points), run)
	if err != nil {
		return nil, err
	}

	return &ClusterResult{
		Method:      "hierarchical",
		K:           k,
		Assignments: labeled(labels, assign),
		Silhouette:  sil,
	}, nil
}

// Spectral clusters the matrix rows through the normalized Laplacian of
// the row affinity (the matrix itself when square and symmetric, the
// row projection otherwise), embedding into the bottom eigenvectors and
// running seeded k-means there.
func Spectral(m *frame.Matrix, opts ...Option) (*ClusterResult, error) {
	cfg := defaultAnalysisConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if m == nil {
		return nil, ErrNilMatrix
	}

	affinity, err := rowAffinity(m)
	if err != nil {
		return nil, err
	}
	labels := m.RowLabels()
	n := len(labels)
	if n < 2 {
		return nil, ErrTooFewRows
	}

	// Normalized Laplacian L = I − D^{−1/2} W D^{−1/2}.
	invSqrt := make([]float64, n)
	for i := 0; i < n; i++ {
		var d float64
		for j := 0; j < n; j++ {
			d += affinity.At(i, j)
		}
		if d > 0 {
			invSqrt[i] = 1 / math.Sqrt(d)
		}
	}
	lap := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := -affinity.At(i, j) * invSqrt[i] * invSqrt[j]
			if i == j {
				v = 1 + v
			}
			lap.SetSym(i, j, v)
		}
	}

	var es mat.EigenSym
	if !es.Factorize(lap, true) {
		return nil, fmt.Errorf("%w: laplacian eigendecomposition failed", ErrDegenerate)
	}
	var vecs mat.Dense
	es.VectorsTo(&vecs) // ascending eigenvalues: leftmost columns are the embedding

	run := func(k int) ([]int, float64) {
		points := make([][]float64, n)
		for i := 0; i < n; i++ {
			row := make([]float64, k)
			for d := 0; d < k; d++ {
				row[d] = vecs.At(i, d)
			}
			// Row-normalize the embedding.
			var norm float64
			for _, v := range row {
				norm += v * v
			}
			if norm > 0 {
				norm = math.Sqrt(norm)
				for d := range row {
					row[d] /= norm
				}
			}
			points[i] = row
		}
		assign := lloyd(points, k, cfg.seed, cfg.iter)

		// Silhouette in the original row space for comparability.
		orig, _, _ := rowPoints(m)

		return assign, meanSilhouette(orig, assign, k)
	}

	assign, k, sil, err := selectK(cfg, n, run)
	if err != nil {
		return nil, err
	}

	return &ClusterResult{
		Method:      "spectral",
		K:           k,
		Assignments: labeled(labels, assign),
		Silhouette:  sil,
	}, nil
}

// rowPoints extracts the rows as float vectors.
func rowPoints(m *frame.Matrix) ([][]float64, []string, error) {
	if m == nil {
		return nil, nil, ErrNilMatrix
	}
	if m.Rows() < 2 || m.Cols() == 0 {
		return nil, nil, ErrTooFewRows
	}
	points := make([][]float64, m.Rows())
	for i := range points {
		points[i] = m.Row(i)
	}

	return points, m.RowLabels(), nil
}

// zscore standardizes every column to zero mean and unit variance.
// Constant columns stay zero.
func zscore(points [][]float64) [][]float64 {
	n := len(points)
	dim := len(points[0])
	mean := make([]float64, dim)
	for _, p := range points {
		for d, v := range p {
			mean[d] += v
		}
	}
	for d := range mean {
		mean[d] /= float64(n)
	}
	std := make([]float64, dim)
	for _, p := range points {
		for d, v := range p {
			dv := v - mean[d]
			std[d] += dv * dv
		}
	}
	for d := range std {
		std[d] = math.Sqrt(std[d] / float64(n))
	}

	out := make([][]float64, n)
	for i, p := range points {
		row := make([]float64, dim)
		for d, v := range p {
			if std[d] > 0 {
				row[d] = (v - mean[d]) / std[d]
			}
		}
		out[i] = row
	}

	return out
}

// rowAffinity returns a symmetric non-negative row similarity.
func rowAffinity(m *frame.Matrix) (*frame.Matrix, error) {
	labels := m.RowLabels()
	cols := m.ColLabels()
	square := len(labels) == len(cols)
	if square {
		for i := range labels {
			if labels[i] != cols[i] {
				square = false
				break
			}
		}
	}
	if square {
		sym := m.Clone()
		sym.Apply(func(i, j int, v float64) float64 {
			if i == j {
				return 0
			}

			return math.Abs(v+m.At(j, i)) / 2
		})

		return sym, nil
	}

	proj, err := m.Mul(m.Transpose())
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

// selectK runs the clustering for a fixed k or sweeps the silhouette
// range and keeps the best.
func selectK(cfg config, n int, run func(k int) ([]int, float64)) ([]int, int, float64, error) {
	if cfg.k > 0 {
		if cfg.k > n {
			return nil, 0, 0, fmt.Errorf("%w: k=%d over %d rows", ErrTooFewRows, cfg.k, n)
		}
		assign, sil := run(cfg.k)

		return assign, cfg.k, sil, nil
	}

	lo, hi := cfg.minK, cfg.maxK
	if hi > n-1 {
		hi = n - 1
	}
	if lo > hi {
		return nil, 0, 0, fmt.Errorf("%w: %d rows", ErrTooFewRows, n)
	}

	var best []int
	bestK := 0
	bestSil := math.Inf(-1)
	for k := lo; k <= hi; k++ {
		assign, sil := run(k)
		if sil > bestSil {
			bestSil = sil
			bestK = k
			best = assign
		}
	}

	return best, bestK, bestSil, nil
}

// lloyd is seeded k-means with distinct-row initialization.
func lloyd(points [][]float64, k int, seed int64, maxIter int) []int {
	n := len(points)
	dim := len(points[0])
	rng := rand.New(rand.NewSource(seed))

	centers := make([][]float64, k)
	perm := rng.Perm(n)
	for c := 0; c < k; c++ {
		centers[c] = append([]float64(nil), points[perm[c%n]]...)
	}

	assign := make([]int, n)
	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i, p := range points {
			best := 0
			bestD := math.Inf(1)
			for c, ctr := range centers {
				if d := sqDist(p, ctr); d < bestD {
					bestD = d
					best = c
				}
			}
			if assign[i] != best {
				assign[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		counts := make([]int, k)
		next := make([][]float64, k)
		for c := range next {
			next[c] = make([]float64, dim)
		}
		for i, p := range points {
			c := assign[i]
			counts[c]++
			for d, v := range p {
				next[c][d] += v
			}
		}
		for c := range next {
			if counts[c] == 0 {
				// Re-seed an empty cluster on a random point.
				next[c] = append([]float64(nil), points[rng.Intn(n)]...)
				continue
			}
			for d := range next[c] {
				next[c][d] /= float64(counts[c])
			}
		}
		centers = next
	}

	return assign
}

func sqDist(a, b []float64) float64 {
	var s float64
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}

	return s
}

// meanSilhouette is the average silhouette width of an assignment.
func meanSilhouette(points [][]float64, assign []int, k int) float64 {
	n := len(points)
	if k < 2 || n < 2 {
		return 0
	}

	var total float64
	for i := 0; i < n; i++ {
		sameSum, sameCnt := 0.0, 0
		otherMean := make(map[int][2]float64) // cluster → {sum, count}
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			d := math.Sqrt(sqDist(points[i], points[j]))
			if assign[j] == assign[i] {
				sameSum += d
				sameCnt++
			} else {
				e := otherMean[assign[j]]
				otherMean[assign[j]] = [2]float64{e[0] + d, e[1] + 1}
			}
		}
		if sameCnt == 0 || len(otherMean) == 0 {
			continue
		}
		a := sameSum / float64(sameCnt)
		b := math.Inf(1)
		for _, e := range otherMean {
			if m := e[0] / e[1]; m < b {
				b = m
			}
		}
		if max := math.Max(a, b); max > 0 {
			total += (b - a) / max
		}
	}

	return total / float64(n)
}

// merge records one dendrogram step: clusters a and b fuse into a new
// cluster with id n+step.
type merge struct {
	a, b int
}

// agglomerate runs Lance–Williams agglomeration over the row points and
// returns the merge sequence.
func agglomerate(points [][]float64, linkage Linkage) []merge {
	n := len(points)
	// Active cluster ids and pairwise distances.
	dist := make(map[int]map[int]float64)
	size := make(map[int]int)
	for i := 0; i < n; i++ {
		dist[i] = make(map[int]float64)
		size[i] = 1
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := math.Sqrt(sqDist(points[i], points[j]))
			dist[i][j] = d
			dist[j][i] = d
		}
	}

	var merges []merge
	next := n
	for len(dist) > 1 {
		ba, bb := -1, -1
		bd := math.Inf(1)
		for a, row := range dist {
			for b, d := range row {
				if b <= a {
					continue
				}
				if d < bd || (d == bd && (a < ba || (a == ba && b < bb))) {
					bd = d
					ba, bb = a, b
				}
			}
		}

		na, nb := float64(size[ba]), float64(size[bb])
		merged := make(map[int]float64)
		for c, dac := range dist[ba] {
			if c == bb {
				continue
			}
			dbc := dist[bb][c]
			nc := float64(size[c])
			var d float64
			switch linkage {
			case LinkageSingle:
				d = math.Min(dac, dbc)
			case LinkageComplete:
				d = math.Max(dac, dbc)
			case LinkageAverage:
				d = (na*dac + nb*dbc) / (na + nb)
			default: // Ward
				t := na + nb + nc
				d = math.Sqrt(((na+nc)*dac*dac + (nb+nc)*dbc*dbc - nc*bd*bd) / t)
			}
			merged[c] = d
		}

		delete(dist, ba)
		delete(dist, bb)
		for c := range dist {
			delete(dist[c], ba)
			delete(dist[c], bb)
		}
		dist[next] = merged
		for c, d := range merged {
			dist[c][next] = d
		}
		size[next] = size[ba] + size[bb]
		merges = append(merges, merge{a: ba, b: bb})
		next++
	}

	return merges
}

// cutDendrogram stops the merge sequence when k clusters remain and
// labels the original points.
func cutDendrogram(n int, merges []merge, k int) []int {
	parent := make([]int, n+len(merges))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}

		return x
	}

	steps := n - k
	if steps < 0 {
		steps = 0
	}
	for s := 0; s < steps && s < len(merges); s++ {
		id := n + s
		parent[find(merges[s].a)] = id
		parent[find(merges[s].b)] = id
	}

	remap := make(map[int]int)
	assign := make([]int, n)
	for i := 0; i < n; i++ {
		root := find(i)
		c, ok := remap[root]
		if !ok {
			c = len(remap)
			remap[root] = c
		}
		assign[i] = c
	}

	return assign
}

func labeled(labels []string, assign []int) map[string]int {
	out := make(map[string]int, len(labels))
	for i, l := range labels {
		out[l] = assign[i]
	}

	return out
}
