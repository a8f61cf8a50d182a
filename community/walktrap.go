package community

import (
	"math"

	"github.com/scimetry/bibnet/netgraph"
)

// Walktrap is Pons–Latapy random-walk agglomeration: nodes whose t-step
// walk distributions look alike are merged bottom-up, and the level
// with the best modularity is returned.
type Walktrap struct {
	cfg config
}

// NewWalktrap builds the detector; WithWalkSteps and WithResolution
// apply.
func NewWalktrap(opts ...Option) *Walktrap {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Walktrap{cfg: cfg}
}

// Name implements Detector.
func (d *Walktrap) Name() string { return "walktrap" }

// Detect implements Detector.
//
// Complexity: O(V³) from the dense walk matrix and the merge loop;
// intended for reduced item networks, not raw corpora.
func (d *Walktrap) Detect(g *netgraph.Graph) (map[string]int, error) {
	a := buildAdjacency(g)
	n := len(a.labels)
	if n == 0 {
		return nil, ErrEmptyGraph
	}
	if a.total == 0 {
		return a.canonical(singletons(n)), nil
	}

	// P^t rows: probability of a t-step walk from i landing on k.
	walk := walkMatrix(a, d.cfg.steps)

	// Community state: member lists and average walk vectors.
	members := make([][]int, n)
	vec := make([][]float64, n)
	assign := singletons(n)
	for i := 0; i < n; i++ {
		members[i] = []int{i}
		vec[i] = append([]float64(nil), walk[i]...)
	}
	alive := make([]bool, n)
	for i := range alive {
		alive[i] = true
	}

	// Walk distance between communities, degree-normalized.
	dist := func(x, y int) float64 {
		var s float64
		for k := 0; k < n; k++ {
			if a.degree[k] == 0 {
				continue
			}
			diff := vec[x][k] - vec[y][k]
			s += diff * diff / a.degree[k]
		}

		return math.Sqrt(s)
	}
	adjacent := func(x, y int) bool {
		for _, u := range members[x] {
			for _, v := range members[y] {
				if _, ok := a.nbr[u][v]; ok {
					return true
				}
			}
		}

		return false
	}

	best := append([]int(nil), assign...)
	bestQ := a.modularity(assign, d.cfg.resolution)

	for merges := 0; merges < n-1; merges++ {
		bx, by := -1, -1
		bd := math.Inf(1)
		for x := 0; x < n; x++ {
			if !alive[x] {
				continue
			}
			for y := x + 1; y < n; y++ {
				if !alive[y] || !adjacent(x, y) {
					continue
				}
				if dd := dist(x, y); dd < bd {
					bd = dd
					bx, by = x, y
				}
			}
		}
		if bx < 0 {
			break // only disconnected communities remain
		}

		// Merge by into bx, size-weighted walk vector average.
		sx, sy := float64(len(members[bx])), float64(len(members[by]))
		for k := 0; k < n; k++ {
			vec[bx][k] = (sx*vec[bx][k] + sy*vec[by][k]) / (sx + sy)
		}
		members[bx] = append(members[bx], members[by]...)
		alive[by] = false
		for i := range assign {
			if assign[i] == by {
				assign[i] = bx
			}
		}

		if q := a.modularity(assign, d.cfg.resolution); q > bestQ {
			bestQ = q
			best = append(best[:0], assign...)
		}
	}

	return a.canonical(best), nil
}

func singletons(n int) []int {
	assign := make([]int, n)
	for i := range assign {
		assign[i] = i
	}

	return assign
}

// walkMatrix raises the transition matrix to the t-th power by
// repeated row propagation.
func walkMatrix(a *adjacency, t int) [][]float64 {
	n := len(a.labels)
	cur := make([][]float64, n)
	for i := 0; i < n; i++ {
		cur[i] = make([]float64, n)
		if a.degree[i] == 0 {
			cur[i][i] = 1
			continue
		}
		for j, w := range a.nbr[i] {
			cur[i][j] = w / a.degree[i]
		}
	}

	trans := cur
	for step := 1; step < t; step++ {
		next := make([][]float64, n)
		for i := 0; i < n; i++ {
			next[i] = make([]float64, n)
			for k, p := range cur[i] {
				if p == 0 {
					continue
				}
				for j, q := range trans[k] {
					next[i][j] += p * q
				}
			}
		}
		cur = next
	}

	return cur
}
