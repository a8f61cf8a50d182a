package community

import (
	"github.com/scimetry/bibnet/netgraph"
)

// GirvanNewman is the divisive edge-betweenness algorithm: repeatedly
// remove the edge with the highest betweenness and keep the component
// assignment with the best modularity seen along the removal sequence.
type GirvanNewman struct {
	cfg config
}

// NewGirvanNewman builds the detector; WithResolution applies.
func NewGirvanNewman(opts ...Option) *GirvanNewman {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &GirvanNewman{cfg: cfg}
}

// Name implements Detector.
func (d *GirvanNewman) Name() string { return "girvan_newman" }

// Detect implements Detector.
//
// Complexity: O(E²·V) in the worst case; intended for the small item
// networks that survive top-N vocabulary selection.
func (d *GirvanNewman) Detect(g *netgraph.Graph) (map[string]int, error) {
	a := buildAdjacency(g)
	if len(a.labels) == 0 {
		return nil, ErrEmptyGraph
	}

	// Work on a mutable copy of the neighbor sets.
	work := make([]map[int]float64, len(a.nbr))
	edges := 0
	for i := range a.nbr {
		work[i] = make(map[int]float64, len(a.nbr[i]))
		for j, w := range a.nbr[i] {
			work[i][j] = w
			if j > i {
				edges++
			}
		}
	}

	best := componentAssign(work)
	bestQ := a.modularity(best, d.cfg.resolution)

	for edges > 0 {
		eb := edgeBetweenness(work)
		var cu, cv int
		max := -1.0
		for u := range work {
			for v := range work[u] {
				if v <= u {
					continue
				}
				if b := eb[[2]int{u, v}]; b > max {
					max = b
					cu, cv = u, v
				}
			}
		}
		delete(work[cu], cv)
		delete(work[cv], cu)
		edges--

		assign := componentAssign(work)
		if q := a.modularity(assign, d.cfg.resolution); q > bestQ {
			bestQ = q
			best = assign
		}
	}

	return a.canonical(best), nil
}

// componentAssign labels nodes by connected component over the working
// adjacency.
func componentAssign(work []map[int]float64) []int {
	assign := make([]int, len(work))
	for i := range assign {
		assign[i] = -1
	}
	next := 0
	for start := range work {
		if assign[start] >= 0 {
			continue
		}
		queue := []int{start}
		assign[start] = next
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			for v := range work[u] {
				if assign[v] < 0 {
					assign[v] = next
					queue = append(queue, v)
				}
			}
		}
		next++
	}

	return assign
}

// edgeBetweenness is Brandes' accumulation adapted to edges, treating
// the graph as unweighted (hop-count shortest paths), which matches the
// conventional Girvan–Newman formulation.
func edgeBetweenness(work []map[int]float64) map[[2]int]float64 {
	n := len(work)
	eb := make(map[[2]int]float64)

	for s := 0; s < n; s++ {
		// BFS from s.
		stack := make([]int, 0, n)
		preds := make([][]int, n)
		sigma := make([]float64, n)
		dist := make([]int, n)
		for i := range dist {
			dist[i] = -1
		}
		sigma[s] = 1
		dist[s] = 0
		queue := []int{s}
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			stack = append(stack, u)
			for v := range work[u] {
				if dist[v] < 0 {
					dist[v] = dist[u] + 1
					queue = append(queue, v)
				}
				if dist[v] == dist[u]+1 {
					sigma[v] += sigma[u]
					preds[v] = append(preds[v], u)
				}
			}
		}

		// Dependency accumulation in reverse BFS order.
		delta := make([]float64, n)
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, u := range preds[w] {
				c := sigma[u] / sigma[w] * (1 + delta[w])
				key := [2]int{u, w}
				if w < u {
					key = [2]int{w, u}
				}
				eb[key] += c
				delta[u] += c
			}
		}
	}

	// Each unordered pair of endpoints was counted from both sides.
	for k := range eb {
		eb[k] /= 2
	}

	return eb
}
