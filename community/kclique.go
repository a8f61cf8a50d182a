package community

import (
	"fmt"

	"gonum.org/v1/gonum/graph/topo"

	"github.com/scimetry/bibnet/netgraph"
)

// KClique is clique percolation: maximal cliques of size ≥ k form
// communities when they chain through shared (k−1)-node overlaps.
// Nodes outside every k-clique community keep singleton communities of
// their own.
type KClique struct {
	cfg config
}

// NewKClique builds the detector; WithK applies.
func NewKClique(opts ...Option) *KClique {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &KClique{cfg: cfg}
}

// Name implements Detector.
func (d *KClique) Name() string { return "k_clique" }

// Detect implements Detector. Overlapping membership is resolved by the
// first percolation component in clique order, since the partition
// model holds one community per node.
func (d *KClique) Detect(g *netgraph.Graph) (map[string]int, error) {
	if d.cfg.k < 2 {
		return nil, fmt.Errorf("%w: k=%d", ErrBadK, d.cfg.k)
	}
	if g.NodeCount() == 0 {
		return nil, ErrEmptyGraph
	}

	wg, _ := g.ToGonum() // node i maps to id int64(i)
	var cliques [][]int64
	for _, clique := range topo.BronKerbosch(wg) {
		if len(clique) < d.cfg.k {
			continue
		}
		ids := make([]int64, len(clique))
		for i, n := range clique {
			ids[i] = n.ID()
		}
		cliques = append(cliques, ids)
	}

	// Union-find over cliques sharing at least k−1 nodes.
	parent := make([]int, len(cliques))
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
	sets := make([]map[int64]bool, len(cliques))
	for i, c := range cliques {
		sets[i] = make(map[int64]bool, len(c))
		for _, id := range c {
			sets[i][id] = true
		}
	}
	for i := range cliques {
		for j := i + 1; j < len(cliques); j++ {
			shared := 0
			for id := range sets[i] {
				if sets[j][id] {
					shared++
				}
			}
			if shared >= d.cfg.k-1 {
				parent[find(j)] = find(i)
			}
		}
	}

	// First percolation component wins for overlapping nodes.
	compOf := make(map[int64]int)
	for i, c := range cliques {
		root := find(i)
		for _, id := range c {
			if _, taken := compOf[id]; !taken {
				compOf[id] = root
			}
		}
	}

	a := buildAdjacency(g)
	assign := make([]int, len(a.labels))
	next := len(cliques) // singleton ids after the percolation roots
	for i := range a.labels {
		id := int64(i)
		if root, ok := compOf[id]; ok {
			assign[i] = root
		} else {
			assign[i] = next
			next++
		}
	}

	return a.canonical(assign), nil
}
