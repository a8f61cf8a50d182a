package community

import (
	"golang.org/x/exp/rand"

	gocommunity "gonum.org/v1/gonum/graph/community"

	"github.com/scimetry/bibnet/netgraph"
)

// Louvain is the multilevel modularity optimization of Blondel et al.,
// delegated to gonum's Modularize.
type Louvain struct {
	cfg config
}

// NewLouvain builds the detector; WithResolution and WithSeed apply.
func NewLouvain(opts ...Option) *Louvain {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Louvain{cfg: cfg}
}

// Name implements Detector.
func (d *Louvain) Name() string { return "louvain" }

// Detect implements Detector.
func (d *Louvain) Detect(g *netgraph.Graph) (map[string]int, error) {
	if g.NodeCount() == 0 {
		return nil, ErrEmptyGraph
	}

	wg, labels := g.ToGonum()
	reduced := gocommunity.Modularize(wg, d.cfg.resolution, rand.NewSource(uint64(d.cfg.seed)))

	byLabel := make(map[string]int, g.NodeCount())
	for c, members := range reduced.Communities() {
		for _, n := range members {
			byLabel[labels[n.ID()]] = c
		}
	}

	// Renumber by first appearance over node order.
	a := buildAdjacency(g)
	assign := make([]int, len(a.labels))
	for i, l := range a.labels {
		assign[i] = byLabel[l]
	}

	return a.canonical(assign), nil
}
