package community

import (
	"math/rand"
	"sort"

	"github.com/scimetry/bibnet/netgraph"
)

// LabelPropagation is asynchronous label propagation: every node adopts
// the label with the highest weighted frequency among its neighbors,
// sweeping in a seeded random order until no label changes.
type LabelPropagation struct {
	cfg config
}

// NewLabelPropagation builds the detector; WithSeed and WithMaxIter
// apply.
func NewLabelPropagation(opts ...Option) *LabelPropagation {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &LabelPropagation{cfg: cfg}
}

// Name implements Detector.
func (d *LabelPropagation) Name() string { return "label_propagation" }

// Detect implements Detector.
func (d *LabelPropagation) Detect(g *netgraph.Graph) (map[string]int, error) {
	a := buildAdjacency(g)
	if len(a.labels) == 0 {
		return nil, ErrEmptyGraph
	}

	rng := rand.New(rand.NewSource(d.cfg.seed))
	assign := make([]int, len(a.labels))
	for i := range assign {
		assign[i] = i
	}

	order := rng.Perm(len(a.labels))
	for iter := 0; iter < d.cfg.maxIter; iter++ {
		changed := false
		for _, i := range order {
			if len(a.nbr[i]) == 0 {
				continue
			}
			weight := make(map[int]float64)
			for j, w := range a.nbr[i] {
				weight[assign[j]] += w
			}

			// Collect the top labels and break ties with the seeded rng,
			// matching asynchronous LPA semantics.
			best := -1.0
			var top []int
			for label, w := range weight {
				switch {
				case w > best:
					best = w
					top = top[:0]
					top = append(top, label)
				case w == best:
					top = append(top, label)
				}
			}
			sort.Ints(top)
			pick := top[rng.Intn(len(top))]
			if pick != assign[i] {
				assign[i] = pick
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	return a.canonical(assign), nil
}
