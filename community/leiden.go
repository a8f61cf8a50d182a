package community

import (
	"math/rand"

	"github.com/scimetry/bibnet/netgraph"
)

// Leiden is Traag's refinement of Louvain: modularity local moving, a
// refinement phase that re-partitions each community from singletons so
// badly connected communities cannot survive aggregation, and repeated
// aggregation until stable.
type Leiden struct {
	cfg config
}

// NewLeiden builds the detector; WithSeed, WithResolution and
// WithMaxIter apply.
func NewLeiden(opts ...Option) *Leiden {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Leiden{cfg: cfg}
}

// Name implements Detector.
func (d *Leiden) Name() string { return "leiden" }

// Detect implements Detector.
func (d *Leiden) Detect(g *netgraph.Graph) (map[string]int, error) {
	a := buildAdjacency(g)
	n := len(a.labels)
	if n == 0 {
		return nil, ErrEmptyGraph
	}
	if a.total == 0 {
		return a.canonical(singletons(n)), nil
	}

	rng := rand.New(rand.NewSource(d.cfg.seed))

	// membership[i] tracks the original nodes behind node i of the
	// current (possibly aggregated) working graph.
	work := a
	membership := make([][]int, n)
	for i := range membership {
		membership[i] = []int{i}
	}
	final := singletons(n)

	for level := 0; level < d.cfg.maxIter; level++ {
		assign := d.localMove(work, singletons(len(work.labels)), nil, rng)
		refined := d.localMove(work, singletons(len(work.labels)), assign, rng)

		// Project the refined partition onto the original nodes.
		for i, c := range refined {
			for _, orig := range membership[i] {
				final[orig] = c
			}
		}

		comms := countDistinct(refined)
		if comms == len(work.labels) {
			break // nothing was merged at this level
		}

		work, membership = aggregate(work, refined, membership)
		if comms == 1 {
			break
		}
	}

	return a.canonical(final), nil
}

// localMove runs louvain-style sweeps. When constraint is non-nil a node
// may only join communities inside its constraint cell, which is the
// Leiden refinement phase.
func (d *Leiden) localMove(a *adjacency, assign, constraint []int, rng *rand.Rand) []int {
	n := len(a.labels)
	if a.total == 0 {
		return assign
	}
	m2 := 2 * a.total
	gamma := d.cfg.resolution

	degSum := make(map[int]float64)
	for i := range assign {
		degSum[assign[i]] += a.degree[i]
	}

	order := rng.Perm(n)
	for iter := 0; iter < d.cfg.maxIter; iter++ {
		moved := false
		for _, i := range order {
			if len(a.nbr[i]) == 0 {
				continue
			}
			// Weight to each candidate neighbor community.
			toComm := make(map[int]float64)
			for j, w := range a.nbr[i] {
				if constraint != nil && constraint[j] != constraint[i] {
					continue
				}
				toComm[assign[j]] += w
			}

			cur := assign[i]
			degSum[cur] -= a.degree[i]
			bestC := cur
			bestGain := toComm[cur] - gamma*a.degree[i]*degSum[cur]/m2
			for c, w := range toComm {
				if c == cur {
					continue
				}
				gain := w - gamma*a.degree[i]*degSum[c]/m2
				if gain > bestGain+1e-12 {
					bestGain = gain
					bestC = c
				}
			}
			degSum[bestC] += a.degree[i]
			if bestC != cur {
				assign[i] = bestC
				moved = true
			}
		}
		if !moved {
			break
		}
	}

	return assign
}

func countDistinct(assign []int) int {
	seen := make(map[int]bool, len(assign))
	for _, c := range assign {
		seen[c] = true
	}

	return len(seen)
}

// aggregate collapses each refined community into one super-node,
// summing edge weights, and merges the membership lists.
func aggregate(a *adjacency, refined []int, membership [][]int) (*adjacency, [][]int) {
	ids := make(map[int]int)
	for _, c := range refined {
		if _, ok := ids[c]; !ok {
			ids[c] = len(ids)
		}
	}
	k := len(ids)

	agg := &adjacency{
		labels: make([]string, k),
		nbr:    make([]map[int]float64, k),
		degree: make([]float64, k),
	}
	newMembership := make([][]int, k)
	for i := 0; i < k; i++ {
		agg.nbr[i] = make(map[int]float64)
	}
	for i, c := range refined {
		ci := ids[c]
		if agg.labels[ci] == "" {
			agg.labels[ci] = a.labels[i]
		}
		newMembership[ci] = append(newMembership[ci], membership[i]...)
		// Internal weight folds into a self-loop so degrees survive
		// aggregation.
		for j, w := range a.nbr[i] {
			agg.nbr[ci][ids[refined[j]]] += w
		}
	}
	for i := range agg.nbr {
		for _, w := range agg.nbr[i] {
			agg.degree[i] += w
		}
		agg.total += agg.degree[i]
	}
	agg.total /= 2

	return agg, newMembership
}
