package community

import (
	"github.com/scimetry/bibnet/netgraph"
)

// GreedyModularity is the Clauset–Newman–Moore agglomeration: start
// from singletons and keep applying the merge with the best modularity
// gain while a positive gain exists.
type GreedyModularity struct {
	cfg config
}

// NewGreedyModularity builds the detector; WithResolution applies.
func NewGreedyModularity(opts ...Option) *GreedyModularity {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &GreedyModularity{cfg: cfg}
}

// Name implements Detector.
func (d *GreedyModularity) Name() string { return "greedy_modularity" }

// Detect implements Detector.
//
// Complexity: O(k·c²) for k merges over c communities; fine for the
// few-hundred-node item networks this targets.
func (d *GreedyModularity) Detect(g *netgraph.Graph) (map[string]int, error) {
	a := buildAdjacency(g)
	if len(a.labels) == 0 {
		return nil, ErrEmptyGraph
	}

	assign := make([]int, len(a.labels))
	for i := range assign {
		assign[i] = i
	}
	if a.total == 0 {
		return a.canonical(assign), nil
	}

	m2 := 2 * a.total
	gamma := d.cfg.resolution

	// Community-level state: inter-community weights and degree sums.
	between := make(map[int]map[int]float64, len(a.labels))
	degSum := make(map[int]float64, len(a.labels))
	for i := range a.nbr {
		degSum[i] = a.degree[i]
		between[i] = make(map[int]float64)
		for j, w := range a.nbr[i] {
			between[i][j] = w
		}
	}

	for len(between) > 1 {
		bestGain := 0.0
		bestA, bestB := -1, -1
		for ca, nbrs := range between {
			for cb, w := range nbrs {
				if cb <= ca {
					continue
				}
				// ΔQ for merging ca and cb.
				gain := w/a.total - 2*gamma*degSum[ca]*degSum[cb]/(m2*m2)
				if gain > bestGain ||
					(gain == bestGain && bestA >= 0 && (ca < bestA || (ca == bestA && cb < bestB))) {
					bestGain = gain
					bestA, bestB = ca, cb
				}
			}
		}
		if bestA < 0 || bestGain <= 0 {
			break
		}

		// Merge bestB into bestA.
		degSum[bestA] += degSum[bestB]
		delete(degSum, bestB)
		for cc, w := range between[bestB] {
			if cc == bestA {
				continue
			}
			between[bestA][cc] += w
			between[cc][bestA] += w
			delete(between[cc], bestB)
		}
		delete(between[bestA], bestB)
		delete(between, bestB)
		for i := range assign {
			if assign[i] == bestB {
				assign[i] = bestA
			}
		}
	}

	return a.canonical(assign), nil
}
