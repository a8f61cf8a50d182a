package community

import (
	"math/rand"

	"github.com/scimetry/bibnet/netgraph"
)

// KernighanLin is the classic two-way bisection: starting from a seeded
// balanced split, swap the node pair with the best cut-weight gain per
// pass until a pass yields no improvement.
type KernighanLin struct {
	cfg config
}

// NewKernighanLin builds the detector; WithSeed and WithMaxIter apply.
func NewKernighanLin(opts ...Option) *KernighanLin {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &KernighanLin{cfg: cfg}
}

// Name implements Detector.
func (d *KernighanLin) Name() string { return "kernighan_lin" }

// Detect implements Detector.
func (d *KernighanLin) Detect(g *netgraph.Graph) (map[string]int, error) {
	a := buildAdjacency(g)
	n := len(a.labels)
	if n == 0 {
		return nil, ErrEmptyGraph
	}
	if n < 2 {
		return nil, ErrTooSmall
	}

	rng := rand.New(rand.NewSource(d.cfg.seed))
	side := make([]int, n)
	perm := rng.Perm(n)
	for i, p := range perm {
		if i < n/2 {
			side[p] = 0
		} else {
			side[p] = 1
		}
	}

	// d(v) = external − internal cost of v under the current split.
	cost := func(v int) float64 {
		var outside, inside float64
		for u, w := range a.nbr[v] {
			if side[u] == side[v] {
				inside += w
			} else {
				outside += w
			}
		}

		return outside - inside
	}

	for pass := 0; pass < d.cfg.maxIter; pass++ {
		locked := make([]bool, n)
		type swap struct {
			u, v int
			gain float64
		}
		var seq []swap
		var cum, bestCum float64
		bestLen := 0

		for step := 0; step < n/2; step++ {
			bestGain := 0.0
			bu, bv := -1, -1
			first := true
			for u := 0; u < n; u++ {
				if locked[u] || side[u] != 0 {
					continue
				}
				du := cost(u)
				for v := 0; v < n; v++ {
					if locked[v] || side[v] != 1 {
						continue
					}
					gain := du + cost(v) - 2*a.nbr[u][v]
					if first || gain > bestGain {
						bestGain = gain
						bu, bv = u, v
						first = false
					}
				}
			}
			if bu < 0 {
				break
			}
			side[bu], side[bv] = 1, 0
			locked[bu], locked[bv] = true, true
			cum += bestGain
			seq = append(seq, swap{u: bu, v: bv, gain: bestGain})
			if cum > bestCum {
				bestCum = cum
				bestLen = len(seq)
			}
		}

		// Roll back the swaps past the best prefix.
		for i := len(seq) - 1; i >= bestLen; i-- {
			side[seq[i].u], side[seq[i].v] = 0, 1
		}
		if bestCum <= 0 {
			break
		}
	}

	return a.canonical(side), nil
}
