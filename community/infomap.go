package community

import (
	"math"
	"math/rand"

	"github.com/scimetry/bibnet/netgraph"
)

// Infomap minimizes the two-level map equation: node visit rates come
// from the stationary walk distribution, and nodes greedily move to the
// neighbor module that shortens the description length.
type Infomap struct {
	cfg config
}

// NewInfomap builds the detector; WithSeed and WithMaxIter apply.
func NewInfomap(opts ...Option) *Infomap {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Infomap{cfg: cfg}
}

// Name implements Detector.
func (d *Infomap) Name() string { return "infomap" }

// Detect implements Detector.
func (d *Infomap) Detect(g *netgraph.Graph) (map[string]int, error) {
	a := buildAdjacency(g)
	n := len(a.labels)
	if n == 0 {
		return nil, ErrEmptyGraph
	}
	if a.total == 0 {
		return a.canonical(singletons(n)), nil
	}

	// Stationary visit rate of an undirected walk is the degree share.
	visit := make([]float64, n)
	for i := range visit {
		visit[i] = a.degree[i] / (2 * a.total)
	}

	assign := singletons(n)
	rng := rand.New(rand.NewSource(d.cfg.seed))
	order := rng.Perm(n)

	current := mapEquation(a, visit, assign)
	for iter := 0; iter < d.cfg.maxIter; iter++ {
		improved := false
		for _, i := range order {
			if len(a.nbr[i]) == 0 {
				continue
			}
			bestL := current
			bestC := assign[i]
			seen := map[int]bool{assign[i]: true}
			for j := range a.nbr[i] {
				c := assign[j]
				if seen[c] {
					continue
				}
				seen[c] = true
				old := assign[i]
				assign[i] = c
				if l := mapEquation(a, visit, assign); l < bestL-1e-12 {
					bestL = l
					bestC = c
				}
				assign[i] = old
			}
			if bestC != assign[i] {
				assign[i] = bestC
				current = bestL
				improved = true
			}
		}
		if !improved {
			break
		}
	}

	return a.canonical(assign), nil
}

// mapEquation evaluates the two-level description length L(M) of an
// assignment.
func mapEquation(a *adjacency, visit []float64, assign []int) float64 {
	plogp := func(p float64) float64 {
		if p <= 0 {
			return 0
		}

		return p * math.Log2(p)
	}

	// Module exit rates: probability of a walk step leaving the module.
	exit := make(map[int]float64)
	inside := make(map[int]float64)
	for i := range a.nbr {
		inside[assign[i]] += visit[i]
		for j, w := range a.nbr[i] {
			if assign[i] != assign[j] {
				exit[assign[i]] += visit[i] * w / a.degree[i]
			}
		}
	}

	var sumExit, exitTerm, moduleTerm float64
	for _, q := range exit {
		sumExit += q
		exitTerm += plogp(q)
	}
	for c, p := range inside {
		moduleTerm += plogp(p + exit[c])
	}
	var nodeTerm float64
	for _, p := range visit {
		nodeTerm += plogp(p)
	}

	return plogp(sumExit) - 2*exitTerm - nodeTerm + moduleTerm
}
