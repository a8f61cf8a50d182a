package community

import (
	"math"
	"math/rand"

	"github.com/scimetry/bibnet/netgraph"
)

// Spinglass is Reichardt–Bornholdt simulated annealing on a Potts
// model: spins are community labels and the Hamiltonian rewards
// intra-community edges against the configuration null model.
type Spinglass struct {
	cfg config
}

// NewSpinglass builds the detector; WithSeed, WithSpins, WithSchedule
// and WithMaxIter apply.
func NewSpinglass(opts ...Option) *Spinglass {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Spinglass{cfg: cfg}
}

// Name implements Detector.
func (d *Spinglass) Name() string { return "spinglass" }

// Detect implements Detector.
func (d *Spinglass) Detect(g *netgraph.Graph) (map[string]int, error) {
	a := buildAdjacency(g)
	n := len(a.labels)
	if n == 0 {
		return nil, ErrEmptyGraph
	}
	if a.total == 0 {
		return a.canonical(singletons(n)), nil
	}

	rng := rand.New(rand.NewSource(d.cfg.seed))
	spins := d.cfg.spins
	if spins > n {
		spins = n
	}

	assign := make([]int, n)
	for i := range assign {
		assign[i] = rng.Intn(spins)
	}

	m2 := 2 * a.total
	gamma := d.cfg.resolution

	degSum := make([]float64, spins)
	for i, s := range assign {
		degSum[s] += a.degree[i]
	}

	// ΔH of flipping node i to spin s (negative is better).
	deltaH := func(i, s int) float64 {
		cur := assign[i]
		if s == cur {
			return 0
		}
		var toCur, toNew float64
		for j, w := range a.nbr[i] {
			switch assign[j] {
			case cur:
				toCur += w
			case s:
				toNew += w
			}
		}
		null := gamma * a.degree[i] * (degSum[s] - degSum[cur] + a.degree[i]) / m2

		return (toCur - toNew) + null
	}

	temp := d.cfg.startTemp
	best := append([]int(nil), assign...)
	bestQ := a.modularity(assign, gamma)

	for sweep := 0; sweep < d.cfg.maxIter; sweep++ {
		for step := 0; step < n; step++ {
			i := rng.Intn(n)
			s := rng.Intn(spins)
			dH := deltaH(i, s)
			if dH <= 0 || rng.Float64() < math.Exp(-dH/temp) {
				degSum[assign[i]] -= a.degree[i]
				degSum[s] += a.degree[i]
				assign[i] = s
			}
		}
		if q := a.modularity(assign, gamma); q > bestQ {
			bestQ = q
			best = append(best[:0], assign...)
		}
		temp *= d.cfg.cooling
	}

	return a.canonical(best), nil
}
