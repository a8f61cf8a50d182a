package community

import (
	"github.com/scimetry/bibnet/netgraph"
)

// Detector computes one community partition of a graph.
type Detector interface {
	// Name identifies the detector; DetectAll stores its partition on
	// the graph under this name.
	Name() string

	// Detect returns the node label → community id assignment.
	Detect(g *netgraph.Graph) (map[string]int, error)
}

// Result is one entry of a detection batch.
type Result struct {
	Name      string
	Partition map[string]int
	Err       error
}

// DetectAll runs every detector against the graph, storing successful
// partitions on the graph and capturing failures per detector. A failed
// detector never aborts the batch.
func DetectAll(g *netgraph.Graph, detectors ...Detector) []Result {
	results := make([]Result, 0, len(detectors))
	for _, d := range detectors {
		part, err := d.Detect(g)
		if err == nil {
			g.SetPartition(d.Name(), part)
		}
		results = append(results, Result{Name: d.Name(), Partition: part, Err: err})
	}

	return results
}

// DefaultDetectors returns the full detector suite, seeded for
// reproducibility. Options apply to every detector.
func DefaultDetectors(opts ...Option) []Detector {
	return []Detector{
		NewLouvain(opts...),
		NewGreedyModularity(opts...),
		NewLabelPropagation(opts...),
		NewGirvanNewman(opts...),
		NewKClique(opts...),
		NewKernighanLin(opts...),
		NewWalktrap(opts...),
		NewInfomap(opts...),
		NewLeadingEigenvector(opts...),
		NewLeiden(opts...),
		NewSpinglass(opts...),
	}
}

// adjacency is the flattened internal view the hand-rolled detectors
// work on: contiguous node indices, symmetric weighted neighbor maps.
type adjacency struct {
	labels []string
	nbr    []map[int]float64
	degree []float64 // weighted degree per node
	total  float64   // sum of all edge weights (each edge once)
}

// buildAdjacency flattens the graph to an undirected weighted adjacency,
// merging arc pairs and dropping self-loops.
func buildAdjacency(g *netgraph.Graph) *adjacency {
	labels := g.Nodes()
	index := make(map[string]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}

	a := &adjacency{
		labels: labels,
		nbr:    make([]map[int]float64, len(labels)),
		degree: make([]float64, len(labels)),
	}
	for i := range a.nbr {
		a.nbr[i] = make(map[int]float64)
	}
	for _, e := range g.Edges() {
		ui, vi := index[e.U], index[e.V]
		if ui == vi {
			continue
		}
		if _, dup := a.nbr[ui][vi]; dup {
			continue // opposite arc already merged
		}
		a.nbr[ui][vi] = e.W
		a.nbr[vi][ui] = e.W
	}
	for i := range a.nbr {
		for _, w := range a.nbr[i] {
			a.degree[i] += w
		}
		a.total += a.degree[i]
	}
	a.total /= 2

	return a
}

// modularity computes Newman modularity of an assignment at the given
// resolution.
func (a *adjacency) modularity(assign []int, resolution float64) float64 {
	if a.total == 0 {
		return 0
	}
	m2 := 2 * a.total
	intra := make(map[int]float64)  // 2·(internal weight) per community
	degSum := make(map[int]float64) // total degree per community
	for i := range a.nbr {
		degSum[assign[i]] += a.degree[i]
		for j, w := range a.nbr[i] {
			if assign[i] == assign[j] {
				intra[assign[i]] += w
			}
		}
	}
	var q float64
	for _, in := range intra {
		q += in / m2
	}
	for _, d := range degSum {
		q -= resolution * (d / m2) * (d / m2)
	}

	return q
}

// canonical renumbers an assignment to dense ids in order of first
// appearance and maps it back to node labels.
func (a *adjacency) canonical(assign []int) map[string]int {
	remap := make(map[int]int)
	out := make(map[string]int, len(assign))
	for i, c := range assign {
		id, ok := remap[c]
		if !ok {
			id = len(remap)
			remap[c] = id
		}
		out[a.labels[i]] = id
	}

	return out
}
