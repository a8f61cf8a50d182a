package netgraph

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph"
	gocommunity "gonum.org/v1/gonum/graph/community"
	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

// Stats summarizes a network.
type Stats struct {
	Nodes      int
	Edges      int
	Isolates   int
	Components int

	// LargestComponent is the node count of the biggest weak component.
	LargestComponent int

	// Density is E/(n·(n−1)) for directed graphs and 2E/(n·(n−1)) for
	// undirected ones.
	Density float64

	AvgDegree   float64
	AvgStrength float64

	// AvgClustering is the mean local clustering coefficient.
	AvgClustering float64
}

// BasicStats computes the network summary.
func (g *Graph) BasicStats() Stats {
	s := Stats{
		Nodes: g.NodeCount(),
		Edges: g.EdgeCount(),
	}
	comps := g.Components()
	s.Components = len(comps)
	for _, comp := range comps {
		if len(comp) > s.LargestComponent {
			s.LargestComponent = len(comp)
		}
	}
	if s.Nodes == 0 {
		return s
	}

	var degSum int
	var strSum, clustSum float64
	for ui := range g.adj {
		deg := len(g.adj[ui])
		if deg == 0 && !g.hasInEdges(ui) {
			s.Isolates++
		}
		degSum += deg
		for _, w := range g.adj[ui] {
			strSum += w
		}
		clustSum += g.localClustering(ui)
	}
	s.AvgDegree = float64(degSum) / float64(s.Nodes)
	s.AvgStrength = strSum / float64(s.Nodes)
	s.AvgClustering = clustSum / float64(s.Nodes)
	if s.Nodes > 1 {
		pairs := float64(s.Nodes) * float64(s.Nodes-1)
		if g.directed {
			s.Density = float64(s.Edges) / pairs
		} else {
			s.Density = 2 * float64(s.Edges) / pairs
		}
	}

	return s
}

func (g *Graph) hasInEdges(ui int) bool {
	if !g.directed {
		return false
	}
	for wi := range g.adj {
		if _, ok := g.adj[wi][ui]; ok {
			return true
		}
	}

	return false
}

// NodeRow is one line of the per-node metrics table.
type NodeRow struct {
	Label       string
	Degree      int
	Strength    float64
	Betweenness float64
	Closeness   float64
	PageRank    float64

	// Triangles counts closed triangles through the node; Clustering is
	// that count over the possible neighbor pairs.
	Triangles  int
	Clustering float64
}

// Defaults for the PageRank computation.
const (
	DefaultPageRankDamping   = 0.85
	DefaultPageRankTolerance = 1e-6
)

// NodeTable computes degree, strength, weighted betweenness, closeness,
// PageRank and the local clustering coefficient per node, ordered by
// node index.
//
// Complexity: O(V·E + V² log V) dominated by the all-pairs shortest
// paths behind the centralities.
func (g *Graph) NodeTable() ([]NodeRow, error) {
	if g.NodeCount() == 0 {
		return nil, ErrEmptyGraph
	}

	wg, _ := g.ToGonum()
	allPaths := path.DijkstraAllPaths(wg)
	betweenness := network.BetweennessWeighted(wg, allPaths)
	closeness := network.Closeness(wg, allPaths)

	dg, _ := g.ToGonumDirected()
	pagerank := network.PageRank(dg, DefaultPageRankDamping, DefaultPageRankTolerance)

	rows := make([]NodeRow, len(g.nodes))
	for i, l := range g.nodes {
		id := int64(i)
		rows[i] = NodeRow{
			Label:       l,
			Degree:      len(g.adj[i]),
			Strength:    g.Strength(l),
			Betweenness: betweenness[id],
			Closeness:   closeness[id],
			PageRank:    pagerank[id],
			Triangles:   g.triangles(i),
			Clustering:  g.localClustering(i),
		}
	}

	return rows, nil
}

// triangles counts the node's closed neighbor pairs, the unweighted
// triangle count through the node.
func (g *Graph) triangles(ui int) int {
	nbrs := g.neighborIndices(ui)
	var links int
	for a := 0; a < len(nbrs); a++ {
		for b := a + 1; b < len(nbrs); b++ {
			if _, ok := g.adj[nbrs[a]][nbrs[b]]; ok {
				links++
			} else if _, ok = g.adj[nbrs[b]][nbrs[a]]; ok {
				links++
			}
		}
	}

	return links
}

// localClustering is the unweighted local clustering coefficient:
// closed triangles over possible triangles around the node.
func (g *Graph) localClustering(ui int) float64 {
	k := len(g.neighborIndices(ui))
	if k < 2 {
		return 0
	}

	return 2 * float64(g.triangles(ui)) / float64(k*(k-1))
}

// ClusterRow summarizes one community of a stored partition.
type ClusterRow struct {
	Cluster        int
	Size           int
	InternalEdges  int
	ExternalEdges  int
	InternalWeight float64

	// Density is the internal edge density of the community subgraph.
	Density float64
}

// ClusterReport carries the per-community table and the modularity of a
// stored partition.
type ClusterReport struct {
	Partition  string
	Modularity float64
	Clusters   []ClusterRow
}

// ClusterMetrics evaluates a stored partition: per-community size and
// internal/external edge balance, plus Newman modularity. Nodes missing
// from the partition are treated as singleton communities.
func (g *Graph) ClusterMetrics(name string) (*ClusterReport, error) {
	part, ok := g.partitions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPartition, name)
	}
	if g.NodeCount() == 0 {
		return nil, ErrEmptyGraph
	}

	// Assign missing nodes to fresh singleton clusters so the community
	// list covers the node set.
	assign := make([]int, len(g.nodes))
	next := 0
	for _, c := range part {
		if c >= next {
			next = c + 1
		}
	}
	members := make(map[int][]int)
	for i, l := range g.nodes {
		c, found := part[l]
		if !found {
			c = next
			next++
		}
		assign[i] = c
		members[c] = append(members[c], i)
	}

	ids := make([]int, 0, len(members))
	for c := range members {
		ids = append(ids, c)
	}
	sort.Ints(ids)

	report := &ClusterReport{Partition: name}
	communities := make([][]graph.Node, 0, len(ids))
	for _, c := range ids {
		nodes := members[c]
		row := ClusterRow{Cluster: c, Size: len(nodes)}
		gnodes := make([]graph.Node, len(nodes))
		for i, ui := range nodes {
			gnodes[i] = simple.Node(int64(ui))
			for vi, w := range g.adj[ui] {
				if !g.directed && vi < ui && assign[vi] == c {
					continue // internal pair counted once
				}
				if assign[vi] == c {
					row.InternalEdges++
					row.InternalWeight += w
				} else {
					row.ExternalEdges++
				}
			}
		}
		if row.Size > 1 {
			pairs := float64(row.Size) * float64(row.Size-1)
			if g.directed {
				row.Density = float64(row.InternalEdges) / pairs
			} else {
				row.Density = 2 * float64(row.InternalEdges) / pairs
			}
		}
		report.Clusters = append(report.Clusters, row)
		communities = append(communities, gnodes)
	}

	wg, _ := g.ToGonum()
	report.Modularity = gocommunity.Q(wg, communities, 1)

	return report, nil
}
