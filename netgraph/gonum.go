package netgraph

import (
	"gonum.org/v1/gonum/graph/simple"
)

// ToGonum converts to a gonum weighted undirected graph. Node i maps to
// id int64(i); the returned map restores labels from ids. Directed
// graphs are flattened (each arc becomes an undirected edge).
func (g *Graph) ToGonum() (*simple.WeightedUndirectedGraph, map[int64]string) {
	wg := simple.NewWeightedUndirectedGraph(0, 0)
	labels := make(map[int64]string, len(g.nodes))
	for i, l := range g.nodes {
		wg.AddNode(simple.Node(int64(i)))
		labels[int64(i)] = l
	}
	for ui := range g.adj {
		for vi, w := range g.adj[ui] {
			if !g.directed && vi < ui {
				continue
			}
			wg.SetWeightedEdge(simple.WeightedEdge{
				F: simple.Node(int64(ui)),
				T: simple.Node(int64(vi)),
				W: w,
			})
		}
	}

	return wg, labels
}

// ToGonumDirected converts to a gonum weighted directed graph. Undirected
// edges become arc pairs, which is what the PageRank computation expects.
func (g *Graph) ToGonumDirected() (*simple.WeightedDirectedGraph, map[int64]string) {
	wg := simple.NewWeightedDirectedGraph(0, 0)
	labels := make(map[int64]string, len(g.nodes))
	for i, l := range g.nodes {
		wg.AddNode(simple.Node(int64(i)))
		labels[int64(i)] = l
	}
	// Undirected adjacency is stored mirrored, so iterating every entry
	// already emits both arc directions.
	for ui := range g.adj {
		for vi, w := range g.adj[ui] {
			wg.SetWeightedEdge(simple.WeightedEdge{
				F: simple.Node(int64(ui)),
				T: simple.Node(int64(vi)),
				W: w,
			})
		}
	}

	return wg, labels
}
