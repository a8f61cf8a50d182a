package netgraph

import (
	"fmt"
	"sort"

	"github.com/scimetry/bibnet/frame"
)

// Edge is one weighted edge. For undirected graphs U < V by node index.
type Edge struct {
	U string
	V string
	W float64
}

// NodeAttributes is the per-node view over the attribute overlays.
type NodeAttributes struct {
	// Vectors holds the numeric attributes attached to the node.
	Vectors map[string]float64

	// Partitions holds the community assignments of the node.
	Partitions map[string]int
}

// Graph is a labeled weighted graph with attribute overlays.
type Graph struct {
	directed bool
	nodes    []string
	index    map[string]int
	adj      []map[int]float64 // adj[u][v] = weight; mirrored when undirected

	vectors    map[string]map[string]float64
	partitions map[string]map[string]int
}

// New returns an empty graph.
func New(directed bool) *Graph {
	return &Graph{
		directed:   directed,
		index:      make(map[string]int),
		vectors:    make(map[string]map[string]float64),
		partitions: make(map[string]map[string]int),
	}
}

// FromRelation builds a network from an items×items relation matrix.
//
// When the row and column label sequences are identical the matrix is a
// self co-occurrence relation and the graph is undirected, reading the
// upper triangle only. Otherwise the graph is directed with edges from
// row items to column items. Diagonal cells and cells at or below the
// weight threshold are skipped.
func FromRelation(rel *frame.Matrix, opts ...Option) (*Graph, error) {
	if rel == nil {
		return nil, ErrNilRelation
	}
	o := defaultBuildOptions()
	for _, opt := range opts {
		opt(&o)
	}

	rows := rel.RowLabels()
	cols := rel.ColLabels()
	undirected := len(rows) == len(cols)
	if undirected {
		for i := range rows {
			if rows[i] != cols[i] {
				undirected = false
				break
			}
		}
	}

	g := New(!undirected)
	for _, l := range rows {
		g.AddNode(l)
	}
	for _, l := range cols {
		g.AddNode(l)
	}

	for i := range rows {
		jStart := 0
		if undirected {
			jStart = i + 1 // upper triangle; diagonal is frequency, not an edge
		}
		for j := jStart; j < len(cols); j++ {
			if rows[i] == cols[j] {
				continue
			}
			if w := rel.At(i, j); w > o.minWeight {
				g.setEdge(g.index[rows[i]], g.index[cols[j]], w)
			}
		}
	}

	if o.largestComponent {
		comps := g.Components()
		if len(comps) > 1 {
			largest := comps[0]
			for _, c := range comps[1:] {
				if len(c) > len(largest) {
					largest = c
				}
			}
			g = g.Subgraph(largest)
		}
	}

	return g, nil
}

// Directed reports the edge orientation mode.
func (g *Graph) Directed() bool { return g.directed }

// AddNode inserts a node; re-adding an existing label is a no-op.
func (g *Graph) AddNode(label string) {
	if _, ok := g.index[label]; ok {
		return
	}
	g.index[label] = len(g.nodes)
	g.nodes = append(g.nodes, label)
	g.adj = append(g.adj, make(map[int]float64))
}

// AddEdge inserts (or overwrites) a weighted edge, creating missing
// endpoints. Self-loops are ignored.
func (g *Graph) AddEdge(u, v string, w float64) {
	if u == v {
		return
	}
	g.AddNode(u)
	g.AddNode(v)
	g.setEdge(g.index[u], g.index[v], w)
}

func (g *Graph) setEdge(ui, vi int, w float64) {
	g.adj[ui][vi] = w
	if !g.directed {
		g.adj[vi][ui] = w
	}
}

// RemoveEdge deletes the edge if present.
func (g *Graph) RemoveEdge(u, v string) {
	ui, uok := g.index[u]
	vi, vok := g.index[v]
	if !uok || !vok {
		return
	}
	delete(g.adj[ui], vi)
	if !g.directed {
		delete(g.adj[vi], ui)
	}
}

// HasNode reports membership.
func (g *Graph) HasNode(label string) bool {
	_, ok := g.index[label]

	return ok
}

// Weight returns the edge weight and whether the edge exists.
func (g *Graph) Weight(u, v string) (float64, bool) {
	ui, uok := g.index[u]
	vi, vok := g.index[v]
	if !uok || !vok {
		return 0, false
	}
	w, ok := g.adj[ui][vi]

	return w, ok
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges (undirected pairs counted once).
func (g *Graph) EdgeCount() int {
	var n int
	for ui, nbrs := range g.adj {
		for vi := range nbrs {
			if g.directed || ui < vi {
				n++
			}
		}
	}

	return n
}

// Nodes returns the node labels in insertion order.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.nodes))
	copy(out, g.nodes)

	return out
}

// Edges returns all edges ordered by (U index, V index).
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.EdgeCount())
	for ui := range g.adj {
		vis := g.neighborIndices(ui)
		for _, vi := range vis {
			if !g.directed && vi < ui {
				continue
			}
			out = append(out, Edge{U: g.nodes[ui], V: g.nodes[vi], W: g.adj[ui][vi]})
		}
	}

	return out
}

// Neighbors returns the out-neighbors of a node, ordered by node index.
func (g *Graph) Neighbors(label string) []string {
	ui, ok := g.index[label]
	if !ok {
		return nil
	}
	vis := g.neighborIndices(ui)
	out := make([]string, len(vis))
	for i, vi := range vis {
		out[i] = g.nodes[vi]
	}

	return out
}

func (g *Graph) neighborIndices(ui int) []int {
	vis := make([]int, 0, len(g.adj[ui]))
	for vi := range g.adj[ui] {
		vis = append(vis, vi)
	}
	sort.Ints(vis)

	return vis
}

// Degree returns the out-degree of a node.
func (g *Graph) Degree(label string) int {
	ui, ok := g.index[label]
	if !ok {
		return 0
	}

	return len(g.adj[ui])
}

// Strength returns the weighted out-degree of a node.
func (g *Graph) Strength(label string) float64 {
	ui, ok := g.index[label]
	if !ok {
		return 0
	}
	var s float64
	for _, w := range g.adj[ui] {
		s += w
	}

	return s
}

// Components returns the (weakly) connected components, each as a label
// slice in node-index order; components are ordered by their smallest
// node index.
func (g *Graph) Components() [][]string {
	seen := make([]bool, len(g.nodes))
	var comps [][]string
	for start := range g.nodes {
		if seen[start] {
			continue
		}
		var comp []int
		queue := []int{start}
		seen[start] = true
		for len(queue) > 0 {
			ui := queue[0]
			queue = queue[1:]
			comp = append(comp, ui)
			for vi := range g.adj[ui] {
				if !seen[vi] {
					seen[vi] = true
					queue = append(queue, vi)
				}
			}
			if g.directed { // weak connectivity: follow in-edges too
				for wi := range g.adj {
					if _, ok := g.adj[wi][ui]; ok && !seen[wi] {
						seen[wi] = true
						queue = append(queue, wi)
					}
				}
			}
		}
		sort.Ints(comp)
		labels := make([]string, len(comp))
		for i, ui := range comp {
			labels[i] = g.nodes[ui]
		}
		comps = append(comps, labels)
	}

	return comps
}

// Subgraph returns the induced subgraph on the given labels, carrying
// attribute overlays for the surviving nodes. Unknown labels are skipped.
func (g *Graph) Subgraph(labels []string) *Graph {
	sub := New(g.directed)
	keep := make(map[int]bool, len(labels))
	for _, l := range labels {
		if ui, ok := g.index[l]; ok {
			keep[ui] = true
		}
	}
	// Preserve original node order.
	for ui, l := range g.nodes {
		if keep[ui] {
			sub.AddNode(l)
		}
	}
	for ui := range g.adj {
		if !keep[ui] {
			continue
		}
		for vi, w := range g.adj[ui] {
			if keep[vi] {
				sub.setEdge(sub.index[g.nodes[ui]], sub.index[g.nodes[vi]], w)
			}
		}
	}
	for name, vec := range g.vectors {
		for l, v := range vec {
			if sub.HasNode(l) {
				sub.attachOne(name, l, v)
			}
		}
	}
	for name, part := range g.partitions {
		for l, c := range part {
			if sub.HasNode(l) {
				sub.setPartitionOne(name, l, c)
			}
		}
	}

	return sub
}

// AttachVector stores a numeric node attribute, silently dropping values
// for labels not present in the graph. It returns the number attached.
func (g *Graph) AttachVector(name string, values map[string]float64) int {
	var n int
	for l, v := range values {
		if g.HasNode(l) {
			g.attachOne(name, l, v)
			n++
		}
	}

	return n
}

// AttachVectors stores every named vector of the table and returns the
// induced subgraph on the labels the table covers. Nodes with no value
// in any vector are dropped together with their edges; the receiver is
// left untouched.
func (g *Graph) AttachVectors(table map[string]map[string]float64) *Graph {
	covered := make(map[string]bool)
	for _, values := range table {
		for l := range values {
			covered[l] = true
		}
	}
	keep := make([]string, 0, len(covered))
	for _, l := range g.nodes {
		if covered[l] {
			keep = append(keep, l)
		}
	}
	sub := g.Subgraph(keep)
	for name, values := range table {
		sub.AttachVector(name, values)
	}

	return sub
}

func (g *Graph) attachOne(name, label string, v float64) {
	if g.vectors[name] == nil {
		g.vectors[name] = make(map[string]float64)
	}
	g.vectors[name][label] = v
}

// SetPartition stores a community assignment under the given name,
// dropping labels not present in the graph.
func (g *Graph) SetPartition(name string, parts map[string]int) {
	for l, c := range parts {
		if g.HasNode(l) {
			g.setPartitionOne(name, l, c)
		}
	}
}

func (g *Graph) setPartitionOne(name, label string, c int) {
	if g.partitions[name] == nil {
		g.partitions[name] = make(map[string]int)
	}
	g.partitions[name][label] = c
}

// Vector returns a copy of a numeric attribute overlay.
func (g *Graph) Vector(name string) (map[string]float64, error) {
	vec, ok := g.vectors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVector, name)
	}
	out := make(map[string]float64, len(vec))
	for l, v := range vec {
		out[l] = v
	}

	return out, nil
}

// Partition returns a copy of a community assignment.
func (g *Graph) Partition(name string) (map[string]int, error) {
	part, ok := g.partitions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPartition, name)
	}
	out := make(map[string]int, len(part))
	for l, c := range part {
		out[l] = c
	}

	return out, nil
}

// VectorNames returns the attached vector attribute names, sorted.
func (g *Graph) VectorNames() []string {
	names := make([]string, 0, len(g.vectors))
	for n := range g.vectors {
		names = append(names, n)
	}
	sort.Strings(names)

	return names
}

// PartitionNames returns the stored partition names, sorted.
func (g *Graph) PartitionNames() []string {
	names := make([]string, 0, len(g.partitions))
	for n := range g.partitions {
		names = append(names, n)
	}
	sort.Strings(names)

	return names
}

// Attrs assembles the attribute view of one node.
func (g *Graph) Attrs(label string) (NodeAttributes, error) {
	if !g.HasNode(label) {
		return NodeAttributes{}, fmt.Errorf("%w: %q", ErrUnknownNode, label)
	}
	na := NodeAttributes{
		Vectors:    make(map[string]float64),
		Partitions: make(map[string]int),
	}
	for name, vec := range g.vectors {
		if v, ok := vec[label]; ok {
			na.Vectors[name] = v
		}
	}
	for name, part := range g.partitions {
		if c, ok := part[label]; ok {
			na.Partitions[name] = c
		}
	}

	return na, nil
}
