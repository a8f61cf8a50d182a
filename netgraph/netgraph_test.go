package netgraph_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scimetry/bibnet/frame"
	"github.com/scimetry/bibnet/netgraph"
)

// cooccurrenceABC builds the symmetric relation of the three-document
// reference corpus: diag {2,3,2}, AB=2, BC=2, AC=1.
func cooccurrenceABC(t *testing.T) *frame.Matrix {
	t.Helper()
	m, err := frame.New([]string{"A", "B", "C"}, []string{"A", "B", "C"})
	require.NoError(t, err)
	values := [][]float64{
		{2, 2, 1},
		{2, 3, 2},
		{1, 2, 2},
	}
	for i := range values {
		for j := range values[i] {
			m.Set(i, j, values[i][j])
		}
	}

	return m
}

func TestFromRelation_Undirected(t *testing.T) {
	g, err := netgraph.FromRelation(cooccurrenceABC(t))
	require.NoError(t, err)

	assert.False(t, g.Directed())
	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, 3, g.EdgeCount())

	w, ok := g.Weight("A", "B")
	require.True(t, ok)
	assert.Equal(t, 2.0, w)
	w, ok = g.Weight("B", "A") // symmetric access
	require.True(t, ok)
	assert.Equal(t, 2.0, w)

	// Diagonal never becomes a self-loop.
	_, ok = g.Weight("A", "A")
	assert.False(t, ok)
}

func TestFromRelation_MinWeight(t *testing.T) {
	g, err := netgraph.FromRelation(cooccurrenceABC(t), netgraph.WithMinWeight(1))
	require.NoError(t, err)

	// A-C (weight 1) is at the threshold and dropped.
	assert.Equal(t, 2, g.EdgeCount())
	_, ok := g.Weight("A", "C")
	assert.False(t, ok)
}

func TestFromRelation_DirectedCross(t *testing.T) {
	m, err := frame.New([]string{"A", "B"}, []string{"X", "Y"})
	require.NoError(t, err)
	m.Set(0, 0, 3)
	m.Set(1, 1, 1)

	g, err := netgraph.FromRelation(m)
	require.NoError(t, err)

	assert.True(t, g.Directed())
	assert.Equal(t, []string{"A", "B", "X", "Y"}, g.Nodes())
	_, ok := g.Weight("A", "X")
	assert.True(t, ok)
	_, ok = g.Weight("X", "A") // arcs are one-way
	assert.False(t, ok)
}

func TestFromRelation_LargestComponent(t *testing.T) {
	m, err := frame.New([]string{"A", "B", "C", "D", "E"}, []string{"A", "B", "C", "D", "E"})
	require.NoError(t, err)
	// Two components: {A,B,C} and {D,E}.
	for _, e := range [][2]int{{0, 1}, {1, 2}, {3, 4}} {
		m.Set(e[0], e[1], 1)
		m.Set(e[1], e[0], 1)
	}

	g, err := netgraph.FromRelation(m)
	require.NoError(t, err)
	assert.Len(t, g.Components(), 2)

	g, err = netgraph.FromRelation(m, netgraph.WithLargestComponent())
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, g.Nodes())
	assert.Len(t, g.Components(), 1)
}

func TestFromRelation_Nil(t *testing.T) {
	_, err := netgraph.FromRelation(nil)
	assert.ErrorIs(t, err, netgraph.ErrNilRelation)
}

func TestGraph_AttributeOverlays(t *testing.T) {
	g, err := netgraph.FromRelation(cooccurrenceABC(t))
	require.NoError(t, err)

	// Values for absent nodes are dropped, not an error.
	n := g.AttachVector("frequency", map[string]float64{"A": 2, "B": 3, "C": 2, "Z": 9})
	assert.Equal(t, 3, n)

	g.SetPartition("louvain", map[string]int{"A": 0, "B": 0, "C": 1, "Z": 2})

	vec, err := g.Vector("frequency")
	require.NoError(t, err)
	assert.Len(t, vec, 3)
	assert.NotContains(t, vec, "Z")

	part, err := g.Partition("louvain")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"A": 0, "B": 0, "C": 1}, part)

	attrs, err := g.Attrs("B")
	require.NoError(t, err)
	assert.Equal(t, 3.0, attrs.Vectors["frequency"])
	assert.Equal(t, 0, attrs.Partitions["louvain"])

	_, err = g.Vector("missing")
	assert.ErrorIs(t, err, netgraph.ErrUnknownVector)
	_, err = g.Partition("missing")
	assert.ErrorIs(t, err, netgraph.ErrUnknownPartition)
	_, err = g.Attrs("Z")
	assert.ErrorIs(t, err, netgraph.ErrUnknownNode)
}

func TestGraph_AttachVectors_DropsUncoveredNodes(t *testing.T) {
	g, err := netgraph.FromRelation(cooccurrenceABC(t))
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B", "C"}, g.Nodes())

	// C has no value in any vector, so it falls out of the graph.
	sub := g.AttachVectors(map[string]map[string]float64{
		"cited_by": {"A": 120, "B": 80},
	})
	assert.Equal(t, []string{"A", "B"}, sub.Nodes())
	assert.Equal(t, 1, sub.EdgeCount())

	vec, err := sub.Vector("cited_by")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"A": 120, "B": 80}, vec)

	// The receiver keeps its full node set.
	assert.Equal(t, []string{"A", "B", "C"}, g.Nodes())

	// Coverage is the union across vectors.
	sub = g.AttachVectors(map[string]map[string]float64{
		"cited_by": {"A": 120},
		"year":     {"B": 2001},
	})
	assert.Equal(t, []string{"A", "B"}, sub.Nodes())
}

func TestGraph_Subgraph_KeepsAttributes(t *testing.T) {
	g, err := netgraph.FromRelation(cooccurrenceABC(t))
	require.NoError(t, err)
	g.AttachVector("frequency", map[string]float64{"A": 2, "B": 3, "C": 2})
	g.SetPartition("louvain", map[string]int{"A": 0, "B": 0, "C": 1})

	sub := g.Subgraph([]string{"A", "B"})
	assert.Equal(t, []string{"A", "B"}, sub.Nodes())
	assert.Equal(t, 1, sub.EdgeCount())

	vec, err := sub.Vector("frequency")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"A": 2, "B": 3}, vec)
}

func TestWritePajek_Triple(t *testing.T) {
	g, err := netgraph.FromRelation(cooccurrenceABC(t))
	require.NoError(t, err)
	g.AttachVector("frequency", map[string]float64{"A": 2, "B": 3, "C": 2})
	g.SetPartition("louvain", map[string]int{"A": 0, "B": 0, "C": 1})

	base := filepath.Join(t.TempDir(), "keywords")
	written, err := g.WritePajek(base)
	require.NoError(t, err)
	require.Equal(t, []string{
		base + ".net",
		base + "_partition_louvain.clu",
		base + "_frequency.vec",
	}, written)

	net, err := os.ReadFile(base + ".net")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(net)), "\n")
	assert.Equal(t, "*Vertices 3", lines[0])
	assert.Equal(t, `1 "A"`, lines[1])
	assert.Contains(t, lines, "*Edges")
	assert.Contains(t, lines, "1 2 2")

	clu, err := os.ReadFile(base + "_partition_louvain.clu")
	require.NoError(t, err)
	assert.Equal(t, "*Vertices 3\n0\n0\n1\n", string(clu))

	vec, err := os.ReadFile(base + "_frequency.vec")
	require.NoError(t, err)
	assert.Equal(t, "*Vertices 3\n2\n3\n2\n", string(vec))
}

func TestWriteGraphML(t *testing.T) {
	g, err := netgraph.FromRelation(cooccurrenceABC(t))
	require.NoError(t, err)
	g.SetPartition("louvain", map[string]int{"A": 0, "B": 0, "C": 1})

	var buf bytes.Buffer
	require.NoError(t, g.WriteGraphML(&buf))
	out := buf.String()
	assert.Contains(t, out, `edgedefault="undirected"`)
	assert.Contains(t, out, `attr.name="partition_louvain"`)
	assert.Contains(t, out, `source="A" target="B"`)
}

func TestWriteGEXF(t *testing.T) {
	g, err := netgraph.FromRelation(cooccurrenceABC(t))
	require.NoError(t, err)
	g.AttachVector("frequency", map[string]float64{"A": 2})

	var buf bytes.Buffer
	require.NoError(t, g.WriteGEXF(&buf))
	out := buf.String()
	assert.Contains(t, out, `defaultedgetype="undirected"`)
	assert.Contains(t, out, `title="frequency"`)
	assert.Contains(t, out, `weight="2"`)

	empty := netgraph.New(false)
	assert.ErrorIs(t, empty.WriteGEXF(&buf), netgraph.ErrEmptyGraph)
}

func TestToGonum_RoundTrip(t *testing.T) {
	g, err := netgraph.FromRelation(cooccurrenceABC(t))
	require.NoError(t, err)

	wg, labels := g.ToGonum()
	assert.Equal(t, 3, wg.Nodes().Len())
	assert.Len(t, labels, 3)
	assert.Equal(t, "A", labels[0])

	dg, _ := g.ToGonumDirected()
	// Undirected edges become arc pairs.
	assert.Equal(t, 6, dg.Edges().Len())
}

func TestBasicStats(t *testing.T) {
	g, err := netgraph.FromRelation(cooccurrenceABC(t))
	require.NoError(t, err)
	g.AddNode("isolated")

	s := g.BasicStats()
	assert.Equal(t, 4, s.Nodes)
	assert.Equal(t, 3, s.Edges)
	assert.Equal(t, 1, s.Isolates)
	assert.Equal(t, 2, s.Components)
	assert.Equal(t, 3, s.LargestComponent)
	assert.InDelta(t, 2*3.0/(4*3), s.Density, 1e-9)
	assert.InDelta(t, 6.0/4.0, s.AvgDegree, 1e-9)
	// A, B and C close a triangle; the isolate contributes zero.
	assert.InDelta(t, 3.0/4.0, s.AvgClustering, 1e-9)
}

func TestNodeTable(t *testing.T) {
	// Path graph A-B-C: B is the broker.
	m, err := frame.New([]string{"A", "B", "C"}, []string{"A", "B", "C"})
	require.NoError(t, err)
	for _, e := range [][2]int{{0, 1}, {1, 2}} {
		m.Set(e[0], e[1], 1)
		m.Set(e[1], e[0], 1)
	}
	g, err := netgraph.FromRelation(m)
	require.NoError(t, err)

	rows, err := g.NodeTable()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	byLabel := make(map[string]netgraph.NodeRow, len(rows))
	for _, r := range rows {
		byLabel[r.Label] = r
	}
	assert.Equal(t, 2, byLabel["B"].Degree)
	assert.Greater(t, byLabel["B"].Betweenness, byLabel["A"].Betweenness)
	assert.Greater(t, byLabel["B"].PageRank, byLabel["A"].PageRank)
	assert.Greater(t, byLabel["B"].Closeness, byLabel["A"].Closeness)
	assert.Equal(t, 0, byLabel["B"].Triangles)

	// Triangle closes the clustering coefficient.
	g.AddEdge("A", "C", 1)
	rows, err = g.NodeTable()
	require.NoError(t, err)
	for _, r := range rows {
		assert.Equal(t, 1, r.Triangles, r.Label)
		assert.Equal(t, 1.0, r.Clustering, r.Label)
	}
}

func TestClusterMetrics(t *testing.T) {
	// Two triangles joined by a single bridge.
	g := netgraph.New(false)
	for _, e := range [][2]string{
		{"a1", "a2"}, {"a2", "a3"}, {"a1", "a3"},
		{"b1", "b2"}, {"b2", "b3"}, {"b1", "b3"},
		{"a3", "b1"},
	} {
		g.AddEdge(e[0], e[1], 1)
	}
	g.SetPartition("louvain", map[string]int{
		"a1": 0, "a2": 0, "a3": 0,
		"b1": 1, "b2": 1, "b3": 1,
	})

	report, err := g.ClusterMetrics("louvain")
	require.NoError(t, err)
	require.Len(t, report.Clusters, 2)

	c0 := report.Clusters[0]
	assert.Equal(t, 3, c0.Size)
	assert.Equal(t, 3, c0.InternalEdges)
	assert.Equal(t, 1, c0.ExternalEdges)
	assert.InDelta(t, 1.0, c0.Density, 1e-9)
	assert.Greater(t, report.Modularity, 0.3)

	_, err = g.ClusterMetrics("missing")
	assert.ErrorIs(t, err, netgraph.ErrUnknownPartition)
}
