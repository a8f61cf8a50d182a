package citenet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scimetry/bibnet/citenet"
	"github.com/scimetry/bibnet/corpus"
)

// chainCorpus is a four-document citation chain d4→d3→d2→d1 where d1
// and d2 also cite each other, forming a cycle.
func chainCorpus(t *testing.T) *corpus.Corpus {
	t.Helper()
	c, err := corpus.New([]corpus.Document{
		{
			ID:         "d1",
			Title:      "Foundations of bibliometric mapping",
			Year:       2001,
			CitedBy:    120,
			ShortLabel: "Smith 2001",
			References: "Jones A., 2002, Co-word analysis of research fields, Scientometrics",
		},
		{
			ID:         "d2",
			Title:      "Co-word analysis of research fields",
			Year:       2002,
			CitedBy:    80,
			ShortLabel: "Jones 2002",
			References: "Smith B., 2001, Foundations of bibliometric mapping, JASIST",
		},
		{
			ID:         "d3",
			Title:      "Mapping science with keyword networks",
			Year:       2010,
			CitedBy:    40,
			ShortLabel: "Lee 2010",
			References: "Jones A., 2002, Co-word analysis of research fields, Scientometrics",
		},
		{
			ID:         "d4",
			Title:      "A decade of science mapping reviews",
			Year:       2020,
			CitedBy:    5,
			ShortLabel: "Kim 2020",
			References: "Lee C., 2010, Mapping science with keyword networks, JOI; Unknown X., 1990, Something never indexed, Nowhere",
		},
	})
	require.NoError(t, err)

	return c
}

func TestNormalizeTitle(t *testing.T) {
	assert.Equal(t, "co word analysis of research fields",
		citenet.NormalizeTitle("  Co-Word Analysis: of Research_Fields!  "))
	assert.Equal(t, "", citenet.NormalizeTitle("?!"))
}

func TestBuild_ChainWithCycle(t *testing.T) {
	net, err := citenet.Build(chainCorpus(t), citenet.WithLogger(zap.NewNop()))
	require.NoError(t, err)

	g := net.Graph
	assert.True(t, g.Directed())
	assert.ElementsMatch(t, []string{"d1", "d2", "d3", "d4"}, g.Nodes())

	// Citing → cited.
	_, ok := g.Weight("d4", "d3")
	assert.True(t, ok)
	_, ok = g.Weight("d3", "d2")
	assert.True(t, ok)
	_, ok = g.Weight("d2", "d1")
	assert.True(t, ok)
	_, ok = g.Weight("d1", "d2")
	assert.True(t, ok)
	_, ok = g.Weight("d3", "d4")
	assert.False(t, ok)

	// The dead-end reference of d4 lands in the unmatched report.
	require.Contains(t, net.Unmatched, "d4")
	assert.Len(t, net.Unmatched["d4"], 1)
	assert.Contains(t, net.Unmatched["d4"][0], "Something never indexed")
}

func TestBuild_PrunesUnlinkedDocuments(t *testing.T) {
	c, err := corpus.New([]corpus.Document{
		{ID: "a", Title: "Linked source article", References: "X, 2000, Linked target article, J"},
		{ID: "b", Title: "Linked target article"},
		{ID: "c", Title: "Completely isolated article"},
	})
	require.NoError(t, err)

	net, err := citenet.Build(c)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, net.Graph.Nodes())
}

func TestBuild_LargestComponentDefault(t *testing.T) {
	c, err := corpus.New([]corpus.Document{
		{ID: "a1", Title: "Alpha one", References: "X, 1, Alpha two, J"},
		{ID: "a2", Title: "Alpha two", References: "X, 1, Alpha three, J"},
		{ID: "a3", Title: "Alpha three"},
		{ID: "b1", Title: "Beta one", References: "X, 1, Beta two, J"},
		{ID: "b2", Title: "Beta two"},
	})
	require.NoError(t, err)

	net, err := citenet.Build(c)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a1", "a2", "a3"}, net.Graph.Nodes())

	net, err = citenet.Build(c, citenet.WithAllComponents())
	require.NoError(t, err)
	assert.Len(t, net.Graph.Nodes(), 5)
}

func TestBuild_ShortLabels(t *testing.T) {
	net, err := citenet.Build(chainCorpus(t), citenet.WithShortLabels())
	require.NoError(t, err)
	assert.Contains(t, net.Graph.Nodes(), "Smith 2001")
	assert.NotContains(t, net.Graph.Nodes(), "d1")
}

func TestBuild_LongLabels(t *testing.T) {
	net, err := citenet.Build(chainCorpus(t), citenet.WithLongLabels())
	require.NoError(t, err)
	assert.Contains(t, net.Graph.Nodes(), "Foundations of bibliometric mapping")
	assert.NotContains(t, net.Graph.Nodes(), "d1")
	assert.NotContains(t, net.Graph.Nodes(), "Smith 2001")

	// Citing → cited survives the relabeling.
	_, ok := net.Graph.Weight(
		"Co-word analysis of research fields",
		"Foundations of bibliometric mapping")
	assert.True(t, ok)

	// Short labels take precedence when both options are set.
	net, err = citenet.Build(chainCorpus(t),
		citenet.WithShortLabels(), citenet.WithLongLabels())
	require.NoError(t, err)
	assert.Contains(t, net.Graph.Nodes(), "Smith 2001")
}

func TestBuild_NilCorpus(t *testing.T) {
	_, err := citenet.Build(nil)
	assert.ErrorIs(t, err, citenet.ErrNilCorpus)
}

func TestMainPath_CondensesCycle(t *testing.T) {
	net, err := citenet.Build(chainCorpus(t))
	require.NoError(t, err)

	path, err := citenet.MainPath(net)
	require.NoError(t, err)
	// The d1/d2 cycle condenses into one node represented by d1, the
	// smallest label, so the chain is d4 → d3 → {d1,d2}.
	assert.Equal(t, []string{"d4", "d3", "d1"}, path)
}

func TestMainPath_EmptyNetwork(t *testing.T) {
	_, err := citenet.MainPath(nil)
	assert.ErrorIs(t, err, citenet.ErrEmptyNetwork)
}

func TestHistoriograph(t *testing.T) {
	g, err := citenet.Historiograph(chainCorpus(t))
	require.NoError(t, err)

	// Nodes use short labels and carry year and citation vectors.
	assert.ElementsMatch(t,
		[]string{"Smith 2001", "Jones 2002", "Lee 2010", "Kim 2020"},
		g.Nodes())

	years, err := g.Vector("year")
	require.NoError(t, err)
	assert.Equal(t, 2001.0, years["Smith 2001"])
	cited, err := g.Vector("cited_by")
	require.NoError(t, err)
	assert.Equal(t, 120.0, cited["Smith 2001"])

	// The third reference segment is the title: citing → cited.
	_, ok := g.Weight("Kim 2020", "Lee 2010")
	assert.True(t, ok)
	_, ok = g.Weight("Smith 2001", "Jones 2002")
	assert.True(t, ok)
	_, ok = g.Weight("Lee 2010", "Jones 2002")
	assert.True(t, ok)
}

func TestHistoriograph_SkipsUndatedDocuments(t *testing.T) {
	c, err := corpus.New([]corpus.Document{
		{ID: "dated", Title: "Dated article", Year: 2000},
		{ID: "undated", Title: "Undated article"},
	})
	require.NoError(t, err)

	g, err := citenet.Historiograph(c)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dated article"}, g.Nodes())
}
