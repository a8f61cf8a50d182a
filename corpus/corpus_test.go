package corpus_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scimetry/bibnet/corpus"
)

func sampleDocs() []corpus.Document {
	return []corpus.Document{
		{ID: "d1", Title: "Graphs", AuthorKeywords: "networks; graphs", Year: 2019, CitedBy: 10},
		{ID: "d2", Title: "Matrices", AuthorKeywords: "matrices; graphs", Year: 2020, CitedBy: 3},
		{ID: "d3", Title: "Both", AuthorKeywords: "networks; graphs; matrices", Year: 2021},
		{ID: "d4", Title: "Empty"},
	}
}

func TestNew_IDInvariants(t *testing.T) {
	_, err := corpus.New([]corpus.Document{{ID: "a"}, {ID: "a"}})
	assert.ErrorIs(t, err, corpus.ErrDuplicateID)

	_, err = corpus.New([]corpus.Document{{ID: ""}})
	assert.ErrorIs(t, err, corpus.ErrEmptyID)
}

func TestValues_AndLookup(t *testing.T) {
	c, err := corpus.New(sampleDocs())
	require.NoError(t, err)

	titles, err := c.Values(corpus.FieldTitle)
	require.NoError(t, err)
	assert.Equal(t, []string{"Graphs", "Matrices", "Both", "Empty"}, titles)

	_, err = c.Values(corpus.Field("bogus"))
	assert.ErrorIs(t, err, corpus.ErrUnknownField)

	d, err := c.ByID("d2")
	require.NoError(t, err)
	assert.Equal(t, "Matrices", d.Title)

	_, err = c.ByID("ghost")
	assert.ErrorIs(t, err, corpus.ErrUnknownDocument)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, corpus.SplitList("", "; "))
	assert.Nil(t, corpus.SplitList(" ;  ; ", ";"))
	assert.Equal(t, []string{"a", "b"}, corpus.SplitList("a; b", "; "))
	assert.Equal(t, []string{"a", "b c"}, corpus.SplitList(" a ;b c ", ";"))
}

func TestCountItems_DocumentFrequency(t *testing.T) {
	c, err := corpus.New(sampleDocs())
	require.NoError(t, err)

	counts, err := c.CountItems(corpus.FieldAuthorKeywords, corpus.DefaultListSeparator)
	require.NoError(t, err)
	require.Len(t, counts, 3)
	// graphs appears in 3 documents, then matrices/networks tie at 2
	// (lexicographic tie-break).
	assert.Equal(t, corpus.ItemCount{Item: "graphs", Documents: 3}, counts[0])
	assert.Equal(t, corpus.ItemCount{Item: "matrices", Documents: 2}, counts[1])
	assert.Equal(t, corpus.ItemCount{Item: "networks", Documents: 2}, counts[2])
}

func TestTopItems(t *testing.T) {
	counts := []corpus.ItemCount{
		{Item: "a", Documents: 5},
		{Item: "b", Documents: 3},
		{Item: "c", Documents: 3},
		{Item: "d", Documents: 1},
	}

	// topN keeps ties with the cut-off frequency.
	assert.Equal(t, []string{"a", "b", "c"}, corpus.TopItems(counts, 2, nil, nil))

	// regexp filtering overrides topN.
	include := regexp.MustCompile(`^[bd]$`)
	assert.Equal(t, []string{"b", "d"}, corpus.TopItems(counts, 1, include, nil))

	exclude := regexp.MustCompile(`^a$`)
	assert.Equal(t, []string{"b", "c", "d"}, corpus.TopItems(counts, 2, nil, exclude))
}
