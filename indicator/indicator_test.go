package indicator_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scimetry/bibnet/corpus"
	"github.com/scimetry/bibnet/indicator"
)

// keywordCorpus is the three-document scenario used throughout the suite:
// doc1={A,B}, doc2={B,C}, doc3={A,B,C}.
func keywordCorpus(t *testing.T) *corpus.Corpus {
	t.Helper()
	c, err := corpus.New([]corpus.Document{
		{ID: "doc1", AuthorKeywords: "A; B"},
		{ID: "doc2", AuthorKeywords: "B; C"},
		{ID: "doc3", AuthorKeywords: "A; B; C"},
	})
	require.NoError(t, err)

	return c
}

func TestMatch_ListBinaryColumnSums(t *testing.T) {
	c := keywordCorpus(t)

	res, err := indicator.Match(c, corpus.FieldAuthorKeywords, []string{"A", "B", "C"},
		indicator.WithValueType(indicator.ValueList),
		indicator.WithMissingAsZero(),
	)
	require.NoError(t, err)

	// Column sums equal single-item document frequencies.
	assert.Equal(t, []float64{2, 3, 2}, res.Binary.ColSums())
	assert.Equal(t, []int{0, 2}, res.MatchIndices["A"])
	assert.Equal(t, []int{0, 1, 2}, res.MatchIndices["B"])
	assert.Equal(t, []int{1, 2}, res.MatchIndices["C"])
}

func TestMatch_FractionalRowSums(t *testing.T) {
	c := keywordCorpus(t)

	res, err := indicator.Match(c, corpus.FieldAuthorKeywords, []string{"A", "B", "C"},
		indicator.WithValueType(indicator.ValueList),
		indicator.WithMissingAsZero(),
	)
	require.NoError(t, err)
	require.NotNil(t, res.Fractional)

	// doc1={A,B}: 0.5 each; every covered row sums to 1.
	v, err := res.Fractional.Get("doc1", "A")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, v, 1e-12)
	for _, sum := range res.Fractional.RowSums() {
		assert.InDelta(t, 1.0, sum, 1e-12)
	}
}

func TestMatch_MissingValuePolicy(t *testing.T) {
	c, err := corpus.New([]corpus.Document{
		{ID: "d1", AuthorKeywords: "A"},
		{ID: "d2"}, // missing
	})
	require.NoError(t, err)

	// Default: missing rows carry NaN so denominators can exclude them.
	res, err := indicator.Match(c, corpus.FieldAuthorKeywords, []string{"A"},
		indicator.WithValueType(indicator.ValueList))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(res.Binary.At(1, 0)))
	assert.Equal(t, 1.0, res.Binary.At(0, 0))

	// missing_as_zero: explicit zeros instead.
	res, err = indicator.Match(c, corpus.FieldAuthorKeywords, []string{"A"},
		indicator.WithValueType(indicator.ValueList),
		indicator.WithMissingAsZero())
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Binary.At(1, 0))
}

func TestMatch_EmptyVocabulary(t *testing.T) {
	c := keywordCorpus(t)

	res, err := indicator.Match(c, corpus.FieldAuthorKeywords, nil,
		indicator.WithValueType(indicator.ValueList))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Binary.Rows())
	assert.Equal(t, 0, res.Binary.Cols())
}

func TestMatch_StringMode(t *testing.T) {
	c, err := corpus.New([]corpus.Document{
		{ID: "d1", Title: "alpha"},
		{ID: "d2", Title: "beta"},
		{ID: "d3", Title: "alpha"},
	})
	require.NoError(t, err)

	res, err := indicator.Match(c, corpus.FieldTitle, []string{"alpha"},
		indicator.WithMissingAsZero())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, res.MatchIndices["alpha"])
	assert.Equal(t, []float64{2}, res.Binary.ColSums())
}

func TestMatch_TextCountsAndDFICF(t *testing.T) {
	c, err := corpus.New([]corpus.Document{
		{ID: "d1", Abstract: "Graph graph theory"},
		{ID: "d2", Abstract: "matrix methods"},
		{ID: "d3", Abstract: "graph matrix"},
	})
	require.NoError(t, err)

	res, err := indicator.Match(c, corpus.FieldAbstract, []string{"graph", "matrix"},
		indicator.WithValueType(indicator.ValueText),
		indicator.WithMissingAsZero(),
		indicator.WithTextNorm(indicator.NormDFICF),
	)
	require.NoError(t, err)

	// Case-insensitive substring counts.
	assert.Equal(t, 2.0, res.Counts.At(0, 0))
	assert.Equal(t, 0.0, res.Counts.At(0, 1))
	assert.Equal(t, 1.0, res.Counts.At(2, 0))

	// df-icf: count * log((1+N)/(1+df)); N=3, df=2 for both items.
	require.NotNil(t, res.Weighted)
	icf := math.Log(4.0 / 3.0)
	assert.InDelta(t, 2*icf, res.Weighted.At(0, 0), 1e-12)
	assert.InDelta(t, 1*icf, res.Weighted.At(2, 1), 1e-12)
	assert.Equal(t, indicator.NormDFICF, res.Norm)
}

func TestMatch_TextMTFIDF(t *testing.T) {
	c, err := corpus.New([]corpus.Document{
		{ID: "d1", Abstract: "graph graph matrix"},
		{ID: "d2", Abstract: "nothing relevant"},
	})
	require.NoError(t, err)

	res, err := indicator.Match(c, corpus.FieldAbstract, []string{"graph", "matrix"},
		indicator.WithValueType(indicator.ValueText),
		indicator.WithMissingAsZero(),
		indicator.WithTextNorm(indicator.NormMTFIDF),
	)
	require.NoError(t, err)
	require.NotNil(t, res.Weighted)

	// d1: max count 2 → graph weight 1*idf, matrix weight 0.5*idf.
	idf := math.Log(3.0 / 2.0)
	assert.InDelta(t, idf, res.Weighted.At(0, 0), 1e-12)
	assert.InDelta(t, 0.5*idf, res.Weighted.At(0, 1), 1e-12)
	// All-zero row stays zero.
	assert.Equal(t, 0.0, res.Weighted.At(1, 0))
}

func TestMatch_InputContract(t *testing.T) {
	c := keywordCorpus(t)

	_, err := indicator.Match(nil, corpus.FieldTitle, nil)
	assert.ErrorIs(t, err, indicator.ErrNilCorpus)

	_, err = indicator.Match(c, corpus.FieldTitle, nil,
		indicator.WithValueType(indicator.ValueType("bogus")))
	assert.ErrorIs(t, err, indicator.ErrBadValueType)

	_, err = indicator.Match(c, corpus.Field("bogus"), nil)
	assert.ErrorIs(t, err, corpus.ErrUnknownField)
}

func TestMatch_WithoutIndicators(t *testing.T) {
	c := keywordCorpus(t)
	res, err := indicator.Match(c, corpus.FieldAuthorKeywords, []string{"A"},
		indicator.WithValueType(indicator.ValueList),
		indicator.WithoutIndicators())
	require.NoError(t, err)
	assert.Nil(t, res.Binary)
	assert.Equal(t, []int{0, 2}, res.MatchIndices["A"])
}
