package bibgroup_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scimetry/bibnet/bibgroup"
	"github.com/scimetry/bibnet/corpus"
	"github.com/scimetry/bibnet/frame"
)

func smallCorpus(t *testing.T) *corpus.Corpus {
	t.Helper()
	c, err := corpus.New([]corpus.Document{
		{ID: "p1", Countries: "USA", AuthorKeywords: "ai; ml", Year: 2001,
			Abstract: "deep learning models"},
		{ID: "p2", Countries: "USA", AuthorKeywords: "ai; nets", Year: 2005,
			Abstract: "statistical methods"},
		{ID: "p3", Countries: "UK", AuthorKeywords: "ai", Year: 2011,
			Abstract: "deep networks"},
		{ID: "p4", AuthorKeywords: "ml", Year: 2015},
		{ID: "p5", AuthorKeywords: "ai"},
	})
	require.NoError(t, err)

	return c
}

func cell(t *testing.T, m *frame.Matrix, row, col string) float64 {
	t.Helper()
	v, err := m.Get(row, col)
	require.NoError(t, err)

	return v
}

func TestFromField(t *testing.T) {
	m, err := bibgroup.FromField(smallCorpus(t), corpus.FieldCountries)
	require.NoError(t, err)

	assert.Equal(t, []string{"UK", "USA"}, m.ColLabels())
	assert.Equal(t, []string{"p1", "p2", "p3", "p4", "p5"}, m.RowLabels())
	assert.Equal(t, 1.0, cell(t, m, "p1", "USA"))
	assert.Equal(t, 1.0, cell(t, m, "p3", "UK"))
	assert.Equal(t, 0.0, cell(t, m, "p4", "USA"))

	_, err = bibgroup.FromField(nil, corpus.FieldCountries)
	assert.ErrorIs(t, err, bibgroup.ErrNilCorpus)
}

func TestFromField_Invert(t *testing.T) {
	m, err := bibgroup.FromField(smallCorpus(t), corpus.FieldCountries,
		bibgroup.WithInvert())
	require.NoError(t, err)

	assert.Equal(t, 0.0, cell(t, m, "p1", "USA"))
	assert.Equal(t, 1.0, cell(t, m, "p1", "UK"))
	assert.Equal(t, 1.0, cell(t, m, "p4", "USA"))
}

func TestFromItems(t *testing.T) {
	m, err := bibgroup.FromItems(smallCorpus(t), corpus.FieldAuthorKeywords)
	require.NoError(t, err)

	// Frequency order: ai (4 docs), ml (2), nets (1).
	assert.Equal(t, []string{"ai", "ml", "nets"}, m.ColLabels())
	assert.Equal(t, 1.0, cell(t, m, "p1", "ai"))
	assert.Equal(t, 1.0, cell(t, m, "p1", "ml"))
	assert.Equal(t, 0.0, cell(t, m, "p1", "nets"))
	assert.Equal(t, 1.0, cell(t, m, "p5", "ai"))
}

func TestFromItems_Filters(t *testing.T) {
	c := smallCorpus(t)

	m, err := bibgroup.FromItems(c, corpus.FieldAuthorKeywords,
		bibgroup.WithTopN(2))
	require.NoError(t, err)
	assert.Equal(t, []string{"ai", "ml"}, m.ColLabels())

	m, err = bibgroup.FromItems(c, corpus.FieldAuthorKeywords,
		bibgroup.WithExclude("ml"))
	require.NoError(t, err)
	assert.Equal(t, []string{"ai", "nets"}, m.ColLabels())

	m, err = bibgroup.FromItems(c, corpus.FieldAuthorKeywords,
		bibgroup.WithInclude("ml", "nets"))
	require.NoError(t, err)
	assert.Equal(t, []string{"ml", "nets"}, m.ColLabels())
}

func TestFromItems_YearRange(t *testing.T) {
	m, err := bibgroup.FromItems(smallCorpus(t), corpus.FieldAuthorKeywords,
		bibgroup.WithYearRange(2001, 2005))
	require.NoError(t, err)

	assert.Equal(t, []string{"p1", "p2"}, m.RowLabels())
	assert.Equal(t, []string{"ai", "ml", "nets"}, m.ColLabels())
}

func TestFromRegex(t *testing.T) {
	m, err := bibgroup.FromRegex(smallCorpus(t), corpus.FieldAbstract,
		map[string]string{"deep": "deep", "stats": "statistic"})
	require.NoError(t, err)

	assert.Equal(t, []string{"deep", "stats"}, m.ColLabels())
	assert.Equal(t, 1.0, cell(t, m, "p1", "deep"))
	assert.Equal(t, 1.0, cell(t, m, "p3", "deep"))
	assert.Equal(t, 1.0, cell(t, m, "p2", "stats"))
	assert.Equal(t, 0.0, cell(t, m, "p2", "deep"))

	_, err = bibgroup.FromRegex(smallCorpus(t), corpus.FieldAbstract,
		map[string]string{"bad": "("})
	assert.ErrorIs(t, err, bibgroup.ErrBadPattern)
}

func TestFromPeriods_Cutpoints(t *testing.T) {
	m, err := bibgroup.FromPeriods(smallCorpus(t), bibgroup.WithCutpoints(2010))
	require.NoError(t, err)

	assert.Equal(t, []string{"2001-2009", "2010-2015"}, m.ColLabels())
	assert.Equal(t, 1.0, cell(t, m, "p1", "2001-2009"))
	assert.Equal(t, 1.0, cell(t, m, "p2", "2001-2009"))
	assert.Equal(t, 1.0, cell(t, m, "p3", "2010-2015"))
	assert.Equal(t, 1.0, cell(t, m, "p4", "2010-2015"))
	// Undated documents get no membership.
	assert.Equal(t, 0.0, cell(t, m, "p5", "2001-2009"))
	assert.Equal(t, 0.0, cell(t, m, "p5", "2010-2015"))
}

func TestFromPeriods_EqualBins(t *testing.T) {
	m, err := bibgroup.FromPeriods(smallCorpus(t), bibgroup.WithPeriods(2),
		bibgroup.WithPeriodLabels("early", "late"))
	require.NoError(t, err)

	assert.Equal(t, []string{"early", "late"}, m.ColLabels())
	assert.Equal(t, 1.0, cell(t, m, "p1", "early"))
	assert.Equal(t, 1.0, cell(t, m, "p4", "late"))
}

func TestFromPeriods_Errors(t *testing.T) {
	_, err := bibgroup.FromPeriods(smallCorpus(t))
	assert.ErrorIs(t, err, bibgroup.ErrBadPeriods)

	_, err = bibgroup.FromPeriods(smallCorpus(t), bibgroup.WithPeriods(2),
		bibgroup.WithPeriodLabels("only-one"))
	assert.ErrorIs(t, err, bibgroup.ErrBadPeriods)
}

func TestFromMatrix_Aligns(t *testing.T) {
	supplied, err := frame.New([]string{"p3", "p1", "ghost"}, []string{"G"})
	require.NoError(t, err)
	supplied.Set(0, 0, 1)
	supplied.Set(1, 0, 2) // non-zero coerces to 1
	supplied.Set(2, 0, 1) // unknown document, dropped

	m, err := bibgroup.FromMatrix(smallCorpus(t), supplied)
	require.NoError(t, err)

	assert.Equal(t, []string{"p1", "p2", "p3", "p4", "p5"}, m.RowLabels())
	assert.Equal(t, 1.0, cell(t, m, "p1", "G"))
	assert.Equal(t, 1.0, cell(t, m, "p3", "G"))
	assert.Equal(t, 0.0, cell(t, m, "p2", "G"))
}

func TestResolve_MutuallyExclusive(t *testing.T) {
	c := smallCorpus(t)
	supplied, err := frame.New([]string{"p1"}, []string{"G"})
	require.NoError(t, err)

	_, err = bibgroup.Resolve(c, corpus.FieldCountries, supplied)
	assert.ErrorIs(t, err, bibgroup.ErrConflicting)

	_, err = bibgroup.Resolve(c, "", nil)
	assert.ErrorIs(t, err, bibgroup.ErrNoGrouping)

	m, err := bibgroup.Resolve(c, corpus.FieldCountries, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"UK", "USA"}, m.ColLabels())
}

func TestIntersections(t *testing.T) {
	m, err := bibgroup.FromItems(smallCorpus(t), corpus.FieldAuthorKeywords)
	require.NoError(t, err)

	inter, err := bibgroup.Intersections(m)
	require.NoError(t, err)
	require.Len(t, inter, 4)

	// Patterns: {ai}×2, then ties of size 1 ordered by group names.
	assert.Equal(t, []string{"ai"}, inter[0].Groups)
	assert.Equal(t, 2, inter[0].Size)
	assert.ElementsMatch(t, []string{"p3", "p5"}, inter[0].IDs)
	assert.Equal(t, []string{"ai", "ml"}, inter[1].Groups)
	assert.Equal(t, []string{"ai", "nets"}, inter[2].Groups)
	assert.Equal(t, []string{"ml"}, inter[3].Groups)

	_, err = bibgroup.Intersections(nil)
	assert.ErrorIs(t, err, bibgroup.ErrNilMatrix)
}

func TestSimilarity(t *testing.T) {
	m, err := frame.New([]string{"d1", "d2", "d3", "d4"}, []string{"A", "B"})
	require.NoError(t, err)
	m.Set(0, 0, 1)
	m.Set(1, 0, 1)
	m.Set(1, 1, 1)
	m.Set(2, 1, 1)

	out, skipped := bibgroup.Similarity(m, []string{
		bibgroup.MethodJaccard, bibgroup.MethodCount,
		bibgroup.MethodSimpleMatching, bibgroup.MethodRogersTanimoto,
		"no_such_method",
	})

	require.Contains(t, out, bibgroup.MethodJaccard)
	assert.InDelta(t, 1.0/3.0, cell(t, out[bibgroup.MethodJaccard], "A", "B"), 1e-9)
	assert.InDelta(t, 1.0, cell(t, out[bibgroup.MethodJaccard], "A", "A"), 1e-9)
	assert.Equal(t, 1.0, cell(t, out[bibgroup.MethodCount], "A", "B"))
	assert.InDelta(t, 0.5, cell(t, out[bibgroup.MethodSimpleMatching], "A", "B"), 1e-9)
	assert.InDelta(t, 1.0/3.0, cell(t, out[bibgroup.MethodRogersTanimoto], "A", "B"), 1e-9)

	assert.NotContains(t, out, "no_such_method")
	assert.ErrorIs(t, skipped["no_such_method"], bibgroup.ErrUnknownMethod)
}

func TestSubset(t *testing.T) {
	c := smallCorpus(t)
	m, err := bibgroup.FromItems(c, corpus.FieldAuthorKeywords)
	require.NoError(t, err)

	sub, err := bibgroup.Subset(c, m, "ai")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2", "p3", "p5"}, sub.IDs())

	_, err = bibgroup.Subset(c, m, "no_such_group")
	assert.ErrorIs(t, err, bibgroup.ErrUnknownGroup)
}

func TestForEachGroup_CapturesFailures(t *testing.T) {
	c := smallCorpus(t)
	m, err := bibgroup.FromItems(c, corpus.FieldAuthorKeywords)
	require.NoError(t, err)

	boom := errors.New("boom")
	var visited []string
	failures, err := bibgroup.ForEachGroup(c, m, func(group string, sub *corpus.Corpus) error {
		visited = append(visited, group)
		if group == "nets" {
			return boom
		}

		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"ai", "ml", "nets"}, visited)
	require.Len(t, failures, 1)
	assert.ErrorIs(t, failures["nets"], boom)
}

func TestCountAcrossGroups(t *testing.T) {
	c := smallCorpus(t)
	groups, err := bibgroup.FromField(c, corpus.FieldCountries)
	require.NoError(t, err)

	merged, failures, err := bibgroup.CountAcrossGroups(c, groups,
		corpus.FieldAuthorKeywords, bibgroup.MergeAllItems)
	require.NoError(t, err)
	assert.Empty(t, failures)

	// Totals: ai 3, ml 1, nets 1; ties break on the item.
	assert.Equal(t, []string{"ai", "ml", "nets"}, merged.RowLabels())
	assert.Equal(t, []string{"UK", "USA"}, merged.ColLabels())
	assert.Equal(t, 2.0, cell(t, merged, "ai", "USA"))
	assert.Equal(t, 1.0, cell(t, merged, "ai", "UK"))
	assert.Equal(t, 0.0, cell(t, merged, "ml", "UK"))

	shared, _, err := bibgroup.CountAcrossGroups(c, groups,
		corpus.FieldAuthorKeywords, bibgroup.MergeSharedItems)
	require.NoError(t, err)
	assert.Equal(t, []string{"ai"}, shared.RowLabels())

	_, _, err = bibgroup.CountAcrossGroups(c, groups,
		corpus.FieldAuthorKeywords, "bad_mode")
	assert.ErrorIs(t, err, bibgroup.ErrUnknownMethod)
}
