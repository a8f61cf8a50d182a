package relation_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scimetry/bibnet/frame"
	"github.com/scimetry/bibnet/relation"
)

// indicatorABC builds the reference scenario: doc1={A,B}, doc2={B,C},
// doc3={A,B,C} as a binary documents×items matrix.
func indicatorABC(t *testing.T) *frame.Matrix {
	t.Helper()
	m, err := frame.New([]string{"doc1", "doc2", "doc3"}, []string{"A", "B", "C"})
	require.NoError(t, err)
	for _, cell := range [][2]string{
		{"doc1", "A"}, {"doc1", "B"},
		{"doc2", "B"}, {"doc2", "C"},
		{"doc3", "A"}, {"doc3", "B"}, {"doc3", "C"},
	} {
		require.NoError(t, m.Put(cell[0], cell[1], 1))
	}

	return m
}

func get(t *testing.T, m *frame.Matrix, r, c string) float64 {
	t.Helper()
	v, err := m.Get(r, c)
	require.NoError(t, err)

	return v
}

func TestCompute_SelfCooccurrence(t *testing.T) {
	res, err := relation.Compute(indicatorABC(t), nil)
	require.NoError(t, err)

	r := res.Relation
	assert.Equal(t, 2.0, get(t, r, "A", "B"))
	assert.Equal(t, 2.0, get(t, r, "B", "C"))
	assert.Equal(t, 1.0, get(t, r, "A", "C"))
	// Diagonal equals document frequency.
	assert.Equal(t, 2.0, get(t, r, "A", "A"))
	assert.Equal(t, 3.0, get(t, r, "B", "B"))
	assert.Equal(t, 2.0, get(t, r, "C", "C"))
	// Exact symmetry.
	for i := 0; i < r.Rows(); i++ {
		for j := 0; j < r.Cols(); j++ {
			assert.Equal(t, r.At(i, j), r.At(j, i))
		}
	}
}

func TestCompute_JaccardScenario(t *testing.T) {
	res, err := relation.Compute(indicatorABC(t), nil, relation.WithNormalization())
	require.NoError(t, err)

	jac := res.Normalized[relation.MeasureJaccard]
	require.NotNil(t, jac)
	// Jaccard[A,B] = 2/(2+3-2) = 2/3.
	assert.InDelta(t, 2.0/3.0, get(t, jac, "A", "B"), 1e-6)
}

func TestCompute_NormalizationBounds(t *testing.T) {
	// Property test: random binary indicators keep every similarity
	// measure inside its documented range.
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 20; trial++ {
		rows := make([]string, 8)
		cols := make([]string, 5)
		for i := range rows {
			rows[i] = string(rune('a' + i))
		}
		for j := range cols {
			cols[j] = string(rune('A' + j))
		}
		m, err := frame.New(rows, cols)
		require.NoError(t, err)
		nonzero := false
		for i := range rows {
			for j := range cols {
				if rng.Float64() < 0.4 {
					m.Set(i, j, 1)
					nonzero = true
				}
			}
		}
		if !nonzero {
			continue
		}

		res, err := relation.Compute(m, nil, relation.WithNormalization())
		require.NoError(t, err)

		unit := []relation.Measure{
			relation.MeasureJaccard, relation.MeasureSalton,
			relation.MeasureInclusion, relation.MeasureEquivalence,
		}
		for _, meas := range unit {
			nm := res.Normalized[meas]
			require.NotNil(t, nm, "measure %s", meas)
			for _, cell := range nm.Stack() {
				assert.GreaterOrEqual(t, cell.Value, 0.0, "%s %v", meas, cell)
				assert.LessOrEqual(t, cell.Value, 1.0+1e-9, "%s %v", meas, cell)
			}
		}
		for _, cell := range res.Normalized[relation.MeasureYuleQ].Stack() {
			assert.GreaterOrEqual(t, cell.Value, -1.0-1e-9)
			assert.LessOrEqual(t, cell.Value, 1.0+1e-9)
		}
		for _, cell := range res.Normalized[relation.MeasureFisherP].Stack() {
			assert.Greater(t, cell.Value, 0.0)
			assert.LessOrEqual(t, cell.Value, 1.0)
		}
	}
}

func TestCompute_CrossRelation(t *testing.T) {
	a := indicatorABC(t)
	b, err := frame.New([]string{"doc1", "doc2", "doc3"}, []string{"X"})
	require.NoError(t, err)
	b.Set(0, 0, 1)
	b.Set(2, 0, 1)

	res, err := relation.Compute(a, b)
	require.NoError(t, err)
	// X co-occurs with A in doc1 and doc3.
	assert.Equal(t, 2.0, get(t, res.Relation, "A", "X"))
	assert.Equal(t, 2.0, get(t, res.Relation, "B", "X"))
	assert.Equal(t, 1.0, get(t, res.Relation, "C", "X"))

	// PMI is self-relation only.
	_, err = relation.Compute(a, b, relation.WithPMI())
	assert.ErrorIs(t, err, relation.ErrPMICross)
}

func TestCompute_DocMismatch(t *testing.T) {
	a := indicatorABC(t)
	b, err := frame.New([]string{"d1"}, []string{"X"})
	require.NoError(t, err)

	_, err = relation.Compute(a, b)
	assert.ErrorIs(t, err, relation.ErrDocMismatch)

	_, err = relation.Compute(nil, nil)
	assert.ErrorIs(t, err, relation.ErrNilInput)
}

func TestCompute_PMIClippedNonNegative(t *testing.T) {
	res, err := relation.Compute(indicatorABC(t), nil, relation.WithPMI())
	require.NoError(t, err)
	for _, cell := range res.Relation.Stack() {
		assert.GreaterOrEqual(t, cell.Value, 0.0)
		assert.False(t, math.IsNaN(cell.Value))
	}
}

func TestCompute_FisherGate(t *testing.T) {
	res, err := relation.Compute(indicatorABC(t), nil,
		relation.WithNormalization(), relation.WithFisherLimit(1))
	require.NoError(t, err)

	_, computed := res.Normalized[relation.MeasureFisherP]
	assert.False(t, computed)
	assert.ErrorIs(t, res.Skipped[relation.MeasureFisherP], relation.ErrFisherGated)
	// Other measures are unaffected.
	assert.Contains(t, res.Normalized, relation.MeasureJaccard)
}

func TestCompute_MeasuresTable(t *testing.T) {
	res, err := relation.Compute(indicatorABC(t), nil, relation.WithNormalization())
	require.NoError(t, err)

	require.Len(t, res.Measures, 9)
	require.Len(t, res.MeasuresT, 9)

	var ab relation.PairMeasures
	for _, pm := range res.Measures {
		if pm.Row == "A" && pm.Col == "B" {
			ab = pm
		}
	}
	require.NotNil(t, ab.Values)
	assert.Equal(t, 2.0, ab.Values[relation.MeasureCount])
	// P(B|A) = 2/2, P(A|B) = 2/3.
	assert.InDelta(t, 1.0, ab.Values[relation.MeasurePropGivenRow], 1e-6)
	assert.InDelta(t, 2.0/3.0, ab.Values[relation.MeasurePropGivenCol], 1e-6)
	assert.InDelta(t, 2.0/3.0, ab.Values[relation.MeasureJaccard], 1e-6)
}

func TestFisherMatrix_KnownValue(t *testing.T) {
	// Two disjoint items over 10 documents: margins 5/5, observed a=0.
	// Both extreme tables (a=0, a=5) have probability 1/252, so the
	// two-sided p is 2/252.
	m, err := frame.New(
		[]string{"d0", "d1", "d2", "d3", "d4", "d5", "d6", "d7", "d8", "d9"},
		[]string{"P", "Q"})
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		m.Set(i, 0, 1)
	}
	for i := 5; i < 10; i++ {
		m.Set(i, 1, 1)
	}

	res, err := relation.Compute(m, nil, relation.WithNormalization())
	require.NoError(t, err)
	p := get(t, res.Normalized[relation.MeasureFisherP], "P", "Q")
	assert.InDelta(t, 2.0/252.0, p, 1e-9)
}

func TestChiSquare_Consistency(t *testing.T) {
	m, err := frame.New([]string{"r1", "r2"}, []string{"c1", "c2"})
	require.NoError(t, err)
	m.Set(0, 0, 10)
	m.Set(0, 1, 20)
	m.Set(1, 0, 30)
	m.Set(1, 1, 40)

	res, err := relation.ChiSquare(m)
	require.NoError(t, err)

	var sumSq float64
	for _, cell := range res.Residuals.Stack() {
		sumSq += cell.Value * cell.Value
	}
	assert.InDelta(t, res.Stat, sumSq, 1e-9)
	assert.Equal(t, 1, res.DF)

	// Expected: row/col margins product over grand total.
	assert.InDelta(t, 30.0*40.0/100.0, res.Expected.At(0, 0), 1e-9)

	_, err = relation.ChiSquare(nil)
	assert.ErrorIs(t, err, relation.ErrNilInput)
}

func TestLogRatio(t *testing.T) {
	m, err := frame.New([]string{"r1", "r2"}, []string{"c1", "c2"})
	require.NoError(t, err)
	m.Set(0, 0, 8)
	m.Set(0, 1, 2)
	m.Set(1, 0, 2)
	m.Set(1, 1, 8)

	res, err := relation.LogRatio(m, 0)
	require.NoError(t, err)
	// Diagonal cells are over-represented: positive log ratio.
	assert.Greater(t, res.LogRatio.At(0, 0), 0.0)
	assert.Less(t, res.LogRatio.At(0, 1), 0.0)
	// Expected under independence: 10*10/20 = 5.
	assert.InDelta(t, 5.0, res.Expected.At(0, 0), 1e-9)

	zero, err := frame.New([]string{"r"}, []string{"c"})
	require.NoError(t, err)
	_, err = relation.LogRatio(zero, 0)
	assert.ErrorIs(t, err, relation.ErrDegenerate)
}
