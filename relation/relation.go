package relation

import (
	"fmt"
	"math"

	"github.com/james-bowman/nlp"
	"gonum.org/v1/gonum/mat"

	"github.com/scimetry/bibnet/frame"
)

// Measure names one association/normalization variant.
type Measure string

// Measures produced by Compute.
const (
	MeasureCount        Measure = "count"
	MeasurePropGivenRow Measure = "prop_given_row"
	MeasurePropGivenCol Measure = "prop_given_col"
	MeasureAssociation  Measure = "association"
	MeasureInclusion    Measure = "inclusion"
	MeasureSalton       Measure = "salton"
	MeasureJaccard      Measure = "jaccard"
	MeasureEquivalence  Measure = "equivalence"
	MeasureYuleQ        Measure = "yule_q"
	MeasureFisherP      Measure = "fisher_p"
)

// PairMeasures is one row of the stacked measures table: every computed
// measure for a (row item, column item) pair.
type PairMeasures struct {
	Row    string
	Col    string
	Values map[Measure]float64
}

// Result carries the outputs of one Compute call.
type Result struct {
	// Relation is the raw (or PMI-transformed) items×items matrix.
	Relation *frame.Matrix

	// Normalized holds each successfully computed association measure.
	Normalized map[Measure]*frame.Matrix

	// Skipped records measures that were requested but not produced,
	// with the reason, preserving the partial-success contract.
	Skipped map[Measure]error

	// Measures is the long-format table indexed by (row, col), carrying
	// raw count, conditional proportions and every normalized measure.
	Measures []PairMeasures

	// MeasuresT is the same table in the transposed orientation.
	MeasuresT []PairMeasures
}

// Compute derives the relation matrix between the items of a and b.
// Passing b == nil computes the self co-occurrence of a.
//
// The rows of a (and b) are documents; the relation is Aᵀ·B, so for binary
// indicators cell (i,j) counts documents containing both items.
func Compute(a, b *frame.Matrix, opts ...Option) (*Result, error) {
	if a == nil {
		return nil, ErrNilInput
	}
	o := defaultComputeOptions()
	for _, opt := range opts {
		opt(&o)
	}

	self := b == nil
	if o.pmi && !self {
		return nil, ErrPMICross
	}
	if self {
		b = a
	} else if a.Rows() != b.Rows() {
		return nil, fmt.Errorf("%w: %d vs %d", ErrDocMismatch, a.Rows(), b.Rows())
	}

	if o.tfidf {
		var err error
		if a, err = tfidfWeight(a); err != nil {
			return nil, err
		}
		if self {
			b = a
		} else if b, err = tfidfWeight(b); err != nil {
			return nil, err
		}
	}

	raw, err := a.Transpose().Mul(b)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Relation:   raw,
		Normalized: make(map[Measure]*frame.Matrix),
		Skipped:    make(map[Measure]error),
	}

	if o.pmi {
		if res.Relation, err = pmiTransform(raw, o.eps); err != nil {
			return nil, err
		}
	}

	rowSums := a.ColSums() // marginal document frequency per row item
	colSums := b.ColSums() // marginal document frequency per column item
	nDocs := float64(a.Rows())

	if o.normalize {
		normalizeAll(res, raw, rowSums, colSums, nDocs, o)
	}
	buildMeasureTables(res, raw, rowSums, colSums, o.eps)

	return res, nil
}

// tfidfWeight applies the nlp TF-IDF transformer to a documents×items
// indicator matrix (transposing in and out of the transformer's
// term×document orientation).
func tfidfWeight(m *frame.Matrix) (*frame.Matrix, error) {
	if m.Rows() == 0 || m.Cols() == 0 {
		return m, nil
	}
	weighted, err := nlp.NewTfidfTransformer().FitTransform(mat.DenseCopyOf(m.Dense().T()))
	if err != nil {
		return nil, fmt.Errorf("relation: tfidf weighting failed: %w", err)
	}

	return frame.FromDense(m.RowLabels(), m.ColLabels(), mat.DenseCopyOf(weighted.T()))
}

// pmiTransform converts a self co-occurrence matrix to clipped PMI:
// log(P(i,j)/(P(i)·P(j))), probabilities floored at eps, negatives to 0.
func pmiTransform(raw *frame.Matrix, eps float64) (*frame.Matrix, error) {
	total := raw.Sum()
	if total == 0 {
		return nil, ErrDegenerate
	}
	n := raw.Rows()
	pi := make([]float64, n)
	for i := 0; i < n; i++ {
		pi[i] = math.Max(raw.At(i, i)/total, eps)
	}
	out := raw.Clone()
	out.Apply(func(i, j int, v float64) float64 {
		pij := math.Max(v/total, eps)
		pmi := math.Log(pij / (pi[i] * pi[j]))
		if pmi < 0 {
			return 0
		}

		return pmi
	})

	return out, nil
}

// normalizeAll computes every association measure, recording per-measure
// failures in res.Skipped instead of aborting.
func normalizeAll(res *Result, raw *frame.Matrix, rowSums, colSums []float64, nDocs float64, o options) {
	eps := o.eps

	elementwise := func(m Measure, fn func(r, c, v float64) float64) {
		out := raw.Clone()
		out.Apply(func(i, j int, v float64) float64 { return fn(rowSums[i], colSums[j], v) })
		res.Normalized[m] = out
	}

	elementwise(MeasureAssociation, func(r, c, v float64) float64 { return v / (r*c + eps) })
	elementwise(MeasureInclusion, func(r, c, v float64) float64 { return v / (math.Min(r, c) + eps) })
	elementwise(MeasureSalton, func(r, c, v float64) float64 { return v / (math.Sqrt(r*c) + eps) })
	elementwise(MeasureJaccard, func(r, c, v float64) float64 { return v / (r + c - v + eps) })
	elementwise(MeasureEquivalence, func(r, c, v float64) float64 { return v * v / (r*c + eps) })
	elementwise(MeasureYuleQ, func(r, c, v float64) float64 {
		cb := r - v          // item in row only
		cc := c - v          // item in column only
		cd := nDocs - r - cc // in neither

		return (v*cd - cb*cc) / (v*cd + cb*cc + eps)
	})

	switch {
	case o.fisherLimit == 0:
		res.Skipped[MeasureFisherP] = ErrFisherGated
	case raw.Rows()*raw.Cols() > o.fisherLimit*o.fisherLimit:
		res.Skipped[MeasureFisherP] = fmt.Errorf("%w: %dx%d exceeds %d²",
			ErrFisherGated, raw.Rows(), raw.Cols(), o.fisherLimit)
	default:
		res.Normalized[MeasureFisherP] = fisherMatrix(raw, rowSums, colSums, nDocs)
	}
}

// buildMeasureTables assembles the stacked long-format tables in both
// orientations.
func buildMeasureTables(res *Result, raw *frame.Matrix, rowSums, colSums []float64, eps float64) {
	rows := raw.RowLabels()
	cols := raw.ColLabels()

	res.Measures = make([]PairMeasures, 0, len(rows)*len(cols))
	res.MeasuresT = make([]PairMeasures, 0, len(rows)*len(cols))

	cell := func(i, j int) map[Measure]float64 {
		v := raw.At(i, j)
		values := map[Measure]float64{
			MeasureCount:        v,
			MeasurePropGivenRow: v / (rowSums[i] + eps),
			MeasurePropGivenCol: v / (colSums[j] + eps),
		}
		for m, nm := range res.Normalized {
			values[m] = nm.At(i, j)
		}

		return values
	}

	for i, r := range rows {
		for j, c := range cols {
			res.Measures = append(res.Measures, PairMeasures{Row: r, Col: c, Values: cell(i, j)})
		}
	}
	for j, c := range cols {
		for i, r := range rows {
			res.MeasuresT = append(res.MeasuresT, PairMeasures{Row: c, Col: r, Values: cell(i, j)})
		}
	}
}
