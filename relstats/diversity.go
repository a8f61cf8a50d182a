package relstats

import (
	"math"
	"sort"

	"github.com/scimetry/bibnet/frame"
)

// DiversityRow profiles one matrix row as an abundance distribution.
type DiversityRow struct {
	Label string

	// Richness is the number of non-zero cells.
	Richness int

	// Total is the row sum.
	Total float64

	// Shannon is the Shannon entropy (base 2) of the cell shares.
	Shannon float64

	// Evenness is Shannon/log₂(Richness); 0 when Richness < 2.
	Evenness float64

	// Herfindahl is the concentration index Σp².
	Herfindahl float64

	// Simpson is the Gini–Simpson index 1−Σp².
	Simpson float64

	// Gini is the Gini concentration coefficient of the non-zero cells.
	Gini float64
}

// Diversity profiles every row of the matrix. Rows summing to zero get
// a zero profile.
func Diversity(m *frame.Matrix) ([]DiversityRow, error) {
	if m == nil {
		return nil, ErrNilMatrix
	}

	rows := make([]DiversityRow, m.Rows())
	for i, label := range m.RowLabels() {
		row := m.Row(i)
		rows[i] = diversityOf(label, row)
	}

	return rows, nil
}

func diversityOf(label string, values []float64) DiversityRow {
	d := DiversityRow{Label: label}
	var nonzero []float64
	for _, v := range values {
		if v > 0 {
			nonzero = append(nonzero, v)
			d.Total += v
		}
	}
	d.Richness = len(nonzero)
	if d.Total == 0 {
		return d
	}

	for _, v := range nonzero {
		p := v / d.Total
		d.Shannon -= p * math.Log2(p)
		d.Herfindahl += p * p
	}
	d.Simpson = 1 - d.Herfindahl
	if d.Richness > 1 {
		d.Evenness = d.Shannon / math.Log2(float64(d.Richness))
	}
	d.Gini = gini(nonzero)

	return d
}

// gini computes the Gini coefficient of a positive sample.
func gini(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	var cum, weighted float64
	for i, v := range sorted {
		cum += v
		weighted += float64(i+1) * v
	}

	return (2*weighted - float64(n+1)*cum) / (float64(n) * cum)
}
