package relation

import (
	"math"

	"github.com/scimetry/bibnet/frame"
)

// fisherMatrix computes a two-sided Fisher exact p-value per cell from the
// 2×2 contingency table (a=R, b=r−R, c=c−R, d=N−a−b−c). Cells whose table
// is malformed (negative counts from non-binary input) fall back to 1.0,
// mirroring the per-cell failure policy of the batch.
func fisherMatrix(raw *frame.Matrix, rowSums, colSums []float64, nDocs float64) *frame.Matrix {
	out := raw.Clone()
	out.Apply(func(i, j int, v float64) float64 {
		a := int(math.Round(v))
		b := int(math.Round(rowSums[i] - v))
		c := int(math.Round(colSums[j] - v))
		d := int(math.Round(nDocs)) - a - b - c
		if a < 0 || b < 0 || c < 0 || d < 0 {
			return 1.0
		}

		return fisherExactTwoSided(a, b, c, d)
	})

	return out
}

// fisherExactTwoSided returns the two-sided Fisher exact p-value of the
// table [[a b] [c d]]: the total hypergeometric probability of all tables
// with the observed margins whose point probability does not exceed that
// of the observed table.
//
// Probabilities are evaluated in log space via lgamma, so the test is
// stable for counts far beyond factorial overflow.
// Complexity: O(min(a+b, a+c)) per call.
func fisherExactTwoSided(a, b, c, d int) float64 {
	r1 := a + b // first row margin
	r2 := c + d
	c1 := a + c // first column margin
	n := r1 + r2

	if n == 0 || r1 == 0 || r2 == 0 || c1 == 0 || c1 == n {
		return 1.0 // degenerate margins: only one table possible
	}

	lo := c1 - r2
	if lo < 0 {
		lo = 0
	}
	hi := r1
	if c1 < hi {
		hi = c1
	}

	// log P(k) = logC(r1,k) + logC(r2,c1-k) - logC(n,c1)
	logDenom := logChoose(n, c1)
	logProb := func(k int) float64 {
		return logChoose(r1, k) + logChoose(r2, c1-k) - logDenom
	}

	observed := logProb(a)
	// Relative tolerance matches the conventional guard against float
	// noise when comparing equal-probability tables.
	threshold := observed + 1e-7

	var p float64
	for k := lo; k <= hi; k++ {
		if lp := logProb(k); lp <= threshold {
			p += math.Exp(lp)
		}
	}
	if p > 1 {
		p = 1
	}

	return p
}

// logChoose returns log of the binomial coefficient C(n, k).
func logChoose(n, k int) float64 {
	if k < 0 || k > n {
		return math.Inf(-1)
	}
	lgN, _ := math.Lgamma(float64(n + 1))
	lgK, _ := math.Lgamma(float64(k + 1))
	lgNK, _ := math.Lgamma(float64(n - k + 1))

	return lgN - lgK - lgNK
}
