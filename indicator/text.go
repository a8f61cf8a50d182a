package indicator

import (
	"fmt"
	"math"

	"github.com/james-bowman/nlp"
	"gonum.org/v1/gonum/mat"

	"github.com/scimetry/bibnet/frame"
)

// reweight dispatches the text-mode count re-weighting.
func reweight(counts *frame.Matrix, norm TextNorm) (*frame.Matrix, error) {
	if counts.Rows() == 0 || counts.Cols() == 0 {
		return counts.Clone(), nil
	}
	switch norm {
	case NormTFIDF:
		return tfidfMatrix(counts)
	case NormDFICF:
		return dficfMatrix(counts), nil
	case NormMTFIDF:
		return mtfidfMatrix(counts), nil
	default:
		return nil, ErrBadTextNorm
	}
}

// tfidfMatrix applies the nlp TF-IDF transformer. The transformer works on
// term×document matrices, so the count frame is transposed in and out.
func tfidfMatrix(counts *frame.Matrix) (*frame.Matrix, error) {
	termDoc := mat.DenseCopyOf(counts.Dense().T())
	weighted, err := nlp.NewTfidfTransformer().FitTransform(termDoc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTFIDF, err)
	}

	return frame.FromDense(counts.RowLabels(), counts.ColLabels(), mat.DenseCopyOf(weighted.T()))
}

// inverseCorpusFrequency returns log((1+N)/(1+df)) per column, df being the
// number of documents with a non-zero count.
func inverseCorpusFrequency(counts *frame.Matrix) []float64 {
	n := float64(counts.Rows())
	icf := make([]float64, counts.Cols())
	for j := range icf {
		var df float64
		for i := 0; i < counts.Rows(); i++ {
			if counts.At(i, j) > 0 {
				df++
			}
		}
		icf[j] = math.Log((1 + n) / (1 + df))
	}

	return icf
}

// dficfMatrix multiplies raw counts by the inverse corpus frequency.
func dficfMatrix(counts *frame.Matrix) *frame.Matrix {
	icf := inverseCorpusFrequency(counts)

	return counts.Clone().Apply(func(_, j int, v float64) float64 { return v * icf[j] })
}

// mtfidfMatrix normalizes each row by its maximum count before applying the
// inverse corpus frequency. Rows with an all-zero count stay zero.
func mtfidfMatrix(counts *frame.Matrix) *frame.Matrix {
	icf := inverseCorpusFrequency(counts)
	rowMax := make([]float64, counts.Rows())
	for i := range rowMax {
		for j := 0; j < counts.Cols(); j++ {
			rowMax[i] = math.Max(rowMax[i], counts.At(i, j))
		}
	}

	return counts.Clone().Apply(func(i, j int, v float64) float64 {
		if rowMax[i] == 0 {
			return 0
		}

		return v / rowMax[i] * icf[j]
	})
}
