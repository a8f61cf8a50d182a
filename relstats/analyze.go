package relstats

import (
	"fmt"

	"github.com/scimetry/bibnet/frame"
	"github.com/scimetry/bibnet/relation"
)

// Analysis names accepted by Analyze.
const (
	AnalysisDiversity      = "diversity"
	AnalysisDiversityCols  = "diversity_cols"
	AnalysisBipartite      = "bipartite"
	AnalysisKMeans         = "kmeans"
	AnalysisHierarchical   = "hierarchical"
	AnalysisSpectral       = "spectral"
	AnalysisBicluster      = "bicluster"
	AnalysisCorrespondence = "correspondence"
	AnalysisSVD            = "svd"
	AnalysisChiSquare      = "chi_square"
	AnalysisResiduals      = "residuals"
	AnalysisLogRatios      = "log_ratios"
)

// AllAnalyses lists every analysis Analyze can run, in run order.
func AllAnalyses() []string {
	return []string{
		AnalysisDiversity, AnalysisDiversityCols, AnalysisBipartite,
		AnalysisKMeans, AnalysisHierarchical, AnalysisSpectral,
		AnalysisBicluster, AnalysisCorrespondence, AnalysisSVD,
		AnalysisChiSquare, AnalysisResiduals, AnalysisLogRatios,
	}
}

// Result aggregates the outputs of one Analyze run. Fields for analyses
// that were not requested, or that failed, stay nil; failures are keyed
// by analysis name in Errors.
type Result struct {
	Diversity      []DiversityRow
	DiversityCols  []DiversityRow
	Bipartite      *BipartiteResult
	KMeans         *ClusterResult
	Hierarchical   *ClusterResult
	Spectral       *ClusterResult
	Bicluster      *BiclusterResult
	Correspondence *CAResult
	SVD            *SVDResult
	ChiSquare      *relation.ChiSquareResult
	Residuals      []RankedCell
	LogRatios      []RankedCell

	Errors map[string]error
}

// Analyze cleans the matrix margins and runs the requested analyses
// (all of them when include is empty), capturing per-analysis failures
// instead of aborting the batch.
func Analyze(m *frame.Matrix, include []string, opts ...Option) (*Result, error) {
	cleaned, err := CleanZeroMargins(m)
	if err != nil {
		return nil, err
	}

	if len(include) == 0 {
		include = AllAnalyses()
	}
	res := &Result{Errors: make(map[string]error)}

	for _, name := range include {
		switch name {
		case AnalysisDiversity:
			res.Diversity, err = Diversity(cleaned)
		case AnalysisDiversityCols:
			res.DiversityCols, err = Diversity(cleaned.Transpose())
		case AnalysisBipartite:
			res.Bipartite, err = Bipartite(cleaned)
		case AnalysisKMeans:
			res.KMeans, err = KMeans(cleaned, opts...)
		case AnalysisHierarchical:
			res.Hierarchical, err = Hierarchical(cleaned, opts...)
		case AnalysisSpectral:
			res.Spectral, err = Spectral(cleaned, opts...)
		case AnalysisBicluster:
			res.Bicluster, err = Bicluster(cleaned, opts...)
		case AnalysisCorrespondence:
			res.Correspondence, err = Correspondence(cleaned, opts...)
		case AnalysisSVD:
			res.SVD, err = SVDStats(cleaned)
		case AnalysisChiSquare:
			res.ChiSquare, err = relation.ChiSquare(cleaned)
		case AnalysisResiduals:
			res.Residuals, err = SortedResiduals(cleaned)
		case AnalysisLogRatios:
			res.LogRatios, err = SortedLogRatios(cleaned, 0)
		default:
			err = fmt.Errorf("%w: %q", ErrUnknownAnalysis, name)
		}
		if err != nil {
			res.Errors[name] = err
			err = nil
		}
	}

	return res, nil
}
