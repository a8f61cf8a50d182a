package relstats

import "errors"

// Defaults for the analysis suite.
const (
	// DefaultSeed seeds k-means and spectral clustering.
	DefaultSeed int64 = 42

	// DefaultMinK and DefaultMaxK bound the silhouette search for the
	// cluster count.
	DefaultMinK = 2
	DefaultMaxK = 10

	// DefaultKMeansIter bounds Lloyd iterations per restart.
	DefaultKMeansIter = 100

	// DefaultCADimensions is the number of correspondence dimensions
	// kept.
	DefaultCADimensions = 2
)

// Sentinel errors for the analysis suite.
var (
	// ErrNilMatrix indicates a nil input matrix.
	ErrNilMatrix = errors.New("relstats: nil matrix")

	// ErrDegenerate indicates an all-zero or empty matrix.
	ErrDegenerate = errors.New("relstats: degenerate matrix")

	// ErrBadK indicates an unusable cluster count.
	ErrBadK = errors.New("relstats: bad cluster count")

	// ErrTooFewRows indicates fewer rows than clusters.
	ErrTooFewRows = errors.New("relstats: too few rows for requested clusters")

	// ErrUnknownAnalysis indicates an Analyze include name that does not
	// exist.
	ErrUnknownAnalysis = errors.New("relstats: unknown analysis")
)

// Option configures the analyses.
type Option func(*config)

type config struct {
	seed        int64
	k           int // 0 means silhouette auto-selection
	minK        int
	maxK        int
	iter        int
	caDims      int
	linkage     Linkage
	standardize bool
	eps         float64
}

// Linkage names a hierarchical merge criterion.
type Linkage string

// Supported linkages.
const (
	LinkageWard     Linkage = "ward"
	LinkageAverage  Linkage = "average"
	LinkageComplete Linkage = "complete"
	LinkageSingle   Linkage = "single"
)

func defaultAnalysisConfig() config {
	return config{
		seed:    DefaultSeed,
		minK:    DefaultMinK,
		maxK:    DefaultMaxK,
		iter:    DefaultKMeansIter,
		caDims:  DefaultCADimensions,
		linkage: LinkageWard,
		eps:     1e-9,
	}
}

// WithSeed fixes the random source.
func WithSeed(seed int64) Option {
	return func(c *config) { c.seed = seed }
}

// WithK fixes the cluster count; zero restores silhouette
// auto-selection.
func WithK(k int) Option {
	return func(c *config) {
		if k >= 0 {
			c.k = k
		}
	}
}

// WithKRange bounds the silhouette search.
func WithKRange(min, max int) Option {
	return func(c *config) {
		if min >= 2 && max >= min {
			c.minK, c.maxK = min, max
		}
	}
}

// WithCADimensions sets the number of correspondence dimensions kept.
func WithCADimensions(d int) Option {
	return func(c *config) {
		if d > 0 {
			c.caDims = d
		}
	}
}

// WithLinkage selects the hierarchical merge criterion.
func WithLinkage(l Linkage) Option {
	return func(c *config) { c.linkage = l }
}

// WithStandardize z-scores the columns before distance-based clustering,
// so no single high-variance column dominates.
func WithStandardize() Option {
	return func(c *config) { c.standardize = true }
}
