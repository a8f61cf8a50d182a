package bibgroup

import (
	"errors"

	"go.uber.org/zap"

	"github.com/scimetry/bibnet/corpus"
)

// Similarity method names accepted by Similarity.
const (
	MethodJaccard        = "jaccard"
	MethodCount          = "count"
	MethodSimpleMatching = "simple_matching"
	MethodSokalMichener  = "sokal_michener"
	MethodRogersTanimoto = "rogers_tanimoto"
)

// Sentinel errors for group construction and orchestration.
var (
	// ErrNilCorpus indicates a nil corpus argument.
	ErrNilCorpus = errors.New("bibgroup: nil corpus")

	// ErrNilMatrix indicates a nil membership matrix argument.
	ErrNilMatrix = errors.New("bibgroup: nil membership matrix")

	// ErrNoGroups indicates a membership matrix with no group columns.
	ErrNoGroups = errors.New("bibgroup: no groups")

	// ErrUnknownGroup indicates a group name absent from the matrix.
	ErrUnknownGroup = errors.New("bibgroup: unknown group")

	// ErrBadPattern wraps an invalid regular expression in FromRegex.
	ErrBadPattern = errors.New("bibgroup: invalid group pattern")

	// ErrBadPeriods indicates FromPeriods was called without cutpoints or
	// a period count, or with label/bin count mismatch.
	ErrBadPeriods = errors.New("bibgroup: invalid period definition")

	// ErrConflicting indicates mutually exclusive grouping inputs were
	// both supplied.
	ErrConflicting = errors.New("bibgroup: conflicting grouping inputs")

	// ErrNoGrouping indicates neither a grouping field nor a matrix was
	// supplied.
	ErrNoGrouping = errors.New("bibgroup: no grouping input")

	// ErrUnknownMethod indicates an unsupported similarity method name.
	ErrUnknownMethod = errors.New("bibgroup: unknown similarity method")
)

// Option configures the membership builders and orchestration.
type Option func(*config)

type config struct {
	separator    string
	topN         int
	include      []string
	exclude      []string
	invert       bool
	yearLo       int
	yearHi       int
	cutpoints    []int
	nPeriods     int
	periodLabels []string
	logger       *zap.Logger
}

func defaultConfig() config {
	return config{
		separator: corpus.DefaultListSeparator,
		logger:    zap.NewNop(),
	}
}

// WithSeparator sets the list separator for FromItems (default "; ").
func WithSeparator(sep string) Option {
	return func(c *config) { c.separator = sep }
}

// WithTopN keeps only the n most frequent groups in FromItems.
func WithTopN(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.topN = n
		}
	}
}

// WithInclude keeps only the named groups in FromItems.
func WithInclude(items ...string) Option {
	return func(c *config) { c.include = items }
}

// WithExclude removes the named groups in FromItems.
func WithExclude(items ...string) Option {
	return func(c *config) { c.exclude = items }
}

// WithInvert flips membership: documents outside a group become members.
func WithInvert() Option {
	return func(c *config) { c.invert = true }
}

// WithYearRange keeps only documents published in [lo, hi] before any
// matching. Documents without a year are dropped.
func WithYearRange(lo, hi int) Option {
	return func(c *config) { c.yearLo, c.yearHi = lo, hi }
}

// WithCutpoints defines year periods by their interior boundaries: a
// cutpoint y starts a new period at y.
func WithCutpoints(years ...int) Option {
	return func(c *config) { c.cutpoints = years }
}

// WithPeriods divides the observed year span into n equal periods.
func WithPeriods(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.nPeriods = n
		}
	}
}

// WithPeriodLabels overrides the generated period labels; the count must
// match the number of periods.
func WithPeriodLabels(labels ...string) Option {
	return func(c *config) { c.periodLabels = labels }
}

// WithLogger sets the logger for per-group diagnostics (default no-op).
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
