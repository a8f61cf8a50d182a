package relation

import "errors"

// Defaults for the relation engine.
const (
	// DefaultEpsilon guards denominators and logarithms.
	DefaultEpsilon = 1e-9

	// DefaultLogRatioEpsilon is the additive smoothing used by LogRatio.
	DefaultLogRatioEpsilon = 1e-6

	// DefaultFisherLimit caps the relation size (rows·cols) for which
	// Fisher exact p-values are computed: above limit² cells the measure
	// is skipped with ErrFisherGated.
	DefaultFisherLimit = 512
)

// Sentinel errors for the relation engine.
var (
	// ErrNilInput indicates a nil indicator matrix.
	ErrNilInput = errors.New("relation: nil indicator matrix")

	// ErrDocMismatch indicates the two indicator matrices disagree on
	// their document rows.
	ErrDocMismatch = errors.New("relation: document rows differ between matrices")

	// ErrPMICross indicates PMI was requested for a cross-relation; PMI
	// is only defined for self co-occurrence.
	ErrPMICross = errors.New("relation: pmi requires a self co-occurrence matrix")

	// ErrFisherGated indicates the Fisher exact measure was skipped
	// because the relation exceeds the configured size gate.
	ErrFisherGated = errors.New("relation: fisher exact skipped by size gate")

	// ErrDegenerate indicates an all-zero matrix where totals are needed.
	ErrDegenerate = errors.New("relation: degenerate (all-zero) matrix")
)

// Option configures Compute.
type Option func(*options)

type options struct {
	eps         float64
	tfidf       bool
	pmi         bool
	normalize   bool
	fisherLimit int
}

func defaultComputeOptions() options {
	return options{eps: DefaultEpsilon, fisherLimit: DefaultFisherLimit}
}

// WithEpsilon overrides the denominator/log guard (must be > 0 to have an
// effect; non-positive values are ignored).
func WithEpsilon(eps float64) Option {
	return func(o *options) {
		if eps > 0 {
			o.eps = eps
		}
	}
}

// WithTFIDF applies TF-IDF weighting to the indicator matrices before the
// relation product.
func WithTFIDF() Option {
	return func(o *options) { o.tfidf = true }
}

// WithPMI replaces the raw relation with clipped pointwise mutual
// information (self co-occurrence only).
func WithPMI() Option {
	return func(o *options) { o.pmi = true }
}

// WithNormalization computes the full set of association measures.
func WithNormalization() Option {
	return func(o *options) { o.normalize = true }
}

// WithFisherLimit sets the side length of the Fisher exact size gate:
// the measure runs only when rows·cols ≤ limit². Zero disables Fisher
// entirely; negative values restore the default.
func WithFisherLimit(limit int) Option {
	return func(o *options) {
		if limit >= 0 {
			o.fisherLimit = limit
		}
	}
}
