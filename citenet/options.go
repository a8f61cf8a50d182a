package citenet

import (
	"errors"

	"go.uber.org/zap"
)

// Defaults for citation matching.
const (
	// DefaultThreshold is the fuzzy match score (0..100) a reference
	// needs to link to a title.
	DefaultThreshold = 90

	// DefaultCutoff is the similarity cutoff for historiograph title
	// matching.
	DefaultCutoff = 0.85

	// DefaultSegmentIndex selects the comma-separated reference segment
	// treated as the title (authors, year, title, source is the common
	// layout, so the third segment).
	DefaultSegmentIndex = 2
)

// Sentinel errors for citation networks.
var (
	// ErrNilCorpus indicates a nil corpus.
	ErrNilCorpus = errors.New("citenet: nil corpus")

	// ErrEmptyNetwork indicates an operation on a network with no
	// nodes, such as the main path of an unlinked corpus.
	ErrEmptyNetwork = errors.New("citenet: empty network")
)

// Option configures Build and Historiograph.
type Option func(*config)

type config struct {
	threshold     int
	cutoff        float64
	segmentIndex  int
	allComponents bool
	shortLabels   bool
	longLabels    bool
	logger        *zap.Logger
}

func defaultBuildConfig() config {
	return config{
		threshold:    DefaultThreshold,
		cutoff:       DefaultCutoff,
		segmentIndex: DefaultSegmentIndex,
		logger:       zap.NewNop(),
	}
}

// WithThreshold sets the fuzzy match score (0..100) for Build.
func WithThreshold(t int) Option {
	return func(c *config) {
		if t >= 0 && t <= 100 {
			c.threshold = t
		}
	}
}

// WithCutoff sets the similarity cutoff for Historiograph.
func WithCutoff(cut float64) Option {
	return func(c *config) {
		if cut > 0 && cut <= 1 {
			c.cutoff = cut
		}
	}
}

// WithSegmentIndex picks which comma-separated reference segment
// Historiograph treats as the title.
func WithSegmentIndex(i int) Option {
	return func(c *config) {
		if i >= 0 {
			c.segmentIndex = i
		}
	}
}

// WithAllComponents keeps every weak component instead of only the
// largest.
func WithAllComponents() Option {
	return func(c *config) { c.allComponents = true }
}

// WithShortLabels relabels Build's nodes with the documents' short
// labels where present instead of their ids.
func WithShortLabels() Option {
	return func(c *config) { c.shortLabels = true }
}

// WithLongLabels relabels Build's nodes with the documents' full titles
// where present instead of their ids. Short labels win when both label
// options are set.
func WithLongLabels() Option {
	return func(c *config) { c.longLabels = true }
}

// WithLogger attaches a structured logger; matching decisions are
// logged at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
