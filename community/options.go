package community

import "errors"

// Defaults shared by the detectors.
const (
	// DefaultSeed seeds every randomized detector.
	DefaultSeed int64 = 42

	// DefaultResolution is the modularity resolution parameter.
	DefaultResolution = 1.0

	// DefaultK is the clique size for k-clique percolation.
	DefaultK = 3

	// DefaultWalkSteps is the random-walk length for walktrap.
	DefaultWalkSteps = 4

	// DefaultMaxIter bounds the sweep count of iterative detectors.
	DefaultMaxIter = 100

	// DefaultSpins is the spin count for spinglass annealing.
	DefaultSpins = 25

	// DefaultStartTemp and DefaultCooling drive the annealing schedule.
	DefaultStartTemp = 1.0
	DefaultCooling   = 0.99
)

// Sentinel errors for the detectors.
var (
	// ErrEmptyGraph indicates detection on a graph without nodes.
	ErrEmptyGraph = errors.New("community: empty graph")

	// ErrBadK indicates a clique size below 2.
	ErrBadK = errors.New("community: clique size must be at least 2")

	// ErrTooSmall indicates the graph has fewer nodes than the detector
	// needs (bisection needs at least two).
	ErrTooSmall = errors.New("community: graph too small for detector")

	// ErrNoEdges indicates a detector that needs edge structure got an
	// edgeless graph.
	ErrNoEdges = errors.New("community: graph has no edges")
)

// Option configures a detector.
type Option func(*config)

type config struct {
	seed       int64
	resolution float64
	k          int
	steps      int
	maxIter    int
	spins      int
	startTemp  float64
	cooling    float64
}

func defaultConfig() config {
	return config{
		seed:       DefaultSeed,
		resolution: DefaultResolution,
		k:          DefaultK,
		steps:      DefaultWalkSteps,
		maxIter:    DefaultMaxIter,
		spins:      DefaultSpins,
		startTemp:  DefaultStartTemp,
		cooling:    DefaultCooling,
	}
}

// WithSeed fixes the random source of a detector.
func WithSeed(seed int64) Option {
	return func(c *config) { c.seed = seed }
}

// WithResolution tunes the modularity resolution of Louvain and Leiden.
func WithResolution(r float64) Option {
	return func(c *config) {
		if r > 0 {
			c.resolution = r
		}
	}
}

// WithK sets the clique size for k-clique percolation.
func WithK(k int) Option {
	return func(c *config) { c.k = k }
}

// WithWalkSteps sets the walk length for walktrap.
func WithWalkSteps(t int) Option {
	return func(c *config) {
		if t > 0 {
			c.steps = t
		}
	}
}

// WithMaxIter bounds the sweeps of iterative detectors.
func WithMaxIter(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxIter = n
		}
	}
}

// WithSpins sets the spin count for spinglass.
func WithSpins(q int) Option {
	return func(c *config) {
		if q > 1 {
			c.spins = q
		}
	}
}

// WithSchedule sets the annealing start temperature and cooling factor
// for spinglass.
func WithSchedule(start, cooling float64) Option {
	return func(c *config) {
		if start > 0 {
			c.startTemp = start
		}
		if cooling > 0 && cooling < 1 {
			c.cooling = cooling
		}
	}
}
