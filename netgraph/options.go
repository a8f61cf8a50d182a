package netgraph

// Defaults for network construction.
const (
	// DefaultMinWeight keeps every non-zero relation cell.
	DefaultMinWeight = 0.0
)

// Option configures FromRelation.
type Option func(*options)

type options struct {
	minWeight        float64
	largestComponent bool
}

func defaultBuildOptions() options {
	return options{minWeight: DefaultMinWeight}
}

// WithMinWeight drops relation cells at or below the threshold. The
// default keeps every positive cell.
func WithMinWeight(w float64) Option {
	return func(o *options) { o.minWeight = w }
}

// WithLargestComponent reduces the built graph to its largest (weakly)
// connected component.
func WithLargestComponent() Option {
	return func(o *options) { o.largestComponent = true }
}
