package bibgroup

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/scimetry/bibnet/frame"
)

// Similarity computes one group×group similarity matrix per requested
// method over a binary membership matrix. Supported methods: jaccard,
// count (shared documents), simple_matching, sokal_michener (an alias of
// simple matching) and rogers_tanimoto. Unsupported names are skipped
// and reported in the second return value; the batch never aborts.
func Similarity(m *frame.Matrix, methods []string, opts ...Option) (map[string]*frame.Matrix, map[string]error) {
	skipped := make(map[string]error)
	if m == nil {
		skipped[""] = ErrNilMatrix

		return nil, skipped
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if len(methods) == 0 {
		methods = []string{MethodJaccard}
	}

	groups := m.ColLabels()
	n := m.Rows()

	// Pairwise binary agreement counts per group pair.
	both := func(a, b int) (shared, either, agree int) {
		for i := 0; i < n; i++ {
			x, y := m.At(i, a) != 0, m.At(i, b) != 0
			if x && y {
				shared++
			}
			if x || y {
				either++
			}
			if x == y {
				agree++
			}
		}

		return shared, either, agree
	}

	out := make(map[string]*frame.Matrix)
	for _, method := range methods {
		var cell func(a, b int) float64
		switch method {
		case MethodJaccard:
			cell = func(a, b int) float64 {
				shared, either, _ := both(a, b)
				if either == 0 {
					return 0
				}

				return float64(shared) / float64(either)
			}
		case MethodCount:
			cell = func(a, b int) float64 {
				shared, _, _ := both(a, b)

				return float64(shared)
			}
		case MethodSimpleMatching, MethodSokalMichener:
			cell = func(a, b int) float64 {
				if n == 0 {
					return 0
				}
				_, _, agree := both(a, b)

				return float64(agree) / float64(n)
			}
		case MethodRogersTanimoto:
			cell = func(a, b int) float64 {
				_, _, agree := both(a, b)
				disagree := n - agree
				if agree+2*disagree == 0 {
					return 0
				}

				return float64(agree) / float64(agree+2*disagree)
			}
		default:
			cfg.logger.Warn("unsupported similarity method, skipping",
				zap.String("method", method))
			skipped[method] = fmt.Errorf("%w: %q", ErrUnknownMethod, method)
			continue
		}

		sim, err := frame.New(groups, groups)
		if err != nil {
			skipped[method] = err
			continue
		}
		for a := range groups {
			for b := a; b < len(groups); b++ {
				v := cell(a, b)
				sim.Set(a, b, v)
				sim.Set(b, a, v)
			}
		}
		out[method] = sim
	}

	return out, skipped
}
