package bibgroup

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/scimetry/bibnet/corpus"
	"github.com/scimetry/bibnet/frame"
)

// FromField builds membership from a scalar column: every distinct
// non-empty value becomes a group. Columns are sorted by value.
func FromField(c *corpus.Corpus, field corpus.Field, opts ...Option) (*frame.Matrix, error) {
	if c == nil {
		return nil, ErrNilCorpus
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	values, err := c.Values(field)
	if err != nil {
		return nil, fmt.Errorf("bibgroup: %w", err)
	}
	positions, ids := selectDocs(c, cfg)

	seen := make(map[string]bool)
	var groups []string
	for _, p := range positions {
		if v := strings.TrimSpace(values[p]); v != "" && !seen[v] {
			seen[v] = true
			groups = append(groups, v)
		}
	}
	sort.Strings(groups)

	m, err := frame.New(ids, groups)
	if err != nil {
		return nil, err
	}
	for i, p := range positions {
		if v := strings.TrimSpace(values[p]); v != "" {
			m.Set(i, m.ColIndex(v), 1)
		}
	}

	return finalize(m, cfg), nil
}

// FromItems builds membership from a delimited multi-item column: every
// distinct item becomes a group. Columns are ordered by descending
// document frequency, ties by item. WithTopN, WithInclude and
// WithExclude narrow the group set, in that order.
func FromItems(c *corpus.Corpus, field corpus.Field, opts ...Option) (*frame.Matrix, error) {
	if c == nil {
		return nil, ErrNilCorpus
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	values, err := c.Values(field)
	if err != nil {
		return nil, fmt.Errorf("bibgroup: %w", err)
	}
	positions, ids := selectDocs(c, cfg)

	counts := make(map[string]int)
	members := make([]map[string]bool, len(positions))
	for i, p := range positions {
		set := make(map[string]bool)
		for _, item := range corpus.SplitList(values[p], cfg.separator) {
			if !set[item] {
				set[item] = true
				counts[item]++
			}
		}
		members[i] = set
	}

	groups := make([]string, 0, len(counts))
	for item := range counts {
		groups = append(groups, item)
	}
	sort.Slice(groups, func(i, j int) bool {
		if counts[groups[i]] != counts[groups[j]] {
			return counts[groups[i]] > counts[groups[j]]
		}

		return groups[i] < groups[j]
	})
	if cfg.topN > 0 && cfg.topN < len(groups) {
		groups = groups[:cfg.topN]
	}
	if cfg.include != nil {
		keep := make(map[string]bool, len(cfg.include))
		for _, item := range cfg.include {
			keep[item] = true
		}
		groups = filterGroups(groups, func(g string) bool { return keep[g] })
	}
	if cfg.exclude != nil {
		drop := make(map[string]bool, len(cfg.exclude))
		for _, item := range cfg.exclude {
			drop[item] = true
		}
		groups = filterGroups(groups, func(g string) bool { return !drop[g] })
	}

	m, err := frame.New(ids, groups)
	if err != nil {
		return nil, err
	}
	for i := range positions {
		for j, g := range groups {
			if members[i][g] {
				m.Set(i, j, 1)
			}
		}
	}

	return finalize(m, cfg), nil
}

// FromRegex builds membership from a map of group name to regular
// expression, matched case-insensitively against a text column. Columns
// are sorted by group name.
func FromRegex(c *corpus.Corpus, field corpus.Field, patterns map[string]string, opts ...Option) (*frame.Matrix, error) {
	if c == nil {
		return nil, ErrNilCorpus
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	values, err := c.Values(field)
	if err != nil {
		return nil, fmt.Errorf("bibgroup: %w", err)
	}
	positions, ids := selectDocs(c, cfg)

	groups := make([]string, 0, len(patterns))
	for g := range patterns {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	compiled := make([]*regexp.Regexp, len(groups))
	for j, g := range groups {
		re, err := regexp.Compile("(?i)" + patterns[g])
		if err != nil {
			return nil, fmt.Errorf("%w: group %q: %v", ErrBadPattern, g, err)
		}
		compiled[j] = re
	}

	m, err := frame.New(ids, groups)
	if err != nil {
		return nil, err
	}
	for i, p := range positions {
		for j, re := range compiled {
			if re.MatchString(values[p]) {
				m.Set(i, j, 1)
			}
		}
	}

	return finalize(m, cfg), nil
}

// FromPeriods builds membership from publication years binned into
// periods, defined either by interior cutpoints (a cutpoint starts a new
// period) or by an equal division of the observed year span. Documents
// without a year get no membership.
func FromPeriods(c *corpus.Corpus, opts ...Option) (*frame.Matrix, error) {
	if c == nil {
		return nil, ErrNilCorpus
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if len(cfg.cutpoints) == 0 && cfg.nPeriods == 0 {
		return nil, fmt.Errorf("%w: need cutpoints or a period count", ErrBadPeriods)
	}
	positions, ids := selectDocs(c, cfg)

	minY, maxY := 0, 0
	for _, p := range positions {
		y := c.Doc(p).Year
		if y == 0 {
			continue
		}
		if minY == 0 || y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	if minY == 0 {
		return nil, fmt.Errorf("%w: no dated documents", ErrBadPeriods)
	}

	// Half-open period bounds [b_i, b_{i+1}).
	var bounds []int
	if len(cfg.cutpoints) > 0 {
		cuts := append([]int(nil), cfg.cutpoints...)
		sort.Ints(cuts)
		bounds = append(bounds, minY)
		for _, y := range cuts {
			if y > minY && y <= maxY {
				bounds = append(bounds, y)
			}
		}
		bounds = append(bounds, maxY+1)
	} else {
		span := maxY + 1 - minY
		for i := 0; i <= cfg.nPeriods; i++ {
			bounds = append(bounds, minY+i*span/cfg.nPeriods)
		}
	}

	periods := len(bounds) - 1
	labels := cfg.periodLabels
	if labels == nil {
		labels = make([]string, periods)
		for i := range labels {
			lo, hi := bounds[i], bounds[i+1]-1
			if lo == hi {
				labels[i] = fmt.Sprintf("%d", lo)
			} else {
				labels[i] = fmt.Sprintf("%d-%d", lo, hi)
			}
		}
	} else if len(labels) != periods {
		return nil, fmt.Errorf("%w: %d labels for %d periods", ErrBadPeriods, len(labels), periods)
	}

	m, err := frame.New(ids, labels)
	if err != nil {
		return nil, err
	}
	for i, p := range positions {
		y := c.Doc(p).Year
		if y == 0 {
			continue
		}
		for j := 0; j < periods; j++ {
			if y >= bounds[j] && y < bounds[j+1] {
				m.Set(i, j, 1)
				break
			}
		}
	}

	return finalize(m, cfg), nil
}

// FromMatrix aligns a caller-supplied membership matrix to the corpus:
// rows reorder to corpus document order, documents absent from the input
// get zero membership, and non-zero cells coerce to 1.
func FromMatrix(c *corpus.Corpus, m *frame.Matrix, opts ...Option) (*frame.Matrix, error) {
	if c == nil {
		return nil, ErrNilCorpus
	}
	if m == nil {
		return nil, ErrNilMatrix
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	_, ids := selectDocs(c, cfg)

	aligned, err := frame.New(ids, m.ColLabels())
	if err != nil {
		return nil, err
	}
	for i, id := range ids {
		src := m.RowIndex(id)
		if src < 0 {
			continue
		}
		for j := 0; j < m.Cols(); j++ {
			if m.At(src, j) != 0 {
				aligned.Set(i, j, 1)
			}
		}
	}

	return finalize(aligned, cfg), nil
}

// Resolve picks the membership matrix for a per-group pipeline: a scalar
// grouping field or a prebuilt matrix, never both. Supplying both fails
// with ErrConflicting, neither with ErrNoGrouping.
func Resolve(c *corpus.Corpus, field corpus.Field, m *frame.Matrix, opts ...Option) (*frame.Matrix, error) {
	switch {
	case field != "" && m != nil:
		return nil, ErrConflicting
	case field != "":
		return FromField(c, field, opts...)
	case m != nil:
		return FromMatrix(c, m, opts...)
	default:
		return nil, ErrNoGrouping
	}
}

// selectDocs applies the year filter and returns corpus positions with
// their document ids.
func selectDocs(c *corpus.Corpus, cfg config) ([]int, []string) {
	var positions []int
	var ids []string
	for i := 0; i < c.Len(); i++ {
		d := c.Doc(i)
		if cfg.yearLo != 0 || cfg.yearHi != 0 {
			if d.Year < cfg.yearLo || d.Year > cfg.yearHi {
				continue
			}
		}
		positions = append(positions, i)
		ids = append(ids, d.ID)
	}

	return positions, ids
}

func filterGroups(groups []string, keep func(string) bool) []string {
	out := groups[:0]
	for _, g := range groups {
		if keep(g) {
			out = append(out, g)
		}
	}

	return out
}

// finalize applies membership inversion.
func finalize(m *frame.Matrix, cfg config) *frame.Matrix {
	if !cfg.invert {
		return m
	}
	m.Apply(func(i, j int, v float64) float64 {
		if v == 0 {
			return 1
		}

		return 0
	})

	return m
}
