package bibgroup

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/scimetry/bibnet/corpus"
	"github.com/scimetry/bibnet/frame"
)

// Subset returns the documents belonging to one group, in corpus order.
// Rows of the matrix that name no corpus document are ignored.
func Subset(c *corpus.Corpus, m *frame.Matrix, group string) (*corpus.Corpus, error) {
	if c == nil {
		return nil, ErrNilCorpus
	}
	if m == nil {
		return nil, ErrNilMatrix
	}
	j := m.ColIndex(group)
	if j < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, group)
	}

	var docs []corpus.Document
	for i := 0; i < c.Len(); i++ {
		d := c.Doc(i)
		row := m.RowIndex(d.ID)
		if row >= 0 && m.At(row, j) != 0 {
			docs = append(docs, d)
		}
	}

	return corpus.New(docs)
}

// ForEachGroup runs fn on the member subset of every group, in column
// order. A failing group is logged and recorded by name; the remaining
// groups still run.
func ForEachGroup(c *corpus.Corpus, m *frame.Matrix, fn func(group string, sub *corpus.Corpus) error, opts ...Option) (map[string]error, error) {
	if c == nil {
		return nil, ErrNilCorpus
	}
	if m == nil {
		return nil, ErrNilMatrix
	}
	if m.Cols() == 0 {
		return nil, ErrNoGroups
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	failures := make(map[string]error)
	for _, group := range m.ColLabels() {
		sub, err := Subset(c, m, group)
		if err == nil {
			err = fn(group, sub)
		}
		if err != nil {
			cfg.logger.Warn("group analysis failed, skipping",
				zap.String("group", group), zap.Error(err))
			failures[group] = err
		}
	}

	return failures, nil
}

// Merge modes for CountAcrossGroups.
const (
	// MergeAllItems keeps every item occurring in any group.
	MergeAllItems = "all_items"

	// MergeSharedItems keeps only items occurring in every group.
	MergeSharedItems = "shared_items"
)

// CountAcrossGroups tallies the document frequency of a list-valued
// field per group and merges the tallies into one items×groups matrix.
// Rows are ordered by descending total, ties by item. Groups whose count
// fails are skipped and reported in the failure map.
func CountAcrossGroups(c *corpus.Corpus, m *frame.Matrix, field corpus.Field, merge string, opts ...Option) (*frame.Matrix, map[string]error, error) {
	if merge != MergeAllItems && merge != MergeSharedItems {
		return nil, nil, fmt.Errorf("%w: merge mode %q", ErrUnknownMethod, merge)
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	perGroup := make(map[string]map[string]int)
	var counted []string
	failures, err := ForEachGroup(c, m, func(group string, sub *corpus.Corpus) error {
		counts, err := sub.CountItems(field, cfg.separator)
		if err != nil {
			return err
		}
		tally := make(map[string]int, len(counts))
		for _, ic := range counts {
			tally[ic.Item] = ic.Documents
		}
		perGroup[group] = tally
		counted = append(counted, group)

		return nil
	}, opts...)
	if err != nil {
		return nil, nil, err
	}
	if len(counted) == 0 {
		return nil, failures, ErrNoGroups
	}

	// Merge item vocabularies.
	itemSet := make(map[string]int) // item → number of groups containing it
	for _, group := range counted {
		for item := range perGroup[group] {
			itemSet[item]++
		}
	}
	total := make(map[string]int)
	var items []string
	for item, n := range itemSet {
		if merge == MergeSharedItems && n < len(counted) {
			continue
		}
		items = append(items, item)
		for _, group := range counted {
			total[item] += perGroup[group][item]
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if total[items[i]] != total[items[j]] {
			return total[items[i]] > total[items[j]]
		}

		return items[i] < items[j]
	})

	merged, err := frame.New(items, counted)
	if err != nil {
		return nil, nil, err
	}
	for i, item := range items {
		for j, group := range counted {
			merged.Set(i, j, float64(perGroup[group][item]))
		}
	}

	return merged, failures, nil
}
