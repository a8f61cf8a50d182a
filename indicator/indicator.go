package indicator

import (
	"math"
	"strings"

	"github.com/scimetry/bibnet/corpus"
	"github.com/scimetry/bibnet/frame"
)

// Result carries the outputs of one Match call. Matrix fields are nil when
// not applicable to the chosen ValueType or when WithoutIndicators was set.
type Result struct {
	// Vocabulary is the item list actually matched, in input order.
	Vocabulary []string

	// MatchIndices maps each vocabulary item to the corpus positions of
	// the documents containing it, ascending.
	MatchIndices map[string][]int

	// Binary is the documents×items {0,1} indicator matrix (NaN on rows
	// with a missing source value unless WithMissingAsZero).
	Binary *frame.Matrix

	// Fractional is the 1/k-weighted matrix (ValueList only).
	Fractional *frame.Matrix

	// Counts is the raw substring-count matrix (ValueText only).
	Counts *frame.Matrix

	// Weighted is the re-weighted count matrix per WithTextNorm
	// (ValueText only, nil for NormNone).
	Weighted *frame.Matrix

	// Norm records which re-weighting produced Weighted.
	Norm TextNorm
}

// Match scans one corpus field for the vocabulary items and builds the
// indicator matrices described in the package documentation.
//
// An empty vocabulary is not an error: the result carries empty matrices
// with the document rows intact and zero columns.
func Match(c *corpus.Corpus, field corpus.Field, vocabulary []string, opts ...Option) (*Result, error) {
	if c == nil {
		return nil, ErrNilCorpus
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	values, err := c.Values(field)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Vocabulary:   append([]string(nil), vocabulary...),
		MatchIndices: matchIndices(values, vocabulary, o),
	}
	if !o.indicators {
		return res, nil
	}

	ids := c.IDs()
	if res.Binary, err = binaryMatrix(ids, values, res, o); err != nil {
		return nil, err
	}

	switch o.valueType {
	case ValueList:
		if res.Fractional, err = fractionalMatrix(ids, values, vocabulary, o); err != nil {
			return nil, err
		}
	case ValueText:
		if res.Counts, err = countMatrix(ids, values, vocabulary); err != nil {
			return nil, err
		}
		if o.textNorm != NormNone {
			if res.Weighted, err = reweight(res.Counts, o.textNorm); err != nil {
				return nil, err
			}
			res.Norm = o.textNorm
		}
	}

	return res, nil
}

// matchIndices records, per item, the positions of documents containing it.
func matchIndices(values, vocabulary []string, o options) map[string][]int {
	indices := make(map[string][]int, len(vocabulary))
	for _, item := range vocabulary {
		indices[item] = nil
	}
	for pos, val := range values {
		if val == "" { // missing value: no matches recorded
			continue
		}
		switch o.valueType {
		case ValueString:
			if _, ok := indices[val]; ok {
				indices[val] = append(indices[val], pos)
			}
		case ValueList:
			for _, part := range corpus.SplitList(val, o.separator) {
				if _, ok := indices[part]; ok {
					indices[part] = append(indices[part], pos)
				}
			}
		case ValueText:
			lower := strings.ToLower(val)
			for _, item := range vocabulary {
				if strings.Contains(lower, strings.ToLower(item)) {
					indices[item] = append(indices[item], pos)
				}
			}
		}
	}
	// List mode may record a position twice when the same token repeats;
	// collapse to distinct positions.
	for item, pos := range indices {
		indices[item] = dedupeSorted(pos)
	}

	return indices
}

// dedupeSorted removes adjacent duplicates from an ascending position list.
func dedupeSorted(pos []int) []int {
	if len(pos) < 2 {
		return pos
	}
	out := pos[:1]
	for _, p := range pos[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}

	return out
}

// binaryMatrix builds the {0,1} indicator frame, honoring the missing-value
// policy.
func binaryMatrix(ids, values []string, res *Result, o options) (*frame.Matrix, error) {
	m, err := frame.New(ids, res.Vocabulary)
	if err != nil {
		return nil, err
	}
	for j, item := range res.Vocabulary {
		for _, pos := range res.MatchIndices[item] {
			m.Set(pos, j, 1)
		}
	}
	if !o.missingAsZero {
		for i, val := range values {
			if val != "" {
				continue
			}
			for j := range res.Vocabulary {
				m.Set(i, j, math.NaN())
			}
		}
	}

	return m, nil
}

// fractionalMatrix weights each matched item by 1/k, k being the number of
// list tokens in the document (matched or not), so a fully-covered document
// contributes total weight 1.
func fractionalMatrix(ids, values, vocabulary []string, o options) (*frame.Matrix, error) {
	m, err := frame.New(ids, vocabulary)
	if err != nil {
		return nil, err
	}
	for i, val := range values {
		if val == "" {
			continue
		}
		parts := corpus.SplitList(val, o.separator)
		if len(parts) == 0 {
			continue
		}
		w := 1.0 / float64(len(parts))
		for _, p := range parts {
			if j := m.ColIndex(p); j >= 0 {
				m.Set(i, j, m.At(i, j)+w)
			}
		}
	}

	return m, nil
}

// countMatrix tallies case-insensitive substring occurrences per document.
func countMatrix(ids, values, vocabulary []string) (*frame.Matrix, error) {
	m, err := frame.New(ids, vocabulary)
	if err != nil {
		return nil, err
	}
	for i, val := range values {
		if val == "" {
			continue
		}
		lower := strings.ToLower(val)
		for j, item := range vocabulary {
			m.Set(i, j, float64(strings.Count(lower, strings.ToLower(item))))
		}
	}

	return m, nil
}
