package corpus

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Corpus is an ordered, immutable set of Documents with unique IDs.
type Corpus struct {
	docs  []Document
	index map[string]int // ID → position
}

// New validates and wraps a document slice. Documents are copied; order is
// preserved. Returns ErrEmptyID or ErrDuplicateID on identifier violations.
func New(docs []Document) (*Corpus, error) {
	index := make(map[string]int, len(docs))
	for i, d := range docs {
		if d.ID == "" {
			return nil, fmt.Errorf("%w: position %d", ErrEmptyID, i)
		}
		if _, dup := index[d.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, d.ID)
		}
		index[d.ID] = i
	}

	return &Corpus{docs: append([]Document(nil), docs...), index: index}, nil
}

// Len returns the number of documents.
func (c *Corpus) Len() int { return len(c.docs) }

// Doc returns the document at position i.
func (c *Corpus) Doc(i int) Document { return c.docs[i] }

// ByID returns the document with the given identifier.
func (c *Corpus) ByID(id string) (Document, error) {
	i, ok := c.index[id]
	if !ok {
		return Document{}, fmt.Errorf("%w: %q", ErrUnknownDocument, id)
	}

	return c.docs[i], nil
}

// IDs returns document identifiers in corpus order.
func (c *Corpus) IDs() []string {
	ids := make([]string, len(c.docs))
	for i, d := range c.docs {
		ids[i] = d.ID
	}

	return ids
}

// Values returns the raw string value of field for every document, in
// corpus order. Missing values are empty strings.
func (c *Corpus) Values(field Field) ([]string, error) {
	out := make([]string, len(c.docs))
	for i, d := range c.docs {
		switch field {
		case FieldTitle:
			out[i] = d.Title
		case FieldAbstract:
			out[i] = d.Abstract
		case FieldAuthorKeywords:
			out[i] = d.AuthorKeywords
		case FieldIndexKeywords:
			out[i] = d.IndexKeywords
		case FieldAuthors:
			out[i] = d.Authors
		case FieldAffiliations:
			out[i] = d.Affiliations
		case FieldCountries:
			out[i] = d.Countries
		case FieldReferences:
			out[i] = d.References
		case FieldShortLabel:
			out[i] = d.ShortLabel
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
	}

	return out, nil
}

// SplitList splits a delimited list value into trimmed, non-empty tokens.
// An empty (missing) value yields nil.
func SplitList(value, separator string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, separator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}

	return out
}

// CountItems tallies the document frequency of every distinct item in a
// list-valued field: each document contributes at most one count per item.
// Results are sorted by descending frequency, ties broken lexicographically.
func (c *Corpus) CountItems(field Field, separator string) ([]ItemCount, error) {
	values, err := c.Values(field)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, v := range values {
		seen := make(map[string]struct{})
		for _, item := range SplitList(v, separator) {
			if _, dup := seen[item]; dup {
				continue
			}
			seen[item] = struct{}{}
			counts[item]++
		}
	}
	out := make([]ItemCount, 0, len(counts))
	for item, n := range counts {
		out = append(out, ItemCount{Item: item, Documents: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Documents != out[j].Documents {
			return out[i].Documents > out[j].Documents
		}

		return out[i].Item < out[j].Item
	})

	return out, nil
}

// TopItems selects a vocabulary from frequency-sorted counts.
//
// When includePattern or excludePattern is non-nil, regexp filtering alone
// decides membership (topN is ignored, matching the source behavior).
// Otherwise the topN most frequent items are kept, extended past topN while
// frequencies remain tied with the cut-off item.
func TopItems(counts []ItemCount, topN int, includePattern, excludePattern *regexp.Regexp) []string {
	filtered := make([]ItemCount, 0, len(counts))
	for _, ic := range counts {
		if includePattern != nil && !includePattern.MatchString(ic.Item) {
			continue
		}
		if excludePattern != nil && excludePattern.MatchString(ic.Item) {
			continue
		}
		filtered = append(filtered, ic)
	}

	if includePattern != nil || excludePattern != nil || topN <= 0 || len(filtered) <= topN {
		items := make([]string, len(filtered))
		for i, ic := range filtered {
			items[i] = ic.Item
		}

		return items
	}

	// Keep ties with the topN-th frequency.
	cutoff := filtered[topN-1].Documents
	items := make([]string, 0, topN)
	for _, ic := range filtered {
		if ic.Documents < cutoff {
			break
		}
		items = append(items, ic.Item)
	}

	return items
}
