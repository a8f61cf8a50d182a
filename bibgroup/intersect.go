package bibgroup

import (
	"sort"
	"strings"

	"github.com/scimetry/bibnet/frame"
)

// Intersection is one unique membership pattern of a group matrix.
type Intersection struct {
	// Groups are the member groups of the pattern, in column order.
	Groups []string

	// Size is the number of documents with exactly this membership.
	Size int

	// IDs lists the member documents in row order.
	IDs []string
}

// Intersections enumerates the unique non-empty membership patterns of a
// group matrix, largest first; ties break on the joined group names.
// Documents belonging to no group are skipped.
func Intersections(m *frame.Matrix) ([]Intersection, error) {
	if m == nil {
		return nil, ErrNilMatrix
	}
	if m.Cols() == 0 {
		return nil, ErrNoGroups
	}

	groups := m.ColLabels()
	byKey := make(map[string]*Intersection)
	var order []string
	for i, id := range m.RowLabels() {
		var member []string
		for j, g := range groups {
			if m.At(i, j) != 0 {
				member = append(member, g)
			}
		}
		if len(member) == 0 {
			continue
		}
		key := strings.Join(member, "\x00")
		entry, ok := byKey[key]
		if !ok {
			entry = &Intersection{Groups: member}
			byKey[key] = entry
			order = append(order, key)
		}
		entry.Size++
		entry.IDs = append(entry.IDs, id)
	}

	out := make([]Intersection, 0, len(order))
	for _, key := range order {
		out = append(out, *byKey[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Size != out[j].Size {
			return out[i].Size > out[j].Size
		}

		return strings.Join(out[i].Groups, "\x00") < strings.Join(out[j].Groups, "\x00")
	})

	return out, nil
}
