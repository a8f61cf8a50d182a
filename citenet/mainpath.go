package citenet

import (
	"sort"

	"gonum.org/v1/gonum/graph/topo"
)

// MainPath returns the longest chain of the citation network after
// condensing cycles: each strongly connected component collapses to one
// node represented by its lexicographically smallest label, and the
// longest path through the resulting DAG is returned in citing-to-cited
// order.
func MainPath(n *Network) ([]string, error) {
	if n == nil || n.Graph == nil || n.Graph.NodeCount() == 0 {
		return nil, ErrEmptyNetwork
	}

	dg, idLabels := n.Graph.ToGonumDirected()
	sccs := topo.TarjanSCC(dg)

	// Component id per node; Tarjan emits components in reverse
	// topological order, so successors always precede predecessors.
	compOf := make(map[int64]int)
	reps := make([]string, len(sccs))
	for ci, comp := range sccs {
		var members []string
		for _, node := range comp {
			compOf[node.ID()] = ci
			members = append(members, idLabels[node.ID()])
		}
		sort.Strings(members)
		reps[ci] = members[0]
	}

	// Condensation edges.
	succ := make([]map[int]bool, len(sccs))
	for i := range succ {
		succ[i] = make(map[int]bool)
	}
	index := make(map[string]int64, n.Graph.NodeCount())
	for id, l := range idLabels {
		index[l] = id
	}
	for _, e := range n.Graph.Edges() {
		cu := compOf[index[e.U]]
		cv := compOf[index[e.V]]
		if cu != cv {
			succ[cu][cv] = true
		}
	}

	// Longest path DP over the reverse topological emission order.
	length := make([]int, len(sccs))
	next := make([]int, len(sccs))
	for ci := range sccs {
		length[ci] = 1
		next[ci] = -1
		// Deterministic tie-break on the successor component order.
		var successors []int
		for cv := range succ[ci] {
			successors = append(successors, cv)
		}
		sort.Ints(successors)
		for _, cv := range successors {
			if 1+length[cv] > length[ci] {
				length[ci] = 1 + length[cv]
				next[ci] = cv
			}
		}
	}

	start := 0
	for ci := range length {
		if length[ci] > length[start] ||
			(length[ci] == length[start] && reps[ci] < reps[start]) {
			start = ci
		}
	}

	var path []string
	for ci := start; ci >= 0; ci = next[ci] {
		path = append(path, reps[ci])
	}

	return path, nil
}
