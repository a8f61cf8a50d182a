package netgraph

import "errors"

// Sentinel errors for graph construction, attributes and export.
var (
	// ErrNilRelation indicates FromRelation received a nil matrix.
	ErrNilRelation = errors.New("netgraph: nil relation matrix")

	// ErrEmptyGraph indicates an operation that needs at least one node.
	ErrEmptyGraph = errors.New("netgraph: empty graph")

	// ErrUnknownNode indicates a label not present in the graph.
	ErrUnknownNode = errors.New("netgraph: unknown node")

	// ErrUnknownPartition indicates a partition name never set.
	ErrUnknownPartition = errors.New("netgraph: unknown partition")

	// ErrUnknownVector indicates a vector attribute never attached.
	ErrUnknownVector = errors.New("netgraph: unknown vector attribute")

	// ErrDirected indicates an operation defined only for undirected
	// graphs was called on a directed one.
	ErrDirected = errors.New("netgraph: operation requires an undirected graph")
)
