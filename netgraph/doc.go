// Package netgraph turns relation matrices into weighted networks and
// carries them to the analysis and export layers.
//
// What
//
// A Graph is a labeled, weighted graph (directed or undirected) with two
// typed attribute overlays per node: numeric vectors (frequencies,
// centralities, years) and integer partitions (community assignments).
// FromRelation builds a Graph from an items×items relation matrix:
// square matrices with matching axes become undirected co-occurrence
// networks, anything else becomes a directed bipartite network. Diagonal
// cells are marginal frequencies, not edges, and are always dropped.
//
// Exports cover the Pajek triple (.net plus one .clu per partition and
// one .vec per vector), GraphML and GEXF. ToGonum/ToGonumDirected bridge
// into gonum graph types for centralities and community detection, with
// an id→label mapping back.
//
// Determinism
//
// Node order follows the relation's label order; neighbor iteration is
// by ascending node index. Identical inputs produce byte-identical
// exports.
//
// Errors
//
// All failures are reported via sentinel errors (ErrEmptyGraph,
// ErrUnknownNode, ErrUnknownPartition, ErrUnknownVector, ErrDirected)
// matched with errors.Is.
package netgraph
