// Package community detects communities in item networks.
//
// What
//
// A Detector turns a netgraph.Graph into a partition (node label →
// community id). Eleven detectors are provided: Louvain, greedy
// modularity (CNM), label propagation, Girvan–Newman, k-clique
// percolation, Kernighan–Lin bisection, walktrap, infomap, leading
// eigenvector, Leiden and spinglass annealing. DetectAll runs a batch,
// stores each successful partition on the graph under the detector's
// name and records per-detector failures without aborting the batch.
//
// Determinism
//
// Every randomized detector takes an explicit seed (DefaultSeed when
// unset). The same graph and seed produce the same partition; community
// ids are renumbered to 0..k−1 in order of first appearance over the
// graph's node order.
//
// Errors
//
// Detectors report failures via sentinel errors (ErrEmptyGraph,
// ErrBadK, ErrTooSmall) matched with errors.Is. DetectAll never fails
// as a whole; inspect Result.Err per detector.
package community
