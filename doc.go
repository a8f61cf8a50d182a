// Package bibnet is a bibliometric analysis toolkit: it turns a corpus
// of scholarly documents into indicator matrices, co-occurrence relation
// matrices, weighted graphs with community partitions, statistical
// summaries and citation structures.
//
// 🚀 What is bibnet?
//
//	A pipeline of small packages, each one stage of the analysis:
//		• corpus/    — the document table: fields, list splitting, item counts
//		• frame/     — labeled dense matrices shared by every stage
//		• indicator/ — document×item indicator matrices (binary, fractional, text)
//		• relation/  — item×item co-occurrence + association measures
//		• netgraph/  — weighted graphs, node/cluster statistics, Pajek/GraphML/GEXF
//		• community/ — eleven community detection algorithms, one interface
//		• relstats/  — diversity, bipartite, clustering, biclustering, CA, SVD
//		• citenet/   — citation networks, main path, historiograph
//		• bibgroup/  — group membership matrices and per-group orchestration
//
// ✨ Design notes
//
//   - Deterministic – randomized algorithms take explicit seeds; the same
//     seed always yields the same partition
//   - Best effort – batch operations capture per-unit failures and return
//     partial results instead of aborting
//   - Labeled throughout – every matrix and graph speaks document ids and
//     item strings, never bare indices
//
// The cmd/bibnet command wires the stages into a CSV-in, network-out CLI.
package bibnet
