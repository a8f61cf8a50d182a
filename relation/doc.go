// Package relation derives item×item relation matrices from document×item
// indicator matrices: the raw co-occurrence product R = Aᵀ·B plus a family
// of normalized and statistical association measures.
//
// What
//
//   - Compute: raw relation, optional TF-IDF pre-weighting, optional PMI
//     (self-relations only), and — under WithNormalization — association
//     strength, inclusion, Salton cosine, Jaccard, equivalence, Yule's Q
//     and two-sided Fisher exact p-values, each guarded independently so a
//     degenerate input never aborts the batch (failed measures are
//     reported in Result.Skipped).
//   - A stacked long-format measures table (count, row/column conditional
//     proportions and every computed normalization) in both orientations,
//     for exploratory ranking.
//   - ChiSquare: independence-model expectations, standardized residuals,
//     the aggregate statistic and degrees of freedom.
//   - LogRatio: log((observed+ε)/(expected+ε)) against the independence
//     expectation.
//
// Invariants
//
//   - For binary indicators, cell (i,j) of the raw relation counts the
//     documents containing both items; a self-relation is symmetric with
//     item document frequencies on the diagonal.
//   - Jaccard, Salton, association, inclusion and equivalence lie in
//     [0,1] for binary inputs; Yule's Q lies in [-1,1].
//
// Cost: Fisher's exact test is O(rows·cols) exact tests and is the one
// genuinely expensive measure; it is size-gated by WithFisherLimit and
// skipped (with ErrFisherGated recorded) above the gate.
//
// Graph construction from a relation matrix lives in package netgraph
// (netgraph.FromRelation).
package relation
