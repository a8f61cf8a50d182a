// Package relstats analyzes relation and contingency matrices beyond
// the association measures: margin cleaning, diversity profiles,
// bipartite network statistics, row clustering, spectral biclustering,
// correspondence analysis and residual rankings.
//
// Analyze orchestrates any subset of the suite over one matrix,
// capturing per-analysis failures without aborting the batch.
//
// Determinism
//
// Every randomized step (k-means seeding, spectral clustering) takes an
// explicit seed, DefaultSeed when unset. Same matrix and seed, same
// output.
//
// Errors
//
// Sentinel errors (ErrNilMatrix, ErrDegenerate, ErrBadK, ErrTooFewRows,
// ErrUnknownAnalysis) are matched with errors.Is. Analyze never fails
// as a whole; per-analysis failures land in Result.Errors.
package relstats
