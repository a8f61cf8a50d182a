// Package bibgroup builds binary document×group membership matrices and
// runs corpus analyses per group.
//
// A membership matrix has one row per document (corpus order, optionally
// year-filtered) and one column per group; a cell is 1 when the document
// belongs to the group. Builders cover the usual group sources: a scalar
// column (FromField), a delimited multi-item column (FromItems), a map of
// regular expressions over a text column (FromRegex), publication-year
// periods (FromPeriods) and a caller-supplied matrix (FromMatrix).
//
// On top of a membership matrix the package computes the unique group
// intersections (Intersections), group×group binary similarity matrices
// (Similarity) and per-group corpus subsets for repeating any analysis
// across groups (Subset, ForEachGroup, CountAcrossGroups). Per-group
// orchestration is best effort: a failing group is reported and skipped,
// never aborting the batch.
package bibgroup
