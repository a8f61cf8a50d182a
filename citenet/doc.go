// Package citenet builds document-level citation networks from a
// corpus and derives the main citation path and the historiograph.
//
// What
//
// Build matches each reference string of every document against the
// corpus titles, first by exact normalized equality and then by fuzzy
// local alignment, producing a directed graph with edges from citing to
// cited documents plus a per-document report of unmatched references.
// MainPath condenses citation cycles and returns the longest chain
// through the condensation. Historiograph links documents by the likely
// title segment of their references and carries year and citation
// attributes for chronological drawing.
//
// Determinism
//
// Exact matches prefer the first title in corpus order; fuzzy matches
// keep the first best score. Identical corpora produce identical
// networks.
//
// Errors
//
// Sentinel errors (ErrNilCorpus, ErrEmptyNetwork) are matched with
// errors.Is.
package citenet
