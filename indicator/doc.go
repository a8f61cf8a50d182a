// Package indicator builds document×item indicator matrices from a corpus
// field and a target vocabulary: the leaf stage every relation matrix,
// graph and group analysis is derived from.
//
// What
//
//   - Match: item → matched document positions, plus (on request) a binary
//     indicator matrix; for list-valued fields also a fractional (1/k)
//     matrix; for free-text fields a substring-count matrix and one of
//     three re-weightings (TF-IDF, df-icf, mtf-idf).
//   - Three matching modes (ValueType): exact scalar, delimited list,
//     case-insensitive substring over free text.
//
// Invariants
//
//   - Binary column sums equal single-item document frequencies.
//   - Fractional row sums equal 1.0 for any document whose items all fall
//     inside the vocabulary, 0.0 for documents with no match.
//   - An empty vocabulary yields empty matrices with the document rows
//     intact and zero columns.
//
// Missing values: a document with a missing (empty) field value gets NaN
// indicator cells so downstream denominators can exclude it; enable
// WithMissingAsZero to encode missing as 0 instead.
//
// Complexity: O(docs·items) for scalar/list matching, O(docs·items·len)
// for substring matching.
package indicator
