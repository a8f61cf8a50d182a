// Package corpus defines the document record set consumed by every bibnet
// builder: one Document per scholarly item, addressed by a unique, stable
// identifier, with delimited-list fields (keywords, authors, references)
// kept in their raw string form and split on demand.
//
// Upstream ingestion and text normalization are external collaborators;
// corpus only splits, trims and counts what it is handed.
//
// Invariant: document identifiers are unique across a Corpus and are the
// node labels of every derived citation structure.
package corpus
