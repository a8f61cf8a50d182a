package corpus

import "errors"

// Default delimiters for list-valued fields (Scopus/WoS export convention).
const (
	// DefaultListSeparator separates keywords, authors and affiliations.
	DefaultListSeparator = "; "

	// DefaultReferenceSeparator separates entries of a reference list.
	DefaultReferenceSeparator = ";"
)

// Sentinel errors for corpus construction and field access.
var (
	// ErrDuplicateID indicates two documents share an identifier.
	ErrDuplicateID = errors.New("corpus: duplicate document id")

	// ErrEmptyID indicates a document with an empty identifier.
	ErrEmptyID = errors.New("corpus: empty document id")

	// ErrUnknownField indicates a Field value Values does not recognize.
	ErrUnknownField = errors.New("corpus: unknown field")

	// ErrUnknownDocument indicates a lookup of a non-existent document id.
	ErrUnknownDocument = errors.New("corpus: document not found")
)

// Field names a Document column for value extraction.
type Field string

// Fields addressable through (*Corpus).Values.
const (
	FieldTitle          Field = "title"
	FieldAbstract       Field = "abstract"
	FieldAuthorKeywords Field = "author_keywords"
	FieldIndexKeywords  Field = "index_keywords"
	FieldAuthors        Field = "authors"
	FieldAffiliations   Field = "affiliations"
	FieldCountries      Field = "countries"
	FieldReferences     Field = "references"
	FieldShortLabel     Field = "short_label"
)

// Document is one scholarly item. List-valued fields keep the raw delimited
// string ("" means missing); split them with SplitList at the call site so
// each caller controls the separator.
type Document struct {
	// ID uniquely identifies the document within its Corpus.
	ID string

	// Title is the document title (raw, as ingested).
	Title string

	// Abstract is the free-text abstract, optionally pre-cleaned upstream.
	Abstract string

	// AuthorKeywords and IndexKeywords are "; "-delimited keyword lists.
	AuthorKeywords string
	IndexKeywords  string

	// Authors and Affiliations are "; "-delimited lists.
	Authors      string
	Affiliations string

	// Countries is a "; "-delimited country list derived upstream from
	// affiliations.
	Countries string

	// References is a ";"-delimited list of raw reference strings.
	References string

	// CitedBy is the citation count.
	CitedBy int

	// Year is the publication year (0 means unknown).
	Year int

	// ShortLabel is an optional display label (e.g. "Smith 2019").
	ShortLabel string
}

// ItemCount is one vocabulary entry with its document frequency.
type ItemCount struct {
	// Item is the atomic value (exact-string identity).
	Item string

	// Documents is the number of distinct documents containing Item.
	Documents int
}
