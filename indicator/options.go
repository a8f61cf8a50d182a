package indicator

import (
	"errors"

	"github.com/scimetry/bibnet/corpus"
)

// ValueType selects the matching mode for a corpus field.
type ValueType string

const (
	// ValueString matches the whole field value against the vocabulary.
	ValueString ValueType = "string"

	// ValueList splits the field on the separator and matches trimmed
	// tokens exactly.
	ValueList ValueType = "list"

	// ValueText matches vocabulary items as case-insensitive substrings.
	ValueText ValueType = "text"
)

// TextNorm selects the re-weighting applied to the text-mode count matrix.
type TextNorm string

const (
	// NormNone keeps raw substring counts.
	NormNone TextNorm = ""

	// NormTFIDF applies a standard inverse-document-frequency transform.
	NormTFIDF TextNorm = "tfidf"

	// NormDFICF multiplies counts by log((1+N)/(1+df)) per item.
	NormDFICF TextNorm = "df-icf"

	// NormMTFIDF row-normalizes counts by the row maximum, then applies
	// the same inverse-document-frequency factor as NormDFICF.
	NormMTFIDF TextNorm = "mtf-idf"
)

// Sentinel errors for the indicator builder.
var (
	// ErrBadValueType indicates an unknown ValueType.
	ErrBadValueType = errors.New("indicator: invalid value type")

	// ErrBadTextNorm indicates an unknown TextNorm.
	ErrBadTextNorm = errors.New("indicator: invalid text normalization")

	// ErrNilCorpus indicates a nil corpus argument.
	ErrNilCorpus = errors.New("indicator: nil corpus")

	// ErrTFIDF wraps a failure inside the TF-IDF transformer.
	ErrTFIDF = errors.New("indicator: tfidf transform failed")
)

// Option configures Match.
type Option func(*options)

type options struct {
	valueType     ValueType
	separator     string
	missingAsZero bool
	indicators    bool
	textNorm      TextNorm
}

func defaultOptions() options {
	return options{
		valueType:  ValueString,
		separator:  corpus.DefaultListSeparator,
		indicators: true,
		textNorm:   NormNone,
	}
}

// WithValueType sets the matching mode (default ValueString).
func WithValueType(vt ValueType) Option {
	return func(o *options) { o.valueType = vt }
}

// WithSeparator sets the list separator (default "; ").
func WithSeparator(sep string) Option {
	return func(o *options) { o.separator = sep }
}

// WithMissingAsZero encodes missing field values as 0 instead of NaN in
// indicator matrices.
func WithMissingAsZero() Option {
	return func(o *options) { o.missingAsZero = true }
}

// WithoutIndicators skips matrix construction, returning match indices only.
func WithoutIndicators() Option {
	return func(o *options) { o.indicators = false }
}

// WithTextNorm selects the text-mode re-weighting (default none).
func WithTextNorm(n TextNorm) Option {
	return func(o *options) { o.textNorm = n }
}

func (o options) validate() error {
	switch o.valueType {
	case ValueString, ValueList, ValueText:
	default:
		return ErrBadValueType
	}
	switch o.textNorm {
	case NormNone, NormTFIDF, NormDFICF, NormMTFIDF:
	default:
		return ErrBadTextNorm
	}

	return nil
}
