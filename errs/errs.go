// Package errs defines the sentinel errors surfaced by codec, column,
// writer, and reader. Every exported error below corresponds to one of
// the nine error kinds: callers match against these with errors.Is, and
// call sites wrap them with fmt.Errorf("...: %w", errs.ErrX) to add
// positional context.
package errs

import "errors"

var (
	// ErrBadMagic is returned when a file's first 7 bytes do not match
	// format.Magic.
	ErrBadMagic = errors.New("ccf: bad magic")

	// ErrUnsupportedVersion is returned when the VERSION byte is not 1.
	ErrUnsupportedVersion = errors.New("ccf: unsupported version")

	// ErrTruncatedFile is returned when a read runs past EOF.
	ErrTruncatedFile = errors.New("ccf: truncated file")

	// ErrUnknownColumn is returned by Reader.ReadColumn when no header
	// entry matches the requested name.
	ErrUnknownColumn = errors.New("ccf: unknown column")

	// ErrUnknownType is returned when a dtype byte falls outside {0,1,2}.
	ErrUnknownType = errors.New("ccf: unknown column type")

	// ErrDecompression is returned when the codec rejects a compressed
	// block.
	ErrDecompression = errors.New("ccf: decompression failed")

	// ErrInvalidEncoding is returned when a decoded column block is
	// malformed: non-monotonic string offsets, invalid UTF-8, or an
	// offsets[R] that exceeds the payload length.
	ErrInvalidEncoding = errors.New("ccf: invalid column encoding")

	// ErrOversizeAllocation is returned when a header's uncompressed_size
	// exceeds the configured allocation ceiling.
	ErrOversizeAllocation = errors.New("ccf: oversize allocation")

	// ErrSchemaMismatch is returned by the writer when a schema entry's
	// type is unsupported, a value overflows its declared type, or a
	// duplicate column name is rejected.
	ErrSchemaMismatch = errors.New("ccf: schema mismatch")
)

// SchemaError wraps ErrSchemaMismatch with the offending column's name
// and the reason it was rejected, so callers can report precisely what failed without
// string-parsing the error message.
type SchemaError struct {
	Column string
	Reason string
}

func (e *SchemaError) Error() string {
	return "ccf: schema mismatch: column " + e.Column + ": " + e.Reason
}

func (e *SchemaError) Unwrap() error {
	return ErrSchemaMismatch
}

// NewSchemaError constructs a SchemaError for the given column.
func NewSchemaError(column, reason string) error {
	return &SchemaError{Column: column, Reason: reason}
}

// ColumnError wraps ErrUnknownColumn with the requested name.
type ColumnError struct {
	Name string
}

func (e *ColumnError) Error() string {
	return "ccf: unknown column: " + e.Name
}

func (e *ColumnError) Unwrap() error {
	return ErrUnknownColumn
}

// NewUnknownColumnError constructs a ColumnError for the given name.
func NewUnknownColumnError(name string) error {
	return &ColumnError{Name: name}
}
