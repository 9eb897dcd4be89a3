package writer

import "github.com/colinmarc/ccf/format"

// ColumnSchema declares one output column. When Infer is true, Type is
// ignored and the column's type is chosen from its values by the infer
// package (spec §4.1); this is how Writer.Write behaves when the caller
// has no explicit schema for a column.
type ColumnSchema struct {
	Name  string
	Type  format.Type
	Infer bool
}

// Schema is the ordered list of columns a Writer produces (spec §4.4).
type Schema []ColumnSchema

// Inferred returns a Schema with one column per entry of names, in
// order, each with its type inferred from its values.
func Inferred(names []string) Schema {
	schema := make(Schema, len(names))
	for i, name := range names {
		schema[i] = ColumnSchema{Name: name, Infer: true}
	}

	return schema
}
