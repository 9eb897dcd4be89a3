// Package column implements the column block encoder and decoder: the
// null bitmap plus typed payload layout described in spec §4.2/§4.3, and
// the zlib compression wrapper around it.
package column

import (
	"strconv"

	"github.com/colinmarc/ccf/format"
)

// Cell is one decoded row slot for a column: either null, or exactly one
// of the three typed scalars, selected by Type.
type Cell struct {
	Null bool

	Type    format.Type
	Int32   int32
	Float64 float64
	String  string
}

// NullCell returns a null cell of the given type.
func NullCell(t format.Type) Cell {
	return Cell{Null: true, Type: t}
}

// Render renders a cell back to its text form for the row-oriented
// reader interface (spec §4.5): nulls render as the empty string, Int32
// via canonical base-10, Float64 via the shortest round-trippable decimal
// form.
func (c Cell) Render() string {
	if c.Null {
		return ""
	}

	switch c.Type {
	case format.Int32:
		return strconv.FormatInt(int64(c.Int32), 10)
	case format.Float64:
		return strconv.FormatFloat(c.Float64, 'g', -1, 64)
	case format.String:
		return c.String
	default:
		return ""
	}
}
