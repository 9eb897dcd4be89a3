package column

import (
	"fmt"
	"math"
	"strconv"

	"github.com/colinmarc/ccf/endian"
	"github.com/colinmarc/ccf/errs"
	"github.com/colinmarc/ccf/format"
	"github.com/colinmarc/ccf/internal/pool"
)

// Encode builds the uncompressed column block for values under the given
// type: a u32 null-bitmap length, the bitmap itself, then the type's
// payload (spec §4.2). A value equal to the empty string is null; any
// other text is non-null.
//
// allowIntTruncation controls how an out-of-range value behaves under an
// explicit Int32 schema: by default encoding fails with
// errs.ErrSchemaMismatch (the spec's recommended reimplementation
// choice); set true only to reproduce the source implementation's
// silent-truncation behavior.
func Encode(typ format.Type, values []string, allowIntTruncation bool) ([]byte, error) {
	engine := endian.Engine()
	rowCount := len(values)
	nbLen := bitmapLen(rowCount)

	buf := pool.GetColumnBuffer()
	defer pool.PutColumnBuffer(buf)

	buf.Grow(4 + nbLen)
	lenField := make([]byte, 4)
	engine.PutUint32(lenField, uint32(nbLen)) //nolint:gosec
	buf.MustWrite(lenField)

	bitmapStart := buf.Len()
	buf.MustWrite(make([]byte, nbLen))
	bitmap := buf.Bytes()[bitmapStart : bitmapStart+nbLen]

	for i, v := range values {
		if v == "" {
			setNull(bitmap, i)
		}
	}

	switch typ {
	case format.Int32:
		if err := encodeInt32Payload(buf, engine, values, bitmap, allowIntTruncation); err != nil {
			return nil, err
		}
	case format.Float64:
		if err := encodeFloat64Payload(buf, engine, values, bitmap); err != nil {
			return nil, err
		}
	case format.String:
		encodeStringPayload(buf, engine, values, bitmap)
	default:
		return nil, fmt.Errorf("column: encode: type code %d: %w", typ, errs.ErrUnknownType)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

func encodeInt32Payload(buf *pool.ByteBuffer, engine endian.EndianEngine, values []string, bitmap []byte, allowTruncation bool) error {
	buf.Grow(4 * len(values))
	scratch := make([]byte, 4)

	for i, v := range values {
		var n int32
		if !isNull(bitmap, i) {
			parsed, err := strconv.ParseInt(v, 10, 32)
			if err != nil {
				if !allowTruncation {
					return fmt.Errorf("column: value %q does not fit in int32: %w", v, errs.ErrSchemaMismatch)
				}
				// Reproduce the source implementation's truncating parse.
				wide, werr := strconv.ParseInt(v, 10, 64)
				if werr != nil {
					return fmt.Errorf("column: value %q is not an integer: %w", v, errs.ErrSchemaMismatch)
				}
				n = int32(wide) //nolint:gosec
			} else {
				n = int32(parsed)
			}
		}

		engine.PutUint32(scratch, uint32(n)) //nolint:gosec
		buf.MustWrite(scratch)
	}

	return nil
}

func encodeFloat64Payload(buf *pool.ByteBuffer, engine endian.EndianEngine, values []string, bitmap []byte) error {
	buf.Grow(8 * len(values))
	scratch := make([]byte, 8)

	for i, v := range values {
		var f float64
		if !isNull(bitmap, i) {
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("column: value %q does not fit in float64: %w", v, errs.ErrSchemaMismatch)
			}
			f = parsed
		}

		engine.PutUint64(scratch, math.Float64bits(f))
		buf.MustWrite(scratch)
	}

	return nil
}

func encodeStringPayload(buf *pool.ByteBuffer, engine endian.EndianEngine, values []string, bitmap []byte) {
	rowCount := len(values)
	offsets := make([]uint32, rowCount+1)

	totalBytes := 0
	for i, v := range values {
		if !isNull(bitmap, i) {
			totalBytes += len(v)
		}
		offsets[i+1] = offsets[i]
		if !isNull(bitmap, i) {
			offsets[i+1] += uint32(len(v)) //nolint:gosec
		}
	}

	buf.Grow(4*(rowCount+1) + totalBytes)
	scratch := make([]byte, 4)
	for _, off := range offsets {
		engine.PutUint32(scratch, off)
		buf.MustWrite(scratch)
	}

	for i, v := range values {
		if !isNull(bitmap, i) {
			buf.MustWrite([]byte(v))
		}
	}
}
