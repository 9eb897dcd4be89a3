package column

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/colinmarc/ccf/endian"
	"github.com/colinmarc/ccf/errs"
	"github.com/colinmarc/ccf/format"
)

// Decode parses a decompressed column block into rowCount cells (spec
// §4.3). It is the inverse of Encode.
func Decode(typ format.Type, buf []byte, rowCount int) ([]Cell, error) {
	engine := endian.Engine()

	if len(buf) < 4 {
		return nil, fmt.Errorf("column: decode: buffer too short for bitmap length: %w", errs.ErrTruncatedFile)
	}
	nbLen := int(engine.Uint32(buf[0:4]))

	if nbLen != bitmapLen(rowCount) {
		return nil, fmt.Errorf("column: decode: bitmap length %d does not match row count %d: %w", nbLen, rowCount, errs.ErrInvalidEncoding)
	}
	if len(buf) < 4+nbLen {
		return nil, fmt.Errorf("column: decode: buffer too short for bitmap: %w", errs.ErrTruncatedFile)
	}
	bitmap := buf[4 : 4+nbLen]
	payload := buf[4+nbLen:]

	switch typ {
	case format.Int32:
		return decodeInt32Payload(engine, payload, bitmap, rowCount)
	case format.Float64:
		return decodeFloat64Payload(engine, payload, bitmap, rowCount)
	case format.String:
		return decodeStringPayload(engine, payload, bitmap, rowCount)
	default:
		return nil, fmt.Errorf("column: decode: type code %d: %w", typ, errs.ErrUnknownType)
	}
}

func decodeInt32Payload(engine endian.EndianEngine, payload, bitmap []byte, rowCount int) ([]Cell, error) {
	if len(payload) < 4*rowCount {
		return nil, fmt.Errorf("column: decode: int32 payload too short: %w", errs.ErrTruncatedFile)
	}

	cells := make([]Cell, rowCount)
	for i := range rowCount {
		if isNull(bitmap, i) {
			cells[i] = NullCell(format.Int32)
			continue
		}

		v := engine.Uint32(payload[4*i : 4*i+4])
		cells[i] = Cell{Type: format.Int32, Int32: int32(v)} //nolint:gosec
	}

	return cells, nil
}

func decodeFloat64Payload(engine endian.EndianEngine, payload, bitmap []byte, rowCount int) ([]Cell, error) {
	if len(payload) < 8*rowCount {
		return nil, fmt.Errorf("column: decode: float64 payload too short: %w", errs.ErrTruncatedFile)
	}

	cells := make([]Cell, rowCount)
	for i := range rowCount {
		if isNull(bitmap, i) {
			cells[i] = NullCell(format.Float64)
			continue
		}

		bits := engine.Uint64(payload[8*i : 8*i+8])
		cells[i] = Cell{Type: format.Float64, Float64: math.Float64frombits(bits)}
	}

	return cells, nil
}

func decodeStringPayload(engine endian.EndianEngine, payload, bitmap []byte, rowCount int) ([]Cell, error) {
	offsetsBytes := 4 * (rowCount + 1)
	if len(payload) < offsetsBytes {
		return nil, fmt.Errorf("column: decode: string offsets truncated: %w", errs.ErrTruncatedFile)
	}

	offsets := make([]uint32, rowCount+1)
	for i := range offsets {
		offsets[i] = engine.Uint32(payload[4*i : 4*i+4])
	}
	if offsets[0] != 0 {
		return nil, fmt.Errorf("column: decode: string offsets[0] = %d, want 0: %w", offsets[0], errs.ErrInvalidEncoding)
	}
	for i := 1; i <= rowCount; i++ {
		if offsets[i] < offsets[i-1] {
			return nil, fmt.Errorf("column: decode: non-monotonic string offsets at row %d: %w", i-1, errs.ErrInvalidEncoding)
		}
	}

	strBytes := payload[offsetsBytes:]
	if int(offsets[rowCount]) > len(strBytes) {
		return nil, fmt.Errorf("column: decode: string payload length %d exceeds available %d bytes: %w", offsets[rowCount], len(strBytes), errs.ErrInvalidEncoding)
	}

	cells := make([]Cell, rowCount)
	for i := range rowCount {
		if isNull(bitmap, i) {
			cells[i] = NullCell(format.String)
			continue
		}

		slice := strBytes[offsets[i]:offsets[i+1]]
		if !utf8.Valid(slice) {
			return nil, fmt.Errorf("column: decode: row %d: invalid UTF-8: %w", i, errs.ErrInvalidEncoding)
		}

		cells[i] = Cell{Type: format.String, String: string(slice)}
	}

	return cells, nil
}
