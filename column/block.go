package column

import (
	"fmt"

	"github.com/colinmarc/ccf/codec"
	"github.com/colinmarc/ccf/format"
)

// Block is a self-contained compressed column block, ready to be appended
// to a CCF file at its assigned offset.
type Block struct {
	Compressed       []byte
	CompressedSize   int
	UncompressedSize int
}

// EncodeBlock encodes values under typ (spec §4.2) and compresses the
// result with c, returning a Block sized and ready for the writer's
// two-pass header layout.
func EncodeBlock(c codec.Compressor, typ format.Type, values []string, allowIntTruncation bool) (Block, error) {
	uncompressed, err := Encode(typ, values, allowIntTruncation)
	if err != nil {
		return Block{}, err
	}

	compressed, err := c.Compress(uncompressed)
	if err != nil {
		return Block{}, fmt.Errorf("column: compress block: %w", err)
	}

	return Block{
		Compressed:       compressed,
		CompressedSize:   len(compressed),
		UncompressedSize: len(uncompressed),
	}, nil
}

// DecodeBlock decompresses a column's compressed bytes and decodes it
// into rowCount cells (spec §4.3).
func DecodeBlock(c codec.Decompressor, typ format.Type, compressed []byte, rowCount, uncompressedSize int) ([]Cell, error) {
	uncompressed, err := c.Decompress(compressed, uncompressedSize)
	if err != nil {
		return nil, err
	}

	if len(uncompressed) != uncompressedSize {
		return nil, fmt.Errorf("column: decompressed size %d does not match header uncompressed_size %d", len(uncompressed), uncompressedSize)
	}

	return Decode(typ, uncompressed, rowCount)
}
