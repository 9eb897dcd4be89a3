// Package codec provides the compression primitive used to turn an
// encoded column buffer into its on-disk compressed block and back.
//
// CCF fixes its wire format to a single deflate-family codec with the
// standard zlib wrapper (spec §2, §9): substituting another codec changes
// the format and must bump the file VERSION. The Compressor/Decompressor
// split mirrors the codec abstraction used for mebo's timestamp/value
// payloads, trimmed to the one implementation CCF's format actually
// allows.
package codec

// Compressor compresses a column's uncompressed buffer.
type Compressor interface {
	// Compress compresses data and returns the compressed result.
	// The returned slice is newly allocated; the input is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a column's compressed block.
type Decompressor interface {
	// Decompress decompresses data and returns the original bytes.
	// expectedSize is the uncompressed_size recorded in the header
	// directory; implementations use it to pre-size the output buffer
	// and must reject sizes above the configured allocation ceiling
	// before allocating (spec §5, OversizeAllocation).
	Decompress(data []byte, expectedSize int) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// New returns the codec used by every CCF column block: deflate with the
// zlib wrapper.
func New() Codec {
	return NewZlibCodec(DefaultAllocationCeiling)
}

// DefaultAllocationCeiling is the default maximum uncompressed_size a
// Decompress call will allocate for, per spec §5's decompression-bomb
// guidance. Callers needing a different ceiling construct a codec
// directly with NewZlibCodec.
const DefaultAllocationCeiling = 256 * 1024 * 1024 // 256MiB
