package codec

import (
	"bytes"
	"fmt"
	"io"

	kzlib "github.com/klauspost/compress/zlib"

	"github.com/colinmarc/ccf/errs"
)

// ZlibCodec implements Codec using the standard zlib wrapper around
// deflate, via klauspost/compress's drop-in replacement for the standard
// library's compress/zlib (faster compression, identical wire format).
type ZlibCodec struct {
	allocationCeiling int
}

var _ Codec = (*ZlibCodec)(nil)

// NewZlibCodec creates a zlib codec that refuses to allocate more than
// allocationCeiling bytes during Decompress.
func NewZlibCodec(allocationCeiling int) *ZlibCodec {
	return &ZlibCodec{allocationCeiling: allocationCeiling}
}

// Compress zlib-compresses data at the library's default compression
// level.
func (c *ZlibCodec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	w := kzlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("codec: zlib compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("codec: zlib compress: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress zlib-decompresses data. expectedSize, taken from the
// column's uncompressed_size header field, is checked against the
// codec's allocation ceiling before any output buffer is allocated, and
// used to pre-size that buffer.
func (c *ZlibCodec) Decompress(data []byte, expectedSize int) ([]byte, error) {
	if expectedSize < 0 {
		return nil, fmt.Errorf("codec: negative expected size %d: %w", expectedSize, errs.ErrInvalidEncoding)
	}
	if c.allocationCeiling > 0 && expectedSize > c.allocationCeiling {
		return nil, fmt.Errorf("codec: uncompressed size %d exceeds ceiling %d: %w", expectedSize, c.allocationCeiling, errs.ErrOversizeAllocation)
	}

	r, err := kzlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("codec: zlib decompress: %w", errs.ErrDecompression)
	}
	defer r.Close()

	out := make([]byte, 0, expectedSize)
	buf := bytes.NewBuffer(out)
	if _, err := io.Copy(buf, r); err != nil {
		return nil, fmt.Errorf("codec: zlib decompress: %w", errs.ErrDecompression)
	}

	return buf.Bytes(), nil
}
