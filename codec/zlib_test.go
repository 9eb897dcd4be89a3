package codec

import (
	"bytes"
	"errors"
	"testing"

	"github.com/colinmarc/ccf/errs"
)

func TestZlibRoundTrip(t *testing.T) {
	c := NewZlibCodec(DefaultAllocationCeiling)

	want := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog "), 100)

	compressed, err := c.Compress(want)
	if err != nil {
		t.Fatalf("Compress() error = %v", err)
	}
	if len(compressed) >= len(want) {
		t.Fatalf("compressed size %d should be smaller than input %d", len(compressed), len(want))
	}

	got, err := c.Decompress(compressed, len(want))
	if err != nil {
		t.Fatalf("Decompress() error = %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("Decompress() = %q, want %q", got, want)
	}
}

func TestZlibRoundTripEmpty(t *testing.T) {
	c := NewZlibCodec(DefaultAllocationCeiling)

	compressed, err := c.Compress(nil)
	if err != nil {
		t.Fatalf("Compress() error = %v", err)
	}

	got, err := c.Decompress(compressed, 0)
	if err != nil {
		t.Fatalf("Decompress() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Decompress() = %v, want empty", got)
	}
}

func TestZlibDecompressCorrupted(t *testing.T) {
	c := NewZlibCodec(DefaultAllocationCeiling)

	_, err := c.Decompress([]byte("not zlib data"), 16)
	if !errors.Is(err, errs.ErrDecompression) {
		t.Fatalf("Decompress() error = %v, want ErrDecompression", err)
	}
}

func TestZlibDecompressOversizeAllocation(t *testing.T) {
	c := NewZlibCodec(16)

	compressed, err := c.Compress(bytes.Repeat([]byte("x"), 1000))
	if err != nil {
		t.Fatalf("Compress() error = %v", err)
	}

	_, err = c.Decompress(compressed, 1000)
	if !errors.Is(err, errs.ErrOversizeAllocation) {
		t.Fatalf("Decompress() error = %v, want ErrOversizeAllocation", err)
	}
}

func TestNewDefaultCodec(t *testing.T) {
	c := New()
	if c == nil {
		t.Fatal("New() returned nil")
	}
}
