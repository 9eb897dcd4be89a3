package pool

import "testing"

func TestByteBufferGrow(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.Grow(100)
	if cap(bb.B) < 100 {
		t.Fatalf("cap = %d, want >= 100", cap(bb.B))
	}
}

func TestByteBufferMustWrite(t *testing.T) {
	bb := NewByteBuffer(0)
	bb.Grow(3)
	bb.MustWrite([]byte{1, 2, 3})

	if got := bb.Bytes(); len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("Bytes() = %v, want [1 2 3]", got)
	}
	if bb.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", bb.Len())
	}
}

func TestByteBufferReset(t *testing.T) {
	bb := NewByteBuffer(0)
	bb.Grow(3)
	bb.MustWrite([]byte{1, 2, 3})
	before := cap(bb.B)

	bb.Reset()

	if bb.Len() != 0 {
		t.Fatalf("Len() after Reset = %d, want 0", bb.Len())
	}
	if cap(bb.B) != before {
		t.Fatalf("Reset should retain capacity: got %d, want %d", cap(bb.B), before)
	}
}

func TestByteBufferPoolRoundTrip(t *testing.T) {
	p := NewByteBufferPool(16, 128)

	bb := p.Get()
	bb.MustWrite([]byte("hello"))
	p.Put(bb)

	bb2 := p.Get()
	if bb2.Len() != 0 {
		t.Fatalf("pooled buffer should be reset, got len %d", bb2.Len())
	}
}

func TestByteBufferPoolDiscardsOversized(t *testing.T) {
	p := NewByteBufferPool(4, 8)

	bb := NewByteBuffer(4)
	bb.Grow(100)
	p.Put(bb) // larger than maxThreshold, should be discarded silently

	// Get should still work and not panic, returning a fresh buffer.
	got := p.Get()
	if got == nil {
		t.Fatal("Get() returned nil")
	}
}
