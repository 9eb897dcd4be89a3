package pool

import "sync"

// stringSlicePool reduces allocations when transposing row-oriented CSV-like
// input into per-column text value vectors (writer.transposeColumn) and when
// materializing text rows back out (reader.ReadTable).
var stringSlicePool = sync.Pool{
	New: func() any { return &[]string{} },
}

// GetStringSlice retrieves a string slice of exactly the given length from
// the pool, reusing its backing array when it's large enough. The caller
// must invoke the returned cleanup function, typically via defer, to
// return the slice to the pool.
func GetStringSlice(size int) ([]string, func()) {
	ptr, _ := stringSlicePool.Get().(*[]string)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]string, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { stringSlicePool.Put(ptr) }
}
