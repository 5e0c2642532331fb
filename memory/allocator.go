package memory

import "unsafe"

// Alignment is the byte alignment of every allocation handed out by the
// allocators in this package. Keeping buffers 64-byte aligned lets typed
// element windows start on cache-line boundaries.
const Alignment = 64

// Allocator hands out raw byte regions for Buffers and builders.
//
// Allocate returns a zeroed slice of exactly size bytes, or nil if the
// allocator cannot satisfy the request. Reallocate grows or shrinks a
// previous allocation, preserving its prefix. Free returns memory to the
// allocator; passing a slice that did not come from the same allocator is
// undefined.
type Allocator interface {
	Allocate(size int) []byte
	Reallocate(size int, b []byte) []byte
	Free(b []byte)
}

// GoAllocator allocates from the Go heap, aligning each region to Alignment
// by over-allocating and shifting into the block. Freeing is left to the
// garbage collector.
type GoAllocator struct{}

// NewGoAllocator creates an allocator backed by the Go runtime.
func NewGoAllocator() *GoAllocator {
	return &GoAllocator{}
}

// DefaultAllocator is the allocator used when callers pass a nil Allocator.
var DefaultAllocator Allocator = NewGoAllocator()

func (a *GoAllocator) Allocate(size int) []byte {
	if size < 0 {
		return nil
	}

	buf := make([]byte, size+Alignment)
	shift := alignShift(buf)

	return buf[shift : shift+size : shift+size]
}

func (a *GoAllocator) Reallocate(size int, b []byte) []byte {
	if size < 0 {
		return nil
	}
	if size <= cap(b) {
		return b[:size]
	}

	out := a.Allocate(size)
	copy(out, b)

	return out
}

func (a *GoAllocator) Free(b []byte) {}

// alignShift returns how many bytes to skip from the start of buf so the
// resulting pointer is Alignment-aligned.
func alignShift(buf []byte) int {
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
	return int((Alignment - (addr & (Alignment - 1))) & (Alignment - 1))
}
