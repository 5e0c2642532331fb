package memory

import (
	"math/bits"
	"sync"
)

const (
	minPooledShift = 6  // smallest pooled class: 64 bytes
	maxPooledShift = 20 // largest pooled class: 1 MiB
	pooledClasses  = maxPooledShift - minPooledShift + 1
)

// PooledAllocator recycles freed buffers through per-size-class sync.Pools.
// Requests are rounded up to the next power-of-two class between 64 bytes
// and 1 MiB; anything larger bypasses the pools and is never retained, so a
// burst of large allocations cannot pin memory. Recycled regions are zeroed
// before reuse.
type PooledAllocator struct {
	mem   Allocator
	pools [pooledClasses]sync.Pool
}

// NewPooledAllocator creates a recycling allocator drawing fresh memory from
// mem. A nil mem uses DefaultAllocator.
func NewPooledAllocator(mem Allocator) *PooledAllocator {
	if mem == nil {
		mem = DefaultAllocator
	}

	return &PooledAllocator{mem: mem}
}

func (p *PooledAllocator) Allocate(size int) []byte {
	if size <= 0 {
		return p.mem.Allocate(size)
	}

	class, ok := poolClass(size)
	if !ok {
		return p.mem.Allocate(size)
	}

	if v := p.pools[class].Get(); v != nil {
		b := *(v.(*[]byte))
		clear(b)

		return b[:size]
	}

	b := p.mem.Allocate(1 << (class + minPooledShift))
	if b == nil {
		return nil
	}

	return b[:size]
}

func (p *PooledAllocator) Reallocate(size int, b []byte) []byte {
	if size <= cap(b) {
		out := b[:size]
		if size > len(b) {
			clear(out[len(b):])
		}

		return out
	}

	out := p.Allocate(size)
	if out == nil {
		return nil
	}
	copy(out, b)
	p.Free(b)

	return out
}

func (p *PooledAllocator) Free(b []byte) {
	c := cap(b)
	if c == 0 {
		return
	}

	if class, ok := poolClass(c); ok && c == 1<<(class+minPooledShift) {
		full := b[:c]
		p.pools[class].Put(&full)

		return
	}

	p.mem.Free(b)
}

// poolClass maps a byte size to its size-class index, rounding up to the
// next power of two. ok is false for sizes above the largest pooled class.
func poolClass(size int) (int, bool) {
	shift := bits.Len(uint(size - 1))
	if shift < minPooledShift {
		shift = minPooledShift
	}
	if shift > maxPooledShift {
		return 0, false
	}

	return shift - minPooledShift, true
}
