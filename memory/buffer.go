package memory

import (
	"fmt"
	"sync/atomic"

	"github.com/arloliu/colmem/errs"
)

// Buffer is a reference-counted contiguous byte region. A buffer is either
// owned (allocated through an Allocator, freed on final release) or borrowed
// (wrapping caller memory that is never freed or written).
//
// The use count is atomic, so Retain, Release and UseCount are safe from any
// goroutine. Writing through Bytes is only legal while the buffer is mutable
// and exclusively owned; arrays enforce that rule before every mutation.
type Buffer struct {
	refs    atomic.Int64
	data    []byte
	mem     Allocator
	mutable bool
	owned   bool
}

// Allocate creates an owned, mutable, zeroed buffer of size bytes with a use
// count of one. A nil mem uses DefaultAllocator.
//
// Returns ErrOutOfMemory when the allocator cannot satisfy the request, or
// ErrInvalid for a negative size.
func Allocate(mem Allocator, size int) (*Buffer, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: negative buffer size %d", errs.ErrInvalid, size)
	}
	if mem == nil {
		mem = DefaultAllocator
	}

	data := mem.Allocate(size)
	if data == nil && size > 0 {
		return nil, fmt.Errorf("%w: allocating %d bytes", errs.ErrOutOfMemory, size)
	}

	b := &Buffer{data: data, mem: mem, mutable: true, owned: true}
	b.refs.Store(1)

	return b, nil
}

// Wrap creates a borrowed, immutable buffer over caller-supplied memory with
// a use count of one. The memory is not copied and is never freed; the
// caller must keep it valid for the life of the buffer.
func Wrap(data []byte) *Buffer {
	b := &Buffer{data: data, mutable: false, owned: false}
	b.refs.Store(1)

	return b
}

// Copy returns a new owned, mutable buffer holding the byte range
// [offset, offset+length) of this buffer, allocated from the same allocator
// (or DefaultAllocator for borrowed buffers).
//
// Returns ErrOutOfRange when the range exceeds the buffer's size.
func (b *Buffer) Copy(offset, length int) (*Buffer, error) {
	if offset < 0 || length < 0 || offset+length > len(b.data) {
		return nil, fmt.Errorf("%w: copy [%d:%d) of %d-byte buffer",
			errs.ErrOutOfRange, offset, offset+length, len(b.data))
	}

	out, err := Allocate(b.mem, length)
	if err != nil {
		return nil, err
	}
	copy(out.data, b.data[offset:offset+length])

	return out, nil
}

// Retain adds an owner to the buffer.
func (b *Buffer) Retain() {
	b.refs.Add(1)
}

// Release drops one owner. When the last owner releases an owned buffer its
// memory returns to the allocator; a borrowed buffer is simply detached.
func (b *Buffer) Release() {
	if b.refs.Add(-1) == 0 {
		if b.owned {
			b.mem.Free(b.data)
		}
		b.data = nil
	}
}

// UseCount returns the current number of owners.
func (b *Buffer) UseCount() int64 {
	return b.refs.Load()
}

// Mutable reports whether the buffer was created mutable. It says nothing
// about sharing; exclusive ownership must be checked separately through
// UseCount.
func (b *Buffer) Mutable() bool {
	return b.mutable
}

// Len returns the buffer size in bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Allocator returns the allocator the buffer was allocated from, or nil for
// borrowed buffers.
func (b *Buffer) Allocator() Allocator {
	return b.mem
}

// Bytes returns the underlying byte region.
func (b *Buffer) Bytes() []byte {
	return b.data
}
