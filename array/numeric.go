package array

import (
	"fmt"
	"iter"
	"sync/atomic"

	"github.com/arloliu/colmem/dtype"
	"github.com/arloliu/colmem/errs"
	"github.com/arloliu/colmem/internal/cast"
	"github.com/arloliu/colmem/memory"
)

// NumericArray is the common core of the typed numeric arrays. It binds a
// primitive element type to the window [offset, offset+length) of a data
// buffer and carries the handle count of the array itself.
//
// NumericArray is not instantiated on its own; IntegerArray and
// FloatingArray embed it and layer their null representations on top.
type NumericArray[T dtype.Numeric] struct {
	refs   atomic.Int64
	typ    *dtype.PrimitiveType
	data   *memory.Buffer
	offset int
	length int
}

// Type returns the array's logical element type.
func (a *NumericArray[T]) Type() dtype.DataType {
	return a.typ
}

// Len returns the number of logical elements.
func (a *NumericArray[T]) Len() int {
	return a.length
}

// Offset returns the element index into the data buffer where the logical
// window begins.
func (a *NumericArray[T]) Offset() int {
	return a.offset
}

// Data returns the underlying data buffer.
func (a *NumericArray[T]) Data() *memory.Buffer {
	return a.data
}

// Values returns the logical window of the data buffer as a typed slice.
// The slice aliases the buffer; writes through it must respect the same
// ownership rules as SetScalar.
func (a *NumericArray[T]) Values() []T {
	vals := cast.Slice[byte, T](a.data.Bytes())

	return vals[a.offset : a.offset+a.length]
}

// Value returns element i. It does not consult the null representation;
// the value under a null element is unspecified.
func (a *NumericArray[T]) Value(i int) T {
	return a.Values()[i]
}

// All returns an iterator over (index, value) pairs of the logical window.
func (a *NumericArray[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range a.Values() {
			if !yield(i, v) {
				return
			}
		}
	}
}

// OwnsData reports whether the data buffer is exclusively owned and
// mutable.
func (a *NumericArray[T]) OwnsData() bool {
	return a.data.UseCount() == 1 && a.data.Mutable()
}

// EnsureMutable establishes an exclusively owned, mutable data buffer,
// cloning the logical window when the current buffer is shared or
// immutable. After a clone the window starts at offset zero.
func (a *NumericArray[T]) EnsureMutable() (changed bool, err error) {
	if a.data.UseCount() == 1 && a.data.Mutable() {
		return false, nil
	}

	w := cast.Sizeof[T]()
	clone, err := a.data.Copy(a.offset*w, a.length*w)
	if err != nil {
		return false, err
	}

	a.data.Release()
	a.data = clone
	a.offset = 0

	return true, nil
}

// Retain adds a handle to the array.
func (a *NumericArray[T]) Retain() {
	a.refs.Add(1)
}

// Release drops one handle. The last release also releases the data
// buffer.
func (a *NumericArray[T]) Release() {
	if a.refs.Add(-1) == 0 && a.data != nil {
		a.data.Release()
		a.data = nil
	}
}

// RefCount returns the current number of handles.
func (a *NumericArray[T]) RefCount() int64 {
	return a.refs.Load()
}

// allocator returns the allocator backing the data buffer, falling back to
// the default for borrowed buffers.
func (a *NumericArray[T]) allocator() memory.Allocator {
	if mem := a.data.Allocator(); mem != nil {
		return mem
	}

	return memory.DefaultAllocator
}

// validateWindow checks that [offset, offset+length) elements of width w
// fit inside data.
func validateWindow(data *memory.Buffer, w, offset, length int) error {
	if data == nil {
		return fmt.Errorf("%w: data buffer", errs.ErrNilBuffer)
	}
	if offset < 0 || length < 0 {
		return fmt.Errorf("%w: negative window offset %d or length %d", errs.ErrOutOfRange, offset, length)
	}
	if (offset+length)*w > data.Len() {
		return fmt.Errorf("%w: window [%d, %d) of %d-byte elements exceeds %d-byte buffer",
			errs.ErrOutOfRange, offset, offset+length, w, data.Len())
	}

	return nil
}
