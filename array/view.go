package array

import (
	"fmt"

	"github.com/arloliu/colmem/dtype"
	"github.com/arloliu/colmem/errs"
)

// ArrayView is a lightweight window over a shared array. Views of the
// same array form a group whose size is the array's reference count;
// copying or slicing a view grows the group, releasing shrinks it.
//
// A view never mutates a shared array. EnsureMutable splits the calling
// view out of its group by cloning the window, after which mutations are
// invisible to the other members.
type ArrayView struct {
	arr    Array
	offset int
	length int
}

// NewView wraps arr in a view spanning all of its elements. The view
// takes over the caller's handle on arr; a freshly constructed array
// wrapped this way has a reference count of one.
func NewView(arr Array) *ArrayView {
	return &ArrayView{arr: arr, length: arr.Len()}
}

// Copy returns a second view of the same window, growing the group by
// one.
func (v *ArrayView) Copy() *ArrayView {
	v.arr.Retain()

	return &ArrayView{arr: v.arr, offset: v.offset, length: v.length}
}

// Slice returns a view of the elements from offset to the end of this
// view's window, growing the group by one. An offset past the end yields
// an empty view.
func (v *ArrayView) Slice(offset int) *ArrayView {
	offset = clamp(offset, v.length)
	v.arr.Retain()

	return &ArrayView{arr: v.arr, offset: v.offset + offset, length: v.length - offset}
}

// SliceRange returns a view of length elements starting at offset within
// this view's window, growing the group by one. The window is clamped to
// the available elements.
func (v *ArrayView) SliceRange(offset, length int) *ArrayView {
	offset = clamp(offset, v.length)
	length = clamp(length, v.length-offset)
	v.arr.Retain()

	return &ArrayView{arr: v.arr, offset: v.offset + offset, length: length}
}

func clamp(n, limit int) int {
	if n < 0 {
		return 0
	}
	if n > limit {
		return limit
	}

	return n
}

// EnsureMutable makes the view safe to mutate without affecting the rest
// of its group. When the array is shared, the view's window is cloned
// into a fresh array and the view rebinds to it, leaving the group; the
// view then starts a group of one at offset zero. When the view is
// already alone, this falls through to the array's own buffer-level
// copy-on-write. changed reports whether either clone happened.
func (v *ArrayView) EnsureMutable() (changed bool, err error) {
	if v.arr.RefCount() > 1 {
		clone, err := v.arr.CopyRange(v.offset, v.length)
		if err != nil {
			return false, err
		}
		v.arr.Release()
		v.arr = clone
		v.offset = 0

		return true, nil
	}

	return v.arr.EnsureMutable()
}

// Release drops the view's handle on the array. The view must not be
// used afterwards.
func (v *ArrayView) Release() {
	v.arr.Release()
	v.arr = nil
}

// RefCount returns the size of the view's group.
func (v *ArrayView) RefCount() int64 {
	return v.arr.RefCount()
}

// Data returns the underlying array.
func (v *ArrayView) Data() Array {
	return v.arr
}

// Type returns the underlying array's element type.
func (v *ArrayView) Type() dtype.DataType {
	return v.arr.Type()
}

// Offset returns the view's element offset into the underlying array.
func (v *ArrayView) Offset() int {
	return v.offset
}

// Len returns the number of elements in the view's window.
func (v *ArrayView) Len() int {
	return v.length
}

// OwnsData reports whether the view is alone in its group and the
// underlying buffers are exclusively owned and mutable.
func (v *ArrayView) OwnsData() bool {
	return v.arr.RefCount() == 1 && v.arr.OwnsData()
}

// IsNull reports whether element i of the window is null.
func (v *ArrayView) IsNull(i int) bool {
	v.checkBounds(i)

	return v.arr.IsNull(v.offset + i)
}

// NullCount returns the number of null elements in the window.
func (v *ArrayView) NullCount() int {
	if v.offset == 0 && v.length == v.arr.Len() {
		return v.arr.NullCount()
	}

	count := 0
	for i := 0; i < v.length; i++ {
		if v.arr.IsNull(v.offset + i) {
			count++
		}
	}

	return count
}

// HasNulls reports whether any element in the window is null.
func (v *ArrayView) HasNulls() bool {
	for i := 0; i < v.length; i++ {
		if v.arr.IsNull(v.offset + i) {
			return true
		}
	}

	return false
}

// GetScalar returns the boxed value of element i of the window, or nil
// when the element is null.
func (v *ArrayView) GetScalar(i int) any {
	v.checkBounds(i)

	return v.arr.GetScalar(v.offset + i)
}

// SetScalar stores a boxed value into element i of the window, nil
// meaning null. The view must be alone in its group and the underlying
// buffers exclusively owned and mutable; call EnsureMutable first when
// the view may be shared.
func (v *ArrayView) SetScalar(i int, val any) error {
	if i < 0 || i >= v.length {
		return fmt.Errorf("%w: index %d out of range [0, %d)", errs.ErrOutOfRange, i, v.length)
	}
	if v.arr.RefCount() > 1 {
		return fmt.Errorf("%w: array is shared by %d views", errs.ErrSharedBuffer, v.arr.RefCount())
	}

	return v.arr.SetScalar(v.offset+i, val)
}

func (v *ArrayView) checkBounds(i int) {
	if i < 0 || i >= v.length {
		panic(fmt.Sprintf("colmem/array: view index %d out of range [0, %d)", i, v.length))
	}
}
