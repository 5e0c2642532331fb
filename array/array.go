package array

import "github.com/arloliu/colmem/dtype"

// Array is the polymorphic surface shared by every typed array variant.
//
// An array owns a reference count that tracks how many handles (typically
// ArrayViews) share it. Retain, Release and RefCount are safe from any
// goroutine; every other method follows the one-mutator-per-group rule
// described in the package documentation.
type Array interface {
	// Type returns the array's logical element type.
	Type() dtype.DataType

	// Len returns the number of logical elements.
	Len() int

	// Offset returns the element index into the underlying buffer where
	// the logical data begins.
	Offset() int

	// IsNull reports whether element i is null.
	IsNull(i int) bool

	// NullCount returns the number of null elements.
	NullCount() int

	// HasNulls reports whether any element is null. When only presence
	// matters this is faster than NullCount, since it stops at the first
	// null.
	HasNulls() bool

	// OwnsData reports whether every buffer the array references is
	// exclusively owned, which is the precondition for mutating in place.
	OwnsData() bool

	// CopyRange copies the window [offset, offset+length) of the logical
	// elements into a brand-new array with freshly owned buffers.
	//
	// Returns ErrOutOfRange when the window exceeds the array's length.
	CopyRange(offset, length int) (Array, error)

	// EnsureMutable establishes exclusively owned, mutable buffers,
	// cloning the logical window when needed. changed reports whether a
	// clone happened. On error the array is left unchanged.
	EnsureMutable() (changed bool, err error)

	// GetScalar returns the boxed value of element i, or nil when the
	// element is null.
	GetScalar(i int) any

	// SetScalar stores a boxed value into element i, nil meaning null.
	// It fails with ErrImmutableBuffer or ErrSharedBuffer when the target
	// buffers are not exclusively owned and mutable; it never performs
	// copy-on-write itself. Callers wanting that call EnsureMutable first.
	SetScalar(i int, v any) error

	// Retain adds a handle to the array's reference count.
	Retain()

	// Release drops one handle. At zero the array releases its buffers.
	Release()

	// RefCount returns the current number of handles.
	RefCount() int64
}
