// Package colmem provides an in-memory columnar data engine with
// reference-counted buffers, typed numeric arrays and copy-on-write
// sharing.
//
// Data lives in 64-byte aligned byte buffers managed by the memory
// package. Typed arrays from the array package interpret windows of those
// buffers as fixed-width elements, track nulls, and share storage until a
// writer needs its own copy. Lightweight views slice arrays without
// copying and split off private clones on demand.
//
// # Core Features
//
//   - Reference-counted buffers with owned and borrowed memory
//   - Closed set of element types with process-wide type singletons
//   - Integer arrays with validity bitmaps, float arrays with NaN nulls
//   - Element-wise arithmetic with copy-on-write and null propagation
//   - Integer division that promotes to the smallest exact float type
//   - Zero-copy slicing through reference-counted array views
//   - Dictionary encoding into category arrays
//   - Allocator instrumentation: byte tracking, budgets, pooling
//
// # Basic Usage
//
// Building arrays and performing arithmetic:
//
//	import "github.com/arloliu/colmem"
//
//	a, _ := colmem.FromInts([]int32{1, 2, 3, 4}, nil)
//	b, _ := colmem.FromInts([]int32{10, 20, 30, 40}, nil)
//	defer a.Release()
//	defer b.Release()
//
//	sum, _ := array.Add(a, b)      // [11 22 33 44], operands untouched
//	quot, _ := array.Divide(a, b)  // float64 array, int32 cannot fit float32
//	defer sum.Release()
//	defer quot.Release()
//
// Slicing through views with copy-on-write:
//
//	arr, _ := colmem.FromFloats([]float64{0, 1, 2, 3, 4, 5, 6, 7}, nil)
//	view := colmem.ViewOf(arr)
//	slice := view.SliceRange(2, 4)   // window [2, 6), shares the array
//
//	slice.EnsureMutable()            // private copy of the window
//	slice.SetScalar(0, float64(99))  // view still sees the original
//
//	slice.Release()
//	view.Release()
//
// # Package Structure
//
// This package provides convenient top-level constructors around the
// array package, simplifying the most common use cases. For buffer-level
// control, allocators and the full array API, use the memory, dtype and
// array packages directly.
package colmem

import (
	"github.com/arloliu/colmem/array"
	"github.com/arloliu/colmem/dtype"
)

// FromInts builds an integer array holding values. valid may be nil when
// every element is valid; otherwise valid[i] == false marks element i
// null.
//
// Parameters:
//   - values: The elements to store, one of the eight fixed-width Go
//     integer types.
//   - valid: Optional per-element validity flags, same length as values.
//   - opts: Optional builder configuration (see array.BuilderOption).
//
// Returns:
//   - *array.IntegerArray[T]: A fresh array with exclusively owned
//     buffers.
//   - error: An error if the options or slice lengths are invalid.
//
// Example:
//
//	arr, err := colmem.FromInts([]int64{10, 20, 30}, []bool{true, false, true})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer arr.Release()
func FromInts[T dtype.Integer](values []T, valid []bool, opts ...array.BuilderOption) (*array.IntegerArray[T], error) {
	return array.IntegerFromSlice(values, valid, opts...)
}

// FromFloats builds a floating-point array holding values. Nulls are
// stored as NaN: pass them directly in values, or mark positions with
// valid[i] == false.
//
// Parameters:
//   - values: The elements to store, float32 or float64.
//   - valid: Optional per-element validity flags, same length as values.
//   - opts: Optional builder configuration (see array.BuilderOption).
//
// Returns:
//   - *array.FloatingArray[T]: A fresh array with an exclusively owned
//     buffer.
//   - error: An error if the options or slice lengths are invalid.
func FromFloats[T dtype.Float](values []T, valid []bool, opts ...array.BuilderOption) (*array.FloatingArray[T], error) {
	return array.FloatingFromSlice(values, valid, opts...)
}

// FromBools builds a boolean array holding values, stored one byte per
// element under the boolean logical type.
//
// Parameters:
//   - values: The elements to store.
//   - valid: Optional per-element validity flags, same length as values.
//   - opts: Optional builder configuration (see array.BuilderOption).
//
// Returns:
//   - *array.BooleanArray: A fresh array with exclusively owned buffers.
//   - error: An error if the options or slice lengths are invalid.
func FromBools(values []bool, valid []bool, opts ...array.BuilderOption) (*array.BooleanArray, error) {
	return array.BooleanFromSlice(values, valid, opts...)
}

// ViewOf wraps an array in a view spanning all of its elements. The view
// takes over the caller's handle on the array, so a freshly built array
// wrapped this way has a reference count of one and is released through
// the view.
//
// Example:
//
//	arr, _ := colmem.FromInts([]int32{1, 2, 3}, nil)
//	view := colmem.ViewOf(arr)
//	defer view.Release()
//
//	tail := view.Slice(1)  // [2 3], reference count now 2
//	defer tail.Release()
func ViewOf(arr array.Array) *array.ArrayView {
	return array.NewView(arr)
}
