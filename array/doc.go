// Package array provides typed, reference-counted columnar arrays with
// copy-on-write sharing.
//
// An array binds a primitive element type to a window of a byte buffer
// from the memory package. Integer arrays track nulls in an optional
// validity bitmap where a set bit marks a null element; floating-point
// arrays encode nulls as NaN so arithmetic propagates them for free.
// BooleanArray stores one byte per element under the boolean logical
// type, and CategoryArray dictionary-encodes repeated values into integer
// codes plus a shared dictionary.
//
// # Sharing and copy-on-write
//
// Sharing happens at two levels. At the buffer level, several arrays may
// reference the same data buffer; Array.EnsureMutable clones the array's
// window when its buffers are shared or immutable, so writes never reach
// the other arrays. At the array level, several ArrayViews may reference
// the same array; ArrayView.EnsureMutable splits the calling view out of
// its group by cloning just its window.
//
// Mutators never clone implicitly. SetScalar fails with
// ErrImmutableBuffer or ErrSharedBuffer when the target buffers are not
// exclusively owned; callers opt into copy-on-write by calling
// EnsureMutable first. The arithmetic kernels do exactly that, which is
// why adding into an array that shares a buffer leaves the other holders
// untouched.
//
// # Concurrency
//
// Retain, Release and RefCount are safe from any goroutine. Everything
// else follows the one-mutator rule: an array or view may be read from
// many goroutines or mutated by one, never both at once.
package array
