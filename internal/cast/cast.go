// Package cast provides unsafe reinterpretation between byte slices and
// typed element slices. It performs no conversion or validation; it simply
// reinterprets the underlying memory.
package cast

import "unsafe"

// Sizeof returns the size of T in bytes.
func Sizeof[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// Slice reinterprets a slice of one element type as a slice of another.
// The length and capacity of the result are scaled by the two element sizes.
func Slice[From, To any](in []From) []To {
	fromSize := Sizeof[From]()
	toSize := Sizeof[To]()

	toLen := len(in) * fromSize / toSize
	toCap := cap(in) * fromSize / toSize

	out := (*To)(unsafe.Pointer(unsafe.SliceData(in)))

	return unsafe.Slice(out, toCap)[:toLen]
}

// ToBytes reinterprets a typed element slice as its raw bytes.
func ToBytes[T any](in []T) []byte {
	return Slice[T, byte](in)
}

// FromBytes reinterprets raw bytes as a typed element slice.
func FromBytes[T any](in []byte) []T {
	return Slice[byte, T](in)
}
