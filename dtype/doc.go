// Package dtype defines the closed type system of colmem: the Kind
// enumeration, the DataType value-equality interface, process-wide
// singletons for the primitive types, generic lookups from Go element types
// to their descriptors, and the numeric promotion rule for division.
//
// Primitive singletons (dtype.Int64, dtype.Float32, ...) are created at
// process start and never mutated afterwards. They are a convenience, not an
// identity: type equality always goes through Equals, which compares values,
// so a separately constructed descriptor of the same kind is equal to the
// singleton.
//
// Category types carry per-dictionary state and therefore live with the
// arrays that own them, in package array.
package dtype
