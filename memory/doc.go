// Package memory provides the allocation layer beneath colmem arrays: an
// injectable Allocator interface with heap, tracking, budget and recycling
// implementations, and the reference-counted Buffer type that every array
// stores its bytes in.
//
// All allocators hand out 64-byte aligned, zeroed memory. Buffers are either
// owned (created by Allocate, freed when the last owner releases them) or
// borrowed (created by Wrap around caller memory, never freed or written).
//
// Ownership is tracked with an atomic use count. The copy-on-write machinery
// in the array package treats "use count above one" and "not mutable" as the
// signals that a private copy is required before mutation.
package memory
