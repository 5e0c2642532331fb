// Package errs defines the sentinel errors shared across colmem packages.
//
// Errors form two levels: root kinds that classify a failure (invalid
// operation, out of range, out of memory), and specific conditions that wrap
// a root kind. Both levels match with errors.Is, so callers can test for the
// broad kind or the exact condition:
//
//	if errors.Is(err, errs.ErrInvalid) { ... }          // any invalid operation
//	if errors.Is(err, errs.ErrImmutableBuffer) { ... }  // this one specifically
package errs

import (
	"errors"
	"fmt"
)

// Root error kinds. Every fallible operation in colmem reports one of these,
// usually through one of the specific conditions below.
var (
	// ErrInvalid indicates an operation attempted on an immutable or
	// improperly shared target, or with arguments of the wrong shape.
	ErrInvalid = errors.New("invalid operation")

	// ErrOutOfRange indicates a copy or slice request that exceeds the
	// bounds of a buffer or array.
	ErrOutOfRange = errors.New("out of range")

	// ErrOutOfMemory indicates the allocator could not provide the
	// requested memory.
	ErrOutOfMemory = errors.New("out of memory")
)

// Specific conditions. Each wraps one of the root kinds above.
var (
	// ErrNilBuffer indicates a nil buffer was passed where a valid one is required.
	ErrNilBuffer = fmt.Errorf("%w: nil buffer", ErrInvalid)

	// ErrImmutableBuffer indicates a write through a buffer that was not
	// allocated as mutable.
	ErrImmutableBuffer = fmt.Errorf("%w: buffer is immutable", ErrInvalid)

	// ErrSharedBuffer indicates a write through a buffer with more than one
	// owner. Callers must establish exclusive ownership first.
	ErrSharedBuffer = fmt.Errorf("%w: buffer is shared", ErrInvalid)

	// ErrTypeMismatch indicates a value or operand whose element type does
	// not match the target array.
	ErrTypeMismatch = fmt.Errorf("%w: type mismatch", ErrInvalid)

	// ErrLengthMismatch indicates paired slices of different lengths.
	ErrLengthMismatch = fmt.Errorf("%w: length mismatch", ErrInvalid)

	// ErrNoValidityBitmap indicates a null marking on an array that has no
	// validity bitmap allocated.
	ErrNoValidityBitmap = fmt.Errorf("%w: validity bitmap not allocated", ErrInvalid)

	// ErrInvalidCategoryCode indicates a dictionary code that does not index
	// the categories array.
	ErrInvalidCategoryCode = fmt.Errorf("%w: category code outside dictionary bounds", ErrInvalid)

	// ErrAllocatorLimit indicates an allocation rejected by a byte-budget
	// allocator.
	ErrAllocatorLimit = fmt.Errorf("%w: allocator byte limit exceeded", ErrOutOfMemory)
)
