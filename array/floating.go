package array

import (
	"fmt"
	"math"

	"github.com/arloliu/colmem/dtype"
	"github.com/arloliu/colmem/errs"
	"github.com/arloliu/colmem/memory"
)

// FloatingArray is a typed array over a floating-point element type. It
// carries no validity bitmap; a null element is represented by NaN in the
// values themselves.
type FloatingArray[T dtype.Float] struct {
	NumericArray[T]
}

// NewFloating creates a floating-point array over the window [offset,
// offset+length) of data. The buffer is retained.
//
// Returns ErrNilBuffer for a nil data buffer and ErrOutOfRange when the
// buffer is too small for the window.
func NewFloating[T dtype.Float](data *memory.Buffer, offset, length int) (*FloatingArray[T], error) {
	typ := dtype.Of[T]()
	if err := validateWindow(data, typ.ByteWidth(), offset, length); err != nil {
		return nil, err
	}

	data.Retain()

	arr := &FloatingArray[T]{
		NumericArray: NumericArray[T]{typ: typ, data: data, offset: offset, length: length},
	}
	arr.refs.Store(1)

	return arr, nil
}

// FloatingFromSlice builds a floating-point array holding values. valid
// may be nil when every element is valid; otherwise valid[i] == false
// stores NaN at element i.
//
// Returns ErrLengthMismatch when valid is non-nil with a different length
// than values.
func FloatingFromSlice[T dtype.Float](values []T, valid []bool, opts ...BuilderOption) (*FloatingArray[T], error) {
	b, err := NewFloatingBuilder[T](opts...)
	if err != nil {
		return nil, err
	}
	if err := b.AppendValues(values, valid); err != nil {
		return nil, err
	}

	return b.NewArray()
}

// Nullable reports that nulls are encoded in the values as NaN, so
// arithmetic propagates them without a bitmap.
func (a *FloatingArray[T]) Nullable() bool {
	return false
}

// IsNull reports whether element i is NaN.
func (a *FloatingArray[T]) IsNull(i int) bool {
	return math.IsNaN(float64(a.Value(i)))
}

// HasNulls reports whether any element is NaN, stopping at the first one.
func (a *FloatingArray[T]) HasNulls() bool {
	for _, v := range a.Values() {
		if math.IsNaN(float64(v)) {
			return true
		}
	}

	return false
}

// NullCount returns the number of NaN elements.
func (a *FloatingArray[T]) NullCount() int {
	count := 0
	for _, v := range a.Values() {
		if math.IsNaN(float64(v)) {
			count++
		}
	}

	return count
}

// Copy clones the window [offset, offset+length) of the logical elements
// into a brand-new array with a freshly owned buffer.
//
// Returns ErrOutOfRange when the window exceeds the array's length.
func (a *FloatingArray[T]) Copy(offset, length int) (*FloatingArray[T], error) {
	if offset < 0 || length < 0 || offset+length > a.length {
		return nil, fmt.Errorf("%w: copy window [%d, %d) exceeds length %d",
			errs.ErrOutOfRange, offset, offset+length, a.length)
	}

	w := a.typ.ByteWidth()
	data, err := a.data.Copy((a.offset+offset)*w, length*w)
	if err != nil {
		return nil, err
	}

	out := &FloatingArray[T]{
		NumericArray: NumericArray[T]{typ: a.typ, data: data, length: length},
	}
	out.refs.Store(1)

	return out, nil
}

// CopyRange implements Array in terms of Copy.
func (a *FloatingArray[T]) CopyRange(offset, length int) (Array, error) {
	out, err := a.Copy(offset, length)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// GetScalar returns the boxed value of element i, or nil when the element
// is NaN.
func (a *FloatingArray[T]) GetScalar(i int) any {
	v := a.Value(i)
	if math.IsNaN(float64(v)) {
		return nil
	}

	return v
}

// SetScalar stores a boxed value into element i, nil meaning null (stored
// as NaN). The element type must match exactly.
//
// The data buffer must be exclusively owned and mutable; SetScalar fails
// with ErrImmutableBuffer or ErrSharedBuffer instead of cloning.
func (a *FloatingArray[T]) SetScalar(i int, v any) error {
	if i < 0 || i >= a.length {
		return fmt.Errorf("%w: index %d out of range [0, %d)", errs.ErrOutOfRange, i, a.length)
	}
	if !a.data.Mutable() {
		return fmt.Errorf("%w: underlying buffer is immutable", errs.ErrImmutableBuffer)
	}
	if a.data.UseCount() > 1 {
		return fmt.Errorf("%w: underlying buffer is shared", errs.ErrSharedBuffer)
	}

	if v == nil {
		a.Values()[i] = T(math.NaN())

		return nil
	}

	tv, ok := v.(T)
	if !ok {
		return fmt.Errorf("%w: cannot store %T into %s array", errs.ErrTypeMismatch, v, a.typ.Name())
	}
	a.Values()[i] = tv

	return nil
}

var _ Array = (*FloatingArray[float64])(nil)
