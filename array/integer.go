package array

import (
	"fmt"

	"github.com/arloliu/colmem/dtype"
	"github.com/arloliu/colmem/errs"
	"github.com/arloliu/colmem/internal/bitutil"
	"github.com/arloliu/colmem/memory"
)

// IntegerArray is a typed array over a fixed-width integer element type.
// Nulls are tracked in an optional validity bitmap where a set bit marks a
// null element; an array without a bitmap has no nulls.
//
// The bitmap shares the array's element offset, so the bit for element i
// lives at bit position offset+i.
type IntegerArray[T dtype.Integer] struct {
	NumericArray[T]
	validity *memory.Buffer
}

// NewInteger creates an integer array over the window [offset,
// offset+length) of data. validity may be nil for an array without nulls;
// when given, it must hold at least offset+length bits. Both buffers are
// retained.
//
// Returns ErrNilBuffer for a nil data buffer and ErrOutOfRange when either
// buffer is too small for the window.
func NewInteger[T dtype.Integer](data, validity *memory.Buffer, offset, length int) (*IntegerArray[T], error) {
	typ := dtype.Of[T]()
	if err := validateWindow(data, typ.ByteWidth(), offset, length); err != nil {
		return nil, err
	}
	if validity != nil && validity.Len() < bitutil.BytesForBits(offset+length) {
		return nil, fmt.Errorf("%w: %d-byte validity bitmap cannot hold %d bits",
			errs.ErrOutOfRange, validity.Len(), offset+length)
	}

	data.Retain()
	if validity != nil {
		validity.Retain()
	}

	arr := &IntegerArray[T]{
		NumericArray: NumericArray[T]{typ: typ, data: data, offset: offset, length: length},
		validity:     validity,
	}
	arr.refs.Store(1)

	return arr, nil
}

// IntegerFromSlice builds an integer array holding values. valid may be nil
// when every element is valid; otherwise valid[i] == false marks element i
// null.
//
// Returns ErrLengthMismatch when valid is non-nil with a different length
// than values.
func IntegerFromSlice[T dtype.Integer](values []T, valid []bool, opts ...BuilderOption) (*IntegerArray[T], error) {
	b, err := NewIntegerBuilder[T](opts...)
	if err != nil {
		return nil, err
	}
	if err := b.AppendValues(values, valid); err != nil {
		return nil, err
	}

	return b.NewArray()
}

// Validity returns the validity bitmap buffer, or nil when the array has
// none.
func (a *IntegerArray[T]) Validity() *memory.Buffer {
	return a.validity
}

// Nullable reports that nulls are tracked per element rather than encoded
// in the values themselves.
func (a *IntegerArray[T]) Nullable() bool {
	return true
}

// IsNull reports whether element i is null.
func (a *IntegerArray[T]) IsNull(i int) bool {
	if a.validity == nil {
		return false
	}

	return bitutil.IsSet(a.validity.Bytes(), a.offset+i)
}

// SetNull marks element i null.
//
// Returns ErrNoValidityBitmap when the array was built without a bitmap;
// call AllocValidity first.
func (a *IntegerArray[T]) SetNull(i int) error {
	if a.validity == nil {
		return fmt.Errorf("%w: array has no validity bitmap", errs.ErrNoValidityBitmap)
	}
	bitutil.Set(a.validity.Bytes(), a.offset+i)

	return nil
}

// SetValid marks element i valid. Without a bitmap every element is
// already valid and the call is a no-op.
func (a *IntegerArray[T]) SetValid(i int) {
	if a.validity == nil {
		return
	}
	bitutil.Clear(a.validity.Bytes(), a.offset+i)
}

// HasNulls reports whether any element is null, stopping at the first one.
func (a *IntegerArray[T]) HasNulls() bool {
	if a.validity == nil {
		return false
	}
	bm := a.validity.Bytes()
	for i := 0; i < a.length; i++ {
		if bitutil.IsSet(bm, a.offset+i) {
			return true
		}
	}

	return false
}

// NullCount returns the number of null elements.
func (a *IntegerArray[T]) NullCount() int {
	if a.validity == nil {
		return 0
	}

	return bitutil.CountSetBits(a.validity.Bytes(), a.offset, a.length)
}

// AllocValidity attaches a fresh all-valid bitmap to an array built
// without one. It is a no-op when a bitmap already exists.
func (a *IntegerArray[T]) AllocValidity() error {
	if a.validity != nil {
		return nil
	}

	validity, err := memory.Allocate(a.allocator(), bitutil.BytesForBits(a.offset+a.length))
	if err != nil {
		return err
	}
	a.validity = validity

	return nil
}

// OwnsData reports whether the data buffer and the validity bitmap, when
// present, are exclusively owned and mutable.
func (a *IntegerArray[T]) OwnsData() bool {
	if !a.NumericArray.OwnsData() {
		return false
	}
	if a.validity != nil && (a.validity.UseCount() != 1 || !a.validity.Mutable()) {
		return false
	}

	return true
}

// Copy clones the window [offset, offset+length) of the logical elements
// into a brand-new array with freshly owned buffers. The validity bitmap,
// when present, is copied bit-exactly and rebased to offset zero.
//
// Returns ErrOutOfRange when the window exceeds the array's length.
func (a *IntegerArray[T]) Copy(offset, length int) (*IntegerArray[T], error) {
	if offset < 0 || length < 0 || offset+length > a.length {
		return nil, fmt.Errorf("%w: copy window [%d, %d) exceeds length %d",
			errs.ErrOutOfRange, offset, offset+length, a.length)
	}

	w := a.typ.ByteWidth()
	data, err := a.data.Copy((a.offset+offset)*w, length*w)
	if err != nil {
		return nil, err
	}

	var validity *memory.Buffer
	if a.validity != nil {
		validity, err = memory.Allocate(a.allocator(), bitutil.BytesForBits(length))
		if err != nil {
			data.Release()
			return nil, err
		}
		bitutil.CopyBits(validity.Bytes(), 0, a.validity.Bytes(), a.offset+offset, length)
	}

	out := &IntegerArray[T]{
		NumericArray: NumericArray[T]{typ: a.typ, data: data, length: length},
		validity:     validity,
	}
	out.refs.Store(1)

	return out, nil
}

// CopyRange implements Array in terms of Copy.
func (a *IntegerArray[T]) CopyRange(offset, length int) (Array, error) {
	out, err := a.Copy(offset, length)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// EnsureMutable establishes exclusively owned, mutable buffers. When the
// data buffer or the bitmap is shared or immutable, both are cloned over
// the logical window so the pair keeps a single shared offset, which
// resets to zero.
func (a *IntegerArray[T]) EnsureMutable() (changed bool, err error) {
	needData := a.data.UseCount() > 1 || !a.data.Mutable()
	needValidity := a.validity != nil && (a.validity.UseCount() > 1 || !a.validity.Mutable())
	if !needData && !needValidity {
		return false, nil
	}

	w := a.typ.ByteWidth()
	data, err := a.data.Copy(a.offset*w, a.length*w)
	if err != nil {
		return false, err
	}

	if a.validity != nil {
		validity, err := memory.Allocate(a.allocator(), bitutil.BytesForBits(a.length))
		if err != nil {
			data.Release()
			return false, err
		}
		bitutil.CopyBits(validity.Bytes(), 0, a.validity.Bytes(), a.offset, a.length)
		a.validity.Release()
		a.validity = validity
	}

	a.data.Release()
	a.data = data
	a.offset = 0

	return true, nil
}

// GetScalar returns the boxed value of element i, or nil when the element
// is null. Boolean-typed arrays box their elements as bool.
func (a *IntegerArray[T]) GetScalar(i int) any {
	if a.IsNull(i) {
		return nil
	}
	v := a.Value(i)
	if a.typ.Kind() == dtype.KindBool {
		return v != 0
	}

	return v
}

// SetScalar stores a boxed value into element i, nil meaning null. Storing
// nil into an array without a bitmap attaches one first. The element type
// must match exactly; boolean-typed arrays accept bool.
//
// The target buffers must be exclusively owned and mutable; SetScalar
// fails with ErrImmutableBuffer or ErrSharedBuffer instead of cloning.
func (a *IntegerArray[T]) SetScalar(i int, v any) error {
	if i < 0 || i >= a.length {
		return fmt.Errorf("%w: index %d out of range [0, %d)", errs.ErrOutOfRange, i, a.length)
	}
	if err := a.checkMutable(); err != nil {
		return err
	}

	if v == nil {
		if err := a.AllocValidity(); err != nil {
			return err
		}

		return a.SetNull(i)
	}

	if a.typ.Kind() == dtype.KindBool {
		b, ok := v.(bool)
		if !ok {
			return fmt.Errorf("%w: cannot store %T into %s array", errs.ErrTypeMismatch, v, a.typ.Name())
		}
		if b {
			a.Values()[i] = 1
		} else {
			a.Values()[i] = 0
		}
		a.SetValid(i)

		return nil
	}

	tv, ok := v.(T)
	if !ok {
		return fmt.Errorf("%w: cannot store %T into %s array", errs.ErrTypeMismatch, v, a.typ.Name())
	}
	a.Values()[i] = tv
	a.SetValid(i)

	return nil
}

// Release drops one handle. The last release also releases the data buffer
// and the validity bitmap.
func (a *IntegerArray[T]) Release() {
	if a.refs.Add(-1) != 0 {
		return
	}
	if a.data != nil {
		a.data.Release()
		a.data = nil
	}
	if a.validity != nil {
		a.validity.Release()
		a.validity = nil
	}
}

func (a *IntegerArray[T]) checkMutable() error {
	if !a.data.Mutable() || (a.validity != nil && !a.validity.Mutable()) {
		return fmt.Errorf("%w: underlying buffer is immutable", errs.ErrImmutableBuffer)
	}
	if a.data.UseCount() > 1 || (a.validity != nil && a.validity.UseCount() > 1) {
		return fmt.Errorf("%w: underlying buffer is shared", errs.ErrSharedBuffer)
	}

	return nil
}

var _ Array = (*IntegerArray[int32])(nil)
