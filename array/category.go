package array

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/arloliu/colmem/dtype"
	"github.com/arloliu/colmem/errs"
)

// CategoryType is the logical type of a dictionary-encoded array. It
// holds a view of the category values; two category types are equal only
// when they share the same underlying dictionary array and window, since
// codes are indices into that exact window.
type CategoryType struct {
	categories *ArrayView
}

// NewCategoryType creates a category type over a dictionary of category
// values. The type takes over the caller's handle on the view.
func NewCategoryType(categories *ArrayView) *CategoryType {
	return &CategoryType{categories: categories}
}

// Kind returns dtype.KindCategory.
func (t *CategoryType) Kind() dtype.Kind {
	return dtype.KindCategory
}

// Name returns the type name, including the category element type.
func (t *CategoryType) Name() string {
	return "category<" + t.categories.Type().Name() + ">"
}

// Equals reports whether other is a category type over the same
// dictionary array and window.
func (t *CategoryType) Equals(other dtype.DataType) bool {
	o, ok := other.(*CategoryType)
	if !ok {
		return false
	}

	return t.categories.Data() == o.categories.Data() &&
		t.categories.Offset() == o.categories.Offset() &&
		t.categories.Len() == o.categories.Len()
}

// Categories returns the dictionary view.
func (t *CategoryType) Categories() *ArrayView {
	return t.categories
}

// Release drops the type's handle on the dictionary. Arrays of this type
// share the dictionary without retaining it, so release the type only
// after the arrays are done.
func (t *CategoryType) Release() {
	t.categories.Release()
	t.categories = nil
}

var _ dtype.DataType = (*CategoryType)(nil)

// CategoryArray is a dictionary-encoded array: an integer code per
// element indexing into the category values of its type. Codes are
// immutable once built; nulls live in the code array's validity bitmap.
type CategoryArray struct {
	refs  atomic.Int64
	typ   *CategoryType
	codes *ArrayView
}

// NewCategory creates a category array from a view of integer codes and
// a category type. The array takes over the caller's handle on codes and
// shares typ without retaining it.
//
// Returns ErrTypeMismatch when the codes are not an integer type.
func NewCategory(codes *ArrayView, typ *CategoryType) (*CategoryArray, error) {
	if !codes.Type().Kind().IsInteger() {
		return nil, fmt.Errorf("%w: category codes must be integers, got %s", errs.ErrTypeMismatch, codes.Type().Name())
	}

	arr := &CategoryArray{typ: typ, codes: codes}
	arr.refs.Store(1)

	return arr, nil
}

// Type returns the array's category type.
func (a *CategoryArray) Type() dtype.DataType {
	return a.typ
}

// CategoryType returns the array's category type without the DataType
// indirection.
func (a *CategoryArray) CategoryType() *CategoryType {
	return a.typ
}

// Codes returns the view of integer codes.
func (a *CategoryArray) Codes() *ArrayView {
	return a.codes
}

// Categories returns the dictionary view shared through the array's type.
func (a *CategoryArray) Categories() *ArrayView {
	return a.typ.Categories()
}

// Len returns the number of elements.
func (a *CategoryArray) Len() int {
	return a.codes.Len()
}

// Offset returns zero; the window lives in the codes view.
func (a *CategoryArray) Offset() int {
	return 0
}

// IsNull reports whether element i is null.
func (a *CategoryArray) IsNull(i int) bool {
	return a.codes.IsNull(i)
}

// NullCount returns the number of null elements.
func (a *CategoryArray) NullCount() int {
	return a.codes.NullCount()
}

// HasNulls reports whether any element is null.
func (a *CategoryArray) HasNulls() bool {
	return a.codes.HasNulls()
}

// OwnsData reports whether the code buffers are exclusively owned. The
// dictionary is shared by design and not counted.
func (a *CategoryArray) OwnsData() bool {
	return a.codes.OwnsData()
}

// CopyRange clones the window [offset, offset+length) of the codes into
// a new category array sharing this array's type.
//
// Returns ErrOutOfRange when the window exceeds the array's length.
func (a *CategoryArray) CopyRange(offset, length int) (Array, error) {
	if offset < 0 || length < 0 || offset+length > a.codes.length {
		return nil, fmt.Errorf("%w: copy window [%d, %d) exceeds length %d",
			errs.ErrOutOfRange, offset, offset+length, a.codes.length)
	}

	clone, err := a.codes.arr.CopyRange(a.codes.offset+offset, length)
	if err != nil {
		return nil, err
	}

	out := &CategoryArray{typ: a.typ, codes: NewView(clone)}
	out.refs.Store(1)

	return out, nil
}

// EnsureMutable always fails; category arrays are immutable once built.
func (a *CategoryArray) EnsureMutable() (changed bool, err error) {
	return false, fmt.Errorf("%w: category arrays are immutable", errs.ErrInvalid)
}

// GetScalar returns the boxed category value of element i, or nil when
// the element is null. The code must index a valid category; Validate
// checks that for untrusted codes.
func (a *CategoryArray) GetScalar(i int) any {
	if a.codes.IsNull(i) {
		return nil
	}
	code, ok := a.codeAt(i)
	if !ok {
		return nil
	}

	return a.typ.Categories().GetScalar(code)
}

// SetScalar always fails; category arrays are immutable once built.
func (a *CategoryArray) SetScalar(i int, v any) error {
	return fmt.Errorf("%w: category arrays are immutable", errs.ErrInvalid)
}

// Validate checks that every non-null code indexes a category.
//
// Returns ErrInvalidCategoryCode on the first code outside
// [0, Categories().Len()).
func (a *CategoryArray) Validate() error {
	limit := a.typ.Categories().Len()
	for i := 0; i < a.codes.Len(); i++ {
		if a.codes.IsNull(i) {
			continue
		}
		code, ok := a.codeAt(i)
		if !ok || code < 0 || code >= limit {
			return fmt.Errorf("%w: code at element %d does not index the %d categories",
				errs.ErrInvalidCategoryCode, i, limit)
		}
	}

	return nil
}

// Retain adds a handle to the array.
func (a *CategoryArray) Retain() {
	a.refs.Add(1)
}

// Release drops one handle. The last release also releases the codes
// view; the dictionary stays with the array's type.
func (a *CategoryArray) Release() {
	if a.refs.Add(-1) != 0 {
		return
	}
	a.codes.Release()
	a.codes = nil
}

// RefCount returns the current number of handles.
func (a *CategoryArray) RefCount() int64 {
	return a.refs.Load()
}

// codeAt unboxes the integer code of element i.
func (a *CategoryArray) codeAt(i int) (int, bool) {
	switch c := a.codes.GetScalar(i).(type) {
	case int8:
		return int(c), true
	case int16:
		return int(c), true
	case int32:
		return int(c), true
	case int64:
		return int(c), true
	case uint8:
		return int(c), true
	case uint16:
		return int(c), true
	case uint32:
		return int(c), true
	case uint64:
		if c > math.MaxInt64 {
			return 0, false
		}

		return int(c), true
	default:
		return 0, false
	}
}

var _ Array = (*CategoryArray)(nil)
