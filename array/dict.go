package array

import (
	"github.com/arloliu/colmem/dtype"
	"github.com/arloliu/colmem/internal/cast"
	"github.com/arloliu/colmem/internal/memo"
)

// DictEncodeInteger dictionary-encodes an integer array. Categories keep
// their order of first appearance; null elements become null codes and
// contribute no category.
func DictEncodeInteger[T dtype.Integer](arr *IntegerArray[T], opts ...BuilderOption) (*CategoryArray, error) {
	table := memo.NewTable(arr.typ.ByteWidth())
	n := arr.Len()
	vals := arr.Values()

	codes := make([]int32, n)
	var valid []bool
	if arr.HasNulls() {
		valid = make([]bool, n)
	}

	for i := 0; i < n; i++ {
		if arr.IsNull(i) {
			continue
		}
		idx, _ := table.GetOrInsert(cast.ToBytes(vals[i : i+1]))
		codes[i] = idx
		if valid != nil {
			valid[i] = true
		}
	}

	categories, err := IntegerFromSlice(cast.Slice[byte, T](table.Keys()), nil, opts...)
	if err != nil {
		return nil, err
	}
	codesArr, err := IntegerFromSlice(codes, valid, opts...)
	if err != nil {
		categories.Release()
		return nil, err
	}

	return NewCategory(NewView(codesArr), NewCategoryType(NewView(categories)))
}

// DictEncodeFloating dictionary-encodes a floating-point array. NaN
// elements are null, so they become null codes and contribute no
// category. Category values compare by bit pattern, which keeps -0 and 0
// distinct.
func DictEncodeFloating[T dtype.Float](arr *FloatingArray[T], opts ...BuilderOption) (*CategoryArray, error) {
	table := memo.NewTable(arr.typ.ByteWidth())
	n := arr.Len()
	vals := arr.Values()

	codes := make([]int32, n)
	var valid []bool
	if arr.HasNulls() {
		valid = make([]bool, n)
	}

	for i := 0; i < n; i++ {
		if arr.IsNull(i) {
			continue
		}
		idx, _ := table.GetOrInsert(cast.ToBytes(vals[i : i+1]))
		codes[i] = idx
		if valid != nil {
			valid[i] = true
		}
	}

	categories, err := FloatingFromSlice(cast.Slice[byte, T](table.Keys()), nil, opts...)
	if err != nil {
		return nil, err
	}
	codesArr, err := IntegerFromSlice(codes, valid, opts...)
	if err != nil {
		categories.Release()
		return nil, err
	}

	return NewCategory(NewView(codesArr), NewCategoryType(NewView(categories)))
}
