package array

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/colmem/dtype"
	"github.com/arloliu/colmem/errs"
	"github.com/arloliu/colmem/memory"
)

func TestDictEncodeInteger_FirstAppearanceOrder(t *testing.T) {
	input := []int32{5, 3, 5, 7, 3, 5}
	arr, err := IntegerFromSlice(input, nil)
	require.NoError(t, err)
	defer arr.Release()

	cat, err := DictEncodeInteger(arr)
	require.NoError(t, err)

	require.Equal(t, 6, cat.Len())
	require.Equal(t, dtype.KindCategory, cat.Type().Kind())
	require.Equal(t, "category<int32>", cat.Type().Name())
	require.NoError(t, cat.Validate())
	require.False(t, cat.HasNulls())

	// Categories keep first-appearance order.
	cats := cat.Categories()
	require.Equal(t, 3, cats.Len())
	require.Equal(t, int32(5), cats.GetScalar(0))
	require.Equal(t, int32(3), cats.GetScalar(1))
	require.Equal(t, int32(7), cats.GetScalar(2))

	require.Equal(t, int32(0), cat.Codes().GetScalar(0))
	require.Equal(t, int32(1), cat.Codes().GetScalar(1))
	require.Equal(t, int32(2), cat.Codes().GetScalar(3))

	// Decoding reproduces the input.
	for i, want := range input {
		require.Equal(t, want, cat.GetScalar(i))
	}

	typ := cat.CategoryType()
	cat.Release()
	typ.Release()
}

func TestDictEncodeInteger_NullsContributeNoCategory(t *testing.T) {
	arr, err := IntegerFromSlice([]int32{5, 3, 7}, []bool{true, false, true})
	require.NoError(t, err)
	defer arr.Release()

	cat, err := DictEncodeInteger(arr)
	require.NoError(t, err)

	require.Equal(t, 2, cat.Categories().Len())
	require.Equal(t, int32(5), cat.Categories().GetScalar(0))
	require.Equal(t, int32(7), cat.Categories().GetScalar(1))

	require.True(t, cat.HasNulls())
	require.Equal(t, 1, cat.NullCount())
	require.True(t, cat.IsNull(1))
	require.Nil(t, cat.GetScalar(1))
	require.Equal(t, int32(5), cat.GetScalar(0))
	require.Equal(t, int32(7), cat.GetScalar(2))

	typ := cat.CategoryType()
	cat.Release()
	typ.Release()
}

func TestDictEncodeFloating_NaNIsNull(t *testing.T) {
	arr, err := FloatingFromSlice([]float64{1.5, math.NaN(), 1.5, 2.5}, nil)
	require.NoError(t, err)
	defer arr.Release()

	cat, err := DictEncodeFloating(arr)
	require.NoError(t, err)

	require.Equal(t, "category<float64>", cat.Type().Name())
	require.Equal(t, 2, cat.Categories().Len())
	require.True(t, cat.IsNull(1))
	require.Nil(t, cat.GetScalar(1))
	require.Equal(t, float64(1.5), cat.GetScalar(0))
	require.Equal(t, float64(1.5), cat.GetScalar(2))
	require.Equal(t, float64(2.5), cat.GetScalar(3))

	typ := cat.CategoryType()
	cat.Release()
	typ.Release()
}

func TestCategoryType_Equals(t *testing.T) {
	arr, err := IntegerFromSlice([]int32{1, 2, 1}, nil)
	require.NoError(t, err)
	defer arr.Release()

	c1, err := DictEncodeInteger(arr)
	require.NoError(t, err)
	c2, err := DictEncodeInteger(arr)
	require.NoError(t, err)

	// Codes are only comparable within one dictionary instance.
	require.True(t, c1.Type().Equals(c1.Type()))
	require.False(t, c1.Type().Equals(c2.Type()))
	require.False(t, c1.Type().Equals(dtype.Int32))

	t1, t2 := c1.CategoryType(), c2.CategoryType()
	c1.Release()
	c2.Release()
	t1.Release()
	t2.Release()
}

func TestCategoryArray_CopyRangeSharesType(t *testing.T) {
	input := []int32{5, 3, 5, 7}
	arr, err := IntegerFromSlice(input, nil)
	require.NoError(t, err)
	defer arr.Release()

	cat, err := DictEncodeInteger(arr)
	require.NoError(t, err)

	out, err := cat.CopyRange(1, 3)
	require.NoError(t, err)
	cp := out.(*CategoryArray)

	require.Same(t, cat.CategoryType(), cp.CategoryType())
	require.Equal(t, 3, cp.Len())
	for i, want := range input[1:] {
		require.Equal(t, want, cp.GetScalar(i))
	}

	_, err = cat.CopyRange(2, 9)
	require.ErrorIs(t, err, errs.ErrOutOfRange)

	typ := cat.CategoryType()
	cp.Release()
	cat.Release()
	typ.Release()
}

func TestCategoryArray_Immutable(t *testing.T) {
	arr, err := IntegerFromSlice([]int32{1, 2}, nil)
	require.NoError(t, err)
	defer arr.Release()

	cat, err := DictEncodeInteger(arr)
	require.NoError(t, err)

	require.ErrorIs(t, cat.SetScalar(0, int32(9)), errs.ErrInvalid)

	changed, err := cat.EnsureMutable()
	require.ErrorIs(t, err, errs.ErrInvalid)
	require.False(t, changed)

	typ := cat.CategoryType()
	cat.Release()
	typ.Release()
}

func TestCategoryArray_ValidateCatchesBadCodes(t *testing.T) {
	codes, err := IntegerFromSlice([]int32{0, 5, 1}, nil)
	require.NoError(t, err)
	cats, err := IntegerFromSlice([]int32{10, 20}, nil)
	require.NoError(t, err)

	typ := NewCategoryType(NewView(cats))
	cat, err := NewCategory(NewView(codes), typ)
	require.NoError(t, err)

	require.ErrorIs(t, cat.Validate(), errs.ErrInvalidCategoryCode)

	cat.Release()
	typ.Release()
}

func TestNewCategory_RejectsNonIntegerCodes(t *testing.T) {
	cats, err := IntegerFromSlice([]int32{10, 20}, nil)
	require.NoError(t, err)
	typ := NewCategoryType(NewView(cats))
	defer typ.Release()

	fcodes, err := FloatingFromSlice([]float64{0, 1}, nil)
	require.NoError(t, err)
	fview := NewView(fcodes)
	_, err = NewCategory(fview, typ)
	require.ErrorIs(t, err, errs.ErrTypeMismatch)
	fview.Release()

	bcodes, err := BooleanFromSlice([]bool{true, false}, nil)
	require.NoError(t, err)
	bview := NewView(bcodes)
	_, err = NewCategory(bview, typ)
	require.ErrorIs(t, err, errs.ErrTypeMismatch)
	bview.Release()
}

func TestCategoryArray_DictionaryOutlivesArray(t *testing.T) {
	tr := memory.NewTrackingAllocator(nil)

	arr, err := IntegerFromSlice([]int32{4, 4, 2}, nil, WithAllocator(tr))
	require.NoError(t, err)

	cat, err := DictEncodeInteger(arr, WithAllocator(tr))
	require.NoError(t, err)
	arr.Release()

	typ := cat.CategoryType()
	cat.Release()

	// Releasing the array drops the codes but not the dictionary, which
	// belongs to the type.
	require.Equal(t, 2, typ.Categories().Len())
	require.Equal(t, int32(4), typ.Categories().GetScalar(0))
	require.Greater(t, tr.AllocatedBytes(), int64(0))

	typ.Release()
	require.Equal(t, int64(0), tr.AllocatedBytes())
}
