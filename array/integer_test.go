package array

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/colmem/dtype"
	"github.com/arloliu/colmem/errs"
	"github.com/arloliu/colmem/internal/bitutil"
	"github.com/arloliu/colmem/internal/cast"
	"github.com/arloliu/colmem/memory"
)

func newInt32Buffer(t *testing.T, values []int32) *memory.Buffer {
	t.Helper()

	buf, err := memory.Allocate(nil, len(values)*4)
	require.NoError(t, err)
	copy(cast.Slice[byte, int32](buf.Bytes()), values)

	return buf
}

func TestNewInteger_Validation(t *testing.T) {
	buf, err := memory.Allocate(nil, 16)
	require.NoError(t, err)
	defer buf.Release()

	_, err = NewInteger[int32](nil, nil, 0, 4)
	require.ErrorIs(t, err, errs.ErrNilBuffer)

	_, err = NewInteger[int32](buf, nil, -1, 4)
	require.ErrorIs(t, err, errs.ErrOutOfRange)

	_, err = NewInteger[int32](buf, nil, 0, -1)
	require.ErrorIs(t, err, errs.ErrOutOfRange)

	_, err = NewInteger[int32](buf, nil, 2, 3)
	require.ErrorIs(t, err, errs.ErrOutOfRange)

	// 13 bits of validity do not fit in one byte.
	validity, err := memory.Allocate(nil, 1)
	require.NoError(t, err)
	defer validity.Release()

	_, err = NewInteger[int8](buf, validity, 5, 8)
	require.ErrorIs(t, err, errs.ErrOutOfRange)
}

func TestNewInteger_RetainsBuffers(t *testing.T) {
	buf := newInt32Buffer(t, []int32{1, 2, 3, 4})
	validity, err := memory.Allocate(nil, 1)
	require.NoError(t, err)

	arr, err := NewInteger[int32](buf, validity, 0, 4)
	require.NoError(t, err)
	require.Equal(t, int64(2), buf.UseCount())
	require.Equal(t, int64(2), validity.UseCount())
	require.Equal(t, int64(1), arr.RefCount())

	arr.Release()
	require.Equal(t, int64(1), buf.UseCount())
	require.Equal(t, int64(1), validity.UseCount())

	buf.Release()
	validity.Release()
}

func TestIntegerFromSlice_Basics(t *testing.T) {
	arr, err := IntegerFromSlice([]int32{1, 2, 3, 4}, nil)
	require.NoError(t, err)
	defer arr.Release()

	require.Equal(t, 4, arr.Len())
	require.Equal(t, 0, arr.Offset())
	require.Equal(t, []int32{1, 2, 3, 4}, arr.Values())
	require.True(t, arr.Type().Equals(dtype.Int32))
	require.True(t, arr.OwnsData())
	require.False(t, arr.HasNulls())
	require.Equal(t, 0, arr.NullCount())
	require.Nil(t, arr.Validity())
	require.Equal(t, int32(3), arr.GetScalar(2))
}

func TestIntegerFromSlice_Nulls(t *testing.T) {
	arr, err := IntegerFromSlice([]int32{10, 20, 30, 40}, []bool{true, false, true, true})
	require.NoError(t, err)
	defer arr.Release()

	require.True(t, arr.HasNulls())
	require.Equal(t, 1, arr.NullCount())
	require.True(t, arr.IsNull(1))
	require.False(t, arr.IsNull(0))
	require.Nil(t, arr.GetScalar(1))
	require.Equal(t, int32(30), arr.GetScalar(2))
}

func TestIntegerFromSlice_LengthMismatch(t *testing.T) {
	_, err := IntegerFromSlice([]int32{1, 2, 3}, []bool{true, false})
	require.ErrorIs(t, err, errs.ErrLengthMismatch)
}

func TestIntegerArray_BitmapPolarity(t *testing.T) {
	arr, err := IntegerFromSlice([]int32{10, 20, 30}, []bool{true, false, true})
	require.NoError(t, err)
	defer arr.Release()

	// A set bit marks a null element; only element 1 is null.
	require.Equal(t, byte(0b010), arr.Validity().Bytes()[0])

	// A fresh zeroed bitmap marks every element valid.
	clean, err := IntegerFromSlice([]int32{1, 2, 3}, nil)
	require.NoError(t, err)
	defer clean.Release()

	require.NoError(t, clean.AllocValidity())
	require.False(t, clean.HasNulls())
	require.Equal(t, 0, clean.NullCount())
}

func TestIntegerArray_SetNullSetValid(t *testing.T) {
	arr, err := IntegerFromSlice([]int32{1, 2, 3}, nil)
	require.NoError(t, err)
	defer arr.Release()

	err = arr.SetNull(0)
	require.ErrorIs(t, err, errs.ErrNoValidityBitmap)

	require.NoError(t, arr.AllocValidity())
	require.NoError(t, arr.SetNull(0))
	require.True(t, arr.IsNull(0))
	require.Equal(t, 1, arr.NullCount())

	arr.SetValid(0)
	require.False(t, arr.IsNull(0))
	require.Equal(t, 0, arr.NullCount())
}

func TestIntegerArray_CopyWindow(t *testing.T) {
	arr, err := IntegerFromSlice([]int32{1, 2, 3, 4}, []bool{true, true, false, true})
	require.NoError(t, err)
	defer arr.Release()

	cp, err := arr.Copy(1, 2)
	require.NoError(t, err)
	defer cp.Release()

	require.Equal(t, 2, cp.Len())
	require.Equal(t, 0, cp.Offset())
	require.True(t, cp.OwnsData())
	require.Equal(t, int32(2), cp.GetScalar(0))
	require.Nil(t, cp.GetScalar(1))
	require.Equal(t, 1, cp.NullCount())

	// The copy is independent of the source.
	cp.Values()[0] = 99
	require.Equal(t, int32(2), arr.Value(1))
}

func TestIntegerArray_CopyOutOfRange(t *testing.T) {
	arr, err := IntegerFromSlice([]int32{1, 2, 3, 4}, nil)
	require.NoError(t, err)
	defer arr.Release()

	tests := []struct {
		name           string
		offset, length int
	}{
		{name: "window past end", offset: 3, length: 2},
		{name: "negative offset", offset: -1, length: 2},
		{name: "negative length", offset: 0, length: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := arr.Copy(tt.offset, tt.length)
			require.ErrorIs(t, err, errs.ErrOutOfRange)
		})
	}

	full, err := arr.Copy(0, 4)
	require.NoError(t, err)
	full.Release()

	empty, err := arr.Copy(4, 0)
	require.NoError(t, err)
	require.Equal(t, 0, empty.Len())
	empty.Release()
}

func TestIntegerArray_OffsetWindow(t *testing.T) {
	buf := newInt32Buffer(t, []int32{0, 1, 2, 3, 4, 5, 6, 7})
	validity, err := memory.Allocate(nil, 1)
	require.NoError(t, err)
	bitutil.Set(validity.Bytes(), 4) // logical element 2 of the offset-2 window

	arr, err := NewInteger[int32](buf, validity, 2, 6)
	require.NoError(t, err)
	buf.Release()
	validity.Release()
	defer arr.Release()

	require.Equal(t, 6, arr.Len())
	require.Equal(t, 2, arr.Offset())
	require.Equal(t, int32(2), arr.Value(0))
	require.True(t, arr.IsNull(2))
	require.Equal(t, 1, arr.NullCount())

	// Copy rebases both the data window and the bitmap window.
	cp, err := arr.Copy(1, 3)
	require.NoError(t, err)
	defer cp.Release()

	require.Equal(t, int32(3), cp.Value(0))
	require.True(t, cp.IsNull(1))
	require.Nil(t, cp.GetScalar(1))
	require.Equal(t, int32(5), cp.Value(2))
}

func TestIntegerArray_EnsureMutableSharedBuffer(t *testing.T) {
	buf := newInt32Buffer(t, []int32{1, 2, 3, 4})

	a1, err := NewInteger[int32](buf, nil, 0, 4)
	require.NoError(t, err)
	a2, err := NewInteger[int32](buf, nil, 0, 4)
	require.NoError(t, err)
	buf.Release()
	defer a1.Release()
	defer a2.Release()

	require.False(t, a1.OwnsData())
	require.False(t, a2.OwnsData())

	changed, err := a1.EnsureMutable()
	require.NoError(t, err)
	require.True(t, changed)
	require.True(t, a1.OwnsData())
	require.True(t, a2.OwnsData())
	require.Equal(t, 0, a1.Offset())

	// The clone is private; writes no longer reach the other array.
	a1.Values()[0] = 99
	require.Equal(t, int32(99), a1.Value(0))
	require.Equal(t, int32(1), a2.Value(0))

	changed, err = a1.EnsureMutable()
	require.NoError(t, err)
	require.False(t, changed)
}

func TestIntegerArray_EnsureMutableOffsetWindow(t *testing.T) {
	buf := newInt32Buffer(t, []int32{0, 1, 2, 3, 4, 5, 6, 7})
	validity, err := memory.Allocate(nil, 1)
	require.NoError(t, err)
	bitutil.Set(validity.Bytes(), 4)

	arr, err := NewInteger[int32](buf, validity, 2, 6)
	require.NoError(t, err)
	defer arr.Release()

	// The local handles keep both buffers shared.
	changed, err := arr.EnsureMutable()
	require.NoError(t, err)
	require.True(t, changed)

	require.Equal(t, 0, arr.Offset())
	require.Equal(t, []int32{2, 3, 4, 5, 6, 7}, arr.Values())
	require.True(t, arr.IsNull(2))
	require.Equal(t, 1, arr.NullCount())
	require.Equal(t, int64(1), buf.UseCount())
	require.Equal(t, int64(1), validity.UseCount())

	buf.Release()
	validity.Release()
}

func TestIntegerArray_BorrowedBufferNeverWritten(t *testing.T) {
	raw := []int32{1, 2, 3, 4}
	buf := memory.Wrap(cast.ToBytes(raw))

	arr, err := NewInteger[int32](buf, nil, 0, 4)
	require.NoError(t, err)
	buf.Release()
	defer arr.Release()

	require.False(t, arr.OwnsData())

	err = arr.SetScalar(0, int32(9))
	require.ErrorIs(t, err, errs.ErrImmutableBuffer)

	changed, err := arr.EnsureMutable()
	require.NoError(t, err)
	require.True(t, changed)
	require.True(t, arr.OwnsData())

	require.NoError(t, arr.SetScalar(0, int32(9)))
	require.Equal(t, int32(9), arr.Value(0))
	require.Equal(t, int32(1), raw[0])
}

func TestIntegerArray_SetScalar(t *testing.T) {
	arr, err := IntegerFromSlice([]int32{1, 2, 3}, nil)
	require.NoError(t, err)
	defer arr.Release()

	require.NoError(t, arr.SetScalar(1, int32(42)))
	require.Equal(t, int32(42), arr.Value(1))

	err = arr.SetScalar(1, int64(42))
	require.ErrorIs(t, err, errs.ErrTypeMismatch)

	err = arr.SetScalar(5, int32(1))
	require.ErrorIs(t, err, errs.ErrOutOfRange)

	// Storing nil attaches a bitmap on demand and marks the element null.
	require.Nil(t, arr.Validity())
	require.NoError(t, arr.SetScalar(1, nil))
	require.NotNil(t, arr.Validity())
	require.True(t, arr.IsNull(1))

	// Storing a value over a null element marks it valid again.
	require.NoError(t, arr.SetScalar(1, int32(7)))
	require.False(t, arr.IsNull(1))
	require.Equal(t, int32(7), arr.GetScalar(1))
}

func TestIntegerArray_SetScalarSharedBuffer(t *testing.T) {
	buf := newInt32Buffer(t, []int32{1, 2, 3, 4})

	a1, err := NewInteger[int32](buf, nil, 0, 4)
	require.NoError(t, err)
	a2, err := NewInteger[int32](buf, nil, 0, 4)
	require.NoError(t, err)
	buf.Release()
	defer a1.Release()
	defer a2.Release()

	err = a1.SetScalar(0, int32(9))
	require.ErrorIs(t, err, errs.ErrSharedBuffer)
	require.Equal(t, int32(1), a2.Value(0))
}

func TestIntegerArray_ReleaseFreesBuffers(t *testing.T) {
	tr := memory.NewTrackingAllocator(nil)

	arr, err := IntegerFromSlice([]int32{1, 2, 3, 4}, []bool{true, false, true, true}, WithAllocator(tr))
	require.NoError(t, err)
	require.Greater(t, tr.AllocatedBytes(), int64(0))

	arr.Retain()
	require.Equal(t, int64(2), arr.RefCount())

	arr.Release()
	require.Greater(t, tr.AllocatedBytes(), int64(0))

	arr.Release()
	require.Equal(t, int64(0), tr.AllocatedBytes())
}

func TestIntegerArray_All(t *testing.T) {
	arr, err := IntegerFromSlice([]int16{5, 6, 7}, nil)
	require.NoError(t, err)
	defer arr.Release()

	var got []int16
	for i, v := range arr.All() {
		require.Equal(t, len(got), i)
		got = append(got, v)
	}
	require.Equal(t, []int16{5, 6, 7}, got)
}
