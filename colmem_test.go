package colmem

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/colmem/array"
	"github.com/arloliu/colmem/dtype"
	"github.com/arloliu/colmem/memory"
)

// TestFromInts verifies the top-level integer constructor wires values,
// validity and options through to the array package.
func TestFromInts(t *testing.T) {
	arr, err := FromInts([]int32{1, 2, 3}, []bool{true, false, true})
	require.NoError(t, err)
	defer arr.Release()

	require.Equal(t, 3, arr.Len())
	require.True(t, arr.Type().Equals(dtype.Int32))
	require.True(t, arr.IsNull(1))
	require.Equal(t, int32(3), arr.GetScalar(2))

	tr := memory.NewTrackingAllocator(nil)
	tracked, err := FromInts([]uint16{7}, nil, array.WithAllocator(tr))
	require.NoError(t, err)
	require.Greater(t, tr.AllocatedBytes(), int64(0))
	tracked.Release()
	require.Equal(t, int64(0), tr.AllocatedBytes())
}

// TestFromFloats verifies NaN nulls survive the top-level constructor.
func TestFromFloats(t *testing.T) {
	arr, err := FromFloats([]float64{1.5, 2.5}, []bool{true, false})
	require.NoError(t, err)
	defer arr.Release()

	require.True(t, arr.Type().Equals(dtype.Float64))
	require.True(t, arr.IsNull(1))
	require.Equal(t, float64(1.5), arr.GetScalar(0))
}

// TestFromBools verifies boolean boxing through the top-level constructor.
func TestFromBools(t *testing.T) {
	arr, err := FromBools([]bool{true, false}, nil)
	require.NoError(t, err)
	defer arr.Release()

	require.True(t, arr.Type().Equals(dtype.Bool))
	require.Equal(t, true, arr.GetScalar(0))
	require.Equal(t, false, arr.GetScalar(1))
}

// TestViewOf verifies the view takes over the array handle and supports
// the slice-then-split flow end to end.
func TestViewOf(t *testing.T) {
	arr, err := FromFloats([]float64{0, 1, 2, 3, 4, 5, 6, 7}, nil)
	require.NoError(t, err)

	view := ViewOf(arr)
	defer view.Release()
	require.Equal(t, int64(1), view.RefCount())

	slice := view.SliceRange(2, 4)
	defer slice.Release()
	require.Equal(t, int64(2), view.RefCount())

	changed, err := slice.EnsureMutable()
	require.NoError(t, err)
	require.True(t, changed)
	require.NoError(t, slice.SetScalar(0, float64(99)))

	require.Equal(t, float64(2), view.GetScalar(2))
	require.Equal(t, float64(99), slice.GetScalar(0))
}
