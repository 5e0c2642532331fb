package array

import (
	"fmt"
	"math"

	"github.com/arloliu/colmem/dtype"
	"github.com/arloliu/colmem/errs"
	"github.com/arloliu/colmem/internal/bitutil"
	"github.com/arloliu/colmem/internal/cast"
	"github.com/arloliu/colmem/memory"
)

// Operand is the read side of a typed array as seen by the arithmetic
// kernels. Nullable tells the kernel how the operand represents nulls:
// a nullable operand tracks them in a bitmap consulted through IsNull,
// a non-nullable one encodes them as NaN values that propagate through
// the arithmetic itself.
type Operand[R dtype.Numeric] interface {
	Len() int
	Values() []R
	IsNull(i int) bool
	Nullable() bool
}

// AddInPlace adds src into dst element-wise, converting src elements to
// dst's element type and truncating to the shorter operand's length.
// dst's buffers are made exclusively owned first, so other arrays sharing
// them keep their values. Null positions merge: an element is null in the
// result when it is null in either operand, and dst gains a validity
// bitmap when src carries nulls and dst has none. Elements of dst beyond
// the combined range keep their values and validity.
func AddInPlace[L, R dtype.Integer](dst *IntegerArray[L], src *IntegerArray[R]) error {
	n := min(dst.Len(), src.Len())
	if _, err := dst.EnsureMutable(); err != nil {
		return err
	}

	dvals, svals := dst.Values(), src.Values()
	for i := 0; i < n; i++ {
		dvals[i] += L(svals[i])
	}

	if src.HasNulls() {
		if err := dst.AllocValidity(); err != nil {
			return err
		}
		bm := dst.validity.Bytes()
		for i := 0; i < n; i++ {
			if src.IsNull(i) {
				bitutil.Set(bm, dst.offset+i)
			}
		}
	}

	return nil
}

// Add returns a new array holding left + right element-wise in left's
// element type. Neither operand is modified.
func Add[L, R dtype.Integer](left *IntegerArray[L], right *IntegerArray[R]) (*IntegerArray[L], error) {
	out, err := left.Copy(0, left.Len())
	if err != nil {
		return nil, err
	}
	if err := AddInPlace(out, right); err != nil {
		out.Release()
		return nil, err
	}

	return out, nil
}

// Divide returns left / right element-wise as a floating-point array,
// truncating to the shorter operand's length. The result element type
// comes from dtype.DivisionResult: float32 when both operand types fit
// exactly in a float32, float64 otherwise. An element that is null on
// either side divides to NaN; division by zero follows IEEE semantics.
//
// Returns ErrTypeMismatch when either operand is not an integer type.
func Divide[L, R dtype.Integer](left *IntegerArray[L], right *IntegerArray[R]) (Array, error) {
	switch dtype.DivisionResult(left.typ.Kind(), right.typ.Kind()) {
	case dtype.KindFloat32:
		out, err := divideInto[float32](left, right)
		if err != nil {
			return nil, err
		}

		return out, nil
	case dtype.KindFloat64:
		out, err := divideInto[float64](left, right)
		if err != nil {
			return nil, err
		}

		return out, nil
	default:
		return nil, fmt.Errorf("%w: cannot divide %s by %s", errs.ErrTypeMismatch, left.typ.Name(), right.typ.Name())
	}
}

func divideInto[F dtype.Float, L, R dtype.Integer](left *IntegerArray[L], right *IntegerArray[R]) (*FloatingArray[F], error) {
	n := min(left.Len(), right.Len())

	data, err := memory.Allocate(left.allocator(), n*cast.Sizeof[F]())
	if err != nil {
		return nil, err
	}

	out := &FloatingArray[F]{
		NumericArray: NumericArray[F]{typ: dtype.Of[F](), data: data, length: n},
	}
	out.refs.Store(1)

	vals := out.Values()
	lvals, rvals := left.Values(), right.Values()
	nan := F(math.NaN())
	for i := 0; i < n; i++ {
		if left.IsNull(i) || right.IsNull(i) {
			vals[i] = nan
			continue
		}
		vals[i] = F(lvals[i]) / F(rvals[i])
	}

	return out, nil
}

// AddFloatInPlace adds src into dst element-wise, converting src elements
// to dst's element type and truncating to the shorter operand's length.
// dst's buffer is made exclusively owned first. A position that is null
// in a nullable src becomes NaN in dst; NaN in a floating-point src
// propagates through the addition itself.
func AddFloatInPlace[L dtype.Float, R dtype.Numeric](dst *FloatingArray[L], src Operand[R]) error {
	return evalFloatBinary(dst, src, func(l, r L) L { return l + r })
}

// AddFloat returns a new array holding left + src element-wise in left's
// element type. Neither operand is modified.
func AddFloat[L dtype.Float, R dtype.Numeric](left *FloatingArray[L], src Operand[R]) (*FloatingArray[L], error) {
	out, err := left.Copy(0, left.Len())
	if err != nil {
		return nil, err
	}
	if err := AddFloatInPlace(out, src); err != nil {
		out.Release()
		return nil, err
	}

	return out, nil
}

// DivideFloatInPlace divides dst by src element-wise, converting src
// elements to dst's element type and truncating to the shorter operand's
// length. dst's buffer is made exclusively owned first. A position that
// is null in a nullable src becomes NaN in dst.
func DivideFloatInPlace[L dtype.Float, R dtype.Numeric](dst *FloatingArray[L], src Operand[R]) error {
	return evalFloatBinary(dst, src, func(l, r L) L { return l / r })
}

// DivideFloat returns a new array holding left / src element-wise in
// left's element type. Neither operand is modified.
func DivideFloat[L dtype.Float, R dtype.Numeric](left *FloatingArray[L], src Operand[R]) (*FloatingArray[L], error) {
	out, err := left.Copy(0, left.Len())
	if err != nil {
		return nil, err
	}
	if err := DivideFloatInPlace(out, src); err != nil {
		out.Release()
		return nil, err
	}

	return out, nil
}

func evalFloatBinary[L dtype.Float, R dtype.Numeric](dst *FloatingArray[L], src Operand[R], op func(L, L) L) error {
	n := min(dst.Len(), src.Len())
	if _, err := dst.EnsureMutable(); err != nil {
		return err
	}

	dvals, svals := dst.Values(), src.Values()
	if src.Nullable() {
		nan := L(math.NaN())
		for i := 0; i < n; i++ {
			if src.IsNull(i) {
				dvals[i] = nan
				continue
			}
			dvals[i] = op(dvals[i], L(svals[i]))
		}

		return nil
	}

	for i := 0; i < n; i++ {
		dvals[i] = op(dvals[i], L(svals[i]))
	}

	return nil
}
