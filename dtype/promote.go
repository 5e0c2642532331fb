package dtype

// maxExactFloat32 is the largest integer magnitude a float32 represents
// exactly (2^24). Integer kinds whose range stays at or below it divide
// safely into a float32; wider kinds need a float64.
const maxExactFloat32 = 1 << 24

// DivisionResult returns the floating-point kind produced by dividing two
// integer kinds. The result is KindFloat64 when either operand's maximum
// magnitude exceeds what a float32 represents exactly, KindFloat32
// otherwise. This is a conservative width rule, not an exact-result
// guarantee: quotients are still subject to ordinary floating-point
// rounding.
//
// Returns KindInvalid when either kind is not an integer.
func DivisionResult(left, right Kind) Kind {
	if !left.IsInteger() || !right.IsInteger() {
		return KindInvalid
	}

	if maxMagnitude(left) > maxExactFloat32 || maxMagnitude(right) > maxExactFloat32 {
		return KindFloat64
	}

	return KindFloat32
}

// maxMagnitude returns the largest positive value an integer kind can hold.
func maxMagnitude(k Kind) uint64 {
	switch k {
	case KindInt8:
		return 1<<7 - 1
	case KindUint8:
		return 1<<8 - 1
	case KindInt16:
		return 1<<15 - 1
	case KindUint16:
		return 1<<16 - 1
	case KindInt32:
		return 1<<31 - 1
	case KindUint32:
		return 1<<32 - 1
	case KindInt64:
		return 1<<63 - 1
	case KindUint64:
		return 1<<64 - 1
	default:
		return 0
	}
}
