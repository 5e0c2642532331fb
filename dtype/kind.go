package dtype

// Kind identifies the logical element type of an array. The set is closed;
// every array in colmem carries exactly one of these.
type Kind uint8

const (
	KindInvalid Kind = 0 // KindInvalid is the zero value and never describes a real array.

	KindUint8   Kind = 1  // KindUint8 represents unsigned 8-bit integers.
	KindInt8    Kind = 2  // KindInt8 represents signed 8-bit integers.
	KindUint16  Kind = 3  // KindUint16 represents unsigned 16-bit integers.
	KindInt16   Kind = 4  // KindInt16 represents signed 16-bit integers.
	KindUint32  Kind = 5  // KindUint32 represents unsigned 32-bit integers.
	KindInt32   Kind = 6  // KindInt32 represents signed 32-bit integers.
	KindUint64  Kind = 7  // KindUint64 represents unsigned 64-bit integers.
	KindInt64   Kind = 8  // KindInt64 represents signed 64-bit integers.
	KindBool    Kind = 9  // KindBool represents booleans stored one byte per element.
	KindFloat32 Kind = 10 // KindFloat32 represents IEEE 754 single-precision floats.
	KindFloat64 Kind = 11 // KindFloat64 represents IEEE 754 double-precision floats.

	KindHostObject Kind = 12 // KindHostObject represents opaque host-runtime values.
	KindCategory   Kind = 13 // KindCategory represents dictionary-encoded values.
)

func (k Kind) String() string {
	switch k {
	case KindUint8:
		return "uint8"
	case KindInt8:
		return "int8"
	case KindUint16:
		return "uint16"
	case KindInt16:
		return "int16"
	case KindUint32:
		return "uint32"
	case KindInt32:
		return "int32"
	case KindUint64:
		return "uint64"
	case KindInt64:
		return "int64"
	case KindBool:
		return "bool"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindHostObject:
		return "object"
	case KindCategory:
		return "category"
	default:
		return "invalid"
	}
}

// IsInteger reports whether the kind is a signed or unsigned integer.
func (k Kind) IsInteger() bool {
	switch k {
	case KindUint8, KindInt8, KindUint16, KindInt16,
		KindUint32, KindInt32, KindUint64, KindInt64:
		return true
	default:
		return false
	}
}

// IsFloating reports whether the kind is a floating-point type.
func (k Kind) IsFloating() bool {
	return k == KindFloat32 || k == KindFloat64
}

// IsNumeric reports whether the kind is an integer or floating-point type.
func (k Kind) IsNumeric() bool {
	return k.IsInteger() || k.IsFloating()
}

// IsPrimitive reports whether the kind has a process-wide singleton type.
// Category and host-object types are constructed per instance.
func (k Kind) IsPrimitive() bool {
	return k.IsNumeric() || k == KindBool
}
