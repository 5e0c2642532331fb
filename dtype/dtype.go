package dtype

// DataType describes the logical element type of an array.
//
// Equality is by value: two instances are equal iff their kind and any
// type-specific state compare equal, regardless of instance identity.
// Code must never rely on singleton pointer comparison for equality.
type DataType interface {
	// Kind returns the type identifier.
	Kind() Kind

	// Name returns the descriptive type name, such as "int64" or
	// "category<float64>".
	Name() string

	// Equals reports value equality with another type.
	Equals(other DataType) bool
}

// PrimitiveType describes a fixed-width element type with no extra state.
// The package-level singletons below are the only instances user code should
// ever see; they are created at init and immutable afterwards.
type PrimitiveType struct {
	kind  Kind
	width int
}

// Process-wide primitive type singletons.
var (
	Bool    = &PrimitiveType{kind: KindBool, width: 1}
	Uint8   = &PrimitiveType{kind: KindUint8, width: 1}
	Int8    = &PrimitiveType{kind: KindInt8, width: 1}
	Uint16  = &PrimitiveType{kind: KindUint16, width: 2}
	Int16   = &PrimitiveType{kind: KindInt16, width: 2}
	Uint32  = &PrimitiveType{kind: KindUint32, width: 4}
	Int32   = &PrimitiveType{kind: KindInt32, width: 4}
	Uint64  = &PrimitiveType{kind: KindUint64, width: 8}
	Int64   = &PrimitiveType{kind: KindInt64, width: 8}
	Float32 = &PrimitiveType{kind: KindFloat32, width: 4}
	Float64 = &PrimitiveType{kind: KindFloat64, width: 8}
)

func (t *PrimitiveType) Kind() Kind {
	return t.kind
}

func (t *PrimitiveType) Name() string {
	return t.kind.String()
}

// ByteWidth returns the storage size of one element in bytes.
func (t *PrimitiveType) ByteWidth() int {
	return t.width
}

// Equals reports whether other is a primitive type of the same kind. A
// primitive type has no state beyond its kind, so kind equality is value
// equality.
func (t *PrimitiveType) Equals(other DataType) bool {
	if other == nil {
		return false
	}

	return t.kind == other.Kind()
}

// HostObjectType describes opaque host-runtime values. It has no singleton;
// each use constructs its own instance.
type HostObjectType struct{}

func (t *HostObjectType) Kind() Kind {
	return KindHostObject
}

func (t *HostObjectType) Name() string {
	return KindHostObject.String()
}

func (t *HostObjectType) Equals(other DataType) bool {
	if other == nil {
		return false
	}

	return other.Kind() == KindHostObject
}

// Integer is the constraint satisfied by the Go element types of integer
// arrays. The members are exact types, not type sets, so Of can map a type
// parameter back to its singleton.
type Integer interface {
	int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64
}

// Float is the constraint satisfied by the Go element types of floating
// arrays.
type Float interface {
	float32 | float64
}

// Numeric is the constraint satisfied by every numeric element type.
type Numeric interface {
	Integer | Float
}

// Of returns the primitive singleton for a static numeric element type.
func Of[T Numeric]() *PrimitiveType {
	var zero T
	switch any(zero).(type) {
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case uint16:
		return Uint16
	case uint32:
		return Uint32
	case uint64:
		return Uint64
	case float32:
		return Float32
	case float64:
		return Float64
	default:
		return nil
	}
}

// FromKind returns the primitive singleton for a kind, or nil for kinds
// without one (invalid, category, host object).
func FromKind(k Kind) *PrimitiveType {
	switch k {
	case KindBool:
		return Bool
	case KindUint8:
		return Uint8
	case KindInt8:
		return Int8
	case KindUint16:
		return Uint16
	case KindInt16:
		return Int16
	case KindUint32:
		return Uint32
	case KindInt32:
		return Int32
	case KindUint64:
		return Uint64
	case KindInt64:
		return Int64
	case KindFloat32:
		return Float32
	case KindFloat64:
		return Float64
	default:
		return nil
	}
}
