package array

import (
	"github.com/arloliu/colmem/dtype"
	"github.com/arloliu/colmem/memory"
)

// BooleanArray stores one byte per element with the boolean logical type,
// so GetScalar and SetScalar box elements as bool. Everything else,
// including the validity bitmap, works exactly as for integer arrays.
type BooleanArray = IntegerArray[uint8]

// NewBoolean creates a boolean array over the window [offset,
// offset+length) of data. validity may be nil; when given, it must hold at
// least offset+length bits. Both buffers are retained.
func NewBoolean(data, validity *memory.Buffer, offset, length int) (*BooleanArray, error) {
	arr, err := NewInteger[uint8](data, validity, offset, length)
	if err != nil {
		return nil, err
	}
	arr.typ = dtype.Bool

	return arr, nil
}

// BooleanFromSlice builds a boolean array holding values. valid may be nil
// when every element is valid; otherwise valid[i] == false marks element i
// null.
func BooleanFromSlice(values []bool, valid []bool, opts ...BuilderOption) (*BooleanArray, error) {
	b, err := NewBooleanBuilder(opts...)
	if err != nil {
		return nil, err
	}
	if err := b.AppendValues(values, valid); err != nil {
		return nil, err
	}

	return b.NewArray()
}
