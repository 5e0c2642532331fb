package array

import (
	"fmt"
	"math"

	"github.com/arloliu/colmem/dtype"
	"github.com/arloliu/colmem/errs"
	"github.com/arloliu/colmem/internal/bitutil"
	"github.com/arloliu/colmem/internal/cast"
	"github.com/arloliu/colmem/internal/options"
	"github.com/arloliu/colmem/memory"
)

// BuilderConfig holds the configuration shared by all array builders.
type BuilderConfig struct {
	mem      memory.Allocator
	capacity int
}

// BuilderOption configures an array builder.
type BuilderOption = options.Option[*BuilderConfig]

// WithAllocator sets the allocator the builder allocates array buffers
// from. The default is memory.DefaultAllocator.
func WithAllocator(mem memory.Allocator) BuilderOption {
	return options.New(func(c *BuilderConfig) error {
		if mem == nil {
			return fmt.Errorf("%w: nil allocator", errs.ErrInvalid)
		}
		c.mem = mem

		return nil
	})
}

// WithCapacity pre-sizes the builder for n elements.
func WithCapacity(n int) BuilderOption {
	return options.New(func(c *BuilderConfig) error {
		if n < 0 {
			return fmt.Errorf("%w: negative builder capacity %d", errs.ErrInvalid, n)
		}
		c.capacity = n

		return nil
	})
}

func newBuilderConfig(opts ...BuilderOption) (*BuilderConfig, error) {
	cfg := &BuilderConfig{mem: memory.DefaultAllocator}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IntegerBuilder accumulates integer elements and nulls, then materializes
// them as an IntegerArray. A builder is reusable; NewArray resets it.
type IntegerBuilder[T dtype.Integer] struct {
	mem      memory.Allocator
	values   []T
	nulls    []bool
	hasNulls bool
}

// NewIntegerBuilder creates an integer array builder.
func NewIntegerBuilder[T dtype.Integer](opts ...BuilderOption) (*IntegerBuilder[T], error) {
	cfg, err := newBuilderConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &IntegerBuilder[T]{
		mem:    cfg.mem,
		values: make([]T, 0, cfg.capacity),
		nulls:  make([]bool, 0, cfg.capacity),
	}, nil
}

// Append adds one valid element.
func (b *IntegerBuilder[T]) Append(v T) {
	b.values = append(b.values, v)
	b.nulls = append(b.nulls, false)
}

// AppendNull adds one null element.
func (b *IntegerBuilder[T]) AppendNull() {
	var zero T
	b.values = append(b.values, zero)
	b.nulls = append(b.nulls, true)
	b.hasNulls = true
}

// AppendValues adds a run of elements. valid may be nil when every element
// is valid; otherwise valid[i] == false marks element i null.
//
// Returns ErrLengthMismatch when valid is non-nil with a different length
// than values.
func (b *IntegerBuilder[T]) AppendValues(values []T, valid []bool) error {
	if valid != nil && len(valid) != len(values) {
		return fmt.Errorf("%w: %d values with %d validity flags", errs.ErrLengthMismatch, len(values), len(valid))
	}

	for i, v := range values {
		if valid != nil && !valid[i] {
			b.AppendNull()
			continue
		}
		b.Append(v)
	}

	return nil
}

// Reserve grows the builder to hold n additional elements without
// reallocating.
func (b *IntegerBuilder[T]) Reserve(n int) {
	if free := cap(b.values) - len(b.values); free < n {
		values := make([]T, len(b.values), len(b.values)+n)
		copy(values, b.values)
		b.values = values

		nulls := make([]bool, len(b.nulls), len(b.nulls)+n)
		copy(nulls, b.nulls)
		b.nulls = nulls
	}
}

// Len returns the number of accumulated elements.
func (b *IntegerBuilder[T]) Len() int {
	return len(b.values)
}

// NewArray materializes the accumulated elements as a fresh array with
// exclusively owned buffers and resets the builder for reuse. A validity
// bitmap is attached only when at least one null was appended.
func (b *IntegerBuilder[T]) NewArray() (*IntegerArray[T], error) {
	n := len(b.values)
	w := cast.Sizeof[T]()

	data, err := memory.Allocate(b.mem, n*w)
	if err != nil {
		return nil, err
	}
	copy(cast.Slice[byte, T](data.Bytes()), b.values)

	var validity *memory.Buffer
	if b.hasNulls {
		validity, err = memory.Allocate(b.mem, bitutil.BytesForBits(n))
		if err != nil {
			data.Release()
			return nil, err
		}
		for i, null := range b.nulls {
			if null {
				bitutil.Set(validity.Bytes(), i)
			}
		}
	}

	arr := &IntegerArray[T]{
		NumericArray: NumericArray[T]{typ: dtype.Of[T](), data: data, length: n},
		validity:     validity,
	}
	arr.refs.Store(1)

	b.values = b.values[:0]
	b.nulls = b.nulls[:0]
	b.hasNulls = false

	return arr, nil
}

// FloatingBuilder accumulates floating-point elements, storing nulls as
// NaN, then materializes them as a FloatingArray. A builder is reusable;
// NewArray resets it.
type FloatingBuilder[T dtype.Float] struct {
	mem    memory.Allocator
	values []T
}

// NewFloatingBuilder creates a floating-point array builder.
func NewFloatingBuilder[T dtype.Float](opts ...BuilderOption) (*FloatingBuilder[T], error) {
	cfg, err := newBuilderConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &FloatingBuilder[T]{
		mem:    cfg.mem,
		values: make([]T, 0, cfg.capacity),
	}, nil
}

// Append adds one valid element.
func (b *FloatingBuilder[T]) Append(v T) {
	b.values = append(b.values, v)
}

// AppendNull adds one null element, stored as NaN.
func (b *FloatingBuilder[T]) AppendNull() {
	b.values = append(b.values, T(math.NaN()))
}

// AppendValues adds a run of elements. valid may be nil when every element
// is valid; otherwise valid[i] == false stores NaN at element i.
//
// Returns ErrLengthMismatch when valid is non-nil with a different length
// than values.
func (b *FloatingBuilder[T]) AppendValues(values []T, valid []bool) error {
	if valid != nil && len(valid) != len(values) {
		return fmt.Errorf("%w: %d values with %d validity flags", errs.ErrLengthMismatch, len(values), len(valid))
	}

	for i, v := range values {
		if valid != nil && !valid[i] {
			b.AppendNull()
			continue
		}
		b.Append(v)
	}

	return nil
}

// Reserve grows the builder to hold n additional elements without
// reallocating.
func (b *FloatingBuilder[T]) Reserve(n int) {
	if free := cap(b.values) - len(b.values); free < n {
		values := make([]T, len(b.values), len(b.values)+n)
		copy(values, b.values)
		b.values = values
	}
}

// Len returns the number of accumulated elements.
func (b *FloatingBuilder[T]) Len() int {
	return len(b.values)
}

// NewArray materializes the accumulated elements as a fresh array with an
// exclusively owned buffer and resets the builder for reuse.
func (b *FloatingBuilder[T]) NewArray() (*FloatingArray[T], error) {
	n := len(b.values)
	w := cast.Sizeof[T]()

	data, err := memory.Allocate(b.mem, n*w)
	if err != nil {
		return nil, err
	}
	copy(cast.Slice[byte, T](data.Bytes()), b.values)

	arr := &FloatingArray[T]{
		NumericArray: NumericArray[T]{typ: dtype.Of[T](), data: data, length: n},
	}
	arr.refs.Store(1)

	b.values = b.values[:0]

	return arr, nil
}

// BooleanBuilder accumulates boolean elements and nulls, then materializes
// them as a BooleanArray. A builder is reusable; NewArray resets it.
type BooleanBuilder struct {
	inner IntegerBuilder[uint8]
}

// NewBooleanBuilder creates a boolean array builder.
func NewBooleanBuilder(opts ...BuilderOption) (*BooleanBuilder, error) {
	cfg, err := newBuilderConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &BooleanBuilder{
		inner: IntegerBuilder[uint8]{
			mem:    cfg.mem,
			values: make([]uint8, 0, cfg.capacity),
			nulls:  make([]bool, 0, cfg.capacity),
		},
	}, nil
}

// Append adds one valid element.
func (b *BooleanBuilder) Append(v bool) {
	if v {
		b.inner.Append(1)
	} else {
		b.inner.Append(0)
	}
}

// AppendNull adds one null element.
func (b *BooleanBuilder) AppendNull() {
	b.inner.AppendNull()
}

// AppendValues adds a run of elements. valid may be nil when every element
// is valid; otherwise valid[i] == false marks element i null.
//
// Returns ErrLengthMismatch when valid is non-nil with a different length
// than values.
func (b *BooleanBuilder) AppendValues(values []bool, valid []bool) error {
	if valid != nil && len(valid) != len(values) {
		return fmt.Errorf("%w: %d values with %d validity flags", errs.ErrLengthMismatch, len(values), len(valid))
	}

	for i, v := range values {
		if valid != nil && !valid[i] {
			b.AppendNull()
			continue
		}
		b.Append(v)
	}

	return nil
}

// Reserve grows the builder to hold n additional elements without
// reallocating.
func (b *BooleanBuilder) Reserve(n int) {
	b.inner.Reserve(n)
}

// Len returns the number of accumulated elements.
func (b *BooleanBuilder) Len() int {
	return b.inner.Len()
}

// NewArray materializes the accumulated elements as a fresh boolean array
// and resets the builder for reuse.
func (b *BooleanBuilder) NewArray() (*BooleanArray, error) {
	arr, err := b.inner.NewArray()
	if err != nil {
		return nil, err
	}
	arr.typ = dtype.Bool

	return arr, nil
}
