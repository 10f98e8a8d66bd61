// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"fmt"
	"unsafe"
)

// RawTensor is the low-level tensor representation: a contiguous row-major
// byte buffer plus shape, stride, and runtime type information. Values in
// interactive sessions are copied explicitly; RawTensor carries no shared
// buffer bookkeeping.
type RawTensor struct {
	data   []byte
	shape  Shape
	stride []int
	dtype  DataType
}

// NewRaw allocates a zeroed RawTensor with the given shape and type.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	return &RawTensor{
		data:   make([]byte, shape.NumElements()*dtype.Size()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
	}, nil
}

// Shape returns the tensor's dimensions.
func (t *RawTensor) Shape() Shape { return t.shape }

// Stride returns the row-major strides.
func (t *RawTensor) Stride() []int { return t.stride }

// DType returns the runtime element type.
func (t *RawTensor) DType() DataType { return t.dtype }

// NumElements returns the element count.
func (t *RawTensor) NumElements() int { return t.shape.NumElements() }

// Bytes returns the underlying buffer.
func (t *RawTensor) Bytes() []byte { return t.data }

// Clone returns a deep copy.
func (t *RawTensor) Clone() *RawTensor {
	data := make([]byte, len(t.data))
	copy(data, t.data)
	return &RawTensor{
		data:   data,
		shape:  t.shape.Clone(),
		stride: t.shape.ComputeStrides(),
		dtype:  t.dtype,
	}
}

// WithShape returns a view of the same buffer under a new shape with the
// same element count.
func (t *RawTensor) WithShape(shape Shape) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != t.NumElements() {
		return nil, fmt.Errorf("cannot reshape %v to %v: element count differs", t.shape, shape)
	}
	return &RawTensor{
		data:   t.data,
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  t.dtype,
	}, nil
}

// AsFloat32 reinterprets the buffer as []float32. Panics on dtype mismatch.
func (t *RawTensor) AsFloat32() []float32 {
	t.mustBe(Float32)
	return unsafe.Slice((*float32)(unsafe.Pointer(unsafe.SliceData(t.data))), t.NumElements())
}

// AsFloat64 reinterprets the buffer as []float64. Panics on dtype mismatch.
func (t *RawTensor) AsFloat64() []float64 {
	t.mustBe(Float64)
	return unsafe.Slice((*float64)(unsafe.Pointer(unsafe.SliceData(t.data))), t.NumElements())
}

// AsInt32 reinterprets the buffer as []int32. Panics on dtype mismatch.
func (t *RawTensor) AsInt32() []int32 {
	t.mustBe(Int32)
	return unsafe.Slice((*int32)(unsafe.Pointer(unsafe.SliceData(t.data))), t.NumElements())
}

// AsInt64 reinterprets the buffer as []int64. Panics on dtype mismatch.
func (t *RawTensor) AsInt64() []int64 {
	t.mustBe(Int64)
	return unsafe.Slice((*int64)(unsafe.Pointer(unsafe.SliceData(t.data))), t.NumElements())
}

// AsUint8 reinterprets the buffer as []uint8. Panics on dtype mismatch.
func (t *RawTensor) AsUint8() []uint8 {
	t.mustBe(Uint8)
	return t.data
}

func (t *RawTensor) mustBe(dt DataType) {
	if t.dtype != dt {
		panic(fmt.Sprintf("tensor holds %s, not %s", t.dtype, dt))
	}
}

func (t *RawTensor) String() string {
	return fmt.Sprintf("RawTensor(shape=%v, dtype=%s)", t.shape, t.dtype)
}
