// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"fmt"
	"strings"
)

// Tensor is a type-safe tensor bound to a compute backend. Operations route
// through the backend; the tensor itself only owns shape and type metadata.
type Tensor[T DType] struct {
	raw     *RawTensor
	backend Backend
}

// FromRaw wraps a RawTensor after checking its dtype matches T.
func FromRaw[T DType](raw *RawTensor, backend Backend) (*Tensor[T], error) {
	if raw.DType() != TypeOf[T]() {
		return nil, fmt.Errorf("raw tensor holds %s, want %s", raw.DType(), TypeOf[T]())
	}
	return &Tensor[T]{raw: raw, backend: backend}, nil
}

// Raw returns the underlying RawTensor.
func (t *Tensor[T]) Raw() *RawTensor { return t.raw }

// Backend returns the compute backend the tensor is bound to.
func (t *Tensor[T]) Backend() Backend { return t.backend }

// Shape returns the tensor's dimensions.
func (t *Tensor[T]) Shape() Shape { return t.raw.Shape() }

// NumElements returns the element count.
func (t *Tensor[T]) NumElements() int { return t.raw.NumElements() }

func (t *Tensor[T]) wrap(raw *RawTensor) *Tensor[T] {
	return &Tensor[T]{raw: raw, backend: t.backend}
}

// Add returns t + other element-wise.
func (t *Tensor[T]) Add(other *Tensor[T]) *Tensor[T] { return t.wrap(t.backend.Add(t.raw, other.raw)) }

// Sub returns t - other element-wise.
func (t *Tensor[T]) Sub(other *Tensor[T]) *Tensor[T] { return t.wrap(t.backend.Sub(t.raw, other.raw)) }

// Mul returns t * other element-wise.
func (t *Tensor[T]) Mul(other *Tensor[T]) *Tensor[T] { return t.wrap(t.backend.Mul(t.raw, other.raw)) }

// Div returns t / other element-wise.
func (t *Tensor[T]) Div(other *Tensor[T]) *Tensor[T] { return t.wrap(t.backend.Div(t.raw, other.raw)) }

// AddScalar returns t + s element-wise.
func (t *Tensor[T]) AddScalar(s float64) *Tensor[T] { return t.wrap(t.backend.AddScalar(t.raw, s)) }

// MulScalar returns t * s element-wise.
func (t *Tensor[T]) MulScalar(s float64) *Tensor[T] { return t.wrap(t.backend.MulScalar(t.raw, s)) }

// MatMul multiplies two 2-D tensors.
func (t *Tensor[T]) MatMul(other *Tensor[T]) *Tensor[T] {
	return t.wrap(t.backend.MatMul(t.raw, other.raw))
}

// Sum reduces to a scalar-shaped tensor.
func (t *Tensor[T]) Sum() *Tensor[T] { return t.wrap(t.backend.Sum(t.raw)) }

// Mean reduces to the scalar-shaped mean.
func (t *Tensor[T]) Mean() *Tensor[T] { return t.wrap(t.backend.Mean(t.raw)) }

// Reshape returns a view under a new shape with the same element count.
func (t *Tensor[T]) Reshape(shape Shape) *Tensor[T] {
	return t.wrap(t.backend.Reshape(t.raw, shape))
}

// Transpose swaps the two axes of a 2-D tensor.
func (t *Tensor[T]) Transpose() *Tensor[T] { return t.wrap(t.backend.Transpose(t.raw)) }

// At returns the element at the given indexes.
func (t *Tensor[T]) At(indexes ...int) T {
	shape := t.raw.Shape()
	if len(indexes) != len(shape) {
		panic(fmt.Sprintf("got %d indexes for %d-d tensor", len(indexes), len(shape)))
	}
	offset := 0
	for i, idx := range indexes {
		if idx < 0 || idx >= shape[i] {
			panic(fmt.Sprintf("index %d out of range for dimension %d (size %d)", idx, i, shape[i]))
		}
		offset += idx * t.raw.Stride()[i]
	}
	return Data(t)[offset]
}

// Data returns the tensor's elements as a typed slice sharing the buffer.
func Data[T DType](t *Tensor[T]) []T {
	var zero T
	switch any(zero).(type) {
	case float32:
		return any(t.raw.AsFloat32()).([]T)
	case float64:
		return any(t.raw.AsFloat64()).([]T)
	case int32:
		return any(t.raw.AsInt32()).([]T)
	case int64:
		return any(t.raw.AsInt64()).([]T)
	case uint8:
		return any(t.raw.AsUint8()).([]T)
	default:
		panic("unsupported element type")
	}
}

// String renders a short summary with the first elements.
func (t *Tensor[T]) String() string {
	data := Data(t)
	n := len(data)
	shown := n
	if shown > 8 {
		shown = 8
	}
	parts := make([]string, 0, shown)
	for _, v := range data[:shown] {
		parts = append(parts, fmt.Sprintf("%v", v))
	}
	suffix := ""
	if shown < n {
		suffix = ", ..."
	}
	return fmt.Sprintf("Tensor(shape=%v, dtype=%s, data=[%s%s])",
		t.Shape(), t.raw.DType(), strings.Join(parts, ", "), suffix)
}
