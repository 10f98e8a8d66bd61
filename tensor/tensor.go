// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor is the public API for Flint tensors.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	z := x.Add(y)
package tensor

import (
	"github.com/flintml/flint/internal/tensor"
)

// DType is the constraint for tensor element types:
// float32, float64, int32, int64, uint8.
type DType = tensor.DType

// DataType identifies a tensor's element type at runtime.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Uint8   DataType = tensor.Uint8
)

// Shape represents the dimensions of a tensor.
type Shape = tensor.Shape

// RawTensor is the untyped tensor representation backends operate on.
type RawTensor = tensor.RawTensor

// Backend is the compute runtime interface tensors dispatch to.
type Backend = tensor.Backend

// Tensor is a type-safe tensor over a backend.
type Tensor[T DType] = tensor.Tensor[T]

// NewRaw allocates a zeroed raw tensor.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype)
}

// FromRaw wraps a raw tensor in a typed one, checking the element type
// matches the raw dtype.
func FromRaw[T DType](raw *RawTensor, backend Backend) (*Tensor[T], error) {
	return tensor.FromRaw[T](raw, backend)
}

// Zeros creates a zero-filled tensor.
func Zeros[T DType](shape Shape, backend Backend) *Tensor[T] {
	return tensor.Zeros[T](shape, backend)
}

// Ones creates a one-filled tensor.
func Ones[T DType](shape Shape, backend Backend) *Tensor[T] {
	return tensor.Ones[T](shape, backend)
}

// Full creates a tensor filled with value.
func Full[T DType](shape Shape, value T, backend Backend) *Tensor[T] {
	return tensor.Full(shape, value, backend)
}

// FromSlice creates a tensor from values, which must match the shape's
// element count.
func FromSlice[T DType](values []T, shape Shape, backend Backend) (*Tensor[T], error) {
	return tensor.FromSlice(values, shape, backend)
}

// Arange creates a 1-D tensor of the half-open range [start, stop) with the
// given step.
func Arange[T DType](start, stop, step T, backend Backend) (*Tensor[T], error) {
	return tensor.Arange(start, stop, step, backend)
}

// Data returns the tensor's elements as a typed slice sharing the
// underlying buffer.
func Data[T DType](t *Tensor[T]) []T {
	return tensor.Data(t)
}
