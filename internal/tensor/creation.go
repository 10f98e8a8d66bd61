// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "fmt"

// Zeros creates a zero-filled tensor.
func Zeros[T DType](shape Shape, backend Backend) *Tensor[T] {
	raw, err := NewRaw(shape, TypeOf[T]())
	if err != nil {
		panic(err)
	}
	return &Tensor[T]{raw: raw, backend: backend}
}

// Ones creates a tensor filled with ones.
func Ones[T DType](shape Shape, backend Backend) *Tensor[T] {
	return Full[T](shape, 1, backend)
}

// Full creates a tensor filled with the given value.
func Full[T DType](shape Shape, value T, backend Backend) *Tensor[T] {
	t := Zeros[T](shape, backend)
	data := Data(t)
	for i := range data {
		data[i] = value
	}
	return t
}

// FromSlice creates a tensor from a flat slice in row-major order.
func FromSlice[T DType](values []T, shape Shape, backend Backend) (*Tensor[T], error) {
	if len(values) != shape.NumElements() {
		return nil, fmt.Errorf("slice length %d does not match shape %v (%d elements)",
			len(values), shape, shape.NumElements())
	}
	t := Zeros[T](shape, backend)
	copy(Data(t), values)
	return t, nil
}

// Arange creates a 1-D tensor holding start, start+step, ... below stop.
func Arange[T DType](start, stop, step T, backend Backend) (*Tensor[T], error) {
	if step == 0 {
		return nil, fmt.Errorf("arange: step must be nonzero")
	}
	var values []T
	if step > 0 {
		for v := start; v < stop; v += step {
			values = append(values, v)
		}
	} else {
		for v := start; v > stop; v += step {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("arange: empty range [%v, %v) step %v", start, stop, step)
	}
	return FromSlice(values, Shape{len(values)}, backend)
}
