// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	"fmt"

	"github.com/flintml/flint/internal/parallel"
	"github.com/flintml/flint/internal/tensor"
)

// binary applies the per-dtype op to two tensors of identical shape and type.
func (b *Backend) binary(name string, x, y *tensor.RawTensor,
	f32 func(a, b float32) float32,
	f64 func(a, b float64) float64,
	i32 func(a, b int32) int32,
	i64 func(a, b int64) int64,
	u8 func(a, b uint8) uint8,
) *tensor.RawTensor {
	if !x.Shape().Equal(y.Shape()) {
		panic(fmt.Sprintf("%s shape mismatch: %v vs %v", name, x.Shape(), y.Shape()))
	}
	if x.DType() != y.DType() {
		panic(fmt.Sprintf("%s dtype mismatch: %s vs %s", name, x.DType(), y.DType()))
	}
	out := mustRaw(x.Shape(), x.DType())
	switch x.DType() {
	case tensor.Float32:
		apply2(x.AsFloat32(), y.AsFloat32(), out.AsFloat32(), f32, b.par)
	case tensor.Float64:
		apply2(x.AsFloat64(), y.AsFloat64(), out.AsFloat64(), f64, b.par)
	case tensor.Int32:
		apply2(x.AsInt32(), y.AsInt32(), out.AsInt32(), i32, b.par)
	case tensor.Int64:
		apply2(x.AsInt64(), y.AsInt64(), out.AsInt64(), i64, b.par)
	case tensor.Uint8:
		apply2(x.AsUint8(), y.AsUint8(), out.AsUint8(), u8, b.par)
	}
	return out
}

// scalar applies op(x, s) element-wise, computing in float64 and converting
// back to the tensor's dtype.
func (b *Backend) scalar(x *tensor.RawTensor, s float64, op func(a, b float64) float64) *tensor.RawTensor {
	out := mustRaw(x.Shape(), x.DType())
	switch x.DType() {
	case tensor.Float32:
		src, dst := x.AsFloat32(), out.AsFloat32()
		parallel.For(len(src), func(i int) { dst[i] = float32(op(float64(src[i]), s)) }, b.par)
	case tensor.Float64:
		src, dst := x.AsFloat64(), out.AsFloat64()
		parallel.For(len(src), func(i int) { dst[i] = op(src[i], s) }, b.par)
	case tensor.Int32:
		src, dst := x.AsInt32(), out.AsInt32()
		parallel.For(len(src), func(i int) { dst[i] = int32(op(float64(src[i]), s)) }, b.par)
	case tensor.Int64:
		src, dst := x.AsInt64(), out.AsInt64()
		parallel.For(len(src), func(i int) { dst[i] = int64(op(float64(src[i]), s)) }, b.par)
	case tensor.Uint8:
		src, dst := x.AsUint8(), out.AsUint8()
		parallel.For(len(src), func(i int) { dst[i] = uint8(op(float64(src[i]), s)) }, b.par)
	}
	return out
}

func apply2[T tensor.DType](a, b, dst []T, op func(T, T) T, cfg parallel.Config) {
	parallel.For(len(dst), func(i int) { dst[i] = op(a[i], b[i]) }, cfg)
}
